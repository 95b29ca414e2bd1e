// Package api contains the HTTP handlers, request/response models, and
// error mapping for the REST API. Handlers stay thin: they decode and
// validate input, call stores or services, and translate errors into
// sanitized responses.
package api
