// Package config defines the application configuration structure and
// loading logic. Configuration is sourced from an optional config.yaml file
// and NEXOTIME_-prefixed environment variables, with env vars taking
// precedence, and validated before use.
package config
