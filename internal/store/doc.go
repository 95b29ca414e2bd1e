// Package store defines the persistence interfaces for the application's
// entities along with the sentinel errors implementations map database
// failures onto. Concrete implementations live in platform/postgres.
package store
