package db

import "errors"

var (
	ErrInvalidConfig     = errors.New("db: invalid configuration")
	ErrConnect           = errors.New("db: failed to connect")
	ErrHealthcheckFailed = errors.New("db: healthcheck failed")
	ErrMigrate           = errors.New("db: failed to apply migrations")
)
