package db

import "errors"

var (
	ErrFailedToParseRedisURL   = errors.New("failed to parse redis connection url")
	ErrRedisNotReady           = errors.New("redis did not become ready within the given time period")
	ErrFailedToParsePgConfig   = errors.New("failed to parse postgres config")
	ErrPostgresNotReady        = errors.New("failed to open postgres connection")
	ErrFailedToApplyMigrations = errors.New("failed to apply migrations")
	ErrHealthcheckFailed       = errors.New("storage healthcheck failed")
)
