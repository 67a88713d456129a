package app

import "errors"

var (
	errMissingJWTSecret   = errors.New("JWT_SECRET is required in production")
	errMissingKafkaBroker = errors.New("KAFKA_BROKER is required")
)
