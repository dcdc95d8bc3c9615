package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrRateLimited    = errors.New("rate limited")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrOracleDisabled = errors.New("oracle not configured")
	ErrNoEndpoints    = errors.New("no catalog endpoints configured")
	ErrInvalidKey     = errors.New("invalid private key material")
	ErrContextDone    = errors.New("context cancelled")
)
