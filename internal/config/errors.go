package config

import "errors"

// Validation sentinels. build() wraps one of these when the merged
// configuration cannot run the server.
var (
	// ErrInvalidStorageConfigs means the database DSN is missing.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")

	// ErrInvalidAuthConfigs means the session sign key is missing or the
	// session lifetime is not positive.
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")

	// ErrInvalidServerConfigs means there is no HTTP listen address.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")

	// ErrInvalidWorkerConfigs means the session purge interval is not
	// positive.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
