package config

import "errors"

// Validation errors returned by [Config.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, an empty keyset path or keyring service name).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or unsupported in-memory DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidGeneratorConfigs indicates invalid password generator
	// settings (for example, a non-positive default length).
	ErrInvalidGeneratorConfigs = errors.New("invalid generator configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, a non-positive pool size).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
