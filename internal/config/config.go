// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
)

// Config is the top-level configuration container for the safepass
// application. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file, in that order of precedence.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type Config struct {
	// App holds application-level settings: the locations of the key
	// material protecting the vault.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local credential database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Generator holds defaults for the password generator.
	Generator Generator `envPrefix:"GENERATOR_"`

	// Workers holds configuration for the background task pool running
	// vault and store operations off the UI loop.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control where the
// vault's key material lives.
type App struct {
	// KeysetPath is the path of the JSON keyset file carrying the wrapped
	// data-encryption key. The raw key never appears in this file.
	// Env: APP_KEYSET_PATH
	KeysetPath string `env:"KEYSET_PATH"`

	// KeyringService is the service name under which the master secret is
	// stored in the OS keyring.
	// Env: APP_KEYRING_SERVICE
	KeyringService string `env:"KEYRING_SERVICE"`
}

// Storage groups the configuration for the persistence backend.
type Storage struct {
	// DB holds the local database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB contains local database connection settings.
type DB struct {
	// DSN is the SQLite database file path.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Generator holds password generator defaults offered by the UI.
type Generator struct {
	// DefaultLength is the initial length of generated passwords.
	// Env: GENERATOR_DEFAULT_LENGTH
	DefaultLength int `env:"DEFAULT_LENGTH"`
}

// Workers contains background task pool settings.
type Workers struct {
	// PoolSize is the number of workers executing vault and store
	// operations in the background.
	// Env: WORKERS_POOL_SIZE
	PoolSize int `env:"POOL_SIZE"`
}

// GetConfig assembles the effective configuration: environment variables
// first, then command-line flags, then the optional JSON file, each layer
// filling only fields the previous layers left empty, and finally the
// built-in defaults. The merged result is validated before it is returned.
func GetConfig() (*Config, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

// defaultConfig returns the built-in fallback values, rooted in the user's
// configuration directory (or the working directory when none is known).
func defaultConfig() *Config {
	baseDir, err := os.UserConfigDir()
	if err != nil {
		baseDir = "."
	}
	dataDir := filepath.Join(baseDir, "safepass")

	return &Config{
		App: App{
			KeysetPath:     filepath.Join(dataDir, "keyset.json"),
			KeyringService: "safepass",
		},
		Storage: Storage{
			DB: DB{
				DSN: filepath.Join(dataDir, "safepass.db"),
			},
		},
		Generator: Generator{
			DefaultLength: 16,
		},
		Workers: Workers{
			PoolSize: 4,
		},
	}
}
