// SPDX-License-Identifier: Apache-2.0

package config

import "strings"

// validate checks that the final merged [Config] satisfies all application
// invariants before it is used at startup. The vault is file-backed only:
// an in-memory DSN would silently discard credentials on exit, so it is
// rejected here.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *Config) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.KeysetPath == "" || cfg.App.KeyringService == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Generator.DefaultLength <= 0 {
		return ErrInvalidGeneratorConfigs
	}

	if cfg.Workers.PoolSize <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
