package config

import (
	"flag"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-d database file path
//	-c/-config json file path with configs
//	-keyset keyset file path
//	-keyring-service OS keyring service name
//	-pool-size background worker pool size
//	-length default generated password length
func ParseFlags() *Config {
	var databaseDSN string
	var jsonConfigPath string
	var keysetPath string
	var keyringService string
	var poolSize int
	var defaultLength int

	flag.StringVar(&databaseDSN, "d", "", "Database file path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&keysetPath, "keyset", "", "Keyset file path")
	flag.StringVar(&keyringService, "keyring-service", "", "OS keyring service name")
	flag.IntVar(&poolSize, "pool-size", 0, "Background worker pool size")
	flag.IntVar(&defaultLength, "length", 0, "Default generated password length")

	flag.Parse()

	return &Config{
		App: App{
			KeysetPath:     keysetPath,
			KeyringService: keyringService,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Generator: Generator{
			DefaultLength: defaultLength,
		},
		Workers: Workers{
			PoolSize: poolSize,
		},
		JSONFilePath: jsonConfigPath,
	}
}
