package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSONConfig mirrors [Config] with json tags for file-based configuration.
type JSONConfig struct {
	App struct {
		KeysetPath     string `json:"keyset_path"`
		KeyringService string `json:"keyring_service"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Generator struct {
		DefaultLength int `json:"default_length"`
	} `json:"generator,omitempty"`

	Workers struct {
		PoolSize int `json:"pool_size"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*Config, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg JSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &Config{
		App: App{
			KeysetPath:     jsonCfg.App.KeysetPath,
			KeyringService: jsonCfg.App.KeyringService,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Generator: Generator{
			DefaultLength: jsonCfg.Generator.DefaultLength,
		},
		Workers: Workers{
			PoolSize: jsonCfg.Workers.PoolSize,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}
