package config

import (
	"fmt"
	"strings"
)

// Order store drivers
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// StoreConfig selects where the practice storefront keeps placed orders
type StoreConfig struct {
	Driver     string
	SQLitePath string
	Postgres   *PostgresConfig
}

// LoadStoreConfig loads store configuration from environment variables
func LoadStoreConfig(getenv func(string) string) (*StoreConfig, error) {
	config := &StoreConfig{
		Driver:     strings.ToLower(getenv("SHOP_STORE")),
		SQLitePath: getenv("SHOP_SQLITE_PATH"),
	}

	if config.Driver == "" {
		config.Driver = StoreMemory
	}

	switch config.Driver {
	case StoreMemory:
	case StoreSQLite:
		if config.SQLitePath == "" {
			config.SQLitePath = "intershop.db"
		}
	case StorePostgres:
		pg, err := LoadPostgresConfig(getenv)
		if err != nil {
			return nil, err
		}
		config.Postgres = pg
	default:
		return nil, fmt.Errorf("SHOP_STORE must be one of %s, %s, %s: got %q",
			StoreMemory, StoreSQLite, StorePostgres, config.Driver)
	}

	return config, nil
}
