package command

import (
	"context"
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-resin/internal/storage"
	"github.com/pixil98/go-resin/internal/storage/sqlstore"
)

type ProviderType int

const (
	ProviderUnset ProviderType = iota
	ProviderJSON
	ProviderYAML
	ProviderSQLite
	ProviderMySQL
)

func (pt *ProviderType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "json":
		*pt = ProviderJSON
	case "yaml", "yml":
		*pt = ProviderYAML
	case "sqlite", "sqlite3":
		*pt = ProviderSQLite
	case "mysql":
		*pt = ProviderMySQL
	default:
		return fmt.Errorf("unsupported provider: %s", text)
	}
	return nil
}

func (pt ProviderType) String() string {
	switch pt {
	case ProviderJSON:
		return "json"
	case ProviderYAML:
		return "yaml"
	case ProviderSQLite:
		return "sqlite"
	case ProviderMySQL:
		return "mysql"
	default:
		return "unset"
	}
}

type DatabaseConfig struct {
	Path  string      `json:"path" env:"RESIN_DATABASE_PATH"`
	MySQL MySQLConfig `json:"mysql"`
}

type MySQLConfig struct {
	Host     string `json:"host" env:"RESIN_MYSQL_HOST"`
	Port     int    `json:"port" env:"RESIN_MYSQL_PORT"`
	Username string `json:"username" env:"RESIN_MYSQL_USERNAME"`
	Password string `json:"password" env:"RESIN_MYSQL_PASSWORD"`
	Schema   string `json:"schema" env:"RESIN_MYSQL_SCHEMA"`
}

func (c *DatabaseConfig) validate(p ProviderType) error {
	el := errors.NewErrorList()

	switch p {
	case ProviderJSON, ProviderYAML, ProviderSQLite:
		if c.Path == "" {
			el.Add(fmt.Errorf("database.path is required for the %s provider", p))
		}
	case ProviderMySQL:
		if c.MySQL.Host == "" {
			el.Add(fmt.Errorf("database.mysql.host is required"))
		}
		if c.MySQL.Port < 0 || c.MySQL.Port > 65535 {
			el.Add(fmt.Errorf("database.mysql.port must be between 0 and 65535"))
		}
		if c.MySQL.Username == "" {
			el.Add(fmt.Errorf("database.mysql.username is required"))
		}
		if c.MySQL.Schema == "" {
			el.Add(fmt.Errorf("database.mysql.schema is required"))
		}
	}

	return el.Err()
}

// BuildBackend opens the storage backend selected by p.
func (c *DatabaseConfig) BuildBackend(ctx context.Context, p ProviderType) (storage.Backend, error) {
	switch p {
	case ProviderJSON:
		return storage.NewJSONBackend(c.Path)
	case ProviderYAML:
		return storage.NewYAMLBackend(c.Path)
	case ProviderSQLite:
		return sqlstore.OpenSQLite(ctx, c.Path)
	case ProviderMySQL:
		port := c.MySQL.Port
		if port == 0 {
			port = 3306
		}
		return sqlstore.OpenMySQL(ctx, sqlstore.MySQLConfig{
			Host:     c.MySQL.Host,
			Port:     port,
			Username: c.MySQL.Username,
			Password: c.MySQL.Password,
			Schema:   c.MySQL.Schema,
		})
	default:
		return nil, fmt.Errorf("unknown provider: %v", p)
	}
}
