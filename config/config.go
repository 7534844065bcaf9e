package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

// supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	defaultDBHost     = "localhost"
	defaultDBPort     = 5432
	defaultSQLitePath = "experiments.db"
)

// DatabaseConfig carries the connection parameters for the persistence
// bootstrap. For postgres the DB_* credentials are required; for sqlite only
// the file path matters.
type DatabaseConfig struct {
	Driver   string
	User     string
	Password string
	Host     string
	Port     int
	Name     string
	Path     string
}

type Config struct {
	Database DatabaseConfig

	// logging settings
	LogFile  string
	LogLevel string

	// HTTP listen port
	Port string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	dbCfg := DatabaseConfig{
		Driver:   getEnvOrDefault("DB_DRIVER", DriverPostgres),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Host:     getEnvOrDefault("DB_HOST", defaultDBHost),
		Port:     getEnvIntOrDefault("DB_PORT", defaultDBPort),
		Name:     os.Getenv("DB_NAME"),
		Path:     getEnvOrDefault("DB_PATH", defaultSQLitePath),
	}

	switch dbCfg.Driver {
	case DriverPostgres:
		if dbCfg.User == "" {
			return Config{}, fmt.Errorf("DB_USER is required when DB_DRIVER is %s", DriverPostgres)
		}
		if dbCfg.Name == "" {
			return Config{}, fmt.Errorf("DB_NAME is required when DB_DRIVER is %s", DriverPostgres)
		}
	case DriverSQLite:
		// nothing to require, the default path is usable
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER '%s'", dbCfg.Driver)
	}

	cfg := Config{
		Database: dbCfg,
		LogFile:  os.Getenv("LOG_FILE"),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		Port:     getEnvOrDefault("PORT", "8080"),
	}

	return cfg, nil
}
