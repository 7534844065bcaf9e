package database

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/FireFly4ik/db-kr-1/config"
	"github.com/FireFly4ik/db-kr-1/logging"
	"github.com/FireFly4ik/db-kr-1/models"
)

// Connect opens the database described by cfg, verifies connectivity with a
// ping round-trip and configures the connection pool. Any failure is returned
// to the caller; Connect never panics.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database using GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		// SQLite only supports a single writer
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database connectivity probe failed: %w", err)
	}

	logging.Named("database").Info("database connection established (%s)", cfg.Driver)
	return db, nil
}

func openDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres, "":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port)
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(sqliteDSN(cfg.Path)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver '%s'", cfg.Driver)
	}
}

// sqliteDSN enables foreign key enforcement, which the cascade deletes rely on.
func sqliteDSN(path string) string {
	if path == ":memory:" {
		return "file::memory:?_pragma=foreign_keys(1)"
	}
	return path + "?_pragma=foreign_keys(1)"
}

// AutoMigrateModels creates or updates the schema for all entities. It is
// called once at startup, after a successful Connect.
func AutoMigrateModels(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Experiment{},
		&models.Run{},
		&models.Image{},
	)
	if err != nil {
		return fmt.Errorf("GORM AutoMigrate failed: %w", err)
	}
	return nil
}

// RecreateSchema drops and recreates all tables from the current entity
// definitions. Destructive; intended for test/reset workflows only.
func RecreateSchema(db *gorm.DB) error {
	// children first so the drops don't trip over FK constraints
	err := db.Migrator().DropTable(
		&models.Image{},
		&models.Run{},
		&models.Experiment{},
	)
	if err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}
	if err := AutoMigrateModels(db); err != nil {
		return err
	}
	logging.Named("database").Info("schema dropped and recreated")
	return nil
}
