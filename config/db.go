// picks the GORM driver from DATABASE_URL. No repository/service code changes needed when you change DB.

package config

import (
	"fmt"

	"TodoAPI/models"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
)

// OpenDB opens a gorm connection for the configured DATABASE_URL and sizes the pool.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	driver, dsn, err := ParseDatabaseURL(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Warn keeps output readable; Info logs every statement.
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true, // unique violations surface as gorm.ErrDuplicatedKey
	}

	var dialector gorm.Dialector
	switch driver {
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		// SQLite only needs a file path; the file is created if missing.
		dialector = sqlite.Open(dsn)
	case DriverSQLServer:
		dialector = sqlserver.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown db driver: %s", driver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("raw db handle: %w", err)
	}
	if driver == DriverSQLite {
		// one writer at a time, otherwise "database is locked"
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpen)
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdle)
	}
	return db, nil
}

// Migrate creates or updates the tables for every model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Conversation{},
		&models.Message{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// InitDB opens the database and applies migrations.
func InitDB(cfg *Config) (*gorm.DB, error) {
	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
