package config

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector returns the gorm dialector for the configured driver.
func (c *Config) Dialector() (gorm.Dialector, error) {
	switch c.DBDriver {
	case DriverPostgres:
		return postgres.Open(c.DBDSN), nil
	case DriverMySQL:
		return mysql.Open(c.DBDSN), nil
	case DriverSQLite:
		return sqlite.Open(c.DBDSN), nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
}

// InitDB opens the database connection.
func InitDB(c *Config) (*gorm.DB, error) {
	dialector, err := c.Dialector()
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if c.GinMode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", c.DBDriver, err)
	}
	return db, nil
}
