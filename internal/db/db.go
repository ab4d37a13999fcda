package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultSQLitePath = "tapcard.db"
)

// DB is the shared database handle.
var DB *gorm.DB

// ErrUnsupportedDriver is returned when DB_DRIVER names an unknown backend.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Init opens the database and migrates the card tables.
// An empty sqlite dsn falls back to tapcard.db.
func Init(driver, dsn string) error {
	dialector, err := dialectorFor(driver, dsn)
	if err != nil {
		return err
	}

	DB, err = gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return fmt.Errorf("open %s database: %w", driver, err)
	}

	return Migrate(DB)
}

// Migrate creates or updates every table the service reads and writes.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&Template{},
		&Profile{},
		&SocialLink{},
		&CardStatistic{},
		&CardVisit{},
		&AnalyticsEvent{},
	)
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverSQLite:
		path := strings.TrimSpace(dsn)
		if path == "" {
			path = defaultSQLitePath
		}
		if !strings.HasPrefix(path, "file:") {
			if err := ensureParentDir(path); err != nil {
				return nil, err
			}
		}
		return sqlite.Open(path), nil
	case DriverPostgres:
		if strings.TrimSpace(dsn) == "" {
			return nil, errors.New("postgres dsn is required")
		}
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, driver)
	}
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
