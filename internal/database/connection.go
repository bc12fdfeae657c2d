package database

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/thereayou/blog-lite/internal/config"
	"github.com/thereayou/blog-lite/internal/models"
)

// Connect opens the store described by cfg and creates missing tables.
func Connect(cfg config.DatabaseConfig) (*Database, error) {
	dialector, inMemory, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(cfg.SlowThreshold),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if inMemory {
		// every connection to :memory: is a separate database
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	err = db.AutoMigrate(&models.User{}, &models.Post{})
	if err != nil {
		return nil, err
	}

	return NewDatabase(db), nil
}

func openDialector(cfg config.DatabaseConfig) (gorm.Dialector, bool, error) {
	switch {
	case cfg.IsPostgres():
		return postgres.Open(cfg.URL), false, nil
	case cfg.IsSQLite():
		path := strings.TrimPrefix(strings.TrimPrefix(cfg.URL, "sqlite://"), "/")
		if path == "" || path == ":memory:" {
			return sqlite.Open("file::memory:?_foreign_keys=on"), true, nil
		}
		return sqlite.Open(sqliteDSN(path)), false, nil
	}
	return nil, false, fmt.Errorf("unsupported DATABASE_URL %q", cfg.URL)
}

// sqliteDSN turns on foreign keys (needed for ON DELETE CASCADE) and a busy
// timeout so concurrent writers wait instead of failing.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}
