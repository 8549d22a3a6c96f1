// Package db opens, migrates and seeds the database of the development backend.
package db

import (
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/portal-prestadores/portal/internal/config"
	"github.com/portal-prestadores/portal/internal/db/dsn"
	"github.com/portal-prestadores/portal/internal/db/models"
)

// ErrUnknownEngine is returned for an unsupported gorm engine.
var ErrUnknownEngine = errors.New("unknown gorm engine")

// Open connects to the database selected by cfg.GormEngine and migrates the schema.
func Open(cfg config.DB, gormCfg *gorm.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch strings.ToLower(cfg.GormEngine) {
	case "", "sqlite":
		dialector = sqlite.Open(dsn.SQLite(cfg))
	case "mysql":
		dialector = gormmysql.Open(dsn.MySQL(cfg))
	case "postgres":
		dialector = postgres.Open(dsn.Postgres(cfg))
	default:
		return nil, errors.Wrap(ErrUnknownEngine, cfg.GormEngine)
	}

	if gormCfg == nil {
		gormCfg = &gorm.Config{}
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if dialector.Name() == "sqlite" {
		// an in-memory database lives as long as its single connection
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "failed to access sql pool")
		}

		sqlDB.SetMaxOpenConns(1)
	}

	if err = db.AutoMigrate(models.All()...); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	return db, nil
}
