// Package sqlite implements the device-local store on an embedded SQLite
// database, the durable stand-in for the browser local storage the original
// web client relied on.
package sqlite

import (
	"context"
	"log/slog"

	"shoplocal/config"
	"shoplocal/internal/domain/lifecycle"
	"shoplocal/internal/errors"
	"shoplocal/internal/infra/persistence/model"

	"github.com/glebarez/sqlite"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the store, runs migrations, and registers shutdown.
func New(params Params) (*gorm.DB, error) {
	path := params.Config.Store.Path
	if path == "" {
		path = "shoplocal.db"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite store")
	}

	db = db.Session(&gorm.Session{
		// Single-writer embedded store; per-statement transactions only add
		// overhead here.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	if err := db.AutoMigrate(
		&model.SessionModel{},
		&model.CredentialModel{},
		&model.VisitModel{},
		&model.CartItemModel{},
	); err != nil {
		return nil, errors.Wrap(err, "failed to migrate sqlite store")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sqlite sql.DB")
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping sqlite store")
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			return sqlDB.Close()
		},
	})

	return db, nil
}
