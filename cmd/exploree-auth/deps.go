package main

import (
	"database/sql"

	auth "github.com/Exploree-Solutions/exploree-auth"
	"github.com/Exploree-Solutions/exploree-auth/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"go.uber.org/zap"
)

func openDB(cfg *config.Config) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

func newLogger(cfg *config.Config) (auth.Logger, func(), error) {
	var zl *zap.Logger
	var err error

	if cfg.IsProduction() {
		zl, err = zap.NewProduction()
	} else {
		zl, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, nil, err
	}

	sugar := zl.Sugar()
	cleanup := func() { _ = zl.Sync() }

	return zapAdapter{sugar}, cleanup, nil
}

// zapAdapter bridges zap's sugared logger to the printf-style auth.Logger.
type zapAdapter struct {
	s *zap.SugaredLogger
}

func (l zapAdapter) Debug(format string, args ...any) { l.s.Debugf(format, args...) }
func (l zapAdapter) Info(format string, args ...any)  { l.s.Infof(format, args...) }
func (l zapAdapter) Warn(format string, args ...any)  { l.s.Warnf(format, args...) }
func (l zapAdapter) Error(format string, args ...any) { l.s.Errorf(format, args...) }
