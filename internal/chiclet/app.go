// Package chiclet wires the slicer core to its host-side stores. Commands
// and the TUI consume App instead of cherry-picking raw dependencies.
package chiclet

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/colonyops/chiclet/internal/core/config"
	"github.com/colonyops/chiclet/internal/core/dataview"
	"github.com/colonyops/chiclet/internal/core/identity"
	"github.com/colonyops/chiclet/internal/core/logging"
	"github.com/colonyops/chiclet/internal/data/db"
	"github.com/colonyops/chiclet/internal/data/stores"
)

// App is the central entry point for slicing one data file.
type App struct {
	Config     *config.Config
	DB         *db.DB
	Slicer     *Service
	Selection  *stores.SelectionStore
	Properties *stores.PropertyStore
	Scope      string
}

// Open connects to the database and binds stores to dataFile. The data file
// itself is not read until Service.Load.
func Open(ctx context.Context, cfg *config.Config, dataFile string) (*App, error) {
	scope, err := Scope(dataFile)
	if err != nil {
		return nil, err
	}

	database, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}

	sel, err := stores.NewSelectionStore(ctx, database, scope, cfg.Selection.MaxSelected)
	if err != nil {
		_ = database.Close()
		return nil, err
	}
	props := stores.NewPropertyStore(database, scope)

	svc := NewService(
		dataview.NewFileSource(dataFile, cfg.Data.PageSize),
		sel,
		props,
		identity.HashResolver{},
		logging.Scoped("slicer", scope),
	)

	return &App{
		Config:     cfg,
		DB:         database,
		Slicer:     svc,
		Selection:  sel,
		Properties: props,
		Scope:      scope,
	}, nil
}

// Close releases the database.
func (a *App) Close() error {
	return a.DB.Close()
}

// Scope returns the store partition key for a data file: its absolute path.
func Scope(dataFile string) (string, error) {
	if dataFile == "" {
		return "", fmt.Errorf("no data file configured")
	}
	abs, err := filepath.Abs(dataFile)
	if err != nil {
		return "", fmt.Errorf("resolve data file: %w", err)
	}
	return abs, nil
}

// OpenDB opens the configured database. A corrupted database is moved aside
// and recreated once.
func OpenDB(cfg *config.Config) (*db.DB, error) {
	log := logging.Component("db")
	opts := db.OpenOptions{
		BusyTimeout:  cfg.Database.BusyTimeout,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		Logger:       log,
	}

	database, err := db.Open(cfg.DataDir, opts)
	if err == nil {
		return database, nil
	}
	if !stores.IsCorruptionError(err) {
		return nil, err
	}

	backup, rerr := stores.RecoverFromCorruption(cfg.DataDir)
	if rerr != nil {
		return nil, fmt.Errorf("%w (recovery failed: %w)", err, rerr)
	}
	log.Warn().Err(err).Str("backup", backup).Msg("database was corrupted, starting fresh")

	return db.Open(cfg.DataDir, opts)
}
