package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fitz/taskflow/internal/app"
	"github.com/fitz/taskflow/internal/config"
	"github.com/fitz/taskflow/internal/neo4j"
	"github.com/fitz/taskflow/internal/prefs"
	"github.com/fitz/taskflow/internal/store"
)

// runtime is a controller wired to the configured backends.
type runtime struct {
	controller *app.Controller
	closers    []func() error
}

// openRuntime connects the backends named by cfg and restores preferences.
func openRuntime(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*runtime, error) {
	palette, err := config.LoadPalette(cfg.CategoriesPath)
	if err != nil {
		return nil, err
	}

	rt := &runtime{}

	var client *neo4j.Client
	if cfg.UsesNeo4j() {
		logger.Info("connecting to Neo4j", "uri", cfg.Neo4jURI, "database", cfg.Neo4jDatabase)
		client, err = neo4j.NewClientWithRetry(ctx, neo4j.Config{
			URI:      cfg.Neo4jURI,
			Username: cfg.Neo4jUsername,
			Password: cfg.Neo4jPassword,
			Database: cfg.Neo4jDatabase,
		}, nil)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, func() error { return client.Close(context.Background()) })
	}

	var tasks store.Store = store.NewMemory()
	if cfg.Store == config.StoreNeo4j {
		tasks = neo4j.NewTaskStore(client)
	}

	kv, err := rt.openPrefs(cfg, client)
	if err != nil {
		rt.Close()
		return nil, err
	}

	p := prefs.Load(ctx, kv, time.Now())
	controller, err := app.New(ctx, app.Options{
		Store:         tasks,
		Persister:     kv,
		Palette:       palette,
		Logger:        logger,
		View:          p.View,
		Month:         p.Month,
		TimelineWeeks: cfg.TimelineWeeks,
	})
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.controller = controller

	logger.Debug("runtime ready", "store", cfg.Store, "prefs", cfg.Prefs, "tasks", len(controller.Tasks()))
	return rt, nil
}

func (rt *runtime) openPrefs(cfg *config.Config, client *neo4j.Client) (prefs.Store, error) {
	switch cfg.Prefs {
	case config.PrefsMemory:
		return prefs.NewMemory(nil), nil
	case config.PrefsNeo4j:
		return neo4j.NewPrefStore(client), nil
	case config.PrefsSQLite:
		db, err := prefs.OpenSQLite(cfg.PrefsPath)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, db.Close)
		return db, nil
	case config.PrefsFile:
		return prefs.NewFile(cfg.PrefsPath), nil
	}
	return nil, fmt.Errorf("unknown preference backend %q", cfg.Prefs)
}

// Close releases the backends in reverse order of opening.
func (rt *runtime) Close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}
