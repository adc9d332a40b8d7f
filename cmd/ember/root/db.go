package root

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"ember/internal/config"
	"ember/internal/engine"
	"ember/internal/storage"
	"ember/internal/widget"
)

func resolveConfigPath() string {
	if p := os.Getenv("EMBER_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "ember.yml"
	}
	return filepath.Join(home, ".ember.yml")
}

func openDB(ctx context.Context) (*sql.DB, string, func(), error) {
	// Optional .env for EMBER_DB / EMBER_CONFIG overrides; absence is fine.
	_ = godotenv.Load()

	path, err := storage.ResolveDBPath()
	if err != nil {
		return nil, "", nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, "", nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, path, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	db, dbPath, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	level := slog.LevelWarn
	if os.Getenv("EMBER_DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	svc := engine.NewService(db, cfg)
	svc.Log = logger
	svc.Snapshots = widget.FilePublisher{Path: widget.DefaultSnapshotPath(dbPath)}
	return svc, cleanup, nil
}
