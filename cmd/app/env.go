package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/starford/ansuz/internal"
	"github.com/starford/ansuz/internal/index"
	"github.com/starford/ansuz/internal/mcpserver"
	"github.com/starford/ansuz/internal/noteservice"
	"github.com/starford/ansuz/internal/storage"
)

// env bundles the vault store, catalog, and note service for one CLI
// invocation. Serve mode builds its own inside internal.Run; everything
// else goes through here.
type env struct {
	cfg   *internal.Config
	store storage.Provider
	db    *index.DB
	svc   *noteservice.Service
}

func newEnv(cfg *internal.Config) (*env, error) {
	// CLI output is for humans; keep log noise on stderr and above Info.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if err := os.MkdirAll(cfg.Vault.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create vault dir: %w", err)
	}
	store, err := storage.NewFS(cfg.Vault.Path)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("init index: %w", err)
	}
	if err := index.Sync(db, store, slog.Default()); err != nil {
		slog.Warn("sync failed", slog.String("error", err.Error()))
	}

	return &env{
		cfg:   cfg,
		store: store,
		db:    db,
		svc:   noteservice.NewService(store, db, cfg.Vault.DefaultSubfolder),
	}, nil
}

// absPath turns a vault-relative note path into an absolute one.
func (e *env) absPath(rel string) string {
	return filepath.Join(e.cfg.Vault.Path, filepath.FromSlash(rel))
}

func (e *env) mcp() *mcpserver.Server {
	return mcpserver.New(e.svc, e.store)
}

func (e *env) Close() {
	if err := e.db.Close(); err != nil {
		slog.Warn("close index", slog.String("error", err.Error()))
	}
}
