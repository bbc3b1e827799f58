package bootstrap

import (
	"fmt"
	"io"
	"log/slog"

	"smbsuite/internal/api"
	"smbsuite/internal/auth"
	"smbsuite/internal/config"
	"smbsuite/internal/console"
	"smbsuite/internal/i18n"
	"smbsuite/internal/screen"
	"smbsuite/internal/session"
	"smbsuite/internal/storage"
)

// BuildResult 与 UI 无关的构建结果，供 main 构造 REPL 或 TUI
// BuildResult is UI-agnostic; main uses it to construct the REPL or the TUI
type BuildResult struct {
	Config   config.Config
	Store    *storage.SQLiteStore
	Session  *session.Store
	Client   *api.Client
	Auth     *auth.Flow
	Quotes   *screen.Quotes
	Messages *i18n.I18n
	Logger   *slog.Logger
}

// Build 按顺序初始化存储、会话、网关、认证与报价页；调用方负责 defer result.Close()
// Build wires storage, session, gateway, auth and the quote screen in order; caller must defer result.Close()
func Build(cfg config.Config, logger *slog.Logger) (*BuildResult, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	store, err := storage.NewSQLiteStore(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	migrated, err := storage.MigrateFromJSON(cfg.Storage.BaseDir, store)
	if err != nil {
		logger.Warn("legacy session migration failed", "err", err)
	} else if migrated > 0 {
		logger.Info("migrated legacy session", "keys", migrated)
	}

	sess := session.New(store, logger.With("component", "session"))
	client := api.NewClient(cfg.API, sess, logger.With("component", "api"))
	flow := auth.NewFlow(client, sess, logger.With("component", "auth"))
	quotes := screen.NewQuotes(client, screen.Options{
		StatusFilter:     cfg.Quotes.DefaultStatusFilter,
		StrictValidation: cfg.Quotes.StrictValidation,
	}, logger.With("component", "quotes"))

	return &BuildResult{
		Config:   cfg,
		Store:    store,
		Session:  sess,
		Client:   client,
		Auth:     flow,
		Quotes:   quotes,
		Messages: i18n.New(cfg.UI.Language),
		Logger:   logger,
	}, nil
}

// NewConsole 基于构建结果创建命令解释器
// NewConsole creates the command interpreter on top of the build result
func (r *BuildResult) NewConsole(out io.Writer, prompter console.Prompter, saveLanguage func(string) error) *console.Console {
	return console.New(console.Options{
		Auth:          r.Auth,
		Backend:       r.Client,
		Quotes:        r.Quotes,
		Confirmations: r.Store,
		Messages:      r.Messages,
		Prompter:      prompter,
		Out:           out,
		Logger:        r.Logger.With("component", "console"),
		SaveLanguage:  saveLanguage,
	})
}

func (r *BuildResult) Close() error {
	if r == nil || r.Store == nil {
		return nil
	}
	return r.Store.Close()
}
