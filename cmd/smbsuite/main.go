// smbsuite is a terminal client for the SMB management backend: quotes,
// contacts, projects and settings. It starts the full-screen TUI by
// default and falls back to a line-oriented REPL when --mode=repl is
// given or stdin is not a terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"smbsuite/internal/bootstrap"
	"smbsuite/internal/config"
	"smbsuite/internal/repl"
	"smbsuite/internal/tui"
)

var version = "dev"

type options struct {
	configPath string
	mode       string
	baseURL    string
	lang       string
	initConfig bool
	version    bool
	help       bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	flagSet := pflag.NewFlagSet("smbsuite", pflag.ContinueOnError)
	opts, err := parseOptions(flagSet, args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	switch {
	case opts.help:
		printHelp(stdout, flagSet)
		return nil
	case opts.version:
		fmt.Fprintf(stdout, "smbsuite %s\n", version)
		return nil
	case opts.initConfig:
		path, err := config.InitProjectConfigScaffold()
		if err != nil {
			return fmt.Errorf("init config: %w", err)
		}
		fmt.Fprintf(stdout, "project config: %s\n", path)
		return nil
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg, err = applyOptions(cfg, opts)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	res, err := bootstrap.Build(cfg, logger)
	if err != nil {
		return err
	}
	defer res.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mode := resolveMode(cfg.UI.Mode, term.IsTerminal(int(os.Stdin.Fd())))
	logger.Info("starting", "mode", mode, "base_url", cfg.API.BaseURL, "version", version)
	if mode == config.ModeREPL {
		return repl.Run(ctx, res, saveLanguage)
	}
	return tui.Run(ctx, res, saveLanguage)
}

func parseOptions(flagSet *pflag.FlagSet, args []string) (options, error) {
	var opts options
	flagSet.StringVarP(&opts.configPath, "config", "c", "", "path to config file (JSON, JSONC or YAML)")
	flagSet.StringVarP(&opts.mode, "mode", "m", "", "interface mode: tui or repl")
	flagSet.StringVar(&opts.baseURL, "base-url", "", "backend base URL (overrides config and environment)")
	flagSet.StringVar(&opts.lang, "lang", "", "interface language: en, fr or zh-CN")
	flagSet.BoolVar(&opts.initConfig, "init-config", false, "write ./.smbsuite/config.json and exit")
	flagSet.BoolVar(&opts.version, "version", false, "print version and exit")
	flagSet.BoolVarP(&opts.help, "help", "h", false, "show help")
	flagSet.SetOutput(io.Discard)

	if err := flagSet.Parse(args); err != nil {
		return opts, err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(rest, " "))
	}
	return opts, nil
}

// applyOptions 命令行参数覆盖配置文件与环境变量
// applyOptions lets command-line flags override the file and environment config
func applyOptions(cfg config.Config, opts options) (config.Config, error) {
	if v := strings.TrimSpace(opts.baseURL); v != "" {
		cfg.API.BaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(opts.lang); v != "" {
		cfg.UI.Language = v
	}
	switch strings.ToLower(strings.TrimSpace(opts.mode)) {
	case "":
	case config.ModeTUI:
		cfg.UI.Mode = config.ModeTUI
	case config.ModeREPL:
		cfg.UI.Mode = config.ModeREPL
	default:
		return cfg, fmt.Errorf("invalid --mode %q: want tui or repl", opts.mode)
	}
	return cfg, nil
}

// resolveMode 非终端输入时只能使用 REPL
// resolveMode forces the REPL when stdin is not a terminal
func resolveMode(mode string, interactive bool) string {
	if !interactive {
		return config.ModeREPL
	}
	if mode == config.ModeREPL {
		return config.ModeREPL
	}
	return config.ModeTUI
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openLogger 日志写入文件，避免干扰终端界面
// openLogger writes JSON log records to a file so they never reach the terminal UI
func openLogger(cfg config.LogConfig) (*slog.Logger, func(), error) {
	if strings.TrimSpace(cfg.File) == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: parseLevel(cfg.Level)})
	return slog.New(handler), func() { _ = f.Close() }, nil
}

func saveLanguage(locale string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get current working directory: %w", err)
	}
	return config.WriteUILanguage(cwd, locale)
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage: smbsuite [flags]\n\nFlags:\n%s", flagSet.FlagUsages())
}
