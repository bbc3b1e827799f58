package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// APIConfig 远端 API 连接配置
// APIConfig describes how to reach the remote API
type APIConfig struct {
	BaseURL string `json:"base_url" yaml:"base_url"`
	// TimeoutMS 为 0 时不设超时，请求等待底层传输结束。
	// TimeoutMS of 0 means no timeout; requests wait for the transport to resolve.
	TimeoutMS int    `json:"timeout_ms" yaml:"timeout_ms"`
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

type StorageConfig struct {
	BaseDir string `json:"base_dir" yaml:"base_dir"`
}

type UIConfig struct {
	Language string `json:"language" yaml:"language"`
	Theme    string `json:"theme" yaml:"theme"`
	Mode     string `json:"mode" yaml:"mode"`
}

type QuotesConfig struct {
	StrictValidation    bool   `json:"strict_validation" yaml:"strict_validation"`
	DefaultStatusFilter string `json:"default_status_filter" yaml:"default_status_filter"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
	File  string `json:"file" yaml:"file"`
}

type Config struct {
	API     APIConfig     `json:"api" yaml:"api"`
	Storage StorageConfig `json:"storage" yaml:"storage"`
	UI      UIConfig      `json:"ui" yaml:"ui"`
	Quotes  QuotesConfig  `json:"quotes" yaml:"quotes"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

type fileAPIConfig struct {
	BaseURL   *string `json:"base_url" yaml:"base_url"`
	TimeoutMS *int    `json:"timeout_ms" yaml:"timeout_ms"`
	UserAgent *string `json:"user_agent" yaml:"user_agent"`
}

type fileQuotesConfig struct {
	StrictValidation    *bool   `json:"strict_validation" yaml:"strict_validation"`
	DefaultStatusFilter *string `json:"default_status_filter" yaml:"default_status_filter"`
}

type fileConfig struct {
	API     *fileAPIConfig    `json:"api" yaml:"api"`
	Storage *StorageConfig    `json:"storage" yaml:"storage"`
	UI      *UIConfig         `json:"ui" yaml:"ui"`
	Quotes  *fileQuotesConfig `json:"quotes" yaml:"quotes"`
	Log     *LogConfig        `json:"log" yaml:"log"`
}

func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:   DefaultBaseURL,
			TimeoutMS: 0,
			UserAgent: DefaultUserAgent,
		},
		Storage: StorageConfig{
			BaseDir: "~/.smbsuite",
		},
		UI: UIConfig{
			Language: "",
			Theme:    ThemeDark,
			Mode:     ModeTUI,
		},
		Quotes: QuotesConfig{
			StrictValidation: false,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load 依次合并：默认值 → 全局配置 → 项目配置 → .env → 环境变量
// Load merges in order: defaults → global file → project file → .env → environment
func Load(path string) (Config, error) {
	cfg := Default()

	for _, globalPath := range globalConfigPaths() {
		if err := mergeFromFile(&cfg, globalPath); err != nil {
			return Config{}, err
		}
	}

	resolvedPath := strings.TrimSpace(path)
	if envPath := strings.TrimSpace(os.Getenv("SMBSUITE_CONFIG_PATH")); envPath != "" {
		resolvedPath = envPath
	}
	if resolvedPath == "" {
		resolvedPath = findProjectConfigPath()
	}
	if err := mergeFromFile(&cfg, resolvedPath); err != nil {
		return Config{}, err
	}

	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	if err := normalize(&cfg); err != nil {
		return Config{}, err
	}
	return applyEnv(cfg)
}

func globalConfigPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	dir := filepath.Join(home, ".smbsuite")
	return []string{
		filepath.Join(dir, "config.yaml"),
		filepath.Join(dir, "config.json"),
	}
}

func findProjectConfigPath() string {
	candidates := []string{
		"smbsuite.config.json",
		"smbsuite.config.yaml",
		".smbsuite/config.json",
		".smbsuite/config.yaml",
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// loadDotEnv 读取 .env；已存在的环境变量优先，文件缺失不是错误。
// loadDotEnv reads a .env file; real environment variables win and a missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func mergeFromFile(cfg *Config, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	resolved, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("expand config path %q: %w", path, err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %q: %w", resolved, err)
	}

	var fileCfg fileConfig
	if isYAML(resolved) {
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return fmt.Errorf("parse config %q: %w", resolved, err)
		}
	} else {
		if err := json.Unmarshal(jsonc.ToJSON(data), &fileCfg); err != nil {
			return fmt.Errorf("parse config %q: %w", resolved, err)
		}
	}
	applyFileConfig(cfg, fileCfg)
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func applyFileConfig(cfg *Config, fc fileConfig) {
	if fc.API != nil {
		if fc.API.BaseURL != nil && strings.TrimSpace(*fc.API.BaseURL) != "" {
			cfg.API.BaseURL = *fc.API.BaseURL
		}
		if fc.API.TimeoutMS != nil {
			cfg.API.TimeoutMS = *fc.API.TimeoutMS
		}
		if fc.API.UserAgent != nil && strings.TrimSpace(*fc.API.UserAgent) != "" {
			cfg.API.UserAgent = *fc.API.UserAgent
		}
	}
	if fc.Storage != nil {
		cfg.Storage = mergeStorage(cfg.Storage, *fc.Storage)
	}
	if fc.UI != nil {
		cfg.UI = mergeUI(cfg.UI, *fc.UI)
	}
	if fc.Quotes != nil {
		if fc.Quotes.StrictValidation != nil {
			cfg.Quotes.StrictValidation = *fc.Quotes.StrictValidation
		}
		if fc.Quotes.DefaultStatusFilter != nil {
			cfg.Quotes.DefaultStatusFilter = *fc.Quotes.DefaultStatusFilter
		}
	}
	if fc.Log != nil {
		if strings.TrimSpace(fc.Log.Level) != "" {
			cfg.Log.Level = fc.Log.Level
		}
		if strings.TrimSpace(fc.Log.File) != "" {
			cfg.Log.File = fc.Log.File
		}
	}
}

func mergeStorage(base StorageConfig, override StorageConfig) StorageConfig {
	if strings.TrimSpace(override.BaseDir) != "" {
		base.BaseDir = override.BaseDir
	}
	return base
}

func mergeUI(base UIConfig, override UIConfig) UIConfig {
	if strings.TrimSpace(override.Language) != "" {
		base.Language = override.Language
	}
	if strings.TrimSpace(override.Theme) != "" {
		base.Theme = override.Theme
	}
	if strings.TrimSpace(override.Mode) != "" {
		base.Mode = override.Mode
	}
	return base
}

func normalize(cfg *Config) error {
	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	if cfg.API.TimeoutMS < 0 {
		return fmt.Errorf("invalid api.timeout_ms: %d", cfg.API.TimeoutMS)
	}
	if strings.TrimSpace(cfg.API.UserAgent) == "" {
		cfg.API.UserAgent = DefaultUserAgent
	}

	if strings.TrimSpace(cfg.Storage.BaseDir) == "" {
		cfg.Storage.BaseDir = Default().Storage.BaseDir
	}
	storageDir, err := expandPath(cfg.Storage.BaseDir)
	if err != nil {
		return err
	}
	cfg.Storage.BaseDir = storageDir

	cfg.UI.Language = strings.TrimSpace(cfg.UI.Language)
	switch strings.ToLower(strings.TrimSpace(cfg.UI.Theme)) {
	case ThemeLight:
		cfg.UI.Theme = ThemeLight
	default:
		cfg.UI.Theme = ThemeDark
	}
	switch strings.ToLower(strings.TrimSpace(cfg.UI.Mode)) {
	case ModeREPL:
		cfg.UI.Mode = ModeREPL
	default:
		cfg.UI.Mode = ModeTUI
	}

	cfg.Quotes.DefaultStatusFilter = strings.TrimSpace(cfg.Quotes.DefaultStatusFilter)

	switch strings.ToLower(strings.TrimSpace(cfg.Log.Level)) {
	case "debug", "info", "warn", "error":
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	default:
		cfg.Log.Level = "info"
	}
	if strings.TrimSpace(cfg.Log.File) == "" {
		cfg.Log.File = filepath.Join(cfg.Storage.BaseDir, DefaultLogFileName)
	} else {
		logFile, err := expandPath(cfg.Log.File)
		if err != nil {
			return err
		}
		cfg.Log.File = logFile
	}
	return nil
}

func applyEnv(cfg Config) (Config, error) {
	if v := strings.TrimSpace(os.Getenv("SMBSUITE_BASE_URL")); v != "" {
		cfg.API.BaseURL = v
	} else if v := strings.TrimSpace(os.Getenv("VITE_BACKEND_URL")); v != "" {
		cfg.API.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("SMBSUITE_TIMEOUT_MS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid SMBSUITE_TIMEOUT_MS: %q", v)
		}
		cfg.API.TimeoutMS = n
	}
	if v := strings.TrimSpace(os.Getenv("SMBSUITE_STATE_DIR")); v != "" {
		if cfg.Log.File == filepath.Join(cfg.Storage.BaseDir, DefaultLogFileName) {
			cfg.Log.File = ""
		}
		cfg.Storage.BaseDir = v
	}
	if v := strings.TrimSpace(os.Getenv("SMBSUITE_LANG")); v != "" {
		cfg.UI.Language = v
	}
	if v := strings.TrimSpace(os.Getenv("SMBSUITE_LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}

	return cfg, normalize(&cfg)
}

// DBPath 返回 SQLite 数据库文件路径
// DBPath returns the SQLite database file path
func (c Config) DBPath() string {
	return filepath.Join(c.Storage.BaseDir, DefaultDBFileName)
}

// HistoryPath 返回 REPL 历史文件路径
// HistoryPath returns the REPL history file path
func (c Config) HistoryPath() string {
	return filepath.Join(c.Storage.BaseDir, "repl.history")
}

func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		if path == "~" {
			path = home
		} else {
			path = filepath.Join(home, strings.TrimPrefix(path, "~/"))
		}
	}
	return filepath.Abs(path)
}
