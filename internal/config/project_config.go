package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
)

// InitProjectConfigScaffold 在当前工作目录下初始化项目级配置模板（./.smbsuite/config.json）。
// InitProjectConfigScaffold initializes a project-level config scaffold (./.smbsuite/config.json) in the current working directory.
func InitProjectConfigScaffold() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get current working directory: %w", err)
	}

	dir := filepath.Join(cwd, ".smbsuite")
	path := filepath.Join(dir, "config.json")

	// 若项目已经有配置，则尊重用户现有配置。
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return "", fmt.Errorf("project config path is a directory: %s", path)
		}
		return path, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat project config: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir .smbsuite: %w", err)
	}

	data, err := json.MarshalIndent(Default(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write project config: %w", err)
	}
	return path, nil
}

// WriteUILanguage 将 ui.language 写入项目配置（./.smbsuite/config.json）；目录不存在则创建
// WriteUILanguage writes ui.language to project config (./.smbsuite/config.json); creates dir if needed
func WriteUILanguage(projectDir, language string) error {
	language = strings.TrimSpace(language)
	if language == "" {
		return errors.New("language is empty")
	}
	dir := filepath.Join(strings.TrimSpace(projectDir), ".smbsuite")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir .smbsuite: %w", err)
	}
	path := filepath.Join(dir, "config.json")
	var root map[string]any
	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(jsonc.ToJSON(data), &root); err != nil {
			root = nil
		}
	}
	if root == nil {
		root = make(map[string]any)
	}
	ui, _ := root["ui"].(map[string]any)
	if ui == nil {
		ui = make(map[string]any)
	}
	ui["language"] = language
	root["ui"] = ui
	data, err = json.MarshalIndent(root, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
