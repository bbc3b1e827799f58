package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LegacySessionFile 旧版会话文件名 / Legacy session file name
const LegacySessionFile = "session.json"

// MigrateFromJSON 将旧版 session.json（扁平 JSON 对象）导入键值表，成功后重命名为 *.migrated
// MigrateFromJSON imports a legacy flat session.json object into the key-value table and renames it to *.migrated
//
// 字符串字段按原值保存，其余字段保存为压缩后的 JSON 文本。
// String fields are stored verbatim; every other field is stored as compact JSON text.
func MigrateFromJSON(baseDir string, kv KV) (int, error) {
	baseDir = strings.TrimSpace(baseDir)
	if baseDir == "" {
		return 0, nil
	}

	path := filepath.Join(baseDir, LegacySessionFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read legacy session: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return 0, fmt.Errorf("parse legacy session %s: %w", path, err)
	}

	values := make(map[string]string, len(fields))
	for key, raw := range fields {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		// 已存在的键不覆盖 / Never overwrite keys already migrated
		if _, ok, err := kv.Get(key); err != nil {
			return 0, err
		} else if ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			values[key] = s
			continue
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			continue
		}
		if buf.String() == "null" {
			continue
		}
		values[key] = buf.String()
	}

	if err := kv.SetMany(values); err != nil {
		return 0, fmt.Errorf("migrate legacy session: %w", err)
	}
	if err := os.Rename(path, path+".migrated"); err != nil {
		return len(values), fmt.Errorf("rename legacy session: %w", err)
	}
	return len(values), nil
}
