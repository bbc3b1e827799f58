package i18n

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// I18n 国际化支持
// I18n provides internationalization support
type I18n struct {
	locale   string
	messages map[string]string
	mu       sync.RWMutex
}

// catalogs 按 locale 覆盖在英文之上
// catalogs overlay the English fallback per locale
var catalogs = map[string]map[string]string{
	"en":    EnMessages,
	"fr":    FrMessages,
	"zh-CN": ZhCNMessages,
}

// New 创建 i18n 实例
// New creates an i18n instance
func New(locale string) *I18n {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		locale = DetectLocale()
	}
	i := &I18n{}
	i.SetLocale(locale)
	return i
}

// SetLocale 切换 locale；不支持的 locale 使用英文文案
// SetLocale switches locale; unsupported locales fall back to English text
func (i *I18n) SetLocale(locale string) {
	locale = Normalize(locale)
	messages := make(map[string]string, len(EnMessages))
	// 先加载英文作为 fallback / Load English as fallback first
	for k, v := range EnMessages {
		messages[k] = v
	}
	if overlay, ok := catalogs[locale]; ok && locale != "en" {
		for k, v := range overlay {
			messages[k] = v
		}
	}

	i.mu.Lock()
	i.locale = locale
	i.messages = messages
	i.mu.Unlock()
}

// T 翻译函数 / Translation function
func (i *I18n) T(key string, args ...any) string {
	i.mu.RLock()
	tmpl, ok := i.messages[key]
	i.mu.RUnlock()

	if !ok {
		return key
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// Locale 返回当前 locale
// Locale returns current locale
func (i *I18n) Locale() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.locale
}

// Supported 是否存在该 locale 的文案
// Supported reports whether a catalog exists for the locale
func Supported(locale string) bool {
	_, ok := catalogs[Normalize(locale)]
	return ok
}

// DetectLocale 自动检测 locale
// DetectLocale auto-detects locale from environment
func DetectLocale() string {
	for _, env := range []string{"SMBSUITE_LANG", "LANG", "LC_ALL", "LC_MESSAGES"} {
		v := strings.TrimSpace(os.Getenv(env))
		if v == "" {
			continue
		}
		return Normalize(v)
	}
	return "en"
}

// Normalize 规范化 locale 名称，例如 fr_FR.UTF-8 -> fr
// Normalize canonicalises a locale name, e.g. fr_FR.UTF-8 -> fr
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "en"
	}
	// 去掉 .UTF-8 等后缀 / Remove .UTF-8 suffix
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		s = s[:idx]
	}
	s = strings.ReplaceAll(s, "_", "-")
	lower := strings.ToLower(s)

	switch {
	case strings.HasPrefix(lower, "zh"):
		return "zh-CN"
	case strings.HasPrefix(lower, "fr"):
		return "fr"
	case strings.HasPrefix(lower, "en"), lower == "c", lower == "posix":
		return "en"
	}
	// 默认返回原始值 / Default return original
	return s
}
