package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"smbsuite/internal/i18n"
)

// KeyMap 定义全局快捷键绑定，帮助文字随 locale 变化
// KeyMap defines global keybindings; help text follows the locale
type KeyMap struct {
	SwitchPanel key.Binding
	NextField   key.Binding
	PrevField   key.Binding
	Continue    key.Binding
	Quit        key.Binding
	Submit      key.Binding
	Cancel      key.Binding
	Reload      key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
}

// DefaultKeyMap 默认快捷键
// DefaultKeyMap returns default keybindings
func DefaultKeyMap(msg *i18n.I18n) KeyMap {
	bind := func(desc string, keys ...string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], msg.T(desc)))
	}
	k := KeyMap{
		SwitchPanel: bind("key.panels", "tab"),
		NextField:   bind("key.next_field", "tab", "down"),
		PrevField:   bind("key.prev_field", "shift+tab", "up"),
		Continue:    bind("key.continue", "enter"),
		Quit:        bind("key.quit", "ctrl+c"),
		Submit:      bind("key.run", "enter"),
		Cancel:      bind("key.cancel", "esc"),
		Reload:      bind("key.reload", "ctrl+r"),
		ScrollUp:    bind("key.scroll_up", "up"),
		ScrollDown:  bind("key.scroll_down", "down"),
		PageUp:      bind("key.page_up", "pgup"),
		PageDown:    bind("key.page_down", "pgdown"),
	}
	k.ScrollUp.SetHelp("↑", msg.T("key.scroll_up"))
	k.ScrollDown.SetHelp("↓", msg.T("key.scroll_down"))
	return k
}

// ShortHelp 主界面底部提示 / ShortHelp is the main screen hint line
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchPanel, k.Reload, k.Submit, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.ShortHelp(),
		{k.ScrollUp, k.ScrollDown, k.PageUp, k.PageDown, k.Cancel},
	}
}

// LoginHelp 登录表单提示 / LoginHelp is the login form hint line
func (k KeyMap) LoginHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Continue, k.Quit}
}

func newHelp() help.Model {
	h := help.New()
	h.ShortSeparator = " · "
	return h
}
