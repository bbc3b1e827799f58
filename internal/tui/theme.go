package tui

import (
	"github.com/charmbracelet/lipgloss"

	"smbsuite/internal/config"
	"smbsuite/internal/quote"
)

// Theme 定义 TUI 主题色彩和样式
// Theme defines TUI colors and styles
type Theme struct {
	// 基础色 / Base colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Danger    lipgloss.Color
	Success   lipgloss.Color
	Muted     lipgloss.Color
	Text      lipgloss.Color
	TextDim   lipgloss.Color
	BgBar     lipgloss.Color
	Border    lipgloss.Color

	// GlamourStyle 表格渲染使用的 glamour 标准样式名
	// GlamourStyle is the glamour standard style used for tables
	GlamourStyle string

	// 预构建样式 / Pre-built styles
	TitleStyle       lipgloss.Style
	ActiveTabStyle   lipgloss.Style
	InactiveTabStyle lipgloss.Style
	StatusBarStyle   lipgloss.Style
	PanelStyle       lipgloss.Style
	InputStyle       lipgloss.Style
	FormStyle        lipgloss.Style
	ErrorStyle       lipgloss.Style
	SuccessStyle     lipgloss.Style
	MutedStyle       lipgloss.Style
	TotalStyle       lipgloss.Style
	DraftBadge       lipgloss.Style
	SentBadge        lipgloss.Style
	AcceptedBadge    lipgloss.Style
}

// DarkTheme 暗色主题（默认）
// DarkTheme is the default dark theme
func DarkTheme() Theme {
	return buildTheme(Theme{
		Primary:      lipgloss.Color("#7C3AED"),
		Secondary:    lipgloss.Color("#06B6D4"),
		Accent:       lipgloss.Color("#F59E0B"),
		Danger:       lipgloss.Color("#EF4444"),
		Success:      lipgloss.Color("#10B981"),
		Muted:        lipgloss.Color("#6B7280"),
		Text:         lipgloss.Color("#E5E7EB"),
		TextDim:      lipgloss.Color("#9CA3AF"),
		BgBar:        lipgloss.Color("#111827"),
		Border:       lipgloss.Color("#374151"),
		GlamourStyle: "dark",
	})
}

// LightTheme 亮色主题，与 Web 端默认设置一致
// LightTheme matches the web app's default light setting
func LightTheme() Theme {
	return buildTheme(Theme{
		Primary:      lipgloss.Color("#2563EB"),
		Secondary:    lipgloss.Color("#0891B2"),
		Accent:       lipgloss.Color("#D97706"),
		Danger:       lipgloss.Color("#DC2626"),
		Success:      lipgloss.Color("#059669"),
		Muted:        lipgloss.Color("#6B7280"),
		Text:         lipgloss.Color("#111827"),
		TextDim:      lipgloss.Color("#4B5563"),
		BgBar:        lipgloss.Color("#E5E7EB"),
		Border:       lipgloss.Color("#D1D5DB"),
		GlamourStyle: "light",
	})
}

// ThemeFor 按配置名选择主题，未知名称使用暗色
// ThemeFor picks a theme by config name; unknown names use dark
func ThemeFor(name string) Theme {
	if name == config.ThemeLight {
		return LightTheme()
	}
	return DarkTheme()
}

func buildTheme(t Theme) Theme {
	t.TitleStyle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	t.ActiveTabStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(t.Primary).
		Padding(0, 2).
		Bold(true)

	t.InactiveTabStyle = lipgloss.NewStyle().
		Foreground(t.TextDim).
		Padding(0, 2)

	t.StatusBarStyle = lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.BgBar)

	t.PanelStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	t.InputStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border)

	t.FormStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 3)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(t.Danger).
		Bold(true)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	t.MutedStyle = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.TotalStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	badge := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Padding(0, 1)
	t.DraftBadge = badge.Background(t.Muted)
	t.SentBadge = badge.Background(t.Secondary)
	t.AcceptedBadge = badge.Background(t.Success)

	return t
}

// Badge 返回报价状态对应的徽标样式
// Badge returns the badge style for a quote status
func (t Theme) Badge(status string) lipgloss.Style {
	switch status {
	case quote.StatusSent:
		return t.SentBadge
	case quote.StatusAccepted:
		return t.AcceptedBadge
	default:
		return t.DraftBadge
	}
}
