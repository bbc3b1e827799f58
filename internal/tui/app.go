package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"smbsuite/internal/auth"
	"smbsuite/internal/bootstrap"
	"smbsuite/internal/console"
	"smbsuite/internal/i18n"
	"smbsuite/internal/screen"
)

// PanelID 面板标识
// PanelID identifies a panel
type PanelID int

const (
	PanelQuotes PanelID = iota
	PanelDraft
	PanelOutput
	panelCount
)

type screenID int

const (
	screenLogin screenID = iota
	screenMain
)

// --- Tea Messages ---

// LoginDoneMsg 登录/注册流程结束
// LoginDoneMsg reports the end of the login-or-register flow
type LoginDoneMsg struct {
	Result auth.Result
	Err    error
}

// QuotesLoadedMsg 报价列表刷新完成；失败时列表保持不变
// QuotesLoadedMsg reports a finished reload; on failure the list is unchanged
type QuotesLoadedMsg struct{ Err error }

// CommandDoneMsg 命令执行完成
// CommandDoneMsg reports a finished command
type CommandDoneMsg struct {
	Line   string
	Output string
	Quit   bool
	Err    error
}

// App Bubble Tea 主 Model
// App is the main Bubble Tea model
type App struct {
	ctx context.Context

	// 布局 / Layout
	width  int
	height int
	screen screenID

	// 面板 / Panels
	activePanel PanelID
	views       [panelCount]viewport.Model
	contents    [panelCount]string

	// 输入 / Input
	login   loginForm
	input   textinput.Model
	pending *PromptMsg

	// 状态 / State
	busy     bool
	cmdDone  chan struct{}
	output   string
	status   string
	loginErr string

	// 依赖 / Dependencies
	auth    *auth.Flow
	quotes  *screen.Quotes
	console *console.Console
	bridge  *promptBridge
	baseURL func() string

	// 配置 / Config
	theme Theme
	keys  KeyMap
	help  help.Model
	msg   *i18n.I18n
}

// NewApp 创建 TUI 应用；已有会话时直接进入主界面
// NewApp creates the TUI application; an existing session skips the login form
func NewApp(ctx context.Context, res *bootstrap.BuildResult, saveLanguage func(string) error) App {
	if ctx == nil {
		ctx = context.Background()
	}
	bridge := newPromptBridge()
	msg := res.Messages

	in := textinput.New()
	in.Placeholder = msg.T("input.placeholder")
	in.CharLimit = 1024
	in.Prompt = "> "

	a := App{
		ctx:         ctx,
		screen:      screenLogin,
		activePanel: PanelQuotes,
		login:       newLoginForm(msg),
		input:       in,
		auth:        res.Auth,
		quotes:      res.Quotes,
		console:     res.NewConsole(nil, bridge, saveLanguage),
		bridge:      bridge,
		baseURL:     res.Client.BaseURL,
		theme:       ThemeFor(res.Config.UI.Theme),
		keys:        DefaultKeyMap(msg),
		help:        newHelp(),
		msg:         msg,
	}
	if a.auth.State() == auth.Authenticated {
		a.screen = screenMain
		a.input.Focus()
	}
	return a
}

func (a App) Init() tea.Cmd {
	if a.screen == screenMain {
		return tea.Batch(textinput.Blink, a.loadQuotes())
	}
	return textinput.Blink
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.relayout()
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			if a.pending != nil {
				a.pending.answer("", true)
				a.pending = nil
			}
			return a, tea.Quit
		}
		if a.screen == screenLogin {
			return a.updateLogin(msg)
		}
		return a.updateMain(msg)

	case LoginDoneMsg:
		a.busy = false
		if msg.Err != nil {
			a.loginErr = a.describe(msg.Err)
			a.login.clearPassword()
			return a, nil
		}
		a.loginErr = ""
		a.login = newLoginForm(a.msg)
		a.screen = screenMain
		statusKey := "auth.signed_in"
		if msg.Result.Registered {
			statusKey = "auth.registered"
		}
		a.status = a.msg.T(statusKey, displayName(msg.Result.User.Name, msg.Result.User.Email), msg.Result.User.Role)
		return a, tea.Batch(a.input.Focus(), a.loadQuotes())

	case QuotesLoadedMsg:
		if msg.Err != nil {
			a.status = a.describe(msg.Err)
		}
		a.refreshPanels()
		return a, nil

	case PromptMsg:
		a.pending = &msg
		a.input.Reset()
		a.input.Prompt = msg.Prompt
		a.input.Placeholder = ""
		if msg.Secret {
			a.input.EchoMode = textinput.EchoPassword
		}
		return a, nil

	case CommandDoneMsg:
		a.busy = false
		a.cmdDone = nil
		a.pending = nil
		a.restoreInput()
		a.appendOutput(msg.Line, msg.Output)
		if msg.Quit {
			return a, tea.Quit
		}
		a.status = ""
		if a.auth.State() != auth.Authenticated {
			a.screen = screenLogin
			a.login = newLoginForm(a.msg)
			a.input.Blur()
		} else if msg.Err != nil {
			a.activePanel = PanelOutput
		} else {
			a.activePanel = panelFor(msg.Line)
		}
		a.refreshPanels()
		return a, nil
	}

	var cmd tea.Cmd
	if a.screen == screenLogin {
		cmd = a.login.update(msg)
	} else {
		a.input, cmd = a.input.Update(msg)
	}
	return a, cmd
}

func (a App) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.busy {
		return a, nil
	}
	switch {
	case key.Matches(msg, a.keys.Continue):
		creds, ok := a.login.credentials()
		if !ok {
			return a, a.login.move(1)
		}
		a.busy = true
		a.loginErr = ""
		return a, a.runLogin(creds)
	case key.Matches(msg, a.keys.NextField):
		return a, a.login.move(1)
	case key.Matches(msg, a.keys.PrevField):
		return a, a.login.move(-1)
	}
	return a, a.login.update(msg)
}

func (a App) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.pending != nil {
		switch {
		case key.Matches(msg, a.keys.Submit), key.Matches(msg, a.keys.Cancel):
			p := *a.pending
			text := a.input.Value()
			a.pending = nil
			a.restoreInput()
			p.answer(text, key.Matches(msg, a.keys.Cancel))
			return a, waitForPrompt(a.bridge, a.cmdDone)
		}
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Reload):
		if a.busy {
			return a, nil
		}
		a.status = a.msg.T("status.busy")
		return a, a.loadQuotes()
	case key.Matches(msg, a.keys.SwitchPanel):
		a.activePanel = (a.activePanel + 1) % panelCount
		return a, nil
	case key.Matches(msg, a.keys.Cancel):
		a.input.Reset()
		return a, nil
	case key.Matches(msg, a.keys.Submit):
		line := strings.TrimSpace(a.input.Value())
		if line == "" || a.busy {
			return a, nil
		}
		if !strings.HasPrefix(line, "/") {
			line = "/" + line
		}
		a.input.Reset()
		a.busy = true
		done := make(chan struct{})
		a.cmdDone = done
		return a, tea.Batch(a.runCommand(line, done), waitForPrompt(a.bridge, done))
	case key.Matches(msg, a.keys.ScrollUp, a.keys.ScrollDown, a.keys.PageUp, a.keys.PageDown):
		var cmd tea.Cmd
		a.views[a.activePanel], cmd = a.views[a.activePanel].Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Initializing..."
	}
	if a.screen == screenLogin {
		status := a.loginErr
		if a.busy {
			status = a.theme.MutedStyle.Render(a.msg.T("login.working"))
		}
		hint := a.help.ShortHelpView(a.keys.LoginHelp())
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
			a.login.view(a.msg, a.theme, hint, status))
	}

	tabs := a.renderTabs()
	panel := a.renderActivePanel(a.width, a.panelHeight())
	inputBox := a.theme.InputStyle.Width(a.width).Render(a.input.View())
	hint := a.help.ShortHelpView(a.keys.ShortHelp())
	if a.pending != nil {
		hint = a.msg.T("prompt.hint")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		tabs, panel, inputBox, a.theme.MutedStyle.Render(" "+hint), a.renderStatusBar(a.width))
}

// --- 内部方法 / Internal methods ---

func (a App) runLogin(creds auth.Credentials) tea.Cmd {
	flow, ctx := a.auth, a.ctx
	return func() tea.Msg {
		res, err := flow.Continue(ctx, creds)
		return LoginDoneMsg{Result: res, Err: err}
	}
}

func (a App) loadQuotes() tea.Cmd {
	quotes, ctx := a.quotes, a.ctx
	return func() tea.Msg {
		return QuotesLoadedMsg{Err: quotes.Load(ctx)}
	}
}

// runCommand 在后台执行一条命令，输出写入独立缓冲；结束时关闭 done
// runCommand executes one command off the UI loop into its own buffer and closes done when finished
func (a App) runCommand(line string, done chan struct{}) tea.Cmd {
	c, ctx := a.console, a.ctx
	return func() tea.Msg {
		defer close(done)
		var buf bytes.Buffer
		c.SetOutput(&buf)
		quit, err := c.Execute(ctx, line)
		return CommandDoneMsg{Line: line, Output: buf.String(), Quit: quit, Err: err}
	}
}

func (a *App) restoreInput() {
	a.input.Reset()
	a.input.Prompt = "> "
	a.input.EchoMode = textinput.EchoNormal
	a.input.Placeholder = a.msg.T("input.placeholder")
}

func (a App) panelHeight() int {
	// 标签 1 行，输入框 2 行，提示 1 行，状态栏 1 行
	h := a.height - 5
	if h < 3 {
		h = 3
	}
	return h
}

func (a *App) relayout() {
	for i := range a.views {
		a.views[i] = viewport.New(a.width, a.panelHeight())
	}
	a.input.Width = a.width - 4
	a.refreshPanels()
}

// refreshPanels 重新渲染三个面板的内容
// refreshPanels re-renders the content of all three panels
func (a *App) refreshPanels() {
	width := a.width
	if width <= 0 {
		width = 80
	}

	var quotesText strings.Builder
	if err := a.quotes.LastError(); err != nil {
		quotesText.WriteString(a.describe(err) + "\n")
	}
	list := a.quotes.List()
	quotesText.WriteString(statusSummary(list, a.theme) + "\n")
	quotesText.WriteString(RenderMarkdown(quotesMarkdown(list, a.quotes.ShareLink, a.msg), width, a.theme.GlamourStyle))
	a.contents[PanelQuotes] = quotesText.String()

	draft := RenderMarkdown(draftMarkdown(a.quotes.Draft(), a.msg), width, a.theme.GlamourStyle)
	total := a.theme.TotalStyle.Render(" " + a.msg.T("draft.preview_total", formatAmount(a.quotes.PreviewTotal())))
	a.contents[PanelDraft] = draft + "\n" + total

	a.contents[PanelOutput] = a.output

	for i := range a.views {
		a.views[i].SetContent(a.contents[i])
	}
	a.views[PanelOutput].GotoBottom()
}

func (a *App) appendOutput(line, output string) {
	entry := a.theme.TitleStyle.Render("> "+line) + "\n" + strings.TrimRight(output, "\n") + "\n"
	a.output += entry
}

// describe 生成可展示的错误文本；认证失败统一为通用提示
// describe builds displayable error text; auth failures collapse to the generic message
func (a App) describe(err error) string {
	text := err.Error()
	var flowErr *auth.FlowError
	if errors.As(err, &flowErr) {
		text = a.msg.T("auth.failed")
	}
	return a.theme.ErrorStyle.Render(a.msg.T("error.prefix", text))
}

// --- 渲染方法 / Render methods ---

func (a App) renderTabs() string {
	tabs := []struct {
		id   PanelID
		name string
	}{
		{PanelQuotes, a.msg.T("panel.quotes")},
		{PanelDraft, a.msg.T("panel.draft")},
		{PanelOutput, a.msg.T("panel.output")},
	}

	var parts []string
	for _, tab := range tabs {
		style := a.theme.InactiveTabStyle
		if tab.id == a.activePanel {
			style = a.theme.ActiveTabStyle
		}
		parts = append(parts, style.Render(tab.name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a App) renderActivePanel(width, height int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Height(height)

	content := a.views[a.activePanel].View()
	if strings.TrimSpace(a.contents[a.activePanel]) == "" {
		content = a.theme.MutedStyle.Render("  " + a.msg.T("panel.empty"))
	}
	return style.Render(content)
}

func (a App) renderStatusBar(width int) string {
	who := a.msg.T("status.signed_out")
	if user, ok := a.auth.CurrentUser(); ok {
		who = displayName(user.Name, user.Email) + " · " + user.Role
	}
	status := a.status
	if a.busy {
		status = a.msg.T("status.busy")
	}
	if status == "" {
		status = a.msg.T("status.ready")
	}

	left := fmt.Sprintf(" %s · %s", who, status)
	right := fmt.Sprintf("%s  ", a.baseURL())

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	bar := left + strings.Repeat(" ", gap) + right
	return a.theme.StatusBarStyle.Width(width).Render(bar)
}

// panelFor 命令完成后切换到最相关的面板
// panelFor picks the most relevant panel after a command
func panelFor(line string) PanelID {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return PanelOutput
	}
	switch strings.ToLower(strings.TrimPrefix(fields[0], "/")) {
	case "quotes", "submit", "rm-quote":
		return PanelQuotes
	case "draft", "company", "item", "reset":
		return PanelDraft
	default:
		return PanelOutput
	}
}

func displayName(name, email string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	return email
}

// Run 启动 Bubble Tea TUI
// Run starts the Bubble Tea TUI application
func Run(ctx context.Context, res *bootstrap.BuildResult, saveLanguage func(string) error) error {
	if res == nil {
		return fmt.Errorf("build result is nil")
	}
	app := NewApp(ctx, res, saveLanguage)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
