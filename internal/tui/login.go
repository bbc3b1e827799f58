package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"smbsuite/internal/auth"
	"smbsuite/internal/i18n"
)

const (
	fieldEmail = iota
	fieldPassword
	fieldName
	fieldCount
)

// loginForm 登录/注册表单：邮箱、密码、可选名称
// loginForm is the sign-in form: email, password and an optional name
type loginForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
}

func newLoginForm(msg *i18n.I18n) loginForm {
	var f loginForm
	for i := range f.inputs {
		in := textinput.New()
		in.CharLimit = 256
		in.Width = 40
		f.inputs[i] = in
	}
	f.inputs[fieldEmail].Placeholder = "you@example.com"
	f.inputs[fieldEmail].Prompt = msg.T("login.email") + ": "
	f.inputs[fieldPassword].Prompt = msg.T("login.password") + ": "
	f.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	f.inputs[fieldPassword].EchoCharacter = '•'
	f.inputs[fieldName].Prompt = msg.T("login.name") + ": "
	f.inputs[fieldName].Placeholder = auth.DefaultName
	f.inputs[fieldEmail].Focus()
	return f
}

func (f *loginForm) move(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f.inputs[f.focus].Focus()
}

func (f *loginForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// credentials 读取表单；邮箱或密码为空时 ok 为 false
// credentials reads the form; ok is false when email or password is empty
func (f loginForm) credentials() (auth.Credentials, bool) {
	creds := auth.Credentials{
		Email:    strings.TrimSpace(f.inputs[fieldEmail].Value()),
		Password: f.inputs[fieldPassword].Value(),
		Name:     strings.TrimSpace(f.inputs[fieldName].Value()),
	}
	return creds, creds.Email != "" && creds.Password != ""
}

func (f *loginForm) clearPassword() {
	f.inputs[fieldPassword].SetValue("")
}

func (f loginForm) view(msg *i18n.I18n, theme Theme, hint, status string) string {
	lines := []string{theme.TitleStyle.Render(msg.T("app.title")), msg.T("login.title"), ""}
	for i := range f.inputs {
		lines = append(lines, f.inputs[i].View())
	}
	lines = append(lines, "", hint)
	if status != "" {
		lines = append(lines, "", status)
	}
	return theme.FormStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
