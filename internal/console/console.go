// Package console interprets the slash commands shared by the REPL and the
// TUI command line. A Console runs one command at a time.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"smbsuite/internal/api"
	"smbsuite/internal/auth"
	"smbsuite/internal/i18n"
	"smbsuite/internal/screen"
	"smbsuite/internal/session"
	"smbsuite/internal/storage"
)

// ErrUnknownCommand 未知命令 / ErrUnknownCommand reports an unrecognised command
var ErrUnknownCommand = errors.New("unknown command")

// ErrNotLoggedIn 需要登录 / ErrNotLoggedIn means the command needs a session
var ErrNotLoggedIn = errors.New("not logged in")

// ErrSignedIn 切换服务端前须先登出 / ErrSignedIn means /logout must come first
var ErrSignedIn = errors.New("sign out before switching servers")

// Prompter 读取一行用户输入（确认、密码）
// Prompter reads one line of user input (confirmations, passwords)
type Prompter interface {
	ReadLine(prompt string) (string, error)
}

// PasswordPrompter 可选：不回显地读取密码
// PasswordPrompter optionally reads a password without echo
type PasswordPrompter interface {
	ReadPassword(prompt string) (string, error)
}

// Backend 控制台使用的 CRM / 项目 / 设置接口
// Backend is the CRM, projects and settings surface the console drives
type Backend interface {
	BaseURL() string
	SetBaseURL(baseURL string) error
	DashboardSummary(ctx context.Context) (api.Summary, error)
	ListContacts(ctx context.Context, filter api.ContactFilter) ([]api.Contact, error)
	CreateContact(ctx context.Context, contact api.Contact) (api.Contact, error)
	DeleteContact(ctx context.Context, id string) error
	ExportContactsURL() string
	ListProjects(ctx context.Context) ([]api.Project, error)
	CreateProject(ctx context.Context, name string) (api.Project, error)
	ListTasks(ctx context.Context, filter api.TaskFilter) ([]api.Task, error)
	CreateTask(ctx context.Context, task api.Task) (api.Task, error)
	UpdateTask(ctx context.Context, id string, task api.Task) (api.Task, error)
	GetSettings(ctx context.Context) (api.Settings, error)
	UpdateSettings(ctx context.Context, s api.Settings) error
	ListUsers(ctx context.Context) ([]session.User, error)
}

// ConfirmationLog 记录破坏性操作的确认结果
// ConfirmationLog records the outcome of destructive-action prompts
type ConfirmationLog interface {
	LogConfirmation(entry storage.ConfirmationEntry) error
	RecentConfirmations(limit int) ([]storage.ConfirmationEntry, error)
}

type Options struct {
	Auth          *auth.Flow
	Backend       Backend
	Quotes        *screen.Quotes
	Confirmations ConfirmationLog
	Messages      *i18n.I18n
	Prompter      Prompter
	Out           io.Writer
	Logger        *slog.Logger
	// SaveLanguage 持久化 /lang 的选择，可为 nil
	// SaveLanguage persists the /lang choice; may be nil
	SaveLanguage func(locale string) error
}

type Console struct {
	auth     *auth.Flow
	backend  Backend
	quotes   *screen.Quotes
	confirms ConfirmationLog
	msg      *i18n.I18n
	prompter Prompter
	out      io.Writer
	logger   *slog.Logger
	saveLang func(string) error

	contacts []api.Contact
	projects []api.Project
	tasks    []api.Task
}

type handler func(c *Console, ctx context.Context, args []string) error

type command struct {
	name   string
	usage  string
	public bool
	run    handler
}

var commands []command

func init() {
	commands = []command{
		{name: "help", usage: "/help", public: true, run: (*Console).cmdHelp},
		{name: "quit", usage: "/quit", public: true},
		{name: "login", usage: "/login <email> [name]", public: true, run: (*Console).cmdLogin},
		{name: "logout", usage: "/logout", run: (*Console).cmdLogout},
		{name: "whoami", usage: "/whoami", run: (*Console).cmdWhoami},
		{name: "lang", usage: "/lang <en|fr|zh-CN>", public: true, run: (*Console).cmdLang},
		{name: "server", usage: "/server [url]", public: true, run: (*Console).cmdServer},
		{name: "dashboard", usage: "/dashboard", run: (*Console).cmdDashboard},
		{name: "quotes", usage: "/quotes [status|all]", run: (*Console).cmdQuotes},
		{name: "draft", usage: "/draft", run: (*Console).cmdDraft},
		{name: "company", usage: "/company <name>", run: (*Console).cmdCompany},
		{name: "item", usage: "/item add | set <n> name=.. price=.. qty=.. tax=.. | rm <n>", run: (*Console).cmdItem},
		{name: "submit", usage: "/submit", run: (*Console).cmdSubmit},
		{name: "reset", usage: "/reset", run: (*Console).cmdReset},
		{name: "share", usage: "/share <n>", run: (*Console).cmdShare},
		{name: "rm-quote", usage: "/rm-quote <n>", run: (*Console).cmdRemoveQuote},
		{name: "contacts", usage: "/contacts [status=..] [q=..]", run: (*Console).cmdContacts},
		{name: "add-contact", usage: "/add-contact name=.. [email=..] [phone=..] [company=..] [status=..]", run: (*Console).cmdAddContact},
		{name: "rm-contact", usage: "/rm-contact <n>", run: (*Console).cmdRemoveContact},
		{name: "export-url", usage: "/export-url", run: (*Console).cmdExportURL},
		{name: "projects", usage: "/projects", run: (*Console).cmdProjects},
		{name: "add-project", usage: "/add-project <name>", run: (*Console).cmdAddProject},
		{name: "tasks", usage: "/tasks", run: (*Console).cmdTasks},
		{name: "add-task", usage: "/add-task title=.. [project=<n>] [priority=..] [status=..]", run: (*Console).cmdAddTask},
		{name: "move-task", usage: "/move-task <n> <status>", run: (*Console).cmdMoveTask},
		{name: "settings", usage: "/settings [company=..] [language=..] [theme=..]", run: (*Console).cmdSettings},
		{name: "users", usage: "/users", run: (*Console).cmdUsers},
		{name: "confirmations", usage: "/confirmations [n]", run: (*Console).cmdConfirmations},
	}
}

func New(opts Options) *Console {
	msg := opts.Messages
	if msg == nil {
		msg = i18n.New("en")
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Console{
		auth:     opts.Auth,
		backend:  opts.Backend,
		quotes:   opts.Quotes,
		confirms: opts.Confirmations,
		msg:      msg,
		prompter: opts.Prompter,
		out:      out,
		logger:   logger,
		saveLang: opts.SaveLanguage,
	}
}

// SetOutput 切换输出目标（TUI 每条命令使用独立缓冲）
// SetOutput switches the output target; the TUI uses one buffer per command
func (c *Console) SetOutput(out io.Writer) {
	if out == nil {
		out = io.Discard
	}
	c.out = out
}

func (c *Console) Messages() *i18n.I18n {
	return c.msg
}

// Execute 执行一行输入。错误已写到输出，同时返回给调用方。
//
// Execute runs one input line. Failures are printed and also returned.
func (c *Console) Execute(ctx context.Context, line string) (quit bool, err error) {
	args, err := splitArgs(strings.TrimSpace(line))
	if err != nil {
		c.printError(err)
		return false, err
	}
	if len(args) == 0 {
		return false, nil
	}
	name := strings.ToLower(strings.TrimPrefix(args[0], "/"))
	if name == "exit" {
		name = "quit"
	}

	cmd, ok := lookup(name)
	if !ok {
		c.println(c.msg.T("cmd.unknown", args[0]))
		return false, fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	if cmd.name == "quit" {
		return true, nil
	}
	if !cmd.public && (c.auth == nil || c.auth.State() != auth.Authenticated) {
		c.println(c.msg.T("auth.required"))
		return false, ErrNotLoggedIn
	}

	if err := cmd.run(c, ctx, args[1:]); err != nil {
		c.logger.Debug("command failed", "command", cmd.name, "err", err)
		c.printError(err)
		return false, err
	}
	return false, nil
}

func lookup(name string) (command, bool) {
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd, true
		}
	}
	return command{}, false
}

// Commands 返回全部命令用法，供补全与帮助使用
// Commands lists every command usage for completion and help
func Commands() []string {
	out := make([]string, 0, len(commands))
	for _, cmd := range commands {
		out = append(out, cmd.usage)
	}
	return out
}

func (c *Console) cmdHelp(ctx context.Context, args []string) error {
	c.println(c.msg.T("help.header"))
	for _, usage := range Commands() {
		c.printf("  %s\n", usage)
	}
	return nil
}

func (c *Console) println(text string) {
	fmt.Fprintln(c.out, text)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// printError 只输出可展示消息；网关错误本身不含内部细节
// printError prints only the displayable message
func (c *Console) printError(err error) {
	var flowErr *auth.FlowError
	if errors.As(err, &flowErr) {
		c.println(c.msg.T("error.prefix", c.msg.T("auth.failed")))
		return
	}
	c.println(c.msg.T("error.prefix", err.Error()))
}

// usageError 命令用法错误 / usageError reports bad command usage
type usageError struct {
	usage string
}

func (e *usageError) Error() string {
	return "usage: " + e.usage
}

func usage(name string) error {
	cmd, _ := lookup(name)
	return &usageError{usage: cmd.usage}
}
