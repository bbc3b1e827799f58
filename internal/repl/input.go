package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"smbsuite/internal/console"
	"smbsuite/internal/quote"
)

// lineInput 读取一行输入；同时作为控制台的确认/密码来源
// lineInput reads one line; it doubles as the console's confirmation and password source
type lineInput interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

type basicLineInput struct {
	reader *bufio.Reader
	out    io.Writer
	fd     int
}

func newBasicLineInput(in io.Reader, out io.Writer) *basicLineInput {
	b := &basicLineInput{
		reader: bufio.NewReader(in),
		out:    out,
		fd:     -1,
	}
	if f, ok := in.(*os.File); ok {
		b.fd = int(f.Fd())
	}
	return b
}

func (b *basicLineInput) ReadLine(prompt string) (string, error) {
	if b.out != nil {
		fmt.Fprint(b.out, prompt)
	}
	line, err := b.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadPassword 终端上不回显；管道输入退化为普通读行
// ReadPassword disables echo on a terminal; piped input falls back to a plain line read
func (b *basicLineInput) ReadPassword(prompt string) (string, error) {
	if b.fd < 0 || !term.IsTerminal(b.fd) {
		return b.ReadLine(prompt)
	}
	if b.out != nil {
		fmt.Fprint(b.out, prompt)
	}
	secret, err := term.ReadPassword(b.fd)
	if b.out != nil {
		fmt.Fprintln(b.out)
	}
	if err != nil {
		return "", err
	}
	return string(secret), nil
}

func (b *basicLineInput) Close() error { return nil }

type readlineInput struct {
	instance *readline.Instance
}

func newReadlineInput(historyPath string) (*readlineInput, error) {
	if historyPath != "" {
		if err := os.MkdirAll(filepath.Dir(historyPath), 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	instance, err := readline.NewEx(&readline.Config{
		Prompt:            "> ",
		HistoryFile:       historyPath,
		HistorySearchFold: true,
		AutoComplete:      newCompleter(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
	})
	if err != nil {
		return nil, err
	}
	return &readlineInput{instance: instance}, nil
}

func (r *readlineInput) ReadLine(prompt string) (string, error) {
	r.instance.SetPrompt(prompt)
	return r.instance.Readline()
}

func (r *readlineInput) ReadPassword(prompt string) (string, error) {
	secret, err := r.instance.ReadPassword(prompt)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}

func (r *readlineInput) Close() error {
	if r == nil || r.instance == nil {
		return nil
	}
	return r.instance.Close()
}

// newLineInput 终端使用 readline，否则（管道/重定向）使用逐行读取
// newLineInput uses readline on a terminal and a plain line reader for pipes and redirects
func newLineInput(historyPath string, in *os.File, out io.Writer) (lineInput, error) {
	if !term.IsTerminal(int(in.Fd())) {
		return newBasicLineInput(in, out), nil
	}
	readlineReader, err := newReadlineInput(historyPath)
	if err == nil {
		return readlineReader, nil
	}
	return newBasicLineInput(in, out), err
}

// newCompleter 由命令表生成 Tab 补全
// newCompleter builds tab completion from the command table
func newCompleter() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, name := range commandNames() {
		switch name {
		case "/lang":
			items = append(items, readline.PcItem(name,
				readline.PcItem("en"), readline.PcItem("fr"), readline.PcItem("zh-CN")))
		case "/quotes":
			items = append(items, readline.PcItem(name,
				readline.PcItem(quote.StatusDraft), readline.PcItem(quote.StatusSent),
				readline.PcItem(quote.StatusAccepted), readline.PcItem("all")))
		case "/item":
			items = append(items, readline.PcItem(name,
				readline.PcItem("add"), readline.PcItem("set"), readline.PcItem("rm")))
		default:
			items = append(items, readline.PcItem(name))
		}
	}
	return readline.NewPrefixCompleter(items...)
}

func commandNames() []string {
	usages := console.Commands()
	names := make([]string, 0, len(usages))
	for _, usage := range usages {
		if fields := strings.Fields(usage); len(fields) > 0 {
			names = append(names, fields[0])
		}
	}
	return names
}
