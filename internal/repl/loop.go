package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"smbsuite/internal/bootstrap"
	"smbsuite/internal/console"
)

const (
	ansiReset = "\x1b[0m"
	ansiDim   = "\x1b[90m"
	ansiGreen = "\x1b[32m"
	ansiBold  = "\x1b[1m"
)

// Loop 持有 REPL 状态：构建结果、命令解释器与输入源
// Loop holds REPL state: the build result, the command interpreter and the input source
type Loop struct {
	*bootstrap.BuildResult
	console *console.Console
	input   lineInput
	out     io.Writer
}

// NewLoop 创建 REPL；input 同时用于确认与密码输入
// NewLoop builds a REPL; input also answers confirmations and password prompts
func NewLoop(res *bootstrap.BuildResult, input lineInput, out io.Writer, saveLanguage func(string) error) *Loop {
	if out == nil {
		out = io.Discard
	}
	return &Loop{
		BuildResult: res,
		console:     res.NewConsole(out, input, saveLanguage),
		input:       input,
		out:         out,
	}
}

// Run 在标准输入输出上运行 REPL，直到 /quit 或 EOF
// Run runs the REPL on stdin/stdout until /quit or EOF
func Run(ctx context.Context, res *bootstrap.BuildResult, saveLanguage func(string) error) error {
	if res == nil {
		return fmt.Errorf("build result is nil")
	}
	input, err := newLineInput(res.Config.HistoryPath(), os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "line editor unavailable, fallback to basic input: %v\n", err)
	}
	defer input.Close()
	return NewLoop(res, input, os.Stdout, saveLanguage).Run(ctx)
}

func (loop *Loop) Run(ctx context.Context) error {
	msg := loop.console.Messages()
	fmt.Fprintf(loop.out, "%s · %s\n", msg.T("app.title"), loop.Client.BaseURL())
	_, _ = loop.console.Execute(ctx, "/help")

	for {
		if ctx.Err() != nil {
			return nil
		}
		loop.printStatusTo(loop.out)
		line, err := loop.input.ReadLine(loop.prompt())
		if err != nil {
			switch {
			case errors.Is(err, readline.ErrInterrupt):
				continue
			case errors.Is(err, io.EOF):
				fmt.Fprintln(loop.out)
				return nil
			default:
				return fmt.Errorf("read input: %w", err)
			}
		}
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		if !strings.HasPrefix(text, "/") {
			text = "/" + text
		}
		quit, _ := loop.console.Execute(ctx, text)
		if quit {
			return nil
		}
	}
}

// printStatusTo 输出提示符上方的状态行：服务端 · 用户
// printStatusTo writes the status line above the prompt: server · user
func (loop *Loop) printStatusTo(w io.Writer) {
	msg := loop.console.Messages()
	who := msg.T("status.signed_out")
	if user, ok := loop.Auth.CurrentUser(); ok {
		name := user.Name
		if strings.TrimSpace(name) == "" {
			name = user.Email
		}
		who = name + " (" + user.Role + ")"
	}
	line := fmt.Sprintf("%s · %s · %s", loop.Client.BaseURL(), who, msg.Locale())
	if useColor() {
		fmt.Fprintf(w, "%s%s%s\n", ansiDim, line, ansiReset)
		return
	}
	fmt.Fprintln(w, line)
}

func (loop *Loop) prompt() string {
	if useColor() {
		return ansiBold + ansiGreen + "smbsuite> " + ansiReset
	}
	return "smbsuite> "
}

func useColor() bool {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return false
	}
	if strings.TrimSpace(os.Getenv("SMBSUITE_NO_COLOR")) != "" {
		return false
	}
	return strings.ToLower(strings.TrimSpace(os.Getenv("TERM"))) != "dumb"
}
