package console

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"smbsuite/internal/storage"
)

// confirm 在执行破坏性操作前询问 y/N；中断或 EOF 视为拒绝。
// 结果写入确认日志，日志失败不影响决定。
//
// confirm asks y/N before a destructive action; interrupt or EOF declines.
// The decision is written to the confirmation log; a log failure does not change it.
func (c *Console) confirm(action, target string) (bool, error) {
	if c.prompter == nil {
		return false, nil
	}
	line, err := c.prompter.ReadLine(c.msg.T("confirm.prompt", action, target))
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			c.record(action, target, false)
			return false, nil
		}
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	ok := answer == "y" || answer == "yes" || answer == "o" || answer == "oui"
	c.record(action, target, ok)
	if !ok {
		c.println(c.msg.T("confirm.cancelled"))
	}
	return ok, nil
}

func (c *Console) record(action, target string, confirmed bool) {
	if c.confirms == nil {
		return
	}
	decision := storage.DecisionDeclined
	if confirmed {
		decision = storage.DecisionConfirmed
	}
	if err := c.confirms.LogConfirmation(storage.ConfirmationEntry{
		Action:   action,
		Target:   target,
		Decision: decision,
	}); err != nil {
		c.logger.Warn("log confirmation failed", "action", action, "err", err)
	}
}

// cmdConfirmations 列出最近的确认记录，最新在前
// cmdConfirmations lists recent confirmation answers, newest first
func (c *Console) cmdConfirmations(ctx context.Context, args []string) error {
	if c.confirms == nil {
		c.println(c.msg.T("confirmations.empty"))
		return nil
	}
	limit := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil || n < 1 {
			return usage("confirmations")
		}
		limit = n
	}
	entries, err := c.confirms.RecentConfirmations(limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		c.println(c.msg.T("confirmations.empty"))
		return nil
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.CreatedAt, e.Action, e.Target, c.msg.T("decision." + e.Decision)})
	}
	c.printf("%s", renderTable([]string{c.msg.T("col.time"), c.msg.T("col.action"), c.msg.T("col.target"), c.msg.T("col.decision")}, rows))
	return nil
}

// readSecret 优先使用不回显的密码输入
// readSecret prefers the no-echo password reader when available
func (c *Console) readSecret(prompt string) (string, error) {
	if c.prompter == nil {
		return "", io.EOF
	}
	if p, ok := c.prompter.(PasswordPrompter); ok {
		return p.ReadPassword(prompt)
	}
	return c.prompter.ReadLine(prompt)
}
