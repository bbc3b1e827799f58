package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// PromptMsg 命令执行中需要用户回答（确认或密码）
// PromptMsg asks the user for an answer while a command runs (confirmation or password)
type PromptMsg struct {
	Prompt string
	Secret bool
	reply  chan promptReply
}

type promptReply struct {
	text string
	err  error
}

// promptBridge 把控制台的同步读行请求转成 Bubble Tea 消息
// promptBridge turns the console's blocking line reads into Bubble Tea messages
type promptBridge struct {
	requests chan PromptMsg
}

func newPromptBridge() *promptBridge {
	return &promptBridge{requests: make(chan PromptMsg)}
}

func (b *promptBridge) ReadLine(prompt string) (string, error) {
	return b.ask(prompt, false)
}

func (b *promptBridge) ReadPassword(prompt string) (string, error) {
	return b.ask(prompt, true)
}

func (b *promptBridge) ask(prompt string, secret bool) (string, error) {
	req := PromptMsg{Prompt: prompt, Secret: secret, reply: make(chan promptReply, 1)}
	b.requests <- req
	r := <-req.reply
	return r.text, r.err
}

// waitForPrompt 等待下一条提问；命令结束（done 关闭）时不产生消息
// waitForPrompt waits for the next question and yields nothing once done is closed
func waitForPrompt(b *promptBridge, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case req := <-b.requests:
			return req
		case <-done:
			return nil
		}
	}
}

// answer 回复提问；cancelled 时按 EOF 处理，控制台视为拒绝
// answer replies to a question; cancelled replies EOF, which the console treats as a decline
func (m PromptMsg) answer(text string, cancelled bool) {
	if m.reply == nil {
		return
	}
	if cancelled {
		m.reply <- promptReply{err: io.EOF}
		return
	}
	m.reply <- promptReply{text: text}
}
