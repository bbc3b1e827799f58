// Package screen holds the quote lifecycle state shared by the REPL and TUI
// front ends: the cached server list, the local draft and the last failure.
package screen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"smbsuite/internal/quote"
)

// Gateway 报价页所需的远端调用
// Gateway is the remote surface the quote screen needs
type Gateway interface {
	ListQuotes(ctx context.Context, status string) ([]quote.Quote, error)
	CreateQuote(ctx context.Context, draft quote.Draft) (quote.Quote, error)
	DeleteQuote(ctx context.Context, id string) error
	PublicQuoteURL(publicToken string) string
}

type Options struct {
	StatusFilter string
	// StrictValidation 提交前校验草稿
	// StrictValidation validates the draft before submitting
	StrictValidation bool
}

// Quotes 报价生命周期页面。
// 并发的 Load/Submit 互不等待，最后返回的响应覆盖列表。
//
// Quotes is the quote lifecycle screen.
// Overlapping Load/Submit calls do not wait on each other; the last response to arrive wins.
type Quotes struct {
	gateway Gateway
	logger  *slog.Logger
	strict  bool

	mu      sync.Mutex
	quotes  []quote.Quote
	draft   quote.Draft
	filter  string
	lastErr error
	loaded  bool
}

func NewQuotes(gateway Gateway, opts Options, logger *slog.Logger) *Quotes {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Quotes{
		gateway: gateway,
		logger:  logger,
		strict:  opts.StrictValidation,
		quotes:  []quote.Quote{},
		draft:   quote.NewDraft(),
		filter:  strings.TrimSpace(opts.StatusFilter),
	}
}

// Load 拉取列表；失败时保留上一次的列表
// Load fetches the list; on failure the previous list stays in place
func (s *Quotes) Load(ctx context.Context) error {
	s.mu.Lock()
	filter := s.filter
	s.mu.Unlock()

	list, err := s.gateway.ListQuotes(ctx, filter)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err
		s.logger.Warn("load quotes failed", "status", filter, "err", err)
		return err
	}
	s.quotes = list
	s.loaded = true
	s.lastErr = nil
	return nil
}

// Submit 提交草稿。成功后重置草稿并重新加载列表；
// 重新加载失败只记录在 LastError 中。失败时草稿保持不变。
//
// Submit sends the draft. On success the draft resets and the list reloads;
// a reload failure is only recorded in LastError. On failure the draft is kept.
func (s *Quotes) Submit(ctx context.Context) (quote.Quote, error) {
	s.mu.Lock()
	draft := s.draft.Clone()
	strict := s.strict
	s.mu.Unlock()

	if strict {
		if err := draft.Validate(); err != nil {
			err = fmt.Errorf("invalid draft: %w", err)
			s.setErr(err)
			return quote.Quote{}, err
		}
	}

	created, err := s.gateway.CreateQuote(ctx, draft)
	if err != nil {
		s.setErr(err)
		s.logger.Warn("submit quote failed", "err", err)
		return quote.Quote{}, err
	}

	s.mu.Lock()
	s.draft = quote.NewDraft()
	s.lastErr = nil
	s.mu.Unlock()
	s.logger.Info("quote submitted", "id", created.ID)

	_ = s.Load(ctx)
	return created, nil
}

// Delete 删除报价并重新加载（调用方负责确认）；重新加载失败只记录在 LastError 中
// Delete removes a quote and reloads; callers confirm beforehand.
// A reload failure is only recorded in LastError.
func (s *Quotes) Delete(ctx context.Context, id string) error {
	if err := s.gateway.DeleteQuote(ctx, id); err != nil {
		s.setErr(err)
		return err
	}
	s.logger.Info("quote deleted", "id", id)
	_ = s.Load(ctx)
	return nil
}

func (s *Quotes) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// List 返回缓存列表的副本 / List returns a copy of the cached list
func (s *Quotes) List() []quote.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]quote.Quote, len(s.quotes))
	copy(out, s.quotes)
	return out
}

// Loaded 是否至少成功加载过一次
// Loaded reports whether at least one load succeeded
func (s *Quotes) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

func (s *Quotes) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Quotes) StatusFilter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// SetStatusFilter 仅修改过滤条件，需再次 Load 生效
// SetStatusFilter only changes the filter; call Load to apply it
func (s *Quotes) SetStatusFilter(status string) {
	s.mu.Lock()
	s.filter = strings.TrimSpace(status)
	s.mu.Unlock()
}

// Draft 返回草稿副本 / Draft returns a copy of the draft
func (s *Quotes) Draft() quote.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

func (s *Quotes) SetCompany(name string) {
	s.mu.Lock()
	s.draft.SetCompany(name)
	s.mu.Unlock()
}

func (s *Quotes) AppendItem() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.AppendItem()
}

// AppendItemWith 追加一行并应用补丁，二者在同一把锁内完成
// AppendItemWith appends a row and applies the patch to it under one lock
func (s *Quotes) AppendItemWith(patch quote.ItemPatch) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.draft.Clone()
	idx := next.AppendItem()
	if err := next.PatchItem(idx, patch); err != nil {
		return 0, err
	}
	s.draft = next
	return idx, nil
}

func (s *Quotes) PatchItem(i int, patch quote.ItemPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.PatchItem(i, patch)
}

func (s *Quotes) RemoveItem(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.RemoveItem(i)
}

// ResetDraft 丢弃草稿 / ResetDraft discards the draft
func (s *Quotes) ResetDraft() {
	s.mu.Lock()
	s.draft = quote.NewDraft()
	s.mu.Unlock()
}

// PreviewTotal 按当前草稿重新计算，仅供预览
// PreviewTotal recomputes from the current draft and is a preview only
func (s *Quotes) PreviewTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Total()
}

// ShareLink 仅当存在 public_token 时返回公开链接
// ShareLink returns the public link only when a public_token exists
func (s *Quotes) ShareLink(q quote.Quote) (string, bool) {
	if !q.Shareable() {
		return "", false
	}
	return s.gateway.PublicQuoteURL(strings.TrimSpace(q.PublicToken)), true
}
