package quote

import "strings"

// 服务端常见状态；词表由服务端决定
// Statuses commonly returned by the server; the server owns the vocabulary
const (
	StatusDraft    = "Draft"
	StatusSent     = "Sent"
	StatusAccepted = "Accepted"
)

// Quote 服务端确认的报价单，本地只读
// Quote is a server-confirmed quote, read-only on the client
type Quote struct {
	ID          string     `json:"_id"`
	CompanyName string     `json:"company_name"`
	Status      string     `json:"status"`
	Total       float64    `json:"total"`
	PublicToken string     `json:"public_token,omitempty"`
	Items       []LineItem `json:"items,omitempty"`
}

// DisplayName 公司名为空时显示 "Quote"
// DisplayName falls back to "Quote" when the company name is empty
func (q Quote) DisplayName() string {
	if strings.TrimSpace(q.CompanyName) == "" {
		return "Quote"
	}
	return q.CompanyName
}

// Shareable 是否存在公开分享 token
// Shareable reports whether a public sharing token exists
func (q Quote) Shareable() bool {
	return strings.TrimSpace(q.PublicToken) != ""
}
