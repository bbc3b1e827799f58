package api

import (
	"context"
	"net/http"

	"smbsuite/internal/quote"
	"smbsuite/internal/session"
)

type Settings struct {
	CompanyName string `json:"company_name"`
	Language    string `json:"language"`
	Theme       string `json:"theme"`
}

// DefaultSettings 服务端未返回内容时使用
// DefaultSettings is used when the server returns no content
func DefaultSettings() Settings {
	return Settings{Language: "en", Theme: "light"}
}

func (c *Client) GetSettings(ctx context.Context) (Settings, error) {
	out := DefaultSettings()
	err := c.Do(ctx, http.MethodGet, "/settings", nil, &out)
	return out, err
}

func (c *Client) UpdateSettings(ctx context.Context, s Settings) error {
	return c.Do(ctx, http.MethodPut, "/settings", s, nil)
}

func (c *Client) ListUsers(ctx context.Context) ([]session.User, error) {
	var out []session.User
	if err := c.Do(ctx, http.MethodGet, "/users", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []session.User{}
	}
	return out, nil
}

// Summary GET /dashboard/summary 的响应
// Summary is the GET /dashboard/summary payload
type Summary struct {
	Counts struct {
		Clients      int `json:"clients"`
		Quotes       int `json:"quotes"`
		TasksPending int `json:"tasks_pending"`
	} `json:"counts"`
	RecentContacts []Contact     `json:"recent_contacts"`
	RecentQuotes   []quote.Quote `json:"recent_quotes"`
	RecentTasks    []Task        `json:"recent_tasks"`
}

func (c *Client) DashboardSummary(ctx context.Context) (Summary, error) {
	var out Summary
	err := c.Do(ctx, http.MethodGet, "/dashboard/summary", nil, &out)
	return out, err
}
