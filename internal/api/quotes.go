package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"smbsuite/internal/quote"
)

// ListQuotes GET /quotes，status 为空时不过滤
// ListQuotes calls GET /quotes; an empty status means no filter
func (c *Client) ListQuotes(ctx context.Context, status string) ([]quote.Quote, error) {
	values := url.Values{}
	if status = strings.TrimSpace(status); status != "" {
		values.Set("status", status)
	}
	var out []quote.Quote
	if err := c.Do(ctx, http.MethodGet, withQuery("/quotes", values), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []quote.Quote{}
	}
	return out, nil
}

// CreateQuote POST /quotes；服务端无响应体时返回零值
// CreateQuote calls POST /quotes; a body-less reply yields the zero Quote
func (c *Client) CreateQuote(ctx context.Context, draft quote.Draft) (quote.Quote, error) {
	var out quote.Quote
	err := c.Do(ctx, http.MethodPost, "/quotes", draft, &out)
	return out, err
}

func (c *Client) UpdateQuote(ctx context.Context, id string, draft quote.Draft) (quote.Quote, error) {
	var out quote.Quote
	err := c.Do(ctx, http.MethodPut, "/quotes/"+url.PathEscape(id), draft, &out)
	return out, err
}

func (c *Client) DeleteQuote(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodDelete, "/quotes/"+url.PathEscape(id), nil, nil)
}
