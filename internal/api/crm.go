package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// 联系人状态 / contact statuses offered by the console
const (
	ContactProspect    = "Prospect"
	ContactNegotiation = "Negotiation"
	ContactClient      = "Client"
)

type Contact struct {
	ID          string `json:"_id,omitempty"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CompanyName string `json:"company_name"`
	Status      string `json:"status"`
}

// ContactFilter GET /crm/contacts 的查询条件
// ContactFilter holds the GET /crm/contacts query
type ContactFilter struct {
	Status string
	Query  string
}

func (c *Client) ListContacts(ctx context.Context, filter ContactFilter) ([]Contact, error) {
	values := url.Values{}
	if s := strings.TrimSpace(filter.Status); s != "" {
		values.Set("status", s)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		values.Set("q", q)
	}
	var out []Contact
	if err := c.Do(ctx, http.MethodGet, withQuery("/crm/contacts", values), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Contact{}
	}
	return out, nil
}

func (c *Client) CreateContact(ctx context.Context, contact Contact) (Contact, error) {
	contact.ID = ""
	var out Contact
	err := c.Do(ctx, http.MethodPost, "/crm/contacts", contact, &out)
	return out, err
}

func (c *Client) UpdateContact(ctx context.Context, id string, contact Contact) (Contact, error) {
	contact.ID = ""
	var out Contact
	err := c.Do(ctx, http.MethodPut, "/crm/contacts/"+url.PathEscape(id), contact, &out)
	return out, err
}

func (c *Client) DeleteContact(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodDelete, "/crm/contacts/"+url.PathEscape(id), nil, nil)
}
