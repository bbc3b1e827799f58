package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"smbsuite/internal/config"
	"smbsuite/internal/quote"
)

type tokenBox struct{ value string }

func (b *tokenBox) Token() string { return b.value }

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) (*Client, *tokenBox) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	box := &tokenBox{value: token}
	return NewClient(config.APIConfig{BaseURL: srv.URL}, box, nil), box
}

func TestRequestAppendsTokenQuery(t *testing.T) {
	var gotQuery string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `[]`)
	}, "a b&c")

	tests := []struct {
		path string
		want string
	}{
		{path: "/quotes", want: "token=a+b%26c"},
		{path: "/crm/contacts?status=Client", want: "status=Client&token=a+b%26c"},
	}
	for _, tc := range tests {
		if _, err := c.Request(context.Background(), tc.path, RequestOptions{}); err != nil {
			t.Fatalf("Request(%s): %v", tc.path, err)
		}
		if gotQuery != tc.want {
			t.Fatalf("query=%q, want %q", gotQuery, tc.want)
		}
	}
}

func TestRequestSendsEmptyTokenAfterLogout(t *testing.T) {
	var gotQuery string
	c, box := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Invalid token"}`)
	}, "tok")
	box.value = ""

	_, err := c.Request(context.Background(), "/quotes", RequestOptions{})
	if gotQuery != "token=" {
		t.Fatalf("query=%q, want %q", gotQuery, "token=")
	}
	if err == nil || err.Error() != "Invalid token" {
		t.Fatalf("err=%v, want Invalid token", err)
	}
	if StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("StatusOf=%d", StatusOf(err))
	}
}

func TestRequestNormalisesErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "detail string", status: 400, body: `{"detail":"Email exists"}`, want: "Email exists"},
		{name: "unparsable body", status: 500, body: `<html>oops</html>`, want: "Error 500"},
		{name: "empty detail", status: 404, body: `{"detail":""}`, want: "Error 404"},
		{name: "null detail", status: 403, body: `{"detail":null}`, want: "Error 403"},
		{name: "no detail", status: 409, body: `{"error":"x"}`, want: "Error 409"},
		{name: "empty body", status: 502, body: ``, want: "Error 502"},
		{
			name:   "validation list",
			status: 422,
			body:   `{"detail":[{"loc":["body","email"],"msg":"field required"},{"msg":"value is not a valid email"}]}`,
			want:   "field required; value is not a valid email",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}, "tok")
			_, err := c.Request(context.Background(), "/quotes", RequestOptions{})
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("err=%v, want *Error", err)
			}
			if apiErr.Status != tc.status || apiErr.Message != tc.want {
				t.Fatalf("got status=%d message=%q, want %d %q", apiErr.Status, apiErr.Message, tc.status, tc.want)
			}
		})
	}
}

func TestRequestNoContent(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "empty 200", status: 200},
		{name: "204", status: 204},
		{name: "plain text", status: 200, body: "OK"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}, "tok")
			raw, err := c.Request(context.Background(), "/quotes", RequestOptions{Method: http.MethodDelete})
			if err != nil || raw != nil {
				t.Fatalf("raw=%s err=%v, want nil nil", raw, err)
			}
			out := quote.Quote{ID: "keep"}
			if err := c.Do(context.Background(), http.MethodPost, "/quotes", nil, &out); err != nil {
				t.Fatalf("Do: %v", err)
			}
			if out.ID != "keep" {
				t.Fatalf("out overwritten: %+v", out)
			}
		})
	}
}

func TestDoSendsJSONBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method=%s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type=%q", ct)
		}
		if _, err := uuid.Parse(r.Header.Get("X-Request-ID")); err != nil {
			t.Errorf("X-Request-ID=%q: %v", r.Header.Get("X-Request-ID"), err)
		}
		if r.Header.Get("User-Agent") != config.DefaultUserAgent {
			t.Errorf("User-Agent=%q", r.Header.Get("User-Agent"))
		}
		var d quote.Draft
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(quote.Quote{ID: "q1", CompanyName: d.CompanyName, Status: "Draft", Total: 220})
	}, "tok")

	d := quote.Draft{CompanyName: "Acme", Items: []quote.LineItem{{Name: "A", UnitPrice: 100, Quantity: 2, TaxRate: 10}}}
	got, err := c.CreateQuote(context.Background(), d)
	if err != nil {
		t.Fatalf("CreateQuote: %v", err)
	}
	if got.ID != "q1" || got.CompanyName != "Acme" || got.Total != 220 {
		t.Fatalf("quote=%+v", got)
	}
}

func TestGetSendsNoBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		if len(data) != 0 {
			t.Errorf("GET body=%q", data)
		}
		_, _ = io.WriteString(w, `{"company_name":"Acme","language":"fr","theme":"dark"}`)
	}, "tok")
	s, err := c.GetSettings(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if s.CompanyName != "Acme" || s.Language != "fr" {
		t.Fatalf("settings=%+v", s)
	}
}

func TestRequestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := NewClient(config.APIConfig{BaseURL: base}, &tokenBox{value: "tok"}, nil)
	_, err := c.Request(context.Background(), "/quotes", RequestOptions{})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err=%v, want *Error", err)
	}
	if apiErr.Status != 0 || apiErr.Message != "network error" {
		t.Fatalf("got %+v", apiErr)
	}
	if errors.Unwrap(err) == nil {
		t.Fatal("cause should stay reachable")
	}
}

func TestAuthCallsAreUncredentialed(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("token") {
			t.Errorf("auth call carried token: %q", r.URL.RawQuery)
		}
		if r.URL.Path != "/auth/login" {
			t.Errorf("path=%s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"token":"new","user":{"_id":"u1","name":"Ada","role":"admin"}}`)
	}, "stale")

	resp, err := c.Login(context.Background(), "ada@example.com", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Token != "new" || resp.User.ID != "u1" || resp.User.Name != "Ada" {
		t.Fatalf("resp=%+v", resp)
	}
}

func TestListQuotesFilterAndNullBody(t *testing.T) {
	var gotQuery string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `null`)
	}, "tok")

	quotes, err := c.ListQuotes(context.Background(), "Sent")
	if err != nil {
		t.Fatal(err)
	}
	if gotQuery != "status=Sent&token=tok" {
		t.Fatalf("query=%q", gotQuery)
	}
	if quotes == nil || len(quotes) != 0 {
		t.Fatalf("quotes=%#v, want empty slice", quotes)
	}

	if _, err := c.ListQuotes(context.Background(), ""); err != nil {
		t.Fatal(err)
	}
	if gotQuery != "token=tok" {
		t.Fatalf("unfiltered query=%q", gotQuery)
	}
}

func TestNavigableURLs(t *testing.T) {
	c := NewClient(config.APIConfig{BaseURL: "http://localhost:8000/"}, &tokenBox{value: "t k"}, nil)
	if got := c.ExportContactsURL(); got != "http://localhost:8000/crm/contacts/export?token=t+k" {
		t.Fatalf("ExportContactsURL=%q", got)
	}
	if got := c.PublicQuoteURL("abc"); got != "http://localhost:8000/public/quote/abc" {
		t.Fatalf("PublicQuoteURL=%q", got)
	}
}

func TestNewClientTimeout(t *testing.T) {
	if c := NewClient(config.APIConfig{BaseURL: "http://x"}, nil, nil); c.httpClient.Timeout != 0 {
		t.Fatalf("default timeout=%v, want none", c.httpClient.Timeout)
	}
	if c := NewClient(config.APIConfig{BaseURL: "http://x", TimeoutMS: 1500}, nil, nil); c.httpClient.Timeout != 1500*time.Millisecond {
		t.Fatalf("timeout=%v", c.httpClient.Timeout)
	}
}

func TestSetBaseURL(t *testing.T) {
	c := NewClient(config.APIConfig{BaseURL: "http://a"}, nil, nil)
	if err := c.SetBaseURL("  "); err == nil {
		t.Fatal("expected error for empty base url")
	}
	if err := c.SetBaseURL("https://api.example.com/"); err != nil {
		t.Fatal(err)
	}
	if c.BaseURL() != "https://api.example.com" {
		t.Fatalf("BaseURL=%q", c.BaseURL())
	}
}

func TestGroupTasks(t *testing.T) {
	groups := GroupTasks([]Task{
		{Title: "a", Status: TaskToDo},
		{Title: "b", Status: TaskCompleted},
		{Title: "c", Status: "Archived"},
		{Title: "d", Status: TaskToDo},
	})
	if len(groups[TaskToDo]) != 2 || len(groups[TaskCompleted]) != 1 || len(groups[TaskInProgress]) != 0 {
		t.Fatalf("groups=%+v", groups)
	}
	if _, ok := groups["Archived"]; ok {
		t.Fatal("unknown status should not form a column")
	}
}

func TestWriteMethodsTargetResourcePaths(t *testing.T) {
	type call struct{ method, path, body string }
	var calls []call
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls = append(calls, call{r.Method, r.URL.Path, string(body)})
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = io.WriteString(w, `{"_id":"x1"}`)
	}, "tok")
	ctx := context.Background()

	q, err := c.UpdateQuote(ctx, "q 1", quote.Draft{CompanyName: "Acme"})
	if err != nil || q.ID != "x1" {
		t.Fatalf("UpdateQuote=%+v err=%v", q, err)
	}
	contact, err := c.UpdateContact(ctx, "c1", Contact{ID: "stale", Name: "Ada"})
	if err != nil || contact.ID != "x1" {
		t.Fatalf("UpdateContact=%+v err=%v", contact, err)
	}
	if err := c.DeleteTask(ctx, "t1"); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}

	want := []call{
		{http.MethodPut, "/quotes/q 1", ""},
		{http.MethodPut, "/crm/contacts/c1", ""},
		{http.MethodDelete, "/tasks/t1", ""},
	}
	if len(calls) != len(want) {
		t.Fatalf("calls=%+v", calls)
	}
	for i, w := range want {
		if calls[i].method != w.method || calls[i].path != w.path {
			t.Fatalf("call %d=%s %s, want %s %s", i, calls[i].method, calls[i].path, w.method, w.path)
		}
	}
	var sent map[string]any
	if err := json.Unmarshal([]byte(calls[1].body), &sent); err != nil {
		t.Fatalf("contact body: %v", err)
	}
	if _, ok := sent["_id"]; ok && sent["_id"] != "" {
		t.Fatalf("update body must not carry the id: %v", sent)
	}
	if calls[2].body != "" {
		t.Fatalf("delete sent a body: %q", calls[2].body)
	}
}
