package console

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"smbsuite/internal/api"
	"smbsuite/internal/auth"
	"smbsuite/internal/config"
	"smbsuite/internal/i18n"
	"smbsuite/internal/quote"
	"smbsuite/internal/screen"
	"smbsuite/internal/session"
	"smbsuite/internal/storage"
)

// fakeBackend 内存版远端服务 / fakeBackend is an in-memory remote service
type fakeBackend struct {
	mu       sync.Mutex
	nextID   int
	quotes   []quote.Quote
	contacts []api.Contact
	projects []api.Project
	tasks    []api.Task
	settings api.Settings
	deleted  []string
}

func (b *fakeBackend) id(prefix string) string {
	b.nextID++
	return fmt.Sprintf("%s%d", prefix, b.nextID)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	path := r.URL.Path
	if path == "/auth/login" || path == "/auth/register" {
		var body struct{ Name, Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch {
		case path == "/auth/login" && body.Email == "ada@example.com" && body.Password == "pw":
			writeJSON(w, 200, map[string]any{"token": "tok", "user": map[string]string{"_id": "u1", "name": "Ada", "role": "admin"}})
		case path == "/auth/login":
			writeJSON(w, 400, map[string]string{"detail": "Invalid credentials"})
		case body.Email == "taken@example.com":
			writeJSON(w, 400, map[string]string{"detail": "Email exists"})
		default:
			writeJSON(w, 200, map[string]any{"token": "tok", "user": map[string]string{"_id": "u2", "name": body.Name, "role": "owner"}})
		}
		return
	}
	if r.URL.Query().Get("token") != "tok" {
		writeJSON(w, 401, map[string]string{"detail": "Invalid token"})
		return
	}

	switch {
	case path == "/quotes" && r.Method == http.MethodGet:
		status := r.URL.Query().Get("status")
		out := []quote.Quote{}
		for _, q := range b.quotes {
			if status == "" || q.Status == status {
				out = append(out, q)
			}
		}
		writeJSON(w, 200, out)
	case path == "/quotes" && r.Method == http.MethodPost:
		var d quote.Draft
		_ = json.NewDecoder(r.Body).Decode(&d)
		q := quote.Quote{ID: b.id("q"), CompanyName: d.CompanyName, Status: quote.StatusDraft, Total: quote.Total(d.Items), Items: d.Items}
		q.PublicToken = "pub-" + q.ID
		b.quotes = append(b.quotes, q)
		writeJSON(w, 200, q)
	case strings.HasPrefix(path, "/quotes/") && r.Method == http.MethodDelete:
		id := strings.TrimPrefix(path, "/quotes/")
		b.deleted = append(b.deleted, id)
		kept := b.quotes[:0]
		for _, q := range b.quotes {
			if q.ID != id {
				kept = append(kept, q)
			}
		}
		b.quotes = kept
		w.WriteHeader(http.StatusNoContent)
	case path == "/crm/contacts" && r.Method == http.MethodGet:
		writeJSON(w, 200, b.contacts)
	case path == "/crm/contacts" && r.Method == http.MethodPost:
		var c api.Contact
		_ = json.NewDecoder(r.Body).Decode(&c)
		c.ID = b.id("c")
		b.contacts = append(b.contacts, c)
		writeJSON(w, 200, c)
	case strings.HasPrefix(path, "/crm/contacts/") && r.Method == http.MethodDelete:
		id := strings.TrimPrefix(path, "/crm/contacts/")
		b.deleted = append(b.deleted, id)
		kept := []api.Contact{}
		for _, c := range b.contacts {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		b.contacts = kept
		writeJSON(w, 200, map[string]bool{"ok": true})
	case path == "/projects" && r.Method == http.MethodGet:
		writeJSON(w, 200, b.projects)
	case path == "/projects" && r.Method == http.MethodPost:
		var p api.Project
		_ = json.NewDecoder(r.Body).Decode(&p)
		p.ID = b.id("p")
		b.projects = append(b.projects, p)
		writeJSON(w, 200, p)
	case path == "/tasks" && r.Method == http.MethodGet:
		writeJSON(w, 200, b.tasks)
	case path == "/tasks" && r.Method == http.MethodPost:
		var t api.Task
		_ = json.NewDecoder(r.Body).Decode(&t)
		t.ID = b.id("t")
		b.tasks = append(b.tasks, t)
		writeJSON(w, 200, t)
	case strings.HasPrefix(path, "/tasks/") && r.Method == http.MethodPut:
		id := strings.TrimPrefix(path, "/tasks/")
		var t api.Task
		_ = json.NewDecoder(r.Body).Decode(&t)
		for i := range b.tasks {
			if b.tasks[i].ID == id {
				t.ID = id
				b.tasks[i] = t
			}
		}
		writeJSON(w, 200, t)
	case path == "/settings" && r.Method == http.MethodGet:
		writeJSON(w, 200, b.settings)
	case path == "/settings" && r.Method == http.MethodPut:
		_ = json.NewDecoder(r.Body).Decode(&b.settings)
		writeJSON(w, 200, b.settings)
	case path == "/users":
		writeJSON(w, 200, []map[string]string{{"_id": "u1", "name": "Ada", "role": "admin", "email": "ada@example.com"}})
	case path == "/dashboard/summary":
		writeJSON(w, 200, map[string]any{
			"counts":          map[string]int{"clients": len(b.contacts), "quotes": len(b.quotes), "tasks_pending": 1},
			"recent_contacts": b.contacts,
			"recent_quotes":   b.quotes,
			"recent_tasks":    b.tasks,
		})
	default:
		http.NotFound(w, r)
	}
}

// scriptedPrompter 按顺序返回预设回答 / scriptedPrompter replays canned answers
type scriptedPrompter struct {
	answers []string
	prompts []string
}

func (p *scriptedPrompter) ReadLine(prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if len(p.answers) == 0 {
		return "", io.EOF
	}
	next := p.answers[0]
	p.answers = p.answers[1:]
	return next, nil
}

type harness struct {
	console  *Console
	backend  *fakeBackend
	prompter *scriptedPrompter
	out      *bytes.Buffer
	store    *storage.SQLiteStore
	flow     *auth.Flow
	quotes   *screen.Quotes
	savedLng []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	backend := &fakeBackend{settings: api.Settings{CompanyName: "Acme", Language: "en", Theme: "light"}}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "console.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	sess := session.New(store, nil)
	client := api.NewClient(config.APIConfig{BaseURL: srv.URL}, sess, nil)
	h := &harness{
		backend:  backend,
		prompter: &scriptedPrompter{},
		out:      &bytes.Buffer{},
		store:    store,
		flow:     auth.NewFlow(client, sess, nil),
		quotes:   screen.NewQuotes(client, screen.Options{}, nil),
	}
	h.console = New(Options{
		Auth:          h.flow,
		Backend:       client,
		Quotes:        h.quotes,
		Confirmations: store,
		Messages:      i18n.New("en"),
		Prompter:      h.prompter,
		Out:           h.out,
		SaveLanguage: func(locale string) error {
			h.savedLng = append(h.savedLng, locale)
			return nil
		},
	})
	return h
}

// run 执行命令并返回本次输出 / run executes a command and returns its output
func (h *harness) run(t *testing.T, line string, answers ...string) (string, error) {
	t.Helper()
	h.out.Reset()
	h.prompter.answers = append(h.prompter.answers, answers...)
	_, err := h.console.Execute(t.Context(), line)
	return h.out.String(), err
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	if _, err := h.run(t, "/login ada@example.com", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
}
