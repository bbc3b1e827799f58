package screen

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"

	"smbsuite/internal/api"
	"smbsuite/internal/config"
	"smbsuite/internal/quote"
)

type fakeGateway struct {
	mu        sync.Mutex
	lists     [][]quote.Quote
	listErr   error
	createErr error
	created   []quote.Draft
	deleted   []string
	filters   []string
}

func (g *fakeGateway) ListQuotes(ctx context.Context, status string) ([]quote.Quote, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.filters = append(g.filters, status)
	if g.listErr != nil {
		return nil, g.listErr
	}
	if len(g.lists) == 0 {
		return []quote.Quote{}, nil
	}
	next := g.lists[0]
	if len(g.lists) > 1 {
		g.lists = g.lists[1:]
	}
	return next, nil
}

func (g *fakeGateway) CreateQuote(ctx context.Context, draft quote.Draft) (quote.Quote, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.createErr != nil {
		return quote.Quote{}, g.createErr
	}
	g.created = append(g.created, draft)
	return quote.Quote{ID: "new", CompanyName: draft.CompanyName}, nil
}

func (g *fakeGateway) DeleteQuote(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleted = append(g.deleted, id)
	return nil
}

func (g *fakeGateway) PublicQuoteURL(publicToken string) string {
	return "http://localhost:8000/public/quote/" + publicToken
}

func TestLoadFailureKeepsPreviousList(t *testing.T) {
	gw := &fakeGateway{lists: [][]quote.Quote{{{ID: "q1"}, {ID: "q2"}}}}
	s := NewQuotes(gw, Options{}, nil)
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	gw.listErr = &api.Error{Status: 500, Message: "Error 500"}
	if err := s.Load(context.Background()); err == nil {
		t.Fatal("expected load error")
	}
	if got := s.List(); len(got) != 2 || got[0].ID != "q1" {
		t.Fatalf("list=%+v, want previous list", got)
	}
	if s.LastError() == nil || s.LastError().Error() != "Error 500" {
		t.Fatalf("LastError=%v", s.LastError())
	}
}

func TestSubmitSuccessResetsDraftAndReloads(t *testing.T) {
	gw := &fakeGateway{lists: [][]quote.Quote{{{ID: "new", CompanyName: "Acme", Total: 220}}}}
	s := NewQuotes(gw, Options{}, nil)
	s.SetCompany("Acme")
	qty, tax := 2.0, 10.0
	if err := s.PatchItem(0, quote.ItemPatch{Quantity: &qty, TaxRate: &tax}); err != nil {
		t.Fatal(err)
	}
	if s.PreviewTotal() != 220 {
		t.Fatalf("PreviewTotal=%v, want 220", s.PreviewTotal())
	}

	created, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if created.ID != "new" {
		t.Fatalf("created=%+v", created)
	}
	if len(gw.created) != 1 || gw.created[0].CompanyName != "Acme" || gw.created[0].Items[0].Quantity != 2 {
		t.Fatalf("sent=%+v", gw.created)
	}
	if !reflect.DeepEqual(s.Draft(), quote.NewDraft()) {
		t.Fatalf("draft=%+v, want reset", s.Draft())
	}
	if got := s.List(); len(got) != 1 || got[0].Total != 220 {
		t.Fatalf("list=%+v", got)
	}
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	gw := &fakeGateway{createErr: &api.Error{Status: 400, Message: "company_name required"}}
	s := NewQuotes(gw, Options{}, nil)
	s.SetCompany("Acme")
	s.AppendItem()
	before := s.Draft()

	if _, err := s.Submit(context.Background()); err == nil || err.Error() != "company_name required" {
		t.Fatalf("err=%v", err)
	}
	if !reflect.DeepEqual(s.Draft(), before) {
		t.Fatalf("draft=%+v, want %+v", s.Draft(), before)
	}
	if len(gw.filters) != 0 {
		t.Fatal("failed submit must not reload")
	}
}

func TestStrictValidationBlocksSubmit(t *testing.T) {
	gw := &fakeGateway{}
	s := NewQuotes(gw, Options{StrictValidation: true}, nil)
	neg := -5.0
	if err := s.PatchItem(0, quote.ItemPatch{UnitPrice: &neg}); err != nil {
		t.Fatal(err)
	}
	_, err := s.Submit(context.Background())
	if !errors.Is(err, quote.ErrNegativePrice) {
		t.Fatalf("err=%v", err)
	}
	if len(gw.created) != 0 {
		t.Fatal("invalid draft reached the gateway")
	}

	lax := NewQuotes(gw, Options{}, nil)
	if err := lax.PatchItem(0, quote.ItemPatch{UnitPrice: &neg}); err != nil {
		t.Fatal(err)
	}
	if _, err := lax.Submit(context.Background()); err != nil {
		t.Fatalf("non-strict submit: %v", err)
	}
}

func TestShareLink(t *testing.T) {
	client := api.NewClient(config.APIConfig{BaseURL: "http://localhost:8000"}, nil, nil)
	s := NewQuotes(client, Options{}, nil)

	link, ok := s.ShareLink(quote.Quote{ID: "q1", PublicToken: "abc123"})
	if !ok || !strings.Contains(link, "abc123") {
		t.Fatalf("link=%q ok=%v", link, ok)
	}
	if link != "http://localhost:8000/public/quote/abc123" {
		t.Fatalf("link=%q", link)
	}
	if link, ok := s.ShareLink(quote.Quote{ID: "q2"}); ok || link != "" {
		t.Fatalf("link=%q ok=%v, want none", link, ok)
	}
}

func TestStatusFilterPassesThrough(t *testing.T) {
	gw := &fakeGateway{}
	s := NewQuotes(gw, Options{StatusFilter: "Sent"}, nil)
	_ = s.Load(context.Background())
	s.SetStatusFilter(" ")
	_ = s.Load(context.Background())
	if !reflect.DeepEqual(gw.filters, []string{"Sent", ""}) {
		t.Fatalf("filters=%q", gw.filters)
	}
}

func TestDeleteReloads(t *testing.T) {
	gw := &fakeGateway{}
	s := NewQuotes(gw, Options{}, nil)
	if err := s.Delete(context.Background(), "q9"); err != nil {
		t.Fatal(err)
	}
	if len(gw.deleted) != 1 || gw.deleted[0] != "q9" || len(gw.filters) != 1 {
		t.Fatalf("deleted=%v filters=%v", gw.deleted, gw.filters)
	}
}

func TestDraftMutationsAreLocal(t *testing.T) {
	gw := &fakeGateway{}
	s := NewQuotes(gw, Options{}, nil)
	idx := s.AppendItem()
	if err := s.RemoveItem(idx); err != nil {
		t.Fatal(err)
	}
	if err := s.RemoveItem(7); !errors.Is(err, quote.ErrIndexOutOfRange) {
		t.Fatalf("err=%v", err)
	}
	if len(gw.filters)+len(gw.created)+len(gw.deleted) != 0 {
		t.Fatal("draft mutation reached the gateway")
	}
}

func TestDeleteReloadFailureIsNotADeleteFailure(t *testing.T) {
	gw := &fakeGateway{listErr: &api.Error{Status: 503, Message: "Error 503"}}
	s := NewQuotes(gw, Options{}, nil)
	if err := s.Delete(context.Background(), "q9"); err != nil {
		t.Fatalf("Delete err=%v, want nil after a successful delete", err)
	}
	if len(gw.deleted) != 1 {
		t.Fatalf("deleted=%v", gw.deleted)
	}
	if err := s.LastError(); err == nil || err.Error() != "Error 503" {
		t.Fatalf("LastError=%v, want the reload failure", err)
	}
}

func TestAppendItemWith(t *testing.T) {
	s := NewQuotes(&fakeGateway{}, Options{}, nil)
	name, price := "Hosting", 12.5
	idx, err := s.AppendItemWith(quote.ItemPatch{Name: &name, UnitPrice: &price})
	if err != nil || idx != 1 {
		t.Fatalf("idx=%d err=%v", idx, err)
	}
	want := quote.LineItem{Name: "Hosting", UnitPrice: 12.5, Quantity: 1}
	if got := s.Draft().Items[1]; got != want {
		t.Fatalf("item=%+v, want %+v", got, want)
	}
}
