package quote

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func ptr[T any](v T) *T { return &v }

func TestLineTotalFormula(t *testing.T) {
	tests := []struct {
		name string
		item LineItem
		want float64
	}{
		{name: "untaxed", item: LineItem{UnitPrice: 100, Quantity: 1}, want: 100},
		{name: "taxed", item: LineItem{UnitPrice: 100, Quantity: 2, TaxRate: 10}, want: 220},
		{name: "fractional qty", item: LineItem{UnitPrice: 50, Quantity: 0.5, TaxRate: 20}, want: 30},
		{name: "zero quantity", item: LineItem{UnitPrice: 99, Quantity: 0, TaxRate: 20}, want: 0},
		{name: "negative price flows through", item: LineItem{UnitPrice: -10, Quantity: 3}, want: -30},
		{name: "tax above 100 flows through", item: LineItem{UnitPrice: 10, Quantity: 1, TaxRate: 150}, want: 25},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := LineTotal(tc.item); !almostEqual(got, tc.want) {
				t.Fatalf("LineTotal=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestTotalSumsInDisplayOrder(t *testing.T) {
	items := []LineItem{
		{Name: "A", UnitPrice: 100, Quantity: 2, TaxRate: 10},
	}
	if got := Total(items); got != 220 {
		t.Fatalf("Total=%v, want 220", got)
	}
	if got := Total(nil); got != 0 {
		t.Fatalf("Total(nil)=%v, want 0", got)
	}
}

func TestTotalIndependentOfOrder(t *testing.T) {
	a := LineItem{UnitPrice: 12.5, Quantity: 3, TaxRate: 5.5}
	b := LineItem{UnitPrice: 7, Quantity: 11, TaxRate: 20}
	c := LineItem{UnitPrice: 0.3, Quantity: 9, TaxRate: 0}
	forward := Total([]LineItem{a, b, c})
	backward := Total([]LineItem{c, b, a})
	if !almostEqual(forward, backward) {
		t.Fatalf("forward=%v backward=%v", forward, backward)
	}
}

func TestNewDraftDefaults(t *testing.T) {
	d := NewDraft()
	if d.CompanyName != "" {
		t.Fatalf("CompanyName=%q, want empty", d.CompanyName)
	}
	want := []LineItem{{Name: "Service", UnitPrice: 100, Quantity: 1, TaxRate: 0}}
	if !reflect.DeepEqual(d.Items, want) {
		t.Fatalf("Items=%+v, want %+v", d.Items, want)
	}
	if d.Total() != 100 {
		t.Fatalf("Total=%v, want 100", d.Total())
	}
}

func TestAppendThenRemoveRestoresDraft(t *testing.T) {
	d := NewDraft()
	d.SetCompany("Acme")
	before := d.Clone()

	idx := d.AppendItem()
	if idx != 1 || len(d.Items) != 2 {
		t.Fatalf("AppendItem idx=%d len=%d", idx, len(d.Items))
	}
	if d.Items[1] != BlankItem() {
		t.Fatalf("appended=%+v, want blank item", d.Items[1])
	}
	if err := d.RemoveItem(idx); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if !reflect.DeepEqual(d, before) {
		t.Fatalf("draft=%+v, want %+v", d, before)
	}
}

func TestPatchItemTouchesOnlyTarget(t *testing.T) {
	d := NewDraft()
	d.AppendItem()
	d.AppendItem()
	snapshot := d.Clone()

	if err := d.PatchItem(1, ItemPatch{Name: ptr("Hosting"), Quantity: ptr(3.0)}); err != nil {
		t.Fatalf("PatchItem: %v", err)
	}
	if d.Items[0] != snapshot.Items[0] || d.Items[2] != snapshot.Items[2] {
		t.Fatalf("neighbours changed: %+v", d.Items)
	}
	want := LineItem{Name: "Hosting", UnitPrice: 0, Quantity: 3, TaxRate: 0}
	if d.Items[1] != want {
		t.Fatalf("patched=%+v, want %+v", d.Items[1], want)
	}
	if snapshot.Items[1] != BlankItem() {
		t.Fatalf("snapshot mutated: %+v", snapshot.Items[1])
	}
}

func TestMutationsDoNotAliasEarlierSlices(t *testing.T) {
	d := NewDraft()
	held := d.Items
	if err := d.PatchItem(0, ItemPatch{UnitPrice: ptr(5.0)}); err != nil {
		t.Fatal(err)
	}
	if held[0].UnitPrice != 100 {
		t.Fatalf("held slice mutated: %+v", held[0])
	}
}

func TestIndexOutOfRangeLeavesDraftUnchanged(t *testing.T) {
	d := NewDraft()
	before := d.Clone()
	for _, i := range []int{-1, 1, 5} {
		if err := d.PatchItem(i, ItemPatch{Name: ptr("x")}); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("PatchItem(%d) err=%v", i, err)
		}
		if err := d.RemoveItem(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("RemoveItem(%d) err=%v", i, err)
		}
	}
	if !reflect.DeepEqual(d, before) {
		t.Fatalf("draft changed: %+v", d)
	}
}

func TestRemoveLastItemLeavesEmptyArray(t *testing.T) {
	d := NewDraft()
	if err := d.RemoveItem(0); err != nil {
		t.Fatal(err)
	}
	if d.Total() != 0 {
		t.Fatalf("Total=%v, want 0", d.Total())
	}
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"company_name":"","items":[]}` {
		t.Fatalf("json=%s", raw)
	}
}

func TestDraftWireShape(t *testing.T) {
	d := Draft{CompanyName: "Acme", Items: []LineItem{{Name: "A", UnitPrice: 100, Quantity: 2, TaxRate: 10}}}
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"company_name":"Acme","items":[{"name":"A","unit_price":100,"quantity":2,"tax_rate":10}]}`
	if string(raw) != want {
		t.Fatalf("json=%s, want %s", raw, want)
	}
}

func TestQuoteDecodesServerShape(t *testing.T) {
	var q Quote
	if err := json.Unmarshal([]byte(`{"_id":"q1","company_name":"","status":"Sent","total":220,"public_token":"abc"}`), &q); err != nil {
		t.Fatal(err)
	}
	if q.ID != "q1" || q.Status != "Sent" || q.Total != 220 {
		t.Fatalf("quote=%+v", q)
	}
	if q.DisplayName() != "Quote" {
		t.Fatalf("DisplayName=%q", q.DisplayName())
	}
	if !q.Shareable() {
		t.Fatal("expected shareable")
	}
	if (Quote{}).Shareable() {
		t.Fatal("empty token must not be shareable")
	}
}

func TestValidate(t *testing.T) {
	if err := NewDraft().Validate(); err != nil {
		t.Fatalf("default draft: %v", err)
	}
	d := Draft{Items: []LineItem{
		{UnitPrice: -1, Quantity: 1},
		{UnitPrice: 1, Quantity: 1},
		{UnitPrice: 1, Quantity: 1, TaxRate: 101},
		{UnitPrice: math.NaN(), Quantity: 1},
	}}
	err := d.Validate()
	if !errors.Is(err, ErrNegativePrice) || !errors.Is(err, ErrTaxRateOutOfRange) || !errors.Is(err, ErrNonFiniteNumber) {
		t.Fatalf("err=%v", err)
	}
	var itemErr *ItemError
	if !errors.As(err, &itemErr) || itemErr.Index != 0 {
		t.Fatalf("first ItemError=%+v", itemErr)
	}
	if err := (Draft{}).Validate(); !errors.Is(err, ErrNoItems) {
		t.Fatalf("empty draft err=%v", err)
	}
}
