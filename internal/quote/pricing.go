// Package quote holds the quote data model, the client-side pricing engine
// and the mutable draft a quote is composed in before submission.
//
// Totals computed here are previews. The server's Quote.Total is the
// authoritative figure and is never replaced by a local computation.
package quote

// LineItem 报价单中的一行
// LineItem is one priced row of a quote
type LineItem struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  float64 `json:"quantity"`
	// TaxRate 为百分比，例如 20 表示 20%
	// TaxRate is a percentage, e.g. 20 means 20%
	TaxRate float64 `json:"tax_rate"`
}

// LineTotal = unit_price × quantity × (1 + tax_rate/100)，不做四舍五入，负值照常参与运算。
// LineTotal = unit_price × quantity × (1 + tax_rate/100) with no rounding; negative inputs flow through.
func LineTotal(item LineItem) float64 {
	base := item.UnitPrice * item.Quantity
	return base + base*item.TaxRate/100
}

// Total 按显示顺序累加各行合计；无行时为 0
// Total sums line totals in display order; zero items yield 0
func Total(items []LineItem) float64 {
	var sum float64
	for _, item := range items {
		sum += LineTotal(item)
	}
	return sum
}

// Total 返回该行合计 / Total returns the line total
func (it LineItem) Total() float64 {
	return LineTotal(it)
}
