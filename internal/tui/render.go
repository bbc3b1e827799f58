package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"smbsuite/internal/i18n"
	"smbsuite/internal/quote"
)

// RenderMarkdown 使用 Glamour 渲染 markdown 文本；失败时原样返回
// RenderMarkdown renders markdown text using Glamour and returns the input on failure
func RenderMarkdown(content string, width int, style string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	if style == "" {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}

	return strings.TrimRight(rendered, "\n")
}

// quotesMarkdown 报价列表的 markdown 表格
// quotesMarkdown renders the quote list as a markdown table
func quotesMarkdown(list []quote.Quote, share func(quote.Quote) (string, bool), msg *i18n.I18n) string {
	if len(list) == 0 {
		return "_" + msg.T("quotes.empty") + "_"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "| # | %s | %s | %s | %s |\n", msg.T("col.company"), msg.T("col.status"), msg.T("col.total"), msg.T("col.share"))
	b.WriteString("|---|---|---|---:|---|\n")
	for i, q := range list {
		link := ""
		if share != nil {
			if l, ok := share(q); ok {
				link = l
			}
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n", i+1, cell(q.DisplayName()), cell(q.Status), formatAmount(q.Total), cell(link))
	}
	return b.String()
}

// draftMarkdown 草稿的 markdown 表格与预览合计
// draftMarkdown renders the draft table and its preview total
func draftMarkdown(d quote.Draft, msg *i18n.I18n) string {
	company := strings.TrimSpace(d.CompanyName)
	if company == "" {
		company = "-"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n\n", cell(msg.T("draft.company", company)))
	fmt.Fprintf(&b, "| # | %s | %s | %s | %s | %s |\n",
		msg.T("col.item"), msg.T("col.price"), msg.T("col.qty"), msg.T("col.tax"), msg.T("col.line_total"))
	b.WriteString("|---|---|---:|---:|---:|---:|\n")
	for i, it := range d.Items {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n", i+1, cell(it.Name),
			formatAmount(it.UnitPrice), formatAmount(it.Quantity), formatAmount(it.TaxRate), formatAmount(it.Total()))
	}
	return b.String()
}

// statusSummary 按状态统计报价数量的徽标行
// statusSummary is a badge line counting quotes per status
func statusSummary(list []quote.Quote, theme Theme) string {
	counts := map[string]int{}
	for _, q := range list {
		counts[q.Status]++
	}
	parts := make([]string, 0, 3)
	for _, status := range []string{quote.StatusDraft, quote.StatusSent, quote.StatusAccepted} {
		parts = append(parts, theme.Badge(status).Render(fmt.Sprintf("%s %d", status, counts[status])))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
