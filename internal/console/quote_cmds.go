package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"smbsuite/internal/quote"
)

func (c *Console) cmdQuotes(ctx context.Context, args []string) error {
	if len(args) > 0 {
		status := strings.Join(args, " ")
		if strings.EqualFold(status, "all") {
			status = ""
		}
		c.quotes.SetStatusFilter(status)
	}
	if err := c.quotes.Load(ctx); err != nil {
		return err
	}
	c.printQuotes(c.quotes.List())
	return nil
}

func (c *Console) printQuotes(list []quote.Quote) {
	filter := c.quotes.StatusFilter()
	if filter == "" {
		filter = c.msg.T("quotes.all")
	}
	c.println(c.msg.T("quotes.filter", filter))
	if len(list) == 0 {
		c.println(c.msg.T("quotes.empty"))
		return
	}
	rows := make([][]string, 0, len(list))
	for i, q := range list {
		share := ""
		if link, ok := c.quotes.ShareLink(q); ok {
			share = link
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), q.DisplayName(), q.Status, formatAmount(q.Total), share})
	}
	c.printf("%s", renderTable([]string{"#", c.msg.T("col.company"), c.msg.T("col.status"), c.msg.T("col.total"), c.msg.T("col.share")}, rows))
}

func (c *Console) cmdDraft(ctx context.Context, args []string) error {
	c.printDraft(c.quotes.Draft())
	return nil
}

func (c *Console) printDraft(d quote.Draft) {
	company := d.CompanyName
	if strings.TrimSpace(company) == "" {
		company = "-"
	}
	c.println(c.msg.T("draft.company", company))
	rows := make([][]string, 0, len(d.Items))
	for i, it := range d.Items {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			it.Name,
			formatAmount(it.UnitPrice),
			formatAmount(it.Quantity),
			formatAmount(it.TaxRate),
			formatAmount(it.Total()),
		})
	}
	c.printf("%s", renderTable([]string{
		"#", c.msg.T("col.item"), c.msg.T("col.price"), c.msg.T("col.qty"), c.msg.T("col.tax"), c.msg.T("col.line_total"),
	}, rows))
	c.println(c.msg.T("draft.preview_total", formatAmount(d.Total())))
}

func (c *Console) cmdCompany(ctx context.Context, args []string) error {
	c.quotes.SetCompany(strings.Join(args, " "))
	c.printDraft(c.quotes.Draft())
	return nil
}

func (c *Console) cmdItem(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("item")
	}
	switch strings.ToLower(args[0]) {
	case "add":
		patch, err := parseItemPatch(args[1:])
		if err != nil {
			return err
		}
		idx, err := c.quotes.AppendItemWith(patch)
		if err != nil {
			return err
		}
		c.println(c.msg.T("draft.item_added", idx+1))
	case "set":
		if len(args) < 3 {
			return usage("item")
		}
		idx, err := itemIndex(args[1])
		if err != nil {
			return err
		}
		patch, err := parseItemPatch(args[2:])
		if err != nil {
			return err
		}
		if err := c.quotes.PatchItem(idx, patch); err != nil {
			return err
		}
		c.println(c.msg.T("draft.item_updated", idx+1))
	case "rm":
		if len(args) < 2 {
			return usage("item")
		}
		idx, err := itemIndex(args[1])
		if err != nil {
			return err
		}
		if err := c.quotes.RemoveItem(idx); err != nil {
			return err
		}
		c.println(c.msg.T("draft.item_removed", idx+1))
	default:
		return usage("item")
	}
	c.printDraft(c.quotes.Draft())
	return nil
}

func itemIndex(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid item number: %s", raw)
	}
	return n - 1, nil
}

// parseItemPatch 解析 name= price= qty= tax= 字段
// parseItemPatch reads the name= price= qty= tax= fields
func parseItemPatch(args []string) (quote.ItemPatch, error) {
	var patch quote.ItemPatch
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		if !ok || key == "" {
			return quote.ItemPatch{}, fmt.Errorf("unexpected argument: %s", arg)
		}
		switch key {
		case "name":
			name := raw
			patch.Name = &name
		case "price", "unit_price":
			v, err := parseNumber(raw)
			if err != nil {
				return quote.ItemPatch{}, fmt.Errorf("invalid price %q: %w", raw, err)
			}
			patch.UnitPrice = &v
		case "qty", "quantity":
			v, err := parseNumber(raw)
			if err != nil {
				return quote.ItemPatch{}, fmt.Errorf("invalid quantity %q: %w", raw, err)
			}
			patch.Quantity = &v
		case "tax", "tax_rate":
			v, err := parseNumber(raw)
			if err != nil {
				return quote.ItemPatch{}, fmt.Errorf("invalid tax rate %q: %w", raw, err)
			}
			patch.TaxRate = &v
		default:
			return quote.ItemPatch{}, fmt.Errorf("unknown field: %s", key)
		}
	}
	return patch, nil
}

func (c *Console) cmdSubmit(ctx context.Context, args []string) error {
	created, err := c.quotes.Submit(ctx)
	if err != nil {
		return err
	}
	c.println(c.msg.T("quote.submitted", created.DisplayName()))
	if err := c.quotes.LastError(); err != nil {
		c.printError(err)
		return nil
	}
	c.printQuotes(c.quotes.List())
	return nil
}

func (c *Console) cmdReset(ctx context.Context, args []string) error {
	c.quotes.ResetDraft()
	c.println(c.msg.T("draft.reset"))
	return nil
}

func (c *Console) quoteAt(raw string) (quote.Quote, error) {
	list := c.quotes.List()
	if idx, ok := parseIndex(raw, len(list)); ok {
		return list[idx], nil
	}
	for _, q := range list {
		if q.ID == raw {
			return q, nil
		}
	}
	return quote.Quote{}, fmt.Errorf("%s", c.msg.T("quote.not_found", raw))
}

func (c *Console) cmdShare(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("share")
	}
	q, err := c.quoteAt(args[0])
	if err != nil {
		return err
	}
	link, ok := c.quotes.ShareLink(q)
	if !ok {
		c.println(c.msg.T("quote.no_share", q.DisplayName()))
		return nil
	}
	c.println(link)
	return nil
}

func (c *Console) cmdRemoveQuote(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("rm-quote")
	}
	q, err := c.quoteAt(args[0])
	if err != nil {
		return err
	}
	ok, err := c.confirm("delete quote", q.DisplayName())
	if err != nil || !ok {
		return err
	}
	if err := c.quotes.Delete(ctx, q.ID); err != nil {
		return err
	}
	c.println(c.msg.T("quote.deleted", q.DisplayName()))
	return nil
}
