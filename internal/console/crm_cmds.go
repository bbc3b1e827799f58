package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"smbsuite/internal/api"
)

func (c *Console) cmdDashboard(ctx context.Context, args []string) error {
	sum, err := c.backend.DashboardSummary(ctx)
	if err != nil {
		return err
	}
	c.println(c.msg.T("dashboard.counts", sum.Counts.Clients, sum.Counts.Quotes, sum.Counts.TasksPending))

	c.println("")
	c.println(c.msg.T("dashboard.recent_contacts"))
	for _, ct := range sum.RecentContacts {
		c.printf("  %s · %s\n", ct.Name, ct.Status)
	}
	c.println(c.msg.T("dashboard.recent_quotes"))
	for _, q := range sum.RecentQuotes {
		c.printf("  %s · %s\n", q.DisplayName(), q.Status)
	}
	c.println(c.msg.T("dashboard.recent_tasks"))
	for _, t := range sum.RecentTasks {
		c.printf("  %s · %s\n", t.Title, t.Status)
	}
	return nil
}

func (c *Console) cmdContacts(ctx context.Context, args []string) error {
	fields, rest := parseFields(args)
	filter := api.ContactFilter{Status: fields["status"], Query: fields["q"]}
	if filter.Query == "" && len(rest) > 0 {
		filter.Query = strings.Join(rest, " ")
	}
	list, err := c.backend.ListContacts(ctx, filter)
	if err != nil {
		return err
	}
	c.contacts = list
	if len(list) == 0 {
		c.println(c.msg.T("contacts.empty"))
		return nil
	}
	rows := make([][]string, 0, len(list))
	for i, ct := range list {
		rows = append(rows, []string{strconv.Itoa(i + 1), ct.Name, ct.Email, ct.Phone, ct.CompanyName, ct.Status})
	}
	c.printf("%s", renderTable([]string{
		"#", c.msg.T("col.name"), c.msg.T("col.email"), c.msg.T("col.phone"), c.msg.T("col.company"), c.msg.T("col.status"),
	}, rows))
	return nil
}

func (c *Console) cmdAddContact(ctx context.Context, args []string) error {
	fields, rest := parseFields(args)
	name := strings.TrimSpace(fields["name"])
	if name == "" && len(rest) > 0 {
		name = strings.Join(rest, " ")
	}
	if name == "" {
		return fmt.Errorf("%s", c.msg.T("contacts.name_required"))
	}
	status := strings.TrimSpace(fields["status"])
	if status == "" {
		status = api.ContactProspect
	}
	created, err := c.backend.CreateContact(ctx, api.Contact{
		Name:        name,
		Email:       fields["email"],
		Phone:       fields["phone"],
		CompanyName: fields["company"],
		Status:      status,
	})
	if err != nil {
		return err
	}
	if created.Name == "" {
		created.Name = name
	}
	c.println(c.msg.T("contacts.added", created.Name))
	return nil
}

func (c *Console) cmdRemoveContact(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("rm-contact")
	}
	var target api.Contact
	if idx, ok := parseIndex(args[0], len(c.contacts)); ok {
		target = c.contacts[idx]
	} else {
		for _, ct := range c.contacts {
			if ct.ID == args[0] {
				target = ct
			}
		}
	}
	if target.ID == "" {
		return fmt.Errorf("%s", c.msg.T("contacts.not_found", args[0]))
	}
	ok, err := c.confirm("delete contact", target.Name)
	if err != nil || !ok {
		return err
	}
	if err := c.backend.DeleteContact(ctx, target.ID); err != nil {
		return err
	}
	c.println(c.msg.T("contacts.deleted", target.Name))
	return c.cmdContacts(ctx, nil)
}

func (c *Console) cmdExportURL(ctx context.Context, args []string) error {
	c.println(c.backend.ExportContactsURL())
	return nil
}
