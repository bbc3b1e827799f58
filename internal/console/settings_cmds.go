package console

import (
	"context"
	"strings"
)

func (c *Console) cmdSettings(ctx context.Context, args []string) error {
	s, err := c.backend.GetSettings(ctx)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		fields, rest := parseFields(args)
		if len(rest) > 0 {
			return usage("settings")
		}
		for key, value := range fields {
			switch key {
			case "company", "company_name":
				s.CompanyName = value
			case "language":
				s.Language = strings.TrimSpace(value)
			case "theme":
				s.Theme = strings.TrimSpace(value)
			default:
				return usage("settings")
			}
		}
		if err := c.backend.UpdateSettings(ctx, s); err != nil {
			return err
		}
		c.println(c.msg.T("settings.saved"))
	}
	c.println(c.msg.T("settings.show", s.CompanyName, s.Language, s.Theme))
	return nil
}

func (c *Console) cmdUsers(ctx context.Context, args []string) error {
	users, err := c.backend.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		c.println(c.msg.T("users.empty"))
		return nil
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.Name, u.Role, u.Email})
	}
	c.printf("%s", renderTable([]string{c.msg.T("col.name"), c.msg.T("col.role"), c.msg.T("col.email")}, rows))
	return nil
}
