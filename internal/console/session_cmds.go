package console

import (
	"context"
	"strings"

	"smbsuite/internal/auth"
	"smbsuite/internal/i18n"
)

func (c *Console) cmdLogin(ctx context.Context, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return usage("login")
	}
	if c.auth == nil {
		return ErrNotLoggedIn
	}
	email := strings.TrimSpace(args[0])
	name := strings.TrimSpace(strings.Join(args[1:], " "))
	password, err := c.readSecret(c.msg.T("auth.password"))
	if err != nil {
		return err
	}

	res, err := c.auth.Continue(ctx, auth.Credentials{Name: name, Email: email, Password: password})
	if err != nil {
		return err
	}
	key := "auth.signed_in"
	if res.Registered {
		key = "auth.registered"
	}
	c.println(c.msg.T(key, displayUser(res.User.Name, res.User.Email), res.User.Role))
	return nil
}

func (c *Console) cmdLogout(ctx context.Context, args []string) error {
	user, _ := c.auth.CurrentUser()
	ok, err := c.confirm("logout", displayUser(user.Name, user.Email))
	if err != nil || !ok {
		return err
	}
	if err := c.auth.Logout(); err != nil {
		return err
	}
	c.contacts, c.projects, c.tasks = nil, nil, nil
	c.println(c.msg.T("auth.logged_out"))
	return nil
}

func (c *Console) cmdWhoami(ctx context.Context, args []string) error {
	user, ok := c.auth.CurrentUser()
	if !ok {
		return ErrNotLoggedIn
	}
	c.println(c.msg.T("auth.whoami", displayUser(user.Name, user.Email), user.Role))
	return nil
}

func (c *Console) cmdLang(ctx context.Context, args []string) error {
	if len(args) == 0 {
		c.println(c.msg.T("lang.current", c.msg.Locale()))
		return nil
	}
	locale := i18n.Normalize(args[0])
	if !i18n.Supported(locale) {
		return usage("lang")
	}
	c.msg.SetLocale(locale)
	if c.saveLang != nil {
		if err := c.saveLang(locale); err != nil {
			c.logger.Warn("persist language failed", "locale", locale, "err", err)
		}
	}
	c.println(c.msg.T("lang.switched", locale))
	return nil
}

func (c *Console) cmdServer(ctx context.Context, args []string) error {
	if c.backend == nil {
		return ErrNotLoggedIn
	}
	if len(args) == 0 {
		c.println(c.msg.T("server.current", c.backend.BaseURL()))
		return nil
	}
	// 已登录的 token 不能发往另一个服务端
	// a session token must never be sent to a different host
	if c.auth != nil && c.auth.State() == auth.Authenticated {
		return ErrSignedIn
	}
	if err := c.backend.SetBaseURL(args[0]); err != nil {
		return err
	}
	c.println(c.msg.T("server.switched", c.backend.BaseURL()))
	return nil
}

func displayUser(name, email string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	return email
}
