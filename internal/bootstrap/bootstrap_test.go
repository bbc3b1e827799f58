package bootstrap

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"smbsuite/internal/auth"
	"smbsuite/internal/config"
)

func TestBuildSuccessWithTempDir(t *testing.T) {
	tmp := t.TempDir()
	cfg := config.Default()
	cfg.Storage.BaseDir = tmp
	cfg.UI.Language = "fr"
	cfg.Quotes.DefaultStatusFilter = "Sent"

	res, err := Build(cfg, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer res.Close()

	if res.Store == nil || res.Session == nil || res.Client == nil || res.Auth == nil || res.Quotes == nil {
		t.Fatalf("incomplete build: %+v", res)
	}
	if got := res.Store.Path(); got != filepath.Join(tmp, config.DefaultDBFileName) {
		t.Fatalf("db path=%q", got)
	}
	if res.Auth.State() != auth.Unauthenticated {
		t.Fatal("fresh build should start unauthenticated")
	}
	if res.Messages.Locale() != "fr" {
		t.Fatalf("locale=%q, want fr", res.Messages.Locale())
	}
	if res.Quotes.StatusFilter() != "Sent" {
		t.Fatalf("filter=%q, want Sent", res.Quotes.StatusFilter())
	}
	if res.Client.BaseURL() != config.DefaultBaseURL {
		t.Fatalf("base url=%q", res.Client.BaseURL())
	}
}

func TestBuildMigratesLegacySession(t *testing.T) {
	tmp := t.TempDir()
	legacy := `{"token":"abc","user":{"_id":"u1","name":"Ada","role":"admin"}}`
	if err := os.WriteFile(filepath.Join(tmp, "session.json"), []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Storage.BaseDir = tmp

	res, err := Build(cfg, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer res.Close()

	if res.Auth.State() != auth.Authenticated {
		t.Fatal("migrated session should be authenticated")
	}
	user, _ := res.Auth.CurrentUser()
	if user.Name != "Ada" || user.ID != "u1" {
		t.Fatalf("user=%+v", user)
	}
	if _, err := os.Stat(filepath.Join(tmp, "session.json.migrated")); err != nil {
		t.Fatalf("legacy file not renamed: %v", err)
	}
}

func TestBuildFailsOnUnwritableStorage(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Storage.BaseDir = filepath.Join(blocker, "nested")

	_, err := Build(cfg, nil)
	if err == nil {
		t.Fatal("Build should fail when the storage dir cannot be created")
	}
	if !strings.Contains(err.Error(), "init storage") {
		t.Fatalf("err=%v", err)
	}
}

func TestNewConsoleRunsPublicCommands(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.BaseDir = t.TempDir()
	cfg.UI.Language = "en"
	res, err := Build(cfg, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer res.Close()

	var out bytes.Buffer
	c := res.NewConsole(&out, nil, nil)
	if _, err := c.Execute(t.Context(), "/server"); err != nil {
		t.Fatalf("/server: %v", err)
	}
	if !strings.Contains(out.String(), config.DefaultBaseURL) {
		t.Fatalf("out=%q", out.String())
	}
}

func TestCloseNil(t *testing.T) {
	var res *BuildResult
	if err := res.Close(); err != nil {
		t.Fatalf("Close on nil: %v", err)
	}
}
