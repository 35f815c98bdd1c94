package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig("")
	if cfg.System.Appid == "" {
		t.Error("default appid is empty")
	}
	if cfg.Web.Port == 0 {
		t.Error("default web port is zero")
	}
	if cfg.Store.BackupKeep <= 0 {
		t.Error("default backup retention must be positive")
	}
}

func TestLoadConfigFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	cfile := filepath.Join(dir, "yallarent.yml")
	content := `
system:
  appid: YallaRentTest
  workdir: /tmp/yallarent-test
web:
  host: 0.0.0.0
  port: 2816
  secret: file-secret
store:
  path: file.db
  backup_keep: 3
`
	if err := os.WriteFile(cfile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("YALLARENT_WEB_SECRET", "env-secret")
	t.Setenv("YALLARENT_WEB_PORT", "3816")

	cfg := LoadConfig(cfile)
	if cfg.System.Appid != "YallaRentTest" {
		t.Errorf("appid = %q", cfg.System.Appid)
	}
	if cfg.Store.Path != "file.db" || cfg.Store.BackupKeep != 3 {
		t.Errorf("store config not loaded: %+v", cfg.Store)
	}
	// environment wins over the file
	if cfg.Web.Secret != "env-secret" {
		t.Errorf("secret = %q, want env override", cfg.Web.Secret)
	}
	if cfg.Web.Port != 3816 {
		t.Errorf("port = %d, want env override", cfg.Web.Port)
	}
}
