package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("unexpected default port: %s", cfg.Port)
	}
	if cfg.EventRetention != 168*time.Hour {
		t.Fatalf("unexpected retention: %s", cfg.EventRetention)
	}
	if cfg.SweepInterval != time.Hour {
		t.Fatalf("unexpected sweep interval: %s", cfg.SweepInterval)
	}
	if cfg.MaxUploadFiles != 20 {
		t.Fatalf("unexpected upload file cap: %d", cfg.MaxUploadFiles)
	}
	if cfg.MaxUploadSize != 15*1024*1024 {
		t.Fatalf("unexpected upload size cap: %d", cfg.MaxUploadSize)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("EVENT_RETENTION", "48h")
	t.Setenv("MAX_UPLOAD_FILES", "5")

	cfg := Load()
	if cfg.Port != "9999" {
		t.Fatalf("unexpected port: %s", cfg.Port)
	}
	if cfg.EventRetention != 48*time.Hour {
		t.Fatalf("unexpected retention: %s", cfg.EventRetention)
	}
	if cfg.MaxUploadFiles != 5 {
		t.Fatalf("unexpected upload file cap: %d", cfg.MaxUploadFiles)
	}
}

func TestBadValuesFallBack(t *testing.T) {
	t.Setenv("EVENT_RETENTION", "not-a-duration")
	t.Setenv("MAX_UPLOAD_FILES", "lots")

	cfg := Load()
	if cfg.EventRetention != 168*time.Hour {
		t.Fatalf("expected fallback retention, got %s", cfg.EventRetention)
	}
	if cfg.MaxUploadFiles != 20 {
		t.Fatalf("expected fallback file cap, got %d", cfg.MaxUploadFiles)
	}
}

func TestDSN(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "secret")

	cfg := Load()
	dsn := cfg.DSN()
	if dsn != "host=db.internal user=postgres password=secret dbname=momentpick port=5432 sslmode=disable TimeZone=UTC" {
		t.Fatalf("unexpected dsn: %s", dsn)
	}
}
