package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("APP_ADDR", "")
	t.Setenv("JWT_EXPIRES_IN", "")
	t.Setenv("AUTO_MIGRATE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("ASSET_DIR", "")

	env := LoadEnv()
	if env.AppAddr != ":5047" {
		t.Fatalf("unexpected default addr %q", env.AppAddr)
	}
	if env.JWTExpiresIn != 7*24*time.Hour {
		t.Fatalf("unexpected default expiry %v", env.JWTExpiresIn)
	}
	if !env.AutoMigrate {
		t.Fatalf("auto migrate should default to true")
	}
	if len(env.CORSAllowedOrigins) != 0 {
		t.Fatalf("expected no origins, got %v", env.CORSAllowedOrigins)
	}
	if env.AssetDir != "assets" {
		t.Fatalf("unexpected asset dir %q", env.AssetDir)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "2h")
	t.Setenv("AUTO_MIGRATE", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("LOG_LEVEL", "DEBUG")

	env := LoadEnv()
	if env.JWTExpiresIn != 2*time.Hour {
		t.Fatalf("expiry got %v", env.JWTExpiresIn)
	}
	if env.AutoMigrate {
		t.Fatalf("auto migrate should be off")
	}
	if len(env.CORSAllowedOrigins) != 2 || env.CORSAllowedOrigins[1] != "http://b.test" {
		t.Fatalf("origins got %v", env.CORSAllowedOrigins)
	}
	if env.LogLevel != "debug" {
		t.Fatalf("log level got %q", env.LogLevel)
	}
}

func TestDSN(t *testing.T) {
	dsn := DSN(Env{DBUser: "fleet", DBPassword: "pw", DBHost: "db", DBPort: "3307", DBName: "fleet_app"})
	if !strings.HasPrefix(dsn, "fleet:pw@tcp(db:3307)/fleet_app?") {
		t.Fatalf("unexpected dsn %q", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Fatalf("dsn must enable parseTime: %q", dsn)
	}
}
