package config

import (
	"testing"
)

func TestResolveDefaultsDerivesDriver(t *testing.T) {
	cases := []struct {
		target string
		dsn    string
		want   string
		ok     bool
	}{
		{"local", "", "sqlite", true},
		{"cloud-dev", "postgres://h/db", "postgres", true},
		{"cloud", "postgres://h/db", "postgres", true},
		{"cloud", "", "", false}, // postgres needs a DSN
		{"mars", "", "", false},
	}
	for _, tc := range cases {
		cfg := Config{BuildTarget: tc.target, DocstoreDriver: "auto", PostgresDSN: tc.dsn}
		err := cfg.ResolveDefaults()
		if tc.ok {
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", tc.target, err)
			}
			if cfg.DocstoreDriver != tc.want {
				t.Fatalf("%s: got driver %s, want %s", tc.target, cfg.DocstoreDriver, tc.want)
			}
			continue
		}
		if err == nil {
			t.Fatalf("%s: expected error", tc.target)
		}
	}
}

func TestResolveDefaultsKeepsExplicitDriver(t *testing.T) {
	cfg := Config{BuildTarget: "cloud", DocstoreDriver: "memory"}
	if err := cfg.ResolveDefaults(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DocstoreDriver != "memory" {
		t.Fatalf("explicit driver overridden: %s", cfg.DocstoreDriver)
	}

	cfg = Config{BuildTarget: "local", DocstoreDriver: "cassandra"}
	if err := cfg.ResolveDefaults(); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestNewForTesting(t *testing.T) {
	cfg := NewForTesting()
	if cfg.DocstoreDriver != "memory" || !cfg.DevMode {
		t.Fatalf("unexpected testing config: %+v", cfg)
	}
	if cfg.GetHTTPAddr() != ":8080" {
		t.Fatalf("addr: %s", cfg.GetHTTPAddr())
	}
}
