package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/davidblanc347/parodesign/pkg/errors"
	"github.com/davidblanc347/parodesign/pkg/layout"
)

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with no file: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Layout.Direction != layout.DirectionTopBottom {
		t.Errorf("Layout.Direction = %q", cfg.Layout.Direction)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("explicit missing file: code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parodesign.toml")
	doc := `
[assistant]
model = "gpt-4o"

[server]
addr = ":9090"

[cache]
backend = "redis"

[cache.redis]
addr = "redis:6379"

[layout]
direction = "LR"
node_spacing = 30.0
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Assistant.Model != "gpt-4o" {
		t.Errorf("Assistant.Model = %q", cfg.Assistant.Model)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.Redis.Addr != "redis:6379" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Layout.Direction != layout.DirectionLeftRight {
		t.Errorf("Layout.Direction = %q", cfg.Layout.Direction)
	}
	if cfg.Layout.NodeSpacing != 30.0 {
		t.Errorf("Layout.NodeSpacing = %v", cfg.Layout.NodeSpacing)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Layout.RankSpacing != layout.DefaultRankSpacing {
		t.Errorf("Layout.RankSpacing = %v, want default", cfg.Layout.RankSpacing)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("Store.Backend = %q, want memory", cfg.Store.Backend)
	}
}

func TestLoadRejectsBadBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"memcached\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("bad backend: code = %v", errors.GetCode(err))
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("not toml ==="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("malformed file: code = %v", errors.GetCode(err))
	}
}
