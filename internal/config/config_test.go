package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Addr != "127.0.0.1:7878" {
		t.Errorf("Server.Addr = %q, want 127.0.0.1:7878", cfg.Server.Addr)
	}
	if cfg.Server.Workers != 5 {
		t.Errorf("Server.Workers = %d, want 5", cfg.Server.Workers)
	}
	if cfg.Server.ReadBufferSize != 1024 {
		t.Errorf("Server.ReadBufferSize = %d, want 1024", cfg.Server.ReadBufferSize)
	}
	if cfg.Documents.Index != "index.md" {
		t.Errorf("Documents.Index = %q, want index.md", cfg.Documents.Index)
	}
	if cfg.Render.Engine != EngineMinimal {
		t.Errorf("Render.Engine = %q, want %q", cfg.Render.Engine, EngineMinimal)
	}
	if cfg.Assets.BasePath != "" {
		t.Errorf("Assets.BasePath = %q, want empty", cfg.Assets.BasePath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{"defaults", func(*Config) {}, false, ""},
		{"auto workers", func(c *Config) { c.Server.Workers = 0 }, false, ""},
		{"negative workers", func(c *Config) { c.Server.Workers = -1 }, true, "server.workers"},
		{"too many workers", func(c *Config) { c.Server.Workers = MaxWorkers + 1 }, true, "server.workers"},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, true, "server.addr"},
		{"negative max connections", func(c *Config) { c.Server.MaxConnections = -3 }, true, "server.maxConnections"},
		{"tiny read buffer", func(c *Config) { c.Server.ReadBufferSize = 8 }, true, "server.readBufferSize"},
		{"bad read timeout", func(c *Config) { c.Server.ReadTimeout = "soon" }, true, "server.readTimeout"},
		{"negative write timeout", func(c *Config) { c.Server.WriteTimeout = "-1s" }, true, "server.writeTimeout"},
		{"no timeouts", func(c *Config) { c.Server.ReadTimeout, c.Server.WriteTimeout = "", "" }, false, ""},
		{"empty root", func(c *Config) { c.Documents.Root = "" }, true, "documents.root"},
		{"index with path", func(c *Config) { c.Documents.Index = "../index.md" }, true, "documents.index"},
		{"index not markdown", func(c *Config) { c.Documents.Index = "index.html" }, true, "documents.index"},
		{"no index", func(c *Config) { c.Documents.Index = "" }, false, ""},
		{"goldmark engine", func(c *Config) { c.Render.Engine = "Goldmark" }, false, ""},
		{"unknown engine", func(c *Config) { c.Render.Engine = "pandoc" }, true, "render.engine"},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }, true, "log.level"},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, true, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr {
				if !errors.Is(err, ErrInvalidValue) {
					t.Fatalf("Validate() error = %v, want ErrInvalidValue", err)
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Validate() error = %q, want to contain %q", err, tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestParseTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   string
		want    time.Duration
		wantErr bool
	}{
		{"", 0, false},
		{"10s", 10 * time.Second, false},
		{"1m30s", 90 * time.Second, false},
		{"0", 0, false},
		{"ten", 0, true},
		{"-5s", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()

			got, err := ParseTimeout("x", tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeout(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTimeout(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestServerConfig_Durations(t *testing.T) {
	t.Parallel()

	s := ServerConfig{ReadTimeout: "2s", WriteTimeout: ""}
	if got := s.ReadTimeoutDuration(); got != 2*time.Second {
		t.Errorf("ReadTimeoutDuration() = %v, want 2s", got)
	}
	if got := s.WriteTimeoutDuration(); got != 0 {
		t.Errorf("WriteTimeoutDuration() = %v, want 0", got)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("partial file keeps defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := Parse([]byte("server:\n  workers: 8\nrender:\n  engine: goldmark\n"))
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		want := DefaultConfig()
		want.Server.Workers = 8
		want.Render.Engine = EngineGoldmark
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty file is defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := Parse([]byte("\n"))
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
			t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown key rejected", func(t *testing.T) {
		t.Parallel()

		_, err := Parse([]byte("server:\n  port: 80\n"))
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("Parse() error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		_, err := Parse([]byte("server: [unclosed\n"))
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("Parse() error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()

		_, err := Parse([]byte("log:\n  level: chatty\n"))
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("Parse() error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("oversized input", func(t *testing.T) {
		t.Parallel()

		_, err := Parse([]byte(strings.Repeat("#", MaxFileSize+1)))
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("Parse() error = %v, want ErrConfigParse", err)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("LoadConfig(\"\") error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "server.yaml")
		content := "documents:\n  root: /srv/docs\n  frontMatter: false\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Documents.Root != "/srv/docs" {
			t.Errorf("Documents.Root = %q, want /srv/docs", cfg.Documents.Root)
		}
		if cfg.Documents.FrontMatter {
			t.Error("Documents.FrontMatter = true, want false")
		}
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("name resolved in working directory", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		if err := os.WriteFile(filepath.Join(dir, "local.yml"), []byte("server:\n  addr: \":9000\"\n"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cfg, err := LoadConfig("local")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Server.Addr != ":9000" {
			t.Errorf("Server.Addr = %q, want :9000", cfg.Server.Addr)
		}
	})

	t.Run("name not found lists tried paths", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("HOME", t.TempDir())

		_, err := LoadConfig("absent")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("LoadConfig() error type = %T, want *NotFoundError", err)
		}
		if len(nf.Tried) < 2 || nf.Tried[0] != "absent.yaml" || nf.Tried[1] != "absent.yml" {
			t.Errorf("Tried = %v, want local .yaml and .yml first", nf.Tried)
		}
	})
}
