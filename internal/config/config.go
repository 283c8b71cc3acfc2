package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-mdserve/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDirName is the directory searched under the user config dir.
const AppDirName = "go-mdserve"

// MaxFileSize limits config input to prevent memory exhaustion (1MB).
const MaxFileSize = 1 << 20

// Limits on numeric settings.
const (
	MaxWorkers        = 1024
	MinReadBufferSize = 64
	MaxReadBufferSize = 64 << 10
)

// Render engine names.
const (
	EngineMinimal  = "minimal"
	EngineGoldmark = "goldmark"
)

// Config holds all configuration for the server.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Documents DocumentsConfig `yaml:"documents"`
	Render    RenderConfig    `yaml:"render"`
	Assets    AssetsConfig    `yaml:"assets"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig defines listener and connection handling options.
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	Workers        int    `yaml:"workers"`        // 0 = auto
	MaxConnections int    `yaml:"maxConnections"` // 0 = unlimited
	ReadBufferSize int    `yaml:"readBufferSize"`
	ReadTimeout    string `yaml:"readTimeout"`  // Go duration, empty = none
	WriteTimeout   string `yaml:"writeTimeout"` // Go duration, empty = none
}

// DocumentsConfig defines where documents are served from.
type DocumentsConfig struct {
	Root        string `yaml:"root"`
	Index       string `yaml:"index"`
	FrontMatter bool   `yaml:"frontMatter"`
}

// RenderConfig defines how markdown becomes a page.
type RenderConfig struct {
	Engine         string `yaml:"engine"` // "minimal" or "goldmark"
	Style          string `yaml:"style"`  // Name of style (empty = no CSS)
	HighlightStyle string `yaml:"highlightStyle"`
	Title          string `yaml:"title"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// LogConfig defines logger output.
type LogConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error
	Format string `yaml:"format"` // console, json, pretty
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           "127.0.0.1:7878",
			Workers:        5,
			ReadBufferSize: 1024,
			ReadTimeout:    "10s",
			WriteTimeout:   "10s",
		},
		Documents: DocumentsConfig{
			Root:        ".",
			Index:       "index.md",
			FrontMatter: true,
		},
		Render: RenderConfig{
			Engine:         EngineMinimal,
			Style:          "default",
			HighlightStyle: "github",
			Title:          "Markdown Server",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks value ranges and enumerations.
// Called automatically by LoadConfig, but available for callers that
// build or override a Config in code.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr: required", ErrInvalidValue)
	}
	if c.Server.Workers < 0 || c.Server.Workers > MaxWorkers {
		return fmt.Errorf("%w: server.workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Server.Workers)
	}
	if c.Server.MaxConnections < 0 {
		return fmt.Errorf("%w: server.maxConnections: must not be negative, got %d", ErrInvalidValue, c.Server.MaxConnections)
	}
	if c.Server.ReadBufferSize < MinReadBufferSize || c.Server.ReadBufferSize > MaxReadBufferSize {
		return fmt.Errorf("%w: server.readBufferSize: must be between %d and %d, got %d",
			ErrInvalidValue, MinReadBufferSize, MaxReadBufferSize, c.Server.ReadBufferSize)
	}
	if _, err := ParseTimeout("server.readTimeout", c.Server.ReadTimeout); err != nil {
		return err
	}
	if _, err := ParseTimeout("server.writeTimeout", c.Server.WriteTimeout); err != nil {
		return err
	}

	if c.Documents.Root == "" {
		return fmt.Errorf("%w: documents.root: required", ErrInvalidValue)
	}
	if c.Documents.Index != "" && !fileutil.IsMarkdownName(c.Documents.Index) {
		return fmt.Errorf("%w: documents.index: must be a .md file name, got %q", ErrInvalidValue, c.Documents.Index)
	}

	switch strings.ToLower(c.Render.Engine) {
	case EngineMinimal, EngineGoldmark:
		// valid
	default:
		return fmt.Errorf("%w: render.engine: %q (must be minimal or goldmark)", ErrInvalidValue, c.Render.Engine)
	}

	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level: %q (must be trace, debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json", "pretty":
	default:
		return fmt.Errorf("%w: log.format: %q (must be console, json, or pretty)", ErrInvalidValue, c.Log.Format)
	}

	return nil
}

// ParseTimeout parses a duration setting. Empty means no timeout.
func ParseTimeout(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidValue, field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s: must not be negative, got %s", ErrInvalidValue, field, value)
	}
	return d, nil
}

// ReadTimeoutDuration returns the parsed per-connection read deadline.
func (s ServerConfig) ReadTimeoutDuration() time.Duration {
	d, _ := ParseTimeout("server.readTimeout", s.ReadTimeout)
	return d
}

// WriteTimeoutDuration returns the parsed per-connection write deadline.
func (s ServerConfig) WriteTimeoutDuration() time.Duration {
	d, _ := ParseTimeout("server.writeTimeout", s.WriteTimeout)
	return d
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig value; unknown keys
// are rejected. Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML config data over DefaultConfig and validates it.
func Parse(data []byte) (*Config, error) {
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("%w: input exceeds %d bytes", ErrConfigParse, MaxFileSize)
	}

	cfg := DefaultConfig()
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-mdserve/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Tried: triedPaths}
}

// NotFoundError lists the locations searched for a named config.
type NotFoundError struct {
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: tried %s", ErrConfigNotFound, strings.Join(e.Tried, ", "))
}

// Unwrap makes errors.Is(err, ErrConfigNotFound) hold.
func (e *NotFoundError) Unwrap() error { return ErrConfigNotFound }
