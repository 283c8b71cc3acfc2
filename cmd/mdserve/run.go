package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"

	mdserve "github.com/alnah/go-mdserve"
	"github.com/alnah/go-mdserve/internal/assets"
	"github.com/alnah/go-mdserve/internal/config"
	"github.com/alnah/go-mdserve/internal/fileutil"
	"github.com/alnah/go-mdserve/internal/hints"
	"github.com/alnah/go-mdserve/internal/logging"
	"github.com/alnah/go-mdserve/internal/pipeline"
)

// Sentinel errors for startup.
var (
	ErrListen       = errors.New("failed to listen")
	ErrDocumentRoot = errors.New("invalid document root")
)

// run loads configuration, wires the server and serves until ctx is done.
func run(ctx context.Context, flags *serveFlags, positional []string, env *Environment) error {
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected at most one directory, got %d", ErrTooManyArgs, len(positional))
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, positional, cfg)
	if err := cfg.Validate(); err != nil {
		if !isKnownEngine(cfg.Render.Engine) {
			return fmt.Errorf("%w%s", err, hints.ForEngine())
		}
		return err
	}

	provider, err := logging.NewProvider(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalidValue, err)
	}
	logger := provider.Named("mdserve")

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))

	root, err := fileutil.ValidateRoot(cfg.Documents.Root)
	if err != nil {
		return fmt.Errorf("%w: %v%s", ErrDocumentRoot, err, hints.ForDocumentRoot())
	}

	renderer, err := buildRenderer(cfg)
	if err != nil {
		return err
	}

	router := mdserve.NewRouter(root,
		mdserve.WithIndex(cfg.Documents.Index),
		mdserve.WithRenderer(renderer),
		mdserve.WithFrontMatter(cfg.Documents.FrontMatter),
		mdserve.WithRouterLogger(provider.Named("router")),
	)

	ln, err := env.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("%w on %s: %v%s", ErrListen, cfg.Server.Addr, err, hints.ForListen(cfg.Server.Addr, err))
	}

	poolSize := mdserve.ResolvePoolSize(cfg.Server.Workers)
	pool := mdserve.NewWorkerPool(poolSize, mdserve.WithPoolLogger(provider.Named("pool")))

	srv := mdserve.NewServer(router, pool,
		mdserve.WithReadBufferSize(cfg.Server.ReadBufferSize),
		mdserve.WithTimeouts(cfg.Server.ReadTimeoutDuration(), cfg.Server.WriteTimeoutDuration()),
		mdserve.WithMaxConnections(cfg.Server.MaxConnections),
		mdserve.WithServerLogger(provider.Named("server")),
	)

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Serving %s on http://%s\n", root, ln.Addr())
	}
	if env.Ready != nil {
		env.Ready(ln.Addr())
	}

	if err := srv.Serve(ctx, ln); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// loadConfig resolves the config file from the flag, then MDSERVE_CONFIG.
// With neither set, defaults are used.
func loadConfig(flagValue, envValue string) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = envValue
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		var notFound *config.NotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(notFound.Tried))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags applies explicitly set CLI flags over cfg.
func mergeFlags(flags *serveFlags, positional []string, cfg *config.Config) {
	if len(positional) == 1 {
		cfg.Documents.Root = positional[0]
	}

	if flags.server.addr != "" {
		cfg.Server.Addr = flags.server.addr
	}
	if flags.server.workers != workersUnset {
		cfg.Server.Workers = flags.server.workers
	}
	if flags.server.maxConnections != 0 {
		cfg.Server.MaxConnections = flags.server.maxConnections
	}

	if flags.document.index != "" {
		cfg.Documents.Index = flags.document.index
	}
	if flags.document.noFrontMatter {
		cfg.Documents.FrontMatter = false
	}

	if flags.render.engine != "" {
		cfg.Render.Engine = flags.render.engine
	}
	if flags.render.style != "" {
		cfg.Render.Style = flags.render.style
	}
	if flags.render.noStyle {
		cfg.Render.Style = ""
	}
	if flags.render.title != "" {
		cfg.Render.Title = flags.render.title
	}
	if flags.render.assetPath != "" {
		cfg.Assets.BasePath = flags.render.assetPath
	}

	// --quiet and --verbose win over --log-level.
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	switch {
	case flags.common.quiet:
		cfg.Log.Level = "error"
	case flags.common.verbose:
		cfg.Log.Level = "debug"
	}
}

// isKnownEngine reports whether name selects a render engine.
func isKnownEngine(name string) bool {
	switch strings.ToLower(name) {
	case config.EngineMinimal, config.EngineGoldmark:
		return true
	}
	return false
}

// buildRenderer assembles the page renderer from the render settings.
func buildRenderer(cfg *config.Config) (*pipeline.Renderer, error) {
	css, err := loadStylesheet(cfg)
	if err != nil {
		return nil, err
	}

	var engine pipeline.Engine = pipeline.MinimalEngine{}
	if strings.EqualFold(cfg.Render.Engine, config.EngineGoldmark) {
		engine = pipeline.NewGoldmarkEngine(cfg.Render.HighlightStyle)
		highlight, err := pipeline.HighlightCSS(cfg.Render.HighlightStyle)
		if err != nil {
			return nil, err
		}
		css += highlight
	}

	return pipeline.NewRenderer(
		pipeline.WithEngine(engine),
		pipeline.WithTitle(cfg.Render.Title),
		pipeline.WithStylesheet(css),
	), nil
}

// loadStylesheet returns the configured page CSS. An empty style name means
// no stylesheet.
func loadStylesheet(cfg *config.Config) (string, error) {
	if cfg.Render.Style == "" {
		return "", nil
	}

	resolver, err := assets.NewResolver(cfg.Assets.BasePath)
	if err != nil {
		return "", err
	}
	css, err := resolver.LoadStyle(cfg.Render.Style)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return "", fmt.Errorf("%w%s", err, hints.ForStyleNotFound(assets.StyleNames()))
		}
		return "", err
	}
	return css, nil
}
