package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/bhandras/rfext/internal/api"
	"github.com/bhandras/rfext/internal/command"
	"github.com/bhandras/rfext/internal/config"
	"github.com/bhandras/rfext/internal/crypto"
	"github.com/bhandras/rfext/internal/database"
	"github.com/bhandras/rfext/internal/hostapi"
	"github.com/bhandras/rfext/internal/logger"
	"github.com/bhandras/rfext/internal/manifest"
	"github.com/bhandras/rfext/internal/maps"
	"github.com/bhandras/rfext/internal/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
)

const (
	viewLinkTTL     = 15 * time.Minute
	readHeaderLimit = 5 * time.Second
	shutdownLimit   = 5 * time.Second
)

func main() {
	addr := pflag.String("addr", "", "listen address (overrides RFEXT_ADDR)")
	dbPath := pflag.String("db", "", "sqlite database path (overrides RFEXT_DATABASE_PATH)")
	debug := pflag.Bool("debug", false, "enable debug logging and gin debug mode")
	pflag.Parse()

	overrides := config.Overrides{}
	if pflag.CommandLine.Changed("addr") {
		overrides.Addr = addr
	}
	if pflag.CommandLine.Changed("db") {
		overrides.DatabasePath = dbPath
	}
	if pflag.CommandLine.Changed("debug") {
		overrides.Debug = debug
	}

	// Load configuration
	cfg, err := config.Load(overrides, config.Options{RequireSecret: true})
	if err != nil {
		logger.Errorf("Failed to load config: %v", err)
		os.Exit(1)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("%v; using info", err)
	}
	if cfg.Debug {
		level = logger.LevelDebug
	}
	logger.SetLevel(level)

	// Set Gin mode
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Name, cfg.OTelEndpoint)
	if err != nil {
		logger.Warnf("Tracing disabled: %v", err)
	}
	defer shutdownTracing(context.Background())

	// Open database
	logger.Infof("Opening database: %s", cfg.DatabasePath)
	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		logger.Errorf("Failed to open database: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	sealer, err := crypto.NewSealer(cfg.MasterSecret, "rfext service tokens")
	if err != nil {
		logger.Errorf("Failed to create token sealer: %v", err)
		os.Exit(1)
	}
	views, err := crypto.NewViewTokens(cfg.MasterSecret, viewLinkTTL)
	if err != nil {
		logger.Errorf("Failed to create view link signer: %v", err)
		os.Exit(1)
	}

	registry, err := command.NewBuiltinRegistry()
	if err != nil {
		logger.Errorf("Failed to register commands: %v", err)
		os.Exit(1)
	}
	declared := manifest.Default(manifest.Identity{BaseURL: cfg.BaseURL})
	if err := registry.CheckDeclared(declared.ActionNames()); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	var styleSeq atomic.Uint64
	deps := command.NewDeps(
		command.DelegatedDialer(hostapi.DelegatedConfig{BaseURL: cfg.HostBaseURL, Timeout: cfg.HostTimeout}),
		views,
		cfg.BaseURL,
		func() uint64 { return styleSeq.Add(1) - 1 },
	)

	router := api.NewRouter(api.RouterDeps{
		Dispatcher:      command.NewDispatcher(registry, deps, command.DispatcherOptions{ExposeTraceback: cfg.ExposeTraceback}),
		Lifecycle:       maps.NewLifecycle(maps.NewSQLStore(db.DB, sealer)),
		Views:           views,
		ExtensionName:   cfg.Name,
		AllowedOrigins:  cfg.AllowedOrigins,
		ExposeTraceback: cfg.ExposeTraceback,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: readHeaderLimit,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownLimit)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warnf("Shutdown: %v", err)
		}
	}()

	logger.Infof("Extension %s listening on %s (host API %s)", cfg.Name, cfg.Addr, cfg.HostBaseURL)
	logger.Infof("Commands: %v", registry.Names())
	if cfg.ExposeTraceback {
		logger.Warnf("Handler fault tracebacks are included in 500 responses")
	}

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Errorf("Failed to start server: %v", err)
		os.Exit(1)
	}
	logger.Infof("Server stopped")
}
