package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/yndnr/pak-go/internal/core/service"
	"github.com/yndnr/pak-go/internal/infra/buildinfo"
	"github.com/yndnr/pak-go/internal/infra/confloader"
	"github.com/yndnr/pak-go/internal/infra/shutdown"
	"github.com/yndnr/pak-go/internal/server/config"
	"github.com/yndnr/pak-go/internal/server/httpserver"
	"github.com/yndnr/pak-go/internal/telemetry/logger"
	"github.com/yndnr/pak-go/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file (YAML or TOML)")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("pak-server " + buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	log.Info("starting pak-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Get().Commit,
		"config", *configFile)
	log.Debug("effective configuration", "config", config.Sanitize(cfg))

	metrics := metric.NewRegistry()
	keys, err := service.NewKeyService(cfg.Key.Settings(),
		service.WithLogger(log.With("component", "key")),
		service.WithMetrics(metrics),
	)
	if err != nil {
		return fmt.Errorf("init key service: %w", err)
	}
	if err := metrics.Register(metric.NewCollector(generatorInfo(keys))); err != nil {
		return fmt.Errorf("register collector: %w", err)
	}

	var stopping atomic.Bool
	routerCfg := &httpserver.RouterConfig{
		KeyService: keys,
		Logger:     log,
		Observer:   metrics,
		Ready: func() error {
			if stopping.Load() {
				return errors.New("shutting down")
			}
			return nil
		},
	}
	if cfg.Metrics.Enabled {
		routerCfg.MetricsHandler = metrics.Handler()
		routerCfg.MetricsToken = cfg.Metrics.Token
	}
	if cfg.Server.RateLimit.Enabled {
		routerCfg.RateLimit = cfg.Server.RateLimit.RequestsPerSecond
		routerCfg.RateBurst = cfg.Server.RateLimit.Burst
	}
	// Verify has already rejected malformed entries.
	routerCfg.TrustedProxies, _ = cfg.Server.RateLimit.ProxyPrefixes()

	httpServer := httpserver.New(cfg.Server.HTTP, httpserver.NewRouter(routerCfg))
	shutdownHandler := shutdown.NewHandler(cfg.Server.HTTP.ShutdownTimeout)

	// Hooks run in reverse order: readiness flips before the listener closes.
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})
	shutdownHandler.OnShutdown(func(context.Context) error {
		stopping.Store(true)
		return nil
	})

	if *configFile != "" {
		watcher, err := watchLogLevel(*configFile, log)
		if err != nil {
			log.Warn("config watch disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown(func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", httpServer.Addr(), "tls", httpServer.TLS())
		if err := httpServer.ListenAndServe(); err != nil {
			log.Error("HTTP server error", "error", err)
			serveErr <- err
			shutdownHandler.Trigger()
		}
	}()

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	default:
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads defaults, the optional file and PAK_* environment
// variables, then validates the result.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}
	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// watchLogLevel reloads the config file on change and applies its log
// level. Other settings need a restart.
func watchLogLevel(path string, log logger.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(path); err != nil {
		watcher.Stop()
		return nil, err
	}

	watcher.OnChange(func(string) {
		cfg, err := loadConfig(path)
		if err != nil {
			log.Warn("ignoring config change", "error", err)
			return
		}
		if cfg.Log.Level != logger.GetLevel() {
			logger.SetLevel(cfg.Log.Level)
			log.Info("log level changed", "level", cfg.Log.Level)
		}
	})
	watcher.StartAsync()
	return watcher, nil
}

func generatorInfo(keys *service.KeyService) func() metric.GeneratorInfo {
	s := keys.Settings()
	return func() metric.GeneratorInfo {
		return metric.GeneratorInfo{
			Prefix:           s.Prefix,
			Digest:           s.Digest,
			RandomSource:     s.RandomSource,
			ShortTokenLength: s.ShortTokenLength,
			LongTokenLength:  s.LongTokenLength,
		}
	}
}
