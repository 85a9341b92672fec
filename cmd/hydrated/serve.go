package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kbukum/hydrokit/auth"
	"github.com/kbukum/hydrokit/catalog"
	"github.com/kbukum/hydrokit/config"
	"github.com/kbukum/hydrokit/logger"
	"github.com/kbukum/hydrokit/observability"
	"github.com/kbukum/hydrokit/server"
	"github.com/kbukum/hydrokit/server/middleware"
	"github.com/kbukum/hydrokit/version"
)

var treeDirs []string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the tree catalog and serve the hydration API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringSliceVar(&treeDirs, "trees", nil, "directories to load tree definitions from (overrides config)")
}

// serveConfig is the full configuration of the hydrated service.
type serveConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config       `yaml:"server" mapstructure:"server"`
	Auth          auth.Config         `yaml:"auth" mapstructure:"auth"`
	Catalog       catalogConfig       `yaml:"catalog" mapstructure:"catalog"`
	Observability observabilityConfig `yaml:"observability" mapstructure:"observability"`
}

type catalogConfig struct {
	// Dirs are searched for *.yml / *.yaml tree definitions.
	Dirs []string `yaml:"dirs" mapstructure:"dirs"`
}

type observabilityConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure bool   `yaml:"insecure" mapstructure:"insecure"`
}

func (c *serveConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	if c.Name == "" {
		c.Name = "hydrated"
	}
	c.Server.ApplyDefaults()
	c.Auth.ApplyDefaults()
	if len(c.Catalog.Dirs) == 0 {
		c.Catalog.Dirs = []string{"./trees"}
	}
	if c.Observability.Endpoint == "" {
		c.Observability.Endpoint = "localhost:4318"
		c.Observability.Insecure = true
	}
}

func (c *serveConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	var cfg serveConfig
	var opts []config.LoaderOption
	if cfgFile != "" {
		opts = append(opts, config.WithConfigFile(cfgFile))
	}
	if err := config.LoadConfig("hydrated", &cfg, opts...); err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if len(treeDirs) > 0 {
		cfg.Catalog.Dirs = treeDirs
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.New(cfg.Logging, cfg.Name)
	logger.SetGlobalLogger(log)
	log.Info("Starting hydrated", map[string]interface{}{
		"version":     version.GetShortVersion(),
		"environment": cfg.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *observability.Metrics
	if cfg.Observability.Enabled {
		serviceVersion := version.GetVersionInfo().Version

		tracerCfg := observability.DefaultTracerConfig(cfg.Name)
		tracerCfg.ServiceVersion = serviceVersion
		tracerCfg.Environment = cfg.Environment
		tracerCfg.Endpoint = cfg.Observability.Endpoint
		tracerCfg.Insecure = cfg.Observability.Insecure
		tp, err := observability.InitTracer(ctx, tracerCfg)
		if err != nil {
			return fmt.Errorf("initializing tracer: %w", err)
		}
		defer shutdownProvider(log, "tracer", tp.Shutdown)

		meterCfg := observability.DefaultMeterConfig(cfg.Name)
		meterCfg.ServiceVersion = serviceVersion
		meterCfg.Environment = cfg.Environment
		meterCfg.Endpoint = cfg.Observability.Endpoint
		meterCfg.Insecure = cfg.Observability.Insecure
		mp, err := observability.InitMeter(ctx, meterCfg)
		if err != nil {
			return fmt.Errorf("initializing meter: %w", err)
		}
		defer shutdownProvider(log, "meter", mp.Shutdown)

		metrics, err = observability.NewMetrics(observability.Meter(cfg.Name))
		if err != nil {
			return fmt.Errorf("creating metric instruments: %w", err)
		}
	}

	registry := catalog.NewRegistry()
	cat := catalog.New(registry).WithLogger(log)
	if metrics != nil {
		cat.WithMetrics(metrics)
	}

	defs, err := catalog.NewFileLoader(cfg.Catalog.Dirs...).LoadAll()
	if err != nil {
		return fmt.Errorf("loading tree definitions: %w", err)
	}
	for _, def := range defs {
		if err := cat.Add(def); err != nil {
			return fmt.Errorf("adding tree %q: %w", def.Name, err)
		}
	}
	log.Info("Catalog loaded", map[string]interface{}{
		"trees": cat.Trees(),
		"dirs":  cfg.Catalog.Dirs,
	})

	srv := server.New(cfg.Server, log)
	srv.ApplyDefaults(cfg.Name, map[string]observability.HealthChecker{
		"catalog": cat,
	})

	api := server.NewHydrationAPI(cat, log)
	if metrics != nil {
		api.WithMetrics(metrics)
	}

	var authMW []gin.HandlerFunc
	if cfg.Auth.Enabled {
		var authCfg middleware.AuthConfig
		if cfg.Auth.JWT.Secret != "" {
			svc, err := auth.NewService(cfg.Auth.JWT)
			if err != nil {
				return fmt.Errorf("configuring token validation: %w", err)
			}
			authCfg.Validator = svc
		}
		if len(cfg.Auth.APIKeys) > 0 {
			authCfg.APIKeys = auth.NewAPIKeyVerifier(cfg.Auth.APIKeys)
		}
		authMW = append(authMW, middleware.Auth(authCfg))
		log.Info("Authentication enabled", map[string]interface{}{
			"scheme": cfg.Auth.Describe(),
		})
	}
	api.Register(srv.GinEngine(), authMW...)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(gCtx); err != nil {
			return err
		}
		<-gCtx.Done()
		return srv.Stop(context.Background())
	})

	log.Info("hydrated ready", map[string]interface{}{
		"addr": srv.Addr(),
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Shutdown complete")
	return nil
}

// shutdownProvider flushes a telemetry provider with a bounded deadline.
func shutdownProvider(log *logger.Logger, name string, shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Warn("Telemetry shutdown error", map[string]interface{}{
			"provider": name,
			"error":    err.Error(),
		})
	}
}
