// Package fukinotou loads structured files (CSV, JSON, JSON-Lines, parquet,
// SQLite, text, images) into schema-validated, path-tagged results.
//
// The loaders live in package loader and work on their own. This package
// wires configuration, logging, metrics and tracing into them:
//
//	cfg := config.MustLoad("fukinotou.yaml")
//	rt, err := fukinotou.New(cfg)
//	if err != nil {
//	    return err
//	}
//	defer rt.Shutdown(ctx)
//
//	people, err := fukinotou.Load[Person](ctx, rt, "people.csv")
package fukinotou

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/BaSui01/fukinotou/config"
	"github.com/BaSui01/fukinotou/internal/database"
	"github.com/BaSui01/fukinotou/internal/logging"
	"github.com/BaSui01/fukinotou/internal/metrics"
	"github.com/BaSui01/fukinotou/internal/telemetry"
	"github.com/BaSui01/fukinotou/loader"
	"github.com/BaSui01/fukinotou/result"
	"github.com/BaSui01/fukinotou/schema"
)

// Runtime holds the ambient services loaders are built with.
type Runtime struct {
	cfg       *config.Config
	logger    *zap.Logger
	metrics   *metrics.Collector
	telemetry *telemetry.Providers
}

// New builds the logger, metrics collector and tracer provider described by
// cfg. A nil cfg means config.DefaultConfig(). Metrics register with the
// default Prometheus registry, so a namespace can only be enabled once per
// process.
func New(cfg *config.Config) (*Runtime, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	logger := logging.New(cfg.Log)

	tp, err := telemetry.Init(cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	rt := &Runtime{
		cfg:       cfg,
		logger:    logger,
		telemetry: tp,
	}
	if cfg.Metrics.Enabled {
		rt.metrics = metrics.NewCollector(cfg.Metrics.Namespace, logger)
	}
	return rt, nil
}

// Config returns the configuration the runtime was built from.
func (r *Runtime) Config() *config.Config {
	return r.cfg
}

// Logger returns the runtime logger.
func (r *Runtime) Logger() *zap.Logger {
	return r.logger
}

// Options returns loader options carrying the runtime's logger, metrics,
// tracer and loader settings, followed by extra.
func (r *Runtime) Options(extra ...loader.Option) []loader.Option {
	opts := []loader.Option{
		loader.WithLogger(r.logger),
		loader.WithTracerProvider(r.telemetry.TracerProvider()),
	}
	if r.metrics != nil {
		opts = append(opts, loader.WithMetrics(r.metrics))
	}
	opts = append(opts, loader.OptionsFromConfig(r.cfg.Loader)...)
	return append(opts, extra...)
}

// DirectoryOptions is Options plus the extension filter configured for kind.
func (r *Runtime) DirectoryOptions(kind loader.DirectoryKind, extra ...loader.Option) []loader.Option {
	opts := r.Options(loader.ExtensionsFromConfig(r.cfg.Loader, kind))
	return append(opts, extra...)
}

// OpenDatabase connects to the configured database. The caller closes it.
func (r *Runtime) OpenDatabase() (*database.Pool, error) {
	return database.Open(r.cfg.Database, r.logger)
}

// Shutdown flushes pending spans and the logger.
func (r *Runtime) Shutdown(ctx context.Context) error {
	var errs []error
	if err := r.telemetry.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	// Sync reports EINVAL for stdout on some platforms.
	_ = r.logger.Sync()
	return errors.Join(errs...)
}

// Load reads path (a file, or a directory of supported files) into a
// collection of T, choosing the loader by file extension. The schema is
// inferred from T.
func Load[T any](ctx context.Context, r *Runtime, path string) (*result.Collection[T], error) {
	s, err := schema.For[T]()
	if err != nil {
		return nil, err
	}
	return loader.NewRegistry[T](s, r.Options()...).Load(ctx, path)
}

// LoadJSONs reads every JSON file of dir as one T.
func LoadJSONs[T any](ctx context.Context, r *Runtime, dir string) (*result.Collection[T], error) {
	s, err := schema.For[T]()
	if err != nil {
		return nil, err
	}
	return loader.NewJSONsLoader[T](s, r.DirectoryOptions(loader.DirectoryJSON)...).Load(ctx, dir)
}

// LoadTexts reads every configured text file of dir.
func LoadTexts(ctx context.Context, r *Runtime, dir string) (*result.Collection[string], error) {
	return loader.NewTextFilesLoader(r.DirectoryOptions(loader.DirectoryText)...).Load(ctx, dir)
}

// LoadImages decodes every configured image file of dir.
func LoadImages(ctx context.Context, r *Runtime, dir string) (*result.Collection[loader.Image], error) {
	return loader.NewImageFilesLoader(r.DirectoryOptions(loader.DirectoryImage)...).Load(ctx, dir)
}
