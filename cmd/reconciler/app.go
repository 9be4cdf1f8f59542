package main

import (
	"database/sql"
	stderrors "errors"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	_ "modernc.org/sqlite"

	"github.com/vango-dev/reconciler/internal/config"
	"github.com/vango-dev/reconciler/internal/errors"
	"github.com/vango-dev/reconciler/pkg/fiber"
	"github.com/vango-dev/reconciler/pkg/middleware"
	"github.com/vango-dev/reconciler/pkg/target"
)

// targetKinds lists the accepted target kinds.
var targetKinds = []string{
	config.TargetMemory,
	config.TargetSQLite,
	config.TargetSQL,
	config.TargetS3,
	config.TargetStream,
}

// app is a root wired to the target, logger and middleware described by a
// config.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	root     *fiber.Root
	target   fiber.Target
	stream   *target.Stream
	registry *prometheus.Registry
	db       *sql.DB
}

// loadConfig loads the config in dir and applies a target kind override.
func loadConfig(dir, kind string) (*config.Config, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	if kind != "" {
		cfg.Target.Kind = kind
		if kind == config.TargetSQLite {
			cfg.Target.SQL.Driver = "sqlite"
			if cfg.Target.SQL.DSN == "" {
				cfg.Target.SQL.DSN = ":memory:"
			}
			cfg.Target.SQL.Dialect = "sqlite"
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newApp builds the target and root for cfg. With withStream set, commits
// are also broadcast to a stream target even when the configured kind is
// not stream.
func newApp(cfg *config.Config, logOut io.Writer, withStream bool) (*app, error) {
	a := &app{
		cfg:    cfg,
		logger: cfg.Log.NewLogger(logOut),
	}

	t, err := a.buildTarget()
	if err != nil {
		return nil, err
	}
	if withStream && a.stream == nil {
		a.stream = target.NewStream(a.logger)
		t = target.Multi{t, a.stream}
	}
	a.target = t

	slow, err := cfg.SlowRender()
	if err != nil {
		a.closeDB()
		return nil, errors.New("R101").Wrap(err)
	}
	mw := []fiber.Middleware{middleware.Logger(a.logger, slow)}

	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		a.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		mw = append(mw, middleware.Prometheus(
			middleware.WithNamespace(cfg.Metrics.Namespace),
			middleware.WithRegistry(a.registry),
		))
	}
	if cfg.Tracing.Enabled {
		var opts []middleware.OTelOption
		if cfg.Tracing.TracerName != "" {
			opts = append(opts, middleware.WithTracerName(cfg.Tracing.TracerName))
		}
		mw = append(mw, middleware.OpenTelemetry(opts...))
	}

	opts := append(cfg.RootOptions(),
		fiber.WithLogger(a.logger),
		fiber.WithMiddleware(mw...),
	)
	a.root = fiber.NewRoot(t, opts...)

	if a.registry != nil {
		if err := middleware.RegisterRootStats(a.registry, cfg.Metrics.Namespace, a.root); err != nil {
			a.Close()
			return nil, errors.New("R400").Wrap(err)
		}
	}
	return a, nil
}

// buildTarget creates the configured render target.
func (a *app) buildTarget() (fiber.Target, error) {
	tc := a.cfg.Target
	switch tc.Kind {
	case config.TargetMemory:
		return target.NewMemory(tc.MaxLog), nil

	case config.TargetSQLite, config.TargetSQL:
		dialect, err := target.ParseDialect(tc.SQL.Dialect)
		if err != nil {
			return nil, errors.New("R102").Wrap(err)
		}
		db, err := sql.Open(tc.SQL.Driver, tc.SQL.DSN)
		if err != nil {
			return nil, errors.New("R300").Wrap(err).
				WithSuggestion("Only the sqlite driver is linked into this binary.")
		}
		if tc.SQL.DSN == ":memory:" {
			// Every connection to :memory: opens a separate database.
			db.SetMaxOpenConns(1)
		}
		a.db = db
		return target.NewSQL(db,
			target.WithSQLTableName(tc.SQL.Table),
			target.WithSQLDialect(dialect),
		), nil

	case config.TargetS3:
		client := target.NewS3Client(target.S3Config{
			Region:       tc.S3.Region,
			Endpoint:     tc.S3.Endpoint,
			UsePathStyle: tc.S3.UsePathStyle,
		})
		return target.NewS3(client, tc.S3.Bucket, tc.S3.Prefix), nil

	case config.TargetStream:
		a.stream = target.NewStream(a.logger)
		return a.stream, nil
	}
	return nil, errors.New("R102").WithDetail("unknown target kind " + tc.Kind)
}

// Close closes the root, its target and the database.
func (a *app) Close() error {
	err := a.root.Close()
	if a.stream != nil {
		// Stream.Close is idempotent.
		err = stderrors.Join(err, a.stream.Close())
	}
	return stderrors.Join(err, a.closeDB())
}

func (a *app) closeDB() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
