package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"todo/config"
	"todo/internal/domain/lifecycle"
	"todo/internal/errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	poolWatchInterval  = 5 * time.Second
	poolSlowWaitWarnAt = 50 * time.Millisecond
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config   *config.Config
	Logger   *slog.Logger
	Registry *prometheus.Registry
}

// New opens the task database and ties the pool to the fx lifecycle.
// The pool statistics are published on the metrics registry.
func New(params Params) (*gorm.DB, error) {
	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open task database")
	}
	// TransactionManager owns every transaction; single statements run without one.
	db = db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get task database pool")
	}

	if params.Registry != nil {
		if err := params.Registry.Register(collectors.NewDBStatsCollector(sqlDB, params.Config.Env.ServiceName)); err != nil {
			return nil, errors.Wrap(err, "failed to register database pool collector")
		}
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	watcher := &poolWatcher{logger: params.Logger, stats: sqlDB.Stats, interval: poolWatchInterval}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to reach task database")
			}

			go watcher.run(watchCtx)

			return nil
		},
		OnStop: func(_ context.Context) error {
			stopWatch()

			return errors.WithStack(sqlDB.Close())
		},
	})

	return db, nil
}

// poolWatcher logs when requests had to wait for a pooled connection.
type poolWatcher struct {
	logger   *slog.Logger
	stats    func() sql.DBStats
	interval time.Duration
}

func (w *poolWatcher) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	prev := w.stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := w.stats()
			w.report(ctx, prev, cur)
			prev = cur
		}
	}
}

func (w *poolWatcher) report(ctx context.Context, prev, cur sql.DBStats) {
	waits := cur.WaitCount - prev.WaitCount
	if waits <= 0 {
		return
	}
	waited := cur.WaitDuration - prev.WaitDuration

	level := slog.LevelDebug
	if waited >= poolSlowWaitWarnAt {
		level = slog.LevelWarn
	}

	w.logger.LogAttrs(ctx, level, "Task database pool wait",
		slog.Int64("waits", waits),
		slog.Duration("waited", waited),
		slog.Duration("avgWait", waited/time.Duration(waits)),
		slog.Int("inUse", cur.InUse),
		slog.Int("idle", cur.Idle),
		slog.Int("maxOpen", cur.MaxOpenConnections),
	)
}
