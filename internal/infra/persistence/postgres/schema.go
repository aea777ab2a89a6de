package postgres

import (
	"context"
	_ "embed"
	"log/slog"
	"sync/atomic"

	"todo/internal/domain/lifecycle"
	domainerrors "todo/internal/domain/errors"
	"todo/internal/errors"
	"todo/internal/infra/persistence/model"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

// SchemaDDL creates the tables in requiredTables. The service never migrates, operators apply it.
//
//go:embed schema.sql
var SchemaDDL string

// requiredTables lists the tables the service cannot run without.
var requiredTables = []string{
	model.UserModel{}.TableName(),
	model.TaskModel{}.TableName(),
}

// Schema tracks whether the externally provisioned tables exist.
type Schema struct {
	logger      *slog.Logger
	hasTable    func(ctx context.Context, table string) bool
	provisioned atomic.Bool
}

// SchemaParams defines the dependencies of the startup schema check.
type SchemaParams struct {
	fx.In
	fx.Lifecycle

	DB     *gorm.DB
	Logger *slog.Logger
}

// NewSchema registers a startup check. A missing table is logged and does not stop the process.
func NewSchema(params SchemaParams) *Schema {
	schema := newSchema(params.Logger, func(ctx context.Context, table string) bool {
		return params.DB.WithContext(ctx).Migrator().HasTable(table)
	})

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := schema.Check(ctx); err != nil {
				params.Logger.WarnContext(ctx, "Database schema is not provisioned, requests will fail until migrations are applied",
					slog.Any("error", err),
				)
				params.Logger.DebugContext(ctx, "Reference schema", slog.String("ddl", SchemaDDL))
			}

			return nil
		},
	})

	return schema
}

func newSchema(logger *slog.Logger, hasTable func(ctx context.Context, table string) bool) *Schema {
	return &Schema{logger: logger, hasTable: hasTable}
}

// Check looks up every required table and records the result.
func (s *Schema) Check(ctx context.Context) error {
	for _, table := range requiredTables {
		if !s.hasTable(ctx, table) {
			s.provisioned.Store(false)

			return errors.Wrapf(domainerrors.ErrDatabaseUnavailable, "table %q is missing", table)
		}
	}

	s.provisioned.Store(true)

	return nil
}

// Ready returns nil once the schema has been seen. Until then every call re-checks.
func (s *Schema) Ready(ctx context.Context) error {
	if s.provisioned.Load() {
		return nil
	}

	return s.Check(ctx)
}
