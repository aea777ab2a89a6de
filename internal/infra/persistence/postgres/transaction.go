// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"todo/config"
	"todo/internal/domain/repository"
	"todo/internal/errors"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

// TransactionManagerParams defines the dependencies of the transaction manager.
type TransactionManagerParams struct {
	fx.In

	DB     *gorm.DB
	Schema *Schema
	Config *config.Config
}

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db       *gorm.DB
	schema   *Schema
	timezone string
}

// gormRepositoryFactory builds repositories bound to a single transaction.
type gormRepositoryFactory struct {
	tx       *gorm.DB
	timezone string
}

// NewUserRepository creates a new user repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewUserRepository() repository.UserRepository {
	return NewUserRepository(f.tx)
}

// NewTaskRepository creates a new task repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewTaskRepository() repository.TaskRepository {
	return NewTaskRepository(f.tx, f.timezone)
}

// NewTransactionManager is the constructor for gormTransactionManager.
func NewTransactionManager(params TransactionManagerParams) repository.TransactionManager {
	tm := &gormTransactionManager{db: params.DB, schema: params.Schema}
	if params.Config != nil && params.Config.Tasks != nil {
		tm.timezone = params.Config.Tasks.Timezone
	}

	return tm
}

// Execute runs the given function within a single database transaction.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if tm.schema != nil {
		if err := tm.schema.Ready(ctx); err != nil {
			return err
		}
	}

	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return translateError(tx.Error, "failed to begin transaction")
	}

	// Roll back on panic and let the recover middleware handle it.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(&gormRepositoryFactory{tx: tx, timezone: tm.timezone}); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return errors.Wrapf(err, "transaction rollback failed: %v", rbErr)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return translateError(err, "failed to commit transaction")
	}

	return nil
}
