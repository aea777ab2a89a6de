package postgres

import (
	"context"
	"io"
	"log/slog"
	"testing"

	domainerrors "todo/internal/domain/errors"
	"todo/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestSchema_CheckAndReady(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	present := map[string]bool{"users": true}
	calls := 0

	schema := newSchema(logger, func(_ context.Context, table string) bool {
		calls++

		return present[table]
	})

	err := schema.Check(context.Background())
	assert.True(t, errors.Is(err, domainerrors.ErrDatabaseUnavailable))
	assert.Contains(t, err.Error(), "tasks")

	err = schema.Ready(context.Background())
	assert.True(t, errors.Is(err, domainerrors.ErrDatabaseUnavailable))

	present["tasks"] = true
	assert.NoError(t, schema.Ready(context.Background()))

	before := calls
	assert.NoError(t, schema.Ready(context.Background()))
	assert.Equal(t, before, calls, "a provisioned schema is not re-checked")
}

func TestSchemaDDL_CoversModels(t *testing.T) {
	for _, table := range requiredTables {
		assert.Contains(t, SchemaDDL, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}

	for _, column := range []string{"email", "password", "title", "description", "status", "created_at", "user_id"} {
		assert.Contains(t, SchemaDDL, "    "+column+" ")
	}

	assert.Contains(t, SchemaDDL, "user_id     uuid          REFERENCES users (id) ON DELETE CASCADE")
	assert.Contains(t, SchemaDDL, "CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (email)")
}
