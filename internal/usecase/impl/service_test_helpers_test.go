package impl

import (
	"context"
	"io"
	"log/slog"

	"todo/config"
	"todo/internal/domain/repository"
	mockRepo "todo/internal/mocks/repository"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Tasks: &config.TasksConfig{
			DefaultPageSize: 100,
			MaxPageSize:     1000,
			Timezone:        "UTC",
		},
	}
}

// expectTransaction makes txManager run the callback against factory.
func expectTransaction(txManager *mockRepo.MockTransactionManager, factory repository.RepositoryFactory) {
	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}

