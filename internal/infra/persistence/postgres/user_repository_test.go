package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"todo/internal/domain/entity"
	domainerrors "todo/internal/domain/errors"
	"todo/internal/domain/repository"
	"todo/internal/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserRepository(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := newMockDB(t)
	repo := NewUserRepository(db).(*userRepository)
	repo.now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }

	return repo, mock
}

func TestUserRepository_FindByEmail(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)

	t.Run("found", func(t *testing.T) {
		repo, mock := newTestUserRepository(t)
		userID := uuid.New()

		mock.ExpectQuery(query).
			WithArgs("ann@example.com", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "created_at"}).
				AddRow(userID.String(), "ann@example.com", "$2a$10$hash", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))

		user, err := repo.FindByEmail(context.Background(), "ann@example.com")
		require.NoError(t, err)

		assert.Equal(t, userID, user.ID)
		assert.Equal(t, "$2a$10$hash", user.PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestUserRepository(t)

		mock.ExpectQuery(query).
			WithArgs("ghost@example.com", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "created_at"}))

		_, err := repo.FindByEmail(context.Background(), "ghost@example.com")
		assert.True(t, errors.Is(err, repository.ErrUserNotFound))
	})

	t.Run("missing database", func(t *testing.T) {
		repo, mock := newTestUserRepository(t)

		mock.ExpectQuery(query).WillReturnError(&pgconn.PgError{Code: "3D000"})

		_, err := repo.FindByEmail(context.Background(), "ann@example.com")
		assert.True(t, errors.Is(err, domainerrors.ErrDatabaseUnavailable))
	})
}

func TestUserRepository_Create(t *testing.T) {
	query := regexp.QuoteMeta(`INSERT INTO "users" ("id","email","password","created_at")`)

	t.Run("assigns id and creation time", func(t *testing.T) {
		repo, mock := newTestUserRepository(t)

		mock.ExpectExec(query).
			WithArgs(sqlmock.AnyArg(), "ann@example.com", "hash", time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		user := &entity.User{Email: "ann@example.com", PasswordHash: "hash"}
		require.NoError(t, repo.Create(context.Background(), user))

		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC), user.CreatedAt)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo, mock := newTestUserRepository(t)

		mock.ExpectExec(query).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"})

		err := repo.Create(context.Background(), &entity.User{Email: "ann@example.com", PasswordHash: "hash"})
		assert.True(t, errors.Is(err, repository.ErrUserEmailTaken))
	})

	t.Run("other failure", func(t *testing.T) {
		repo, mock := newTestUserRepository(t)

		mock.ExpectExec(query).WillReturnError(errors.New("disk full"))

		err := repo.Create(context.Background(), &entity.User{Email: "ann@example.com", PasswordHash: "hash"})
		assert.False(t, errors.Is(err, repository.ErrUserEmailTaken))

		var dbErr *domainerrors.DatabaseExecuteError
		assert.True(t, errors.As(err, &dbErr))
	})
}
