package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MicroServices-SocialApp/Post-API/engine/post"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var postRowColumns = []string{"id", "text", "user_id", "timestamp"}

func newMockRepo(t *testing.T) (*PostRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)
	return NewPostRepo(mockPool), mockPool
}

func TestPostRepo_Create(t *testing.T) {
	t.Run("Should insert and return the stored row", func(t *testing.T) {
		repo, mockPool := newMockRepo(t)
		now := time.Now().UTC()
		mockPool.ExpectQuery(`INSERT INTO post \(text,user_id\) VALUES \(\$1,\$2\) RETURNING`).
			WithArgs("hello", int64(7)).
			WillReturnRows(mockPool.NewRows(postRowColumns).AddRow(int64(1), "hello", int64(7), now))

		got, err := repo.Create(context.Background(), "hello", 7)

		require.NoError(t, err)
		assert.Equal(t, &post.Post{ID: 1, Text: "hello", UserID: 7, Timestamp: now}, got)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should map unique violations to conflict", func(t *testing.T) {
		repo, mockPool := newMockRepo(t)
		mockPool.ExpectQuery("INSERT INTO post").
			WithArgs("dup", int64(7)).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "post_text_key"})

		_, err := repo.Create(context.Background(), "dup", 7)

		assert.ErrorIs(t, err, post.ErrConflict)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPostRepo_Get(t *testing.T) {
	t.Run("Should map no rows to not found", func(t *testing.T) {
		repo, mockPool := newMockRepo(t)
		mockPool.ExpectQuery(`SELECT (.+) FROM post WHERE id = \$1`).
			WithArgs(int64(5)).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.Get(context.Background(), 5)

		assert.ErrorIs(t, err, post.ErrNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPostRepo_ListPage(t *testing.T) {
	t.Run("Should fetch limit plus one rows and trim", func(t *testing.T) {
		repo, mockPool := newMockRepo(t)
		now := time.Now().UTC()
		rows := mockPool.NewRows(postRowColumns).
			AddRow(int64(3), "c", int64(7), now).
			AddRow(int64(2), "b", int64(7), now).
			AddRow(int64(1), "a", int64(7), now)
		mockPool.ExpectQuery(`SELECT (.+) FROM post ORDER BY id DESC LIMIT 3`).
			WillReturnRows(rows)

		page, err := repo.ListPage(context.Background(), post.PageQuery{Limit: 2})

		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		assert.True(t, page.HasMore)
		require.NotNil(t, page.NextCursor)
		assert.Equal(t, int64(2), *page.NextCursor)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should filter below the cursor", func(t *testing.T) {
		repo, mockPool := newMockRepo(t)
		lastID := int64(2)
		rows := mockPool.NewRows(postRowColumns).AddRow(int64(1), "a", int64(7), time.Now())
		mockPool.ExpectQuery(`SELECT (.+) FROM post WHERE id < \$1 ORDER BY id DESC LIMIT 3`).
			WithArgs(lastID).
			WillReturnRows(rows)

		page, err := repo.ListPage(context.Background(), post.PageQuery{Limit: 2, LastID: &lastID})

		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.False(t, page.HasMore)
		assert.Nil(t, page.NextCursor)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should reject invalid limits without querying", func(t *testing.T) {
		repo, mockPool := newMockRepo(t)

		_, err := repo.ListPage(context.Background(), post.PageQuery{Limit: 0})

		assert.ErrorIs(t, err, post.ErrInvalidLimit)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPostRepo_Update(t *testing.T) {
	t.Run("Should scope the update by id and owner", func(t *testing.T) {
		repo, mockPool := newMockRepo(t)
		now := time.Now().UTC()
		mockPool.ExpectQuery(`UPDATE post SET text = \$1 WHERE id = \$2 AND user_id = \$3 RETURNING`).
			WithArgs("x", int64(1), int64(7)).
			WillReturnRows(mockPool.NewRows(postRowColumns).AddRow(int64(1), "x", int64(7), now))

		got, err := repo.Update(context.Background(), 1, 7, "x")

		require.NoError(t, err)
		assert.Equal(t, "x", got.Text)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should return not found when the owner does not match", func(t *testing.T) {
		repo, mockPool := newMockRepo(t)
		mockPool.ExpectQuery(`UPDATE post SET text = \$1 WHERE id = \$2 AND user_id = \$3`).
			WithArgs("x", int64(1), int64(8)).
			WillReturnRows(mockPool.NewRows(postRowColumns))

		_, err := repo.Update(context.Background(), 1, 8, "x")

		assert.ErrorIs(t, err, post.ErrNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPostRepo_Patch(t *testing.T) {
	t.Run("Should reject an empty field set without querying", func(t *testing.T) {
		repo, mockPool := newMockRepo(t)

		_, err := repo.Patch(context.Background(), 1, 7, post.Fields{})

		assert.ErrorIs(t, err, post.ErrEmptyPatch)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPostRepo_Delete(t *testing.T) {
	t.Run("Should succeed when no row matched", func(t *testing.T) {
		repo, mockPool := newMockRepo(t)
		mockPool.ExpectExec(`DELETE FROM post WHERE id = \$1 AND user_id = \$2`).
			WithArgs(int64(1), int64(8)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := repo.Delete(context.Background(), 1, 8)

		assert.NoError(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should flag timeouts as unavailable", func(t *testing.T) {
		repo, mockPool := newMockRepo(t)
		mockPool.ExpectExec("DELETE FROM post").
			WithArgs(int64(1), int64(7)).
			WillReturnError(context.DeadlineExceeded)

		err := repo.Delete(context.Background(), 1, 7)

		assert.ErrorIs(t, err, post.ErrUnavailable)
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	})
}

func TestDSN(t *testing.T) {
	t.Run("Should prefer the explicit connection string", func(t *testing.T) {
		cfg := &Config{ConnString: "postgres://a@b/c", Host: "ignored"}

		assert.Equal(t, "postgres://a@b/c", cfg.DSN())
	})

	t.Run("Should escape credentials when synthesizing", func(t *testing.T) {
		cfg := &Config{Host: "db", Port: "5432", User: "app", Password: "p@ss/word", DBName: "posts", SSLMode: "disable"}

		assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/posts?sslmode=disable", cfg.DSN())
	})
}

func TestDeriveConnectionBounds(t *testing.T) {
	t.Run("Should cap min conns at max conns", func(t *testing.T) {
		maxConns, minConns := deriveConnectionBounds(&Config{MaxOpenConns: 4, MinConns: 10})

		assert.Equal(t, int32(4), maxConns)
		assert.Equal(t, int32(4), minConns)
	})

	t.Run("Should fall back to defaults", func(t *testing.T) {
		maxConns, minConns := deriveConnectionBounds(&Config{})

		assert.Equal(t, int32(defaultMaxConns), maxConns)
		assert.Equal(t, int32(defaultMinConns), minConns)
	})
}
