package posttest

import (
	"context"
	"fmt"
	"testing"

	"github.com/MicroServices-SocialApp/Post-API/engine/post"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RepositoryFactory returns a repository backed by an empty post table.
type RepositoryFactory func(t *testing.T) post.Repository

// RunRepositorySuite exercises the behaviour every post.Repository must share.
func RunRepositorySuite(t *testing.T, newRepo RepositoryFactory) {
	t.Helper()

	t.Run("Should round trip a created post", func(t *testing.T) {
		repo := newRepo(t)
		ctx := t.Context()

		created, err := repo.Create(ctx, "hello", 7)
		require.NoError(t, err)
		got, err := repo.Get(ctx, created.ID)

		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "hello", got.Text)
		assert.Equal(t, int64(7), got.UserID)
		assert.False(t, got.Timestamp.IsZero())
	})

	t.Run("Should report missing posts as not found", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Get(t.Context(), 999)

		assert.ErrorIs(t, err, post.ErrNotFound)
	})

	t.Run("Should reject duplicate text", func(t *testing.T) {
		repo := newRepo(t)
		ctx := t.Context()
		_, err := repo.Create(ctx, "same", 7)
		require.NoError(t, err)

		_, err = repo.Create(ctx, "same", 8)

		assert.ErrorIs(t, err, post.ErrConflict)
	})

	t.Run("Should page three posts in two steps", func(t *testing.T) {
		repo := newRepo(t)
		ctx := t.Context()
		ids := createN(ctx, t, repo, 3, 7)

		first, err := repo.ListPage(ctx, post.PageQuery{Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, []int64{ids[2], ids[1]}, pageIDs(first))
		assert.True(t, first.HasMore)
		require.NotNil(t, first.NextCursor)
		assert.Equal(t, ids[1], *first.NextCursor)

		second, err := repo.ListPage(ctx, post.PageQuery{Limit: 2, LastID: first.NextCursor})
		require.NoError(t, err)
		assert.Equal(t, []int64{ids[0]}, pageIDs(second))
		assert.False(t, second.HasMore)
		assert.Nil(t, second.NextCursor)
	})

	t.Run("Should yield every post exactly once when following cursors", func(t *testing.T) {
		repo := newRepo(t)
		ctx := t.Context()
		ids := createN(ctx, t, repo, 11, 3)

		var seen []int64
		q := post.PageQuery{Limit: 4}
		for range 10 {
			page, err := repo.ListPage(ctx, q)
			require.NoError(t, err)
			seen = append(seen, pageIDs(page)...)
			if !page.HasMore {
				break
			}
			q.LastID = page.NextCursor
		}

		require.Len(t, seen, len(ids))
		for i := 1; i < len(seen); i++ {
			assert.Greater(t, seen[i-1], seen[i])
		}
		assert.ElementsMatch(t, ids, seen)
	})

	t.Run("Should keep cursors stable across concurrent inserts", func(t *testing.T) {
		repo := newRepo(t)
		ctx := t.Context()
		ids := createN(ctx, t, repo, 4, 7)
		first, err := repo.ListPage(ctx, post.PageQuery{Limit: 2})
		require.NoError(t, err)

		_, err = repo.Create(ctx, "newest", 7)
		require.NoError(t, err)
		second, err := repo.ListPage(ctx, post.PageQuery{Limit: 2, LastID: first.NextCursor})

		require.NoError(t, err)
		assert.Equal(t, []int64{ids[1], ids[0]}, pageIDs(second))
	})

	t.Run("Should update only the owner's post", func(t *testing.T) {
		repo := newRepo(t)
		ctx := t.Context()
		created, err := repo.Create(ctx, "original", 7)
		require.NoError(t, err)

		_, err = repo.Update(ctx, created.ID, 8, "x")
		assert.ErrorIs(t, err, post.ErrNotFound)
		unchanged, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "original", unchanged.Text)

		updated, err := repo.Update(ctx, created.ID, 7, "x")
		require.NoError(t, err)
		assert.Equal(t, "x", updated.Text)
		assert.Equal(t, int64(7), updated.UserID)
		assert.Equal(t, created.Timestamp.Unix(), updated.Timestamp.Unix())
	})

	t.Run("Should patch only the owner's post", func(t *testing.T) {
		repo := newRepo(t)
		ctx := t.Context()
		created, err := repo.Create(ctx, "original", 7)
		require.NoError(t, err)
		fields := post.Fields{Text: StrPtr("patched")}

		_, err = repo.Patch(ctx, created.ID, 8, fields)
		assert.ErrorIs(t, err, post.ErrNotFound)
		unchanged, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "original", unchanged.Text)

		patched, err := repo.Patch(ctx, created.ID, 7, fields)
		require.NoError(t, err)
		assert.Equal(t, "patched", patched.Text)
	})

	t.Run("Should reject an empty patch", func(t *testing.T) {
		repo := newRepo(t)
		ctx := t.Context()
		created, err := repo.Create(ctx, "original", 7)
		require.NoError(t, err)

		_, err = repo.Patch(ctx, created.ID, 7, post.Fields{})

		assert.ErrorIs(t, err, post.ErrEmptyPatch)
		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "original", got.Text)
	})

	t.Run("Should map duplicate text on update to conflict", func(t *testing.T) {
		repo := newRepo(t)
		ctx := t.Context()
		_, err := repo.Create(ctx, "taken", 7)
		require.NoError(t, err)
		other, err := repo.Create(ctx, "free", 7)
		require.NoError(t, err)

		_, err = repo.Update(ctx, other.ID, 7, "taken")

		assert.ErrorIs(t, err, post.ErrConflict)
	})

	t.Run("Should delete idempotently and ignore foreign posts", func(t *testing.T) {
		repo := newRepo(t)
		ctx := t.Context()
		created, err := repo.Create(ctx, "doomed", 7)
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, created.ID, 8))
		_, err = repo.Get(ctx, created.ID)
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, created.ID, 7))
		require.NoError(t, repo.Delete(ctx, created.ID, 7))
		_, err = repo.Get(ctx, created.ID)
		assert.ErrorIs(t, err, post.ErrNotFound)
	})

	t.Run("Should never reuse a deleted id", func(t *testing.T) {
		repo := newRepo(t)
		ctx := t.Context()
		ids := createN(ctx, t, repo, 2, 7)
		require.NoError(t, repo.Delete(ctx, ids[1], 7))

		next, err := repo.Create(ctx, "after delete", 7)

		require.NoError(t, err)
		assert.Greater(t, next.ID, ids[1])
	})
}

func createN(ctx context.Context, t *testing.T, repo post.Repository, n int, owner int64) []int64 {
	t.Helper()
	ids := make([]int64, 0, n)
	for i := range n {
		p, err := repo.Create(ctx, fmt.Sprintf("post %d by %d", i, owner), owner)
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	return ids
}

func pageIDs(page *post.Page) []int64 {
	out := make([]int64, len(page.Items))
	for i := range page.Items {
		out[i] = page.Items[i].ID
	}
	return out
}
