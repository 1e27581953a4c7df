package uc

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MicroServices-SocialApp/Post-API/engine/post"
	"github.com/MicroServices-SocialApp/Post-API/engine/post/posttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func samplePost(id, owner int64, text string) *post.Post {
	return &post.Post{ID: id, Text: text, UserID: owner, Timestamp: time.Unix(1700000000, 0).UTC()}
}

func TestCreatePost(t *testing.T) {
	t.Run("Should assign ownership to the caller", func(t *testing.T) {
		repo := &posttest.MockRepository{}
		repo.On("Create", mock.Anything, "hello", int64(7)).Return(samplePost(1, 7, "hello"), nil)

		got, err := NewFactory(repo, 0).CreatePost(&CreatePostInput{Text: "hello", OwnerID: 7}).Execute(t.Context())

		require.NoError(t, err)
		assert.Equal(t, int64(7), got.UserID)
		repo.AssertExpectations(t)
	})

	t.Run("Should reject empty and oversized text before the store", func(t *testing.T) {
		repo := &posttest.MockRepository{}
		f := NewFactory(repo, 0)

		_, err := f.CreatePost(&CreatePostInput{Text: "", OwnerID: 7}).Execute(t.Context())
		assert.ErrorIs(t, err, post.ErrInvalidText)

		_, err = f.CreatePost(&CreatePostInput{Text: strings.Repeat("a", 257), OwnerID: 7}).Execute(t.Context())
		assert.ErrorIs(t, err, post.ErrTextTooLong)

		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should pass conflicts through and wrap other errors", func(t *testing.T) {
		repo := &posttest.MockRepository{}
		repo.On("Create", mock.Anything, "dup", int64(7)).Return(nil, post.ErrConflict)
		repo.On("Create", mock.Anything, "boom", int64(7)).Return(nil, errors.New("connection reset"))
		f := NewFactory(repo, 0)

		_, err := f.CreatePost(&CreatePostInput{Text: "dup", OwnerID: 7}).Execute(t.Context())
		assert.ErrorIs(t, err, post.ErrConflict)

		_, err = f.CreatePost(&CreatePostInput{Text: "boom", OwnerID: 7}).Execute(t.Context())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create post")
	})
}

func TestGetPost(t *testing.T) {
	t.Run("Should return not found unchanged", func(t *testing.T) {
		repo := &posttest.MockRepository{}
		repo.On("Get", mock.Anything, int64(9)).Return(nil, post.ErrNotFound)

		_, err := NewFactory(repo, 0).GetPost(9).Execute(t.Context())

		assert.ErrorIs(t, err, post.ErrNotFound)
	})
}

func TestListPosts(t *testing.T) {
	t.Run("Should reject a non-positive limit without querying", func(t *testing.T) {
		repo := &posttest.MockRepository{}

		_, err := NewFactory(repo, 50).ListPosts(post.PageQuery{Limit: 0}).Execute(t.Context())

		assert.ErrorIs(t, err, post.ErrInvalidLimit)
		repo.AssertNotCalled(t, "ListPage", mock.Anything, mock.Anything)
	})

	t.Run("Should reject a non-positive cursor", func(t *testing.T) {
		repo := &posttest.MockRepository{}

		_, err := NewFactory(repo, 50).
			ListPosts(post.PageQuery{Limit: 5, LastID: posttest.Int64Ptr(-1)}).
			Execute(t.Context())

		assert.ErrorIs(t, err, post.ErrInvalidCursor)
	})

	t.Run("Should clamp the limit to the configured maximum", func(t *testing.T) {
		repo := &posttest.MockRepository{}
		page := &post.Page{Items: []post.Post{}}
		repo.On("ListPage", mock.Anything, post.PageQuery{Limit: 50}).Return(page, nil)

		got, err := NewFactory(repo, 50).ListPosts(post.PageQuery{Limit: 500}).Execute(t.Context())

		require.NoError(t, err)
		assert.Same(t, page, got)
		repo.AssertExpectations(t)
	})
}

func TestUpdatePost(t *testing.T) {
	t.Run("Should surface not found for a foreign post", func(t *testing.T) {
		repo := &posttest.MockRepository{}
		repo.On("Update", mock.Anything, int64(1), int64(8), "x").Return(nil, post.ErrNotFound)

		_, err := NewFactory(repo, 0).
			UpdatePost(&UpdatePostInput{ID: 1, OwnerID: 8, Text: "x"}).
			Execute(t.Context())

		assert.ErrorIs(t, err, post.ErrNotFound)
		repo.AssertExpectations(t)
	})

	t.Run("Should validate the replacement text", func(t *testing.T) {
		repo := &posttest.MockRepository{}

		_, err := NewFactory(repo, 0).
			UpdatePost(&UpdatePostInput{ID: 1, OwnerID: 7, Text: " "}).
			Execute(t.Context())

		assert.ErrorIs(t, err, post.ErrInvalidText)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPatchPost(t *testing.T) {
	t.Run("Should reject an empty field set before the store", func(t *testing.T) {
		repo := &posttest.MockRepository{}

		_, err := NewFactory(repo, 0).
			PatchPost(&PatchPostInput{ID: 1, OwnerID: 7}).
			Execute(t.Context())

		assert.ErrorIs(t, err, post.ErrEmptyPatch)
		repo.AssertNotCalled(t, "Patch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should forward present fields", func(t *testing.T) {
		repo := &posttest.MockRepository{}
		fields := post.Fields{Text: posttest.StrPtr("edited")}
		repo.On("Patch", mock.Anything, int64(1), int64(7), fields).Return(samplePost(1, 7, "edited"), nil)

		got, err := NewFactory(repo, 0).
			PatchPost(&PatchPostInput{ID: 1, OwnerID: 7, Fields: fields}).
			Execute(t.Context())

		require.NoError(t, err)
		assert.Equal(t, "edited", got.Text)
	})

	t.Run("Should wrap backend failures", func(t *testing.T) {
		repo := &posttest.MockRepository{}
		fields := post.Fields{Text: posttest.StrPtr("edited")}
		repo.On("Patch", mock.Anything, int64(1), int64(7), fields).Return(nil, post.ErrUnavailable)

		_, err := NewFactory(repo, 0).
			PatchPost(&PatchPostInput{ID: 1, OwnerID: 7, Fields: fields}).
			Execute(t.Context())

		assert.ErrorIs(t, err, post.ErrUnavailable)
		assert.Contains(t, err.Error(), "failed to patch post 1")
	})
}

func TestDeletePost(t *testing.T) {
	t.Run("Should succeed when the store matched nothing", func(t *testing.T) {
		repo := &posttest.MockRepository{}
		repo.On("Delete", mock.Anything, int64(42), int64(7)).Return(nil)

		err := NewFactory(repo, 0).DeletePost(42, 7).Execute(t.Context())

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
