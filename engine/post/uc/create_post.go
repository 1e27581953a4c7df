package uc

import (
	"context"
	"errors"
	"fmt"

	"github.com/MicroServices-SocialApp/Post-API/engine/post"
	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
)

// CreatePostInput carries the text of a new post and the verified caller.
type CreatePostInput struct {
	Text    string
	OwnerID int64
}

// CreatePost use case for creating a post owned by the caller
type CreatePost struct {
	repo  post.Repository
	input *CreatePostInput
}

// NewCreatePost creates a new create post use case
func NewCreatePost(repo post.Repository, input *CreatePostInput) *CreatePost {
	return &CreatePost{repo: repo, input: input}
}

// Execute creates a post
func (uc *CreatePost) Execute(ctx context.Context) (*post.Post, error) {
	if err := post.ValidateText(uc.input.Text); err != nil {
		return nil, err
	}
	created, err := uc.repo.Create(ctx, uc.input.Text, uc.input.OwnerID)
	if err != nil {
		if errors.Is(err, post.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	logger.FromContext(ctx).Info("Post created", "post_id", created.ID, "user_id", created.UserID)
	return created, nil
}
