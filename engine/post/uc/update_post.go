package uc

import (
	"context"
	"errors"
	"fmt"

	"github.com/MicroServices-SocialApp/Post-API/engine/post"
	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
)

// UpdatePostInput represents the input for replacing a post body
type UpdatePostInput struct {
	ID      int64
	OwnerID int64
	Text    string
}

// UpdatePost use case for fully replacing the mutable fields of a post
type UpdatePost struct {
	repo  post.Repository
	input *UpdatePostInput
}

// NewUpdatePost creates a new update post use case
func NewUpdatePost(repo post.Repository, input *UpdatePostInput) *UpdatePost {
	return &UpdatePost{repo: repo, input: input}
}

// Execute updates a post. A post owned by someone else yields post.ErrNotFound.
func (uc *UpdatePost) Execute(ctx context.Context) (*post.Post, error) {
	if err := post.ValidateText(uc.input.Text); err != nil {
		return nil, err
	}
	updated, err := uc.repo.Update(ctx, uc.input.ID, uc.input.OwnerID, uc.input.Text)
	if err != nil {
		return nil, wrapMutationError("update", uc.input.ID, err)
	}
	logger.FromContext(ctx).Info("Post updated", "post_id", updated.ID)
	return updated, nil
}

func wrapMutationError(op string, id int64, err error) error {
	if errors.Is(err, post.ErrNotFound) || errors.Is(err, post.ErrConflict) {
		return err
	}
	return fmt.Errorf("failed to %s post %d: %w", op, id, err)
}
