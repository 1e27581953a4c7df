package uc

import (
	"context"
	"fmt"

	"github.com/MicroServices-SocialApp/Post-API/engine/post"
	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
)

// DeletePost use case for deleting a post owned by the caller
type DeletePost struct {
	repo    post.Repository
	id      int64
	ownerID int64
}

// NewDeletePost creates a new delete post use case
func NewDeletePost(repo post.Repository, id, ownerID int64) *DeletePost {
	return &DeletePost{repo: repo, id: id, ownerID: ownerID}
}

// Execute deletes a post. Missing and foreign posts are not reported.
func (uc *DeletePost) Execute(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Debug("Deleting post", "post_id", uc.id, "user_id", uc.ownerID)
	if err := uc.repo.Delete(ctx, uc.id, uc.ownerID); err != nil {
		return fmt.Errorf("failed to delete post %d: %w", uc.id, err)
	}
	return nil
}
