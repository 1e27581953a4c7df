package uc

import (
	"context"

	"github.com/MicroServices-SocialApp/Post-API/engine/post"
	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
)

// PatchPostInput represents a sparse update of a post
type PatchPostInput struct {
	ID      int64
	OwnerID int64
	Fields  post.Fields
}

// PatchPost use case for partially updating a post
type PatchPost struct {
	repo  post.Repository
	input *PatchPostInput
}

// NewPatchPost creates a new patch post use case
func NewPatchPost(repo post.Repository, input *PatchPostInput) *PatchPost {
	return &PatchPost{repo: repo, input: input}
}

// Execute applies the patch. An empty field set is rejected before the store is reached.
func (uc *PatchPost) Execute(ctx context.Context) (*post.Post, error) {
	if uc.input.Fields.IsEmpty() {
		return nil, post.ErrEmptyPatch
	}
	if uc.input.Fields.Text != nil {
		if err := post.ValidateText(*uc.input.Fields.Text); err != nil {
			return nil, err
		}
	}
	patched, err := uc.repo.Patch(ctx, uc.input.ID, uc.input.OwnerID, uc.input.Fields)
	if err != nil {
		return nil, wrapMutationError("patch", uc.input.ID, err)
	}
	logger.FromContext(ctx).Info("Post patched", "post_id", patched.ID)
	return patched, nil
}
