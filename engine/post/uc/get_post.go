package uc

import (
	"context"
	"errors"
	"fmt"

	"github.com/MicroServices-SocialApp/Post-API/engine/post"
)

type GetPost struct {
	repo post.Repository
	id   int64
}

func NewGetPost(repo post.Repository, id int64) *GetPost {
	return &GetPost{repo: repo, id: id}
}

func (uc *GetPost) Execute(ctx context.Context) (*post.Post, error) {
	p, err := uc.repo.Get(ctx, uc.id)
	if err != nil {
		if errors.Is(err, post.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get post %d: %w", uc.id, err)
	}
	return p, nil
}
