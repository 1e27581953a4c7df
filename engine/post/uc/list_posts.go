package uc

import (
	"context"
	"fmt"

	"github.com/MicroServices-SocialApp/Post-API/engine/post"
)

// ListPosts reads one keyset page of the public post stream.
type ListPosts struct {
	repo     post.Repository
	query    post.PageQuery
	maxLimit int
}

func NewListPosts(repo post.Repository, query post.PageQuery, maxLimit int) *ListPosts {
	return &ListPosts{repo: repo, query: query, maxLimit: maxLimit}
}

// Execute validates the query, clamps the limit and fetches the page.
func (uc *ListPosts) Execute(ctx context.Context) (*post.Page, error) {
	if err := uc.query.Validate(); err != nil {
		return nil, err
	}
	q := uc.query
	if uc.maxLimit > 0 && q.Limit > uc.maxLimit {
		q.Limit = uc.maxLimit
	}
	page, err := uc.repo.ListPage(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return page, nil
}
