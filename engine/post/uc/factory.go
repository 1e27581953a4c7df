package uc

import (
	"github.com/MicroServices-SocialApp/Post-API/engine/core"
	"github.com/MicroServices-SocialApp/Post-API/engine/post"
)

var (
	_ core.Usecase[*post.Post] = (*CreatePost)(nil)
	_ core.Usecase[*post.Post] = (*GetPost)(nil)
	_ core.Usecase[*post.Page] = (*ListPosts)(nil)
	_ core.Usecase[*post.Post] = (*UpdatePost)(nil)
	_ core.Usecase[*post.Post] = (*PatchPost)(nil)
)

// Factory provides methods to create use case instances with proper dependency injection
type Factory struct {
	repo     post.Repository
	maxLimit int
}

// NewFactory creates a new use case factory. maxLimit caps page sizes; zero disables the cap.
func NewFactory(repo post.Repository, maxLimit int) *Factory {
	return &Factory{repo: repo, maxLimit: maxLimit}
}

func (f *Factory) CreatePost(input *CreatePostInput) *CreatePost {
	return NewCreatePost(f.repo, input)
}

func (f *Factory) GetPost(id int64) *GetPost {
	return NewGetPost(f.repo, id)
}

func (f *Factory) ListPosts(query post.PageQuery) *ListPosts {
	return NewListPosts(f.repo, query, f.maxLimit)
}

func (f *Factory) UpdatePost(input *UpdatePostInput) *UpdatePost {
	return NewUpdatePost(f.repo, input)
}

func (f *Factory) PatchPost(input *PatchPostInput) *PatchPost {
	return NewPatchPost(f.repo, input)
}

func (f *Factory) DeletePost(id, ownerID int64) *DeletePost {
	return NewDeletePost(f.repo, id, ownerID)
}
