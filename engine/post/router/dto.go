package postrouter

import (
	"time"

	"github.com/MicroServices-SocialApp/Post-API/engine/post"
	"github.com/MicroServices-SocialApp/Post-API/engine/post/uc"
)

// CreatePostRequest is the body of POST /post/create.
type CreatePostRequest struct {
	Text string `json:"text" binding:"required" example:"hello world"`
}

func (r *CreatePostRequest) toInput(ownerID int64) *uc.CreatePostInput {
	return &uc.CreatePostInput{Text: r.Text, OwnerID: ownerID}
}

// UpdatePostRequest is the body of PUT /post/update.
type UpdatePostRequest struct {
	Text string `json:"text" binding:"required" example:"edited text"`
}

func (r *UpdatePostRequest) toInput(id, ownerID int64) *uc.UpdatePostInput {
	return &uc.UpdatePostInput{ID: id, OwnerID: ownerID, Text: r.Text}
}

// PatchPostRequest is the sparse body of PATCH /post/patch. Omitted and null
// members are left unchanged.
type PatchPostRequest struct {
	Text *string `json:"text,omitempty" example:"patched text"`
}

func (r *PatchPostRequest) toFields() post.Fields {
	return post.Fields{Text: r.Text}
}

// PostResponse is the public representation of a post.
type PostResponse struct {
	ID        int64     `json:"id"        example:"42"`
	Text      string    `json:"text"      example:"hello world"`
	UserID    int64     `json:"user_id"   example:"7"`
	Timestamp time.Time `json:"timestamp" example:"2024-01-02T15:04:05Z"`
}

// PageResponse is one page of the newest-first post stream. NextCursor is
// null on the last page.
type PageResponse struct {
	Items      []PostResponse `json:"items"`
	NextCursor *int64         `json:"next_cursor" example:"40"`
	HasMore    bool           `json:"has_more"    example:"true"`
}

func toPostResponse(p *post.Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Text:      p.Text,
		UserID:    p.UserID,
		Timestamp: p.Timestamp.UTC(),
	}
}

func toPageResponse(page *post.Page) PageResponse {
	items := make([]PostResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, toPostResponse(&page.Items[i]))
	}
	return PageResponse{Items: items, NextCursor: page.NextCursor, HasMore: page.HasMore}
}
