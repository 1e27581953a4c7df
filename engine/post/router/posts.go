package postrouter

import (
	"errors"
	"net/http"

	"github.com/MicroServices-SocialApp/Post-API/engine/auth/userctx"
	"github.com/MicroServices-SocialApp/Post-API/engine/infra/server/router"
	"github.com/MicroServices-SocialApp/Post-API/engine/post"
	"github.com/MicroServices-SocialApp/Post-API/engine/post/uc"
	"github.com/gin-gonic/gin"
)

const (
	paramPostID = "post_id"
	paramLimit  = "limit"
	paramLastID = "last_id"
)

// Handler serves the post endpoints on top of the use case factory.
type Handler struct {
	factory *uc.Factory
}

func NewHandler(factory *uc.Factory) *Handler {
	return &Handler{factory: factory}
}

// createPost handles POST /post/create.
//
// @Summary Create post
// @Description Create a post owned by the authenticated caller.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body postrouter.CreatePostRequest true "Post body"
// @Success 201 {object} postrouter.PostResponse "Post created"
// @Failure 400 {object} router.ProblemDocument "Invalid text"
// @Failure 401 {object} router.ProblemDocument "Missing or invalid credentials"
// @Failure 409 {object} router.ProblemDocument "Duplicate text"
// @Failure 500 {object} router.ProblemDocument "Internal server error"
// @Router /post/create [post]
func (h *Handler) createPost(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	created, err := h.factory.CreatePost(req.toInput(ownerID)).Execute(c.Request.Context())
	if err != nil {
		respondPostError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPostResponse(created))
}

// listPosts handles GET /post/read_all_posts.
//
// @Summary List posts
// @Description Read the public post stream newest first with keyset pagination.
// @Description Pass next_cursor back as last_id to fetch the following page.
// @Tags posts
// @Produce json
// @Param limit query int true "Page size, clamped to the configured maximum" example(20)
// @Param last_id query int false "Cursor returned as next_cursor by the previous page" example(40)
// @Success 200 {object} postrouter.PageResponse "Page retrieved"
// @Header 200 {string} Link "RFC 8288 link to the next page"
// @Failure 400 {object} router.ProblemDocument "Invalid limit or cursor"
// @Failure 500 {object} router.ProblemDocument "Internal server error"
// @Router /post/read_all_posts [get]
func (h *Handler) listPosts(c *gin.Context) {
	limit, err := router.QueryInt64(c, paramLimit)
	if err != nil {
		if errors.Is(err, router.ErrMissingParam) {
			respondPostError(c, post.ErrInvalidLimit)
			return
		}
		respondBadRequest(c, err.Error())
		return
	}
	lastID, err := router.OptionalQueryInt64(c, paramLastID)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	query := post.PageQuery{Limit: clampLimit(limit), LastID: lastID}
	page, err := h.factory.ListPosts(query).Execute(c.Request.Context())
	if err != nil {
		respondPostError(c, err)
		return
	}
	router.SetNextLink(c, paramLastID, page.NextCursor)
	c.JSON(http.StatusOK, toPageResponse(page))
}

// getPost handles GET /post/read.
//
// @Summary Get post
// @Tags posts
// @Produce json
// @Param post_id query int true "Post ID" example(42)
// @Success 200 {object} postrouter.PostResponse "Post retrieved"
// @Failure 400 {object} router.ProblemDocument "Invalid post ID"
// @Failure 404 {object} router.ProblemDocument "Post not found"
// @Failure 500 {object} router.ProblemDocument "Internal server error"
// @Router /post/read [get]
func (h *Handler) getPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	found, err := h.factory.GetPost(id).Execute(c.Request.Context())
	if err != nil {
		respondPostError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostResponse(found))
}

// updatePost handles PUT /post/update.
//
// @Summary Replace post text
// @Description Replace the text of a post owned by the caller. Posts owned by
// @Description someone else are reported as not found.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post_id query int true "Post ID" example(42)
// @Param payload body postrouter.UpdatePostRequest true "New post body"
// @Success 200 {object} postrouter.PostResponse "Post updated"
// @Failure 400 {object} router.ProblemDocument "Invalid input"
// @Failure 401 {object} router.ProblemDocument "Missing or invalid credentials"
// @Failure 404 {object} router.ProblemDocument "Post not found"
// @Failure 409 {object} router.ProblemDocument "Duplicate text"
// @Failure 500 {object} router.ProblemDocument "Internal server error"
// @Router /post/update [put]
func (h *Handler) updatePost(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}
	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	updated, err := h.factory.UpdatePost(req.toInput(id, ownerID)).Execute(c.Request.Context())
	if err != nil {
		respondPostError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostResponse(updated))
}

// patchPost handles PATCH /post/patch.
//
// @Summary Patch post
// @Description Apply a sparse update to a post owned by the caller. At least one field must be set.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post_id query int true "Post ID" example(42)
// @Param payload body postrouter.PatchPostRequest true "Fields to change"
// @Success 200 {object} postrouter.PostResponse "Post patched"
// @Failure 400 {object} router.ProblemDocument "Empty patch or invalid input"
// @Failure 401 {object} router.ProblemDocument "Missing or invalid credentials"
// @Failure 404 {object} router.ProblemDocument "Post not found"
// @Failure 409 {object} router.ProblemDocument "Duplicate text"
// @Failure 500 {object} router.ProblemDocument "Internal server error"
// @Router /post/patch [patch]
func (h *Handler) patchPost(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}
	var req PatchPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	input := &uc.PatchPostInput{ID: id, OwnerID: ownerID, Fields: req.toFields()}
	patched, err := h.factory.PatchPost(input).Execute(c.Request.Context())
	if err != nil {
		respondPostError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostResponse(patched))
}

// deletePost handles DELETE /post/delete.
//
// @Summary Delete post
// @Description Delete a post owned by the caller. Missing and foreign posts also yield 204.
// @Tags posts
// @Security BearerAuth
// @Param post_id query int true "Post ID" example(42)
// @Success 204 "Post deleted"
// @Failure 400 {object} router.ProblemDocument "Invalid post ID"
// @Failure 401 {object} router.ProblemDocument "Missing or invalid credentials"
// @Failure 500 {object} router.ProblemDocument "Internal server error"
// @Router /post/delete [delete]
func (h *Handler) deletePost(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}
	if err := h.factory.DeletePost(id, ownerID).Execute(c.Request.Context()); err != nil {
		respondPostError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func callerID(c *gin.Context) (int64, bool) {
	id, err := userctx.MustUserIDFromContext(c.Request.Context())
	if err != nil {
		router.RespondProblemWithCode(c, http.StatusUnauthorized, router.ErrUnauthorizedCode, "authentication required")
		return 0, false
	}
	return id, true
}

func postID(c *gin.Context) (int64, bool) {
	id, err := router.QueryInt64(c, paramPostID)
	if err != nil {
		respondBadRequest(c, err.Error())
		return 0, false
	}
	if id <= 0 {
		respondBadRequest(c, "post_id must be a positive integer")
		return 0, false
	}
	return id, true
}

// clampLimit keeps oversized limits representable as int; the use case
// applies the configured maximum.
func clampLimit(limit int64) int {
	const maxInt32 = 1<<31 - 1
	if limit > maxInt32 {
		return maxInt32
	}
	return int(limit)
}
