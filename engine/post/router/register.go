// Package postrouter exposes the post use cases over HTTP.
package postrouter

import (
	authmw "github.com/MicroServices-SocialApp/Post-API/engine/infra/server/middleware/auth"
	"github.com/MicroServices-SocialApp/Post-API/engine/post/uc"
	"github.com/gin-gonic/gin"
)

// Register mounts the post routes on apiBase. Reads are public; every
// mutation requires a bearer token.
func Register(apiBase *gin.RouterGroup, factory *uc.Factory, authManager *authmw.Manager) {
	h := NewHandler(factory)
	postGroup := apiBase.Group("/post")
	{
		// GET /post/read_all_posts
		postGroup.GET("/read_all_posts", h.listPosts)

		// GET /post/read
		postGroup.GET("/read", h.getPost)
	}

	owned := postGroup.Group("", authManager.RequireAuth())
	{
		// POST /post/create
		owned.POST("/create", h.createPost)

		// PUT /post/update
		owned.PUT("/update", h.updatePost)

		// PATCH /post/patch
		owned.PATCH("/patch", h.patchPost)

		// DELETE /post/delete
		// Absent and foreign posts still yield 204
		owned.DELETE("/delete", h.deletePost)
	}
}
