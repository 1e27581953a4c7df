package posttest

import (
	"testing"

	"github.com/MicroServices-SocialApp/Post-API/engine/post"
)

func TestMemoryRepository(t *testing.T) {
	RunRepositorySuite(t, func(*testing.T) post.Repository {
		return NewMemoryRepository()
	})
}
