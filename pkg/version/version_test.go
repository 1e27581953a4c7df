package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	t.Run("Should report link time variables", func(t *testing.T) {
		prev := Version
		t.Cleanup(func() { Version = prev })
		Version = "v1.2.3"

		info := Get()

		assert.Equal(t, "v1.2.3", info.Version)
		assert.Contains(t, info.String(), "post-api v1.2.3")
	})
}
