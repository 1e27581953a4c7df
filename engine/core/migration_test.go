package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMigrationCommand(t *testing.T) {
	t.Run("Should accept known commands", func(t *testing.T) {
		for _, name := range []string{"up", "down", "status"} {
			cmd, err := ParseMigrationCommand(name)
			require.NoError(t, err)
			assert.Equal(t, MigrationCommand(name), cmd)
		}
	})
	t.Run("Should reject anything else", func(t *testing.T) {
		_, err := ParseMigrationCommand("redo")
		assert.ErrorContains(t, err, `unknown migration command "redo"`)
	})
}
