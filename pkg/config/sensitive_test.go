package config

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensitiveString(t *testing.T) {
	t.Run("Should hide the signing key from every fmt verb", func(t *testing.T) {
		auth := AuthConfig{SecretKey: "hmac-signing-key", Algorithm: "HS256"}
		for _, verb := range []string{"%s", "%v", "%+v", "%#v"} {
			out := fmt.Sprintf(verb, auth.SecretKey)
			assert.NotContains(t, out, "hmac-signing-key", verb)
		}
		assert.Equal(t, "hmac-signing-key", auth.SecretKey.Value())
	})

	t.Run("Should keep unset secrets empty", func(t *testing.T) {
		var pw SensitiveString
		assert.Empty(t, pw.String())
		data, err := json.Marshal(pw)
		require.NoError(t, err)
		assert.JSONEq(t, `""`, string(data))
	})

	t.Run("Should redact secrets when the whole config is dumped as JSON", func(t *testing.T) {
		cfg := Default()
		cfg.Auth.SecretKey = "jwt-secret"
		cfg.Database.Password = "db-password"
		cfg.Redis.Password = "redis-password"
		data, err := json.Marshal(cfg)
		require.NoError(t, err)
		dump := string(data)
		for _, secret := range []string{"jwt-secret", "db-password", "redis-password"} {
			assert.NotContains(t, dump, secret)
		}
		assert.Contains(t, dump, redacted)
	})

	t.Run("Should read the raw value back from JSON", func(t *testing.T) {
		var auth struct {
			SecretKey SensitiveString `json:"secret_key"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"secret_key":"from-file"}`), &auth))
		assert.Equal(t, "from-file", auth.SecretKey.Value())
	})
}
