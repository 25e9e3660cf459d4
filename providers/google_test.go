package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGoogleProvider(t *testing.T) {
	cfg := NewGoogleProvider("id", "secret", "https://example.com/callback")

	assert.Equal(t, "id", cfg.ClientID)
	assert.Equal(t, "secret", cfg.ClientSecret)
	assert.Equal(t, "https://example.com/callback", cfg.RedirectURL)
	assert.Equal(t, []string{"profile", "email"}, cfg.Scopes)
	assert.Equal(t, GoogleAuthURL, cfg.Endpoint.AuthURL)
	assert.Equal(t, GoogleTokenURL, cfg.Endpoint.TokenURL)
}

func TestScopesReturnsCopy(t *testing.T) {
	s := Scopes()
	s[0] = "changed"

	assert.Equal(t, []string{"profile", "email"}, Scopes())
}
