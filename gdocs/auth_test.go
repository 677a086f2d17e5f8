package gdocs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"md2gdocs/config"
)

func TestTokenFromFile_Missing(t *testing.T) {
	tok, err := tokenFromFile(filepath.Join(t.TempDir(), "token.json"))
	require.NoError(t, err)
	assert.Nil(t, tok)
}

func TestSaveToken_CreatesPrivateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	require.NoError(t, saveToken(path, &oauth2.Token{AccessToken: "abc", RefreshToken: "def"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	tok, err := tokenFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "def", tok.RefreshToken)
}

func TestTokenFromFile_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := tokenFromFile(path)
	assert.ErrorContains(t, err, "decode token file")
}

func TestHTTPClient_UnknownMode(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.AuthMode = "ldap"

	_, err := HTTPClient(context.Background(), cfg, Prompt{})
	assert.ErrorContains(t, err, `unknown auth mode "ldap"`)
}

func TestServiceAccountClient_BadKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sa.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"authorized_user"}`), 0o600))

	_, err := ServiceAccountClient(context.Background(), path)
	assert.ErrorContains(t, err, "parse service account key")
}
