package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	root, err := Read(strings.NewReader(`
servers:
  - id: "123"
    prefix: "?"
private:
  token: abc
  prefix: "!"
  redis:
    address: localhost:6379
  postgres:
    dsn: postgres://localhost/rolewarden
  assistant:
    token: xyz
    model: gpt-4
`))
	require.NoError(t, err)
	require.Len(t, root.Servers, 1)
	assert.Equal(t, "123", root.Servers[0].GuildID)
	assert.Equal(t, "?", root.Servers[0].Prefix)
	assert.Equal(t, "abc", root.Private.Token)
	assert.Equal(t, "localhost:6379", root.Private.Redis.Address)
	assert.Equal(t, "postgres://localhost/rolewarden", root.Private.Postgres.DSN)
	assert.Equal(t, "gpt-4", root.Private.Assistant.Model)
}

func TestLoadCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	root, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &Root{}, root)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	require.NoError(t, os.WriteFile(path, []byte("private:\n  token: abc\n"), 0644))

	root, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", root.Private.Token)
}
