package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitKey(t *testing.T) {
	scope, name, err := splitKey("cleanup.delay")
	assert.NoError(t, err)
	assert.Equal(t, "cleanup", scope)
	assert.Equal(t, "delay", name)

	scope, name, err = splitKey("auth.admin.role")
	assert.NoError(t, err)
	assert.Equal(t, "auth", scope)
	assert.Equal(t, "admin.role", name)

	_, _, err = splitKey("")
	assert.Equal(t, ErrNoKey, err)

	_, _, err = splitKey("noscope")
	assert.Equal(t, ErrInvalidKey, err)

	_, _, err = splitKey(".name")
	assert.Equal(t, ErrInvalidKey, err)

	_, _, err = splitKey("scope.")
	assert.Equal(t, ErrInvalidKey, err)
}
