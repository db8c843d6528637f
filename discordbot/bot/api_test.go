package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitCustomID(t *testing.T) {
	prefix, fields := SplitCustomID("rolemenu:123")
	assert.Equal(t, "rolemenu", prefix)
	assert.Equal(t, []string{"123"}, fields)

	prefix, fields = SplitCustomID("rolemenu:123:extra")
	assert.Equal(t, "rolemenu", prefix)
	assert.Equal(t, []string{"123", "extra"}, fields)

	prefix, fields = SplitCustomID("bare")
	assert.Equal(t, "bare", prefix)
	assert.Empty(t, fields)
}
