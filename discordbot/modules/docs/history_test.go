package docs

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryKeepsLastMessages(t *testing.T) {
	h := newHistory()

	for i := 0; i < historySize+10; i++ {
		h.add("c", "alice", strconv.Itoa(i))
	}

	got := h.get("c")
	require.Len(t, got, historySize)
	assert.Equal(t, "10", got[0].Content)
	assert.Equal(t, strconv.Itoa(historySize+9), got[len(got)-1].Content)
}

func TestHistoryPerChannel(t *testing.T) {
	h := newHistory()

	h.add("a", "alice", "hello")
	h.add("b", "bob", "hi")

	require.Len(t, h.get("a"), 1)
	assert.Equal(t, "hello", h.get("a")[0].Content)
	require.Len(t, h.get("b"), 1)
	assert.Equal(t, "bob", h.get("b")[0].Author)
}

func TestHistorySkipsEmpty(t *testing.T) {
	h := newHistory()

	h.add("c", "alice", "")

	assert.Empty(t, h.get("c"))
}

func TestHistoryGetCopies(t *testing.T) {
	h := newHistory()

	h.add("c", "alice", "hello")

	got := h.get("c")
	got[0].Content = "mutated"

	assert.Equal(t, "hello", h.get("c")[0].Content)
}
