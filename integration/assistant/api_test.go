package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildSystemPrompt(t *testing.T) {
	prompt := buildSystemPrompt("# Rules\n\nBe nice.", []Exchange{
		{Author: "alice", Content: "hi"},
		{Author: "bob", Content: "hello"},
	})

	require.Contains(t, prompt, "# Rules")
	require.Contains(t, prompt, "alice: hi")
	require.Contains(t, prompt, "bob: hello")
	require.NotContains(t, prompt, "%DOCS%")
	require.NotContains(t, prompt, "%HISTORY%")
}

func TestBuildSystemPromptEmpty(t *testing.T) {
	prompt := buildSystemPrompt("  ", nil)

	require.Contains(t, prompt, emptyDocs)
	require.Contains(t, prompt, "(none)")
}

func TestAnswerNotConfigured(t *testing.T) {
	client := New("", "")

	_, err := client.Answer(context.Background(), "docs", nil, "alice", "what?")
	require.ErrorIs(t, err, ErrNotConfigured)
}
