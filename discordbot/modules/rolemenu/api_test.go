package rolemenu

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rolewarden/rolewarden/discordbot/store"
)

func TestParseRoleID(t *testing.T) {
	assert.Equal(t, "123", parseRoleID("<@&123>"))
	assert.Equal(t, "123", parseRoleID("123"))
	assert.Equal(t, "<@&123", parseRoleID("<@&123"))
}

func TestButtonRows(t *testing.T) {
	var options []store.Option

	for _, r := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		options = append(options, store.Option{RoleID: r, Label: r})
	}

	rows := buttonRows(options)
	require.Len(t, rows, 2)

	first, ok := rows[0].(discordgo.ActionsRow)
	require.True(t, ok)
	assert.Len(t, first.Components, 5)

	second, ok := rows[1].(discordgo.ActionsRow)
	require.True(t, ok)
	assert.Len(t, second.Components, 2)

	button, ok := first.Components[0].(discordgo.Button)
	require.True(t, ok)
	assert.Equal(t, "rolemenu:a", button.CustomID)
	assert.Equal(t, "a", button.Label)
}
