package guildconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rolewarden/rolewarden/discordbot/router"
)

func TestParseChannelID(t *testing.T) {
	id, err := parseChannelID("<#123>")
	assert.NoError(t, err)
	assert.Equal(t, "123", id)

	id, err = parseChannelID("123")
	assert.NoError(t, err)
	assert.Equal(t, "123", id)

	id, err = parseChannelID("off")
	assert.NoError(t, err)
	assert.Equal(t, "", id)

	_, err = parseChannelID("")
	assert.Equal(t, ErrNoChannel, err)
}

func TestParseRoleIDs(t *testing.T) {
	assert.Equal(t,
		[]string{"1", "2"},
		parseRoleIDs(router.Args{"guild.userroles", "<@&1>", "2"}),
	)

	assert.Nil(t, parseRoleIDs(router.Args{"guild.userroles", "off"}))
	assert.Nil(t, parseRoleIDs(router.Args{"guild.userroles"}))
}
