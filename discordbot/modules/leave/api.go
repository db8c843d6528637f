// Package leave provides interface for bot to leave a guild
package leave

import (
	"errors"

	"github.com/bwmarrin/discordgo"

	"github.com/rolewarden/rolewarden/discordbot/bot"
	"github.com/rolewarden/rolewarden/discordbot/modules/auth"
	"github.com/rolewarden/rolewarden/discordbot/router"
)

// ErrNoGuildID is returned when guild id argument is missing
var ErrNoGuildID = errors.New("guild id required")

// New provides module instance
func New() bot.Module {
	return &module{}
}

type module struct {
	config *bot.Configuration
}

func (mod *module) Initialize(config *bot.Configuration) error {
	mod.config = config

	group := config.Router.Group("leave").SetDescription("leaving")
	group.Set(auth.RouteConfigKey, &auth.RouteConfig{
		Permissions: discordgo.PermissionAdministrator,
	})

	group.On("leave", "leave a guild", mod.commandLeave)

	return nil
}

func (mod *module) Configure(*bot.Configuration, *discordgo.Guild) {
}

func (mod *module) Shutdown(*bot.Configuration) {

}

func (mod *module) commandLeave(ctx *router.Context) error {
	guildID := ctx.Args.Get(1)
	if guildID == "" {
		return ErrNoGuildID
	}

	return ctx.Session.GuildLeave(guildID)
}
