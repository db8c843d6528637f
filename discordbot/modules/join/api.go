// Package join provides bot module for default roles and join/leave
// notifications
package join

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/rolewarden/rolewarden/discordbot/bot"
	"github.com/rolewarden/rolewarden/discordbot/policy"
	"github.com/rolewarden/rolewarden/discordbot/router"
)

const (
	welcomeFormat = "Welcome to the server, %s!"
	goodbyeFormat = "%s has left the server."
)

// New provides module instance
func New() bot.Module {
	return &module{}
}

type module struct {
	config *bot.Configuration
}

func (mod *module) Initialize(config *bot.Configuration) error {
	mod.config = config

	config.Discord.AddHandler(mod.handlerMemberAdd)
	config.Discord.AddHandler(mod.handlerMemberRemove)

	config.Router.Group("join").SetDescription("joining").
		On("join.test", "preview the welcome message", mod.commandTest)

	return nil
}

func (mod *module) Configure(config *bot.Configuration, guild *discordgo.Guild) {

}

func (mod *module) Shutdown(config *bot.Configuration) {

}

// assignDefaults grants configured default roles one by one, running each
// through the guild block rules; a blocked default is skipped, not failed
func (mod *module) assignDefaults(guildID string, user *discordgo.User, held []string) {
	conf, err := mod.config.Store.Config(guildID)
	if err != nil {
		mod.config.Log.WithError(err).Error("Loading guild config ", guildID)

		return
	}

	roles := []string(conf.UserRoleIDs)
	if user.Bot {
		roles = conf.BotRoleIDs
	}

	if len(roles) == 0 {
		return
	}

	blocks, err := mod.config.Store.Blocks(guildID)
	if err != nil {
		mod.config.Log.WithError(err).Error("Loading block rules ", guildID)

		return
	}

	for _, roleID := range roles {
		decision := policy.Evaluate(held, nil, roleID, blocks)

		switch decision.Action {
		case policy.Deny:
			mod.config.Log.
				WithField("guild", guildID).
				WithField("user", user.ID).
				WithField("role", roleID).
				WithField("blocking", decision.Blocking).
				Info("Skipping blocked default role")

			continue
		case policy.Remove:
			continue
		}

		err = mod.config.Discord.GuildMemberRoleAdd(guildID, user.ID, roleID)
		if err != nil {
			mod.config.Log.WithError(err).Error("Granting default role ", roleID)

			continue
		}

		held = append(held, roleID)
	}
}

func (mod *module) notify(guildID, text string) {
	conf, err := mod.config.Store.Config(guildID)
	if err != nil {
		mod.config.Log.WithError(err).Error("Loading guild config ", guildID)

		return
	}

	if conf.NotifyChannelID == "" {
		return
	}

	_, err = mod.config.Discord.ChannelMessageSend(conf.NotifyChannelID, text)
	if err != nil {
		mod.config.Log.WithError(err).Error("Sending notification")
	}
}

func (mod *module) handlerMemberAdd(session *discordgo.Session, member *discordgo.GuildMemberAdd) {
	mod.assignDefaults(member.GuildID, member.User, member.Roles)

	if !member.User.Bot {
		mod.notify(member.GuildID, fmt.Sprintf(welcomeFormat, member.User.Mention()))
	}
}

func (mod *module) handlerMemberRemove(session *discordgo.Session, member *discordgo.GuildMemberRemove) {
	if !member.User.Bot {
		mod.notify(member.GuildID, fmt.Sprintf(goodbyeFormat, member.User.Username))
	}
}

func (mod *module) commandTest(ctx *router.Context) error {
	mod.notify(ctx.Message.GuildID, fmt.Sprintf(welcomeFormat, ctx.Message.Author.Mention()))

	return nil
}
