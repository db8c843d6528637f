// Package guildconfig provides bot module for durable per-guild settings:
// notification channel, member count channel and default role lists
package guildconfig

import (
	"errors"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/rolewarden/rolewarden/discordbot/bot"
	"github.com/rolewarden/rolewarden/discordbot/modules/auth"
	"github.com/rolewarden/rolewarden/discordbot/router"
)

var (
	// ErrNoChannel is returned when channel argument is missing
	ErrNoChannel = errors.New("channel or off required")
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

	group := config.Router.Group("guild").SetDescription("guild settings")
	group.Set(auth.RouteConfigKey, &auth.RouteConfig{
		Permissions: discordgo.PermissionAdministrator,
	})

	group.On("guild.notify", "set join/leave notification channel", mod.commandNotify)
	group.On("guild.counter", "set member count channel", mod.commandCounter)
	group.On("guild.userroles", "set default roles for humans", mod.commandUserRoles)
	group.On("guild.botroles", "set default roles for bots", mod.commandBotRoles)
	group.On("guild.show", "show guild settings", mod.commandShow)

	return nil
}

func (mod *module) Configure(config *bot.Configuration, guild *discordgo.Guild) {

}

func (mod *module) Shutdown(config *bot.Configuration) {

}

// parseChannelID accepts raw ids, channel mentions and "off"
func parseChannelID(s string) (string, error) {
	if s == "" {
		return "", ErrNoChannel
	}

	if s == "off" {
		return "", nil
	}

	if strings.HasPrefix(s, "<#") && strings.HasSuffix(s, ">") {
		return s[2 : len(s)-1], nil
	}

	return s, nil
}

// parseRoleIDs accepts raw ids and role mentions; "off" clears the list
func parseRoleIDs(args router.Args) []string {
	var roles []string

	for _, a := range []string(args)[1:] {
		if a == "off" {
			return nil
		}

		if strings.HasPrefix(a, "<@&") && strings.HasSuffix(a, ">") {
			a = a[3 : len(a)-1]
		}

		roles = append(roles, a)
	}

	return roles
}

func (mod *module) commandNotify(ctx *router.Context) error {
	channelID, err := parseChannelID(ctx.Args.Get(1))
	if err != nil {
		return err
	}

	return mod.config.Store.SetNotifyChannel(ctx.Message.GuildID, channelID)
}

func (mod *module) commandCounter(ctx *router.Context) error {
	channelID, err := parseChannelID(ctx.Args.Get(1))
	if err != nil {
		return err
	}

	return mod.config.Store.SetMemberCountChannel(ctx.Message.GuildID, channelID)
}

func (mod *module) commandUserRoles(ctx *router.Context) error {
	return mod.config.Store.SetUserRoles(ctx.Message.GuildID, parseRoleIDs(ctx.Args))
}

func (mod *module) commandBotRoles(ctx *router.Context) error {
	return mod.config.Store.SetBotRoles(ctx.Message.GuildID, parseRoleIDs(ctx.Args))
}

func (mod *module) roleNames(guildID string, roleIDs []string) string {
	if len(roleIDs) == 0 {
		return "(none)"
	}

	names := make([]string, 0, len(roleIDs))
	for _, r := range roleIDs {
		names = append(names, mod.config.RoleName(guildID, r))
	}

	return strings.Join(names, ", ")
}

func channelRef(channelID string) string {
	if channelID == "" {
		return "(off)"
	}

	return "<#" + channelID + ">"
}

func (mod *module) commandShow(ctx *router.Context) error {
	conf, err := mod.config.Store.Config(ctx.Message.GuildID)
	if err != nil {
		return err
	}

	buf := &strings.Builder{}

	buf.WriteString("notify channel: " + channelRef(conf.NotifyChannelID) + "\n")
	buf.WriteString("member count channel: " + channelRef(conf.MemberCountChannelID) + "\n")
	buf.WriteString("user default roles: " + mod.roleNames(conf.GuildID, conf.UserRoleIDs) + "\n")
	buf.WriteString("bot default roles: " + mod.roleNames(conf.GuildID, conf.BotRoleIDs) + "\n")

	return ctx.ReplyEmbed(buf.String())
}
