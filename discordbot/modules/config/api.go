// Package config provides bot module for runtime key/value configuration
package config

import (
	"errors"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/rolewarden/rolewarden/discordbot/bot"
	"github.com/rolewarden/rolewarden/discordbot/modules/auth"
	"github.com/rolewarden/rolewarden/discordbot/router"
)

var (
	// ErrInvalidKey is returned when key is not in scope.name format
	ErrInvalidKey = errors.New("expected key as scope.name")

	// ErrNoKey is returned when key argument is missing
	ErrNoKey = errors.New("key required")
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

	group := config.Router.Group("config").SetDescription("runtime configuration")
	group.Set(auth.RouteConfigKey, &auth.RouteConfig{
		Permissions: discordgo.PermissionAdministrator,
	})

	group.On("config.set", "set configuration key", mod.commandSet)
	group.On("config.get", "get configuration key", mod.commandGet)
	group.On("config.del", "delete configuration key", mod.commandDel)

	return nil
}

func (mod *module) Configure(config *bot.Configuration, guild *discordgo.Guild) {

}

func (mod *module) Shutdown(config *bot.Configuration) {

}

func splitKey(key string) (scope, name string, err error) {
	if key == "" {
		return "", "", ErrNoKey
	}

	parts := strings.SplitN(key, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", ErrInvalidKey
	}

	return parts[0], parts[1], nil
}

func (mod *module) commandSet(ctx *router.Context) error {
	scope, name, err := splitKey(ctx.Args.Get(1))
	if err != nil {
		return err
	}

	err = mod.config.Repository.ConfigSet(ctx.Message.GuildID, scope, name, ctx.Args.Join(2))
	if err != nil {
		return err
	}

	mod.config.Reload()

	return nil
}

func (mod *module) commandGet(ctx *router.Context) error {
	scope, name, err := splitKey(ctx.Args.Get(1))
	if err != nil {
		return err
	}

	v, err := mod.config.Repository.ConfigGet(ctx.Message.GuildID, scope, name)
	if err != nil {
		return err
	}

	if v == "" {
		v = "(unset)"
	}

	return ctx.ReplyEmbed(v)
}

func (mod *module) commandDel(ctx *router.Context) error {
	scope, name, err := splitKey(ctx.Args.Get(1))
	if err != nil {
		return err
	}

	err = mod.config.Repository.ConfigDel(ctx.Message.GuildID, scope, name)
	if err != nil {
		return err
	}

	mod.config.Reload()

	return nil
}
