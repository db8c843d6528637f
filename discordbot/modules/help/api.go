// Package help provides bot module for command help message
package help

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/rolewarden/rolewarden/discordbot/bot"
	"github.com/rolewarden/rolewarden/discordbot/router"
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

	config.Router.Group("info").SetDescription("general information").On("help", "prints help", mod.commandHelp)

	return nil
}

func (mod *module) Configure(config *bot.Configuration, guild *discordgo.Guild) {

}

func (mod *module) Shutdown(config *bot.Configuration) {

}

func (mod *module) commandHelp(ctx *router.Context) error {
	max := 0

	for _, v := range ctx.Route.Router.Routes {
		if len(v.Name) > max {
			max = len(v.Name)
		}
	}

	buf := &strings.Builder{}

	buf.WriteString("```\n")

	for _, g := range ctx.Route.Router.Groups {
		buf.WriteString("\n==" + strings.ToUpper(g.Name))

		if g.Description != "" {
			buf.WriteString(" (" + g.Description + ")")
		}

		buf.WriteString("==\n")

		for _, v := range g.Routes {
			buf.WriteString(strings.Repeat(" ", max-len(v.Name)))
			buf.WriteString(v.Name)
			buf.WriteString(": ")
			buf.WriteString(v.Description)
			buf.WriteString("\n")
		}
	}

	buf.WriteString("```")

	return ctx.ReplyEmbed(buf.String())
}
