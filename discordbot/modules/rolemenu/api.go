// Package rolemenu provides bot module for button-driven self-service role
// menus and role block rules
package rolemenu

import (
	"errors"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/rolewarden/rolewarden/discordbot/bot"
	"github.com/rolewarden/rolewarden/discordbot/modules/auth"
	"github.com/rolewarden/rolewarden/discordbot/router"
	"github.com/rolewarden/rolewarden/discordbot/store"
)

const (
	componentPrefix = "rolemenu"
	maxOptions      = 25
	buttonsPerRow   = 5
)

var (
	// ErrNoRoles is returned when menu creation receives no role arguments
	ErrNoRoles = errors.New("at least one role required")

	// ErrTooManyRoles is returned when menu creation exceeds the button limit
	ErrTooManyRoles = errors.New("a menu can hold at most 25 roles")

	// ErrNoMessageID is returned when message id argument is missing
	ErrNoMessageID = errors.New("message id required")

	// ErrTwoRoles is returned when block commands do not receive a role pair
	ErrTwoRoles = errors.New("two roles required")
)

// New provides module instance
func New() bot.Module {
	return &module{}
}

type module struct {
	config *bot.Configuration
	locks  lockMap
}

func (mod *module) Initialize(config *bot.Configuration) error {
	mod.config = config
	mod.locks.init()

	group := config.Router.Group("roles").SetDescription("role menus")
	group.Set(auth.RouteConfigKey, &auth.RouteConfig{
		Permissions: discordgo.PermissionManageRoles,
	})

	group.On("role.menu", "post a role menu: [exclusive] role[=label]...", mod.commandMenu)
	group.On("role.remove", "remove a role menu by message id", mod.commandRemove)
	group.On("role.list", "list role menus", mod.commandList)
	group.On("role.block", "forbid second role for holders of first", mod.commandBlock)
	group.On("role.unblock", "remove a block rule", mod.commandUnblock)
	group.On("role.blocks", "list block rules, optionally for one role", mod.commandBlocks)

	return nil
}

func (mod *module) Configure(config *bot.Configuration, guild *discordgo.Guild) {

}

func (mod *module) Shutdown(config *bot.Configuration) {

}

// parseRoleID accepts both raw ids and role mentions
func parseRoleID(s string) string {
	if strings.HasPrefix(s, "<@&") && strings.HasSuffix(s, ">") {
		return s[3 : len(s)-1]
	}

	return s
}

func (mod *module) parseOption(guildID, arg string) store.Option {
	roleID := arg
	label := ""

	if i := strings.Index(arg, "="); i >= 0 {
		roleID, label = arg[:i], arg[i+1:]
	}

	roleID = parseRoleID(roleID)

	if label == "" {
		label = mod.config.RoleName(guildID, roleID)
	}

	return store.Option{RoleID: roleID, Label: label}
}

func buttonRows(options []store.Option) []discordgo.MessageComponent {
	var buttons []discordgo.MessageComponent

	for _, o := range options {
		buttons = append(buttons, discordgo.Button{
			Label:    o.Label,
			Style:    discordgo.SecondaryButton,
			CustomID: componentPrefix + ":" + o.RoleID,
		})
	}

	var rows []discordgo.MessageComponent

	for len(buttons) > 0 {
		n := buttonsPerRow
		if len(buttons) < n {
			n = len(buttons)
		}

		rows = append(rows, discordgo.ActionsRow{Components: buttons[:n]})
		buttons = buttons[n:]
	}

	return rows
}

func (mod *module) commandMenu(ctx *router.Context) error {
	args := []string(ctx.Args)[1:]

	exclusive := false
	if len(args) > 0 && args[0] == "exclusive" {
		exclusive = true
		args = args[1:]
	}

	if len(args) == 0 {
		return ErrNoRoles
	}

	if len(args) > maxOptions {
		return ErrTooManyRoles
	}

	menu := &store.Menu{
		GuildID:   ctx.Message.GuildID,
		ChannelID: ctx.Message.ChannelID,
		Exclusive: exclusive,
		CreatedBy: ctx.Message.Author.ID,
	}

	for _, a := range args {
		menu.Options = append(menu.Options, mod.parseOption(ctx.Message.GuildID, a))
	}

	content := "Pick your roles:"
	if exclusive {
		content = "Pick one role:"
	}

	msg, err := ctx.Session.ChannelMessageSendComplex(ctx.Message.ChannelID, &discordgo.MessageSend{
		Content:    content,
		Components: buttonRows(menu.Options),
	})
	if err != nil {
		return err
	}

	menu.MessageID = msg.ID

	err = mod.config.Store.CreateMenu(menu)
	if err != nil {
		delerr := ctx.Session.ChannelMessageDelete(msg.ChannelID, msg.ID)
		if delerr != nil {
			mod.config.Log.WithError(delerr).Error("Removing orphaned menu message ", msg.ID)
		}

		return err
	}

	return nil
}

func (mod *module) commandRemove(ctx *router.Context) error {
	messageID := ctx.Args.Get(1)
	if messageID == "" {
		return ErrNoMessageID
	}

	menu, err := mod.config.Store.MenuByMessage(messageID)
	if err != nil {
		return err
	}

	err = mod.config.Store.DeleteMenu(ctx.Message.GuildID, messageID)
	if err != nil {
		return err
	}

	err = ctx.Session.ChannelMessageDelete(menu.ChannelID, menu.MessageID)
	if err != nil {
		mod.config.Log.WithError(err).Error("Removing menu message ", menu.MessageID)
	}

	return nil
}

func (mod *module) commandList(ctx *router.Context) error {
	menus, err := mod.config.Store.Menus(ctx.Message.GuildID)
	if err != nil {
		return err
	}

	if len(menus) == 0 {
		return ctx.ReplyEmbed("No role menus.")
	}

	buf := &strings.Builder{}

	for _, m := range menus {
		buf.WriteString(m.MessageID)

		if m.Exclusive {
			buf.WriteString(" (exclusive)")
		}

		buf.WriteString(":")

		for _, o := range m.Options {
			buf.WriteString(" " + o.Label)
		}

		buf.WriteString("\n")
	}

	return ctx.ReplyEmbed(buf.String())
}

func (mod *module) blockPair(ctx *router.Context) (blocking, blocked string, err error) {
	blocking = parseRoleID(ctx.Args.Get(1))
	blocked = parseRoleID(ctx.Args.Get(2))

	if blocking == "" || blocked == "" {
		return "", "", ErrTwoRoles
	}

	return blocking, blocked, nil
}

func (mod *module) commandBlock(ctx *router.Context) error {
	blocking, blocked, err := mod.blockPair(ctx)
	if err != nil {
		return err
	}

	return mod.config.Store.AddBlock(ctx.Message.GuildID, blocking, blocked)
}

func (mod *module) commandUnblock(ctx *router.Context) error {
	blocking, blocked, err := mod.blockPair(ctx)
	if err != nil {
		return err
	}

	return mod.config.Store.RemoveBlock(ctx.Message.GuildID, blocking, blocked)
}

func (mod *module) commandBlocks(ctx *router.Context) error {
	guildID := ctx.Message.GuildID

	var rules []store.BlockRule

	var err error

	if roleID := parseRoleID(ctx.Args.Get(1)); roleID != "" {
		rules, err = mod.config.Store.BlocksByBlocking(guildID, roleID)
		if err != nil {
			return err
		}

		var blocked []store.BlockRule

		blocked, err = mod.config.Store.BlocksByBlocked(guildID, roleID)
		if err != nil {
			return err
		}

		rules = append(rules, blocked...)
	} else {
		rules, err = mod.config.Store.Blocks(guildID)
		if err != nil {
			return err
		}
	}

	if len(rules) == 0 {
		return ctx.ReplyEmbed("No block rules.")
	}

	buf := &strings.Builder{}

	for _, r := range rules {
		buf.WriteString(mod.config.RoleName(r.GuildID, r.Blocking))
		buf.WriteString(" blocks ")
		buf.WriteString(mod.config.RoleName(r.GuildID, r.Blocked))
		buf.WriteString("\n")
	}

	return ctx.ReplyEmbed(buf.String())
}
