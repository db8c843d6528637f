// Package bot provides main bot implementation
package bot

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	redis "github.com/go-redis/redis/v7"
	"github.com/sirupsen/logrus"

	"github.com/rolewarden/rolewarden/discordbot/config"
	"github.com/rolewarden/rolewarden/discordbot/model"
	"github.com/rolewarden/rolewarden/discordbot/router"
	"github.com/rolewarden/rolewarden/discordbot/store"
	"github.com/rolewarden/rolewarden/integration/assistant"
)

// Options provide configuration options for bot
type Options struct {
	Discord   *discordgo.Session
	Client    *redis.Client
	Config    *config.Root
	Store     *store.Store
	Assistant *assistant.Client
	Log       *logrus.Logger
	Modules   []Module
}

// Configuration store configuration for bot
type Configuration struct {
	Discord    *discordgo.Session
	Client     *redis.Client
	Config     *config.Root
	Store      *store.Store
	Assistant  *assistant.Client
	Log        *logrus.Logger
	Router     *router.Router
	Repository *model.Repository
	Modules    []Module
	bot        *Bot
}

// Module interface incapsulates methods for distinct functionality
type Module interface {
	Initialize(bot *Configuration) error
	Configure(bot *Configuration, server *discordgo.Guild)
	Shutdown(bot *Configuration)
}

// ComponentModule interface marks modules handling message component
// interactions; custom ids are namespaced as "<prefix>:<fields...>"
type ComponentModule interface {
	ComponentPrefix() string
	HandleComponent(ctx *ComponentContext) error
}

// ComponentContext carries a single component interaction: the acting member,
// the message the component lives on, and the custom id fields
type ComponentContext struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
	Fields      []string
}

// Respond replies to the interaction with an ephemeral message
func (ctx *ComponentContext) Respond(content string) error {
	return ctx.Session.InteractionRespond(ctx.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// Prefix returns command prefix for given guild
func (conf *Configuration) Prefix(guildID string) string {
	guild := conf.bot.guild(guildID)

	guild.m.RLock()
	defer guild.m.RUnlock()

	return guild.prefix
}

// HumanCount returns number of non-bot members known for given guild; ok is
// false until the member list has been received
func (conf *Configuration) HumanCount(guildID string) (n int, ok bool) {
	guild := conf.bot.guild(guildID)

	guild.m.RLock()
	defer guild.m.RUnlock()

	if !guild.chunked {
		return 0, false
	}

	for _, isBot := range guild.members {
		if !isBot {
			n++
		}
	}

	return n, true
}

// RoleName resolves role display name, falling back to the raw id
func (conf *Configuration) RoleName(guildID, roleID string) string {
	role, err := conf.Discord.State.Role(guildID, roleID)
	if err != nil || role == nil {
		return roleID
	}

	return role.Name
}

func containsString(s string, ss ...string) bool {
	for _, ri := range ss {
		if ri == s {
			return true
		}
	}

	return false
}

func (conf *Configuration) ensureMember(msg *discordgo.Message) (*discordgo.Member, error) {
	if msg.Member != nil {
		return msg.Member, nil
	}

	var err error

	msg.Member, err = conf.Discord.GuildMember(msg.GuildID, msg.Author.ID)
	if err != nil {
		conf.Log.WithError(err).Error("Loading member ", msg.GuildID, " ", msg.Author.ID)

		return nil, err
	}

	return msg.Member, nil
}

// AuthorHasPermission returns true if message author has administrative or
// matching permissions
func (conf *Configuration) AuthorHasPermission(
	msg *discordgo.Message,
	permissions int64,
	roleIDs, roleNames []string,
) bool {
	member, err := conf.ensureMember(msg)
	if err != nil {
		return false
	}

	return conf.HasPermission(member, msg.GuildID, msg.Author.ID, permissions, roleIDs, roleNames)
}

// HasPermission returns true if given member has administrative or matching
// permissions
func (conf *Configuration) HasPermission(
	member *discordgo.Member,
	guildID, userID string,
	permissions int64,
	roleIDs, roleNames []string,
) bool {
	guild, _ := conf.Discord.Guild(guildID)
	if guild != nil && guild.OwnerID == userID {
		return true
	}

	admrole, _ := conf.Repository.ConfigGet(guildID, "auth", "admin.role")

	var err error

	if member == nil {
		member, err = conf.Discord.GuildMember(guildID, userID)
		if err != nil {
			conf.Log.WithError(err).Error("Loading member ", guildID, " ", userID)

			return false
		}
	}

	for _, r := range member.Roles {
		var role *discordgo.Role

		role, err = conf.Discord.State.Role(guildID, r)
		if err != nil {
			continue
		}

		if evalPermissions(role, permissions, r, admrole, roleIDs, roleNames) {
			return true
		}
	}

	return false
}

func evalPermissions(
	role *discordgo.Role,
	permissions int64,
	r, admrole string,
	roleIDs, roleNames []string,
) bool {
	if permissions != 0 && role.Permissions&permissions != 0 {
		return true
	}

	if permissions&discordgo.PermissionAdministrator != 0 && r == admrole {
		return true
	}

	if containsString(r, roleIDs...) || containsString(role.Name, roleNames...) {
		return true
	}

	return false
}

// Reload provides config reloading interface to modules
func (conf *Configuration) Reload() {
	conf.bot.Reload()
}

// NewBot provides new instance of bot
func NewBot(options Options) (*Bot, error) {
	if options.Log == nil {
		options.Log = logrus.New()
	}

	components := make(map[string]ComponentModule)

	for _, m := range options.Modules {
		cm, ok := m.(ComponentModule)
		if ok {
			components[cm.ComponentPrefix()] = cm
		}
	}

	bot := &Bot{
		Configuration: Configuration{
			Discord:    options.Discord,
			Client:     options.Client,
			Config:     options.Config,
			Store:      options.Store,
			Assistant:  options.Assistant,
			Log:        options.Log,
			Router:     router.NewRouter(),
			Repository: model.NewRepository(options.Client),
			Modules:    options.Modules,
		},
		servers:    make(map[string]*server),
		components: components,
	}

	bot.Configuration.bot = bot

	for _, m := range bot.Modules {
		err := m.Initialize(&bot.Configuration)
		if err != nil {
			return nil, err
		}
	}

	bot.Discord.AddHandler(bot.handlerGuildCreate)
	bot.Discord.AddHandler(bot.handlerMessageCreate)
	bot.Discord.AddHandler(bot.handlerMessageUpdate)
	bot.Discord.AddHandler(bot.handlerInteractionCreate)
	bot.Discord.AddHandler(bot.handlerMemberAdd)
	bot.Discord.AddHandler(bot.handlerMemberUpdate)
	bot.Discord.AddHandler(bot.handlerMemberRemove)
	bot.Discord.AddHandler(bot.handlerMembersChunk)

	return bot, nil
}

// SplitCustomID splits a component custom id into its namespace prefix and
// remaining fields
func SplitCustomID(customID string) (prefix string, fields []string) {
	parts := strings.Split(customID, ":")

	return parts[0], parts[1:]
}
