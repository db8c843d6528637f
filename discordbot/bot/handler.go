package bot

import (
	"github.com/bwmarrin/discordgo"
)

func (bot *Bot) handlerMessageCreate(session *discordgo.Session, messageCreate *discordgo.MessageCreate) {
	guild := bot.guild(messageCreate.GuildID)

	guild.m.RLock()
	prefix := guild.prefix
	guild.m.RUnlock()

	if prefix == "" {
		return
	}

	_ = bot.Router.Dispatch(session, prefix, session.State.User.ID, messageCreate.Message)
}

func (bot *Bot) handlerMessageUpdate(session *discordgo.Session, messageUpdate *discordgo.MessageUpdate) {
	msg, err := session.ChannelMessage(messageUpdate.ChannelID, messageUpdate.ID)
	if err != nil {
		bot.Log.WithError(err).Error("Getting message ", messageUpdate.ID)
		return
	}

	for _, r := range msg.Reactions {
		if r.Me {
			return
		}
	}

	guild := bot.guild(messageUpdate.GuildID)

	guild.m.RLock()
	prefix := guild.prefix
	guild.m.RUnlock()

	if prefix == "" {
		return
	}

	_ = bot.Router.Dispatch(session, prefix, session.State.User.ID, messageUpdate.Message)
}

func (bot *Bot) handlerGuildCreate(_ *discordgo.Session, guildCreate *discordgo.GuildCreate) {
	s := bot.guild(guildCreate.ID)

	bot.configure(s, guildCreate.Guild)

	for _, m := range bot.Modules {
		m.Configure(&bot.Configuration, guildCreate.Guild)
	}

	err := bot.Discord.RequestGuildMembers(guildCreate.ID, "", 0, "", false)
	if err != nil {
		bot.Log.WithError(err).Error("Requesting members ", guildCreate.ID)
	}
}

func (bot *Bot) handlerInteractionCreate(session *discordgo.Session, interactionCreate *discordgo.InteractionCreate) {
	if interactionCreate.Type != discordgo.InteractionMessageComponent {
		return
	}

	prefix, fields := SplitCustomID(interactionCreate.MessageComponentData().CustomID)

	cm, ok := bot.components[prefix]
	if !ok {
		return
	}

	err := cm.HandleComponent(&ComponentContext{
		Session:     session,
		Interaction: interactionCreate,
		Fields:      fields,
	})
	if err != nil {
		bot.Log.WithError(err).
			WithField("custom_id", interactionCreate.MessageComponentData().CustomID).
			Error("Handling component interaction")
	}
}

func (bot *Bot) handlerMemberAdd(_ *discordgo.Session, m *discordgo.GuildMemberAdd) {
	bot.guild(m.GuildID).memberSync(m.Member)
}

func (bot *Bot) handlerMemberUpdate(_ *discordgo.Session, m *discordgo.GuildMemberUpdate) {
	bot.guild(m.GuildID).memberSync(m.Member)
}

func (bot *Bot) handlerMemberRemove(_ *discordgo.Session, m *discordgo.GuildMemberRemove) {
	if m.User == nil {
		return
	}

	bot.guild(m.GuildID).memberRemove(m.User.ID)
}

func (bot *Bot) handlerMembersChunk(_ *discordgo.Session, chunk *discordgo.GuildMembersChunk) {
	guild := bot.guild(chunk.GuildID)

	for _, m := range chunk.Members {
		guild.memberSync(m)
	}

	guild.m.Lock()
	guild.chunked = true
	guild.m.Unlock()
}
