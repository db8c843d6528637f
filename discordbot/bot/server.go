package bot

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

type server struct {
	prefix  string
	members map[string]bool
	chunked bool
	m       sync.RWMutex
}

func (bot *Bot) guild(guildID string) (guild *server) {
	bot.m.RLock()

	guild, ok := bot.servers[guildID]

	bot.m.RUnlock()

	if !ok {
		guild = &server{
			members: make(map[string]bool),
		}

		bot.m.Lock()

		if known, ok := bot.servers[guildID]; ok {
			guild = known
		} else {
			bot.servers[guildID] = guild
		}

		bot.m.Unlock()
	}

	return
}

func (bot *Bot) configure(s *server, guild *discordgo.Guild) {
	prefix, err := bot.Repository.ConfigGet(guild.ID, "global", "prefix")
	if err != nil {
		bot.Log.WithError(err).Error("Getting server prefix ", guild.ID)
		return
	}

	if prefix == "" {
		for _, srv := range bot.Config.Servers {
			if srv.GuildID == guild.ID {
				prefix = srv.Prefix
			}
		}
	}

	if prefix == "" {
		prefix = bot.Config.Private.Prefix
	}

	if prefix == "" {
		prefix = "!"
	}

	s.m.Lock()
	s.prefix = prefix
	s.m.Unlock()

	err = bot.Repository.ConfigSet(guild.ID, "global", "prefix", prefix)
	if err != nil {
		bot.Log.WithError(err).Error("Saving server prefix ", guild.ID)
	}
}

func (srv *server) memberSync(m *discordgo.Member) {
	if m.User == nil {
		return
	}

	srv.m.Lock()
	srv.members[m.User.ID] = m.User.Bot
	srv.m.Unlock()
}

func (srv *server) memberRemove(userID string) {
	srv.m.Lock()
	delete(srv.members, userID)
	srv.m.Unlock()
}
