package bot

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Bot is a main implementation of bot
type Bot struct {
	Configuration
	m          sync.RWMutex
	servers    map[string]*server
	components map[string]ComponentModule
}

// Serve starts bot serving loop and blocks until exit
func (bot *Bot) Serve() error {
	err := bot.Discord.Open()
	if err != nil {
		return err
	}

	bot.Log.Info("Running")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	for _, m := range bot.Modules {
		m.Shutdown(&bot.Configuration)
	}

	return bot.Discord.Close()
}

// Reload performs reload of all configuration values in configured modules
func (bot *Bot) Reload() {
	bot.m.RLock()

	var ids []string

	for k := range bot.servers {
		ids = append(ids, k)
	}

	bot.m.RUnlock()

	for _, k := range ids {
		guild, err := bot.Discord.Guild(k)
		if err != nil {
			bot.Log.WithError(err).Error("Getting guild ", k)
			continue
		}

		bot.configure(bot.guild(guild.ID), guild)

		for _, m := range bot.Modules {
			m.Configure(&bot.Configuration, guild)
		}
	}
}
