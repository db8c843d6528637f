// Package membercount provides bot module keeping a voice channel name in
// sync with the guild human member count
package membercount

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/rolewarden/rolewarden/discordbot/bot"
	"github.com/rolewarden/rolewarden/discordbot/router"
)

const (
	nameFormat      = "Members: %d"
	refreshInterval = 15 * time.Minute
	rechunkInterval = time.Hour
)

// New provides module instance
func New() bot.Module {
	return &module{}
}

type module struct {
	config *bot.Configuration
	done   chan struct{}

	m        sync.Mutex
	lastName map[string]string
}

func (mod *module) Initialize(config *bot.Configuration) error {
	mod.config = config
	mod.done = make(chan struct{})
	mod.lastName = make(map[string]string)

	config.Router.Group("members").SetDescription("member counter").
		On("members.update", "refresh the member count channel", mod.commandUpdate)

	go mod.start()

	return nil
}

func (mod *module) Configure(config *bot.Configuration, guild *discordgo.Guild) {

}

func (mod *module) Shutdown(config *bot.Configuration) {
	close(mod.done)
}

// refresh renames the configured channel when the known human count changed;
// channel renames are heavily rate limited, so identical names are skipped
func (mod *module) refresh(guildID string) error {
	conf, err := mod.config.Store.Config(guildID)
	if err != nil {
		return err
	}

	if conf.MemberCountChannelID == "" {
		return nil
	}

	n, ok := mod.config.HumanCount(guildID)
	if !ok {
		return nil
	}

	name := fmt.Sprintf(nameFormat, n)

	mod.m.Lock()
	last := mod.lastName[guildID]
	mod.m.Unlock()

	if name == last {
		return nil
	}

	_, err = mod.config.Discord.ChannelEdit(conf.MemberCountChannelID, &discordgo.ChannelEdit{
		Name: name,
	})
	if err != nil {
		return err
	}

	mod.m.Lock()
	mod.lastName[guildID] = name
	mod.m.Unlock()

	return nil
}

func (mod *module) refreshAll() {
	for _, guild := range mod.config.Discord.State.Guilds {
		err := mod.refresh(guild.ID)
		if err != nil {
			mod.config.Log.WithError(err).Error("Refreshing member count ", guild.ID)
		}
	}
}

// rechunkAll requests a fresh member list for every guild, guarding against
// missed gateway member events
func (mod *module) rechunkAll() {
	for _, guild := range mod.config.Discord.State.Guilds {
		err := mod.config.Discord.RequestGuildMembers(guild.ID, "", 0, "", false)
		if err != nil {
			mod.config.Log.WithError(err).Error("Requesting members ", guild.ID)
		}
	}
}

func (mod *module) start() {
	refresh := time.NewTicker(refreshInterval)
	defer refresh.Stop()

	rechunk := time.NewTicker(rechunkInterval)
	defer rechunk.Stop()

	for {
		select {
		case <-mod.done:
			return
		case <-refresh.C:
			mod.refreshAll()
		case <-rechunk.C:
			mod.rechunkAll()
		}
	}
}

func (mod *module) commandUpdate(ctx *router.Context) error {
	return mod.refresh(ctx.Message.GuildID)
}
