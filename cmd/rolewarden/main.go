package main

import (
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/go-redis/redis/v7"
	flags "github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/rolewarden/rolewarden/discordbot/bot"
	yamlConfig "github.com/rolewarden/rolewarden/discordbot/config"
	"github.com/rolewarden/rolewarden/discordbot/modules/auth"
	"github.com/rolewarden/rolewarden/discordbot/modules/cleanup"
	"github.com/rolewarden/rolewarden/discordbot/modules/config"
	"github.com/rolewarden/rolewarden/discordbot/modules/docs"
	"github.com/rolewarden/rolewarden/discordbot/modules/guildconfig"
	"github.com/rolewarden/rolewarden/discordbot/modules/help"
	"github.com/rolewarden/rolewarden/discordbot/modules/join"
	"github.com/rolewarden/rolewarden/discordbot/modules/leave"
	"github.com/rolewarden/rolewarden/discordbot/modules/membercount"
	"github.com/rolewarden/rolewarden/discordbot/modules/reply"
	"github.com/rolewarden/rolewarden/discordbot/modules/rolemenu"
	"github.com/rolewarden/rolewarden/discordbot/store"
	"github.com/rolewarden/rolewarden/integration/assistant"
)

var opts struct {
	Config string `short:"c" long:"config" default:"config.yml" description:"Configuration file"`
}

func main() {
	log := logrus.New()

	_, err := flags.Parse(&opts)
	if err != nil {
		if t, ok := err.(*flags.Error); ok && t.Type == flags.ErrHelp {
			os.Exit(0)
		}

		os.Exit(1)
	}

	configRoot, err := yamlConfig.Load(opts.Config)
	if err != nil {
		log.Fatal(err)
	}

	if configRoot.Private.Token == "" {
		log.Fatal("Missing token in config")
	}

	dg, err := discordgo.New("Bot " + configRoot.Private.Token)
	if err != nil {
		log.Fatal(err)
	}

	dg.Identify.Intents = discordgo.IntentsAll

	client := redis.NewClient(&redis.Options{
		Addr:     configRoot.Private.Redis.Address,
		Password: configRoot.Private.Redis.Password,
		DB:       configRoot.Private.Redis.DB,
	})

	db, err := store.Open(configRoot.Private.Postgres.DSN)
	if err != nil {
		log.Fatal(err)
	}

	defer func() {
		err = db.Close()
		if err != nil {
			log.Error(err)
		}
	}()

	b, err := bot.NewBot(bot.Options{
		Discord:   dg,
		Client:    client,
		Config:    configRoot,
		Store:     db,
		Assistant: assistant.New(configRoot.Private.Assistant.Token, configRoot.Private.Assistant.Model),
		Log:       log,
		Modules: []bot.Module{
			cleanup.New(),
			reply.New(),
			auth.New(),
			help.New(),
			config.New(),
			guildconfig.New(),
			rolemenu.New(),
			join.New(),
			membercount.New(),
			docs.New(),
			leave.New(),
		},
	})

	if err != nil {
		log.Fatal(err)
	}

	err = b.Serve()
	if err != nil {
		log.Fatal(err)
	}
}
