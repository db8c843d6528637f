// Package docs provides bot module for administrator-curated documentation
// and documentation-grounded question answering
package docs

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/rolewarden/rolewarden/discordbot/bot"
	"github.com/rolewarden/rolewarden/discordbot/modules/auth"
	"github.com/rolewarden/rolewarden/discordbot/router"
	"github.com/rolewarden/rolewarden/integration/assistant"
)

const answerTimeout = time.Minute

var (
	// ErrNoTitle is returned when title argument is missing
	ErrNoTitle = errors.New("title required")

	// ErrNoContent is returned when content argument is missing
	ErrNoContent = errors.New("content required")

	// ErrNoQuestion is returned when question argument is missing
	ErrNoQuestion = errors.New("question required")
)

// New provides module instance
func New() bot.Module {
	return &module{}
}

type module struct {
	config  *bot.Configuration
	history *history
}

func (mod *module) Initialize(config *bot.Configuration) error {
	mod.config = config
	mod.history = newHistory()

	config.Discord.AddHandler(mod.handlerMessageCreate)

	group := config.Router.Group("docs").SetDescription("server documentation")
	group.Set(auth.RouteConfigKey, &auth.RouteConfig{
		Permissions: discordgo.PermissionManageServer,
	})

	group.On("doc.set", "create or replace a documentation entry", mod.commandSet)
	group.On("doc.del", "delete a documentation entry", mod.commandDel)
	group.On("doc.list", "list documentation entries", mod.commandList)
	group.On("doc.show", "show a documentation entry", mod.commandShow)

	config.Router.Group("info").
		On("ask", "ask a question about the server", mod.commandAsk)

	return nil
}

func (mod *module) Configure(config *bot.Configuration, guild *discordgo.Guild) {

}

func (mod *module) Shutdown(config *bot.Configuration) {

}

func (mod *module) handlerMessageCreate(session *discordgo.Session, msg *discordgo.MessageCreate) {
	if msg.Author == nil || msg.Author.Bot {
		return
	}

	mod.history.add(msg.ChannelID, msg.Author.Username, msg.Content)
}

func (mod *module) commandSet(ctx *router.Context) error {
	title := ctx.Args.Get(1)
	if title == "" {
		return ErrNoTitle
	}

	content := ctx.Args.Join(2)
	if content == "" {
		return ErrNoContent
	}

	return mod.config.Store.UpsertDoc(ctx.Message.GuildID, title, content, ctx.Message.Author.ID)
}

func (mod *module) commandDel(ctx *router.Context) error {
	title := ctx.Args.Get(1)
	if title == "" {
		return ErrNoTitle
	}

	return mod.config.Store.DeleteDoc(ctx.Message.GuildID, title)
}

func (mod *module) commandList(ctx *router.Context) error {
	docs, err := mod.config.Store.Docs(ctx.Message.GuildID)
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		return ctx.ReplyEmbed("No documentation entries.")
	}

	titles := make([]string, 0, len(docs))
	for _, d := range docs {
		titles = append(titles, d.Title)
	}

	return ctx.ReplyEmbed(strings.Join(titles, "\n"))
}

func (mod *module) commandShow(ctx *router.Context) error {
	title := ctx.Args.Get(1)
	if title == "" {
		return ErrNoTitle
	}

	doc, err := mod.config.Store.Doc(ctx.Message.GuildID, title)
	if err != nil {
		return err
	}

	return ctx.ReplyEmbedCustom(&discordgo.MessageEmbed{
		Title:       doc.Title,
		Description: doc.Content,
	})
}

func (mod *module) commandAsk(ctx *router.Context) error {
	question := ctx.Args.Join(1)
	if question == "" {
		return ErrNoQuestion
	}

	docs, err := mod.config.Store.Docs(ctx.Message.GuildID)
	if err != nil {
		return err
	}

	buf := &strings.Builder{}

	for _, d := range docs {
		buf.WriteString("### " + d.Title + "\n")
		buf.WriteString(d.Content + "\n\n")
	}

	history := mod.history.get(ctx.Message.ChannelID)

	timeout, cancel := context.WithTimeout(context.Background(), answerTimeout)
	defer cancel()

	err = ctx.Session.ChannelTyping(ctx.Message.ChannelID)
	if err != nil {
		mod.config.Log.WithError(err).Error("Sending typing indicator")
	}

	answer, err := mod.config.Assistant.Answer(
		timeout,
		buf.String(),
		history,
		ctx.Message.Author.Username,
		question,
	)
	if err == assistant.ErrNotConfigured {
		return ctx.ReplyEmbed("The assistant is not available on this server.")
	}

	if err != nil {
		mod.config.Log.WithError(err).Error("Answering question")

		return ctx.ReplyEmbed("I could not come up with an answer right now, try again later.")
	}

	_, err = ctx.Reply(answer)

	return err
}
