package router

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func message(content string) *discordgo.Message {
	return &discordgo.Message{
		Content: content,
		Author:  &discordgo.User{ID: "author"},
	}
}

func TestDispatchMatchesRoute(t *testing.T) {
	r := NewRouter()

	var got Args

	r.On("test", "greet", "", func(ctx *Context) error {
		got = ctx.Args

		return nil
	})

	err := r.Dispatch(nil, "!", "bot", message("!greet alice bob"))
	require.NoError(t, err)
	assert.Equal(t, Args{"greet", "alice", "bob"}, got)
}

func TestDispatchQuotedArgs(t *testing.T) {
	r := NewRouter()

	var got Args

	r.On("test", "greet", "", func(ctx *Context) error {
		got = ctx.Args

		return nil
	})

	err := r.Dispatch(nil, "!", "bot", message(`!greet "alice bob"`))
	require.NoError(t, err)
	assert.Equal(t, Args{"greet", "alice bob"}, got)
}

func TestDispatchNotMatched(t *testing.T) {
	r := NewRouter()

	r.On("test", "greet", "", func(ctx *Context) error {
		return nil
	})

	err := r.Dispatch(nil, "!", "bot", message("!unknown"))
	assert.Equal(t, ErrNotMatched, err)
}

func TestDispatchIgnoresOwnAndUnprefixed(t *testing.T) {
	r := NewRouter()

	called := false

	r.On("test", "greet", "", func(ctx *Context) error {
		called = true

		return nil
	})

	msg := message("!greet")
	msg.Author.ID = "bot"

	require.NoError(t, r.Dispatch(nil, "!", "bot", msg))
	require.NoError(t, r.Dispatch(nil, "!", "bot", message("greet")))
	assert.False(t, called)
}

func TestMiddlewareOrder(t *testing.T) {
	r := NewRouter()

	var order []string

	tag := func(name string) MiddlewareFunc {
		return func(handler HandlerFunc) HandlerFunc {
			return func(ctx *Context) error {
				order = append(order, name)

				return handler(ctx)
			}
		}
	}

	r.AppendMiddleware(tag("router"))

	group := r.Group("test")
	group.Middleware = append(group.Middleware, tag("group"))

	group.On("greet", "", func(ctx *Context) error {
		order = append(order, "handler")

		return nil
	}).Middleware = []MiddlewareFunc{tag("route")}

	err := r.Dispatch(nil, "!", "bot", message("!greet"))
	require.NoError(t, err)
	assert.Equal(t, []string{"router", "group", "route", "handler"}, order)
}

func TestRouteDataLookup(t *testing.T) {
	r := NewRouter()

	group := r.Group("test")
	group.Set("k", "group-value")

	route := group.On("greet", "", func(ctx *Context) error {
		return nil
	})

	assert.Equal(t, "group-value", route.Get("k"))

	route.Set("k", "route-value")
	assert.Equal(t, "route-value", route.Get("k"))
}

func TestArgs(t *testing.T) {
	args := Args{"cmd", "a", "b"}

	assert.Equal(t, "a", args.Get(1))
	assert.Equal(t, "", args.Get(5))
	assert.Equal(t, "a b", args.Join(1))
	assert.Equal(t, "", args.Join(5))
}
