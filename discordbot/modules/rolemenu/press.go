package rolemenu

import (
	"errors"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/rolewarden/rolewarden/discordbot/bot"
	"github.com/rolewarden/rolewarden/discordbot/policy"
	"github.com/rolewarden/rolewarden/discordbot/store"
)

// ErrMissingPermissions is returned when the bot role sits below the managed
// role or lacks the manage roles permission
var ErrMissingPermissions = errors.New("i am not allowed to manage that role")

// lockMap serializes role evaluation and application per (guild, user); two
// concurrent presses by the same member never interleave between reading the
// member roles and writing them back
type lockMap struct {
	m     sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *lockMap) init() {
	l.locks = make(map[string]*sync.Mutex)
}

func (l *lockMap) lock(key string) func() {
	l.m.Lock()

	lock, ok := l.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[key] = lock
	}

	l.m.Unlock()

	lock.Lock()

	return lock.Unlock
}

// roleMutator is the part of the discord session used to apply decisions
type roleMutator interface {
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error
}

func friendly(err error) error {
	var rerr *discordgo.RESTError

	if errors.As(err, &rerr) && rerr.Message != nil && rerr.Message.Code == discordgo.ErrCodeMissingPermissions {
		return ErrMissingPermissions
	}

	return err
}

// press applies an evaluated decision to the member and renders the outcome.
// Exclusive siblings are removed before the requested role is added; a sibling
// removal failure is reported but does not abort the addition.
func press(
	mut roleMutator,
	nameOf func(string) string,
	guildID, userID, requested string,
	decision policy.Decision,
) (string, error) {
	switch decision.Action {
	case policy.Remove:
		err := mut.GuildMemberRoleRemove(guildID, userID, requested)
		if err != nil {
			return "", friendly(err)
		}

		return "Removed " + nameOf(requested) + ".", nil
	case policy.Deny:
		return "You cannot take " + nameOf(requested) +
			" while you have " + nameOf(decision.Blocking) + ".", nil
	}

	var failed []string

	for _, sibling := range decision.Siblings {
		err := mut.GuildMemberRoleRemove(guildID, userID, sibling)
		if err != nil {
			failed = append(failed, nameOf(sibling))
		}
	}

	err := mut.GuildMemberRoleAdd(guildID, userID, requested)
	if err != nil {
		return "", friendly(err)
	}

	buf := &strings.Builder{}

	buf.WriteString("Added " + nameOf(requested) + ".")

	if len(decision.Siblings) > len(failed) {
		var removed []string

		for _, sibling := range decision.Siblings {
			name := nameOf(sibling)
			if !contains(failed, name) {
				removed = append(removed, name)
			}
		}

		buf.WriteString(" Removed " + strings.Join(removed, ", ") + ".")
	}

	if len(failed) > 0 {
		buf.WriteString(" Could not remove " + strings.Join(failed, ", ") + ".")
	}

	return buf.String(), nil
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}

	return false
}

// ComponentPrefix returns custom id namespace handled by this module
func (mod *module) ComponentPrefix() string {
	return componentPrefix
}

// HandleComponent processes a single role button press
func (mod *module) HandleComponent(ctx *bot.ComponentContext) error {
	if len(ctx.Fields) == 0 || ctx.Interaction.Member == nil {
		return errors.New("malformed role button interaction")
	}

	guildID := ctx.Interaction.GuildID
	userID := ctx.Interaction.Member.User.ID
	requested := ctx.Fields[0]

	unlock := mod.locks.lock(guildID + "/" + userID)
	defer unlock()

	menu, err := mod.config.Store.MenuByMessage(ctx.Interaction.Message.ID)
	if err == store.ErrNotFound {
		return ctx.Respond("This role menu is no longer active.")
	}

	if err != nil {
		return err
	}

	if menu.Option(requested) == nil {
		return ctx.Respond("That role is not part of this menu anymore.")
	}

	blocks, err := mod.config.Store.Blocks(guildID)
	if err != nil {
		return err
	}

	// interaction member state can be stale after a previous press
	member, err := ctx.Session.GuildMember(guildID, userID)
	if err != nil {
		return err
	}

	decision := policy.Evaluate(member.Roles, menu, requested, blocks)

	outcome, err := press(ctx.Session, mod.nameOf(guildID), guildID, userID, requested, decision)
	if err == ErrMissingPermissions {
		return ctx.Respond("I am not allowed to manage that role, ask an administrator.")
	}

	if err != nil {
		return err
	}

	return ctx.Respond(outcome)
}

func (mod *module) nameOf(guildID string) func(string) string {
	return func(roleID string) string {
		return mod.config.RoleName(guildID, roleID)
	}
}
