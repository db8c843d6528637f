package rolemenu

import (
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rolewarden/rolewarden/discordbot/policy"
	"github.com/rolewarden/rolewarden/discordbot/store"
)

type fakeMutator struct {
	m     sync.Mutex
	roles map[string]bool

	failAdd    error
	failRemove map[string]error

	ops []string
}

func newFakeMutator(roles ...string) *fakeMutator {
	f := &fakeMutator{
		roles:      make(map[string]bool),
		failRemove: make(map[string]error),
	}

	for _, r := range roles {
		f.roles[r] = true
	}

	return f
}

func (f *fakeMutator) GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error {
	f.m.Lock()
	defer f.m.Unlock()

	if f.failAdd != nil {
		return f.failAdd
	}

	f.roles[roleID] = true
	f.ops = append(f.ops, "add:"+roleID)

	return nil
}

func (f *fakeMutator) GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error {
	f.m.Lock()
	defer f.m.Unlock()

	if err := f.failRemove[roleID]; err != nil {
		return err
	}

	delete(f.roles, roleID)
	f.ops = append(f.ops, "remove:"+roleID)

	return nil
}

func (f *fakeMutator) held() (roles []string) {
	f.m.Lock()
	defer f.m.Unlock()

	for r := range f.roles {
		roles = append(roles, r)
	}

	return
}

func identity(roleID string) string {
	return roleID
}

func TestPressRemove(t *testing.T) {
	mut := newFakeMutator("red")

	msg, err := press(mut, identity, "g", "u", "red", policy.Decision{Action: policy.Remove})
	require.NoError(t, err)
	assert.Equal(t, "Removed red.", msg)
	assert.False(t, mut.roles["red"])
}

func TestPressDenyDoesNotMutate(t *testing.T) {
	mut := newFakeMutator("staff")

	msg, err := press(mut, identity, "g", "u", "guest", policy.Decision{
		Action:   policy.Deny,
		Blocking: "staff",
	})
	require.NoError(t, err)
	assert.Equal(t, "You cannot take guest while you have staff.", msg)
	assert.Empty(t, mut.ops)
	assert.True(t, mut.roles["staff"])
}

func TestPressGrantRemovesSiblingsFirst(t *testing.T) {
	mut := newFakeMutator("red", "green")

	msg, err := press(mut, identity, "g", "u", "blue", policy.Decision{
		Action:   policy.Grant,
		Siblings: []string{"red", "green"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Added blue. Removed red, green.", msg)
	assert.Equal(t, []string{"remove:red", "remove:green", "add:blue"}, mut.ops)
	assert.True(t, mut.roles["blue"])
	assert.False(t, mut.roles["red"])
	assert.False(t, mut.roles["green"])
}

func TestPressSiblingFailureDoesNotAbortAdd(t *testing.T) {
	mut := newFakeMutator("red", "green")
	mut.failRemove["red"] = errors.New("boom")

	msg, err := press(mut, identity, "g", "u", "blue", policy.Decision{
		Action:   policy.Grant,
		Siblings: []string{"red", "green"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Added blue. Removed green. Could not remove red.", msg)
	assert.True(t, mut.roles["blue"])
	assert.True(t, mut.roles["red"])
}

func TestPressAddFailure(t *testing.T) {
	mut := newFakeMutator()
	mut.failAdd = errors.New("boom")

	_, err := press(mut, identity, "g", "u", "blue", policy.Decision{Action: policy.Grant})
	assert.EqualError(t, err, "boom")
}

func TestPressMissingPermissions(t *testing.T) {
	mut := newFakeMutator()
	mut.failAdd = &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusForbidden},
		Message: &discordgo.APIErrorMessage{
			Code: discordgo.ErrCodeMissingPermissions,
		},
	}

	_, err := press(mut, identity, "g", "u", "blue", policy.Decision{Action: policy.Grant})
	assert.Equal(t, ErrMissingPermissions, err)
}

// Two members racing on the same exclusive menu may interleave, but a single
// member must not: with evaluation and application serialized per user, the
// member ends up with exactly one of the menu roles.
func TestConcurrentPressesExclusiveMenu(t *testing.T) {
	menu := &store.Menu{
		Exclusive: true,
		Options: []store.Option{
			{RoleID: "red"},
			{RoleID: "green"},
			{RoleID: "blue"},
		},
	}

	mut := newFakeMutator()

	var locks lockMap

	locks.init()

	requests := []string{"red", "green", "blue", "red", "green", "blue"}

	var wg sync.WaitGroup

	for _, requested := range requests {
		wg.Add(1)

		go func(requested string) {
			defer wg.Done()

			unlock := locks.lock("g/u")
			defer unlock()

			decision := policy.Evaluate(mut.held(), menu, requested, nil)

			_, err := press(mut, identity, "g", "u", requested, decision)
			assert.NoError(t, err)
		}(requested)
	}

	wg.Wait()

	count := 0

	for _, o := range menu.Options {
		if mut.roles[o.RoleID] {
			count++
		}
	}

	assert.LessOrEqual(t, count, 1)
}

func TestLockMapSerializesSameKey(t *testing.T) {
	var locks lockMap

	locks.init()

	active := 0
	max := 0

	var m sync.Mutex

	var wg sync.WaitGroup

	for i := 0; i < 32; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			unlock := locks.lock("g/u")
			defer unlock()

			m.Lock()
			active++
			if active > max {
				max = active
			}
			m.Unlock()

			m.Lock()
			active--
			m.Unlock()
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, max)
}
