package policy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rolewarden/rolewarden/discordbot/store"
)

func menu(exclusive bool, roles ...string) *store.Menu {
	m := &store.Menu{Exclusive: exclusive}

	for i, r := range roles {
		m.Options = append(m.Options, store.Option{RoleID: r, Position: i})
	}

	return m
}

func blocks(pairs ...[2]string) (rules []store.BlockRule) {
	for i, p := range pairs {
		rules = append(rules, store.BlockRule{
			ID:       int64(i + 1),
			Blocking: p[0],
			Blocked:  p[1],
		})
	}

	return
}

func TestEvaluateGrantWithoutRules(t *testing.T) {
	d := Evaluate([]string{"a"}, menu(false, "b", "c"), "b", nil)
	require.Equal(t, Grant, d.Action)
	require.Empty(t, d.Siblings)
}

func TestEvaluateToggleRemove(t *testing.T) {
	d := Evaluate([]string{"a", "b"}, menu(false, "b", "c"), "b", nil)
	require.Equal(t, Remove, d.Action)
}

func TestEvaluateToggleRemoveExclusive(t *testing.T) {
	d := Evaluate([]string{"b"}, menu(true, "b", "c"), "b", nil)
	require.Equal(t, Remove, d.Action)
}

func TestEvaluateToggleWinsOverBlock(t *testing.T) {
	// deselecting an already-held role is never denied
	d := Evaluate([]string{"a", "b"}, menu(false, "b"), "b", blocks([2]string{"a", "b"}))
	require.Equal(t, Remove, d.Action)
}

func TestEvaluateDenyBlocked(t *testing.T) {
	d := Evaluate([]string{"a"}, menu(false, "b"), "b", blocks([2]string{"a", "b"}))
	require.Equal(t, Deny, d.Action)
	require.Equal(t, "a", d.Blocking)
}

func TestEvaluateDenyBlockedAnyMenu(t *testing.T) {
	// block rules ignore menu boundaries entirely
	other := menu(true, "b", "z")
	d := Evaluate([]string{"a"}, other, "b", blocks([2]string{"a", "b"}))
	require.Equal(t, Deny, d.Action)
	require.Equal(t, "a", d.Blocking)
}

func TestEvaluateDenyFirstMatchCreationOrder(t *testing.T) {
	rules := blocks(
		[2]string{"x", "b"},
		[2]string{"a", "b"},
		[2]string{"c", "b"},
	)

	// user holds both a and c; rule for a was created before rule for c
	for i := 0; i < 100; i++ {
		d := Evaluate([]string{"c", "a"}, menu(false, "b"), "b", rules)
		require.Equal(t, Deny, d.Action)
		require.Equal(t, "a", d.Blocking)
	}
}

func TestEvaluateBlockOnlyTargetsRequested(t *testing.T) {
	d := Evaluate([]string{"a"}, menu(false, "b", "c"), "c", blocks([2]string{"a", "b"}))
	require.Equal(t, Grant, d.Action)
}

func TestEvaluateRemovedRuleGrants(t *testing.T) {
	rules := blocks([2]string{"a", "b"})

	d := Evaluate([]string{"a"}, menu(false, "b"), "b", rules)
	require.Equal(t, Deny, d.Action)

	// rule deleted by administrator
	d = Evaluate([]string{"a"}, menu(false, "b"), "b", nil)
	require.Equal(t, Grant, d.Action)
}

func TestEvaluateExclusiveSiblings(t *testing.T) {
	m := menu(true, "red", "blue", "green")

	d := Evaluate([]string{"red", "unrelated"}, m, "blue", nil)
	require.Equal(t, Grant, d.Action)
	require.Equal(t, []string{"red"}, d.Siblings)
}

func TestEvaluateExclusiveSiblingsOnlyHeld(t *testing.T) {
	m := menu(true, "red", "blue", "green")

	d := Evaluate([]string{"unrelated"}, m, "blue", nil)
	require.Equal(t, Grant, d.Action)
	require.Empty(t, d.Siblings)
}

func TestEvaluateNonExclusiveNoSiblings(t *testing.T) {
	m := menu(false, "red", "blue")

	d := Evaluate([]string{"red"}, m, "blue", nil)
	require.Equal(t, Grant, d.Action)
	require.Empty(t, d.Siblings)
}

func TestEvaluateNilMenuBlockCheckOnly(t *testing.T) {
	// default role assignment on join consults blocks without a menu
	d := Evaluate([]string{"a"}, nil, "b", blocks([2]string{"a", "b"}))
	require.Equal(t, Deny, d.Action)
	require.Equal(t, "a", d.Blocking)

	d = Evaluate(nil, nil, "b", blocks([2]string{"a", "b"}))
	require.Equal(t, Grant, d.Action)
	require.Empty(t, d.Siblings)
}
