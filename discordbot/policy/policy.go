// Package policy decides whether a member may acquire a role.
//
// Two constraint kinds exist and must not be conflated: block rules span the
// whole guild regardless of which menu the role was requested from, while
// exclusivity only spans options of the menu being interacted with.
package policy

import (
	"github.com/rolewarden/rolewarden/discordbot/store"
)

// Action is the kind of outcome of an evaluation
type Action int

// Possible evaluation outcomes
const (
	// Grant allows adding the requested role, possibly removing siblings
	Grant Action = iota
	// Remove toggles off a role the member already holds
	Remove
	// Deny refuses the role because of a block rule
	Deny
)

// Decision is the outcome of evaluating a role request
type Decision struct {
	Action Action

	// Blocking is the member-held role that caused a Deny; rules are
	// examined in creation order, so the reported role is deterministic
	Blocking string

	// Siblings lists member-held roles of other options in an exclusive
	// menu that must be removed alongside a Grant
	Siblings []string
}

// Evaluate decides what should happen when a member requests a role.
//
// The already-held toggle case wins over everything else, so deselecting a
// role is never denied. Menu may be nil for requests that do not originate
// from a menu (default role assignment on join); such requests get the block
// check only.
func Evaluate(memberRoles []string, menu *store.Menu, requested string, blocks []store.BlockRule) Decision {
	held := make(map[string]struct{}, len(memberRoles))
	for _, r := range memberRoles {
		held[r] = struct{}{}
	}

	if _, ok := held[requested]; ok {
		return Decision{Action: Remove}
	}

	for _, rule := range blocks {
		if rule.Blocked != requested {
			continue
		}

		if _, ok := held[rule.Blocking]; ok {
			return Decision{Action: Deny, Blocking: rule.Blocking}
		}
	}

	d := Decision{Action: Grant}

	if menu != nil && menu.Exclusive {
		for _, o := range menu.Options {
			if o.RoleID == requested {
				continue
			}

			if _, ok := held[o.RoleID]; ok {
				d.Siblings = append(d.Siblings, o.RoleID)
			}
		}
	}

	return d
}
