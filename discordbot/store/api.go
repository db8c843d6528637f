// Package store provides durable per-guild state: role menus with their
// options, global role block rules, guild configuration and documentation
// entries, backed by postgres.
package store

import (
	"errors"
	"time"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when referenced entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrSelfBlock is returned when a block rule references the same role twice
	ErrSelfBlock = errors.New("role cannot block itself")

	// ErrDuplicateOption is returned when a menu repeats a role
	ErrDuplicateOption = errors.New("duplicate role option in menu")

	// ErrNoOptions is returned when a menu is created without any options
	ErrNoOptions = errors.New("menu has no options")
)

// Menu is a posted role selection message; Exclusive menus deselect sibling
// options when one is picked
type Menu struct {
	ID        int64     `db:"id"`
	GuildID   string    `db:"guild_id"`
	ChannelID string    `db:"channel_id"`
	MessageID string    `db:"message_id"`
	Exclusive bool      `db:"exclusive"`
	CreatedBy string    `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`

	Options []Option `db:"-"`
}

// Option returns menu option for given role id, nil when role is not part of
// the menu
func (menu *Menu) Option(roleID string) *Option {
	for i := range menu.Options {
		if menu.Options[i].RoleID == roleID {
			return &menu.Options[i]
		}
	}

	return nil
}

// Option is a single role button within a menu
type Option struct {
	ID       int64  `db:"id"`
	MenuID   int64  `db:"menu_id"`
	RoleID   string `db:"role_id"`
	Label    string `db:"label"`
	Position int    `db:"position"`
}

// BlockRule forbids acquiring Blocked role while holding Blocking role,
// guild-wide, regardless of menus
type BlockRule struct {
	ID        int64     `db:"id"`
	GuildID   string    `db:"guild_id"`
	Blocking  string    `db:"blocking_role_id"`
	Blocked   string    `db:"blocked_role_id"`
	CreatedAt time.Time `db:"created_at"`
}

// GuildConfig holds per-guild scalar configuration; zero values mean unset
type GuildConfig struct {
	GuildID              string         `db:"guild_id"`
	MemberCountChannelID string         `db:"member_count_channel_id"`
	NotifyChannelID      string         `db:"notify_channel_id"`
	UserRoleIDs          pq.StringArray `db:"user_role_ids"`
	BotRoleIDs           pq.StringArray `db:"bot_role_ids"`
}

// Doc is an administrator-authored documentation entry, unique per
// (guild, title)
type Doc struct {
	ID        int64     `db:"id"`
	GuildID   string    `db:"guild_id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	CreatedBy string    `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func validateMenu(menu *Menu) error {
	if len(menu.Options) == 0 {
		return ErrNoOptions
	}

	seen := make(map[string]struct{}, len(menu.Options))

	for _, o := range menu.Options {
		if _, ok := seen[o.RoleID]; ok {
			return ErrDuplicateOption
		}

		seen[o.RoleID] = struct{}{}
	}

	return nil
}

func validateBlock(blocking, blocked string) error {
	if blocking == blocked {
		return ErrSelfBlock
	}

	return nil
}
