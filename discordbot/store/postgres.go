package store

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var schema = `
create table if not exists role_menus (
  id serial primary key,
  guild_id text not null,
  channel_id text not null,
  message_id text not null unique,
  exclusive boolean not null default false,
  created_by text not null,
  created_at timestamptz not null default now()
);

create index if not exists role_menus_guild_idx on role_menus (guild_id);

create table if not exists role_options (
  id serial primary key,
  menu_id integer not null references role_menus (id) on delete cascade,
  role_id text not null,
  label text not null,
  position integer not null default 0,
  unique (menu_id, role_id)
);

create table if not exists role_blocks (
  id serial primary key,
  guild_id text not null,
  blocking_role_id text not null,
  blocked_role_id text not null,
  created_at timestamptz not null default now(),
  unique (guild_id, blocking_role_id, blocked_role_id),
  check (blocking_role_id <> blocked_role_id)
);

create index if not exists role_blocks_guild_idx on role_blocks (guild_id);

create table if not exists guild_configs (
  guild_id text primary key,
  member_count_channel_id text not null default '',
  notify_channel_id text not null default '',
  user_role_ids text[] not null default '{}',
  bot_role_ids text[] not null default '{}'
);

create table if not exists guild_docs (
  id serial primary key,
  guild_id text not null,
  title text not null,
  content text not null,
  created_by text not null,
  created_at timestamptz not null default now(),
  updated_at timestamptz not null default now(),
  unique (guild_id, title)
);
`

// Store provides postgres-backed persistence
type Store struct {
	db *sqlx.DB
}

// Open connects to postgres using given dsn and initializes the schema
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}

	err = s.init()
	if err != nil {
		_ = db.Close()

		return nil, err
	}

	return s, nil
}

// New wraps an existing connection without touching the schema
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) init() error {
	_, err := s.db.Exec(schema)

	return err
}

// Close releases the underlying connection pool
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateMenu persists menu with its options; menu and option ids are filled in
func (s *Store) CreateMenu(menu *Menu) error {
	err := validateMenu(menu)
	if err != nil {
		return err
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback()
	}()

	err = tx.Get(&menu.ID, `
insert into role_menus (guild_id, channel_id, message_id, exclusive, created_by)
values ($1, $2, $3, $4, $5)
returning id
`, menu.GuildID, menu.ChannelID, menu.MessageID, menu.Exclusive, menu.CreatedBy)
	if err != nil {
		return err
	}

	for i := range menu.Options {
		o := &menu.Options[i]
		o.MenuID = menu.ID
		o.Position = i

		err = tx.Get(&o.ID, `
insert into role_options (menu_id, role_id, label, position)
values ($1, $2, $3, $4)
returning id
`, o.MenuID, o.RoleID, o.Label, o.Position)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// MenuByMessage returns menu with options for given posted message
func (s *Store) MenuByMessage(messageID string) (*Menu, error) {
	menu := &Menu{}

	err := s.db.Get(menu, `select * from role_menus where message_id = $1`, messageID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	err = s.db.Select(&menu.Options, `
select * from role_options where menu_id = $1 order by position
`, menu.ID)
	if err != nil {
		return nil, err
	}

	return menu, nil
}

// DeleteMenu removes menu with its options by posted message id
func (s *Store) DeleteMenu(guildID, messageID string) error {
	res, err := s.db.Exec(`
delete from role_menus where guild_id = $1 and message_id = $2
`, guildID, messageID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// Menus returns all menus of a guild, options included
func (s *Store) Menus(guildID string) ([]Menu, error) {
	var menus []Menu

	err := s.db.Select(&menus, `
select * from role_menus where guild_id = $1 order by id
`, guildID)
	if err != nil {
		return nil, err
	}

	for i := range menus {
		err = s.db.Select(&menus[i].Options, `
select * from role_options where menu_id = $1 order by position
`, menus[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return menus, nil
}

// AddBlock persists a block rule; adding an existing pair is a no-op
func (s *Store) AddBlock(guildID, blocking, blocked string) error {
	err := validateBlock(blocking, blocked)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
insert into role_blocks (guild_id, blocking_role_id, blocked_role_id)
values ($1, $2, $3)
on conflict do nothing
`, guildID, blocking, blocked)

	return err
}

// RemoveBlock deletes a block rule by its role pair
func (s *Store) RemoveBlock(guildID, blocking, blocked string) error {
	res, err := s.db.Exec(`
delete from role_blocks
where guild_id = $1 and blocking_role_id = $2 and blocked_role_id = $3
`, guildID, blocking, blocked)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// Blocks returns all block rules of a guild in creation order
func (s *Store) Blocks(guildID string) (rules []BlockRule, err error) {
	err = s.db.Select(&rules, `
select * from role_blocks where guild_id = $1 order by id
`, guildID)

	return
}

// BlocksByBlocking returns rules whose source is given role, creation order
func (s *Store) BlocksByBlocking(guildID, roleID string) (rules []BlockRule, err error) {
	err = s.db.Select(&rules, `
select * from role_blocks
where guild_id = $1 and blocking_role_id = $2 order by id
`, guildID, roleID)

	return
}

// BlocksByBlocked returns rules whose target is given role, creation order
func (s *Store) BlocksByBlocked(guildID, roleID string) (rules []BlockRule, err error) {
	err = s.db.Select(&rules, `
select * from role_blocks
where guild_id = $1 and blocked_role_id = $2 order by id
`, guildID, roleID)

	return
}

// Config returns guild configuration; missing row yields zero-value config
func (s *Store) Config(guildID string) (*GuildConfig, error) {
	conf := &GuildConfig{}

	err := s.db.Get(conf, `select * from guild_configs where guild_id = $1`, guildID)
	if err == sql.ErrNoRows {
		return &GuildConfig{GuildID: guildID}, nil
	}

	if err != nil {
		return nil, err
	}

	return conf, nil
}

// SetMemberCountChannel updates member count channel for a guild
func (s *Store) SetMemberCountChannel(guildID, channelID string) error {
	_, err := s.db.Exec(`
insert into guild_configs (guild_id, member_count_channel_id)
values ($1, $2)
on conflict (guild_id) do update set member_count_channel_id = excluded.member_count_channel_id
`, guildID, channelID)

	return err
}

// SetNotifyChannel updates join/leave notification channel for a guild
func (s *Store) SetNotifyChannel(guildID, channelID string) error {
	_, err := s.db.Exec(`
insert into guild_configs (guild_id, notify_channel_id)
values ($1, $2)
on conflict (guild_id) do update set notify_channel_id = excluded.notify_channel_id
`, guildID, channelID)

	return err
}

// SetUserRoles updates default roles granted to joining humans
func (s *Store) SetUserRoles(guildID string, roleIDs []string) error {
	_, err := s.db.Exec(`
insert into guild_configs (guild_id, user_role_ids)
values ($1, $2)
on conflict (guild_id) do update set user_role_ids = excluded.user_role_ids
`, guildID, pq.StringArray(roleIDs))

	return err
}

// SetBotRoles updates default roles granted to joining bots
func (s *Store) SetBotRoles(guildID string, roleIDs []string) error {
	_, err := s.db.Exec(`
insert into guild_configs (guild_id, bot_role_ids)
values ($1, $2)
on conflict (guild_id) do update set bot_role_ids = excluded.bot_role_ids
`, guildID, pq.StringArray(roleIDs))

	return err
}

// UpsertDoc creates or replaces documentation entry by (guild, title)
func (s *Store) UpsertDoc(guildID, title, content, createdBy string) error {
	_, err := s.db.Exec(`
insert into guild_docs (guild_id, title, content, created_by)
values ($1, $2, $3, $4)
on conflict (guild_id, title) do update
set content = excluded.content, created_by = excluded.created_by, updated_at = now()
`, guildID, title, content, createdBy)

	return err
}

// DeleteDoc removes documentation entry by (guild, title)
func (s *Store) DeleteDoc(guildID, title string) error {
	res, err := s.db.Exec(`
delete from guild_docs where guild_id = $1 and title = $2
`, guildID, title)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// Doc returns single documentation entry by (guild, title)
func (s *Store) Doc(guildID, title string) (*Doc, error) {
	doc := &Doc{}

	err := s.db.Get(doc, `
select * from guild_docs where guild_id = $1 and title = $2
`, guildID, title)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return doc, nil
}

// Docs returns all documentation entries of a guild ordered by title
func (s *Store) Docs(guildID string) (docs []Doc, err error) {
	err = s.db.Select(&docs, `
select * from guild_docs where guild_id = $1 order by title
`, guildID)

	return
}
