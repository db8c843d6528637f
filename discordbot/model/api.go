// Package model provides redis-backed runtime state: per-guild key/value
// configuration and a delayed task queue built on redis streams.
package model

import (
	redis "github.com/go-redis/redis/v7"
)

// Task is a unit of delayed work placed on a queue stream
type Task interface {
	Scope() string
	Name() string
}

// NewRepository returns repository instance using provided redis client
func NewRepository(client *redis.Client) *Repository {
	return &Repository{
		client: client,
		groups: make(map[string]bool),
	}
}
