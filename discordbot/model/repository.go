package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	redis "github.com/go-redis/redis/v7"
)

// Repository provides methods to get and set configuration values and to
// enqueue, dequeue and acknowledge delayed tasks
type Repository struct {
	client *redis.Client
	groups map[string]bool
	m      sync.Mutex
}

// ConfigSet sets config value for given guild
func (repo *Repository) ConfigSet(guildID, scope, key, value string) error {
	fullkey := fmt.Sprintf("%s.%s.%s", guildID, scope, key)

	return repo.client.Set(fullkey, value, 0).Err()
}

// ConfigGet returns config value for given guild, empty string when unset
func (repo *Repository) ConfigGet(guildID, scope, key string) (s string, err error) {
	fullkey := fmt.Sprintf("%s.%s.%s", guildID, scope, key)

	s, err = repo.client.Get(fullkey).Result()
	if err == redis.Nil {
		err = nil
	}

	return
}

// ConfigDel removes config value for given guild
func (repo *Repository) ConfigDel(guildID, scope, key string) error {
	fullkey := fmt.Sprintf("%s.%s.%s", guildID, scope, key)

	return repo.client.Del(fullkey).Err()
}

func taskKey(task Task) string {
	return fmt.Sprintf("task.%s.%s", task.Scope(), task.Name())
}

// TaskEnqueue schedules task for execution after delay
func (repo *Repository) TaskEnqueue(task Task, delay, timeout time.Duration) (id string, err error) {
	bs, err := json.Marshal(task)
	if err != nil {
		return "", err
	}

	return repo.client.XAdd(&redis.XAddArgs{
		Stream: taskKey(task),
		Values: map[string]interface{}{
			"created": time.Now().Unix(),
			"delay":   int64(delay),
			"timeout": int64(timeout),
			"data":    bs,
		},
	}).Result()
}

func (repo *Repository) ensureGroup(fkey string) {
	repo.m.Lock()
	defer repo.m.Unlock()

	if !repo.groups[fkey] {
		repo.client.XGroupCreateMkStream(fkey, "tasks", "0")
		repo.groups[fkey] = true
	}
}

func parseInt(values map[string]interface{}, key string) (v int64, err error) {
	raw, ok := values[key].(string)
	if !ok {
		return 0, nil
	}

	return strconv.ParseInt(raw, 10, 64)
}

// processMessage unmarshals stream message into task when its delay has
// elapsed; expired messages are dropped from the stream
func (repo *Repository) processMessage(fkey string, m *redis.XMessage, task Task) (id string, err error) {
	created, err := parseInt(m.Values, "created")
	if err != nil {
		return "", err
	}

	delay, err := parseInt(m.Values, "delay")
	if err != nil {
		return "", err
	}

	timeout, err := parseInt(m.Values, "timeout")
	if err != nil {
		return "", err
	}

	passed := int64(time.Since(time.Unix(created, 0)))
	if passed < delay {
		return "", nil
	}

	if timeout > 0 && passed-delay > timeout {
		return "", repo.drop(fkey, m.ID)
	}

	bs, ok := m.Values["data"].(string)
	if !ok {
		return "", repo.drop(fkey, m.ID)
	}

	err = json.Unmarshal([]byte(bs), task)
	if err != nil {
		return "", err
	}

	return m.ID, nil
}

func (repo *Repository) drop(fkey, id string) (err error) {
	tx := repo.client.TxPipeline()
	tx.XAck(fkey, "tasks", id)
	tx.XDel(fkey, id)
	_, err = tx.Exec()

	return
}

func (repo *Repository) readGroup(fkey, start string, block time.Duration, task Task) (id string, err error) {
	res, err := repo.client.XReadGroup(&redis.XReadGroupArgs{
		Group:    "tasks",
		Consumer: "dequeue",
		Streams:  []string{fkey, start},
		Block:    block,
		Count:    1,
	}).Result()
	if err == redis.Nil {
		err = nil
	}

	if err != nil {
		return "", err
	}

	for _, s := range res {
		for _, m := range s.Messages {
			m := m

			id, err = repo.processMessage(fkey, &m, task)
			if err != nil || id != "" {
				return
			}
		}
	}

	return "", nil
}

// TaskDequeue receives a single due task, blocking up to given duration;
// returned id is empty when nothing was due
func (repo *Repository) TaskDequeue(task Task, block time.Duration) (id string, err error) {
	fkey := taskKey(task)

	repo.ensureGroup(fkey)

	id, err = repo.readGroup(fkey, "0", 0, task)
	if err != nil || id != "" {
		return
	}

	return repo.readGroup(fkey, ">", block, task)
}

// TaskAck acknowledges task completion and removes it from the stream
func (repo *Repository) TaskAck(task Task, id string) error {
	if id == "" {
		return nil
	}

	return repo.drop(taskKey(task), id)
}
