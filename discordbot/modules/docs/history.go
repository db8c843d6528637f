package docs

import (
	"sync"

	"github.com/rolewarden/rolewarden/integration/assistant"
)

const historySize = 25

// history keeps the last messages seen per channel as answer context
type history struct {
	m        sync.Mutex
	channels map[string][]assistant.Exchange
}

func newHistory() *history {
	return &history{
		channels: make(map[string][]assistant.Exchange),
	}
}

func (h *history) add(channelID, author, content string) {
	if content == "" {
		return
	}

	h.m.Lock()
	defer h.m.Unlock()

	ring := append(h.channels[channelID], assistant.Exchange{
		Author:  author,
		Content: content,
	})

	if len(ring) > historySize {
		ring = ring[len(ring)-historySize:]
	}

	h.channels[channelID] = ring
}

func (h *history) get(channelID string) []assistant.Exchange {
	h.m.Lock()
	defer h.m.Unlock()

	ring := h.channels[channelID]

	out := make([]assistant.Exchange, len(ring))
	copy(out, ring)

	return out
}
