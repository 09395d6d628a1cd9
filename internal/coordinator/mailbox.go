package coordinator

import "sync"

// Mailbox is the in-memory key/value exchange the parties use for broadcast
// and point-to-point messages. Keys are chosen by the parties themselves
// (ceremony uuid, round and party numbers) so entries never collide across
// concurrent ceremonies.
type Mailbox struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMailbox() *Mailbox {
	return &Mailbox{entries: make(map[string]string)}
}

// Get returns the value stored under key, reporting whether it was present.
func (m *Mailbox) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok
}

// Set stores value under key, replacing any previous value.
func (m *Mailbox) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
}
