// Package session provides the per-process session identity used to group
// recorded events. A session id lives for exactly one process, the local
// analogue of a browser tab: a new process always gets a new id.
package session

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager hands out the process-scoped session id. The id is generated
// lazily on first use and cached for the lifetime of the manager.
type Manager struct {
	once sync.Once
	id   string
}

// NewManager creates a manager that will generate a fresh session id on
// first use.
func NewManager() *Manager {
	return &Manager{}
}

// NewManagerWithID creates a manager bound to a caller-supplied id, used
// when the hosting process wants to continue an existing session.
func NewManagerWithID(id string) *Manager {
	m := &Manager{}
	if id != "" {
		m.once.Do(func() { m.id = id })
	}
	return m
}

// SessionID returns the session id, generating it on first call.
// It cannot fail and is safe for concurrent use.
func (m *Manager) SessionID() string {
	m.once.Do(func() {
		m.id = newSessionID()
	})
	return m.id
}

// newSessionID builds an id from the current time plus a random component.
// UUIDv7 encodes both; if generation fails we fall back to composing the
// two parts by hand rather than ever returning an empty id.
func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("session_%d_%06d", time.Now().UnixMilli(), rand.Intn(1000000))
	}
	return id.String()
}
