// Package prefs persists the handful of client-local string settings:
// who this installation is, which schedule was open last and the theme.
package prefs

import "sync"

const (
	KeyUserID          = "p2r_userId"
	KeyCurrentSchedule = "p2r_currentScheduleId"
	KeyTheme           = "p2r_theme"
)

type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Memory is an ephemeral Store. The zero value is ready to use.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}
