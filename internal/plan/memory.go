package plan

import (
	"context"
	"sync"
)

// MemoryStore keeps every table as an append-ordered slice, the way the
// spreadsheet backend keeps rows. Safe for concurrent use.
type MemoryStore struct {
	mu        sync.Mutex
	schedules []Schedule
	sessions  []Session
	posts     []Post
	comments  []Comment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) ListSchedules(_ context.Context, userID string) ([]Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Schedule, 0, len(m.schedules))
	for _, s := range m.schedules {
		if Visible(s, userID) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MemoryStore) ListSessions(_ context.Context, scheduleID string) ([]Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Session, 0)
	for _, s := range m.sessions {
		if s.ScheduleID == scheduleID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MemoryStore) ListPosts(_ context.Context) ([]Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append(make([]Post, 0, len(m.posts)), m.posts...), nil
}

func (m *MemoryStore) ListComments(_ context.Context, postID string) ([]Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Comment, 0)
	for _, c := range m.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MemoryStore) CreateSchedule(_ context.Context, s Schedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.scheduleIndex(s.ID) >= 0 {
		return duplicate("schedule", s.ID)
	}
	m.schedules = append(m.schedules, s)
	return nil
}

func (m *MemoryStore) CloneSchedule(_ context.Context, in CloneInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// A header already created by the same owner (the publish flow) is
	// reused so the id stays unique.
	reuse := false
	if i := m.scheduleIndex(in.NewID); i >= 0 {
		if m.schedules[i].OwnerID != in.NewUserID {
			return duplicate("schedule", in.NewID)
		}
		reuse = true
	}

	var src []Session
	for _, s := range m.sessions {
		if s.ScheduleID == in.SourceID {
			src = append(src, s)
		}
	}
	copies := CloneSessions(src, in.NewID)
	for _, c := range copies {
		if m.sessionIndex(c.ID) >= 0 {
			return duplicate("session", c.ID)
		}
	}

	if !reuse {
		m.schedules = append(m.schedules, CloneHeader(in))
	}
	m.sessions = append(m.sessions, copies...)
	return nil
}

func (m *MemoryStore) AddSession(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sessionIndex(s.ID) >= 0 {
		return duplicate("session", s.ID)
	}
	m.sessions = append(m.sessions, s)
	return nil
}

func (m *MemoryStore) DeleteSession(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.sessionIndex(sessionID)
	if i < 0 {
		return ErrNotFound
	}
	m.sessions = append(m.sessions[:i], m.sessions[i+1:]...)
	return nil
}

func (m *MemoryStore) CreatePost(_ context.Context, p Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.posts {
		if existing.ID == p.ID {
			return duplicate("post", p.ID)
		}
	}
	m.posts = append(m.posts, p)
	return nil
}

func (m *MemoryStore) AddComment(_ context.Context, c Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.comments {
		if existing.ID == c.ID {
			return duplicate("comment", c.ID)
		}
	}
	m.comments = append(m.comments, c)
	return nil
}

func (m *MemoryStore) scheduleIndex(id string) int {
	for i, s := range m.schedules {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (m *MemoryStore) sessionIndex(id string) int {
	for i, s := range m.sessions {
		if s.ID == id {
			return i
		}
	}
	return -1
}
