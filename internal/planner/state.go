package planner

import (
	"slices"
	"sync"

	"plan2read/internal/plan"
)

// CurrentSchedule is the hydrated schedule: its header fields plus the
// sessions fetched for it.
type CurrentSchedule struct {
	ID       string
	Name     string
	Sessions []plan.Session
}

// State is the client-side cache. Readers get copies; only the
// Repository, Community and Discussion types in this package write it,
// and only after the backend confirmed the change.
type State struct {
	mu sync.RWMutex

	schedules   []plan.Schedule
	current     *CurrentSchedule
	selectedDay *plan.Weekday
	community   []plan.Schedule
	posts       []plan.Post
	comments    []plan.Comment
	openPostID  string
}

func NewState() *State { return &State{} }

// Schedules returns the user's own schedules in backend order.
func (s *State) Schedules() []plan.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.schedules)
}

func (s *State) Current() (CurrentSchedule, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return CurrentSchedule{}, false
	}
	c := *s.current
	c.Sessions = slices.Clone(c.Sessions)
	return c, true
}

func (s *State) SelectedDay() (plan.Weekday, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selectedDay == nil {
		return 0, false
	}
	return *s.selectedDay, true
}

func (s *State) Community() []plan.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.community)
}

func (s *State) Comments() []plan.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.comments)
}

func (s *State) rawPosts() []plan.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.posts)
}

func (s *State) OpenPost() (plan.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.openPostID == "" {
		return plan.Post{}, false
	}
	if i := postIndex(s.posts, s.openPostID); i >= 0 {
		return s.posts[i], true
	}
	return plan.Post{}, false
}

func (s *State) findSchedule(id string) (plan.Schedule, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sc := range s.schedules {
		if sc.ID == id {
			return sc, true
		}
	}
	return plan.Schedule{}, false
}

func (s *State) setSchedules(rows []plan.Schedule) {
	s.mu.Lock()
	s.schedules = rows
	s.mu.Unlock()
}

func (s *State) setCurrent(c CurrentSchedule) {
	s.mu.Lock()
	s.current = &c
	s.mu.Unlock()
}

func (s *State) setSelectedDay(d plan.Weekday) {
	s.mu.Lock()
	s.selectedDay = &d
	s.mu.Unlock()
}

// appendSession adds a confirmed session if scheduleID is still the
// hydrated schedule. A reload in between wins, and a reload that already
// brought the row back is not doubled.
func (s *State) appendSession(scheduleID string, sess plan.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.ID != scheduleID {
		return
	}
	if slices.ContainsFunc(s.current.Sessions, func(x plan.Session) bool { return x.ID == sess.ID }) {
		return
	}
	s.current.Sessions = append(s.current.Sessions, sess)
}

func (s *State) removeSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return
	}
	s.current.Sessions = slices.DeleteFunc(s.current.Sessions, func(x plan.Session) bool {
		return x.ID == id
	})
}

func (s *State) setCommunity(rows []plan.Schedule) {
	s.mu.Lock()
	s.community = rows
	s.mu.Unlock()
}

func (s *State) setPosts(rows []plan.Post) {
	s.mu.Lock()
	s.posts = rows
	s.mu.Unlock()
}

func (s *State) hasPost(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return postIndex(s.posts, id) >= 0
}

func (s *State) setOpenPost(id string) {
	s.mu.Lock()
	s.openPostID = id
	s.mu.Unlock()
}

func (s *State) openPostIDValue() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.openPostID
}

func (s *State) closePost() {
	s.mu.Lock()
	s.openPostID = ""
	s.comments = nil
	s.mu.Unlock()
}

func (s *State) setComments(rows []plan.Comment) {
	s.mu.Lock()
	s.comments = rows
	s.mu.Unlock()
}

func postIndex(posts []plan.Post, id string) int {
	return slices.IndexFunc(posts, func(p plan.Post) bool { return p.ID == id })
}
