package planner

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"plan2read/internal/api"
	"plan2read/internal/gateway"
	"plan2read/internal/plan"
	"plan2read/internal/prefs"
)

const me = "user_me"

// scriptedTransport sits in front of the memory backend. It counts calls
// per action and can fail or reject chosen actions.
type scriptedTransport struct {
	next   gateway.Transport
	fail   map[string]error
	reject map[string]string
	calls  map[string]int
}

func (s *scriptedTransport) Call(ctx context.Context, req api.Request) (api.Response, error) {
	s.calls[req.Action]++
	if err, ok := s.fail[req.Action]; ok {
		return api.Response{}, err
	}
	if msg, ok := s.reject[req.Action]; ok {
		return api.Failure(msg), nil
	}
	return s.next.Call(ctx, req)
}

type seqIDs struct{ n int }

func (g *seqIDs) New(prefix string) string {
	g.n++
	return fmt.Sprintf("%s_%d", prefix, g.n)
}

type tickingClock struct{ t time.Time }

func (c *tickingClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

type harness struct {
	ctx        context.Context
	backend    *plan.MemoryStore
	transport  *scriptedTransport
	state      *State
	prefs      *prefs.Memory
	repo       *Repository
	community  *Community
	discussion *Discussion
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	mem := gateway.NewMemoryTransport(zap.NewNop())
	mem.Dispatcher.Now = (&tickingClock{t: time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)}).Now

	tr := &scriptedTransport{
		next:   mem,
		fail:   map[string]error{},
		reject: map[string]string{},
		calls:  map[string]int{},
	}
	remote := gateway.New(tr, zap.NewNop())
	state := NewState()
	p := prefs.NewMemory()
	ids := &seqIDs{}

	repo := &Repository{Remote: remote, State: state, Prefs: p, IDs: ids, UserID: me, Log: zap.NewNop()}
	return &harness{
		ctx:        context.Background(),
		backend:    mem.Store,
		transport:  tr,
		state:      state,
		prefs:      p,
		repo:       repo,
		community:  &Community{Repo: repo},
		discussion: &Discussion{Remote: remote, State: state, IDs: ids, UserID: me, Log: zap.NewNop()},
	}
}

func (h *harness) seedSchedule(t *testing.T, s plan.Schedule, sessions ...plan.Session) {
	t.Helper()
	if err := h.backend.CreateSchedule(h.ctx, s); err != nil {
		t.Fatal(err)
	}
	for _, sess := range sessions {
		sess.ScheduleID = s.ID
		if err := h.backend.AddSession(h.ctx, sess); err != nil {
			t.Fatal(err)
		}
	}
}

// hydrate loads the list, opens id and selects day.
func (h *harness) hydrate(t *testing.T, id, day string) {
	t.Helper()
	if err := h.repo.LoadSchedules(h.ctx); err != nil {
		t.Fatal(err)
	}
	if err := h.repo.LoadSchedule(h.ctx, id); err != nil {
		t.Fatal(err)
	}
	if _, ok := h.state.Current(); !ok {
		t.Fatalf("schedule %s not hydrated", id)
	}
	if day != "" {
		if _, err := h.repo.SelectDay(day); err != nil {
			t.Fatal(err)
		}
	}
}

func scheduleIDs(rows []plan.Schedule) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}
