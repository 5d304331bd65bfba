package planner

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"plan2read/internal/plan"
)

var termSessions = []plan.Session{
	{ID: "a", DayOfWeek: "Monday", Subject: "Math", StartTime: "09:00", EndTime: "10:00"},
	{ID: "b", DayOfWeek: "Thursday", Subject: "History", StartTime: "13:00", EndTime: "14:30"},
}

func sameSlots(t *testing.T, got, want []plan.Session) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d sessions, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.DayOfWeek != w.DayOfWeek || g.Subject != w.Subject || g.StartTime != w.StartTime || g.EndTime != w.EndTime {
			t.Errorf("session %d = %+v, want fields of %+v", i, g, w)
		}
		if g.ID == w.ID {
			t.Errorf("session %d kept source id %q", i, g.ID)
		}
	}
}

func TestShareCurrent(t *testing.T) {
	h := newHarness(t)
	h.seedSchedule(t, plan.Schedule{ID: "s1", OwnerID: me, Name: "Term"}, termSessions...)
	h.hydrate(t, "s1", "")

	id, err := h.community.ShareCurrent(h.ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(id, "shared_") {
		t.Errorf("shared id = %q", id)
	}

	community := h.state.Community()
	if len(community) != 1 || community[0].ID != id {
		t.Fatalf("community = %+v", community)
	}
	if c := community[0]; !c.IsPublic || c.Name != "Term" || c.Description != "Shared via Community from s1" {
		t.Errorf("unexpected shared header: %+v", c)
	}

	copied, err := h.backend.ListSessions(h.ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	sameSlots(t, copied, termSessions)

	source, _ := h.backend.ListSessions(h.ctx, "s1")
	if len(source) != len(termSessions) || source[0].ID != "a" {
		t.Errorf("source changed: %+v", source)
	}
}

func TestShare_PartialFailure(t *testing.T) {
	h := newHarness(t)
	h.seedSchedule(t, plan.Schedule{ID: "s1", OwnerID: me, Name: "Term"}, termSessions...)
	h.transport.fail["cloneSchedule"] = errors.New("connection reset")

	id, err := h.community.Share(h.ctx, "s1", "Term")
	var pe *PartialShareError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PartialShareError, got %v", err)
	}
	if pe.ScheduleID != id || id == "" {
		t.Errorf("partial error names %q, returned id %q", pe.ScheduleID, id)
	}
	if msg := UserMessage(err); !strings.Contains(msg, "shared") {
		t.Errorf("UserMessage = %q", msg)
	}

	if err := h.community.List(h.ctx); err != nil {
		t.Fatal(err)
	}
	if got := scheduleIDs(h.state.Community()); !reflect.DeepEqual(got, []string{id}) {
		t.Errorf("empty public schedule should stay visible, community = %v", got)
	}
	if sessions, _ := h.backend.ListSessions(h.ctx, id); len(sessions) != 0 {
		t.Errorf("partial share copied sessions: %+v", sessions)
	}
}

func TestShare_CreateFailureSkipsClone(t *testing.T) {
	h := newHarness(t)
	h.transport.reject["createSchedule"] = "quota exceeded"

	if _, err := h.community.Share(h.ctx, "s1", "Term"); err == nil {
		t.Fatal("expected error")
	}
	if n := h.transport.calls["cloneSchedule"]; n != 0 {
		t.Errorf("clone ran after a failed create")
	}
}

func TestShare_Validation(t *testing.T) {
	h := newHarness(t)
	if _, err := h.community.Share(h.ctx, "s1", " "); !errors.Is(err, ErrValidation) {
		t.Errorf("blank name: %v", err)
	}
	if _, err := h.community.ShareCurrent(h.ctx); !errors.Is(err, ErrValidation) {
		t.Errorf("nothing open: %v", err)
	}
	if len(h.transport.calls) != 0 {
		t.Errorf("validation failures reached the backend: %v", h.transport.calls)
	}
}

func TestCopy(t *testing.T) {
	h := newHarness(t)
	h.seedSchedule(t, plan.Schedule{ID: "pub", OwnerID: "user_other", Name: "Theirs", IsPublic: true}, termSessions...)

	if _, err := h.community.Copy(h.ctx, "pub", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	id, err := h.community.Copy(h.ctx, "pub", "My copy")
	if err != nil {
		t.Fatal(err)
	}
	mine := h.state.Schedules()
	if len(mine) != 1 || mine[0].ID != id || mine[0].Name != "My copy" || mine[0].IsPublic {
		t.Fatalf("my schedules = %+v", mine)
	}

	if err := h.community.List(h.ctx); err != nil {
		t.Fatal(err)
	}
	if got := scheduleIDs(h.state.Community()); !reflect.DeepEqual(got, []string{"pub"}) {
		t.Errorf("private copy leaked into community: %v", got)
	}

	h.hydrate(t, id, "")
	cur, _ := h.state.Current()
	sameSlots(t, cur.Sessions, termSessions)
}

func TestCopy_HeaderlessSource(t *testing.T) {
	h := newHarness(t)
	if err := h.backend.AddSession(h.ctx, plan.Session{ID: "orphan", ScheduleID: "gone", DayOfWeek: "Friday", Subject: "Art", StartTime: "15:00", EndTime: "16:00"}); err != nil {
		t.Fatal(err)
	}

	id, err := h.community.Copy(h.ctx, "gone", "Copy")
	if err != nil {
		t.Fatal(err)
	}
	h.hydrate(t, id, "")
	cur, _ := h.state.Current()
	if len(cur.Sessions) != 1 || cur.Sessions[0].Subject != "Art" {
		t.Errorf("sessions = %+v", cur.Sessions)
	}
}

func TestList_KeepsEveryPublicRow(t *testing.T) {
	h := newHarness(t)
	h.seedSchedule(t, plan.Schedule{ID: "1", OwnerID: me})
	h.seedSchedule(t, plan.Schedule{ID: "2", OwnerID: "user_b", IsPublic: true})
	h.seedSchedule(t, plan.Schedule{ID: "3", OwnerID: me, IsPublic: true})

	if err := h.community.List(h.ctx); err != nil {
		t.Fatal(err)
	}
	if got := scheduleIDs(h.state.Community()); !reflect.DeepEqual(got, []string{"2", "3"}) {
		t.Errorf("community = %v", got)
	}
}
