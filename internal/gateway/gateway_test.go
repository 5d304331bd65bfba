package gateway

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"plan2read/internal/api"
	"plan2read/internal/plan"
)

type stubTransport struct {
	resp api.Response
	err  error
}

func (s stubTransport) Call(context.Context, api.Request) (api.Response, error) {
	return s.resp, s.err
}

func newMemoryGateway() *Gateway {
	return New(NewMemoryTransport(zap.NewNop()), zap.NewNop())
}

func TestGateway_MemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	g := newMemoryGateway()

	if err := g.CreateSchedule(ctx, plan.Schedule{ID: "s1", OwnerID: "u1", Name: "Week 1"}); err != nil {
		t.Fatal(err)
	}
	err := g.AddSession(ctx, plan.Session{ID: "x1", ScheduleID: "s1", DayOfWeek: "Monday", Subject: "Math", StartTime: "09:00", EndTime: "10:00"})
	if err != nil {
		t.Fatal(err)
	}

	schedules, err := g.GetSchedules(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(schedules) != 1 || schedules[0].Name != "Week 1" || schedules[0].IsPublic {
		t.Errorf("unexpected schedules: %+v", schedules)
	}

	sessions, err := g.GetSessions(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 || sessions[0].Subject != "Math" {
		t.Errorf("unexpected sessions: %+v", sessions)
	}

	public, err := g.GetSchedules(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(public) != 0 {
		t.Errorf("private schedule leaked to public list: %+v", public)
	}
}

func TestGateway_DeleteMissingIsNotFound(t *testing.T) {
	err := newMemoryGateway().DeleteSession(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var re *RemoteError
	if !errors.As(err, &re) || re.Action != api.DeleteSession {
		t.Errorf("expected RemoteError for deleteSession, got %#v", err)
	}
}

func TestGateway_RemoteErrorIsVerbatim(t *testing.T) {
	g := New(stubTransport{resp: api.Failure("Sheet \"schedules\" not found")}, nil)
	_, err := g.GetSchedules(context.Background(), "u1")
	if err == nil || err.Error() != "Sheet \"schedules\" not found" {
		t.Fatalf("unexpected error: %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("only the exact not-found message should match ErrNotFound")
	}
}

func TestGateway_TransportFailure(t *testing.T) {
	cause := errors.New("connection refused")
	g := New(stubTransport{err: cause}, nil)

	err := g.DeleteSession(context.Background(), "x")
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %#v", err)
	}
	if !errors.Is(err, cause) || te.Action != api.DeleteSession {
		t.Errorf("unexpected transport error: %v", err)
	}
}

func TestGateway_MalformedEnvelope(t *testing.T) {
	tests := []struct {
		name string
		resp api.Response
	}{
		{"unknown status", api.Response{Status: "maybe"}},
		{"data not a list", api.Response{Status: api.StatusSuccess, Data: []byte(`{"x":1}`)}},
	}
	for _, tt := range tests {
		g := New(stubTransport{resp: tt.resp}, nil)
		_, err := g.GetSessions(context.Background(), "s1")
		var te *TransportError
		if !errors.As(err, &te) {
			t.Errorf("%s: expected TransportError, got %v", tt.name, err)
		}
	}
}

func TestGateway_NullDataIsEmptyList(t *testing.T) {
	g := New(stubTransport{resp: api.Response{Status: api.StatusSuccess, Data: []byte("null")}}, nil)
	posts, err := g.GetDiscussions(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if posts == nil || len(posts) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", posts)
	}
}

func TestEmbeddedTransport_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newMemoryGateway().CreateSchedule(ctx, plan.Schedule{ID: "s1", OwnerID: "u1"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
