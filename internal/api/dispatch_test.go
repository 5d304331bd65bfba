package api

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"go.uber.org/zap"

	"plan2read/internal/plan"
)

var fixedNow = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func newDispatcher() *Dispatcher {
	return &Dispatcher{
		Store: plan.NewMemoryStore(),
		Log:   zap.NewNop(),
		Now:   func() time.Time { return fixedNow },
	}
}

func mustSucceed(t *testing.T, resp Response) {
	t.Helper()
	if resp.Status != StatusSuccess {
		t.Fatalf("expected success, got %+v", resp)
	}
}

func boolPtr(b bool) *bool { return &b }

func TestDispatcher_UnknownAction(t *testing.T) {
	resp := newDispatcher().Handle(context.Background(), Request{Action: "dropTables"})
	if resp.Status != StatusError || resp.Message != "Unknown action: dropTables" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestDispatcher_MissingField(t *testing.T) {
	resp := newDispatcher().Handle(context.Background(), Request{Action: GetSessions})
	if resp.Status != StatusError || resp.Message != "missing field: schedule_id" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestDispatcher_CreateScheduleDefaults(t *testing.T) {
	ctx := context.Background()
	d := newDispatcher()
	mustSucceed(t, d.Handle(ctx, Request{Action: CreateSchedule, ScheduleID: "s1", UserID: "u1", ScheduleName: "Finals"}))

	resp := d.Handle(ctx, Request{Action: GetSchedules, UserID: "u1"})
	mustSucceed(t, resp)
	var rows []plan.Schedule
	if err := json.Unmarshal(resp.Data, &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	got := rows[0]
	if got.IsPublic || got.Description != "" || !got.UpdatedAt.Equal(fixedNow) || got.Name != "Finals" {
		t.Errorf("unexpected defaults: %+v", got)
	}

	dup := d.Handle(ctx, Request{Action: CreateSchedule, ScheduleID: "s1", UserID: "u2"})
	if dup.Status != StatusError || dup.Message != "schedule s1 already exists" {
		t.Errorf("duplicate create: %+v", dup)
	}
}

func TestDispatcher_GetSchedulesFilter(t *testing.T) {
	ctx := context.Background()
	d := newDispatcher()
	mustSucceed(t, d.Handle(ctx, Request{Action: CreateSchedule, ScheduleID: "1", UserID: "A", IsPublic: boolPtr(false)}))
	mustSucceed(t, d.Handle(ctx, Request{Action: CreateSchedule, ScheduleID: "2", UserID: "B", IsPublic: boolPtr(true)}))
	mustSucceed(t, d.Handle(ctx, Request{Action: CreateSchedule, ScheduleID: "3", UserID: "A", IsPublic: boolPtr(true)}))

	count := func(user string) int {
		resp := d.Handle(ctx, Request{Action: GetSchedules, UserID: user})
		mustSucceed(t, resp)
		var rows []plan.Schedule
		_ = json.Unmarshal(resp.Data, &rows)
		return len(rows)
	}
	if n := count("A"); n != 3 {
		t.Errorf("user A sees %d, want 3", n)
	}
	if n := count(""); n != 2 {
		t.Errorf("anonymous sees %d, want 2", n)
	}
	if n := count("C"); n != 2 {
		t.Errorf("user C sees %d, want 2", n)
	}
}

func TestDispatcher_EmptyListIsArray(t *testing.T) {
	resp := newDispatcher().Handle(context.Background(), Request{Action: GetDiscussions})
	mustSucceed(t, resp)
	if string(resp.Data) != "[]" {
		t.Errorf("data = %s, want []", resp.Data)
	}
}

func TestDispatcher_DeleteSessionNotFound(t *testing.T) {
	resp := newDispatcher().Handle(context.Background(), Request{Action: DeleteSession, SessionID: "ghost"})
	if resp.Status != StatusError || resp.Message != MsgNotFound {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestDispatcher_PostAndCommentDefaultToGuest(t *testing.T) {
	ctx := context.Background()
	d := newDispatcher()
	mustSucceed(t, d.Handle(ctx, Request{Action: CreatePost, PostID: "p1", Category: "Tips", Title: "t", Content: "c"}))
	mustSucceed(t, d.Handle(ctx, Request{Action: AddComment, CommentID: "c1", PostID: "p1", Content: "hi"}))

	resp := d.Handle(ctx, Request{Action: GetComments, PostID: "p1"})
	mustSucceed(t, resp)
	var comments []plan.Comment
	_ = json.Unmarshal(resp.Data, &comments)
	if len(comments) != 1 || comments[0].UserID != "guest" || !comments[0].CreatedAt.Equal(fixedNow) {
		t.Errorf("unexpected comments: %+v", comments)
	}

	resp = d.Handle(ctx, Request{Action: GetDiscussions})
	var posts []plan.Post
	_ = json.Unmarshal(resp.Data, &posts)
	if len(posts) != 1 || posts[0].UserID != "guest" {
		t.Errorf("unexpected posts: %+v", posts)
	}
}

func TestRequestValuesRoundTrip(t *testing.T) {
	in := Request{Action: GetSchedules, UserID: "u 1", IsPublic: boolPtr(true)}
	q, err := url.ParseQuery(in.Values().Encode())
	if err != nil {
		t.Fatal(err)
	}
	out := RequestFromValues(q)
	if out.Action != in.Action || out.UserID != in.UserID || out.IsPublic == nil || !*out.IsPublic {
		t.Errorf("round trip mismatch: %+v", out)
	}
	if out.ScheduleID != "" {
		t.Errorf("absent fields must stay empty: %+v", out)
	}
}
