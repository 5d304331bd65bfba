// Package planner is the client core: a cache of the user's schedules,
// the open schedule's sessions, the community list and the discussion
// board, kept in step with the backend through a Remote.
//
// Every mutation goes to the backend first. The cache changes only after
// the backend confirmed it, so a failed call leaves State as it was.
package planner

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"

	"plan2read/internal/identity"
	"plan2read/internal/plan"
	"plan2read/internal/prefs"
)

// Remote is the backend as the planner sees it. *gateway.Gateway
// implements it.
type Remote interface {
	GetSchedules(ctx context.Context, userID string) ([]plan.Schedule, error)
	GetSessions(ctx context.Context, scheduleID string) ([]plan.Session, error)
	GetDiscussions(ctx context.Context) ([]plan.Post, error)
	GetComments(ctx context.Context, postID string) ([]plan.Comment, error)

	CreateSchedule(ctx context.Context, s plan.Schedule) error
	CloneSchedule(ctx context.Context, sourceID, newID, newUserID, newName string) error
	AddSession(ctx context.Context, s plan.Session) error
	DeleteSession(ctx context.Context, sessionID string) error
	CreatePost(ctx context.Context, p plan.Post) error
	AddComment(ctx context.Context, c plan.Comment) error
}

type IDGen interface {
	New(prefix string) string
}

// Repository owns the user's schedules and the hydrated schedule.
type Repository struct {
	Remote Remote
	State  *State
	Prefs  prefs.Store
	IDs    IDGen
	UserID string
	Log    *zap.Logger
}

type SessionInput struct {
	Subject   string
	StartTime string
	EndTime   string
}

// LoadSchedules replaces the cached list with the schedules the user
// owns. Public schedules of other users are dropped.
func (r *Repository) LoadSchedules(ctx context.Context) error {
	rows, err := r.Remote.GetSchedules(ctx, r.UserID)
	if err != nil {
		return err
	}
	own := make([]plan.Schedule, 0, len(rows))
	for _, s := range rows {
		if s.OwnerID == r.UserID {
			own = append(own, s)
		}
	}
	r.State.setSchedules(own)
	return nil
}

// LoadSchedule hydrates id. An id that is not in the cached list is
// ignored.
func (r *Repository) LoadSchedule(ctx context.Context, id string) error {
	sc, ok := r.State.findSchedule(id)
	if !ok {
		r.logger().Debug("load schedule: unknown id ignored", zap.String("schedule_id", id))
		return nil
	}

	sessions, err := r.Remote.GetSessions(ctx, id)
	if err != nil {
		return err
	}
	r.State.setCurrent(CurrentSchedule{ID: sc.ID, Name: sc.Name, Sessions: sessions})

	if err := r.Prefs.Set(prefs.KeyCurrentSchedule, id); err != nil {
		r.logger().Warn("remember current schedule", zap.String("schedule_id", id), zap.Error(err))
	}
	return nil
}

// Init loads the schedule list and hydrates the remembered schedule, or
// the first one when the remembered id is gone.
func (r *Repository) Init(ctx context.Context) error {
	if err := r.LoadSchedules(ctx); err != nil {
		return err
	}
	schedules := r.State.Schedules()
	if len(schedules) == 0 {
		return nil
	}

	target := schedules[0].ID
	if id, ok := r.Prefs.Get(prefs.KeyCurrentSchedule); ok {
		if _, found := r.State.findSchedule(id); found {
			target = id
		}
	}
	return r.LoadSchedule(ctx, target)
}

// CreateSchedule creates an empty private schedule and reloads the list.
func (r *Repository) CreateSchedule(ctx context.Context, name string) (plan.Schedule, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return plan.Schedule{}, invalid("schedule name", "is required")
	}

	s := plan.Schedule{
		ID:      r.IDs.New(identity.PrefixSchedule),
		OwnerID: r.UserID,
		Name:    name,
	}
	if err := r.Remote.CreateSchedule(ctx, s); err != nil {
		return plan.Schedule{}, err
	}
	if err := r.LoadSchedules(ctx); err != nil {
		r.logger().Warn("reload schedules after create", zap.Error(err))
	}
	return s, nil
}

// DeleteSchedule is not offered by the backend.
func (r *Repository) DeleteSchedule(_ context.Context, id string) error {
	r.logger().Info("delete schedule requested", zap.String("schedule_id", id))
	return ErrUnsupported
}

func (r *Repository) SelectDay(label string) (plan.Weekday, error) {
	d, err := plan.ParseWeekday(label)
	if err != nil {
		return 0, invalid("day", "must be a day of the week")
	}
	r.State.setSelectedDay(d)
	return d, nil
}

// AddSession validates the candidate against the selected day of the
// hydrated schedule, sends it, and caches it once accepted.
func (r *Repository) AddSession(ctx context.Context, in SessionInput) (plan.Session, error) {
	cur, ok := r.State.Current()
	if !ok {
		return plan.Session{}, invalid("", "no schedule is open")
	}
	day, ok := r.State.SelectedDay()
	if !ok {
		return plan.Session{}, invalid("", "no day is selected")
	}

	subject := strings.TrimSpace(in.Subject)
	switch {
	case subject == "":
		return plan.Session{}, invalid("subject", "is required")
	case strings.TrimSpace(in.StartTime) == "":
		return plan.Session{}, invalid("start time", "is required")
	case strings.TrimSpace(in.EndTime) == "":
		return plan.Session{}, invalid("end time", "is required")
	}

	start, err := plan.ParseClock(in.StartTime)
	if err != nil {
		return plan.Session{}, invalid("start time", "must be HH:MM")
	}
	end, err := plan.ParseClock(in.EndTime)
	if err != nil {
		return plan.Session{}, invalid("end time", "must be HH:MM")
	}
	if start >= end {
		return plan.Session{}, invalid("start time", "must precede end time")
	}

	candidate := plan.Slot{Day: day, Start: start, End: end}
	for _, existing := range cur.Sessions {
		slot, err := existing.Slot()
		if err != nil {
			r.logger().Warn("skip unparseable session in overlap check",
				zap.String("session_id", existing.ID), zap.Error(err))
			continue
		}
		if slot.Overlaps(candidate) {
			return plan.Session{}, &ConflictError{With: existing}
		}
	}

	s := plan.Session{
		ID:         r.IDs.New(identity.PrefixSession),
		ScheduleID: cur.ID,
		DayOfWeek:  day.String(),
		Subject:    subject,
		StartTime:  start.String(),
		EndTime:    end.String(),
	}
	if err := r.Remote.AddSession(ctx, s); err != nil {
		return plan.Session{}, err
	}
	r.State.appendSession(cur.ID, s)
	return s, nil
}

func (r *Repository) DeleteSession(ctx context.Context, id string) error {
	if err := r.Remote.DeleteSession(ctx, id); err != nil {
		return err
	}
	r.State.removeSession(id)
	return nil
}

// DaySessions lists the hydrated schedule's sessions on day by start
// time. Sessions whose times do not parse sort last.
func (r *Repository) DaySessions(day plan.Weekday) []plan.Session {
	cur, ok := r.State.Current()
	if !ok {
		return nil
	}
	var out []plan.Session
	for _, s := range cur.Sessions {
		if d, err := plan.ParseWeekday(s.DayOfWeek); err == nil && d == day {
			out = append(out, s)
		}
	}
	slices.SortStableFunc(out, func(a, b plan.Session) int {
		return startKey(a) - startKey(b)
	})
	return out
}

// WeekSummary counts the hydrated schedule's sessions per day.
func (r *Repository) WeekSummary() map[plan.Weekday]int {
	out := make(map[plan.Weekday]int, 7)
	for _, d := range plan.Weekdays() {
		out[d] = 0
	}
	cur, ok := r.State.Current()
	if !ok {
		return out
	}
	for _, s := range cur.Sessions {
		if d, err := plan.ParseWeekday(s.DayOfWeek); err == nil {
			out[d]++
		}
	}
	return out
}

func startKey(s plan.Session) int {
	c, err := plan.ParseClock(s.StartTime)
	if err != nil {
		return 24 * 60
	}
	return int(c)
}

func (r *Repository) logger() *zap.Logger {
	if r.Log != nil {
		return r.Log
	}
	return zap.NewNop()
}
