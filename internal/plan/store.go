package plan

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrDuplicateID = errors.New("already exists")
)

// Store is the authoritative backend behind the action API. Each method is
// atomic on its own; nothing spans calls.
type Store interface {
	// ListSchedules returns the caller's rows plus every public row, or only
	// public rows when userID is empty.
	ListSchedules(ctx context.Context, userID string) ([]Schedule, error)
	ListSessions(ctx context.Context, scheduleID string) ([]Session, error)
	ListPosts(ctx context.Context) ([]Post, error)
	ListComments(ctx context.Context, postID string) ([]Comment, error)

	CreateSchedule(ctx context.Context, s Schedule) error
	CloneSchedule(ctx context.Context, in CloneInput) error
	AddSession(ctx context.Context, s Session) error
	DeleteSession(ctx context.Context, sessionID string) error
	CreatePost(ctx context.Context, p Post) error
	AddComment(ctx context.Context, c Comment) error
}

type CloneInput struct {
	SourceID  string
	NewID     string
	NewUserID string
	NewName   string
	At        time.Time
}

// Visible is the getSchedules filter.
func Visible(s Schedule, userID string) bool {
	if userID != "" {
		return s.OwnerID == userID || s.IsPublic
	}
	return s.IsPublic
}

// CloneHeader is the private header row a clone appends.
func CloneHeader(in CloneInput) Schedule {
	return Schedule{
		ID:          in.NewID,
		OwnerID:     in.NewUserID,
		Name:        in.NewName,
		Description: "Cloned from " + in.SourceID,
		IsPublic:    false,
		UpdatedAt:   in.At,
	}
}

// CloneSessions copies day, subject and times verbatim under newScheduleID,
// numbering the new ids in source order.
func CloneSessions(src []Session, newScheduleID string) []Session {
	out := make([]Session, 0, len(src))
	for i, s := range src {
		out = append(out, Session{
			ID:         fmt.Sprintf("sess_%s_%d", newScheduleID, i+1),
			ScheduleID: newScheduleID,
			DayOfWeek:  s.DayOfWeek,
			Subject:    s.Subject,
			StartTime:  s.StartTime,
			EndTime:    s.EndTime,
		})
	}
	return out
}

func duplicate(kind, id string) error {
	return fmt.Errorf("%s %s %w", kind, id, ErrDuplicateID)
}
