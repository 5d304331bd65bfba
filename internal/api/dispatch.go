package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"plan2read/internal/plan"
)

// MsgNotFound is the message a failed lookup carries on the wire.
const MsgNotFound = "Not found"

const guestUser = "guest"

type actionError struct{ msg string }

func (e *actionError) Error() string { return e.msg }

// Dispatcher executes one action envelope against a Store. It is the
// backend's request handler; the HTTP service and the embedded gateway
// transport both call it.
type Dispatcher struct {
	Store plan.Store
	Log   *zap.Logger
	Now   func() time.Time
}

func (d *Dispatcher) Handle(ctx context.Context, req Request) Response {
	resp, err := d.handle(ctx, req)
	if err == nil {
		return resp
	}

	var ae *actionError
	switch {
	case errors.Is(err, plan.ErrNotFound):
		d.logger().Info("action target missing", zap.String("action", req.Action))
		return Failure(MsgNotFound)
	case errors.As(err, &ae), errors.Is(err, plan.ErrDuplicateID):
		d.logger().Warn("action rejected", zap.String("action", req.Action), zap.Error(err))
		return Failure(err.Error())
	default:
		d.logger().Error("action failed", zap.String("action", req.Action), zap.Error(err))
		return Failure(err.Error())
	}
}

func (d *Dispatcher) handle(ctx context.Context, req Request) (Response, error) {
	switch req.Action {
	case GetSchedules:
		return list(d.Store.ListSchedules(ctx, req.UserID))

	case GetSessions:
		if err := require("schedule_id", req.ScheduleID); err != nil {
			return Response{}, err
		}
		return list(d.Store.ListSessions(ctx, req.ScheduleID))

	case GetDiscussions:
		return list(d.Store.ListPosts(ctx))

	case GetComments:
		if err := require("post_id", req.PostID); err != nil {
			return Response{}, err
		}
		return list(d.Store.ListComments(ctx, req.PostID))

	case CreateSchedule:
		if err := require("schedule_id", req.ScheduleID, "user_id", req.UserID); err != nil {
			return Response{}, err
		}
		s := plan.Schedule{
			ID:          req.ScheduleID,
			OwnerID:     req.UserID,
			Name:        req.ScheduleName,
			Description: req.Description,
			IsPublic:    req.IsPublic != nil && *req.IsPublic,
			UpdatedAt:   d.now(),
		}
		return done(d.Store.CreateSchedule(ctx, s))

	case CloneSchedule:
		if err := require(
			"source_schedule_id", req.SourceScheduleID,
			"new_schedule_id", req.NewScheduleID,
			"new_user_id", req.NewUserID,
		); err != nil {
			return Response{}, err
		}
		return done(d.Store.CloneSchedule(ctx, plan.CloneInput{
			SourceID:  req.SourceScheduleID,
			NewID:     req.NewScheduleID,
			NewUserID: req.NewUserID,
			NewName:   req.NewScheduleName,
			At:        d.now(),
		}))

	case AddSession:
		if err := require("session_id", req.SessionID, "schedule_id", req.ScheduleID); err != nil {
			return Response{}, err
		}
		return done(d.Store.AddSession(ctx, plan.Session{
			ID:         req.SessionID,
			ScheduleID: req.ScheduleID,
			DayOfWeek:  req.DayOfWeek,
			Subject:    req.Subject,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
		}))

	case DeleteSession:
		if err := require("session_id", req.SessionID); err != nil {
			return Response{}, err
		}
		return done(d.Store.DeleteSession(ctx, req.SessionID))

	case CreatePost:
		if err := require("post_id", req.PostID); err != nil {
			return Response{}, err
		}
		return done(d.Store.CreatePost(ctx, plan.Post{
			ID:        req.PostID,
			UserID:    orGuest(req.UserID),
			Category:  req.Category,
			Title:     req.Title,
			Content:   req.Content,
			CreatedAt: d.now(),
		}))

	case AddComment:
		if err := require("comment_id", req.CommentID, "post_id", req.PostID); err != nil {
			return Response{}, err
		}
		return done(d.Store.AddComment(ctx, plan.Comment{
			ID:        req.CommentID,
			PostID:    req.PostID,
			UserID:    orGuest(req.UserID),
			Content:   req.Content,
			CreatedAt: d.now(),
		}))
	}

	return Response{}, &actionError{msg: "Unknown action: " + req.Action}
}

// require takes name/value pairs and fails on the first empty value.
func require(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return &actionError{msg: fmt.Sprintf("missing field: %s", pairs[i])}
		}
	}
	return nil
}

func list[T any](rows []T, err error) (Response, error) {
	if err != nil {
		return Response{}, err
	}
	if rows == nil {
		rows = []T{}
	}
	return Success(rows), nil
}

func done(err error) (Response, error) {
	if err != nil {
		return Response{}, err
	}
	return Success(nil), nil
}

func orGuest(userID string) string {
	if userID == "" {
		return guestUser
	}
	return userID
}

func (d *Dispatcher) now() time.Time {
	if d.Now != nil {
		return d.Now().UTC()
	}
	return time.Now().UTC()
}

func (d *Dispatcher) logger() *zap.Logger {
	if d.Log != nil {
		return d.Log
	}
	return zap.NewNop()
}
