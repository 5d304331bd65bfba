// Package gateway is the client's only path to the backend. It offers one
// request primitive, Call, and the fixed set of typed operations built on
// it. How envelopes travel is a Transport chosen once at startup.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"plan2read/internal/api"
	"plan2read/internal/plan"
)

type Gateway struct {
	transport Transport
	log       *zap.Logger
}

func New(t Transport, log *zap.Logger) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{transport: t, log: log}
}

// Call sends one envelope. The error is a *TransportError when no valid
// envelope came back and a *RemoteError when the backend answered
// status "error".
func (g *Gateway) Call(ctx context.Context, req api.Request) (api.Response, error) {
	resp, err := g.transport.Call(ctx, req)
	if err != nil {
		g.log.Error("gateway transport failure", zap.String("action", req.Action), zap.Error(err))
		return api.Response{}, &TransportError{Action: req.Action, Err: err}
	}

	switch resp.Status {
	case api.StatusSuccess:
		return resp, nil
	case api.StatusError:
		g.log.Warn("gateway remote error", zap.String("action", req.Action), zap.String("message", resp.Message))
		return resp, &RemoteError{Action: req.Action, Message: resp.Message}
	default:
		return resp, &TransportError{Action: req.Action, Err: fmt.Errorf("malformed envelope status %q", resp.Status)}
	}
}

func fetch[T any](ctx context.Context, g *Gateway, req api.Request) ([]T, error) {
	resp, err := g.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if len(resp.Data) == 0 || bytes.Equal(resp.Data, []byte("null")) {
		return out, nil
	}
	if err := json.Unmarshal(resp.Data, &out); err != nil {
		return nil, &TransportError{Action: req.Action, Err: fmt.Errorf("decode data: %w", err)}
	}
	return out, nil
}

func (g *Gateway) send(ctx context.Context, req api.Request) error {
	_, err := g.Call(ctx, req)
	return err
}

// GetSchedules returns the user's rows plus all public rows; an empty
// userID asks for public rows only.
func (g *Gateway) GetSchedules(ctx context.Context, userID string) ([]plan.Schedule, error) {
	return fetch[plan.Schedule](ctx, g, api.Request{Action: api.GetSchedules, UserID: userID})
}

func (g *Gateway) GetSessions(ctx context.Context, scheduleID string) ([]plan.Session, error) {
	return fetch[plan.Session](ctx, g, api.Request{Action: api.GetSessions, ScheduleID: scheduleID})
}

func (g *Gateway) GetDiscussions(ctx context.Context) ([]plan.Post, error) {
	return fetch[plan.Post](ctx, g, api.Request{Action: api.GetDiscussions})
}

func (g *Gateway) GetComments(ctx context.Context, postID string) ([]plan.Comment, error) {
	return fetch[plan.Comment](ctx, g, api.Request{Action: api.GetComments, PostID: postID})
}

func (g *Gateway) CreateSchedule(ctx context.Context, s plan.Schedule) error {
	public := s.IsPublic
	return g.send(ctx, api.Request{
		Action:       api.CreateSchedule,
		ScheduleID:   s.ID,
		UserID:       s.OwnerID,
		ScheduleName: s.Name,
		Description:  s.Description,
		IsPublic:     &public,
	})
}

func (g *Gateway) CloneSchedule(ctx context.Context, sourceID, newID, newUserID, newName string) error {
	return g.send(ctx, api.Request{
		Action:           api.CloneSchedule,
		SourceScheduleID: sourceID,
		NewScheduleID:    newID,
		NewUserID:        newUserID,
		NewScheduleName:  newName,
	})
}

func (g *Gateway) AddSession(ctx context.Context, s plan.Session) error {
	return g.send(ctx, api.Request{
		Action:     api.AddSession,
		SessionID:  s.ID,
		ScheduleID: s.ScheduleID,
		DayOfWeek:  s.DayOfWeek,
		Subject:    s.Subject,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
	})
}

func (g *Gateway) DeleteSession(ctx context.Context, sessionID string) error {
	return g.send(ctx, api.Request{Action: api.DeleteSession, SessionID: sessionID})
}

func (g *Gateway) CreatePost(ctx context.Context, p plan.Post) error {
	return g.send(ctx, api.Request{
		Action:   api.CreatePost,
		PostID:   p.ID,
		UserID:   p.UserID,
		Category: p.Category,
		Title:    p.Title,
		Content:  p.Content,
	})
}

func (g *Gateway) AddComment(ctx context.Context, c plan.Comment) error {
	return g.send(ctx, api.Request{
		Action:    api.AddComment,
		CommentID: c.ID,
		PostID:    c.PostID,
		UserID:    c.UserID,
		Content:   c.Content,
	})
}
