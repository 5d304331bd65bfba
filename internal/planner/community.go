package planner

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"plan2read/internal/identity"
	"plan2read/internal/plan"
)

const sharedDescriptionPrefix = "Shared via Community from "

// Community publishes schedules and copies public ones. It works on the
// Repository's remote and state.
type Community struct {
	Repo *Repository
}

// Share publishes a copy of sourceID under a fresh public id. It is two
// backend calls: create the public header, then clone the sessions into
// it. If the clone fails the header stays published with no sessions
// and a *PartialShareError is returned.
func (c *Community) Share(ctx context.Context, sourceID, name string) (string, error) {
	r := c.Repo
	name = strings.TrimSpace(name)
	if sourceID == "" {
		return "", invalid("schedule", "is required")
	}
	if name == "" {
		return "", invalid("schedule name", "is required")
	}

	newID := r.IDs.New(identity.PrefixShared)
	header := plan.Schedule{
		ID:          newID,
		OwnerID:     r.UserID,
		Name:        name,
		Description: sharedDescriptionPrefix + sourceID,
		IsPublic:    true,
	}
	if err := r.Remote.CreateSchedule(ctx, header); err != nil {
		return "", err
	}
	if err := r.Remote.CloneSchedule(ctx, sourceID, newID, r.UserID, name); err != nil {
		r.logger().Warn("share left an empty public schedule",
			zap.String("schedule_id", newID), zap.String("source_id", sourceID), zap.Error(err))
		return newID, &PartialShareError{ScheduleID: newID, Err: err}
	}

	if err := c.List(ctx); err != nil {
		r.logger().Warn("reload community after share", zap.Error(err))
	}
	return newID, nil
}

// ShareCurrent shares the hydrated schedule under its own name.
func (c *Community) ShareCurrent(ctx context.Context) (string, error) {
	cur, ok := c.Repo.State.Current()
	if !ok {
		return "", invalid("", "no schedule is open")
	}
	return c.Share(ctx, cur.ID, cur.Name)
}

// Copy clones a shared schedule into a new private schedule owned by
// the user, then reloads the user's schedules.
func (c *Community) Copy(ctx context.Context, sharedID, newName string) (string, error) {
	r := c.Repo
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return "", invalid("schedule name", "is required")
	}

	newID := r.IDs.New(identity.PrefixSchedule)
	if err := r.Remote.CloneSchedule(ctx, sharedID, newID, r.UserID, newName); err != nil {
		return "", err
	}
	if err := r.LoadSchedules(ctx); err != nil {
		r.logger().Warn("reload schedules after copy", zap.Error(err))
	}
	return newID, nil
}

// List caches every public schedule, the user's own shares included.
func (c *Community) List(ctx context.Context) error {
	rows, err := c.Repo.Remote.GetSchedules(ctx, "")
	if err != nil {
		return err
	}
	public := make([]plan.Schedule, 0, len(rows))
	for _, s := range rows {
		if s.IsPublic {
			public = append(public, s)
		}
	}
	c.Repo.State.setCommunity(public)
	return nil
}
