package plan

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresStore is the Store backed by the tables migrated in internal/db.
type PostgresStore struct {
	DB *gorm.DB
}

func (s *PostgresStore) ListSchedules(ctx context.Context, userID string) ([]Schedule, error) {
	q := s.DB.WithContext(ctx).Model(&Schedule{})
	if userID != "" {
		q = q.Where("user_id = ? OR is_public = ?", userID, true)
	} else {
		q = q.Where("is_public = ?", true)
	}

	var rows []Schedule
	if err := q.Order("seq asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *PostgresStore) ListSessions(ctx context.Context, scheduleID string) ([]Session, error) {
	var rows []Session
	err := s.DB.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Order("seq asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *PostgresStore) ListPosts(ctx context.Context) ([]Post, error) {
	var rows []Post
	if err := s.DB.WithContext(ctx).Order("seq asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *PostgresStore) ListComments(ctx context.Context, postID string) ([]Comment, error) {
	var rows []Comment
	err := s.DB.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("seq asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *PostgresStore) CreateSchedule(ctx context.Context, sch Schedule) error {
	sch.Seq = 0
	if err := s.DB.WithContext(ctx).Create(&sch).Error; err != nil {
		return translate(err, "schedule", sch.ID)
	}
	return nil
}

func (s *PostgresStore) CloneSchedule(ctx context.Context, in CloneInput) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// lock an existing target header so a concurrent clone cannot
		// slip a second header in
		var existing []Schedule
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("schedule_id = ?", in.NewID).
			Limit(1).
			Find(&existing).Error; err != nil {
			return err
		}
		if len(existing) > 0 {
			if existing[0].OwnerID != in.NewUserID {
				return duplicate("schedule", in.NewID)
			}
		} else {
			header := CloneHeader(in)
			if err := tx.Create(&header).Error; err != nil {
				return translate(err, "schedule", in.NewID)
			}
		}

		var sessions []Session
		if err := tx.Where("schedule_id = ?", in.SourceID).Order("seq asc").Find(&sessions).Error; err != nil {
			return err
		}

		copies := CloneSessions(sessions, in.NewID)
		if len(copies) == 0 {
			return nil
		}
		if err := tx.Create(&copies).Error; err != nil {
			return translate(err, "session", copies[0].ID)
		}
		return nil
	})
}

func (s *PostgresStore) AddSession(ctx context.Context, sess Session) error {
	sess.Seq = 0
	if err := s.DB.WithContext(ctx).Create(&sess).Error; err != nil {
		return translate(err, "session", sess.ID)
	}
	return nil
}

func (s *PostgresStore) DeleteSession(ctx context.Context, sessionID string) error {
	res := s.DB.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&Session{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) CreatePost(ctx context.Context, p Post) error {
	p.Seq = 0
	if err := s.DB.WithContext(ctx).Create(&p).Error; err != nil {
		return translate(err, "post", p.ID)
	}
	return nil
}

func (s *PostgresStore) AddComment(ctx context.Context, c Comment) error {
	c.Seq = 0
	if err := s.DB.WithContext(ctx).Create(&c).Error; err != nil {
		return translate(err, "comment", c.ID)
	}
	return nil
}

// uniqueViolation is the SQLSTATE postgres reports for a primary key clash.
const uniqueViolation = "23505"

func translate(err error, kind, id string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return duplicate(kind, id)
	}
	return err
}
