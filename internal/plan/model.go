package plan

import "time"

// Schedule is a named container of study sessions. Column and JSON names
// follow the action API wire format.
type Schedule struct {
	ID          string    `gorm:"column:schedule_id;primaryKey" json:"schedule_id"`
	OwnerID     string    `gorm:"column:user_id;index;not null" json:"user_id"`
	Name        string    `gorm:"column:schedule_name;not null" json:"schedule_name"`
	Description string    `gorm:"column:description;type:text;not null;default:''" json:"description"`
	IsPublic    bool      `gorm:"column:is_public;index;not null;default:false" json:"is_public"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null" json:"updated_at"`

	// Seq keeps append order for reads.
	Seq uint64 `gorm:"column:seq;autoIncrement;index" json:"-"`
}

func (Schedule) TableName() string { return "schedules" }

// Session is one study block. Times stay "HH:MM" strings on the wire and
// in storage; use Slot to compare them.
type Session struct {
	ID         string `gorm:"column:session_id;primaryKey" json:"session_id"`
	ScheduleID string `gorm:"column:schedule_id;index;not null" json:"schedule_id"`
	DayOfWeek  string `gorm:"column:day_of_week;not null" json:"day_of_week"`
	Subject    string `gorm:"column:subject;type:text;not null" json:"subject"`
	StartTime  string `gorm:"column:start_time;not null" json:"start_time"`
	EndTime    string `gorm:"column:end_time;not null" json:"end_time"`

	Seq uint64 `gorm:"column:seq;autoIncrement;index" json:"-"`
}

func (Session) TableName() string { return "study_sessions" }

// Post is a discussion thread head. Category is free-form.
type Post struct {
	ID        string    `gorm:"column:post_id;primaryKey" json:"post_id"`
	UserID    string    `gorm:"column:user_id;not null" json:"user_id"`
	Category  string    `gorm:"column:category;not null;default:''" json:"category"`
	Title     string    `gorm:"column:title;type:text;not null" json:"title"`
	Content   string    `gorm:"column:content;type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at;index;not null" json:"created_at"`

	Seq uint64 `gorm:"column:seq;autoIncrement;index" json:"-"`
}

func (Post) TableName() string { return "discussions" }

type Comment struct {
	ID        string    `gorm:"column:comment_id;primaryKey" json:"comment_id"`
	PostID    string    `gorm:"column:post_id;index;not null" json:"post_id"`
	UserID    string    `gorm:"column:user_id;not null" json:"user_id"`
	Content   string    `gorm:"column:content;type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`

	Seq uint64 `gorm:"column:seq;autoIncrement;index" json:"-"`
}

func (Comment) TableName() string { return "comments" }
