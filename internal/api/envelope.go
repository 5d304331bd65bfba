package api

import (
	"encoding/json"
	"net/url"
	"strconv"
)

// Action names are the wire contract with the backend.
const (
	GetSchedules   = "getSchedules"
	GetSessions    = "getSessions"
	GetDiscussions = "getDiscussions"
	GetComments    = "getComments"
	CreateSchedule = "createSchedule"
	CloneSchedule  = "cloneSchedule"
	AddSession     = "addSession"
	DeleteSession  = "deleteSession"
	CreatePost     = "createPost"
	AddComment     = "addComment"
)

// IsRead reports whether action may travel as a GET query.
func IsRead(action string) bool {
	switch action {
	case GetSchedules, GetSessions, GetDiscussions, GetComments:
		return true
	}
	return false
}

// IsWrite reports whether action mutates the store and so must be POSTed.
func IsWrite(action string) bool {
	switch action {
	case CreateSchedule, CloneSchedule, AddSession, DeleteSession, CreatePost, AddComment:
		return true
	}
	return false
}

// Request is the flat envelope {action, ...fields}. Only the fields an
// action names are meaningful; the rest stay empty.
type Request struct {
	Action string `json:"action"`

	UserID       string `json:"user_id,omitempty"`
	ScheduleID   string `json:"schedule_id,omitempty"`
	ScheduleName string `json:"schedule_name,omitempty"`
	Description  string `json:"description,omitempty"`
	IsPublic     *bool  `json:"is_public,omitempty"`

	SourceScheduleID string `json:"source_schedule_id,omitempty"`
	NewScheduleID    string `json:"new_schedule_id,omitempty"`
	NewUserID        string `json:"new_user_id,omitempty"`
	NewScheduleName  string `json:"new_schedule_name,omitempty"`

	SessionID string `json:"session_id,omitempty"`
	DayOfWeek string `json:"day_of_week,omitempty"`
	Subject   string `json:"subject,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`

	PostID    string `json:"post_id,omitempty"`
	Category  string `json:"category,omitempty"`
	Title     string `json:"title,omitempty"`
	Content   string `json:"content,omitempty"`
	CommentID string `json:"comment_id,omitempty"`
}

func (r *Request) stringFields() map[string]*string {
	return map[string]*string{
		"action":             &r.Action,
		"user_id":            &r.UserID,
		"schedule_id":        &r.ScheduleID,
		"schedule_name":      &r.ScheduleName,
		"description":        &r.Description,
		"source_schedule_id": &r.SourceScheduleID,
		"new_schedule_id":    &r.NewScheduleID,
		"new_user_id":        &r.NewUserID,
		"new_schedule_name":  &r.NewScheduleName,
		"session_id":         &r.SessionID,
		"day_of_week":        &r.DayOfWeek,
		"subject":            &r.Subject,
		"start_time":         &r.StartTime,
		"end_time":           &r.EndTime,
		"post_id":            &r.PostID,
		"category":           &r.Category,
		"title":              &r.Title,
		"content":            &r.Content,
		"comment_id":         &r.CommentID,
	}
}

// Values renders the GET query variant of the envelope.
func (r Request) Values() url.Values {
	v := url.Values{}
	for k, p := range r.stringFields() {
		if *p != "" {
			v.Set(k, *p)
		}
	}
	if r.IsPublic != nil {
		v.Set("is_public", strconv.FormatBool(*r.IsPublic))
	}
	return v
}

// RequestFromValues parses a GET query back into an envelope. An
// unparseable is_public is treated as absent.
func RequestFromValues(v url.Values) Request {
	var r Request
	for k, p := range r.stringFields() {
		*p = v.Get(k)
	}
	if s := v.Get("is_public"); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			r.IsPublic = &b
		}
	}
	return r
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response is {status, message?, data?}.
type Response struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func Success(data any) Response {
	if data == nil {
		return Response{Status: StatusSuccess}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return Failure("encode response: " + err.Error())
	}
	return Response{Status: StatusSuccess, Data: b}
}

func Failure(msg string) Response {
	return Response{Status: StatusError, Message: msg}
}
