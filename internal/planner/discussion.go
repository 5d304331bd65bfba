package planner

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"

	"plan2read/internal/identity"
	"plan2read/internal/plan"
)

// Discussion caches the board and the comments of the open post.
// Creates are not inserted optimistically; the list is refetched after
// every create, whether it succeeded or not.
type Discussion struct {
	Remote Remote
	State  *State
	IDs    IDGen
	UserID string
	Log    *zap.Logger
}

type PostInput struct {
	Category string
	Title    string
	Content  string
}

func (d *Discussion) LoadPosts(ctx context.Context) error {
	rows, err := d.Remote.GetDiscussions(ctx)
	if err != nil {
		return err
	}
	d.State.setPosts(rows)
	return nil
}

// Posts returns the cached posts newest first. Posts with equal
// timestamps keep backend order.
func (d *Discussion) Posts() []plan.Post {
	posts := d.State.rawPosts()
	slices.SortStableFunc(posts, func(a, b plan.Post) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return posts
}

// OpenPost marks a cached post open and loads its comments. Unknown ids
// are ignored.
func (d *Discussion) OpenPost(ctx context.Context, id string) error {
	if !d.State.hasPost(id) {
		d.logger().Debug("open post: unknown id ignored", zap.String("post_id", id))
		return nil
	}
	d.State.setOpenPost(id)
	return d.LoadComments(ctx, id)
}

func (d *Discussion) ClosePost() {
	d.State.closePost()
}

// LoadComments caches the comments of postID, oldest first.
func (d *Discussion) LoadComments(ctx context.Context, postID string) error {
	rows, err := d.Remote.GetComments(ctx, postID)
	if err != nil {
		return err
	}
	out := make([]plan.Comment, 0, len(rows))
	for _, c := range rows {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(a, b plan.Comment) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	d.State.setComments(out)
	return nil
}

func (d *Discussion) CreatePost(ctx context.Context, in PostInput) error {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" {
		return invalid("title", "is required")
	}
	if content == "" {
		return invalid("content", "is required")
	}

	err := d.Remote.CreatePost(ctx, plan.Post{
		ID:       d.IDs.New(identity.PrefixPost),
		UserID:   d.UserID,
		Category: strings.TrimSpace(in.Category),
		Title:    title,
		Content:  content,
	})
	if rerr := d.LoadPosts(ctx); rerr != nil {
		d.logger().Warn("reload posts", zap.Error(rerr))
	}
	return err
}

// SubmitComment adds a comment to the open post.
func (d *Discussion) SubmitComment(ctx context.Context, content string) error {
	postID := d.State.openPostIDValue()
	if postID == "" {
		return invalid("", "no post is open")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return invalid("comment", "is required")
	}

	err := d.Remote.AddComment(ctx, plan.Comment{
		ID:      d.IDs.New(identity.PrefixComment),
		PostID:  postID,
		UserID:  d.UserID,
		Content: content,
	})
	if rerr := d.LoadComments(ctx, postID); rerr != nil {
		d.logger().Warn("reload comments", zap.String("post_id", postID), zap.Error(rerr))
	}
	return err
}

func (d *Discussion) logger() *zap.Logger {
	if d.Log != nil {
		return d.Log
	}
	return zap.NewNop()
}
