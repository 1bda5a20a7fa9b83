package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Engagement event kinds recorded against a post.
const (
	EventView = "view"
	EventRead = "read"
)

// Share platforms accepted by the share tracker.
var SharePlatforms = map[string]bool{
	"twitter":  true,
	"facebook": true,
	"linkedin": true,
	"copy":     true,
}

// EngagementEvent is a page view or read-completion event stored in MongoDB
type EngagementEvent struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PostID     string             `json:"post_id" bson:"post_id"`
	Kind       string             `json:"kind" bson:"kind"` // view or read
	Language   string             `json:"language,omitempty" bson:"language,omitempty"`
	OccurredAt time.Time          `json:"occurred_at" bson:"occurred_at"`
}

// ShareEvent records a single share of a post on a platform
type ShareEvent struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PostID     string             `json:"post_id" bson:"post_id"`
	Platform   string             `json:"platform" bson:"platform"`
	OccurredAt time.Time          `json:"occurred_at" bson:"occurred_at"`
}

// ShareBreakdown is the per-platform share tally for one post
type ShareBreakdown struct {
	Twitter  int64 `json:"twitter"`
	Facebook int64 `json:"facebook"`
	LinkedIn int64 `json:"linkedin"`
	Copy     int64 `json:"copy"`
}

// Total sums the breakdown across platforms.
func (s ShareBreakdown) Total() int64 {
	return s.Twitter + s.Facebook + s.LinkedIn + s.Copy
}

// PostAnalytics aggregates engagement for one post on the dashboard
type PostAnalytics struct {
	PostID       string         `json:"post_id"`
	Slug         string         `json:"slug"`
	TitleEN      string         `json:"title_en"`
	TitleIT      string         `json:"title_it"`
	Category     string         `json:"category"`
	Published    bool           `json:"published"`
	PublishedAt  *time.Time     `json:"published_at,omitempty"`
	Views        int64          `json:"views"`
	Reads        int64          `json:"reads"`
	ReadRate     float64        `json:"read_rate"` // reads / views, 0 when no views
	Shares       ShareBreakdown `json:"shares"`
	Bookmarks    int64          `json:"bookmarks"`
	CommentCount int64          `json:"comment_count"`
}

// RecordShareRequest defines the request body for tracking a share
type RecordShareRequest struct {
	Platform string `json:"platform" validate:"required,oneof=twitter facebook linkedin copy"`
}
