package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/stackmoneyup/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AnalyticsRepository defines the interface for engagement event operations
type AnalyticsRepository interface {
	RecordEngagement(ctx context.Context, postID, kind, language string) error
	RecordShare(ctx context.Context, postID, platform string) error
	EngagementCounts(ctx context.Context, postIDs []string) (map[string]map[string]int64, error)
	ShareCounts(ctx context.Context, postIDs []string) (map[string]models.ShareBreakdown, error)
}

// MongoAnalyticsRepository implements AnalyticsRepository for MongoDB
type MongoAnalyticsRepository struct {
	engagement *mongo.Collection
	shares     *mongo.Collection
}

// NewMongoAnalyticsRepository creates a new MongoAnalyticsRepository
func NewMongoAnalyticsRepository(db *mongo.Database) *MongoAnalyticsRepository {
	return &MongoAnalyticsRepository{
		engagement: db.Collection("engagement_events"),
		shares:     db.Collection("share_events"),
	}
}

// RecordEngagement stores a view or read event for a post
func (r *MongoAnalyticsRepository) RecordEngagement(ctx context.Context, postID, kind, language string) error {
	if kind != models.EventView && kind != models.EventRead {
		return fmt.Errorf("unknown engagement kind %q", kind)
	}
	event := models.EngagementEvent{
		PostID:     postID,
		Kind:       kind,
		Language:   language,
		OccurredAt: time.Now(),
	}
	_, err := r.engagement.InsertOne(ctx, event)
	return err
}

// RecordShare stores a share event for a post
func (r *MongoAnalyticsRepository) RecordShare(ctx context.Context, postID, platform string) error {
	if !models.SharePlatforms[platform] {
		return fmt.Errorf("unknown share platform %q", platform)
	}
	event := models.ShareEvent{
		PostID:     postID,
		Platform:   platform,
		OccurredAt: time.Now(),
	}
	_, err := r.shares.InsertOne(ctx, event)
	return err
}

// EngagementCounts aggregates view/read events per post. The outer map is
// keyed by post id, the inner by event kind.
func (r *MongoAnalyticsRepository) EngagementCounts(ctx context.Context, postIDs []string) (map[string]map[string]int64, error) {
	result := make(map[string]map[string]int64)
	if len(postIDs) == 0 {
		return result, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"post_id": bson.M{"$in": postIDs}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"post_id": "$post_id", "kind": "$kind"},
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.engagement.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID struct {
			PostID string `bson:"post_id"`
			Kind   string `bson:"kind"`
		} `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	for _, row := range rows {
		kinds, ok := result[row.ID.PostID]
		if !ok {
			kinds = make(map[string]int64)
			result[row.ID.PostID] = kinds
		}
		kinds[row.ID.Kind] = row.Count
	}
	return result, nil
}

// ShareCounts aggregates share events per post broken down by platform
func (r *MongoAnalyticsRepository) ShareCounts(ctx context.Context, postIDs []string) (map[string]models.ShareBreakdown, error) {
	result := make(map[string]models.ShareBreakdown)
	if len(postIDs) == 0 {
		return result, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"post_id": bson.M{"$in": postIDs}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"post_id": "$post_id", "platform": "$platform"},
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.shares.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID struct {
			PostID   string `bson:"post_id"`
			Platform string `bson:"platform"`
		} `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	for _, row := range rows {
		breakdown := result[row.ID.PostID]
		switch row.ID.Platform {
		case "twitter":
			breakdown.Twitter = row.Count
		case "facebook":
			breakdown.Facebook = row.Count
		case "linkedin":
			breakdown.LinkedIn = row.Count
		case "copy":
			breakdown.Copy = row.Count
		}
		result[row.ID.PostID] = breakdown
	}
	return result, nil
}
