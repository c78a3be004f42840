package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smartoffice/platform/internal/core/domain"
)

const collectionAssetEvents = "asset_events"

// AuditRepository persists asset mutation events to the asset_events collection.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAssetEvents)}
}

// EnsureIndexes indexes events by asset and time for per-asset history reads.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "asset_id", Value: 1}, {Key: "occurred_at", Value: 1}},
	})
	return err
}

// InsertEvent writes a single audit record.
func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.AssetEvent) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	doc := bson.M{
		"event_id":    event.ID,
		"asset_id":    event.AssetID,
		"action":      string(event.Action),
		"actor":       event.Actor,
		"occurred_at": event.OccurredAt.UTC(),
		"recorded_at": time.Now().UTC(),
		"snapshot": bson.M{
			"name":     event.Name,
			"type":     event.Type,
			"location": event.Location,
		},
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}
