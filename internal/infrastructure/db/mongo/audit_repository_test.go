package mongo

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/smartoffice/platform/internal/core/domain"
)

func TestAuditRepository_InsertEvent(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("writes event document with snapshot", func(mt *mtest.T) {
		repo := NewAuditRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		occurred := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
		err := repo.InsertEvent(context.Background(), &domain.AssetEvent{
			ID:         "evt-1",
			AssetID:    "a1",
			Action:     domain.AssetUpdated,
			Actor:      "root",
			Name:       "X1",
			Type:       "Laptop",
			Location:   "Floor 3",
			OccurredAt: occurred,
		})
		if err != nil {
			mt.Fatalf("InsertEvent returned error: %v", err)
		}

		doc := insertedDocument(mt, collectionAssetEvents)
		want := map[string]string{
			"event_id": "evt-1",
			"asset_id": "a1",
			"action":   "updated",
			"actor":    "root",
		}
		for key, value := range want {
			if got := doc.Lookup(key).StringValue(); got != value {
				mt.Fatalf("%s = %q, want %q", key, got, value)
			}
		}
		if got := doc.Lookup("occurred_at").Time().UTC(); !got.Equal(occurred) {
			mt.Fatalf("occurred_at = %v, want %v", got, occurred)
		}
		if got := doc.Lookup("snapshot", "name").StringValue(); got != "X1" {
			mt.Fatalf("snapshot.name = %q", got)
		}
		if got := doc.Lookup("snapshot", "type").StringValue(); got != "Laptop" {
			mt.Fatalf("snapshot.type = %q", got)
		}
		if got := doc.Lookup("snapshot", "location").StringValue(); got != "Floor 3" {
			mt.Fatalf("snapshot.location = %q", got)
		}
	})

	mt.Run("server error is returned", func(mt *mtest.T) {
		repo := NewAuditRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    91,
			Message: "shutdown in progress",
		}))

		if err := repo.InsertEvent(context.Background(), &domain.AssetEvent{ID: "evt-2", AssetID: "a1"}); err == nil {
			mt.Fatalf("expected error")
		}
	})
}

// insertedDocument returns the first document of the recorded insert into collection.
func insertedDocument(mt *mtest.T, collection string) bson.Raw {
	mt.Helper()
	for evt := mt.GetStartedEvent(); evt != nil; evt = mt.GetStartedEvent() {
		if evt.CommandName != "insert" || evt.Command.Lookup("insert").StringValue() != collection {
			continue
		}
		values, err := evt.Command.Lookup("documents").Array().Values()
		if err != nil || len(values) == 0 {
			mt.Fatalf("insert carried no documents: %v", err)
		}
		return values[0].Document()
	}
	mt.Fatalf("no insert into %s recorded", collection)
	return nil
}
