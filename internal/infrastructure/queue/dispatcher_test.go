package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/smartoffice/platform/internal/core/domain"
)

type recordingAuditRepo struct {
	mu     sync.Mutex
	events []domain.AssetEvent
	err    error
}

func (r *recordingAuditRepo) InsertEvent(_ context.Context, e *domain.AssetEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, *e)
	return nil
}

func TestDispatcher_PreservesPerAssetOrder(t *testing.T) {
	repo := &recordingAuditRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())
	d.Start(context.Background())

	actions := []domain.AssetAction{domain.AssetCreated, domain.AssetUpdated, domain.AssetUpdated, domain.AssetDeleted}
	for a := 0; a < 10; a++ {
		for i, action := range actions {
			d.Publish(domain.AssetEvent{
				ID:      fmt.Sprintf("evt-%d-%d", a, i),
				AssetID: fmt.Sprintf("asset-%d", a),
				Action:  action,
			})
		}
	}
	d.Close()

	if len(repo.events) != 40 {
		t.Fatalf("expected 40 stored events, got %d", len(repo.events))
	}

	seen := make(map[string]int)
	for _, e := range repo.events {
		want := fmt.Sprintf("evt-%s-%d", e.AssetID[len("asset-"):], seen[e.AssetID])
		if e.ID != want {
			t.Fatalf("out of order for %s: expected %s, got %s", e.AssetID, want, e.ID)
		}
		seen[e.AssetID]++
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, &recordingAuditRepo{}, zerolog.Nop())
	first := d.shardIndex("65f1c0ffee")
	for i := 0; i < 5; i++ {
		if got := d.shardIndex("65f1c0ffee"); got != first {
			t.Fatalf("shard index changed: %d vs %d", first, got)
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_WriteFailureIsNotFatal(t *testing.T) {
	repo := &recordingAuditRepo{err: errors.New("mongo down")}
	d := NewDispatcher(1, repo, zerolog.Nop())
	d.Start(context.Background())

	d.Publish(domain.AssetEvent{ID: "e1", AssetID: "a1", Action: domain.AssetCreated})
	d.Publish(domain.AssetEvent{ID: "e2", AssetID: "a1", Action: domain.AssetDeleted})
	d.Close()

	if len(repo.events) != 0 {
		t.Fatalf("expected nothing stored, got %d", len(repo.events))
	}
}

func TestDispatcher_PublishAfterCloseIsDropped(t *testing.T) {
	repo := &recordingAuditRepo{}
	d := NewDispatcher(2, repo, zerolog.Nop())
	d.Start(context.Background())
	d.Close()
	d.Close()

	d.Publish(domain.AssetEvent{ID: "late", AssetID: "a1"})
	if len(repo.events) != 0 {
		t.Fatalf("expected late event to be dropped")
	}
}
