package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartoffice/platform/internal/api/metrics"
	"github.com/smartoffice/platform/internal/core/domain"
	"github.com/smartoffice/platform/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// Dispatcher routes asset audit events to a fixed set of workers using
// consistent hashing on the asset id, so events for one asset are written in
// the order they were published.
type Dispatcher struct {
	workers []chan domain.AssetEvent
	repo    ports.AuditRepository
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AssetEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AssetEvent, channelBuffer)
	}
	return d
}

// Start launches the worker goroutines. Workers exit when ctx is cancelled or
// after Close has drained their channels.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Publish hands event to its worker without blocking. When the worker's
// channel is full the event is dropped and counted.
func (d *Dispatcher) Publish(event domain.AssetEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		metrics.AuditEventsTotal.WithLabelValues("dropped").Inc()
		return
	}

	idx := d.shardIndex(event.AssetID)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditEventsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("asset_id", event.AssetID).Int("worker_id", idx).Msg("audit queue full, event dropped")
	}
}

// Close stops accepting events and waits for the queued ones to be written.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// shardIndex maps an asset id deterministically to a worker index.
func (d *Dispatcher) shardIndex(assetID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(assetID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AssetEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.write(ctx, id, event)
		}
	}
}

func (d *Dispatcher) write(ctx context.Context, worker int, event domain.AssetEvent) {
	// Detached from ctx so events drained during shutdown are still written.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	start := time.Now()
	err := d.repo.InsertEvent(writeCtx, &event)
	metrics.AuditWriteDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AuditEventsTotal.WithLabelValues("failed").Inc()
		d.log.Error().Err(err).
			Str("asset_id", event.AssetID).
			Str("action", string(event.Action)).
			Int("worker_id", worker).
			Msg("audit event write failed")
		return
	}
	metrics.AuditEventsTotal.WithLabelValues("stored").Inc()
}
