package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/contentdesk/cms/internal/core/ports"
	"github.com/contentdesk/cms/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ViewDispatcher runs view increments off the request path. Post ids are
// sharded onto a fixed set of workers by hash, so increments for one post
// are applied in arrival order by a single goroutine.
//
// Delivery is best effort: Schedule drops the increment when the target
// worker's buffer is full or the dispatcher is shutting down, and failed
// writes are counted and forgotten.
type ViewDispatcher struct {
	workers []chan string
	store   ports.ViewIncrementer
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewViewDispatcher creates a dispatcher with numWorkers sharded workers of
// buffer slots each. Non-positive values select the defaults.
func NewViewDispatcher(numWorkers, buffer int, store ports.ViewIncrementer, log zerolog.Logger) *ViewDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if buffer <= 0 {
		buffer = channelBuffer
	}
	d := &ViewDispatcher{
		workers: make([]chan string, numWorkers),
		store:   store,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, buffer)
	}
	return d
}

// Start launches all worker goroutines. ctx is the context handed to the
// storage layer; it is independent of any request.
func (d *ViewDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Schedule queues an increment for postID without blocking.
func (d *ViewDispatcher) Schedule(postID string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		metrics.ViewIncrementsTotal.WithLabelValues("dropped").Inc()
		return false
	}

	idx := d.shardIndex(postID)
	select {
	case d.workers[idx] <- postID:
		metrics.ViewQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
		return true
	default:
		metrics.ViewIncrementsTotal.WithLabelValues("dropped").Inc()
		return false
	}
}

// Shutdown stops accepting increments, lets workers drain what is already
// queued and waits for them, or for ctx to end.
func (d *ViewDispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps a post id deterministically to a worker index.
func (d *ViewDispatcher) shardIndex(postID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(postID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *ViewDispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for postID := range ch {
		metrics.ViewQueueDepth.WithLabelValues(label).Dec()

		if err := d.store.IncrementViews(ctx, postID); err != nil {
			metrics.ViewIncrementsTotal.WithLabelValues("error").Inc()
			d.log.Debug().Err(err).
				Str("post_id", postID).
				Int("worker_id", id).
				Msg("view increment failed")
			continue
		}
		metrics.ViewIncrementsTotal.WithLabelValues("ok").Inc()
	}
}
