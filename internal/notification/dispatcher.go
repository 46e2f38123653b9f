// Package notification delivers domain events to an external transport on a
// best-effort basis. Emit never blocks the caller and never fails; delivery
// is retried in the background until an attempt budget runs out.
package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"proofpack/internal/platform/metrics"
	"proofpack/pkg/platform/circuit"
	"proofpack/pkg/requestcontext"
)

const (
	defaultRetryInterval = 5 * time.Second
	defaultSendTimeout   = 2 * time.Second
	defaultMaxAttempts   = 5
	defaultBatchSize     = 100
)

// Transport sends one event. Implementations must be safe for concurrent use.
type Transport interface {
	Send(ctx context.Context, event Event) error
}

type Dispatcher struct {
	transport     Transport
	buffer        *RingBuffer
	breaker       *circuit.Breaker
	logger        *slog.Logger
	metrics       *metrics.Metrics
	retryInterval time.Duration
	sendTimeout   time.Duration
	maxAttempts   int
	batchSize     int

	wake     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

type Option func(*Dispatcher)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

func WithBufferSize(n int) Option {
	return func(d *Dispatcher) {
		d.buffer = NewRingBuffer(n)
	}
}

func WithRetryInterval(interval time.Duration) Option {
	return func(d *Dispatcher) {
		if interval > 0 {
			d.retryInterval = interval
		}
	}
}

func WithSendTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.sendTimeout = timeout
		}
	}
}

func WithMaxAttempts(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.maxAttempts = n
		}
	}
}

// WithFailureThreshold sets the consecutive send failures that open the
// breaker. While open, each round sends a single probe event.
func WithFailureThreshold(n int) Option {
	return func(d *Dispatcher) {
		d.breaker = circuit.New("notification", circuit.WithFailureThreshold(n))
	}
}

func NewDispatcher(transport Transport, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		transport:     transport,
		buffer:        NewRingBuffer(defaultBufferCapacity),
		breaker:       circuit.New("notification"),
		logger:        slog.Default(),
		retryInterval: defaultRetryInterval,
		sendTimeout:   defaultSendTimeout,
		maxAttempts:   defaultMaxAttempts,
		batchSize:     defaultBatchSize,
		wake:          make(chan struct{}, 1),
		stop:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Emit queues event for delivery and returns immediately.
func (d *Dispatcher) Emit(ctx context.Context, event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = requestcontext.Now(ctx)
	}
	event.Attempts = 0

	if d.buffer.Enqueue(event) {
		d.record(event.Kind, "overflow")
		d.logger.WarnContext(ctx, "notification buffer full, dropped oldest event",
			"kind", string(event.Kind),
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	d.observeBacklog()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Start runs the delivery loop until ctx is cancelled or Close is called.
func (d *Dispatcher) Start(ctx context.Context) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ticker := time.NewTicker(d.retryInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-d.stop:
				return
			case <-d.wake:
				d.Flush(ctx)
			case <-ticker.C:
				d.Flush(ctx)
			}
		}
	}()
}

// Close stops the loop and makes one last delivery pass bounded by ctx.
func (d *Dispatcher) Close(ctx context.Context) {
	d.stopOnce.Do(func() { close(d.stop) })
	d.wg.Wait()
	d.Flush(ctx)
	if n := d.buffer.Len(); n > 0 {
		d.logger.WarnContext(ctx, "notifications undelivered at shutdown", "count", n)
	}
}

// Flush makes one delivery pass over the events queued when it starts.
// Events that fail are requeued for the next pass.
func (d *Dispatcher) Flush(ctx context.Context) {
	pending := d.buffer.Len()
	for pending > 0 {
		if ctx.Err() != nil {
			return
		}
		batch := d.buffer.DequeueBatch(min(pending, d.batchSize))
		if len(batch) == 0 {
			return
		}
		pending -= len(batch)

		for i, event := range batch {
			if i > 0 && d.breaker.IsOpen() {
				d.requeue(batch[i:])
				break
			}
			d.deliver(ctx, event)
		}
		if d.breaker.IsOpen() {
			break
		}
	}
	d.observeBacklog()
}

func (d *Dispatcher) deliver(ctx context.Context, event Event) {
	sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	err := d.transport.Send(sendCtx, event)
	cancel()

	if err == nil {
		if _, change := d.breaker.RecordSuccess(); change.Closed {
			d.logger.InfoContext(ctx, "notification transport recovered")
		}
		d.record(event.Kind, "delivered")
		return
	}

	if _, change := d.breaker.RecordFailure(); change.Opened {
		d.logger.WarnContext(ctx, "notification transport failing, probing until it recovers",
			"error", err,
		)
	}
	event.Attempts++
	if event.Attempts >= d.maxAttempts {
		d.record(event.Kind, "dropped")
		d.logger.ErrorContext(ctx, "notification dropped after retries",
			"event_id", event.ID,
			"kind", string(event.Kind),
			"pack_id", event.PackID.String(),
			"attempts", event.Attempts,
			"error", err,
		)
		return
	}
	d.record(event.Kind, "retried")
	d.logger.WarnContext(ctx, "notification send failed, will retry",
		"event_id", event.ID,
		"kind", string(event.Kind),
		"attempts", event.Attempts,
		"error", err,
	)
	d.requeue([]Event{event})
}

// requeue puts events back without evicting newer ones.
func (d *Dispatcher) requeue(events []Event) {
	for _, event := range events {
		if !d.buffer.TryEnqueue(event) {
			d.record(event.Kind, "overflow")
		}
	}
}

// Pending returns the number of events awaiting delivery.
func (d *Dispatcher) Pending() int {
	return d.buffer.Len()
}

func (d *Dispatcher) record(kind Kind, outcome string) {
	if d.metrics != nil {
		d.metrics.Notifications.WithLabelValues(string(kind), outcome).Inc()
	}
}

func (d *Dispatcher) observeBacklog() {
	if d.metrics != nil {
		d.metrics.NotificationBacklog.Set(float64(d.buffer.Len()))
	}
}
