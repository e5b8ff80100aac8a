package events

import (
	"context"
	"encoding/json"
	"time"

	"bookreview/internal/platform/logger"
	"bookreview/internal/platform/metrics"
	"bookreview/internal/review"
)

const (
	TypeReviewUpserted = "review_upserted"
	TypeReviewsCleared = "reviews_cleared"

	publishTimeout = 5 * time.Second
)

type ReviewEvent struct {
	Type       string         `json:"type"`
	Review     *review.Review `json:"review,omitempty"`
	Replaced   bool           `json:"replaced"`
	Position   int            `json:"position"`
	OccurredAt time.Time      `json:"occurred_at"`
}

func NewReviewEvent(c review.Change, at time.Time) ReviewEvent {
	if c.Cleared {
		return ReviewEvent{Type: TypeReviewsCleared, OccurredAt: at}
	}
	r := c.Review
	return ReviewEvent{
		Type:       TypeReviewUpserted,
		Review:     &r,
		Replaced:   c.Replaced,
		Position:   c.Position,
		OccurredAt: at,
	}
}

// Key partitions events so one user's edits to one book stay ordered.
func (e ReviewEvent) Key() string {
	if e.Review == nil {
		return "*"
	}
	return e.Review.BookID + ":" + e.Review.UserInitials
}

// Relay forwards store changes to a Publisher from a single worker goroutine.
// Enqueue never blocks the store; a full buffer drops the event.
type Relay struct {
	pub   Publisher
	queue chan ReviewEvent
	now   func() time.Time
}

func NewRelay(pub Publisher, buffer int) *Relay {
	if buffer <= 0 {
		buffer = 256
	}
	return &Relay{pub: pub, queue: make(chan ReviewEvent, buffer), now: time.Now}
}

// Attach subscribes the relay to store and returns the unsubscribe func.
func (r *Relay) Attach(store *review.Store) func() {
	return store.Subscribe(r.Enqueue)
}

func (r *Relay) Enqueue(c review.Change) {
	select {
	case r.queue <- NewReviewEvent(c, r.now()):
	default:
		metrics.ReviewEventsPublished.WithLabelValues("dropped").Inc()
		logger.Warn().Str("book_id", c.Review.BookID).Msg("review event queue full, dropping event")
	}
}

// Run publishes queued events until ctx is cancelled, then drains what is left.
func (r *Relay) Run(ctx context.Context) {
	for {
		select {
		case ev := <-r.queue:
			r.publish(ev)
		case <-ctx.Done():
			for {
				select {
				case ev := <-r.queue:
					r.publish(ev)
				default:
					return
				}
			}
		}
	}
}

func (r *Relay) publish(ev ReviewEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		metrics.ReviewEventsPublished.WithLabelValues("failed").Inc()
		logger.Error().Err(err).Msg("failed to encode review event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := r.pub.PublishMessage(ctx, ev.Key(), payload); err != nil {
		metrics.ReviewEventsPublished.WithLabelValues("failed").Inc()
		logger.Error().Err(err).Str("key", ev.Key()).Msg("failed to publish review event")
		return
	}
	metrics.ReviewEventsPublished.WithLabelValues("success").Inc()
}
