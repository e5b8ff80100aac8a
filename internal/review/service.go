package review

import (
	"context"
	"strings"
	"time"

	"bookreview/internal/httpx"
	"bookreview/internal/platform/logger"
	"bookreview/internal/platform/metrics"
)

type Service struct {
	store *Store
	now   func() time.Time
}

func NewService(store *Store) *Service {
	return &Service{store: store, now: time.Now}
}

// WithClock replaces the timestamp source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Submit validates a review form and upserts it for the given user.
// Checks run in form order: rating, then text, then identity.
func (s *Service) Submit(ctx context.Context, initials, bookID string, req SubmitRequest) (Review, error) {
	r, _, err := s.submit(ctx, initials, bookID, req)
	return r, err
}

// submit also reports whether an existing review by the same initials was replaced.
func (s *Service) submit(_ context.Context, initials, bookID string, req SubmitRequest) (Review, bool, error) {
	for _, d := range httpx.ValidateStruct(req) {
		if d.Field == "rating" {
			return Review{}, false, ErrRatingRequired
		}
	}
	if strings.TrimSpace(req.ReviewText) == "" {
		return Review{}, false, ErrReviewTextRequired
	}
	if bookID == "" || initials == "" {
		return Review{}, false, ErrBookIDRequired
	}

	r := Review{
		BookID:       bookID,
		Rating:       req.Rating,
		ReviewText:   strings.TrimSpace(req.ReviewText),
		UserInitials: initials,
		Timestamp:    s.now().UnixMilli(),
	}

	change := s.store.upsert(r)

	result := "created"
	if change.Replaced {
		result = "updated"
	}
	metrics.ReviewsSubmitted.WithLabelValues(result).Inc()
	metrics.ReviewsRating.Observe(float64(r.Rating))
	logger.Info().
		Str("book_id", bookID).
		Str("initials", initials).
		Int("rating", r.Rating).
		Str("result", result).
		Msg("review submitted")

	return r, change.Replaced, nil
}

func (s *Service) Reviews(bookID string) []Review {
	return s.store.ReviewsFor(bookID)
}

func (s *Service) OwnReview(bookID, initials string) (Review, bool) {
	return s.store.ReviewBy(bookID, initials)
}
