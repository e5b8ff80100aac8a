package review

import "errors"

var (
	ErrBookIDRequired     = errors.New("unable to submit review")
	ErrRatingRequired     = errors.New("please select a rating")
	ErrReviewTextRequired = errors.New("please write a review")
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is one user's rating of one book. A book holds at most one Review per UserInitials.
type Review struct {
	BookID       string `json:"bookId"`
	Rating       int    `json:"rating"`
	ReviewText   string `json:"reviewText"`
	UserInitials string `json:"userInitials"`
	Timestamp    int64  `json:"timestamp"`
}

// Change describes a mutation of the store. Position is the slot the review
// occupies in its book's list after the mutation.
type Change struct {
	Review   Review `json:"review"`
	Replaced bool   `json:"replaced"`
	Position int    `json:"position"`
	Cleared  bool   `json:"cleared,omitempty"`
}

type SubmitRequest struct {
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	ReviewText string `json:"reviewText" validate:"notblank"`
}
