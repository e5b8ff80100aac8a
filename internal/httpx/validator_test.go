package httpx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type reviewForm struct {
	Rating     int    `validate:"required,min=1,max=5"`
	ReviewText string `validate:"notblank"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.Empty(t, ValidateStruct(reviewForm{Rating: 4, ReviewText: "Loved it"}))
	})

	t.Run("missing rating and blank text", func(t *testing.T) {
		details := ValidateStruct(reviewForm{ReviewText: "   "})
		assert.Len(t, details, 2)
		assert.Equal(t, "rating", details[0].Field)
		assert.Equal(t, "Rating is required", details[0].Message)
		assert.Equal(t, "reviewText", details[1].Field)
	})

	t.Run("rating out of range", func(t *testing.T) {
		details := ValidateStruct(reviewForm{Rating: 6, ReviewText: "ok"})
		assert.Len(t, details, 1)
		assert.Equal(t, "Rating must be at most 5", details[0].Message)
	})
}
