package review

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"bookreview/internal/catalog"
	"bookreview/internal/httpx"
)

const (
	FormModeAdd  = "add"
	FormModeEdit = "edit"
)

type BookDetailer interface {
	Detail(ctx context.Context, id string) (catalog.Item, error)
}

type HTTPHandler struct {
	reviews *Service
	books   BookDetailer
}

func NewHTTPHandler(reviews *Service, books BookDetailer) *HTTPHandler {
	return &HTTPHandler{reviews: reviews, books: books}
}

type BookView struct {
	catalog.Item
	RatingDisplay string `json:"rating_display"`
}

type DetailResponse struct {
	Book        BookView `json:"book"`
	Reviews     []Review `json:"reviews"`
	ReviewCount int      `json:"review_count"`
	OwnReview   *Review  `json:"own_review"`
	FormMode    string   `json:"form_mode"`
}

type SubmitResponse struct {
	Review      Review `json:"review"`
	ReviewCount int    `json:"review_count"`
	FormMode    string `json:"form_mode"`
}

// Detail handles GET /book/{id}
// @Summary Book detail view
// @Description Book metadata plus its reviews and the caller's own review, if any
// @Tags books
// @Produce json
// @Param id path string true "Volume ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /book/{id} [get]
func (h *HTTPHandler) Detail(w http.ResponseWriter, r *http.Request) {
	bookID := r.PathValue("id")
	_, initials := httpx.UserFrom(r)

	item, err := h.books.Detail(r.Context(), bookID)
	if err != nil {
		if errors.Is(err, catalog.ErrBookIDRequired) {
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "No book ID provided", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusBadGateway, "FETCH_FAILED", "Failed to fetch book details", nil)
		return
	}

	resp := DetailResponse{
		Book:     BookView{Item: item, RatingDisplay: catalog.FormatRating(ratingOf(item))},
		Reviews:  h.reviews.Reviews(item.ID),
		FormMode: FormModeAdd,
	}
	resp.ReviewCount = len(resp.Reviews)
	if own, ok := h.reviews.OwnReview(item.ID, initials); ok {
		resp.OwnReview = &own
		resp.FormMode = FormModeEdit
	}

	httpx.JSONSuccess(w, r, resp, nil)
}

// Submit handles POST /book/{id}/reviews
// @Summary Add or edit a review
// @Description Creates the caller's review for the book or replaces it in place
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path string true "Volume ID"
// @Success 201 {object} httpx.SuccessResponse
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /book/{id}/reviews [post]
func (h *HTTPHandler) Submit(w http.ResponseWriter, r *http.Request) {
	bookID := r.PathValue("id")
	_, initials := httpx.UserFrom(r)

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	rev, replaced, err := h.reviews.submit(r.Context(), initials, bookID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrRatingRequired):
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Please select a rating", []httpx.ErrorDetail{
				{Field: "rating", Message: "Please select a rating"},
			})
		case errors.Is(err, ErrReviewTextRequired):
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Please write a review", []httpx.ErrorDetail{
				{Field: "reviewText", Message: "Please write a review"},
			})
		case errors.Is(err, ErrBookIDRequired):
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Unable to submit review", nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	resp := SubmitResponse{
		Review:      rev,
		ReviewCount: len(h.reviews.Reviews(bookID)),
		FormMode:    FormModeEdit,
	}
	if replaced {
		httpx.JSONSuccess(w, r, resp, nil)
		return
	}
	httpx.JSONSuccessCreated(w, r, resp)
}

func ratingOf(item catalog.Item) float64 {
	if item.AverageRating == nil {
		return 0
	}
	return *item.AverageRating
}
