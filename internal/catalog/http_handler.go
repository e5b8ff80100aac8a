package catalog

import (
	"errors"
	"net/http"

	"bookreview/internal/httpx"
)

const (
	DefaultQuery = "react programming"

	MsgNoResults   = "No books found"
	MsgEmptyQuery  = "Please enter a search term"
	MsgFetchFailed = "Failed to fetch books. Please try again."
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

type DashboardUser struct {
	Username string `json:"username"`
	Initials string `json:"initials"`
}

type DashboardRow struct {
	BookRow
	RatingDisplay string `json:"rating_display"`
}

type DashboardView struct {
	User       DashboardUser  `json:"user"`
	Query      string         `json:"query"`
	Rows       []DashboardRow `json:"rows"`
	TotalItems int            `json:"total_items"`
	Message    string         `json:"message,omitempty"`
}

// Dashboard handles GET /dashboard
// @Summary Search dashboard
// @Description Runs a two-page catalog search and returns display rows
// @Tags catalog
// @Produce json
// @Param q query string false "Search query" default(react programming)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /dashboard [get]
func (h *HTTPHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	username, initials := httpx.UserFrom(r)
	view := DashboardView{
		User: DashboardUser{Username: username, Initials: initials},
		Rows: []DashboardRow{},
	}

	query := DefaultQuery
	if r.URL.Query().Has("q") {
		query = r.URL.Query().Get("q")
	}
	view.Query = query

	result, err := h.svc.Search(r.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyQuery):
			view.Message = MsgEmptyQuery
			httpx.JSONErrorWithData(w, r, http.StatusBadRequest, "EMPTY_QUERY", MsgEmptyQuery, view)
		default:
			view.Message = MsgFetchFailed
			httpx.JSONErrorWithData(w, r, http.StatusBadGateway, "FETCH_FAILED", MsgFetchFailed, view)
		}
		return
	}

	view.Query = result.Query
	view.TotalItems = result.TotalItems
	for _, row := range result.Rows {
		view.Rows = append(view.Rows, DashboardRow{BookRow: row, RatingDisplay: FormatRating(row.AverageRating)})
	}
	if result.NoResults {
		view.Message = MsgNoResults
	}

	httpx.JSONSuccess(w, r, view, map[string]any{"rows": len(view.Rows)})
}
