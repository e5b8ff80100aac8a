package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bookreview/internal/platform/googlebooks"
)

const (
	PageSize = 20
	// Pages is fixed: a search never looks past offset PageSize*(Pages-1).
	Pages = 2

	UnknownTitle  = "Unknown Title"
	UnknownAuthor = "Unknown Author"
	Uncategorized = "Uncategorized"
)

var (
	ErrEmptyQuery        = errors.New("empty search query")
	ErrFetchFailed       = errors.New("catalog fetch failed")
	ErrBookIDRequired    = errors.New("no book id provided")
	ErrDetailFetchFailed = errors.New("catalog detail fetch failed")
)

// FetchError carries the transport failure behind ErrFetchFailed / ErrDetailFetchFailed.
type FetchError struct {
	Kind  error
	Cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Cause)
}

func (e *FetchError) Is(target error) bool {
	return target == e.Kind
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Item is a catalog record as supplied by the external source. It is never mutated.
type Item struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	AverageRating *float64 `json:"average_rating,omitempty"`
	Description   string   `json:"description,omitempty"`
	ThumbnailURL  string   `json:"thumbnail_url,omitempty"`
	Publisher     string   `json:"publisher,omitempty"`
	PublishedDate string   `json:"published_date,omitempty"`
}

// BookRow is the display projection of an Item used by the dashboard grid.
type BookRow struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Genre         string  `json:"genre"`
	AverageRating float64 `json:"average_rating"`
}

type SearchResult struct {
	Query      string    `json:"query"`
	Rows       []BookRow `json:"rows"`
	TotalItems int       `json:"total_items"`
	NoResults  bool      `json:"no_results"`
}

func ItemFromVolume(v googlebooks.Volume) Item {
	info := v.VolumeInfo
	thumb := info.ImageLinks.Thumbnail
	if thumb == "" {
		thumb = info.ImageLinks.SmallThumbnail
	}
	return Item{
		ID:            v.ID,
		Title:         info.Title,
		Authors:       info.Authors,
		Categories:    info.Categories,
		AverageRating: info.AverageRating,
		Description:   info.Description,
		ThumbnailURL:  thumb,
		Publisher:     info.Publisher,
		PublishedDate: info.PublishedDate,
	}
}

func Normalize(item Item) BookRow {
	row := BookRow{
		ID:     item.ID,
		Title:  item.Title,
		Author: strings.Join(item.Authors, ", "),
		Genre:  strings.Join(item.Categories, ", "),
	}
	if row.Title == "" {
		row.Title = UnknownTitle
	}
	if row.Author == "" {
		row.Author = UnknownAuthor
	}
	if row.Genre == "" {
		row.Genre = Uncategorized
	}
	if item.AverageRating != nil {
		row.AverageRating = *item.AverageRating
	}
	return row
}

// FormatRating renders a rating for display; zero means the catalog had none.
func FormatRating(v float64) string {
	if v <= 0 {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
