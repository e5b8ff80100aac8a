package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookreview/internal/platform/googlebooks"
	"bookreview/internal/platform/logger"
	"bookreview/internal/platform/metrics"

	"golang.org/x/sync/errgroup"
)

var errEmptyVolume = errors.New("empty volume response")

//go:generate mockgen -destination=mock_volume_client_test.go -package=catalog bookreview/internal/catalog VolumeClient

type VolumeClient interface {
	SearchVolumes(ctx context.Context, query string, maxResults, startIndex int) (*googlebooks.VolumesResponse, error)
	GetVolume(ctx context.Context, id string) (*googlebooks.Volume, error)
}

// Service aggregates the external catalog into dashboard rows and detail records.
// Nothing is cached: every call goes to the source.
type Service struct {
	client VolumeClient
}

func NewService(client VolumeClient) *Service {
	return &Service{client: client}
}

// Search fetches the first two pages of the query concurrently and waits for both.
// If either page fails the whole search fails; a half-size result is never returned.
func (s *Service) Search(ctx context.Context, query string) (SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		metrics.CatalogSearches.WithLabelValues("empty_query").Inc()
		return SearchResult{}, ErrEmptyQuery
	}

	pages := make([]*googlebooks.VolumesResponse, Pages)
	var g errgroup.Group
	for i := range pages {
		offset := i * PageSize
		g.Go(func() error {
			timer := metrics.NewFetchTimer("page")
			defer timer.ObserveDuration()

			res, err := s.client.SearchVolumes(ctx, query, PageSize, offset)
			if err != nil {
				return fmt.Errorf("page at offset %d: %w", offset, err)
			}
			pages[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metrics.CatalogSearches.WithLabelValues("fetch_failed").Inc()
		logger.Error().Err(err).Str("query", query).Msg("catalog search failed")
		return SearchResult{}, &FetchError{Kind: ErrFetchFailed, Cause: err}
	}

	result := SearchResult{Query: query, Rows: []BookRow{}}
	for i, page := range pages {
		if page == nil {
			continue
		}
		if i == 0 {
			result.TotalItems = page.TotalItems
		}
		for _, v := range page.Items {
			result.Rows = append(result.Rows, Normalize(ItemFromVolume(v)))
		}
	}

	if len(result.Rows) == 0 {
		result.NoResults = true
		metrics.CatalogSearches.WithLabelValues("no_results").Inc()
		return result, nil
	}

	metrics.CatalogSearches.WithLabelValues("ok").Inc()
	logger.Debug().
		Str("query", query).
		Int("rows", len(result.Rows)).
		Int("total_items", result.TotalItems).
		Msg("catalog search completed")
	return result, nil
}

func (s *Service) Detail(ctx context.Context, id string) (Item, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Item{}, ErrBookIDRequired
	}

	timer := metrics.NewFetchTimer("volume")
	defer timer.ObserveDuration()

	vol, err := s.client.GetVolume(ctx, id)
	if err == nil && vol == nil {
		err = errEmptyVolume
	}
	if err != nil {
		logger.Error().Err(err).Str("book_id", id).Msg("catalog detail fetch failed")
		return Item{}, &FetchError{Kind: ErrDetailFetchFailed, Cause: err}
	}
	return ItemFromVolume(*vol), nil
}
