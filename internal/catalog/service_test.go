package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"bookreview/internal/platform/googlebooks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func volumes(ids ...string) []googlebooks.Volume {
	out := make([]googlebooks.Volume, len(ids))
	for i, id := range ids {
		out[i] = googlebooks.Volume{ID: id, VolumeInfo: googlebooks.VolumeInfo{Title: "Title " + id}}
	}
	return out
}

func letters(from, to byte) []string {
	var out []string
	for c := from; c <= to; c++ {
		out = append(out, string(c))
	}
	return out
}

// barrierClient blocks every page fetch until Pages fetches are in flight.
type barrierClient struct {
	arrived sync.WaitGroup
}

func newBarrierClient() *barrierClient {
	c := &barrierClient{}
	c.arrived.Add(Pages)
	return c
}

func (c *barrierClient) SearchVolumes(ctx context.Context, query string, maxResults, startIndex int) (*googlebooks.VolumesResponse, error) {
	c.arrived.Done()
	all := make(chan struct{})
	go func() {
		c.arrived.Wait()
		close(all)
	}()
	select {
	case <-all:
		return &googlebooks.VolumesResponse{Items: volumes(fmt.Sprintf("p%d", startIndex))}, nil
	case <-time.After(2 * time.Second):
		return nil, errors.New("page fetches did not overlap")
	}
}

func (c *barrierClient) GetVolume(ctx context.Context, id string) (*googlebooks.Volume, error) {
	return nil, errors.New("not used")
}

func TestService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("page 1 fully precedes page 2", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		client := NewMockVolumeClient(ctrl)

		page1 := letters('a', 't')
		page2 := letters('u', 'z')
		for i := 0; len(page2) < PageSize; i++ {
			page2 = append(page2, fmt.Sprintf("pad%02d", i))
		}

		client.EXPECT().SearchVolumes(gomock.Any(), "react", PageSize, 0).
			Return(&googlebooks.VolumesResponse{TotalItems: 120, Items: volumes(page1...)}, nil)
		client.EXPECT().SearchVolumes(gomock.Any(), "react", PageSize, PageSize).
			Return(&googlebooks.VolumesResponse{TotalItems: 120, Items: volumes(page2...)}, nil)

		res, err := NewService(client).Search(ctx, "react")
		require.NoError(t, err)
		assert.False(t, res.NoResults)
		assert.Equal(t, 120, res.TotalItems)
		require.Len(t, res.Rows, 2*PageSize)

		want := append(append([]string{}, page1...), page2...)
		got := make([]string, len(res.Rows))
		for i, row := range res.Rows {
			got[i] = row.ID
		}
		assert.Equal(t, want, got)
	})

	t.Run("pages are fetched concurrently", func(t *testing.T) {
		res, err := NewService(newBarrierClient()).Search(ctx, "q")
		require.NoError(t, err)
		require.Len(t, res.Rows, Pages)
		assert.Equal(t, "p0", res.Rows[0].ID)
		assert.Equal(t, fmt.Sprintf("p%d", PageSize), res.Rows[1].ID)
	})

	t.Run("query is trimmed before fetching", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		client := NewMockVolumeClient(ctrl)

		client.EXPECT().SearchVolumes(gomock.Any(), "dune", PageSize, gomock.Any()).
			Return(&googlebooks.VolumesResponse{Items: volumes("x")}, nil).Times(2)

		res, err := NewService(client).Search(ctx, "  dune ")
		require.NoError(t, err)
		assert.Equal(t, "dune", res.Query)
		assert.Len(t, res.Rows, 2)
	})

	t.Run("empty query never reaches the source", func(t *testing.T) {
		for _, q := range []string{"", "   ", "\t\n"} {
			ctrl := gomock.NewController(t)
			client := NewMockVolumeClient(ctrl)

			_, err := NewService(client).Search(ctx, q)
			assert.ErrorIs(t, err, ErrEmptyQuery)
			ctrl.Finish()
		}
	})

	t.Run("both pages fail", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		client := NewMockVolumeClient(ctrl)

		cause := errors.New("connection refused")
		client.EXPECT().SearchVolumes(gomock.Any(), "dune", PageSize, gomock.Any()).
			Return(nil, cause).Times(2)

		res, err := NewService(client).Search(ctx, "dune")
		assert.ErrorIs(t, err, ErrFetchFailed)
		assert.ErrorIs(t, err, cause)
		assert.Nil(t, res.Rows)
	})

	t.Run("one page failing fails the search", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		client := NewMockVolumeClient(ctrl)

		client.EXPECT().SearchVolumes(gomock.Any(), "dune", PageSize, 0).
			Return(&googlebooks.VolumesResponse{Items: volumes(letters('a', 't')...)}, nil)
		client.EXPECT().SearchVolumes(gomock.Any(), "dune", PageSize, PageSize).
			Return(nil, &googlebooks.StatusError{StatusCode: 503})

		res, err := NewService(client).Search(ctx, "dune")
		assert.ErrorIs(t, err, ErrFetchFailed)
		var statusErr *googlebooks.StatusError
		assert.True(t, errors.As(err, &statusErr))
		assert.Empty(t, res.Rows)
	})

	t.Run("zero items is no results, not an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		client := NewMockVolumeClient(ctrl)

		client.EXPECT().SearchVolumes(gomock.Any(), "qwzx", PageSize, gomock.Any()).
			Return(&googlebooks.VolumesResponse{Items: []googlebooks.Volume{}}, nil).Times(2)

		res, err := NewService(client).Search(ctx, "qwzx")
		require.NoError(t, err)
		assert.True(t, res.NoResults)
		assert.NotNil(t, res.Rows)
		assert.Empty(t, res.Rows)
	})

	t.Run("short second page", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		client := NewMockVolumeClient(ctrl)

		client.EXPECT().SearchVolumes(gomock.Any(), "rare", PageSize, 0).
			Return(&googlebooks.VolumesResponse{TotalItems: 3, Items: volumes("a", "b", "c")}, nil)
		client.EXPECT().SearchVolumes(gomock.Any(), "rare", PageSize, PageSize).
			Return(&googlebooks.VolumesResponse{TotalItems: 3}, nil)

		res, err := NewService(client).Search(ctx, "rare")
		require.NoError(t, err)
		assert.Len(t, res.Rows, 3)
		assert.False(t, res.NoResults)
	})

	t.Run("repeated queries are not memoized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		client := NewMockVolumeClient(ctrl)

		client.EXPECT().SearchVolumes(gomock.Any(), "go", PageSize, gomock.Any()).
			Return(&googlebooks.VolumesResponse{Items: volumes("g")}, nil).Times(4)

		svc := NewService(client)
		_, err := svc.Search(ctx, "go")
		require.NoError(t, err)
		_, err = svc.Search(ctx, "go")
		require.NoError(t, err)
	})
}

func TestService_Detail(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		client := NewMockVolumeClient(ctrl)

		rating := 3.5
		client.EXPECT().GetVolume(gomock.Any(), "abc").Return(&googlebooks.Volume{
			ID: "abc",
			VolumeInfo: googlebooks.VolumeInfo{
				Title:         "Dune",
				Authors:       []string{"Frank Herbert"},
				AverageRating: &rating,
				ImageLinks:    googlebooks.ImageLinks{SmallThumbnail: "http://img/s.jpg"},
			},
		}, nil)

		item, err := NewService(client).Detail(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, "Dune", item.Title)
		assert.Equal(t, "http://img/s.jpg", item.ThumbnailURL)
		require.NotNil(t, item.AverageRating)
		assert.Equal(t, 3.5, *item.AverageRating)
	})

	t.Run("missing id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, err := NewService(NewMockVolumeClient(ctrl)).Detail(ctx, " ")
		assert.ErrorIs(t, err, ErrBookIDRequired)
	})

	t.Run("nil volume without error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		client := NewMockVolumeClient(ctrl)

		client.EXPECT().GetVolume(gomock.Any(), "ghost").Return(nil, nil)

		_, err := NewService(client).Detail(ctx, "ghost")
		assert.ErrorIs(t, err, ErrDetailFetchFailed)
	})

	t.Run("source failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		client := NewMockVolumeClient(ctrl)

		client.EXPECT().GetVolume(gomock.Any(), "gone").Return(nil, &googlebooks.StatusError{StatusCode: 404})

		_, err := NewService(client).Detail(ctx, "gone")
		assert.ErrorIs(t, err, ErrDetailFetchFailed)
		assert.NotErrorIs(t, err, ErrFetchFailed)
	})
}
