package listings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestServiceList(t *testing.T) {
	t.Parallel()

	t.Run("defaults pagination", func(t *testing.T) {
		t.Parallel()

		storage := new(MockStorage)
		storage.On("List", mock.Anything, mock.MatchedBy(func(p ListParams) bool {
			return p.Page == 1 && p.PerPage == DefaultPerPage
		})).Return([]Listing{{Platform: "Fiverr"}}, int64(1), nil)

		svc := NewService(storage, nil)
		ls, page, err := svc.List(context.Background(), ListParams{})
		require.NoError(t, err)
		assert.Len(t, ls, 1)
		assert.Equal(t, 1, page.TotalPages)
		assert.False(t, page.HasNext)
	})

	t.Run("storage failure carries the sentinel", func(t *testing.T) {
		t.Parallel()

		storage := new(MockStorage)
		storage.On("List", mock.Anything, mock.Anything).
			Return(nil, int64(0), errors.Join(ErrFailedToListListings, errors.New("cursor closed")))

		svc := NewService(storage, nil)
		_, _, err := svc.List(context.Background(), ListParams{})
		assert.ErrorIs(t, err, ErrFailedToListListings)
	})
}

func TestServiceUpdate(t *testing.T) {
	t.Parallel()

	t.Run("maps fields to document keys", func(t *testing.T) {
		t.Parallel()

		earnings := 1200.50
		category := "Web Development"
		storage := new(MockStorage)
		storage.On("Update", mock.Anything, "l1", mock.MatchedBy(func(updates map[string]any) bool {
			return updates["earnings_usd"] == earnings && updates["job_category"] == category
		})).Return(&Listing{EarningsUSD: earnings, JobCategory: category}, nil)

		svc := NewService(storage, nil)
		l, err := svc.Update(context.Background(), "l1", UpdateParams{
			EarningsUSD: &earnings,
			JobCategory: &category,
		})
		require.NoError(t, err)
		assert.Equal(t, earnings, l.EarningsUSD)
		storage.AssertExpectations(t)
	})

	t.Run("empty update reads current document", func(t *testing.T) {
		t.Parallel()

		storage := new(MockStorage)
		storage.On("GetByID", mock.Anything, "l1").Return(&Listing{Platform: "Upwork"}, nil)

		svc := NewService(storage, nil)
		l, err := svc.Update(context.Background(), "l1", UpdateParams{})
		require.NoError(t, err)
		assert.Equal(t, "Upwork", l.Platform)
	})
}

func TestServiceImport(t *testing.T) {
	t.Parallel()

	storage := new(MockStorage)
	storage.On("CreateMany", mock.Anything, mock.MatchedBy(func(ls []Listing) bool {
		return len(ls) == 2
	})).Return(nil)

	svc := NewService(storage, nil)
	err := svc.Import(context.Background(), []Listing{
		{Platform: "Fiverr", JobCategory: "Design"},
		{Platform: "Upwork", JobCategory: "Writing"},
	})
	require.NoError(t, err)
	storage.AssertExpectations(t)
}

func TestBuildFilter(t *testing.T) {
	t.Parallel()

	t.Run("earnings range", func(t *testing.T) {
		t.Parallel()

		min := 100.0
		filter := buildFilter(ListParams{MinEarnings: &min})
		earnings, ok := filter["earnings_usd"].(bson.M)
		require.True(t, ok)
		assert.Equal(t, 100.0, earnings["$gte"])
	})

	t.Run("search spans category platform region and type", func(t *testing.T) {
		t.Parallel()

		filter := buildFilter(ListParams{Search: "design"})
		or, ok := filter["$or"].(bson.A)
		require.True(t, ok)
		assert.Len(t, or, 4)
	})
}
