package services

import (
	"context"
	"strings"
	"testing"

	"koshub/internal/adapters/persistence/models"
	"koshub/internal/adapters/persistence/repositories"
	"koshub/internal/core/domain"
	"koshub/internal/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRoundRating(t *testing.T) {
	tests := []struct {
		avg  float64
		want float64
	}{
		{4.5, 4.5},
		{4.55, 4.6},
		{4.04, 4.0},
		{3.333333, 3.3},
		{0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundRating(tt.avg))
	}
}

func TestKosService_Search_GenderNormalization(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"male passes through", "male", "male"},
		{"female passes through", "female", "female"},
		{"mixed passes through", "mixed", "mixed"},
		{"all means no filter", "all", ""},
		{"unknown means no filter", "whatever", ""},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kosRepo := new(mockKosRepo)
			svc := NewKosService(kosRepo, nil)

			kosRepo.On("Search", mock.Anything, mock.MatchedBy(func(q *repositories.KosQuery) bool {
				return q.Gender == tt.expected
			})).Return([]*models.Kos{}, int64(0), nil)

			_, err := svc.Search(context.Background(), &SearchInput{Gender: tt.input})
			require.NoError(t, err)
			kosRepo.AssertExpectations(t)
		})
	}
}

func TestKosService_CacheKey(t *testing.T) {
	svc := NewKosService(new(mockKosRepo), nil)
	min := 500000

	a := svc.cacheKey(&SearchInput{Gender: "male", Search: "dekat kampus", MinPrice: &min}, pagination.New(2, 10))
	b := svc.cacheKey(&SearchInput{Gender: "male", Search: "dekat kampus", MinPrice: &min}, pagination.New(2, 10))
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, kosCachePrefix))

	// any filter change must produce a different page key
	c := svc.cacheKey(&SearchInput{Gender: "male", Search: "dekat kampus"}, pagination.New(2, 10))
	d := svc.cacheKey(&SearchInput{Gender: "male", Search: "dekat kampus", MinPrice: &min}, pagination.New(3, 10))
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
}

func TestKosService_Search_DecoratesRatings(t *testing.T) {
	kosRepo := new(mockKosRepo)
	svc := NewKosService(kosRepo, nil)

	items := []*models.Kos{{ID: 1}, {ID: 2}}
	kosRepo.On("Search", mock.Anything, mock.Anything).Return(items, int64(2), nil)
	kosRepo.On("StatsByKosIDs", mock.Anything, []uint{1, 2}).Return(map[uint]repositories.KosStats{
		1: {KosID: 1, AverageRating: 4.3333, ReviewsCount: 3},
	}, nil)

	result, err := svc.Search(context.Background(), &SearchInput{})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)

	assert.Equal(t, 4.3, result.Items[0].AverageRating)
	assert.Equal(t, int64(3), result.Items[0].ReviewsCount)

	// no reviews means zero values
	assert.Equal(t, 0.0, result.Items[1].AverageRating)
	assert.Equal(t, int64(0), result.Items[1].ReviewsCount)
}

func TestKosService_GetDetail(t *testing.T) {
	t.Run("bumps view count", func(t *testing.T) {
		kosRepo := new(mockKosRepo)
		svc := NewKosService(kosRepo, nil)

		kosRepo.On("GetDetail", mock.Anything, uint(1)).
			Return(&models.Kos{ID: 1, IsActive: true, ViewCount: 10}, nil)
		kosRepo.On("IncrementViewCount", mock.Anything, uint(1)).Return(nil)
		kosRepo.On("StatsByKosIDs", mock.Anything, []uint{1}).
			Return(map[uint]repositories.KosStats{}, nil)

		kos, err := svc.GetDetail(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, 11, kos.ViewCount)
	})

	t.Run("inactive kos hidden", func(t *testing.T) {
		kosRepo := new(mockKosRepo)
		svc := NewKosService(kosRepo, nil)

		kosRepo.On("GetDetail", mock.Anything, uint(2)).
			Return(&models.Kos{ID: 2, IsActive: false}, nil)

		_, err := svc.GetDetail(context.Background(), 2)
		assert.ErrorIs(t, err, domain.ErrKosNotFound)
		kosRepo.AssertNotCalled(t, "IncrementViewCount", mock.Anything, mock.Anything)
	})
}
