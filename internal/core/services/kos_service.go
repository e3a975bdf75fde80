package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"koshub/internal/adapters/persistence/models"
	"koshub/internal/adapters/persistence/repositories"
	"koshub/internal/core/domain"
	"koshub/internal/pkg/cache"
	"koshub/internal/pkg/pagination"

	"gorm.io/gorm"
)

const (
	kosCachePrefix = "kos:list:"
	kosCacheTTL    = 5 * time.Minute
)

// KosService serves the public listing catalog
type KosService struct {
	kosRepo repositories.KosRepository
	cache   *cache.Cache
}

// NewKosService creates a new kos service
func NewKosService(kosRepo repositories.KosRepository, c *cache.Cache) *KosService {
	return &KosService{kosRepo: kosRepo, cache: c}
}

// SearchInput represents public listing filters
type SearchInput struct {
	Gender   string
	Search   string
	MinPrice *int
	MaxPrice *int
	SortBy   string
	Page     int
	Limit    int
}

// KosListResult is the cached shape of one listing page
type KosListResult struct {
	Items []*models.Kos    `json:"items"`
	Meta  *pagination.Meta `json:"meta"`
}

// Search lists active kos matching the filters. Pages are cached in redis
// keyed by the full filter set.
func (s *KosService) Search(ctx context.Context, input *SearchInput) (*KosListResult, error) {
	// "all" and unknown values mean no gender filter
	switch input.Gender {
	case string(domain.GenderMale), string(domain.GenderFemale), "mixed":
	default:
		input.Gender = ""
	}

	p := pagination.New(input.Page, input.Limit)
	key := s.cacheKey(input, p)

	var cached KosListResult
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	items, total, err := s.kosRepo.Search(ctx, &repositories.KosQuery{
		Gender:   input.Gender,
		Search:   input.Search,
		MinPrice: input.MinPrice,
		MaxPrice: input.MaxPrice,
		SortBy:   input.SortBy,
		Offset:   p.Offset,
		Limit:    p.Limit,
	})
	if err != nil {
		return nil, err
	}

	if err := s.decorateStats(ctx, items); err != nil {
		return nil, err
	}

	result := &KosListResult{
		Items: items,
		Meta:  pagination.GetMeta(p, total),
	}

	if err := s.cache.Set(ctx, key, result, kosCacheTTL); err != nil {
		log.Printf("⚠️ Failed to cache kos listing: %v", err)
	}
	return result, nil
}

// GetDetail returns one kos with all sub-resources and bumps its view count
func (s *KosService) GetDetail(ctx context.Context, id uint) (*models.Kos, error) {
	kos, err := s.kosRepo.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrKosNotFound
		}
		return nil, err
	}
	if !kos.IsActive {
		return nil, domain.ErrKosNotFound
	}

	if err := s.kosRepo.IncrementViewCount(ctx, id); err != nil {
		log.Printf("⚠️ Failed to increment view count for kos %d: %v", id, err)
	}
	kos.ViewCount++

	if err := s.decorateStats(ctx, []*models.Kos{kos}); err != nil {
		return nil, err
	}
	return kos, nil
}

// InvalidateListingCache drops all cached listing pages. Called after any
// write that changes what the public catalog shows.
func (s *KosService) InvalidateListingCache(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, kosCachePrefix); err != nil {
		log.Printf("⚠️ Failed to invalidate kos listing cache: %v", err)
	}
}

// decorateStats fills the computed rating fields on each kos
func (s *KosService) decorateStats(ctx context.Context, items []*models.Kos) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(items))
	for _, k := range items {
		ids = append(ids, k.ID)
	}

	stats, err := s.kosRepo.StatsByKosIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, k := range items {
		if st, ok := stats[k.ID]; ok {
			k.AverageRating = RoundRating(st.AverageRating)
			k.ReviewsCount = st.ReviewsCount
		}
	}
	return nil
}

func (s *KosService) cacheKey(input *SearchInput, p *pagination.Params) string {
	minPrice, maxPrice := -1, -1
	if input.MinPrice != nil {
		minPrice = *input.MinPrice
	}
	if input.MaxPrice != nil {
		maxPrice = *input.MaxPrice
	}
	return fmt.Sprintf("%sg=%s&q=%s&min=%d&max=%d&sort=%s&page=%d&per=%d",
		kosCachePrefix, input.Gender, input.Search, minPrice, maxPrice, input.SortBy, p.Page, p.Limit)
}

// RoundRating rounds an average rating to one decimal place
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
