package services

import (
	"context"
	"errors"

	"koshub/internal/adapters/persistence/models"
	"koshub/internal/adapters/persistence/repositories"
	"koshub/internal/core/domain"

	"gorm.io/gorm"
)

// FavoriteService handles favorite business logic
type FavoriteService struct {
	favoriteRepo repositories.FavoriteRepository
	kosRepo      repositories.KosRepository
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(favoriteRepo repositories.FavoriteRepository, kosRepo repositories.KosRepository) *FavoriteService {
	return &FavoriteService{favoriteRepo: favoriteRepo, kosRepo: kosRepo}
}

// Add puts a kos on the user's favorite list
func (s *FavoriteService) Add(ctx context.Context, userID, kosID uint) (*models.Favorite, error) {
	if _, err := s.kosRepo.GetByID(ctx, kosID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrKosNotFound
		}
		return nil, err
	}

	exists, err := s.favoriteRepo.ExistsByUserAndKos(ctx, userID, kosID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrFavoriteExists
	}

	favorite := &models.Favorite{UserID: userID, KosID: kosID}
	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		return nil, err
	}
	return favorite, nil
}

// Remove deletes the caller's own favorite
func (s *FavoriteService) Remove(ctx context.Context, userID, favoriteID uint) error {
	favorite, err := s.favoriteRepo.GetByID(ctx, favoriteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrFavoriteNotFound
		}
		return err
	}
	if favorite.UserID != userID {
		return domain.ErrForbidden
	}
	return s.favoriteRepo.Delete(ctx, favoriteID)
}

// List returns the user's favorites with their kos
func (s *FavoriteService) List(ctx context.Context, userID uint) ([]*models.Favorite, error) {
	return s.favoriteRepo.ListByUser(ctx, userID)
}
