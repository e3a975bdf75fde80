package repositories

import (
	"context"

	"koshub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// favoriteRepository implements FavoriteRepository interface
type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Create creates a new favorite
func (r *favoriteRepository) Create(ctx context.Context, favorite *models.Favorite) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

// GetByID gets a favorite by ID
func (r *favoriteRepository) GetByID(ctx context.Context, id uint) (*models.Favorite, error) {
	var favorite models.Favorite
	err := r.db.WithContext(ctx).First(&favorite, id).Error
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

// Delete deletes a favorite
func (r *favoriteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Favorite{}, id).Error
}

// ListByUser lists a user's favorites with their kos, newest first
func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Favorite, error) {
	var favorites []*models.Favorite
	err := r.db.WithContext(ctx).
		Preload("Kos.Images").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	return favorites, err
}

// ExistsByUserAndKos checks if the kos is already in the user's favorites
func (r *favoriteRepository) ExistsByUserAndKos(ctx context.Context, userID, kosID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND kos_id = ?", userID, kosID).
		Count(&count).Error
	return count > 0, err
}
