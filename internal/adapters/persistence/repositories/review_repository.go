package repositories

import (
	"context"
	"errors"

	"koshub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// reviewRepository implements ReviewRepository interface
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create creates a new review
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// GetByID gets a review with its kos (for ownership checks), user and reply
func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Preload("Kos").
		Preload("User").
		Preload("Reply").
		First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Update updates a review
func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

// Delete deletes a review and its reply via FK cascade
func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Review{}, id).Error
}

// ExistsByUserAndKos checks if the user already reviewed the kos
func (r *reviewRepository) ExistsByUserAndKos(ctx context.Context, userID, kosID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("user_id = ? AND kos_id = ?", userID, kosID).
		Count(&count).Error
	return count > 0, err
}

// ListByKosIDs lists reviews across the given kos, newest first
func (r *reviewRepository) ListByKosIDs(ctx context.Context, kosIDs []uint) ([]*models.Review, error) {
	if len(kosIDs) == 0 {
		return []*models.Review{}, nil
	}

	var reviews []*models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Kos").
		Preload("Reply").
		Where("kos_id IN ?", kosIDs).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// UpsertReply creates the reply for a review, or overwrites the existing one
func (r *reviewRepository) UpsertReply(ctx context.Context, reviewID uint, ownerReply string) (*models.ReviewReply, error) {
	var reply models.ReviewReply
	err := r.db.WithContext(ctx).Where("review_id = ?", reviewID).First(&reply).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		reply = models.ReviewReply{ReviewID: reviewID, OwnerReply: ownerReply}
		if err := r.db.WithContext(ctx).Create(&reply).Error; err != nil {
			return nil, err
		}
		return &reply, nil
	}

	reply.OwnerReply = ownerReply
	if err := r.db.WithContext(ctx).Save(&reply).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}
