package services

import (
	"context"
	"errors"

	"koshub/internal/adapters/persistence/models"
	"koshub/internal/adapters/persistence/repositories"
	"koshub/internal/core/domain"

	"gorm.io/gorm"
)

// ReviewService handles review business logic
type ReviewService struct {
	reviewRepo  repositories.ReviewRepository
	bookingRepo repositories.BookingRepository
	kosRepo     repositories.KosRepository
}

// NewReviewService creates a new review service
func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	bookingRepo repositories.BookingRepository,
	kosRepo repositories.KosRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		kosRepo:     kosRepo,
	}
}

// CreateReviewInput represents review creation input
type CreateReviewInput struct {
	KosID   uint
	Rating  int
	Comment string
}

// UpdateReviewInput represents review update input
type UpdateReviewInput struct {
	Rating  int
	Comment string
}

// Create posts a review. The user must hold an accepted booking for the kos
// and can review each kos only once.
func (s *ReviewService) Create(ctx context.Context, userID uint, input *CreateReviewInput) (*models.Review, error) {
	if _, err := s.kosRepo.GetByID(ctx, input.KosID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrKosNotFound
		}
		return nil, err
	}

	booked, err := s.bookingRepo.HasAcceptedBooking(ctx, userID, input.KosID)
	if err != nil {
		return nil, err
	}
	if !booked {
		return nil, domain.ErrReviewNeedsBooking
	}

	exists, err := s.reviewRepo.ExistsByUserAndKos(ctx, userID, input.KosID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrReviewExists
	}

	review := &models.Review{
		KosID:   input.KosID,
		UserID:  userID,
		Rating:  input.Rating,
		Comment: input.Comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	return s.reviewRepo.GetByID(ctx, review.ID)
}

// Update edits the caller's own review
func (s *ReviewService) Update(ctx context.Context, userID, reviewID uint, input *UpdateReviewInput) (*models.Review, error) {
	review, err := s.getOwn(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	review.Rating = input.Rating
	review.Comment = input.Comment
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes the caller's own review
func (s *ReviewService) Delete(ctx context.Context, userID, reviewID uint) error {
	if _, err := s.getOwn(ctx, userID, reviewID); err != nil {
		return err
	}
	return s.reviewRepo.Delete(ctx, reviewID)
}

// ListForOwner lists reviews across all of the owner's kos
func (s *ReviewService) ListForOwner(ctx context.Context, ownerID uint) ([]*models.Review, error) {
	kosIDs, err := s.kosRepo.IDsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByKosIDs(ctx, kosIDs)
}

// Reply stores the kos owner's reply on a review, replacing any earlier one
func (s *ReviewService) Reply(ctx context.Context, ownerID, reviewID uint, ownerReply string) (*models.ReviewReply, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, err
	}
	if review.Kos == nil || review.Kos.UserID != ownerID {
		return nil, domain.ErrForbidden
	}

	return s.reviewRepo.UpsertReply(ctx, reviewID, ownerReply)
}

func (s *ReviewService) getOwn(ctx context.Context, userID, reviewID uint) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, err
	}
	if review.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return review, nil
}
