package services

import (
	"context"
	"errors"
	"time"

	"koshub/internal/adapters/persistence/models"
	"koshub/internal/adapters/persistence/repositories"
	"koshub/internal/core/domain"

	"gorm.io/gorm"
)

// BookingService handles booking business logic
type BookingService struct {
	bookingRepo repositories.BookingRepository
	kosRepo     repositories.KosRepository
}

// NewBookingService creates a new booking service
func NewBookingService(bookingRepo repositories.BookingRepository, kosRepo repositories.KosRepository) *BookingService {
	return &BookingService{bookingRepo: bookingRepo, kosRepo: kosRepo}
}

// CreateBookingInput represents booking creation input
type CreateBookingInput struct {
	KosID     uint
	RoomID    uint
	StartDate time.Time
	EndDate   time.Time
}

// UpdateStatusInput represents owner booking status update input
type UpdateStatusInput struct {
	Status         string
	RejectedReason string
}

// Create books a room for the user. The stay is priced per whole month
// with a one month minimum.
func (s *BookingService) Create(ctx context.Context, userID uint, input *CreateBookingInput) (*models.Booking, error) {
	today := truncateToDay(time.Now())
	if input.StartDate.Before(today) || !input.EndDate.After(input.StartDate) {
		return nil, domain.ErrInvalidBookingDates
	}

	kos, err := s.kosRepo.GetByID(ctx, input.KosID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrKosNotFound
		}
		return nil, err
	}
	if !kos.IsActive {
		return nil, domain.ErrKosNotFound
	}

	months := monthsBetween(input.StartDate, input.EndDate)

	booking := &models.Booking{
		KosID:      input.KosID,
		RoomID:     input.RoomID,
		UserID:     userID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		TotalPrice: kos.PricePerMonth * months,
	}

	if err := s.bookingRepo.CreateExclusive(ctx, booking); err != nil {
		return nil, err
	}

	return s.bookingRepo.GetByID(ctx, booking.ID)
}

// ListByUser lists the user's own bookings
func (s *BookingService) ListByUser(ctx context.Context, userID uint) ([]*models.Booking, error) {
	return s.bookingRepo.ListByUser(ctx, userID)
}

// GetForUser returns one booking, restricted to its creator
func (s *BookingService) GetForUser(ctx context.Context, userID, bookingID uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	if booking.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return booking, nil
}

// GetReceipt returns a booking with owner contact data loaded
func (s *BookingService) GetReceipt(ctx context.Context, userID, bookingID uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetDetail(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	if booking.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return booking, nil
}

// GetForOwner returns one booking, restricted to the kos owner
func (s *BookingService) GetForOwner(ctx context.Context, ownerID, bookingID uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetDetail(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	if booking.Kos == nil || booking.Kos.UserID != ownerID {
		return nil, domain.ErrForbidden
	}
	return booking, nil
}

// ListForOwner lists bookings across all of the owner's kos
func (s *BookingService) ListForOwner(ctx context.Context, ownerID uint, filter *repositories.BookingFilter) ([]*models.Booking, error) {
	kosIDs, err := s.kosRepo.IDsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	normalizeFilterStatus(filter)
	return s.bookingRepo.ListByKosIDs(ctx, kosIDs, filter)
}

// UpdateStatus lets the kos owner accept or reject a pending booking
func (s *BookingService) UpdateStatus(ctx context.Context, ownerID, bookingID uint, input *UpdateStatusInput) (*models.Booking, error) {
	status, ok := NormalizeBookingStatus(input.Status)
	if !ok {
		return nil, domain.ErrInvalidBookingStatus
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	if booking.Kos == nil || booking.Kos.UserID != ownerID {
		return nil, domain.ErrForbidden
	}

	var reason *string
	if status == domain.BookingReject && input.RejectedReason != "" {
		reason = &input.RejectedReason
	}

	updated, err := s.bookingRepo.UpdateStatusIfPending(ctx, bookingID, string(status), reason)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, domain.ErrBookingNotPending
	}

	return s.bookingRepo.GetByID(ctx, bookingID)
}

// normalizeFilterStatus rewrites status aliases in a filter so they match
// the stored values. Unknown values (including pending) pass through.
func normalizeFilterStatus(filter *repositories.BookingFilter) {
	if filter == nil || filter.Status == "" {
		return
	}
	if status, ok := NormalizeBookingStatus(filter.Status); ok {
		filter.Status = string(status)
	}
}

// NormalizeBookingStatus maps status input to a terminal booking status.
// The aliases approved/rejected are accepted alongside accept/reject.
func NormalizeBookingStatus(status string) (domain.BookingStatus, bool) {
	switch status {
	case "accept", "approved":
		return domain.BookingAccept, true
	case "reject", "rejected":
		return domain.BookingReject, true
	default:
		return "", false
	}
}

// monthsBetween counts whole months between two dates, minimum one
func monthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	if months < 1 {
		months = 1
	}
	return months
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
