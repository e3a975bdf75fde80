package repositories

import (
	"context"
	"errors"
	"time"

	"koshub/internal/adapters/persistence/models"
	"koshub/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// bookingRepository implements BookingRepository interface
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// bookingCodeAttempts bounds the retries when two transactions on different
// rooms race for the same booking code. The unique index on booking_code
// rejects the loser, which simply re-reads the sequence and tries again.
const bookingCodeAttempts = 3

// withDuplicateRetry runs fn up to attempts times, retrying only on
// duplicate-key errors. Requires TranslateError on the gorm config.
func withDuplicateRetry(attempts int, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return err
}

// CreateExclusive inserts a booking after checking the room and the
// no-overlap invariant. The room row is locked for the duration of the
// transaction so two concurrent requests cannot double-book it.
func (r *bookingRepository) CreateExclusive(ctx context.Context, booking *models.Booking) error {
	return withDuplicateRetry(bookingCodeAttempts, func() error {
		return r.createExclusive(ctx, booking)
	})
}

func (r *bookingRepository) createExclusive(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.KosRoom
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND kos_id = ? AND is_available = ?", booking.RoomID, booking.KosID, true).
			First(&room).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRoomNotAvailable
			}
			return err
		}

		// Overlap: start within range OR end within range OR fully containing
		var overlapping int64
		err = tx.Model(&models.Booking{}).
			Where("room_id = ? AND status <> ?", booking.RoomID, string(domain.BookingReject)).
			Where(
				"(start_date BETWEEN ? AND ?) OR (end_date BETWEEN ? AND ?) OR (start_date <= ? AND end_date >= ?)",
				booking.StartDate, booking.EndDate,
				booking.StartDate, booking.EndDate,
				booking.StartDate, booking.EndDate,
			).
			Count(&overlapping).Error
		if err != nil {
			return err
		}
		if overlapping > 0 {
			return domain.ErrBookingOverlap
		}

		year := time.Now().Year()
		var lastCode string
		tx.Model(&models.Booking{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("booking_code LIKE ?", models.BookingCodePrefix(year)+"%").
			Order("booking_code DESC").
			Limit(1).
			Pluck("booking_code", &lastCode)

		booking.BookingCode = models.NextBookingCode(lastCode, year)
		booking.Status = string(domain.BookingPending)

		return tx.Create(booking).Error
	})
}

// GetByID gets a booking with its kos, room and user
func (r *bookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Kos").
		Preload("Room").
		Preload("User").
		First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetDetail gets a booking with the kos owner loaded (for receipts)
func (r *bookingRepository) GetDetail(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Kos.Owner").
		Preload("Room").
		Preload("User").
		First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListByUser lists a user's bookings, newest first
func (r *bookingRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Preload("Kos").
		Preload("Room").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

// ListByKosIDs lists bookings across the given kos with optional filters
func (r *bookingRepository) ListByKosIDs(ctx context.Context, kosIDs []uint, filter *BookingFilter) ([]*models.Booking, error) {
	if len(kosIDs) == 0 {
		return []*models.Booking{}, nil
	}

	query := r.db.WithContext(ctx).
		Preload("Kos").
		Preload("Room").
		Preload("User").
		Where("kos_id IN ?", kosIDs)

	if filter != nil {
		if filter.Month != "" {
			query = query.Where("DATE_FORMAT(created_at, '%Y-%m') = ?", filter.Month)
		} else if filter.Year != "" {
			query = query.Where("YEAR(created_at) = ?", filter.Year)
		}
		if filter.StartDate != "" {
			query = query.Where("DATE(created_at) >= ?", filter.StartDate)
		}
		if filter.EndDate != "" {
			query = query.Where("DATE(created_at) <= ?", filter.EndDate)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
	}

	var bookings []*models.Booking
	err := query.Order("created_at DESC").Find(&bookings).Error
	return bookings, err
}

// ListCreatedSince lists bookings created on or after the given time
func (r *bookingRepository) ListCreatedSince(ctx context.Context, kosIDs []uint, since time.Time) ([]*models.Booking, error) {
	if len(kosIDs) == 0 {
		return []*models.Booking{}, nil
	}

	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Where("kos_id IN ? AND created_at >= ?", kosIDs, since).
		Find(&bookings).Error
	return bookings, err
}

// UpdateStatusIfPending transitions a booking out of pending. Returns false
// when the booking was not pending anymore (or does not exist).
func (r *bookingRepository) UpdateStatusIfPending(ctx context.Context, id uint, status string, rejectedReason *string) (bool, error) {
	updates := map[string]interface{}{"status": status}
	if rejectedReason != nil {
		updates["rejected_reason"] = *rejectedReason
	}

	result := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, string(domain.BookingPending)).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// HasAcceptedBooking checks whether the user holds an accepted booking for the kos
func (r *bookingRepository) HasAcceptedBooking(ctx context.Context, userID, kosID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("user_id = ? AND kos_id = ? AND status = ?", userID, kosID, string(domain.BookingAccept)).
		Count(&count).Error
	return count > 0, err
}
