package repositories

import (
	"context"

	"koshub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// kosRepository implements KosRepository interface
type kosRepository struct {
	db *gorm.DB
}

// NewKosRepository creates a new kos repository
func NewKosRepository(db *gorm.DB) KosRepository {
	return &kosRepository{db: db}
}

// Create creates a new kos
func (r *kosRepository) Create(ctx context.Context, kos *models.Kos) error {
	return r.db.WithContext(ctx).Create(kos).Error
}

// GetByID gets a kos by ID without relations
func (r *kosRepository) GetByID(ctx context.Context, id uint) (*models.Kos, error) {
	var kos models.Kos
	err := r.db.WithContext(ctx).First(&kos, id).Error
	if err != nil {
		return nil, err
	}
	return &kos, nil
}

// GetDetail gets a kos with all public relations loaded
func (r *kosRepository) GetDetail(ctx context.Context, id uint) (*models.Kos, error) {
	var kos models.Kos
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Rooms", "is_available = ?", true).
		Preload("Facilities").
		Preload("Images").
		Preload("Reviews.User").
		Preload("Reviews.Reply").
		Preload("PaymentMethods", "is_active = ?", true).
		First(&kos, id).Error
	if err != nil {
		return nil, err
	}
	return &kos, nil
}

// Update updates a kos
func (r *kosRepository) Update(ctx context.Context, kos *models.Kos) error {
	return r.db.WithContext(ctx).Save(kos).Error
}

// Delete deletes a kos; dependent rows go with it via FK cascade
func (r *kosRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Kos{}, id).Error
}

// Search lists active kos matching the query filters
func (r *kosRepository) Search(ctx context.Context, q *KosQuery) ([]*models.Kos, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Kos{}).
		Where("is_active = ?", true)

	// 'mixed' means only mixed-gender listings; 'male'/'female' also
	// include 'all'; 'all' or empty applies no filter
	switch q.Gender {
	case "mixed":
		query = query.Where("gender = ?", "all")
	case "male", "female":
		query = query.Where("gender IN ?", []string{q.Gender, "all"})
	}

	if q.Search != "" {
		like := "%" + q.Search + "%"
		query = query.Where("name LIKE ? OR address LIKE ?", like, like)
	}

	if q.MinPrice != nil {
		query = query.Where("price_per_month >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		query = query.Where("price_per_month <= ?", *q.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch q.SortBy {
	case "price_low":
		query = query.Order("price_per_month ASC")
	case "price_high":
		query = query.Order("price_per_month DESC")
	case "popular":
		query = query.Order("view_count DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var kos []*models.Kos
	err := query.
		Preload("Images").
		Preload("Facilities").
		Preload("Owner").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&kos).Error

	return kos, total, err
}

// IncrementViewCount bumps the popularity counter in a single statement
func (r *kosRepository) IncrementViewCount(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Kos{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// ListByOwner lists an owner's kos with management relations
func (r *kosRepository) ListByOwner(ctx context.Context, userID uint) ([]*models.Kos, error) {
	var kos []*models.Kos
	err := r.db.WithContext(ctx).
		Preload("Rooms").
		Preload("Facilities").
		Preload("Images").
		Preload("Reviews.User").
		Preload("PaymentMethods").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&kos).Error
	return kos, err
}

// IDsByOwner lists the IDs of an owner's kos
func (r *kosRepository) IDsByOwner(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Kos{}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error
	return ids, err
}

// StatsByKosIDs returns review aggregates per kos
func (r *kosRepository) StatsByKosIDs(ctx context.Context, kosIDs []uint) (map[uint]KosStats, error) {
	stats := make(map[uint]KosStats, len(kosIDs))
	if len(kosIDs) == 0 {
		return stats, nil
	}

	var rows []KosStats
	err := r.db.WithContext(ctx).
		Table("reviews").
		Select("kos_id, AVG(rating) AS average_rating, COUNT(*) AS reviews_count").
		Where("kos_id IN ?", kosIDs).
		Group("kos_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		stats[row.KosID] = row
	}
	return stats, nil
}

// BookingCountsByKosIDs returns booking counts per kos
func (r *kosRepository) BookingCountsByKosIDs(ctx context.Context, kosIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(kosIDs))
	if len(kosIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		KosID uint
		Count int64
	}
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select("kos_id, COUNT(*) AS count").
		Where("kos_id IN ?", kosIDs).
		Group("kos_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.KosID] = row.Count
	}
	return counts, nil
}

// OwnerStatistics summarizes an owner's kos and rooms
func (r *kosRepository) OwnerStatistics(ctx context.Context, userID uint) (*OwnerStatistics, error) {
	stats := &OwnerStatistics{}
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Kos{}).Where("user_id = ?", userID).Count(&stats.TotalKos).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Kos{}).Where("user_id = ? AND is_active = ?", userID, true).Count(&stats.ActiveKos).Error; err != nil {
		return nil, err
	}

	roomsOfOwner := db.Model(&models.KosRoom{}).
		Joins("JOIN kos ON kos.id = kos_rooms.kos_id").
		Where("kos.user_id = ?", userID)
	if err := roomsOfOwner.Count(&stats.TotalRooms).Error; err != nil {
		return nil, err
	}

	err := db.Model(&models.KosRoom{}).
		Joins("JOIN kos ON kos.id = kos_rooms.kos_id").
		Where("kos.user_id = ? AND kos_rooms.is_available = ?", userID, true).
		Count(&stats.AvailableRooms).Error
	return stats, err
}

// AddRooms inserts rooms for a kos
func (r *kosRepository) AddRooms(ctx context.Context, rooms []*models.KosRoom) error {
	return r.db.WithContext(ctx).Create(rooms).Error
}

// GetRoomForKos gets a room that belongs to the given kos
func (r *kosRepository) GetRoomForKos(ctx context.Context, roomID, kosID uint) (*models.KosRoom, error) {
	var room models.KosRoom
	err := r.db.WithContext(ctx).
		Where("id = ? AND kos_id = ?", roomID, kosID).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// UpdateRoom updates a room
func (r *kosRepository) UpdateRoom(ctx context.Context, room *models.KosRoom) error {
	return r.db.WithContext(ctx).Save(room).Error
}

// DeleteRoom deletes a room
func (r *kosRepository) DeleteRoom(ctx context.Context, roomID uint) error {
	return r.db.WithContext(ctx).Delete(&models.KosRoom{}, roomID).Error
}

// AddFacilities inserts facilities for a kos
func (r *kosRepository) AddFacilities(ctx context.Context, facilities []*models.KosFacility) error {
	return r.db.WithContext(ctx).Create(facilities).Error
}

// ReplaceFacilities swaps the whole facility set in one transaction
func (r *kosRepository) ReplaceFacilities(ctx context.Context, kosID uint, facilities []*models.KosFacility) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("kos_id = ?", kosID).Delete(&models.KosFacility{}).Error; err != nil {
			return err
		}
		if len(facilities) == 0 {
			return nil
		}
		return tx.Create(facilities).Error
	})
}

// AddPaymentMethods inserts payment methods for a kos
func (r *kosRepository) AddPaymentMethods(ctx context.Context, methods []*models.PaymentMethod) error {
	return r.db.WithContext(ctx).Create(methods).Error
}

// ReplacePaymentMethods swaps the whole payment method set in one transaction
func (r *kosRepository) ReplacePaymentMethods(ctx context.Context, kosID uint, methods []*models.PaymentMethod) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("kos_id = ?", kosID).Delete(&models.PaymentMethod{}).Error; err != nil {
			return err
		}
		if len(methods) == 0 {
			return nil
		}
		return tx.Create(methods).Error
	})
}

// AddImage inserts a kos image record
func (r *kosRepository) AddImage(ctx context.Context, image *models.KosImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

// CountImages counts images of a kos
func (r *kosRepository) CountImages(ctx context.Context, kosID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.KosImage{}).
		Where("kos_id = ?", kosID).
		Count(&count).Error
	return count, err
}

// GetImageForKos gets an image that belongs to the given kos
func (r *kosRepository) GetImageForKos(ctx context.Context, imageID, kosID uint) (*models.KosImage, error) {
	var image models.KosImage
	err := r.db.WithContext(ctx).
		Where("id = ? AND kos_id = ?", imageID, kosID).
		First(&image).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// DeleteImage deletes an image record
func (r *kosRepository) DeleteImage(ctx context.Context, imageID uint) error {
	return r.db.WithContext(ctx).Delete(&models.KosImage{}, imageID).Error
}

// SetPrimaryImage unsets every primary flag for the kos and sets the given
// image, inside one transaction so the listing never ends up primary-less
func (r *kosRepository) SetPrimaryImage(ctx context.Context, kosID, imageID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.KosImage{}).
			Where("kos_id = ?", kosID).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.KosImage{}).
			Where("id = ? AND kos_id = ?", imageID, kosID).
			Update("is_primary", true).Error
	})
}
