package repositories

import (
	"context"
	"time"

	"koshub/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// KosQuery carries public listing search filters
type KosQuery struct {
	Gender   string
	Search   string
	MinPrice *int
	MaxPrice *int
	SortBy   string
	Offset   int
	Limit    int
}

// KosStats aggregates review data per kos
type KosStats struct {
	KosID         uint
	AverageRating float64
	ReviewsCount  int64
}

// OwnerStatistics summarizes an owner's portfolio
type OwnerStatistics struct {
	TotalKos       int64 `json:"total_kos"`
	ActiveKos      int64 `json:"active_kos"`
	TotalRooms     int64 `json:"total_rooms"`
	AvailableRooms int64 `json:"available_rooms"`
}

// KosRepository defines kos repository interface, covering the listing
// aggregate and its sub-resources (rooms, facilities, images, payment methods)
type KosRepository interface {
	Create(ctx context.Context, kos *models.Kos) error
	GetByID(ctx context.Context, id uint) (*models.Kos, error)
	GetDetail(ctx context.Context, id uint) (*models.Kos, error)
	Update(ctx context.Context, kos *models.Kos) error
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, q *KosQuery) ([]*models.Kos, int64, error)
	IncrementViewCount(ctx context.Context, id uint) error
	ListByOwner(ctx context.Context, userID uint) ([]*models.Kos, error)
	IDsByOwner(ctx context.Context, userID uint) ([]uint, error)
	StatsByKosIDs(ctx context.Context, kosIDs []uint) (map[uint]KosStats, error)
	BookingCountsByKosIDs(ctx context.Context, kosIDs []uint) (map[uint]int64, error)
	OwnerStatistics(ctx context.Context, userID uint) (*OwnerStatistics, error)

	AddRooms(ctx context.Context, rooms []*models.KosRoom) error
	GetRoomForKos(ctx context.Context, roomID, kosID uint) (*models.KosRoom, error)
	UpdateRoom(ctx context.Context, room *models.KosRoom) error
	DeleteRoom(ctx context.Context, roomID uint) error

	AddFacilities(ctx context.Context, facilities []*models.KosFacility) error
	ReplaceFacilities(ctx context.Context, kosID uint, facilities []*models.KosFacility) error

	AddPaymentMethods(ctx context.Context, methods []*models.PaymentMethod) error
	ReplacePaymentMethods(ctx context.Context, kosID uint, methods []*models.PaymentMethod) error

	AddImage(ctx context.Context, image *models.KosImage) error
	CountImages(ctx context.Context, kosID uint) (int64, error)
	GetImageForKos(ctx context.Context, imageID, kosID uint) (*models.KosImage, error)
	DeleteImage(ctx context.Context, imageID uint) error
	SetPrimaryImage(ctx context.Context, kosID, imageID uint) error
}

// BookingFilter carries owner report filters (applied on created_at)
type BookingFilter struct {
	Month     string // YYYY-MM
	Year      string // YYYY
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	Status    string
}

// BookingRepository defines booking repository interface
type BookingRepository interface {
	// CreateExclusive validates the room and the no-overlap invariant and
	// inserts the booking with a fresh booking code, all in one transaction.
	CreateExclusive(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	GetDetail(ctx context.Context, id uint) (*models.Booking, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Booking, error)
	ListByKosIDs(ctx context.Context, kosIDs []uint, filter *BookingFilter) ([]*models.Booking, error)
	ListCreatedSince(ctx context.Context, kosIDs []uint, since time.Time) ([]*models.Booking, error)
	UpdateStatusIfPending(ctx context.Context, id uint, status string, rejectedReason *string) (bool, error)
	HasAcceptedBooking(ctx context.Context, userID, kosID uint) (bool, error)
}

// ReviewRepository defines review repository interface
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uint) error
	ExistsByUserAndKos(ctx context.Context, userID, kosID uint) (bool, error)
	ListByKosIDs(ctx context.Context, kosIDs []uint) ([]*models.Review, error)
	UpsertReply(ctx context.Context, reviewID uint, ownerReply string) (*models.ReviewReply, error)
}

// FavoriteRepository defines favorite repository interface
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *models.Favorite) error
	GetByID(ctx context.Context, id uint) (*models.Favorite, error)
	Delete(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID uint) ([]*models.Favorite, error)
	ExistsByUserAndKos(ctx context.Context, userID, kosID uint) (bool, error)
}
