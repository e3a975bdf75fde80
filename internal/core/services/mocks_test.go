package services

import (
	"context"
	"time"

	"koshub/internal/adapters/persistence/models"
	"koshub/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/mock"
)

type mockKosRepo struct {
	mock.Mock
}

func (m *mockKosRepo) Create(ctx context.Context, kos *models.Kos) error {
	return m.Called(ctx, kos).Error(0)
}

func (m *mockKosRepo) GetByID(ctx context.Context, id uint) (*models.Kos, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Kos), args.Error(1)
}

func (m *mockKosRepo) GetDetail(ctx context.Context, id uint) (*models.Kos, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Kos), args.Error(1)
}

func (m *mockKosRepo) Update(ctx context.Context, kos *models.Kos) error {
	return m.Called(ctx, kos).Error(0)
}

func (m *mockKosRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockKosRepo) Search(ctx context.Context, q *repositories.KosQuery) ([]*models.Kos, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]*models.Kos), args.Get(1).(int64), args.Error(2)
}

func (m *mockKosRepo) IncrementViewCount(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockKosRepo) ListByOwner(ctx context.Context, userID uint) ([]*models.Kos, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.Kos), args.Error(1)
}

func (m *mockKosRepo) IDsByOwner(ctx context.Context, userID uint) ([]uint, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]uint), args.Error(1)
}

func (m *mockKosRepo) StatsByKosIDs(ctx context.Context, kosIDs []uint) (map[uint]repositories.KosStats, error) {
	args := m.Called(ctx, kosIDs)
	return args.Get(0).(map[uint]repositories.KosStats), args.Error(1)
}

func (m *mockKosRepo) BookingCountsByKosIDs(ctx context.Context, kosIDs []uint) (map[uint]int64, error) {
	args := m.Called(ctx, kosIDs)
	return args.Get(0).(map[uint]int64), args.Error(1)
}

func (m *mockKosRepo) OwnerStatistics(ctx context.Context, userID uint) (*repositories.OwnerStatistics, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.OwnerStatistics), args.Error(1)
}

func (m *mockKosRepo) AddRooms(ctx context.Context, rooms []*models.KosRoom) error {
	return m.Called(ctx, rooms).Error(0)
}

func (m *mockKosRepo) GetRoomForKos(ctx context.Context, roomID, kosID uint) (*models.KosRoom, error) {
	args := m.Called(ctx, roomID, kosID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.KosRoom), args.Error(1)
}

func (m *mockKosRepo) UpdateRoom(ctx context.Context, room *models.KosRoom) error {
	return m.Called(ctx, room).Error(0)
}

func (m *mockKosRepo) DeleteRoom(ctx context.Context, roomID uint) error {
	return m.Called(ctx, roomID).Error(0)
}

func (m *mockKosRepo) AddFacilities(ctx context.Context, facilities []*models.KosFacility) error {
	return m.Called(ctx, facilities).Error(0)
}

func (m *mockKosRepo) ReplaceFacilities(ctx context.Context, kosID uint, facilities []*models.KosFacility) error {
	return m.Called(ctx, kosID, facilities).Error(0)
}

func (m *mockKosRepo) AddPaymentMethods(ctx context.Context, methods []*models.PaymentMethod) error {
	return m.Called(ctx, methods).Error(0)
}

func (m *mockKosRepo) ReplacePaymentMethods(ctx context.Context, kosID uint, methods []*models.PaymentMethod) error {
	return m.Called(ctx, kosID, methods).Error(0)
}

func (m *mockKosRepo) AddImage(ctx context.Context, image *models.KosImage) error {
	return m.Called(ctx, image).Error(0)
}

func (m *mockKosRepo) CountImages(ctx context.Context, kosID uint) (int64, error) {
	args := m.Called(ctx, kosID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockKosRepo) GetImageForKos(ctx context.Context, imageID, kosID uint) (*models.KosImage, error) {
	args := m.Called(ctx, imageID, kosID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.KosImage), args.Error(1)
}

func (m *mockKosRepo) DeleteImage(ctx context.Context, imageID uint) error {
	return m.Called(ctx, imageID).Error(0)
}

func (m *mockKosRepo) SetPrimaryImage(ctx context.Context, kosID, imageID uint) error {
	return m.Called(ctx, kosID, imageID).Error(0)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) CreateExclusive(ctx context.Context, booking *models.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockBookingRepo) GetDetail(ctx context.Context, id uint) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockBookingRepo) ListByUser(ctx context.Context, userID uint) ([]*models.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *mockBookingRepo) ListByKosIDs(ctx context.Context, kosIDs []uint, filter *repositories.BookingFilter) ([]*models.Booking, error) {
	args := m.Called(ctx, kosIDs, filter)
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *mockBookingRepo) ListCreatedSince(ctx context.Context, kosIDs []uint, since time.Time) ([]*models.Booking, error) {
	args := m.Called(ctx, kosIDs, since)
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *mockBookingRepo) UpdateStatusIfPending(ctx context.Context, id uint, status string, rejectedReason *string) (bool, error) {
	args := m.Called(ctx, id, status, rejectedReason)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) HasAcceptedBooking(ctx context.Context, userID, kosID uint) (bool, error) {
	args := m.Called(ctx, userID, kosID)
	return args.Bool(0), args.Error(1)
}

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Create(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepo) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *mockReviewRepo) Update(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockReviewRepo) ExistsByUserAndKos(ctx context.Context, userID, kosID uint) (bool, error) {
	args := m.Called(ctx, userID, kosID)
	return args.Bool(0), args.Error(1)
}

func (m *mockReviewRepo) ListByKosIDs(ctx context.Context, kosIDs []uint) ([]*models.Review, error) {
	args := m.Called(ctx, kosIDs)
	return args.Get(0).([]*models.Review), args.Error(1)
}

func (m *mockReviewRepo) UpsertReply(ctx context.Context, reviewID uint, ownerReply string) (*models.ReviewReply, error) {
	args := m.Called(ctx, reviewID, ownerReply)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewReply), args.Error(1)
}

type mockFavoriteRepo struct {
	mock.Mock
}

func (m *mockFavoriteRepo) Create(ctx context.Context, favorite *models.Favorite) error {
	return m.Called(ctx, favorite).Error(0)
}

func (m *mockFavoriteRepo) GetByID(ctx context.Context, id uint) (*models.Favorite, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Favorite), args.Error(1)
}

func (m *mockFavoriteRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockFavoriteRepo) ListByUser(ctx context.Context, userID uint) ([]*models.Favorite, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.Favorite), args.Error(1)
}

func (m *mockFavoriteRepo) ExistsByUserAndKos(ctx context.Context, userID, kosID uint) (bool, error) {
	args := m.Called(ctx, userID, kosID)
	return args.Bool(0), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockRefreshTokenRepo struct {
	mock.Mock
}

func (m *mockRefreshTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockRefreshTokenRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *mockRefreshTokenRepo) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

func (m *mockRefreshTokenRepo) RevokeAllByUserID(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockRefreshTokenRepo) DeleteExpired(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
