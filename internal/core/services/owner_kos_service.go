package services

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"strings"

	"koshub/internal/adapters/persistence/models"
	"koshub/internal/adapters/persistence/repositories"
	"koshub/internal/core/domain"

	"gorm.io/gorm"
)

// OwnerKosService handles the owner side of listing management
type OwnerKosService struct {
	kosRepo repositories.KosRepository
	storage *StorageService
}

// NewOwnerKosService creates a new owner kos service
func NewOwnerKosService(kosRepo repositories.KosRepository, storage *StorageService) *OwnerKosService {
	return &OwnerKosService{kosRepo: kosRepo, storage: storage}
}

// FacilityInput represents one facility entry
type FacilityInput struct {
	Facility string  `json:"facility"`
	Icon     *string `json:"icon"`
}

// PaymentMethodInput represents one payment method entry
type PaymentMethodInput struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	Type          string `json:"type"`
}

// RoomInput represents one room entry
type RoomInput struct {
	RoomNumber  string `json:"room_number"`
	RoomType    string `json:"room_type"`
	Price       int    `json:"price"`
	IsAvailable *bool  `json:"is_available"`
}

// CreateKosInput represents kos creation input
type CreateKosInput struct {
	Name           string
	Address        string
	Description    string
	PricePerMonth  int
	Gender         string
	Latitude       *float64
	Longitude      *float64
	WhatsappNumber string
	Facilities     []FacilityInput
	PaymentMethods []PaymentMethodInput
	Rooms          []RoomInput
}

// UpdateKosInput represents kos update input. Nil slices leave the
// sub-resource untouched, non-nil slices replace it wholesale.
type UpdateKosInput struct {
	Name           string
	Address        string
	Description    string
	PricePerMonth  int
	Gender         string
	Latitude       *float64
	Longitude      *float64
	WhatsappNumber string
	IsActive       *bool
	Facilities     []FacilityInput
	PaymentMethods []PaymentMethodInput
}

// Create registers a new kos with its facilities, payment methods and rooms
func (s *OwnerKosService) Create(ctx context.Context, ownerID uint, input *CreateKosInput) (*models.Kos, error) {
	kos := &models.Kos{
		UserID:         ownerID,
		Name:           input.Name,
		Address:        input.Address,
		Description:    input.Description,
		PricePerMonth:  input.PricePerMonth,
		Gender:         input.Gender,
		Latitude:       input.Latitude,
		Longitude:      input.Longitude,
		WhatsappNumber: input.WhatsappNumber,
		IsActive:       true,
	}
	if kos.Gender == "" {
		kos.Gender = string(domain.GenderAll)
	}

	if err := s.kosRepo.Create(ctx, kos); err != nil {
		return nil, err
	}

	if len(input.Facilities) > 0 {
		if err := s.kosRepo.AddFacilities(ctx, buildFacilities(kos.ID, input.Facilities)); err != nil {
			return nil, err
		}
	}
	if len(input.PaymentMethods) > 0 {
		if err := s.kosRepo.AddPaymentMethods(ctx, buildPaymentMethods(kos.ID, input.PaymentMethods)); err != nil {
			return nil, err
		}
	}
	if len(input.Rooms) > 0 {
		if err := s.kosRepo.AddRooms(ctx, buildRooms(kos.ID, input.Rooms)); err != nil {
			return nil, err
		}
	}

	log.Printf("✅ Kos created: %s (owner %d)", kos.Name, ownerID)
	return s.kosRepo.GetDetail(ctx, kos.ID)
}

// List returns all of the owner's kos with rating and booking stats
func (s *OwnerKosService) List(ctx context.Context, ownerID uint) ([]*models.Kos, error) {
	items, err := s.kosRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return items, nil
	}

	ids := make([]uint, 0, len(items))
	for _, k := range items {
		ids = append(ids, k.ID)
	}

	stats, err := s.kosRepo.StatsByKosIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	bookings, err := s.kosRepo.BookingCountsByKosIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, k := range items {
		if st, ok := stats[k.ID]; ok {
			k.AverageRating = RoundRating(st.AverageRating)
			k.ReviewsCount = st.ReviewsCount
		}
		k.BookingsCount = bookings[k.ID]
		k.RoomsCount = int64(len(k.Rooms))
	}
	return items, nil
}

// Get returns one of the owner's kos with all sub-resources
func (s *OwnerKosService) Get(ctx context.Context, ownerID, kosID uint) (*models.Kos, error) {
	kos, err := s.kosRepo.GetDetail(ctx, kosID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrKosNotFound
		}
		return nil, err
	}
	if kos.UserID != ownerID {
		return nil, domain.ErrForbidden
	}
	return kos, nil
}

// Update edits a kos and optionally replaces its facilities and payment methods
func (s *OwnerKosService) Update(ctx context.Context, ownerID, kosID uint, input *UpdateKosInput) (*models.Kos, error) {
	kos, err := s.getOwned(ctx, ownerID, kosID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		kos.Name = input.Name
	}
	if input.Address != "" {
		kos.Address = input.Address
	}
	if input.Description != "" {
		kos.Description = input.Description
	}
	if input.PricePerMonth > 0 {
		kos.PricePerMonth = input.PricePerMonth
	}
	if input.Gender != "" {
		kos.Gender = input.Gender
	}
	if input.Latitude != nil {
		kos.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		kos.Longitude = input.Longitude
	}
	if input.WhatsappNumber != "" {
		kos.WhatsappNumber = input.WhatsappNumber
	}
	if input.IsActive != nil {
		kos.IsActive = *input.IsActive
	}

	if err := s.kosRepo.Update(ctx, kos); err != nil {
		return nil, err
	}

	if input.Facilities != nil {
		if err := s.kosRepo.ReplaceFacilities(ctx, kosID, buildFacilities(kosID, input.Facilities)); err != nil {
			return nil, err
		}
	}
	if input.PaymentMethods != nil {
		if err := s.kosRepo.ReplacePaymentMethods(ctx, kosID, buildPaymentMethods(kosID, input.PaymentMethods)); err != nil {
			return nil, err
		}
	}

	return s.kosRepo.GetDetail(ctx, kosID)
}

// Delete removes a kos and all its sub-resources
func (s *OwnerKosService) Delete(ctx context.Context, ownerID, kosID uint) error {
	if _, err := s.getOwned(ctx, ownerID, kosID); err != nil {
		return err
	}
	return s.kosRepo.Delete(ctx, kosID)
}

// AddRooms appends rooms to a kos
func (s *OwnerKosService) AddRooms(ctx context.Context, ownerID, kosID uint, inputs []RoomInput) ([]*models.KosRoom, error) {
	if _, err := s.getOwned(ctx, ownerID, kosID); err != nil {
		return nil, err
	}

	rooms := buildRooms(kosID, inputs)
	if err := s.kosRepo.AddRooms(ctx, rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// UpdateRoom edits one room of a kos
func (s *OwnerKosService) UpdateRoom(ctx context.Context, ownerID, kosID, roomID uint, input *RoomInput) (*models.KosRoom, error) {
	if _, err := s.getOwned(ctx, ownerID, kosID); err != nil {
		return nil, err
	}

	room, err := s.kosRepo.GetRoomForKos(ctx, roomID, kosID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrKosRoomNotFound
		}
		return nil, err
	}

	if input.RoomNumber != "" {
		room.RoomNumber = input.RoomNumber
	}
	if input.RoomType != "" {
		room.RoomType = input.RoomType
	}
	if input.Price > 0 {
		room.Price = input.Price
	}
	if input.IsAvailable != nil {
		room.IsAvailable = *input.IsAvailable
	}

	if err := s.kosRepo.UpdateRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// DeleteRoom removes one room of a kos
func (s *OwnerKosService) DeleteRoom(ctx context.Context, ownerID, kosID, roomID uint) error {
	if _, err := s.getOwned(ctx, ownerID, kosID); err != nil {
		return err
	}

	if _, err := s.kosRepo.GetRoomForKos(ctx, roomID, kosID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrKosRoomNotFound
		}
		return err
	}
	return s.kosRepo.DeleteRoom(ctx, roomID)
}

// AddFacilities appends facilities to a kos
func (s *OwnerKosService) AddFacilities(ctx context.Context, ownerID, kosID uint, inputs []FacilityInput) ([]*models.KosFacility, error) {
	if _, err := s.getOwned(ctx, ownerID, kosID); err != nil {
		return nil, err
	}

	facilities := buildFacilities(kosID, inputs)
	if err := s.kosRepo.AddFacilities(ctx, facilities); err != nil {
		return nil, err
	}
	return facilities, nil
}

// AddPaymentMethods appends payment methods to a kos
func (s *OwnerKosService) AddPaymentMethods(ctx context.Context, ownerID, kosID uint, inputs []PaymentMethodInput) ([]*models.PaymentMethod, error) {
	if _, err := s.getOwned(ctx, ownerID, kosID); err != nil {
		return nil, err
	}

	methods := buildPaymentMethods(kosID, inputs)
	if err := s.kosRepo.AddPaymentMethods(ctx, methods); err != nil {
		return nil, err
	}
	return methods, nil
}

// UploadImages stores images for a kos. The first image a kos ever gets
// becomes its primary image.
func (s *OwnerKosService) UploadImages(ctx context.Context, ownerID, kosID uint, files []*multipart.FileHeader) ([]*models.KosImage, error) {
	if _, err := s.getOwned(ctx, ownerID, kosID); err != nil {
		return nil, err
	}

	existing, err := s.kosRepo.CountImages(ctx, kosID)
	if err != nil {
		return nil, err
	}

	images := make([]*models.KosImage, 0, len(files))
	for i, file := range files {
		url, err := s.storage.UploadKosImage(ctx, file)
		if err != nil {
			return nil, err
		}

		image := &models.KosImage{
			KosID:     kosID,
			File:      url,
			IsPrimary: existing == 0 && i == 0,
		}
		if err := s.kosRepo.AddImage(ctx, image); err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, nil
}

// DeleteImage removes one image of a kos, both the record and the stored file
func (s *OwnerKosService) DeleteImage(ctx context.Context, ownerID, kosID, imageID uint) error {
	if _, err := s.getOwned(ctx, ownerID, kosID); err != nil {
		return err
	}

	image, err := s.kosRepo.GetImageForKos(ctx, imageID, kosID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrImageNotFound
		}
		return err
	}
	if err := s.kosRepo.DeleteImage(ctx, imageID); err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, image.File); err != nil {
		log.Printf("⚠️ Failed to delete stored file for image %d: %v", imageID, err)
	}
	return nil
}

// SetPrimaryImage marks one image as the primary image of a kos
func (s *OwnerKosService) SetPrimaryImage(ctx context.Context, ownerID, kosID, imageID uint) error {
	if _, err := s.getOwned(ctx, ownerID, kosID); err != nil {
		return err
	}

	if _, err := s.kosRepo.GetImageForKos(ctx, imageID, kosID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrImageNotFound
		}
		return err
	}
	return s.kosRepo.SetPrimaryImage(ctx, kosID, imageID)
}

// Statistics summarizes the owner's portfolio
func (s *OwnerKosService) Statistics(ctx context.Context, ownerID uint) (*repositories.OwnerStatistics, error) {
	return s.kosRepo.OwnerStatistics(ctx, ownerID)
}

func (s *OwnerKosService) getOwned(ctx context.Context, ownerID, kosID uint) (*models.Kos, error) {
	kos, err := s.kosRepo.GetByID(ctx, kosID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrKosNotFound
		}
		return nil, err
	}
	if kos.UserID != ownerID {
		return nil, domain.ErrForbidden
	}
	return kos, nil
}

func buildFacilities(kosID uint, inputs []FacilityInput) []*models.KosFacility {
	facilities := make([]*models.KosFacility, 0, len(inputs))
	for _, f := range inputs {
		facilities = append(facilities, &models.KosFacility{
			KosID:    kosID,
			Facility: f.Facility,
			Icon:     f.Icon,
		})
	}
	return facilities
}

func buildPaymentMethods(kosID uint, inputs []PaymentMethodInput) []*models.PaymentMethod {
	methods := make([]*models.PaymentMethod, 0, len(inputs))
	for _, m := range inputs {
		methods = append(methods, &models.PaymentMethod{
			KosID:         kosID,
			BankName:      m.BankName,
			AccountNumber: m.AccountNumber,
			AccountName:   m.AccountName,
			Type:          string(MapPaymentType(m.Type)),
			IsActive:      true,
		})
	}
	return methods
}

func buildRooms(kosID uint, inputs []RoomInput) []*models.KosRoom {
	rooms := make([]*models.KosRoom, 0, len(inputs))
	for _, r := range inputs {
		room := &models.KosRoom{
			KosID:       kosID,
			RoomNumber:  r.RoomNumber,
			RoomType:    r.RoomType,
			Price:       r.Price,
			IsAvailable: true,
		}
		if room.RoomType == "" {
			room.RoomType = string(domain.RoomSingle)
		}
		if r.IsAvailable != nil {
			room.IsAvailable = *r.IsAvailable
		}
		rooms = append(rooms, room)
	}
	return rooms
}

// MapPaymentType maps free-form payment input to one of the fixed labels
func MapPaymentType(raw string) domain.PaymentType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "cash":
		return domain.PaymentCash
	case "bulanan", "monthly", "tahunan", "yearly", "transfer", "transfer bank":
		return domain.PaymentTransfer
	case "qris", "ovo", "gopay", "e-wallet":
		return domain.PaymentQRIS
	default:
		return domain.PaymentTransfer
	}
}
