package services

import (
	"context"
	"testing"

	"koshub/internal/adapters/persistence/models"
	"koshub/internal/adapters/persistence/repositories"
	"koshub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMapPaymentType(t *testing.T) {
	tests := []struct {
		input string
		want  domain.PaymentType
	}{
		{"cash", domain.PaymentCash},
		{"Cash", domain.PaymentCash},
		{"bulanan", domain.PaymentTransfer},
		{"monthly", domain.PaymentTransfer},
		{"tahunan", domain.PaymentTransfer},
		{"yearly", domain.PaymentTransfer},
		{"transfer", domain.PaymentTransfer},
		{"Transfer Bank", domain.PaymentTransfer},
		{"qris", domain.PaymentQRIS},
		{"OVO", domain.PaymentQRIS},
		{"gopay", domain.PaymentQRIS},
		{"e-wallet", domain.PaymentQRIS},
		{"something else", domain.PaymentTransfer},
		{"", domain.PaymentTransfer},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, MapPaymentType(tt.input))
		})
	}
}

func TestOwnerKosService_Get_OwnershipIsForbiddenNotHidden(t *testing.T) {
	kosRepo := new(mockKosRepo)
	svc := NewOwnerKosService(kosRepo, NewStorageService(nil))

	kosRepo.On("GetDetail", mock.Anything, uint(1)).
		Return(&models.Kos{ID: 1, UserID: 20}, nil)

	_, err := svc.Get(context.Background(), 99, 1)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestOwnerKosService_Update_ReplacesSubResources(t *testing.T) {
	kosRepo := new(mockKosRepo)
	svc := NewOwnerKosService(kosRepo, NewStorageService(nil))

	kosRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.Kos{ID: 1, UserID: 20, Name: "Kos Melati"}, nil)
	kosRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	kosRepo.On("ReplacePaymentMethods", mock.Anything, uint(1), mock.MatchedBy(func(methods []*models.PaymentMethod) bool {
		return len(methods) == 1 && methods[0].Type == "QRIS"
	})).Return(nil)
	kosRepo.On("GetDetail", mock.Anything, uint(1)).
		Return(&models.Kos{ID: 1, UserID: 20}, nil)

	_, err := svc.Update(context.Background(), 20, 1, &UpdateKosInput{
		PaymentMethods: []PaymentMethodInput{{BankName: "GoPay", Type: "gopay"}},
	})
	require.NoError(t, err)
	kosRepo.AssertExpectations(t)

	// nil slice leaves facilities untouched
	kosRepo.AssertNotCalled(t, "ReplaceFacilities", mock.Anything, mock.Anything, mock.Anything)
}

func TestOwnerKosService_AddFacilities(t *testing.T) {
	t.Run("appends to owned kos", func(t *testing.T) {
		kosRepo := new(mockKosRepo)
		svc := NewOwnerKosService(kosRepo, NewStorageService(nil))

		kosRepo.On("GetByID", mock.Anything, uint(1)).
			Return(&models.Kos{ID: 1, UserID: 20}, nil)
		kosRepo.On("AddFacilities", mock.Anything, mock.MatchedBy(func(facilities []*models.KosFacility) bool {
			return len(facilities) == 2 && facilities[0].KosID == 1 && facilities[0].Facility == "WiFi"
		})).Return(nil)

		facilities, err := svc.AddFacilities(context.Background(), 20, 1, []FacilityInput{
			{Facility: "WiFi"},
			{Facility: "AC"},
		})
		require.NoError(t, err)
		assert.Len(t, facilities, 2)
		kosRepo.AssertExpectations(t)
	})

	t.Run("someone else's kos", func(t *testing.T) {
		kosRepo := new(mockKosRepo)
		svc := NewOwnerKosService(kosRepo, NewStorageService(nil))

		kosRepo.On("GetByID", mock.Anything, uint(1)).
			Return(&models.Kos{ID: 1, UserID: 20}, nil)

		_, err := svc.AddFacilities(context.Background(), 99, 1, []FacilityInput{{Facility: "WiFi"}})
		assert.ErrorIs(t, err, domain.ErrForbidden)
		kosRepo.AssertNotCalled(t, "AddFacilities", mock.Anything, mock.Anything)
	})
}

func TestOwnerKosService_AddPaymentMethods(t *testing.T) {
	kosRepo := new(mockKosRepo)
	svc := NewOwnerKosService(kosRepo, NewStorageService(nil))

	kosRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.Kos{ID: 1, UserID: 20}, nil)
	kosRepo.On("AddPaymentMethods", mock.Anything, mock.MatchedBy(func(methods []*models.PaymentMethod) bool {
		return len(methods) == 1 && methods[0].KosID == 1 && methods[0].Type == "QRIS" && methods[0].IsActive
	})).Return(nil)

	methods, err := svc.AddPaymentMethods(context.Background(), 20, 1, []PaymentMethodInput{
		{BankName: "OVO", AccountNumber: "0812", AccountName: "Budi", Type: "ovo"},
	})
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, "QRIS", methods[0].Type)
	kosRepo.AssertExpectations(t)
}

func TestOwnerKosService_DeleteImage_StorageFailureIsNotFatal(t *testing.T) {
	kosRepo := new(mockKosRepo)
	svc := NewOwnerKosService(kosRepo, NewStorageService(nil))

	kosRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.Kos{ID: 1, UserID: 20}, nil)
	kosRepo.On("GetImageForKos", mock.Anything, uint(3), uint(1)).
		Return(&models.KosImage{ID: 3, KosID: 1, File: "https://res.cloudinary.com/demo/image/upload/v1/kos_images/a.jpg"}, nil)
	kosRepo.On("DeleteImage", mock.Anything, uint(3)).Return(nil)

	err := svc.DeleteImage(context.Background(), 20, 1, 3)
	require.NoError(t, err)
	kosRepo.AssertExpectations(t)
}

func TestOwnerKosService_UpdateRoom_NotInKos(t *testing.T) {
	kosRepo := new(mockKosRepo)
	svc := NewOwnerKosService(kosRepo, NewStorageService(nil))

	kosRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.Kos{ID: 1, UserID: 20}, nil)
	kosRepo.On("GetRoomForKos", mock.Anything, uint(7), uint(1)).
		Return(nil, assert.AnError)

	_, err := svc.UpdateRoom(context.Background(), 20, 1, 7, &RoomInput{Price: 100})
	assert.Error(t, err)
}

func TestOwnerKosService_Statistics(t *testing.T) {
	kosRepo := new(mockKosRepo)
	svc := NewOwnerKosService(kosRepo, NewStorageService(nil))

	kosRepo.On("OwnerStatistics", mock.Anything, uint(20)).Return(&repositories.OwnerStatistics{
		TotalKos:       3,
		ActiveKos:      2,
		TotalRooms:     18,
		AvailableRooms: 12,
	}, nil)

	stats, err := svc.Statistics(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalKos)
	assert.Equal(t, int64(12), stats.AvailableRooms)
}
