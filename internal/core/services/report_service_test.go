package services

import (
	"context"
	"testing"
	"time"

	"koshub/internal/adapters/persistence/models"
	"koshub/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReportService_BuildReport(t *testing.T) {
	bookingRepo := new(mockBookingRepo)
	kosRepo := new(mockKosRepo)
	svc := NewReportService(bookingRepo, kosRepo)

	kosRepo.On("IDsByOwner", mock.Anything, uint(20)).Return([]uint{1, 2}, nil)
	bookingRepo.On("ListByKosIDs", mock.Anything, []uint{1, 2}, mock.Anything).Return([]*models.Booking{
		{ID: 1, Status: "accept", TotalPrice: 1200000},
		{ID: 2, Status: "accept", TotalPrice: 800000},
		{ID: 3, Status: "pending", TotalPrice: 500000},
		{ID: 4, Status: "reject", TotalPrice: 900000},
	}, nil)

	report, err := svc.BuildReport(context.Background(), 20, &repositories.BookingFilter{})
	require.NoError(t, err)

	assert.Equal(t, 4, report.Summary.TotalBookings)
	assert.Equal(t, 1, report.Summary.TotalPending)
	assert.Equal(t, 2, report.Summary.TotalAccepted)
	assert.Equal(t, 1, report.Summary.TotalRejected)

	// pending and rejected rows never count toward revenue
	assert.Equal(t, int64(2000000), report.Summary.TotalRevenue)
}

func TestReportService_BuildReport_NormalizesStatusFilter(t *testing.T) {
	bookingRepo := new(mockBookingRepo)
	kosRepo := new(mockKosRepo)
	svc := NewReportService(bookingRepo, kosRepo)

	kosRepo.On("IDsByOwner", mock.Anything, uint(20)).Return([]uint{1}, nil)
	bookingRepo.On("ListByKosIDs", mock.Anything, []uint{1}, mock.MatchedBy(func(f *repositories.BookingFilter) bool {
		return f.Status == "reject"
	})).Return([]*models.Booking{{ID: 4, Status: "reject"}}, nil)

	report, err := svc.BuildReport(context.Background(), 20, &repositories.BookingFilter{Status: "rejected"})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.TotalRejected)
	bookingRepo.AssertExpectations(t)
}

func TestReportService_BuildAnalytics(t *testing.T) {
	bookingRepo := new(mockBookingRepo)
	kosRepo := new(mockKosRepo)
	svc := NewReportService(bookingRepo, kosRepo)

	now := time.Now()
	thisMonth := time.Date(now.Year(), now.Month(), 15, 0, 0, 0, 0, now.Location())
	lastMonth := thisMonth.AddDate(0, -1, 0)

	kosRepo.On("IDsByOwner", mock.Anything, uint(20)).Return([]uint{1, 2}, nil)
	bookingRepo.On("ListCreatedSince", mock.Anything, []uint{1, 2}, mock.Anything).Return([]*models.Booking{
		{ID: 1, KosID: 1, Status: "accept", TotalPrice: 1000000, CreatedAt: thisMonth},
		{ID: 2, KosID: 1, Status: "pending", TotalPrice: 700000, CreatedAt: thisMonth},
		{ID: 3, KosID: 2, Status: "accept", TotalPrice: 500000, CreatedAt: lastMonth},
	}, nil)
	kosRepo.On("ListByOwner", mock.Anything, uint(20)).Return([]*models.Kos{
		{ID: 1, Name: "Kos Melati", ViewCount: 120},
		{ID: 2, Name: "Kos Mawar", ViewCount: 40},
	}, nil)
	kosRepo.On("BookingCountsByKosIDs", mock.Anything, []uint{1, 2}).Return(map[uint]int64{
		1: 9,
		2: 4,
	}, nil)
	kosRepo.On("StatsByKosIDs", mock.Anything, []uint{1, 2}).Return(map[uint]repositories.KosStats{
		1: {KosID: 1, AverageRating: 4.5, ReviewsCount: 10},
		2: {KosID: 2, AverageRating: 3.5, ReviewsCount: 2},
	}, nil)

	analytics, err := svc.BuildAnalytics(context.Background(), 20)
	require.NoError(t, err)

	// all 12 months are present even when empty
	require.Len(t, analytics.Monthly, 12)
	for _, stat := range analytics.Monthly[:10] {
		assert.Zero(t, stat.Bookings)
	}

	current := analytics.Monthly[11]
	assert.Equal(t, thisMonth.Format("2006-01"), current.Month)
	assert.Equal(t, 2, current.Bookings)
	assert.Equal(t, 1, current.Accepted)
	assert.Equal(t, int64(1000000), current.Revenue)

	previous := analytics.Monthly[10]
	assert.Equal(t, 1, previous.Bookings)
	assert.Equal(t, int64(500000), previous.Revenue)

	// counts come from the all-time aggregate, not the 12-month window
	require.Len(t, analytics.Kos, 2)
	assert.Equal(t, int64(9), analytics.Kos[0].BookingsCount)
	assert.Equal(t, 4.5, analytics.Kos[0].AverageRating)
	assert.Equal(t, int64(4), analytics.Kos[1].BookingsCount)
	assert.Equal(t, 3.5, analytics.Kos[1].AverageRating)

	// weighted over all 12 reviews: (4.5*10 + 3.5*2) / 12, not (4.5+3.5)/2
	assert.Equal(t, 4.3, analytics.AverageRating)
}

func TestReportService_BuildAnalytics_NoKos(t *testing.T) {
	bookingRepo := new(mockBookingRepo)
	kosRepo := new(mockKosRepo)
	svc := NewReportService(bookingRepo, kosRepo)

	kosRepo.On("IDsByOwner", mock.Anything, uint(20)).Return([]uint{}, nil)
	bookingRepo.On("ListCreatedSince", mock.Anything, []uint{}, mock.Anything).Return([]*models.Booking{}, nil)
	kosRepo.On("ListByOwner", mock.Anything, uint(20)).Return([]*models.Kos{}, nil)
	kosRepo.On("BookingCountsByKosIDs", mock.Anything, []uint{}).Return(map[uint]int64{}, nil)
	kosRepo.On("StatsByKosIDs", mock.Anything, []uint{}).Return(map[uint]repositories.KosStats{}, nil)

	analytics, err := svc.BuildAnalytics(context.Background(), 20)
	require.NoError(t, err)
	assert.Len(t, analytics.Monthly, 12)
	assert.Empty(t, analytics.Kos)
	assert.Zero(t, analytics.AverageRating)
}
