package services

import (
	"context"
	"time"

	"koshub/internal/adapters/persistence/models"
	"koshub/internal/adapters/persistence/repositories"
	"koshub/internal/core/domain"
)

// ReportService builds owner booking reports and analytics
type ReportService struct {
	bookingRepo repositories.BookingRepository
	kosRepo     repositories.KosRepository
}

// NewReportService creates a new report service
func NewReportService(bookingRepo repositories.BookingRepository, kosRepo repositories.KosRepository) *ReportService {
	return &ReportService{bookingRepo: bookingRepo, kosRepo: kosRepo}
}

// ReportSummary aggregates the filtered booking rows
type ReportSummary struct {
	TotalBookings int   `json:"total_bookings"`
	TotalPending  int   `json:"total_pending"`
	TotalAccepted int   `json:"total_accepted"`
	TotalRejected int   `json:"total_rejected"`
	TotalRevenue  int64 `json:"total_revenue"`
}

// Report is the owner booking report
type Report struct {
	Summary  *ReportSummary    `json:"summary"`
	Bookings []*models.Booking `json:"bookings"`
}

// MonthlyStat is one month of the analytics rollup
type MonthlyStat struct {
	Month    string `json:"month"` // YYYY-MM
	Bookings int    `json:"bookings"`
	Accepted int    `json:"accepted"`
	Revenue  int64  `json:"revenue"`
}

// KosPerformance summarizes one kos for analytics
type KosPerformance struct {
	KosID         uint    `json:"kos_id"`
	Name          string  `json:"name"`
	ViewCount     int     `json:"view_count"`
	BookingsCount int64   `json:"bookings_count"`
	AverageRating float64 `json:"average_rating"`
	ReviewsCount  int64   `json:"reviews_count"`
}

// Analytics is the owner dashboard rollup
type Analytics struct {
	Monthly       []*MonthlyStat    `json:"monthly"`
	Kos           []*KosPerformance `json:"kos"`
	AverageRating float64           `json:"average_rating"`
}

// BuildReport lists the owner's bookings matching the filter with a summary.
// Revenue only counts accepted bookings.
func (s *ReportService) BuildReport(ctx context.Context, ownerID uint, filter *repositories.BookingFilter) (*Report, error) {
	kosIDs, err := s.kosRepo.IDsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	normalizeFilterStatus(filter)
	bookings, err := s.bookingRepo.ListByKosIDs(ctx, kosIDs, filter)
	if err != nil {
		return nil, err
	}

	summary := &ReportSummary{TotalBookings: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case string(domain.BookingPending):
			summary.TotalPending++
		case string(domain.BookingAccept):
			summary.TotalAccepted++
			summary.TotalRevenue += int64(b.TotalPrice)
		case string(domain.BookingReject):
			summary.TotalRejected++
		}
	}

	return &Report{Summary: summary, Bookings: bookings}, nil
}

// BuildAnalytics rolls up the last 12 calendar months of bookings plus
// per-kos performance and the owner's overall average rating.
func (s *ReportService) BuildAnalytics(ctx context.Context, ownerID uint) (*Analytics, error) {
	kosIDs, err := s.kosRepo.IDsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	windowStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -11, 0)

	bookings, err := s.bookingRepo.ListCreatedSince(ctx, kosIDs, windowStart)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]*MonthlyStat, 12)
	monthly := make([]*MonthlyStat, 0, 12)
	for i := 0; i < 12; i++ {
		month := windowStart.AddDate(0, i, 0).Format("2006-01")
		stat := &MonthlyStat{Month: month}
		byMonth[month] = stat
		monthly = append(monthly, stat)
	}

	for _, b := range bookings {
		stat, ok := byMonth[b.CreatedAt.Format("2006-01")]
		if !ok {
			continue
		}
		stat.Bookings++
		if b.Status == string(domain.BookingAccept) {
			stat.Accepted++
			stat.Revenue += int64(b.TotalPrice)
		}
	}

	items, err := s.kosRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	bookingCounts, err := s.kosRepo.BookingCountsByKosIDs(ctx, kosIDs)
	if err != nil {
		return nil, err
	}
	stats, err := s.kosRepo.StatsByKosIDs(ctx, kosIDs)
	if err != nil {
		return nil, err
	}

	performance := make([]*KosPerformance, 0, len(items))
	var ratingSum float64
	var totalReviews int64
	for _, k := range items {
		perf := &KosPerformance{
			KosID:         k.ID,
			Name:          k.Name,
			ViewCount:     k.ViewCount,
			BookingsCount: bookingCounts[k.ID],
		}
		if st, ok := stats[k.ID]; ok && st.ReviewsCount > 0 {
			perf.AverageRating = RoundRating(st.AverageRating)
			perf.ReviewsCount = st.ReviewsCount
			ratingSum += st.AverageRating * float64(st.ReviewsCount)
			totalReviews += st.ReviewsCount
		}
		performance = append(performance, perf)
	}

	analytics := &Analytics{Monthly: monthly, Kos: performance}
	// flat average over every review of the owner's kos, not a mean of means
	if totalReviews > 0 {
		analytics.AverageRating = RoundRating(ratingSum / float64(totalReviews))
	}
	return analytics, nil
}
