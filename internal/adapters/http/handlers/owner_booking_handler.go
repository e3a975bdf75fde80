package handlers

import (
	"errors"
	"strings"

	"koshub/internal/adapters/persistence/repositories"
	"koshub/internal/core/domain"
	"koshub/internal/core/services"
	"koshub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// OwnerBookingHandler handles the owner side of bookings, reviews and reports
type OwnerBookingHandler struct {
	bookingService *services.BookingService
	reviewService  *services.ReviewService
	reportService  *services.ReportService
}

// NewOwnerBookingHandler creates a new owner booking handler
func NewOwnerBookingHandler(
	bookingService *services.BookingService,
	reviewService *services.ReviewService,
	reportService *services.ReportService,
) *OwnerBookingHandler {
	return &OwnerBookingHandler{
		bookingService: bookingService,
		reviewService:  reviewService,
		reportService:  reportService,
	}
}

// ReplyReviewRequest represents owner reply request body
type ReplyReviewRequest struct {
	Reply string `json:"reply"`
}

func bookingFilterFromQuery(c *fiber.Ctx) *repositories.BookingFilter {
	return &repositories.BookingFilter{
		Month:     c.Query("month"),
		Year:      c.Query("year"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Status:    c.Query("status"),
	}
}

// List handles listing bookings across the owner's kos
// @Summary List incoming bookings
// @Description List bookings across all of the owner's kos with optional filters
// @Tags Owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param month query string false "Filter by month (YYYY-MM)"
// @Param year query string false "Filter by year (YYYY)"
// @Param start_date query string false "Filter created from (YYYY-MM-DD)"
// @Param end_date query string false "Filter created until (YYYY-MM-DD)"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Response
// @Router /owner/bookings [get]
func (h *OwnerBookingHandler) List(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("userID").(uint)

	bookings, err := h.bookingService.ListForOwner(c.Context(), ownerID, bookingFilterFromQuery(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to list bookings")
	}

	return response.Success(c, "Bookings retrieved successfully", fiber.Map{
		"bookings": bookings,
	})
}

// Get handles owner booking detail
// @Summary Get incoming booking
// @Description Get one booking on the owner's kos
// @Tags Owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /owner/bookings/{id} [get]
func (h *OwnerBookingHandler) Get(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid booking ID")
	}

	booking, err := h.bookingService.GetForOwner(c.Context(), ownerID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookingNotFound):
			return response.NotFound(c, "Booking not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "This booking is not on your kos")
		default:
			return response.InternalServerError(c, "Failed to get booking")
		}
	}

	return response.Success(c, "Booking retrieved successfully", fiber.Map{
		"booking": booking,
	})
}

// UpdateStatus handles accepting or rejecting a booking
// @Summary Update booking status
// @Description Accept or reject a pending booking
// @Tags Owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Param body body UpdateBookingStatusRequest true "Status data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /owner/bookings/{id}/status [put]
func (h *OwnerBookingHandler) UpdateStatus(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid booking ID")
	}

	var req UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Status) == "" {
		return response.ValidationFailed(c, map[string]string{"status": "Status is required"})
	}

	booking, err := h.bookingService.UpdateStatus(c.Context(), ownerID, uint(id), &services.UpdateStatusInput{
		Status:         req.Status,
		RejectedReason: strings.TrimSpace(req.RejectedReason),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidBookingStatus):
			return response.ValidationFailed(c, map[string]string{"status": "Status must be accept or reject"})
		case errors.Is(err, domain.ErrBookingNotFound):
			return response.NotFound(c, "Booking not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "This booking is not on your kos")
		case errors.Is(err, domain.ErrBookingNotPending):
			return response.BadRequest(c, "Booking status can no longer be changed")
		default:
			return response.InternalServerError(c, "Failed to update booking status")
		}
	}

	return response.Success(c, "Booking status updated successfully", fiber.Map{
		"booking": booking,
	})
}

// Report handles the owner booking report
// @Summary Booking report
// @Description Filtered booking report with summary counts and revenue
// @Tags Owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param month query string false "Filter by month (YYYY-MM)"
// @Param year query string false "Filter by year (YYYY)"
// @Param start_date query string false "Filter created from (YYYY-MM-DD)"
// @Param end_date query string false "Filter created until (YYYY-MM-DD)"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Response
// @Router /owner/reports/bookings [get]
func (h *OwnerBookingHandler) Report(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("userID").(uint)

	report, err := h.reportService.BuildReport(c.Context(), ownerID, bookingFilterFromQuery(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to build report")
	}

	return response.Success(c, "Report retrieved successfully", fiber.Map{
		"report": report,
	})
}

// Analytics handles the owner dashboard rollup
// @Summary Booking analytics
// @Description Last 12 months of bookings plus per-kos performance
// @Tags Owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /owner/reports/analytics [get]
func (h *OwnerBookingHandler) Analytics(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("userID").(uint)

	analytics, err := h.reportService.BuildAnalytics(c.Context(), ownerID)
	if err != nil {
		return response.InternalServerError(c, "Failed to build analytics")
	}

	return response.Success(c, "Analytics retrieved successfully", fiber.Map{
		"analytics": analytics,
	})
}

// ListReviews handles listing reviews across the owner's kos
// @Summary List reviews
// @Description List reviews across all of the owner's kos
// @Tags Owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /owner/reviews [get]
func (h *OwnerBookingHandler) ListReviews(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("userID").(uint)

	reviews, err := h.reviewService.ListForOwner(c.Context(), ownerID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list reviews")
	}

	return response.Success(c, "Reviews retrieved successfully", fiber.Map{
		"reviews": reviews,
	})
}

// ReplyReview handles replying to a review
// @Summary Reply to review
// @Description Store the owner's reply on a review, replacing any earlier one
// @Tags Owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Param body body ReplyReviewRequest true "Reply data"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /owner/reviews/{id}/reply [post]
func (h *OwnerBookingHandler) ReplyReview(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid review ID")
	}

	var req ReplyReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Reply) == "" {
		return response.ValidationFailed(c, map[string]string{"reply": "Reply is required"})
	}

	reply, err := h.reviewService.Reply(c.Context(), ownerID, uint(id), strings.TrimSpace(req.Reply))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrReviewNotFound):
			return response.NotFound(c, "Review not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "This review is not on your kos")
		default:
			return response.InternalServerError(c, "Failed to reply to review")
		}
	}

	return response.Success(c, "Reply saved successfully", fiber.Map{
		"reply": reply,
	})
}
