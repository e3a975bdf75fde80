package handlers

import (
	"errors"
	"time"

	"koshub/internal/core/domain"
	"koshub/internal/core/services"
	"koshub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

// BookingHandler handles the tenant side of bookings
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CreateBookingRequest represents booking creation request body
type CreateBookingRequest struct {
	KosID     uint   `json:"kos_id"`
	RoomID    uint   `json:"room_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// UpdateBookingStatusRequest represents owner status update request body
type UpdateBookingStatusRequest struct {
	Status         string `json:"status"`
	RejectedReason string `json:"rejected_reason"`
}

// Create handles booking creation
// @Summary Create booking
// @Description Book a room for a date range
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateBookingRequest true "Booking data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	fields := map[string]string{}
	if req.KosID == 0 {
		fields["kos_id"] = "Kos is required"
	}
	if req.RoomID == 0 {
		fields["room_id"] = "Room is required"
	}
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		fields["start_date"] = "Start date must be a valid date (YYYY-MM-DD)"
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		fields["end_date"] = "End date must be a valid date (YYYY-MM-DD)"
	}
	if len(fields) > 0 {
		return response.ValidationFailed(c, fields)
	}

	booking, err := h.bookingService.Create(c.Context(), userID, &services.CreateBookingInput{
		KosID:     req.KosID,
		RoomID:    req.RoomID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidBookingDates):
			return response.ValidationFailed(c, map[string]string{
				"start_date": "Start date must not be in the past",
				"end_date":   "End date must be after start date",
			})
		case errors.Is(err, domain.ErrKosNotFound):
			return response.NotFound(c, "Kos not found")
		case errors.Is(err, domain.ErrRoomNotAvailable):
			return response.BadRequest(c, "Room not available or not found")
		case errors.Is(err, domain.ErrBookingOverlap):
			return response.BadRequest(c, "Room is already booked for selected dates")
		default:
			return response.InternalServerError(c, "Failed to create booking")
		}
	}

	return response.Created(c, "Booking created successfully", fiber.Map{
		"booking": booking,
	})
}

// List handles listing the caller's bookings
// @Summary List my bookings
// @Description List the authenticated user's bookings
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /bookings [get]
func (h *BookingHandler) List(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	bookings, err := h.bookingService.ListByUser(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list bookings")
	}

	return response.Success(c, "Bookings retrieved successfully", fiber.Map{
		"bookings": bookings,
	})
}

// Get handles booking detail
// @Summary Get booking
// @Description Get one of the authenticated user's bookings
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid booking ID")
	}

	booking, err := h.bookingService.GetForUser(c.Context(), userID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookingNotFound):
			return response.NotFound(c, "Booking not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "This booking does not belong to you")
		default:
			return response.InternalServerError(c, "Failed to get booking")
		}
	}

	return response.Success(c, "Booking retrieved successfully", fiber.Map{
		"booking": booking,
	})
}

// Receipt handles booking receipt
// @Summary Get booking receipt
// @Description Get the receipt of a booking with owner contact data
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/{id}/receipt [get]
func (h *BookingHandler) Receipt(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid booking ID")
	}

	booking, err := h.bookingService.GetReceipt(c.Context(), userID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookingNotFound):
			return response.NotFound(c, "Booking not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "This booking does not belong to you")
		default:
			return response.InternalServerError(c, "Failed to get receipt")
		}
	}

	return response.Success(c, "Receipt retrieved successfully", fiber.Map{
		"booking": booking,
	})
}
