package handlers

import (
	"errors"
	"strings"

	"koshub/internal/core/domain"
	"koshub/internal/core/services"
	"koshub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles the tenant side of reviews
type ReviewHandler struct {
	reviewService *services.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReviewRequest represents review creation request body
type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// UpdateReviewRequest represents review update request body
type UpdateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func validateReviewFields(rating int, comment string) map[string]string {
	fields := map[string]string{}
	if rating < 1 || rating > 5 {
		fields["rating"] = "Rating must be between 1 and 5"
	}
	if strings.TrimSpace(comment) == "" {
		fields["comment"] = "Comment is required"
	}
	return fields
}

// Create handles review creation
// @Summary Create review
// @Description Post a review for a kos the user has stayed at
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Kos ID"
// @Param body body CreateReviewRequest true "Review data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /kos/{id}/reviews [post]
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	kosID, err := c.ParamsInt("id")
	if err != nil || kosID < 1 {
		return response.BadRequest(c, "Invalid kos ID")
	}

	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fields := validateReviewFields(req.Rating, req.Comment); len(fields) > 0 {
		return response.ValidationFailed(c, fields)
	}

	review, err := h.reviewService.Create(c.Context(), userID, &services.CreateReviewInput{
		KosID:   uint(kosID),
		Rating:  req.Rating,
		Comment: strings.TrimSpace(req.Comment),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrKosNotFound):
			return response.NotFound(c, "Kos not found")
		case errors.Is(err, domain.ErrReviewNeedsBooking):
			return response.BadRequest(c, "You can only review kos that you have booked")
		case errors.Is(err, domain.ErrReviewExists):
			return response.BadRequest(c, "You have already reviewed this kos")
		default:
			return response.InternalServerError(c, "Failed to create review")
		}
	}

	return response.Created(c, "Review created successfully", fiber.Map{
		"review": review,
	})
}

// Update handles review update
// @Summary Update review
// @Description Edit the authenticated user's own review
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Param body body UpdateReviewRequest true "Review data"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /reviews/{id} [put]
func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid review ID")
	}

	var req UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fields := validateReviewFields(req.Rating, req.Comment); len(fields) > 0 {
		return response.ValidationFailed(c, fields)
	}

	review, err := h.reviewService.Update(c.Context(), userID, uint(id), &services.UpdateReviewInput{
		Rating:  req.Rating,
		Comment: strings.TrimSpace(req.Comment),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrReviewNotFound):
			return response.NotFound(c, "Review not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "This review does not belong to you")
		default:
			return response.InternalServerError(c, "Failed to update review")
		}
	}

	return response.Success(c, "Review updated successfully", fiber.Map{
		"review": review,
	})
}

// Delete handles review deletion
// @Summary Delete review
// @Description Delete the authenticated user's own review
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid review ID")
	}

	if err := h.reviewService.Delete(c.Context(), userID, uint(id)); err != nil {
		switch {
		case errors.Is(err, domain.ErrReviewNotFound):
			return response.NotFound(c, "Review not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "This review does not belong to you")
		default:
			return response.InternalServerError(c, "Failed to delete review")
		}
	}

	return response.Success(c, "Review deleted successfully", nil)
}
