package handlers

import (
	"errors"

	"koshub/internal/core/domain"
	"koshub/internal/core/services"
	"koshub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// FavoriteHandler handles favorite endpoints
type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// AddFavoriteRequest represents favorite creation request body
type AddFavoriteRequest struct {
	KosID uint `json:"kos_id"`
}

// Add handles adding a kos to favorites
// @Summary Add favorite
// @Description Put a kos on the authenticated user's favorite list
// @Tags Favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AddFavoriteRequest true "Favorite data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /favorites [post]
func (h *FavoriteHandler) Add(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	var req AddFavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.KosID == 0 {
		return response.ValidationFailed(c, map[string]string{"kos_id": "Kos is required"})
	}

	favorite, err := h.favoriteService.Add(c.Context(), userID, req.KosID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrKosNotFound):
			return response.NotFound(c, "Kos not found")
		case errors.Is(err, domain.ErrFavoriteExists):
			return response.BadRequest(c, "Kos already in favorites")
		default:
			return response.InternalServerError(c, "Failed to add favorite")
		}
	}

	return response.Created(c, "Favorite added successfully", fiber.Map{
		"favorite": favorite,
	})
}

// List handles listing the caller's favorites
// @Summary List favorites
// @Description List the authenticated user's favorite kos
// @Tags Favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /favorites [get]
func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	favorites, err := h.favoriteService.List(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list favorites")
	}

	return response.Success(c, "Favorites retrieved successfully", fiber.Map{
		"favorites": favorites,
	})
}

// Remove handles deleting a favorite
// @Summary Remove favorite
// @Description Remove a kos from the authenticated user's favorite list
// @Tags Favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Favorite ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /favorites/{id} [delete]
func (h *FavoriteHandler) Remove(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid favorite ID")
	}

	if err := h.favoriteService.Remove(c.Context(), userID, uint(id)); err != nil {
		switch {
		case errors.Is(err, domain.ErrFavoriteNotFound):
			return response.NotFound(c, "Favorite not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "This favorite does not belong to you")
		default:
			return response.InternalServerError(c, "Failed to remove favorite")
		}
	}

	return response.Success(c, "Favorite removed successfully", nil)
}
