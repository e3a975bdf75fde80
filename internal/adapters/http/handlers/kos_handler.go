package handlers

import (
	"errors"
	"strconv"

	"koshub/internal/core/domain"
	"koshub/internal/core/services"
	"koshub/internal/pkg/pagination"
	"koshub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// KosHandler handles the public listing catalog endpoints
type KosHandler struct {
	kosService *services.KosService
}

// NewKosHandler creates a new kos handler
func NewKosHandler(kosService *services.KosService) *KosHandler {
	return &KosHandler{kosService: kosService}
}

// List handles public kos search
// @Summary List kos
// @Description Search active kos with gender, price and text filters
// @Tags Kos
// @Accept json
// @Produce json
// @Param gender query string false "Gender filter (male, female, mixed)"
// @Param search query string false "Match against name and address"
// @Param min_price query int false "Minimum monthly price"
// @Param max_price query int false "Maximum monthly price"
// @Param sort_by query string false "Sort order (price_low, price_high, popular)"
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /kos [get]
func (h *KosHandler) List(c *fiber.Ctx) error {
	p := pagination.GetParams(c)

	input := &services.SearchInput{
		Gender: c.Query("gender"),
		Search: c.Query("search"),
		SortBy: c.Query("sort_by"),
		Page:   p.Page,
		Limit:  p.Limit,
	}
	if raw := c.Query("min_price"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			input.MinPrice = &v
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			input.MaxPrice = &v
		}
	}

	result, err := h.kosService.Search(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list kos")
	}

	return response.Success(c, "Kos retrieved successfully", fiber.Map{
		"kos":  result.Items,
		"meta": result.Meta,
	})
}

// Get handles public kos detail
// @Summary Get kos detail
// @Description Get one kos with rooms, facilities, images, reviews and payment methods
// @Tags Kos
// @Accept json
// @Produce json
// @Param id path int true "Kos ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /kos/{id} [get]
func (h *KosHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid kos ID")
	}

	kos, err := h.kosService.GetDetail(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrKosNotFound) {
			return response.NotFound(c, "Kos not found")
		}
		return response.InternalServerError(c, "Failed to get kos")
	}

	return response.Success(c, "Kos retrieved successfully", fiber.Map{
		"kos": kos,
	})
}
