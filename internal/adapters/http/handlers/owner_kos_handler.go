package handlers

import (
	"errors"
	"strings"

	"koshub/internal/core/domain"
	"koshub/internal/core/services"
	"koshub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// OwnerKosHandler handles the owner side of listing management
type OwnerKosHandler struct {
	ownerKosService *services.OwnerKosService
	kosService      *services.KosService
}

// NewOwnerKosHandler creates a new owner kos handler
func NewOwnerKosHandler(ownerKosService *services.OwnerKosService, kosService *services.KosService) *OwnerKosHandler {
	return &OwnerKosHandler{
		ownerKosService: ownerKosService,
		kosService:      kosService,
	}
}

// CreateKosRequest represents kos creation request body
type CreateKosRequest struct {
	Name           string                        `json:"name"`
	Address        string                        `json:"address"`
	Description    string                        `json:"description"`
	PricePerMonth  int                           `json:"price_per_month"`
	Gender         string                        `json:"gender"`
	Latitude       *float64                      `json:"latitude"`
	Longitude      *float64                      `json:"longitude"`
	WhatsappNumber string                        `json:"whatsapp_number"`
	Facilities     []services.FacilityInput      `json:"facilities"`
	PaymentMethods []services.PaymentMethodInput `json:"payment_methods"`
	Rooms          []services.RoomInput          `json:"rooms"`
}

// UpdateKosRequest represents kos update request body
type UpdateKosRequest struct {
	Name           string                        `json:"name"`
	Address        string                        `json:"address"`
	Description    string                        `json:"description"`
	PricePerMonth  int                           `json:"price_per_month"`
	Gender         string                        `json:"gender"`
	Latitude       *float64                      `json:"latitude"`
	Longitude      *float64                      `json:"longitude"`
	WhatsappNumber string                        `json:"whatsapp_number"`
	IsActive       *bool                         `json:"is_active"`
	Facilities     []services.FacilityInput      `json:"facilities"`
	PaymentMethods []services.PaymentMethodInput `json:"payment_methods"`
}

// AddRoomsRequest represents rooms creation request body
type AddRoomsRequest struct {
	Rooms []services.RoomInput `json:"rooms"`
}

// AddFacilitiesRequest represents facilities creation request body
type AddFacilitiesRequest struct {
	Facilities []services.FacilityInput `json:"facilities"`
}

// AddPaymentMethodsRequest represents payment methods creation request body
type AddPaymentMethodsRequest struct {
	PaymentMethods []services.PaymentMethodInput `json:"payment_methods"`
}

// Create handles kos creation
// @Summary Create kos
// @Description Register a new kos with facilities, payment methods and rooms
// @Tags Owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateKosRequest true "Kos data"
// @Success 201 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /owner/kos [post]
func (h *OwnerKosHandler) Create(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("userID").(uint)

	var req CreateKosRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "Name is required"
	}
	if strings.TrimSpace(req.Address) == "" {
		fields["address"] = "Address is required"
	}
	if req.PricePerMonth <= 0 {
		fields["price_per_month"] = "Price per month must be greater than zero"
	}
	if req.Gender != "" && !domain.ValidGender(req.Gender) {
		fields["gender"] = "Gender must be male, female or all"
	}
	for _, room := range req.Rooms {
		if room.RoomType != "" && !domain.ValidRoomType(room.RoomType) {
			fields["rooms"] = "Room type must be single, double, triple or quad"
			break
		}
	}
	if len(fields) > 0 {
		return response.ValidationFailed(c, fields)
	}

	kos, err := h.ownerKosService.Create(c.Context(), ownerID, &services.CreateKosInput{
		Name:           strings.TrimSpace(req.Name),
		Address:        strings.TrimSpace(req.Address),
		Description:    req.Description,
		PricePerMonth:  req.PricePerMonth,
		Gender:         req.Gender,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		WhatsappNumber: strings.TrimSpace(req.WhatsappNumber),
		Facilities:     req.Facilities,
		PaymentMethods: req.PaymentMethods,
		Rooms:          req.Rooms,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to create kos")
	}

	h.kosService.InvalidateListingCache(c.Context())

	return response.Created(c, "Kos created successfully", fiber.Map{
		"kos": kos,
	})
}

// List handles listing the owner's kos
// @Summary List own kos
// @Description List the authenticated owner's kos with stats
// @Tags Owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /owner/kos [get]
func (h *OwnerKosHandler) List(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("userID").(uint)

	items, err := h.ownerKosService.List(c.Context(), ownerID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list kos")
	}

	return response.Success(c, "Kos retrieved successfully", fiber.Map{
		"kos": items,
	})
}

// Get handles the owner's kos detail
// @Summary Get own kos
// @Description Get one of the authenticated owner's kos
// @Tags Owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Kos ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /owner/kos/{id} [get]
func (h *OwnerKosHandler) Get(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid kos ID")
	}

	kos, err := h.ownerKosService.Get(c.Context(), ownerID, uint(id))
	if err != nil {
		return h.kosError(c, err, "Failed to get kos")
	}

	return response.Success(c, "Kos retrieved successfully", fiber.Map{
		"kos": kos,
	})
}

// Update handles kos update
// @Summary Update kos
// @Description Edit a kos, optionally replacing facilities and payment methods
// @Tags Owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Kos ID"
// @Param body body UpdateKosRequest true "Kos data"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /owner/kos/{id} [put]
func (h *OwnerKosHandler) Update(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid kos ID")
	}

	var req UpdateKosRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Gender != "" && !domain.ValidGender(req.Gender) {
		return response.ValidationFailed(c, map[string]string{"gender": "Gender must be male, female or all"})
	}

	kos, err := h.ownerKosService.Update(c.Context(), ownerID, uint(id), &services.UpdateKosInput{
		Name:           strings.TrimSpace(req.Name),
		Address:        strings.TrimSpace(req.Address),
		Description:    req.Description,
		PricePerMonth:  req.PricePerMonth,
		Gender:         req.Gender,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		WhatsappNumber: strings.TrimSpace(req.WhatsappNumber),
		IsActive:       req.IsActive,
		Facilities:     req.Facilities,
		PaymentMethods: req.PaymentMethods,
	})
	if err != nil {
		return h.kosError(c, err, "Failed to update kos")
	}

	h.kosService.InvalidateListingCache(c.Context())

	return response.Success(c, "Kos updated successfully", fiber.Map{
		"kos": kos,
	})
}

// Delete handles kos deletion
// @Summary Delete kos
// @Description Remove a kos and all its sub-resources
// @Tags Owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Kos ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /owner/kos/{id} [delete]
func (h *OwnerKosHandler) Delete(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid kos ID")
	}

	if err := h.ownerKosService.Delete(c.Context(), ownerID, uint(id)); err != nil {
		return h.kosError(c, err, "Failed to delete kos")
	}

	h.kosService.InvalidateListingCache(c.Context())

	return response.Success(c, "Kos deleted successfully", nil)
}

// AddRooms handles room creation
// @Summary Add rooms
// @Description Append rooms to a kos
// @Tags Owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Kos ID"
// @Param body body AddRoomsRequest true "Rooms data"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /owner/kos/{id}/rooms [post]
func (h *OwnerKosHandler) AddRooms(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid kos ID")
	}

	var req AddRoomsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	fields := map[string]string{}
	if len(req.Rooms) == 0 {
		fields["rooms"] = "At least one room is required"
	}
	for _, room := range req.Rooms {
		if strings.TrimSpace(room.RoomNumber) == "" {
			fields["rooms"] = "Room number is required"
			break
		}
		if room.RoomType != "" && !domain.ValidRoomType(room.RoomType) {
			fields["rooms"] = "Room type must be single, double, triple or quad"
			break
		}
	}
	if len(fields) > 0 {
		return response.ValidationFailed(c, fields)
	}

	rooms, err := h.ownerKosService.AddRooms(c.Context(), ownerID, uint(id), req.Rooms)
	if err != nil {
		return h.kosError(c, err, "Failed to add rooms")
	}

	return response.Created(c, "Rooms added successfully", fiber.Map{
		"rooms": rooms,
	})
}

// UpdateRoom handles room update
// @Summary Update room
// @Description Edit one room of a kos
// @Tags Owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Kos ID"
// @Param roomId path int true "Room ID"
// @Param body body services.RoomInput true "Room data"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /owner/kos/{id}/rooms/{roomId} [put]
func (h *OwnerKosHandler) UpdateRoom(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid kos ID")
	}
	roomID, err := c.ParamsInt("roomId")
	if err != nil || roomID < 1 {
		return response.BadRequest(c, "Invalid room ID")
	}

	var req services.RoomInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.RoomType != "" && !domain.ValidRoomType(req.RoomType) {
		return response.ValidationFailed(c, map[string]string{"room_type": "Room type must be single, double, triple or quad"})
	}

	room, err := h.ownerKosService.UpdateRoom(c.Context(), ownerID, uint(id), uint(roomID), &req)
	if err != nil {
		if errors.Is(err, domain.ErrKosRoomNotFound) {
			return response.NotFound(c, "Room not found")
		}
		return h.kosError(c, err, "Failed to update room")
	}

	return response.Success(c, "Room updated successfully", fiber.Map{
		"room": room,
	})
}

// DeleteRoom handles room deletion
// @Summary Delete room
// @Description Remove one room of a kos
// @Tags Owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Kos ID"
// @Param roomId path int true "Room ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /owner/kos/{id}/rooms/{roomId} [delete]
func (h *OwnerKosHandler) DeleteRoom(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid kos ID")
	}
	roomID, err := c.ParamsInt("roomId")
	if err != nil || roomID < 1 {
		return response.BadRequest(c, "Invalid room ID")
	}

	if err := h.ownerKosService.DeleteRoom(c.Context(), ownerID, uint(id), uint(roomID)); err != nil {
		if errors.Is(err, domain.ErrKosRoomNotFound) {
			return response.NotFound(c, "Room not found")
		}
		return h.kosError(c, err, "Failed to delete room")
	}

	return response.Success(c, "Room deleted successfully", nil)
}

// AddFacilities handles facility creation
// @Summary Add facilities
// @Description Append facilities to a kos
// @Tags Owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Kos ID"
// @Param body body AddFacilitiesRequest true "Facilities data"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /owner/kos/{id}/facilities [post]
func (h *OwnerKosHandler) AddFacilities(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid kos ID")
	}

	var req AddFacilitiesRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	fields := map[string]string{}
	if len(req.Facilities) == 0 {
		fields["facilities"] = "At least one facility is required"
	}
	for _, facility := range req.Facilities {
		if strings.TrimSpace(facility.Facility) == "" {
			fields["facilities"] = "Facility name is required"
			break
		}
	}
	if len(fields) > 0 {
		return response.ValidationFailed(c, fields)
	}

	facilities, err := h.ownerKosService.AddFacilities(c.Context(), ownerID, uint(id), req.Facilities)
	if err != nil {
		return h.kosError(c, err, "Failed to add facilities")
	}

	return response.Created(c, "Facilities added successfully", fiber.Map{
		"facilities": facilities,
	})
}

// AddPaymentMethods handles payment method creation
// @Summary Add payment methods
// @Description Append payment methods to a kos
// @Tags Owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Kos ID"
// @Param body body AddPaymentMethodsRequest true "Payment methods data"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /owner/kos/{id}/payment-methods [post]
func (h *OwnerKosHandler) AddPaymentMethods(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid kos ID")
	}

	var req AddPaymentMethodsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	fields := map[string]string{}
	if len(req.PaymentMethods) == 0 {
		fields["payment_methods"] = "At least one payment method is required"
	}
	for _, method := range req.PaymentMethods {
		if strings.TrimSpace(method.BankName) == "" {
			fields["payment_methods"] = "Bank name is required"
			break
		}
	}
	if len(fields) > 0 {
		return response.ValidationFailed(c, fields)
	}

	methods, err := h.ownerKosService.AddPaymentMethods(c.Context(), ownerID, uint(id), req.PaymentMethods)
	if err != nil {
		return h.kosError(c, err, "Failed to add payment methods")
	}

	return response.Created(c, "Payment methods added successfully", fiber.Map{
		"payment_methods": methods,
	})
}

// UploadImages handles image upload
// @Summary Upload images
// @Description Upload images for a kos, the first ever becomes primary
// @Tags Owner
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Kos ID"
// @Param images formData file true "Image files"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /owner/kos/{id}/images [post]
func (h *OwnerKosHandler) UploadImages(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid kos ID")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return response.BadRequest(c, "Invalid multipart form")
	}
	files := form.File["images"]
	if len(files) == 0 {
		return response.ValidationFailed(c, map[string]string{"images": "At least one image is required"})
	}

	images, err := h.ownerKosService.UploadImages(c.Context(), ownerID, uint(id), files)
	if err != nil {
		if errors.Is(err, services.ErrStorageDisabled) {
			return response.BadRequest(c, "Image uploads are not available")
		}
		return h.kosError(c, err, "Failed to upload images")
	}

	return response.Created(c, "Images uploaded successfully", fiber.Map{
		"images": images,
	})
}

// DeleteImage handles image deletion
// @Summary Delete image
// @Description Remove one image of a kos
// @Tags Owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Kos ID"
// @Param imageId path int true "Image ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /owner/kos/{id}/images/{imageId} [delete]
func (h *OwnerKosHandler) DeleteImage(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid kos ID")
	}
	imageID, err := c.ParamsInt("imageId")
	if err != nil || imageID < 1 {
		return response.BadRequest(c, "Invalid image ID")
	}

	if err := h.ownerKosService.DeleteImage(c.Context(), ownerID, uint(id), uint(imageID)); err != nil {
		if errors.Is(err, domain.ErrImageNotFound) {
			return response.NotFound(c, "Image not found")
		}
		return h.kosError(c, err, "Failed to delete image")
	}

	return response.Success(c, "Image deleted successfully", nil)
}

// SetPrimaryImage handles marking an image as primary
// @Summary Set primary image
// @Description Mark one image as the primary image of a kos
// @Tags Owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Kos ID"
// @Param imageId path int true "Image ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /owner/kos/{id}/images/{imageId}/primary [put]
func (h *OwnerKosHandler) SetPrimaryImage(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid kos ID")
	}
	imageID, err := c.ParamsInt("imageId")
	if err != nil || imageID < 1 {
		return response.BadRequest(c, "Invalid image ID")
	}

	if err := h.ownerKosService.SetPrimaryImage(c.Context(), ownerID, uint(id), uint(imageID)); err != nil {
		if errors.Is(err, domain.ErrImageNotFound) {
			return response.NotFound(c, "Image not found")
		}
		return h.kosError(c, err, "Failed to set primary image")
	}

	return response.Success(c, "Primary image updated successfully", nil)
}

// Statistics handles the owner portfolio summary
// @Summary Owner statistics
// @Description Summarize the authenticated owner's kos and rooms
// @Tags Owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /owner/statistics [get]
func (h *OwnerKosHandler) Statistics(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("userID").(uint)

	stats, err := h.ownerKosService.Statistics(c.Context(), ownerID)
	if err != nil {
		return response.InternalServerError(c, "Failed to get statistics")
	}

	return response.Success(c, "Statistics retrieved successfully", fiber.Map{
		"statistics": stats,
	})
}

func (h *OwnerKosHandler) kosError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrKosNotFound):
		return response.NotFound(c, "Kos not found")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "This kos does not belong to you")
	default:
		return response.InternalServerError(c, fallback)
	}
}
