package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"koshub/internal/adapters/persistence/models"
	"koshub/internal/adapters/persistence/repositories"
	"koshub/internal/core/domain"
	"koshub/internal/core/services"
	"koshub/internal/pkg/cache"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stubs embed the repository interface and override only what each test
// exercises. Anything else panics on the nil embed.

type stubKosRepo struct {
	repositories.KosRepository
	kos    *models.Kos
	search func(q *repositories.KosQuery) ([]*models.Kos, int64, error)
}

func (s *stubKosRepo) GetByID(ctx context.Context, id uint) (*models.Kos, error) {
	return s.kos, nil
}

func (s *stubKosRepo) Search(ctx context.Context, q *repositories.KosQuery) ([]*models.Kos, int64, error) {
	return s.search(q)
}

type stubFavoriteRepo struct {
	repositories.FavoriteRepository
	exists bool
}

func (s *stubFavoriteRepo) ExistsByUserAndKos(ctx context.Context, userID, kosID uint) (bool, error) {
	return s.exists, nil
}

type stubReviewRepo struct {
	repositories.ReviewRepository
	exists bool
}

func (s *stubReviewRepo) ExistsByUserAndKos(ctx context.Context, userID, kosID uint) (bool, error) {
	return s.exists, nil
}

type stubBookingRepo struct {
	repositories.BookingRepository
	createErr error
}

func (s *stubBookingRepo) HasAcceptedBooking(ctx context.Context, userID, kosID uint) (bool, error) {
	return true, nil
}

func (s *stubBookingRepo) CreateExclusive(ctx context.Context, booking *models.Booking) error {
	return s.createErr
}

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(5))
		return c.Next()
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp.StatusCode, payload
}

func TestFavoriteHandler_Add_DuplicateIsBadRequest(t *testing.T) {
	kosRepo := &stubKosRepo{kos: &models.Kos{ID: 1, IsActive: true}}
	favoriteRepo := &stubFavoriteRepo{exists: true}
	handler := NewFavoriteHandler(services.NewFavoriteService(favoriteRepo, kosRepo))

	app := newTestApp()
	app.Post("/favorites", handler.Add)

	status, payload := doJSON(t, app, "POST", "/favorites", fiber.Map{"kos_id": 1})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Kos already in favorites", payload["message"])
}

func TestReviewHandler_Create_DuplicateIsBadRequest(t *testing.T) {
	kosRepo := &stubKosRepo{kos: &models.Kos{ID: 1, IsActive: true}}
	reviewRepo := &stubReviewRepo{exists: true}
	bookingRepo := &stubBookingRepo{}
	handler := NewReviewHandler(services.NewReviewService(reviewRepo, bookingRepo, kosRepo))

	app := newTestApp()
	app.Post("/kos/:id/reviews", handler.Create)

	status, payload := doJSON(t, app, "POST", "/kos/1/reviews", fiber.Map{
		"rating":  5,
		"comment": "nice place",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "You have already reviewed this kos", payload["message"])
}

func TestBookingHandler_Create_ConflictsAreBadRequest(t *testing.T) {
	start := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	end := time.Now().AddDate(0, 1, 1).Format("2006-01-02")

	tests := []struct {
		name        string
		bookingRepo *stubBookingRepo
		wantMessage string
	}{
		{
			"overlapping dates",
			&stubBookingRepo{createErr: domain.ErrBookingOverlap},
			"Room is already booked for selected dates",
		},
		{
			"room not available",
			&stubBookingRepo{createErr: domain.ErrRoomNotAvailable},
			"Room not available or not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kosRepo := &stubKosRepo{kos: &models.Kos{ID: 1, IsActive: true, PricePerMonth: 1000000}}
			handler := NewBookingHandler(services.NewBookingService(tt.bookingRepo, kosRepo))

			app := newTestApp()
			app.Post("/bookings", handler.Create)

			status, payload := doJSON(t, app, "POST", "/bookings", fiber.Map{
				"kos_id":     1,
				"room_id":    2,
				"start_date": start,
				"end_date":   end,
			})
			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Equal(t, tt.wantMessage, payload["message"])
		})
	}
}

func TestKosHandler_List_SortByParam(t *testing.T) {
	var gotSortBy string
	kosRepo := &stubKosRepo{
		search: func(q *repositories.KosQuery) ([]*models.Kos, int64, error) {
			gotSortBy = q.SortBy
			return []*models.Kos{}, 0, nil
		},
	}
	handler := NewKosHandler(services.NewKosService(kosRepo, cache.New(nil)))

	app := fiber.New()
	app.Get("/kos", handler.List)

	req := httptest.NewRequest("GET", "/kos?sort_by=price_low", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "price_low", gotSortBy)
}

func TestOwnerKosHandler_AddFacilities_ValidatesBody(t *testing.T) {
	kosRepo := &stubKosRepo{kos: &models.Kos{ID: 1, UserID: 5}}
	handler := NewOwnerKosHandler(
		services.NewOwnerKosService(kosRepo, services.NewStorageService(nil)),
		services.NewKosService(kosRepo, cache.New(nil)),
	)

	app := newTestApp()
	app.Post("/kos/:id/facilities", handler.AddFacilities)

	status, _ := doJSON(t, app, "POST", "/kos/1/facilities", fiber.Map{
		"facilities": []fiber.Map{},
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}
