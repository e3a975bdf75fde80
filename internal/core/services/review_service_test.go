package services

import (
	"context"
	"testing"

	"koshub/internal/adapters/persistence/models"
	"koshub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReviewService() (*ReviewService, *mockReviewRepo, *mockBookingRepo, *mockKosRepo) {
	reviewRepo := new(mockReviewRepo)
	bookingRepo := new(mockBookingRepo)
	kosRepo := new(mockKosRepo)
	return NewReviewService(reviewRepo, bookingRepo, kosRepo), reviewRepo, bookingRepo, kosRepo
}

func TestReviewService_Create_RequiresAcceptedBooking(t *testing.T) {
	svc, reviewRepo, bookingRepo, kosRepo := newReviewService()

	kosRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Kos{ID: 1}, nil)
	bookingRepo.On("HasAcceptedBooking", mock.Anything, uint(5), uint(1)).Return(false, nil)

	_, err := svc.Create(context.Background(), 5, &CreateReviewInput{KosID: 1, Rating: 4, Comment: "nice place"})
	assert.ErrorIs(t, err, domain.ErrReviewNeedsBooking)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_Create_OncePerKos(t *testing.T) {
	svc, reviewRepo, bookingRepo, kosRepo := newReviewService()

	kosRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Kos{ID: 1}, nil)
	bookingRepo.On("HasAcceptedBooking", mock.Anything, uint(5), uint(1)).Return(true, nil)
	reviewRepo.On("ExistsByUserAndKos", mock.Anything, uint(5), uint(1)).Return(true, nil)

	_, err := svc.Create(context.Background(), 5, &CreateReviewInput{KosID: 1, Rating: 4, Comment: "again"})
	assert.ErrorIs(t, err, domain.ErrReviewExists)
}

func TestReviewService_Create_OK(t *testing.T) {
	svc, reviewRepo, bookingRepo, kosRepo := newReviewService()

	kosRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Kos{ID: 1}, nil)
	bookingRepo.On("HasAcceptedBooking", mock.Anything, uint(5), uint(1)).Return(true, nil)
	reviewRepo.On("ExistsByUserAndKos", mock.Anything, uint(5), uint(1)).Return(false, nil)
	reviewRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *models.Review) bool {
		return r.KosID == 1 && r.UserID == 5 && r.Rating == 5
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Review).ID = 33
	}).Return(nil)
	reviewRepo.On("GetByID", mock.Anything, uint(33)).
		Return(&models.Review{ID: 33, KosID: 1, UserID: 5, Rating: 5}, nil)

	review, err := svc.Create(context.Background(), 5, &CreateReviewInput{KosID: 1, Rating: 5, Comment: "great"})
	require.NoError(t, err)
	assert.Equal(t, uint(33), review.ID)
}

func TestReviewService_Update_OwnReviewOnly(t *testing.T) {
	svc, reviewRepo, _, _ := newReviewService()

	reviewRepo.On("GetByID", mock.Anything, uint(3)).
		Return(&models.Review{ID: 3, UserID: 5}, nil)

	_, err := svc.Update(context.Background(), 6, 3, &UpdateReviewInput{Rating: 2, Comment: "meh"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestReviewService_Reply(t *testing.T) {
	t.Run("owner replies and replaces", func(t *testing.T) {
		svc, reviewRepo, _, _ := newReviewService()

		reviewRepo.On("GetByID", mock.Anything, uint(3)).
			Return(&models.Review{ID: 3, Kos: &models.Kos{ID: 1, UserID: 20}}, nil)
		reviewRepo.On("UpsertReply", mock.Anything, uint(3), "thanks for staying").
			Return(&models.ReviewReply{ID: 1, ReviewID: 3, OwnerReply: "thanks for staying"}, nil)

		reply, err := svc.Reply(context.Background(), 20, 3, "thanks for staying")
		require.NoError(t, err)
		assert.Equal(t, "thanks for staying", reply.OwnerReply)
	})

	t.Run("reply on someone else's kos", func(t *testing.T) {
		svc, reviewRepo, _, _ := newReviewService()

		reviewRepo.On("GetByID", mock.Anything, uint(3)).
			Return(&models.Review{ID: 3, Kos: &models.Kos{ID: 1, UserID: 20}}, nil)

		_, err := svc.Reply(context.Background(), 99, 3, "hi")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}
