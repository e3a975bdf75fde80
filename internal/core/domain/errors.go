package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalServer = errors.New("internal server error")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Booking errors
var (
	ErrBookingNotFound      = errors.New("booking not found")
	ErrBookingOverlap       = errors.New("room is already booked for selected dates")
	ErrBookingNotPending    = errors.New("booking status can no longer be changed")
	ErrRoomNotAvailable     = errors.New("room not available or not found")
	ErrInvalidBookingDates  = errors.New("end date must be after start date")
	ErrInvalidBookingStatus = errors.New("status must be accept or reject")
)

// Review errors
var (
	ErrReviewNotFound     = errors.New("review not found")
	ErrReviewExists       = errors.New("you have already reviewed this kos")
	ErrReviewNeedsBooking = errors.New("you can only review kos that you have booked")
)

// Favorite errors
var (
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrFavoriteExists   = errors.New("kos already in favorites")
)

// Kos errors
var (
	ErrKosNotFound     = errors.New("kos not found")
	ErrKosRoomNotFound = errors.New("room not found")
	ErrImageNotFound   = errors.New("image not found")
)
