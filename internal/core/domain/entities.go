package domain

// Role represents a user role in the system
type Role string

const (
	RoleOwner   Role = "owner"
	RoleSociety Role = "society"
)

// ValidRole reports whether r is a known role
func ValidRole(r string) bool {
	return r == string(RoleOwner) || r == string(RoleSociety)
}

// BookingStatus represents the booking lifecycle state
type BookingStatus string

const (
	BookingPending BookingStatus = "pending"
	BookingAccept  BookingStatus = "accept"
	BookingReject  BookingStatus = "reject"
)

// Gender constrains who a kos accepts
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderAll    Gender = "all"
)

// ValidGender reports whether g is a known gender value
func ValidGender(g string) bool {
	return g == string(GenderMale) || g == string(GenderFemale) || g == string(GenderAll)
}

// RoomType is the kos room category
type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
	RoomTriple RoomType = "triple"
	RoomQuad   RoomType = "quad"
)

// ValidRoomType reports whether t is a known room type
func ValidRoomType(t string) bool {
	switch RoomType(t) {
	case RoomSingle, RoomDouble, RoomTriple, RoomQuad:
		return true
	}
	return false
}

// PaymentType is the payment method category
type PaymentType string

const (
	PaymentCash     PaymentType = "Cash"
	PaymentTransfer PaymentType = "Transfer"
	PaymentQRIS     PaymentType = "QRIS"
)

// ValidPaymentType reports whether t is a known payment type
func ValidPaymentType(t string) bool {
	switch PaymentType(t) {
	case PaymentCash, PaymentTransfer, PaymentQRIS:
		return true
	}
	return false
}
