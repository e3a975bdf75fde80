package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Role      string    `gorm:"size:20;default:'society'" json:"role"`
	Avatar    string    `gorm:"size:255" json:"avatar"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Kos (listing) & Sub-resources
// ============================================================

// Kos represents the kos table (a boarding-house listing)
type Kos struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"index;not null" json:"user_id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Address        string    `gorm:"type:text;not null" json:"address"`
	Description    string    `gorm:"type:text" json:"description"`
	PricePerMonth  int       `gorm:"not null" json:"price_per_month"`
	Gender         string    `gorm:"size:10;default:'all'" json:"gender"`
	Latitude       *float64  `gorm:"type:decimal(11,8)" json:"latitude"`
	Longitude      *float64  `gorm:"type:decimal(11,8)" json:"longitude"`
	WhatsappNumber string    `gorm:"size:20" json:"whatsapp_number"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	ViewCount      int       `gorm:"default:0" json:"view_count"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Owner          *User           `gorm:"foreignKey:UserID" json:"owner,omitempty"`
	Rooms          []KosRoom       `gorm:"foreignKey:KosID;constraint:OnDelete:CASCADE" json:"rooms,omitempty"`
	Facilities     []KosFacility   `gorm:"foreignKey:KosID;constraint:OnDelete:CASCADE" json:"facilities,omitempty"`
	Images         []KosImage      `gorm:"foreignKey:KosID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Reviews        []Review        `gorm:"foreignKey:KosID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	PaymentMethods []PaymentMethod `gorm:"foreignKey:KosID;constraint:OnDelete:CASCADE" json:"payment_methods,omitempty"`

	// Computed per query, never persisted
	AverageRating float64 `gorm:"-" json:"average_rating"`
	ReviewsCount  int64   `gorm:"-" json:"reviews_count"`
	BookingsCount int64   `gorm:"-" json:"bookings_count"`
	RoomsCount    int64   `gorm:"-" json:"rooms_count,omitempty"`
}

func (Kos) TableName() string {
	return "kos"
}

// KosRoom represents kos_rooms table
type KosRoom struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	KosID       uint      `gorm:"index;not null" json:"kos_id"`
	RoomNumber  string    `gorm:"size:50;not null" json:"room_number"`
	RoomType    string    `gorm:"size:10;default:'single'" json:"room_type"`
	Price       int       `gorm:"default:0" json:"price"`
	IsAvailable bool      `gorm:"default:true" json:"is_available"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (KosRoom) TableName() string {
	return "kos_rooms"
}

// KosFacility represents kos_facilities table
type KosFacility struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	KosID     uint      `gorm:"index;not null" json:"kos_id"`
	Facility  string    `gorm:"size:255;not null" json:"facility"`
	Icon      *string   `gorm:"size:255" json:"icon"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (KosFacility) TableName() string {
	return "kos_facilities"
}

// KosImage represents kos_images table
type KosImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	KosID     uint      `gorm:"index;not null" json:"kos_id"`
	File      string    `gorm:"size:255;not null" json:"file"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (KosImage) TableName() string {
	return "kos_images"
}

// PaymentMethod represents payment_methods table
type PaymentMethod struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	KosID         uint      `gorm:"index;not null" json:"kos_id"`
	BankName      string    `gorm:"size:255;not null" json:"bank_name"`
	AccountNumber string    `gorm:"size:50" json:"account_number"`
	AccountName   string    `gorm:"size:255" json:"account_name"`
	Type          string    `gorm:"size:10;default:'Transfer'" json:"type"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PaymentMethod) TableName() string {
	return "payment_methods"
}

// ============================================================
// Booking
// ============================================================

// Booking represents bookings table
type Booking struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	KosID          uint      `gorm:"index;not null" json:"kos_id"`
	RoomID         uint      `gorm:"index;not null" json:"room_id"`
	UserID         uint      `gorm:"index;not null" json:"user_id"`
	BookingCode    string    `gorm:"uniqueIndex;size:20;not null" json:"booking_code"`
	StartDate      time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate        time.Time `gorm:"type:date;not null" json:"end_date"`
	TotalPrice     int       `gorm:"not null" json:"total_price"`
	Status         string    `gorm:"size:10;default:'pending'" json:"status"`
	RejectedReason *string   `gorm:"type:text" json:"rejected_reason"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Kos  *Kos     `gorm:"foreignKey:KosID" json:"kos,omitempty"`
	Room *KosRoom `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	User *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BookingCodePrefix returns the code prefix for a year, e.g. "KH-2026-"
func BookingCodePrefix(year int) string {
	return fmt.Sprintf("KH-%d-", year)
}

// NextBookingCode derives the next code from the highest existing code of the
// year. Sequence starts at 001 and is zero-padded to 3 digits.
func NextBookingCode(lastCode string, year int) string {
	prefix := BookingCodePrefix(year)
	seq := 1
	if strings.HasPrefix(lastCode, prefix) {
		if n, err := strconv.Atoi(lastCode[len(prefix):]); err == nil {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s%03d", prefix, seq)
}

// ============================================================
// Review & Favorite
// ============================================================

// Review represents reviews table
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	KosID     uint      `gorm:"index;not null" json:"kos_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	Rating    int       `gorm:"default:5" json:"rating"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Kos   *Kos         `gorm:"foreignKey:KosID" json:"kos,omitempty"`
	User  *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Reply *ReviewReply `gorm:"foreignKey:ReviewID" json:"reply,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

// ReviewReply represents review_replies table (one reply per review)
type ReviewReply struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReviewID   uint      `gorm:"uniqueIndex;not null" json:"review_id"`
	OwnerReply string    `gorm:"type:text;not null" json:"owner_reply"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ReviewReply) TableName() string {
	return "review_replies"
}

// Favorite represents favorites table
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorites_user_kos" json:"user_id"`
	KosID     uint      `gorm:"not null;uniqueIndex:idx_favorites_user_kos" json:"kos_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Kos *Kos `gorm:"foreignKey:KosID" json:"kos,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// ============================================================
// Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Kos{},
		&KosRoom{},
		&KosFacility{},
		&KosImage{},
		&PaymentMethod{},
		&Booking{},
		&Review{},
		&ReviewReply{},
		&Favorite{},
	)
}
