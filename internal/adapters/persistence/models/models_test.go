package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextBookingCode(t *testing.T) {
	tests := []struct {
		name     string
		lastCode string
		year     int
		want     string
	}{
		{"first booking of the year", "", 2026, "KH-2026-001"},
		{"increments the sequence", "KH-2026-007", 2026, "KH-2026-008"},
		{"rolls into three digits", "KH-2026-099", 2026, "KH-2026-100"},
		{"keeps growing past padding", "KH-2026-999", 2026, "KH-2026-1000"},
		{"last year's code restarts the sequence", "KH-2025-042", 2026, "KH-2026-001"},
		{"malformed sequence restarts", "KH-2026-abc", 2026, "KH-2026-001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextBookingCode(tt.lastCode, tt.year))
		})
	}
}

func TestRefreshTokenState(t *testing.T) {
	now := time.Now()

	active := &RefreshToken{ExpiresAt: now.Add(time.Hour)}
	assert.False(t, active.IsRevoked())
	assert.False(t, active.IsExpired())

	revoked := &RefreshToken{ExpiresAt: now.Add(time.Hour), RevokedAt: &now}
	assert.True(t, revoked.IsRevoked())

	expired := &RefreshToken{ExpiresAt: now.Add(-time.Minute)}
	assert.True(t, expired.IsExpired())
}

func TestUserToResponse_OmitsPassword(t *testing.T) {
	user := &User{
		ID:       1,
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "$2a$12$hash",
		Role:     "owner",
	}

	resp := user.ToResponse()
	assert.Equal(t, user.Email, resp.Email)
	assert.Equal(t, user.Role, resp.Role)
}
