package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			"versioned delivery url",
			"https://res.cloudinary.com/demo/image/upload/v1712345678/kos_images/abc123.jpg",
			"kos_images/abc123",
		},
		{
			"no version segment",
			"https://res.cloudinary.com/demo/image/upload/kos_images/abc123.png",
			"kos_images/abc123",
		},
		{
			"no folder",
			"https://res.cloudinary.com/demo/image/upload/v1/abc123.webp",
			"abc123",
		},
		{
			"no extension",
			"https://res.cloudinary.com/demo/image/upload/v1/avatars/abc123",
			"avatars/abc123",
		},
		{
			"not a cloudinary url",
			"https://example.com/static/abc123.jpg",
			"",
		},
		{
			"empty",
			"",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publicIDFromURL(tt.url))
		})
	}
}

func TestStorageService_Delete_Unconfigured(t *testing.T) {
	svc := NewStorageService(nil)

	// without cloudinary the delete is a no-op, not an error
	err := svc.Delete(context.Background(), "https://res.cloudinary.com/demo/image/upload/v1/kos_images/abc.jpg")
	assert.NoError(t, err)
}
