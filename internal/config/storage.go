package config

import (
	"log"

	"github.com/cloudinary/cloudinary-go/v2"
)

// Cloudinary is the global cloudinary client. Nil when uploads are disabled.
var Cloudinary *cloudinary.Cloudinary

// ConnectCloudinary initializes the cloudinary client for image storage.
// Returns nil without error when credentials are not set.
func ConnectCloudinary(cfg *Config) (*cloudinary.Cloudinary, error) {
	if cfg.Cloudinary.CloudName == "" {
		log.Println("⚠️ Cloudinary not configured, image uploads disabled")
		return nil, nil
	}

	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.APIKey,
		cfg.Cloudinary.APISecret,
	)
	if err != nil {
		return nil, err
	}

	Cloudinary = cld
	log.Printf("✅ Cloudinary connected successfully [%s]", cfg.Cloudinary.CloudName)
	return cld, nil
}
