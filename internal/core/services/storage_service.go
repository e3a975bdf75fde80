package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ErrStorageDisabled is returned when cloudinary is not configured
var ErrStorageDisabled = errors.New("image storage is not configured")

// StorageService stores binary uploads in cloudinary
type StorageService struct {
	cld *cloudinary.Cloudinary
}

// NewStorageService creates a new storage service
func NewStorageService(cld *cloudinary.Cloudinary) *StorageService {
	return &StorageService{cld: cld}
}

// UploadKosImage uploads a kos image and returns its URL
func (s *StorageService) UploadKosImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	return s.upload(ctx, file, "kos_images")
}

// UploadAvatar uploads a user avatar and returns its URL
func (s *StorageService) UploadAvatar(ctx context.Context, file *multipart.FileHeader) (string, error) {
	return s.upload(ctx, file, "avatars")
}

func (s *StorageService) upload(ctx context.Context, file *multipart.FileHeader, folder string) (string, error) {
	if s.cld == nil {
		return "", ErrStorageDisabled
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	resp, err := s.cld.Upload.Upload(ctx, src, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}

// Delete removes a stored image by its delivery URL. Best effort; callers may
// log the error since the database record is the source of truth.
func (s *StorageService) Delete(ctx context.Context, fileURL string) error {
	publicID := publicIDFromURL(fileURL)
	if s.cld == nil || publicID == "" {
		return nil
	}
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// publicIDFromURL extracts the public ID (folder/name, no version or
// extension) from a cloudinary delivery URL
func publicIDFromURL(fileURL string) string {
	_, after, found := strings.Cut(fileURL, "/upload/")
	if !found {
		return ""
	}
	if version, rest, ok := strings.Cut(after, "/"); ok && strings.HasPrefix(version, "v") {
		if _, err := strconv.Atoi(version[1:]); err == nil {
			after = rest
		}
	}
	if i := strings.LastIndex(after, "."); i > strings.LastIndex(after, "/") {
		after = after[:i]
	}
	return after
}
