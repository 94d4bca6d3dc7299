package storage

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// UploadResult carries the serving URL together with the storage path
// (public id) needed to delete or overwrite the asset later.
type UploadResult struct {
	URL  string
	Path string
}

// ImageStorage defines contract for image storage provider (Cloudinary implementation).
type ImageStorage interface {
	// UploadBase64 uploads a base64 data URI into the given logical folder
	// (e.g. "posts", "avatars", "covers"). A non-empty publicID overwrites
	// the existing asset in place.
	UploadBase64(ctx context.Context, data, folder, publicID string) (*UploadResult, error)
	// Delete removes an asset by its storage path.
	Delete(ctx context.Context, path string) error
}

type cloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStorage creates Cloudinary-backed implementation of ImageStorage.
// It expects CLOUDINARY_URL or individual CLOUDINARY_CLOUD_NAME / CLOUDINARY_API_KEY /
// CLOUDINARY_API_SECRET to be configured in environment variables.
func NewCloudinaryStorage() (ImageStorage, error) {
	// cloudinary.New() automatically reads CLOUDINARY_URL from environment if present.
	cld, err := cloudinary.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	// Ensure HTTPS URLs by default.
	cld.Config.URL.Secure = true

	if cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME"); cloudName != "" {
		cld.Config.Cloud.CloudName = cloudName
	}

	folder := os.Getenv("CLOUDINARY_UPLOAD_FOLDER")
	if folder == "" {
		folder = "penablog"
	}

	return &cloudinaryStorage{cld: cld, folder: folder}, nil
}

func (s *cloudinaryStorage) UploadBase64(ctx context.Context, data, folder, publicID string) (*UploadResult, error) {
	if s == nil || s.cld == nil {
		return nil, fmt.Errorf("cloudinary storage is not initialized")
	}
	if !strings.HasPrefix(data, "data:") {
		return nil, fmt.Errorf("expected a base64 data URI")
	}

	params := uploader.UploadParams{
		Folder:    fmt.Sprintf("%s/%s", s.folder, folder),
		Overwrite: api.Bool(publicID != ""),
		Format:    "webp",
	}
	if publicID != "" {
		params.PublicID = publicID
		params.Folder = ""
	} else {
		params.PublicID = fmt.Sprintf("%d", time.Now().UnixNano())
	}

	resp, err := s.cld.Upload.Upload(ctx, data, params)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image to cloudinary: %w", err)
	}

	if resp.SecureURL == "" {
		return nil, fmt.Errorf("cloudinary upload succeeded but secure URL is empty")
	}

	return &UploadResult{URL: resp.SecureURL, Path: resp.PublicID}, nil
}

func (s *cloudinaryStorage) Delete(ctx context.Context, path string) error {
	if s == nil || s.cld == nil {
		return fmt.Errorf("cloudinary storage is not initialized")
	}
	if path == "" {
		return nil
	}

	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: path})
	if err != nil {
		return fmt.Errorf("failed to delete image from cloudinary: %w", err)
	}
	return nil
}
