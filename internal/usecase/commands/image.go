package commands

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"

	_ "golang.org/x/image/webp"
)

const maxImageSide = 4000

// ImageStore persists uploaded files and returns their public URL.
type ImageStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

type ImageUpload struct {
	Body        io.Reader
	Size        int64
	ContentType string
}

type imageRule struct {
	extensions map[string]string
	typeErr    error
}

var (
	vehicleImages = imageRule{
		extensions: map[string]string{"image/jpeg": ".jpg", "image/png": ".png"},
		typeErr:    ErrImageType,
	}
	profileImages = imageRule{
		extensions: map[string]string{"image/jpeg": ".jpg", "image/png": ".png", "image/webp": ".webp"},
		typeErr:    ErrProfileImageType,
	}
)

// check validates size, type and pixel dimensions. The returned reader
// replays the bytes consumed while reading the header.
func (r imageRule) check(img ImageUpload, maxBytes int64) (string, io.Reader, error) {
	if img.Body == nil || img.Size == 0 {
		return "", nil, ErrImageRequired
	}
	if maxBytes > 0 && img.Size > maxBytes {
		return "", nil, ErrImageTooLarge
	}
	ext, ok := r.extensions[img.ContentType]
	if !ok {
		return "", nil, r.typeErr
	}

	var head bytes.Buffer
	cfg, format, err := image.DecodeConfig(io.TeeReader(img.Body, &head))
	if err != nil {
		slog.Debug("image header unreadable", "content_type", img.ContentType, "error", err)
		return "", nil, ErrImageInvalid
	}
	if "image/"+format != img.ContentType {
		return "", nil, r.typeErr
	}
	if cfg.Width > maxImageSide || cfg.Height > maxImageSide {
		return "", nil, ErrImageDimensions
	}
	return ext, io.MultiReader(&head, img.Body), nil
}
