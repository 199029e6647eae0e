package ports

import (
	"context"
	"io"
	"time"
)

// Image folders used by the upload endpoints.
const (
	ProductImagesFolder = "products"
	AvatarImagesFolder  = "avatars"
)

// UploadedImage describes an image accepted by the storage backend.
type UploadedImage struct {
	PublicID string
	URL      string
}

// ImageDetails is the metadata the storage backend keeps about an image.
type ImageDetails struct {
	PublicID  string
	URL       string
	Format    string
	Width     int
	Height    int
	Size      int64
	CreatedAt time.Time
}

// ImageStorage is the boundary to the external image host used for product
// pictures and avatars. Only the surface is owned here; the provider protocol
// belongs to the adapter.
type ImageStorage interface {
	// Upload stores the image under folder and returns its public id and URL.
	// Only jpg, jpeg, png and webp files are accepted.
	Upload(ctx context.Context, folder, filename string, content io.Reader) (UploadedImage, error)

	// Delete removes an image. Deleting an unknown image returns an
	// *errs.ObjectNotFoundError.
	Delete(ctx context.Context, publicID string) error

	// Details returns metadata about a stored image or an *errs.ObjectNotFoundError.
	Details(ctx context.Context, publicID string) (ImageDetails, error)
}
