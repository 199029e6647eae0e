// Package localstorage keeps uploaded images on the local filesystem. It backs
// the upload endpoints in development and single-node deployments; the files
// are served back under BaseURL.
package localstorage

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
)

var allowedFormats = map[string]string{
	".jpg":  "jpg",
	".jpeg": "jpg",
	".png":  "png",
	".webp": "webp",
}

var (
	// ErrUnsupportedFormat is returned for files other than jpg, jpeg, png and webp.
	ErrUnsupportedFormat = errs.NewValueIsInvalidErrorWithCause(
		"image",
		errors.New("only jpg, jpeg, png and webp files are allowed"),
	)
)

var _ ports.ImageStorage = (*ImageStorage)(nil)

// ImageStorage stores images as <root>/<folder>/<uuid><ext>. The public id is
// the slash separated path relative to root.
type ImageStorage struct {
	root    string
	baseURL string
}

// NewImageStorage creates the root directory if needed.
func NewImageStorage(root, baseURL string) (*ImageStorage, error) {
	if root == "" {
		return nil, errs.NewValueIsRequiredError("root")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &ImageStorage{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Upload implements ports.ImageStorage.
func (s *ImageStorage) Upload(ctx context.Context, folder, filename string, content io.Reader) (ports.UploadedImage, error) {
	if err := ctx.Err(); err != nil {
		return ports.UploadedImage{}, err
	}
	if folder == "" || strings.ContainsAny(folder, `/\.`) {
		return ports.UploadedImage{}, errs.NewValueIsInvalidError("folder")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedFormats[ext]; !ok {
		return ports.UploadedImage{}, ErrUnsupportedFormat
	}

	publicID := path.Join(folder, uuid.NewString()+ext)
	target := s.filePath(publicID)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return ports.UploadedImage{}, fmt.Errorf("failed to create folder %s: %w", folder, err)
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return ports.UploadedImage{}, fmt.Errorf("failed to create image %s: %w", publicID, err)
	}
	if _, err = io.Copy(f, content); err != nil {
		_ = f.Close()
		_ = os.Remove(target)
		return ports.UploadedImage{}, fmt.Errorf("failed to write image %s: %w", publicID, err)
	}
	if err = f.Close(); err != nil {
		_ = os.Remove(target)
		return ports.UploadedImage{}, fmt.Errorf("failed to write image %s: %w", publicID, err)
	}

	return ports.UploadedImage{PublicID: publicID, URL: s.url(publicID)}, nil
}

// Delete implements ports.ImageStorage.
func (s *ImageStorage) Delete(ctx context.Context, publicID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validatePublicID(publicID); err != nil {
		return err
	}

	err := os.Remove(s.filePath(publicID))
	if errors.Is(err, fs.ErrNotExist) {
		return errs.NewObjectNotFoundErrorWithCause("image", publicID, err)
	}
	return err
}

// Details implements ports.ImageStorage. Dimensions are reported for jpg and
// png; webp images report zero width and height.
func (s *ImageStorage) Details(ctx context.Context, publicID string) (ports.ImageDetails, error) {
	if err := ctx.Err(); err != nil {
		return ports.ImageDetails{}, err
	}
	if err := validatePublicID(publicID); err != nil {
		return ports.ImageDetails{}, err
	}

	target := s.filePath(publicID)
	info, err := os.Stat(target)
	if errors.Is(err, fs.ErrNotExist) {
		return ports.ImageDetails{}, errs.NewObjectNotFoundErrorWithCause("image", publicID, err)
	}
	if err != nil {
		return ports.ImageDetails{}, err
	}

	details := ports.ImageDetails{
		PublicID:  publicID,
		URL:       s.url(publicID),
		Format:    allowedFormats[strings.ToLower(path.Ext(publicID))],
		Size:      info.Size(),
		CreatedAt: info.ModTime().UTC(),
	}

	if details.Format == "jpg" || details.Format == "png" {
		f, openErr := os.Open(target)
		if openErr != nil {
			return ports.ImageDetails{}, openErr
		}
		defer f.Close()
		if cfg, _, decodeErr := image.DecodeConfig(f); decodeErr == nil {
			details.Width = cfg.Width
			details.Height = cfg.Height
		}
	}

	return details, nil
}

func (s *ImageStorage) filePath(publicID string) string {
	return filepath.Join(s.root, filepath.FromSlash(publicID))
}

func (s *ImageStorage) url(publicID string) string {
	return s.baseURL + "/" + publicID
}

func validatePublicID(publicID string) error {
	if publicID == "" {
		return errs.NewValueIsRequiredError("publicId")
	}
	folder, name, ok := strings.Cut(publicID, "/")
	if !ok || folder == "" || name == "" || strings.Contains(name, "/") ||
		strings.Contains(publicID, "..") || strings.Contains(publicID, `\`) {
		return errs.NewValueIsInvalidError("publicId")
	}
	if _, allowed := allowedFormats[strings.ToLower(path.Ext(name))]; !allowed {
		return errs.NewValueIsInvalidError("publicId")
	}
	return nil
}
