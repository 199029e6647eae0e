package http

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"storefront/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// MaxImagesPerUpload bounds POST /api/v1/uploads/product/multiple.
const MaxImagesPerUpload = 5

// UploadProductImage handles POST /api/v1/uploads/product (form field "image").
func (s *Server) UploadProductImage(c echo.Context) error {
	return s.uploadSingle(c, ports.ProductImagesFolder)
}

// UploadAvatar handles POST /api/v1/uploads/avatar (form field "image").
func (s *Server) UploadAvatar(c echo.Context) error {
	return s.uploadSingle(c, ports.AvatarImagesFolder)
}

// UploadProductImages handles POST /api/v1/uploads/product/multiple
// (form field "images", at most MaxImagesPerUpload files).
func (s *Server) UploadProductImages(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "No files uploaded")
	}
	files := form.File["images"]
	if len(files) == 0 {
		return badRequest(c, "No files uploaded")
	}
	if len(files) > MaxImagesPerUpload {
		return badRequest(c, fmt.Sprintf("At most %d images can be uploaded at once", MaxImagesPerUpload))
	}

	images := make([]Image, 0, len(files))
	for _, file := range files {
		uploaded, uploadErr := s.store(c, ports.ProductImagesFolder, file)
		if uploadErr != nil {
			for _, done := range images {
				_ = s.handlers.Images.Delete(c.Request().Context(), done.PublicID)
			}
			return s.fail(c, uploadErr, "Failed to upload images")
		}
		images = append(images, uploaded)
	}

	return c.JSON(http.StatusCreated, images)
}

// DeleteImage handles DELETE /api/v1/uploads/image/*.
func (s *Server) DeleteImage(c echo.Context) error {
	publicID := c.Param("*")
	if err := s.handlers.Images.Delete(c.Request().Context(), publicID); err != nil {
		return s.fail(c, err, "Failed to delete image")
	}
	return c.NoContent(http.StatusNoContent)
}

// GetImageDetails handles GET /api/v1/uploads/image/*.
func (s *Server) GetImageDetails(c echo.Context) error {
	details, err := s.handlers.Images.Details(c.Request().Context(), c.Param("*"))
	if err != nil {
		return s.fail(c, err, "Failed to retrieve image")
	}

	createdAt := details.CreatedAt
	return c.JSON(http.StatusOK, Image{
		PublicID:  details.PublicID,
		URL:       details.URL,
		Format:    details.Format,
		Width:     details.Width,
		Height:    details.Height,
		Size:      details.Size,
		CreatedAt: &createdAt,
	})
}

func (s *Server) uploadSingle(c echo.Context, folder string) error {
	file, err := c.FormFile("image")
	if err != nil {
		return badRequest(c, "No file uploaded")
	}

	uploaded, err := s.store(c, folder, file)
	if err != nil {
		return s.fail(c, err, "Failed to upload image")
	}
	return c.JSON(http.StatusCreated, uploaded)
}

func (s *Server) store(c echo.Context, folder string, file *multipart.FileHeader) (Image, error) {
	src, err := file.Open()
	if err != nil {
		return Image{}, err
	}
	defer src.Close()

	uploaded, err := s.handlers.Images.Upload(c.Request().Context(), folder, file.Filename, src)
	if err != nil {
		return Image{}, err
	}
	return Image{PublicID: uploaded.PublicID, URL: uploaded.URL}, nil
}
