package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// allowedImageTypes is the fixed set of accepted upload content types.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
	"image/heic": true,
	"image/heif": true,
}

type PhotoHandler struct {
	photoService *services.PhotoService
	cfg          *config.Config
}

func NewPhotoHandler(photoService *services.PhotoService, cfg *config.Config) *PhotoHandler {
	return &PhotoHandler{photoService: photoService, cfg: cfg}
}

// Upload accepts multipart files under the "photos" field. Type and size
// screening happens here at the boundary; batches over the cap are
// truncated to the first MaxUploadFiles entries.
func (h *PhotoHandler) Upload(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid event id",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid multipart form",
		})
	}

	headers := form.File["photos"]
	if len(headers) > h.cfg.MaxUploadFiles {
		headers = headers[:h.cfg.MaxUploadFiles]
	}

	files := make([]services.UploadFile, 0, len(headers))
	for _, header := range headers {
		contentType := header.Header.Get("Content-Type")
		if !allowedImageTypes[contentType] {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Only image files are allowed.",
			})
		}
		if header.Size > h.cfg.MaxUploadSize {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "File exceeds the maximum upload size.",
			})
		}

		file, err := header.Open()
		if err != nil {
			return internalError(c, "Failed to read uploaded file", err)
		}
		defer file.Close()

		files = append(files, services.UploadFile{
			Name:        header.Filename,
			ContentType: contentType,
			Size:        header.Size,
			Content:     file,
		})
	}

	resp, err := h.photoService.Upload(c.Context(), userID, eventID, files)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotMember):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "You must join this event first.",
			})
		case errors.Is(err, services.ErrEventExpired), errors.Is(err, services.ErrEventNotFound):
			return c.Status(fiber.StatusGone).JSON(dto.ErrorResponse{
				Error: true, Message: "This event has expired.",
			})
		case errors.Is(err, services.ErrNoFiles):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c, "Failed to upload photos", err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *PhotoHandler) List(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid event id",
		})
	}

	photos, err := h.photoService.ListFor(userID, eventID)
	if err != nil {
		if errors.Is(err, services.ErrNotMember) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "You must join this event first.",
			})
		}
		return internalError(c, "Failed to fetch photos", err)
	}

	return c.JSON(dto.PhotoListResponse{Photos: photos})
}

func (h *PhotoHandler) Delete(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	photoID, err := uuid.Parse(c.Params("photoId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid photo id",
		})
	}

	if err := h.photoService.Delete(c.Context(), userID, photoID); err != nil {
		switch {
		case errors.Is(err, services.ErrPhotoNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrNotPhotoOwner):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c, "Failed to delete photo", err)
	}

	return c.JSON(fiber.Map{"message": "Photo deleted successfully."})
}
