package admin

import (
	"errors"
	"io"
	"mime/multipart"

	propsvc "lumina-backend/internal/application/properties"
	"lumina-backend/internal/infrastructure/storage"
	"lumina-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Handlers serves the admin console routes. All of them sit behind the
// session guard; none run without a logged-in admin.
type Handlers struct {
	Service *propsvc.Service
	Storage storage.Client
	Bucket  string
}

// ListProperties GET /api/v1/admin/properties — full portfolio, newest first.
func (h *Handlers) ListProperties(c *fiber.Ctx) error {
	props, err := h.Service.List(c.Context(), propsvc.Filter{})
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Properties fetched successfully", props, nil)
}

// Stats GET /api/v1/admin/stats — dashboard overview cards.
func (h *Handlers) Stats(c *fiber.Ctx) error {
	st, err := h.Service.Stats(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Stats fetched successfully", st, nil)
}

// CreateProperty POST /api/v1/admin/properties — multipart form: text fields
// plus "images" files uploaded in selection order.
func (h *Handlers) CreateProperty(c *fiber.Ctx) error {
	form, err := h.formFromRequest(c)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	prop, err := form.Submit(c.Context())
	if err != nil {
		return h.submitError(c, err)
	}
	return response.SuccessCreated(c, "Property created successfully", prop, nil)
}

// UpdateProperty PUT /api/v1/admin/properties/:id — full-record update. The
// "existing_images" values carry the kept stored URLs in their final order;
// new "images" files are appended after them.
func (h *Handlers) UpdateProperty(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid property id", fiber.StatusBadRequest, nil)
	}
	form, err := h.formFromRequest(c)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	form.PropertyID = id
	prop, err := form.Submit(c.Context())
	if err != nil {
		return h.submitError(c, err)
	}
	return response.Success(c, "Property updated successfully", prop, nil)
}

// DeleteProperty DELETE /api/v1/admin/properties/:id — hard delete.
func (h *Handlers) DeleteProperty(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid property id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		if err == propsvc.ErrPropertyNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Property deleted successfully", nil, nil)
}

// formFromRequest builds the property form from a multipart request. Files
// are read fully here so Submit owns only the upload/persist sequencing.
func (h *Handlers) formFromRequest(c *fiber.Ctx) (*propsvc.Form, error) {
	form := &propsvc.Form{
		Fields: propsvc.FormFields{
			Title:        c.FormValue("title"),
			Description:  c.FormValue("description"),
			Neighborhood: c.FormValue("neighborhood"),
			Price:        c.FormValue("price"),
			Beds:         c.FormValue("beds"),
			Baths:        c.FormValue("baths"),
			AreaM2:       c.FormValue("area_m2"),
			Features:     c.FormValue("features"),
			IsFeatured:   c.FormValue("is_featured") == "true",
		},
		Storage: h.Storage,
		Bucket:  h.Bucket,
		Service: h.Service,
	}

	mf, err := c.MultipartForm()
	if err != nil {
		// No multipart body: a form without images is still valid.
		return form, nil
	}
	form.ExistingImages = append(form.ExistingImages, mf.Value["existing_images"]...)
	for _, fh := range mf.File["images"] {
		file, err := readUpload(fh)
		if err != nil {
			return nil, err
		}
		form.AddImages(file)
	}
	return form, nil
}

func readUpload(fh *multipart.FileHeader) (propsvc.FileInput, error) {
	f, err := fh.Open()
	if err != nil {
		return propsvc.FileInput{}, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return propsvc.FileInput{}, err
	}
	return propsvc.FileInput{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// submitError maps form submit failures: field problems are 400, a missing
// record is 404, everything else surfaces the underlying message verbatim.
func (h *Handlers) submitError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, propsvc.ErrMissingField), errors.Is(err, propsvc.ErrInvalidNumber):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case errors.Is(err, propsvc.ErrPropertyNotFound):
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	default:
		log.Error().Err(err).Msg("admin: property submit failed")
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
}
