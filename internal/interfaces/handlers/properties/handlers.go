package properties

import (
	"net/url"

	"lumina-backend/internal/application/gallery"
	propsvc "lumina-backend/internal/application/properties"
	"lumina-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers serves the public browse/detail routes.
type Handlers struct {
	Service *propsvc.Service
}

// List GET /api/v1/properties — filtered browse. All present filters are
// ANDed; zero results is a 200 with an empty list.
func (h *Handlers) List(c *fiber.Ctx) error {
	f := propsvc.ParseFilter(url.Values{
		"neighborhood": {c.Query("neighborhood")},
		"maxPrice":     {c.Query("maxPrice")},
		"minBeds":      {c.Query("minBeds")},
	})
	props, err := h.Service.List(c.Context(), f)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Properties fetched successfully", props, fiber.Map{
		"count":   len(props),
		"filters": f.Encode().Encode(),
	})
}

// Featured GET /api/v1/properties/featured — landing page promotion, capped.
func (h *Handlers) Featured(c *fiber.Ctx) error {
	props, err := h.Service.Featured(c.Context())
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Featured properties fetched", props, nil)
}

// Get GET /api/v1/properties/:id — detail plus up to 3 related properties.
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid property id", fiber.StatusBadRequest, nil)
	}
	prop, err := h.Service.Get(c.Context(), id)
	if err != nil {
		if err == propsvc.ErrPropertyNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	related, err := h.Service.Related(c.Context(), id)
	if err != nil {
		related = nil
	}
	return response.Success(c, "Property fetched successfully", fiber.Map{
		"property": prop,
		"related":  related,
	}, nil)
}

// Gallery GET /api/v1/properties/:id/gallery?index=n — lightbox navigation:
// the current image plus the cyclically wrapped prev/next cursor positions.
func (h *Handlers) Gallery(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid property id", fiber.StatusBadRequest, nil)
	}
	prop, err := h.Service.Get(c.Context(), id)
	if err != nil {
		if err == propsvc.ErrPropertyNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}

	index := c.QueryInt("index", 0)
	lb := gallery.New(len(prop.ImageURLs))
	if err := lb.Open(index); err != nil {
		return response.Error(c, "Image index out of range", fiber.StatusBadRequest, nil)
	}
	lb.Next()
	next, _ := lb.Index()
	lb.Prev()
	lb.Prev()
	prev, _ := lb.Index()

	return response.Success(c, "Gallery image fetched", fiber.Map{
		"index": index,
		"url":   prop.ImageURLs[index],
		"next":  next,
		"prev":  prev,
		"count": len(prop.ImageURLs),
	}, nil)
}
