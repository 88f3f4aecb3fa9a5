package properties

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	propsvc "lumina-backend/internal/application/properties"
	"lumina-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupPropertiesTest(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Property{}))

	h := &Handlers{Service: &propsvc.Service{DB: db}}
	app := fiber.New()
	app.Get("/properties", h.List)
	app.Get("/properties/featured", h.Featured)
	app.Get("/properties/:id", h.Get)
	app.Get("/properties/:id/gallery", h.Gallery)
	return app, db
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func TestList_EmptyDB(t *testing.T) {
	app, _ := setupPropertiesTest(t)

	req := httptest.NewRequest("GET", "/properties", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.Equal(t, "success", result["status"])
	assert.Empty(t, result["data"])
}

func TestList_FilteredByQueryString(t *testing.T) {
	app, db := setupPropertiesTest(t)

	require.NoError(t, db.Create(&domain.Property{
		Title:        "Vista Mar",
		Neighborhood: "Pecado",
		Price:        400000,
		Specs:        datatypes.NewJSONType(domain.PropertySpecs{Beds: 3}),
	}).Error)
	require.NoError(t, db.Create(&domain.Property{
		Title:        "Centro",
		Neighborhood: "Centro",
		Price:        900000,
		Specs:        datatypes.NewJSONType(domain.PropertySpecs{Beds: 1}),
	}).Error)

	req := httptest.NewRequest("GET", "/properties?neighborhood=pecado&maxPrice=500000&minBeds=2", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	result := decodeBody(t, resp)
	data := result["data"].([]interface{})
	require.Len(t, data, 1)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "Vista Mar", first["title"])
}

func TestGet_InvalidUUID(t *testing.T) {
	app, _ := setupPropertiesTest(t)

	req := httptest.NewRequest("GET", "/properties/not-a-uuid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestGet_NotFound(t *testing.T) {
	app, _ := setupPropertiesTest(t)

	req := httptest.NewRequest("GET", "/properties/550e8400-e29b-41d4-a716-446655440000", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestGet_IncludesRelated(t *testing.T) {
	app, db := setupPropertiesTest(t)

	self := &domain.Property{Title: "Self", Price: 1}
	require.NoError(t, db.Create(self).Error)
	require.NoError(t, db.Create(&domain.Property{Title: "Other", Price: 1}).Error)

	req := httptest.NewRequest("GET", "/properties/"+self.ID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	result := decodeBody(t, resp)
	data := result["data"].(map[string]interface{})
	prop := data["property"].(map[string]interface{})
	assert.Equal(t, "Self", prop["title"])
	related := data["related"].([]interface{})
	require.Len(t, related, 1)
}

func TestGallery_WrapsCyclically(t *testing.T) {
	app, db := setupPropertiesTest(t)

	p := &domain.Property{
		Title:     "Gallery",
		Price:     1,
		ImageURLs: datatypes.NewJSONSlice([]string{"u0", "u1", "u2"}),
	}
	require.NoError(t, db.Create(p).Error)

	// last image: next wraps to 0
	req := httptest.NewRequest("GET", fmt.Sprintf("/properties/%s/gallery?index=2", p.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, "u2", data["url"])
	assert.Equal(t, float64(0), data["next"])
	assert.Equal(t, float64(1), data["prev"])

	// first image: prev wraps to 2
	req = httptest.NewRequest("GET", fmt.Sprintf("/properties/%s/gallery?index=0", p.ID), nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	data = decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["next"])
	assert.Equal(t, float64(2), data["prev"])
}

func TestGallery_IndexOutOfRange(t *testing.T) {
	app, db := setupPropertiesTest(t)

	p := &domain.Property{Title: "NoImages", Price: 1}
	require.NoError(t, db.Create(p).Error)

	req := httptest.NewRequest("GET", fmt.Sprintf("/properties/%s/gallery", p.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
