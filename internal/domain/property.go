package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PropertySpecs is the structured sub-object stored in the specs JSON column.
type PropertySpecs struct {
	Beds     int      `json:"beds"`
	Baths    int      `json:"baths"`
	AreaM2   float64  `json:"area_m2"`
	Features []string `json:"features"`
}

// Property is one listing of the brokerage portfolio.
//
// ImageURLs order is display order; the first entry is the cover image. The
// array may be empty, in which case there is no cover (clients render a
// placeholder).
type Property struct {
	ID           uuid.UUID                            `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title        string                               `gorm:"column:title;not null" json:"title"`
	Description  string                               `gorm:"column:description" json:"description"`
	Neighborhood string                               `gorm:"column:neighborhood" json:"neighborhood"`
	Price        float64                              `gorm:"column:price;type:decimal(14,2);not null" json:"price"`
	ImageURLs    datatypes.JSONSlice[string]          `gorm:"column:image_urls" json:"image_urls"`
	Specs        datatypes.JSONType[PropertySpecs]    `gorm:"column:specs" json:"specs"`
	IsFeatured   bool                                 `gorm:"column:is_featured;default:false" json:"is_featured"`
	CreatedAt    time.Time                            `json:"created_at"`
	UpdatedAt    time.Time                            `json:"updated_at"`
}

func (Property) TableName() string {
	return "properties"
}

// BeforeCreate sets a UUID if not set (for DBs without gen_random_uuid).
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// CoverURL returns the cover image URL, or "" when the gallery is empty.
func (p *Property) CoverURL() string {
	if len(p.ImageURLs) == 0 {
		return ""
	}
	return p.ImageURLs[0]
}
