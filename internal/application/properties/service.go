package properties

import (
	"context"
	"fmt"

	"lumina-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeaturedLimit caps the landing-page promotion to a small set.
const FeaturedLimit = 3

// RelatedLimit caps the "other properties" block on the detail page.
const RelatedLimit = 3

type Service struct {
	DB *gorm.DB
}

// List returns properties matching the filter, newest first. Zero results is
// an empty slice, not an error.
func (s *Service) List(ctx context.Context, f Filter) ([]domain.Property, error) {
	var props []domain.Property
	q := f.Apply(s.DB.WithContext(ctx).Model(&domain.Property{}))
	if err := q.Order("created_at DESC").Find(&props).Error; err != nil {
		return nil, fmt.Errorf("Failed to fetch properties: %v", err)
	}
	return props, nil
}

// Featured returns up to FeaturedLimit featured properties for the landing page.
func (s *Service) Featured(ctx context.Context) ([]domain.Property, error) {
	var props []domain.Property
	if err := s.DB.WithContext(ctx).Where("is_featured = ?", true).Order("created_at DESC").Limit(FeaturedLimit).Find(&props).Error; err != nil {
		return nil, fmt.Errorf("Failed to fetch featured properties: %v", err)
	}
	return props, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	var p domain.Property
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Related returns up to RelatedLimit properties other than the given one.
func (s *Service) Related(ctx context.Context, id uuid.UUID) ([]domain.Property, error) {
	var props []domain.Property
	if err := s.DB.WithContext(ctx).Where("id <> ?", id).Limit(RelatedLimit).Find(&props).Error; err != nil {
		return nil, err
	}
	return props, nil
}

func (s *Service) Create(ctx context.Context, p *domain.Property) error {
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("Failed to create property: %v", err)
	}
	return nil
}

// Update replaces the full record by id: image_urls and specs are overwritten
// wholesale. ID and created_at are immutable.
func (s *Service) Update(ctx context.Context, id uuid.UUID, p *domain.Property) error {
	var existing domain.Property
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&existing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrPropertyNotFound
		}
		return err
	}
	updates := map[string]interface{}{
		"title":        p.Title,
		"description":  p.Description,
		"neighborhood": p.Neighborhood,
		"price":        p.Price,
		"image_urls":   p.ImageURLs,
		"specs":        p.Specs,
		"is_featured":  p.IsFeatured,
	}
	if err := s.DB.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
		return fmt.Errorf("Failed to update property: %v", err)
	}
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	return nil
}

// Delete hard-deletes the record. Stored images are not removed from object
// storage (same accepted gap as a failed submit's orphans).
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.Property{})
	if res.Error != nil {
		return fmt.Errorf("Failed to delete property: %v", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

// Stats is the admin dashboard overview.
type Stats struct {
	TotalProperties int64   `json:"total_properties"`
	TotalValue      float64 `json:"total_value"`
	FeaturedCount   int64   `json:"featured_count"`
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	db := s.DB.WithContext(ctx).Model(&domain.Property{})
	if err := db.Count(&st.TotalProperties).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&domain.Property{}).Select("COALESCE(SUM(price), 0)").Scan(&st.TotalValue).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&domain.Property{}).Where("is_featured = ?", true).Count(&st.FeaturedCount).Error; err != nil {
		return nil, err
	}
	return &st, nil
}
