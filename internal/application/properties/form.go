package properties

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"lumina-backend/internal/domain"
	"lumina-backend/internal/infrastructure/storage"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FileInput is one pending image selected for upload.
type FileInput struct {
	Name        string
	ContentType string
	Data        []byte
}

// FormFields holds the raw form values. Numeric fields stay strings until
// Submit so the form can round-trip unmodified user input.
type FormFields struct {
	Title        string
	Description  string
	Neighborhood string
	Price        string
	Beds         string
	Baths        string
	AreaM2       string
	Features     string
	IsFeatured   bool
}

// Form is the admin create/edit controller. PropertyID set means edit mode:
// ExistingImages holds the stored URLs still attached to the record, and the
// final gallery is existing (post-removal, order kept) followed by new
// uploads in selection order.
type Form struct {
	Fields         FormFields
	PropertyID     uuid.UUID
	ExistingImages []string
	NewImages      []FileInput

	Storage storage.Client
	Bucket  string
	Service *Service
}

// AddImages appends files to the pending upload list in selection order.
// No type or size validation is done here; the file picker's accept filter is
// the only gate, as in the original admin form.
func (f *Form) AddImages(files ...FileInput) {
	f.NewImages = append(f.NewImages, files...)
}

// RemoveExisting removes the stored image at i. Out of range is a no-op.
func (f *Form) RemoveExisting(i int) {
	if i < 0 || i >= len(f.ExistingImages) {
		return
	}
	f.ExistingImages = append(f.ExistingImages[:i], f.ExistingImages[i+1:]...)
}

// RemoveNew removes the pending image at i. Out of range is a no-op.
func (f *Form) RemoveNew(i int) {
	if i < 0 || i >= len(f.NewImages) {
		return
	}
	f.NewImages = append(f.NewImages[:i], f.NewImages[i+1:]...)
}

// Submit uploads pending images and persists the assembled record as one
// user-visible action.
//
// Uploads run strictly sequentially so the stored order matches selection
// order. The first failure aborts the whole submit with no record mutation;
// objects already sent to storage are not rolled back and remain as orphans.
// Form state is left intact on error so the caller can retry.
func (f *Form) Submit(ctx context.Context) (*domain.Property, error) {
	record, err := f.buildRecord()
	if err != nil {
		return nil, err
	}

	uploadedURLs := make([]string, 0, len(f.NewImages))
	for _, img := range f.NewImages {
		key := uuid.New().String() + filepath.Ext(img.Name)
		if err := f.Storage.Upload(ctx, f.Bucket, key, img.ContentType, bytes.NewReader(img.Data)); err != nil {
			return nil, fmt.Errorf("Failed to upload image %q: %v", img.Name, err)
		}
		uploadedURLs = append(uploadedURLs, f.Storage.PublicURL(f.Bucket, key))
	}

	finalURLs := append(append([]string{}, f.ExistingImages...), uploadedURLs...)
	record.ImageURLs = datatypes.NewJSONSlice(finalURLs)

	if f.PropertyID != uuid.Nil {
		if err := f.Service.Update(ctx, f.PropertyID, record); err != nil {
			return nil, err
		}
		return record, nil
	}
	if err := f.Service.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (f *Form) buildRecord() (*domain.Property, error) {
	if strings.TrimSpace(f.Fields.Title) == "" {
		return nil, fmt.Errorf("%w: title", ErrMissingField)
	}
	price, err := parseDecimal("price", f.Fields.Price)
	if err != nil {
		return nil, err
	}
	beds, err := parseInteger("beds", f.Fields.Beds)
	if err != nil {
		return nil, err
	}
	baths, err := parseInteger("baths", f.Fields.Baths)
	if err != nil {
		return nil, err
	}
	area, err := parseDecimal("area_m2", f.Fields.AreaM2)
	if err != nil {
		return nil, err
	}

	return &domain.Property{
		Title:        f.Fields.Title,
		Description:  f.Fields.Description,
		Neighborhood: f.Fields.Neighborhood,
		Price:        price,
		IsFeatured:   f.Fields.IsFeatured,
		Specs: datatypes.NewJSONType(domain.PropertySpecs{
			Beds:     beds,
			Baths:    baths,
			AreaM2:   area,
			Features: ParseFeatures(f.Fields.Features),
		}),
	}, nil
}

// ParseFeatures splits a comma-separated tag string: segments are trimmed,
// empty segments dropped, duplicates kept, order preserved.
func ParseFeatures(s string) []string {
	out := []string{}
	for _, seg := range strings.Split(s, ",") {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

func parseDecimal(field, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidNumber, field)
	}
	return v, nil
}

func parseInteger(field, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidNumber, field)
	}
	return v, nil
}
