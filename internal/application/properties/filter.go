package properties

import (
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Filter is the ephemeral browse query. Absent fields impose no constraint
// and are never encoded as empty strings.
type Filter struct {
	Neighborhood string
	MaxPrice     *float64
	MinBeds      *int
}

// ParseFilter reads the filter from URL query values. Empty and malformed
// values are treated as absent.
func ParseFilter(values url.Values) Filter {
	f := Filter{Neighborhood: strings.TrimSpace(values.Get("neighborhood"))}
	if s := strings.TrimSpace(values.Get("maxPrice")); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			f.MaxPrice = &v
		}
	}
	if s := strings.TrimSpace(values.Get("minBeds")); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			f.MinBeds = &v
		}
	}
	return f
}

// Encode builds query values containing only the present fields, so that
// ParseFilter(f.Encode()) == f for any filter.
func (f Filter) Encode() url.Values {
	values := url.Values{}
	if f.Neighborhood != "" {
		values.Set("neighborhood", f.Neighborhood)
	}
	if f.MaxPrice != nil {
		values.Set("maxPrice", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	if f.MinBeds != nil {
		values.Set("minBeds", strconv.Itoa(*f.MinBeds))
	}
	return values
}

// IsZero reports whether no filter field is present.
func (f Filter) IsZero() bool {
	return f.Neighborhood == "" && f.MaxPrice == nil && f.MinBeds == nil
}

// Apply ANDs all present constraints onto the query: case-insensitive
// substring on neighborhood, price <= maxPrice, specs.beds >= minBeds. The
// beds comparison extracts from the specs JSON column per dialect so the
// sqlite test backend exercises the same path as Postgres.
func (f Filter) Apply(db *gorm.DB) *gorm.DB {
	q := db
	postgres := db.Dialector.Name() == "postgres"
	if f.Neighborhood != "" {
		if postgres {
			q = q.Where("neighborhood ILIKE ?", "%"+f.Neighborhood+"%")
		} else {
			q = q.Where("LOWER(neighborhood) LIKE ?", "%"+strings.ToLower(f.Neighborhood)+"%")
		}
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.MinBeds != nil {
		if postgres {
			q = q.Where("(specs->>'beds')::int >= ?", *f.MinBeds)
		} else {
			q = q.Where("CAST(json_extract(specs, '$.beds') AS INTEGER) >= ?", *f.MinBeds)
		}
	}
	return q
}
