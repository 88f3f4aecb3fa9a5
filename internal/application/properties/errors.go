package properties

import "errors"

var (
	ErrPropertyNotFound = errors.New("Property not found")
	ErrMissingField     = errors.New("Missing required field")
	ErrInvalidNumber    = errors.New("Invalid numeric field")
)
