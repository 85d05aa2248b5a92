package company

import (
	"context"
	"errors"
)

var ErrOfficeLocationNotFound = errors.New("office location not found")

type OfficeLocationRepository interface {
	// GetPrimary returns the primary office location.
	GetPrimary(ctx context.Context) (OfficeLocation, error)
}
