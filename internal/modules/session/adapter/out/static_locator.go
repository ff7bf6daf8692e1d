package out

import (
	"context"
	"fmt"

	apperrors "mapty/internal/platform/errors"
)

// StaticLocator reports a configured home position as the current location.
// Without one, every request fails.
type StaticLocator struct {
	lat   float64
	lng   float64
	known bool
}

func NewStaticLocator(lat, lng float64) StaticLocator {
	return StaticLocator{lat: lat, lng: lng, known: true}
}

func NewUnknownLocator() StaticLocator {
	return StaticLocator{}
}

func (l StaticLocator) RequestCurrentLocation(ctx context.Context) (float64, float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, fmt.Errorf("%w: %w", apperrors.ErrLocationUnavailable, err)
	}
	if !l.known {
		return 0, 0, fmt.Errorf("%w: no home location configured", apperrors.ErrLocationUnavailable)
	}
	return l.lat, l.lng, nil
}
