package out

import (
	"context"

	"mapty/internal/modules/session/domain"
)

type ClickHandler func(lat, lng float64)

// Locator resolves the user's current position or fails with an error
// wrapping ErrLocationUnavailable.
type Locator interface {
	RequestCurrentLocation(ctx context.Context) (lat, lng float64, err error)
}

type MapSurface interface {
	Locator
	// CenterOn is a no-op for coordinates outside the valid range.
	CenterOn(lat, lng float64, zoom int)
	SubscribeToClick(handler ClickHandler)
	PlaceMarker(lat, lng float64, marker domain.Marker) domain.MarkerHandle
}

// Form is the workout entry form as the controller drives it.
type Form interface {
	Show()
	Hide()
	Focus()
	Clear()
	ShowField(activityType domain.ActivityType)
}

// Notifier surfaces messages to the user.
type Notifier interface {
	Alert(message string)
	Notify(message string)
}
