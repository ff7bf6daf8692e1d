package out

import (
	"context"
	"strconv"
	"sync"

	"mapty/internal/modules/session/domain"
	sessiondto "mapty/internal/modules/session/dto"
	sessionout "mapty/internal/modules/session/port/out"
	"mapty/internal/platform/config"
)

// TerminalSurface holds the map state a text renderer draws: the viewport
// center and zoom, the placed pins, and the click subscription. Location
// requests are delegated to the wrapped locator.
type TerminalSurface struct {
	locator sessionout.Locator

	mu       sync.Mutex
	centered bool
	lat      float64
	lng      float64
	zoom     int
	handler  sessionout.ClickHandler
	pins     []sessiondto.PinOutput
}

func NewTerminalSurface(locator sessionout.Locator) *TerminalSurface {
	return &TerminalSurface{locator: locator}
}

func (s *TerminalSurface) RequestCurrentLocation(ctx context.Context) (float64, float64, error) {
	return s.locator.RequestCurrentLocation(ctx)
}

func (s *TerminalSurface) CenterOn(lat, lng float64, zoom int) {
	if !(domain.Point{Lat: lat, Lng: lng}).Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lat, s.lng = lat, lng
	s.zoom = clampZoom(zoom)
	s.centered = true
}

func (s *TerminalSurface) SubscribeToClick(handler sessionout.ClickHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = handler
}

func (s *TerminalSurface) PlaceMarker(lat, lng float64, marker domain.Marker) domain.MarkerHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := "pin-" + strconv.Itoa(len(s.pins)+1)
	s.pins = append(s.pins, sessiondto.PinOutput{
		ID:    id,
		Lat:   lat,
		Lng:   lng,
		Kind:  marker.Kind,
		Title: marker.Title,
		Label: marker.Label,
	})
	return domain.MarkerHandle(id)
}

// Click forwards a click to the subscriber. It reports false when nobody
// has subscribed yet, in which case the click is dropped.
func (s *TerminalSurface) Click(lat, lng float64) bool {
	s.mu.Lock()
	handler := s.handler
	s.mu.Unlock()
	if handler == nil {
		return false
	}
	handler(lat, lng)
	return true
}

// Center returns the viewport center; ok is false until CenterOn succeeds.
func (s *TerminalSurface) Center() (lat, lng float64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lat, s.lng, s.centered
}

func (s *TerminalSurface) Zoom() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zoom
}

func (s *TerminalSurface) SetZoom(zoom int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zoom = clampZoom(zoom)
}

// Recenter pans the viewport without changing the zoom. It does nothing
// before the map has been centered once.
func (s *TerminalSurface) Recenter(lat, lng float64) {
	if !(domain.Point{Lat: lat, Lng: lng}).Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.centered {
		return
	}
	s.lat, s.lng = lat, lng
}

func (s *TerminalSurface) Pins() []sessiondto.PinOutput {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sessiondto.PinOutput, len(s.pins))
	copy(out, s.pins)
	return out
}

func clampZoom(zoom int) int {
	if zoom < config.MinZoom {
		return config.MinZoom
	}
	if zoom > config.MaxZoom {
		return config.MaxZoom
	}
	return zoom
}
