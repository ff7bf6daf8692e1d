package geo_test

import (
	"math"
	"testing"

	"mapty/internal/platform/geo"
)

func TestProjectOrigin(t *testing.T) {
	t.Parallel()
	x, y := geo.Project(0, 0, 0)
	if x != 128 || math.Abs(y-128) > 1e-9 {
		t.Fatalf("expected world center at zoom 0, got %v,%v", x, y)
	}
}

func TestRoundTripAcrossZooms(t *testing.T) {
	t.Parallel()
	points := [][2]float64{{51.505, -0.09}, {-33.8688, 151.2093}, {0, 0}, {64.1466, -21.9426}}
	for zoom := 0; zoom <= 18; zoom++ {
		for _, p := range points {
			x, y := geo.Project(p[0], p[1], zoom)
			lat, lng := geo.Unproject(x, y, zoom)
			if math.Abs(lat-p[0]) > 1e-9 || math.Abs(lng-p[1]) > 1e-9 {
				t.Fatalf("zoom %d: %v -> %v,%v", zoom, p, lat, lng)
			}
		}
	}
}

func TestClampsPoles(t *testing.T) {
	t.Parallel()
	_, y := geo.Project(90, 0, 3)
	if y < -1e-3 || math.IsInf(y, 0) || math.IsNaN(y) {
		t.Fatalf("pole should clamp to the world edge, got %v", y)
	}
	lat, lng := geo.Unproject(-50, -50, 3)
	if math.Abs(lat-geo.MaxLatitude) > 1e-6 || lng != -180 {
		t.Fatalf("outside pixels should clamp, got %v,%v", lat, lng)
	}
}
