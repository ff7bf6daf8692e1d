// Package geo implements the spherical Web-Mercator projection used to lay
// the map out on a pixel plane.
package geo

import "math"

const (
	TileSize    = 256
	MaxLatitude = 85.05112878
)

// WorldSize is the width and height of the projected world in pixels.
func WorldSize(zoom int) float64 {
	return TileSize * math.Exp2(float64(zoom))
}

// Project maps a coordinate to world pixels at zoom. Latitudes beyond the
// Mercator limit are clamped.
func Project(lat, lng float64, zoom int) (x, y float64) {
	size := WorldSize(zoom)
	lat = clamp(lat, -MaxLatitude, MaxLatitude)
	lng = clamp(lng, -180, 180)
	rad := lat * math.Pi / 180
	x = (lng + 180) / 360 * size
	y = (1 - math.Log(math.Tan(rad)+1/math.Cos(rad))/math.Pi) / 2 * size
	return x, y
}

// Unproject is the inverse of Project. Pixels outside the world are clamped
// to its edge.
func Unproject(x, y float64, zoom int) (lat, lng float64) {
	size := WorldSize(zoom)
	x = clamp(x, 0, size)
	y = clamp(y, 0, size)
	lng = x/size*360 - 180
	n := math.Pi - 2*math.Pi*y/size
	lat = 180 / math.Pi * math.Atan(math.Sinh(n))
	return lat, lng
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
