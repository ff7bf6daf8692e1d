package service

import (
	"fmt"
	"strconv"
	"strings"

	workoutdto "mapty/internal/modules/workout/dto"
)

// SummaryLabel is the markdown shown in a workout marker's popup. It always
// carries the coordinate pair.
func SummaryLabel(w workoutdto.WorkoutOutput) string {
	var sb strings.Builder
	sb.WriteString("**" + w.Description + "**\n\n")
	sb.WriteString(PositionLabel(w.Lat, w.Lng) + "\n\n")
	parts := []string{
		formatNumber(w.DistanceKm) + " km",
		formatNumber(w.DurationMin) + " min",
	}
	switch w.Kind {
	case "running":
		parts = append(parts, fmt.Sprintf("%.1f min/km", w.PaceMinPerKm), formatNumber(w.CadenceSPM)+" spm")
	case "cycling":
		parts = append(parts, fmt.Sprintf("%.1f km/h", w.SpeedKmh), formatNumber(w.ElevationGainM)+" m")
	}
	sb.WriteString(strings.Join(parts, " · "))
	return sb.String()
}

// PositionLabel renders a bare coordinate pair.
func PositionLabel(lat, lng float64) string {
	return fmt.Sprintf("**Latitude:** %s  \n**Longitude:** %s", formatNumber(lat), formatNumber(lng))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
