package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	apperrors "mapty/internal/platform/errors"
)

type Kind string

const (
	KindRunning Kind = "running"
	KindCycling Kind = "cycling"
)

func (k Kind) Validate() error {
	switch k {
	case KindRunning, KindCycling:
		return nil
	default:
		return fmt.Errorf("%w: unsupported workout kind %q", apperrors.ErrInvalidInput, string(k))
	}
}

type Coordinates struct {
	Lat float64
	Lng float64
}

func (c Coordinates) Validate() error {
	if !finite(c.Lat) || c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90", apperrors.ErrInvalidCoordinates)
	}
	if !finite(c.Lng) || c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180", apperrors.ErrInvalidCoordinates)
	}
	return nil
}

// Workout is the record shared by every kind. Only the metrics block that
// matches Kind is populated; derived values are fixed at construction.
type Workout struct {
	ID          string
	Kind        Kind
	CreatedAt   time.Time
	Coords      Coordinates
	DistanceKm  float64
	DurationMin float64
	Running     RunningMetrics
	Cycling     CyclingMetrics
}

type RunningMetrics struct {
	CadenceSPM   float64
	PaceMinPerKm float64
}

type CyclingMetrics struct {
	ElevationGainM float64
	SpeedKmh       float64
}

func NewRunning(id string, createdAt time.Time, coords Coordinates, distanceKm, durationMin, cadenceSPM float64) (Workout, error) {
	w, err := newBase(id, createdAt, coords, distanceKm, durationMin)
	if err != nil {
		return Workout{}, err
	}
	if !positive(cadenceSPM) {
		return Workout{}, fmt.Errorf("%w: cadence must be a positive number", apperrors.ErrInvalidMetric)
	}
	w.Kind = KindRunning
	w.Running = RunningMetrics{CadenceSPM: cadenceSPM, PaceMinPerKm: pace(distanceKm, durationMin)}
	return w, nil
}

// NewCycling accepts any finite elevation gain; descents are negative.
func NewCycling(id string, createdAt time.Time, coords Coordinates, distanceKm, durationMin, elevationGainM float64) (Workout, error) {
	w, err := newBase(id, createdAt, coords, distanceKm, durationMin)
	if err != nil {
		return Workout{}, err
	}
	if !finite(elevationGainM) {
		return Workout{}, fmt.Errorf("%w: elevation gain must be a number", apperrors.ErrInvalidMetric)
	}
	w.Kind = KindCycling
	w.Cycling = CyclingMetrics{ElevationGainM: elevationGainM, SpeedKmh: speed(distanceKm, durationMin)}
	return w, nil
}

// Description reads like "Running on October 19".
func (w Workout) Description() string {
	kind := string(w.Kind)
	if kind != "" {
		kind = strings.ToUpper(kind[:1]) + kind[1:]
	}
	return fmt.Sprintf("%s on %s %d", kind, w.CreatedAt.Month(), w.CreatedAt.Day())
}

func newBase(id string, createdAt time.Time, coords Coordinates, distanceKm, durationMin float64) (Workout, error) {
	if strings.TrimSpace(id) == "" {
		return Workout{}, fmt.Errorf("%w: workout id is required", apperrors.ErrInvalidInput)
	}
	if err := coords.Validate(); err != nil {
		return Workout{}, err
	}
	if !positive(distanceKm) {
		return Workout{}, fmt.Errorf("%w: distance must be a positive number", apperrors.ErrInvalidMetric)
	}
	if !positive(durationMin) {
		return Workout{}, fmt.Errorf("%w: duration must be a positive number", apperrors.ErrInvalidMetric)
	}
	return Workout{
		ID:          id,
		CreatedAt:   createdAt,
		Coords:      coords,
		DistanceKm:  distanceKm,
		DurationMin: durationMin,
	}, nil
}

// pace is minutes per kilometre. Callers guarantee distanceKm > 0.
func pace(distanceKm, durationMin float64) float64 {
	return durationMin / distanceKm
}

// speed is kilometres per hour. Callers guarantee durationMin > 0.
func speed(distanceKm, durationMin float64) float64 {
	return distanceKm / (durationMin / 60)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positive(v float64) bool {
	return finite(v) && v > 0
}
