package domain_test

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mapty/internal/modules/workout/domain"
	apperrors "mapty/internal/platform/errors"
)

var (
	createdAt = time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)
	london    = domain.Coordinates{Lat: 51.505, Lng: -0.09}
)

func TestNewRunningExample(t *testing.T) {
	t.Parallel()
	w, err := domain.NewRunning("w-1", createdAt, london, 5, 25, 180)
	require.NoError(t, err)
	require.Equal(t, domain.KindRunning, w.Kind)
	require.Equal(t, london, w.Coords)
	require.Equal(t, 5.0, w.DistanceKm)
	require.Equal(t, 25.0, w.DurationMin)
	require.Equal(t, 180.0, w.Running.CadenceSPM)
	require.Equal(t, 5.0, w.Running.PaceMinPerKm)
	require.Zero(t, w.Cycling)
	require.Equal(t, "Running on October 19", w.Description())
}

func TestNewCyclingExample(t *testing.T) {
	t.Parallel()
	w, err := domain.NewCycling("w-2", createdAt, london, 20, 60, 150)
	require.NoError(t, err)
	require.Equal(t, domain.KindCycling, w.Kind)
	require.Equal(t, 20.0, w.Cycling.SpeedKmh)
	require.Equal(t, 150.0, w.Cycling.ElevationGainM)
	require.Zero(t, w.Running)
	require.Equal(t, "Cycling on October 19", w.Description())
}

func TestDerivedMetricsMatchFormulas(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		distance := rng.Float64()*100 + 1e-3
		duration := rng.Float64()*600 + 1e-3

		run, err := domain.NewRunning("r", createdAt, london, distance, duration, 170)
		require.NoError(t, err)
		require.InDelta(t, duration/distance, run.Running.PaceMinPerKm, 1e-9)

		ride, err := domain.NewCycling("c", createdAt, london, distance, duration, 0)
		require.NoError(t, err)
		require.InDelta(t, distance/(duration/60), ride.Cycling.SpeedKmh, 1e-9)
	}
}

func TestRunningRejectsInvalidMetrics(t *testing.T) {
	t.Parallel()
	bad := []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)}
	for _, v := range bad {
		_, err := domain.NewRunning("w", createdAt, london, v, 25, 180)
		require.ErrorIs(t, err, apperrors.ErrInvalidMetric, "distance %v", v)
		_, err = domain.NewRunning("w", createdAt, london, 5, v, 180)
		require.ErrorIs(t, err, apperrors.ErrInvalidMetric, "duration %v", v)
		_, err = domain.NewRunning("w", createdAt, london, 5, 25, v)
		require.ErrorIs(t, err, apperrors.ErrInvalidMetric, "cadence %v", v)
	}
}

func TestCyclingElevationSignIsFree(t *testing.T) {
	t.Parallel()
	for _, elevation := range []float64{0, -120, 3000} {
		w, err := domain.NewCycling("w", createdAt, london, 20, 60, elevation)
		require.NoError(t, err)
		require.Equal(t, elevation, w.Cycling.ElevationGainM)
	}
	for _, v := range []float64{math.NaN(), math.Inf(1)} {
		_, err := domain.NewCycling("w", createdAt, london, 20, 60, v)
		require.ErrorIs(t, err, apperrors.ErrInvalidMetric)
	}
	_, err := domain.NewCycling("w", createdAt, london, 0, 60, 10)
	require.ErrorIs(t, err, apperrors.ErrInvalidMetric)
	_, err = domain.NewCycling("w", createdAt, london, 20, -1, 10)
	require.ErrorIs(t, err, apperrors.ErrInvalidMetric)
}

func TestCoordinatesAndIDValidation(t *testing.T) {
	t.Parallel()
	_, err := domain.NewRunning("w", createdAt, domain.Coordinates{Lat: 91, Lng: 0}, 5, 25, 180)
	require.ErrorIs(t, err, apperrors.ErrInvalidCoordinates)
	_, err = domain.NewCycling("w", createdAt, domain.Coordinates{Lat: 0, Lng: math.NaN()}, 5, 25, 1)
	require.ErrorIs(t, err, apperrors.ErrInvalidCoordinates)
	_, err = domain.NewRunning(" ", createdAt, london, 5, 25, 180)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	require.NoError(t, domain.Coordinates{Lat: -90, Lng: 180}.Validate())
	require.NoError(t, domain.KindCycling.Validate())
	require.Error(t, domain.Kind("swimming").Validate())
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	run, err := domain.NewRunning("a", createdAt, london, 5, 25, 180)
	require.NoError(t, err)
	ride, err := domain.NewCycling("b", createdAt, london, 20, 60, 150)
	require.NoError(t, err)
	s := domain.Summarize([]domain.Workout{run, ride, run})
	require.Equal(t, domain.Stats{Count: 3, Running: 2, Cycling: 1, DistanceKm: 30, DurationMin: 110}, s)
}
