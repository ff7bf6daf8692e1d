package service

import (
	"context"

	"mapty/internal/modules/workout/domain"
	workoutout "mapty/internal/modules/workout/port/out"
	"mapty/internal/platform/clock"
	"mapty/internal/platform/id"
)

type WorkoutService struct {
	clock clock.Clock
	idGen id.Generator
	store workoutout.WorkoutStore
}

func NewWorkoutService(clock clock.Clock, idGen id.Generator, store workoutout.WorkoutStore) *WorkoutService {
	return &WorkoutService{clock: clock, idGen: idGen, store: store}
}

func (s *WorkoutService) CreateRunning(ctx context.Context, coords domain.Coordinates, distanceKm, durationMin, cadenceSPM float64) (domain.Workout, error) {
	w, err := domain.NewRunning(s.idGen.New(), s.clock.Now(), coords, distanceKm, durationMin, cadenceSPM)
	if err != nil {
		return domain.Workout{}, err
	}
	if err := s.store.Append(ctx, w); err != nil {
		return domain.Workout{}, err
	}
	return w, nil
}

func (s *WorkoutService) CreateCycling(ctx context.Context, coords domain.Coordinates, distanceKm, durationMin, elevationGainM float64) (domain.Workout, error) {
	w, err := domain.NewCycling(s.idGen.New(), s.clock.Now(), coords, distanceKm, durationMin, elevationGainM)
	if err != nil {
		return domain.Workout{}, err
	}
	if err := s.store.Append(ctx, w); err != nil {
		return domain.Workout{}, err
	}
	return w, nil
}

func (s *WorkoutService) List(ctx context.Context) ([]domain.Workout, error) {
	return s.store.List(ctx)
}

func (s *WorkoutService) Stats(ctx context.Context) (domain.Stats, error) {
	workouts, err := s.store.List(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.Summarize(workouts), nil
}
