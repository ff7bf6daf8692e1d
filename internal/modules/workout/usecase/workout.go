package usecase

import (
	"context"

	"mapty/internal/modules/workout/domain"
	"mapty/internal/modules/workout/dto"
	workoutin "mapty/internal/modules/workout/port/in"
	"mapty/internal/modules/workout/service"
)

type Interactor struct {
	svc *service.WorkoutService
}

func NewInteractor(svc *service.WorkoutService) workoutin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) CreateRunning(ctx context.Context, input dto.CreateRunningInput) (dto.WorkoutOutput, error) {
	w, err := i.svc.CreateRunning(ctx, domain.Coordinates{Lat: input.Lat, Lng: input.Lng}, input.DistanceKm, input.DurationMin, input.CadenceSPM)
	if err != nil {
		return dto.WorkoutOutput{}, err
	}
	return toOutput(w), nil
}

func (i *Interactor) CreateCycling(ctx context.Context, input dto.CreateCyclingInput) (dto.WorkoutOutput, error) {
	w, err := i.svc.CreateCycling(ctx, domain.Coordinates{Lat: input.Lat, Lng: input.Lng}, input.DistanceKm, input.DurationMin, input.ElevationGainM)
	if err != nil {
		return dto.WorkoutOutput{}, err
	}
	return toOutput(w), nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.WorkoutOutput, error) {
	workouts, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WorkoutOutput, 0, len(workouts))
	for _, w := range workouts {
		out = append(out, toOutput(w))
	}
	return out, nil
}

func (i *Interactor) Stats(ctx context.Context) (dto.StatsOutput, error) {
	s, err := i.svc.Stats(ctx)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	return dto.StatsOutput{
		Count:       s.Count,
		Running:     s.Running,
		Cycling:     s.Cycling,
		DistanceKm:  s.DistanceKm,
		DurationMin: s.DurationMin,
	}, nil
}

func toOutput(w domain.Workout) dto.WorkoutOutput {
	return dto.WorkoutOutput{
		ID:             w.ID,
		Kind:           string(w.Kind),
		Description:    w.Description(),
		CreatedAt:      w.CreatedAt,
		Lat:            w.Coords.Lat,
		Lng:            w.Coords.Lng,
		DistanceKm:     w.DistanceKm,
		DurationMin:    w.DurationMin,
		CadenceSPM:     w.Running.CadenceSPM,
		PaceMinPerKm:   w.Running.PaceMinPerKm,
		ElevationGainM: w.Cycling.ElevationGainM,
		SpeedKmh:       w.Cycling.SpeedKmh,
	}
}
