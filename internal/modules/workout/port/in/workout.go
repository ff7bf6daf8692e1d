package in

import (
	"context"

	"mapty/internal/modules/workout/dto"
)

type Usecase interface {
	CreateRunning(ctx context.Context, input dto.CreateRunningInput) (dto.WorkoutOutput, error)
	CreateCycling(ctx context.Context, input dto.CreateCyclingInput) (dto.WorkoutOutput, error)
	List(ctx context.Context) ([]dto.WorkoutOutput, error)
	Stats(ctx context.Context) (dto.StatsOutput, error)
}
