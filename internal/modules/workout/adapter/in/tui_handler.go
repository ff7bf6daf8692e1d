package in

import (
	"context"

	"mapty/internal/modules/workout/dto"
	workoutin "mapty/internal/modules/workout/port/in"
)

type TUIHandler struct {
	usecase workoutin.Usecase
}

func NewTUIHandler(usecase workoutin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) ListWorkouts(ctx context.Context) ([]dto.WorkoutOutput, error) {
	return h.usecase.List(ctx)
}

func (h TUIHandler) Stats(ctx context.Context) (dto.StatsOutput, error) {
	return h.usecase.Stats(ctx)
}
