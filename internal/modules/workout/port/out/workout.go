package out

import (
	"context"

	"mapty/internal/modules/workout/domain"
)

// WorkoutStore holds the workouts of one session, in insertion order.
type WorkoutStore interface {
	Append(ctx context.Context, workout domain.Workout) error
	List(ctx context.Context) ([]domain.Workout, error)
}
