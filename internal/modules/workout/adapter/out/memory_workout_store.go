package out

import (
	"context"
	"sync"

	"mapty/internal/modules/workout/domain"
	workoutout "mapty/internal/modules/workout/port/out"
)

// MemoryWorkoutStore keeps workouts in a slice. The lock covers list reads
// issued from UI commands while the event loop appends.
type MemoryWorkoutStore struct {
	mu       sync.RWMutex
	workouts []domain.Workout
}

func NewMemoryWorkoutStore() workoutout.WorkoutStore {
	return &MemoryWorkoutStore{}
}

func (s *MemoryWorkoutStore) Append(_ context.Context, workout domain.Workout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workouts = append(s.workouts, workout)
	return nil
}

func (s *MemoryWorkoutStore) List(_ context.Context) ([]domain.Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Workout, len(s.workouts))
	copy(out, s.workouts)
	return out, nil
}
