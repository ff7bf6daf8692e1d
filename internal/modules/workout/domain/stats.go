package domain

type Stats struct {
	Count       int
	Running     int
	Cycling     int
	DistanceKm  float64
	DurationMin float64
}

func Summarize(workouts []Workout) Stats {
	s := Stats{}
	for _, w := range workouts {
		s.Count++
		s.DistanceKm += w.DistanceKm
		s.DurationMin += w.DurationMin
		switch w.Kind {
		case KindRunning:
			s.Running++
		case KindCycling:
			s.Cycling++
		}
	}
	return s
}
