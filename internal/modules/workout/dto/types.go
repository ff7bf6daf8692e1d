package dto

import "time"

type CreateRunningInput struct {
	Lat         float64
	Lng         float64
	DistanceKm  float64
	DurationMin float64
	CadenceSPM  float64
}

type CreateCyclingInput struct {
	Lat            float64
	Lng            float64
	DistanceKm     float64
	DurationMin    float64
	ElevationGainM float64
}

type WorkoutOutput struct {
	ID             string
	Kind           string
	Description    string
	CreatedAt      time.Time
	Lat            float64
	Lng            float64
	DistanceKm     float64
	DurationMin    float64
	CadenceSPM     float64
	PaceMinPerKm   float64
	ElevationGainM float64
	SpeedKmh       float64
}

type StatsOutput struct {
	Count       int
	Running     int
	Cycling     int
	DistanceKm  float64
	DurationMin float64
}
