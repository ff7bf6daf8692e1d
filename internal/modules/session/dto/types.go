package dto

import workoutdto "mapty/internal/modules/workout/dto"

// FormInput carries the form fields as typed. Parsing and validation
// happen in the controller.
type FormInput struct {
	Type      string
	Distance  string
	Duration  string
	Cadence   string
	Elevation string
}

type LocationResult struct {
	Lat float64
	Lng float64
	Err error
}

// Lookup performs the pending location request. It blocks and must run off
// the event loop; hand its result to Resolve.
type Lookup func() LocationResult

type SubmitOutput struct {
	Workout  workoutdto.WorkoutOutput
	Label    string
	MarkerID string
}

type StatusOutput struct {
	State      string
	Ready      bool
	FormOpen   bool
	Failed     bool
	FormType   string
	CenterLat  float64
	CenterLng  float64
	PendingLat float64
	PendingLng float64
}

type LoggedWorkout struct {
	Workout workoutdto.WorkoutOutput
	Label   string
}

// PinOutput is a marker as drawn on the map surface.
type PinOutput struct {
	ID    string
	Lat   float64
	Lng   float64
	Kind  string
	Title string
	Label string
}
