package domain

import (
	"fmt"
	"math"
	"strings"

	apperrors "mapty/internal/platform/errors"
)

type State int

const (
	StateIdle State = iota
	StateAwaitingLocation
	StateReady
	StateFormOpen
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingLocation:
		return "awaiting-location"
	case StateReady:
		return "ready"
	case StateFormOpen:
		return "form-open"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type Event string

const (
	EventStart        Event = "start"
	EventLocated      Event = "located"
	EventLocateFailed Event = "locate-failed"
	EventMapClick     Event = "map-click"
	EventSubmitted    Event = "submitted"
	EventCancelled    Event = "cancelled"
)

var transitions = map[State]map[Event]State{
	StateIdle:             {EventStart: StateAwaitingLocation},
	StateAwaitingLocation: {EventLocated: StateReady, EventLocateFailed: StateIdle},
	StateReady:            {EventMapClick: StateFormOpen},
	StateFormOpen:         {EventSubmitted: StateReady, EventCancelled: StateReady},
}

type ActivityType string

const (
	ActivityRunning ActivityType = "running"
	ActivityCycling ActivityType = "cycling"
)

func ParseActivityType(raw string) (ActivityType, error) {
	switch t := ActivityType(strings.ToLower(strings.TrimSpace(raw))); t {
	case ActivityRunning, ActivityCycling:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown activity type %q", apperrors.ErrInvalidInput, raw)
	}
}

// Toggle returns the other activity type.
func (t ActivityType) Toggle() ActivityType {
	if t == ActivityCycling {
		return ActivityRunning
	}
	return ActivityCycling
}

type Point struct {
	Lat float64
	Lng float64
}

func (p Point) Valid() bool {
	return !math.IsNaN(p.Lat) && !math.IsNaN(p.Lng) &&
		!math.IsInf(p.Lat, 0) && !math.IsInf(p.Lng, 0) &&
		p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Marker is what the controller asks the map surface to draw.
type Marker struct {
	Kind  string
	Title string
	Label string
}

type MarkerHandle string

// Session is the controller's state across interactions. Pending is only
// meaningful in StateFormOpen.
type Session struct {
	State    State
	Started  bool
	Failed   bool
	Center   Point
	Pending  Point
	FormType ActivityType
}

func NewSession() Session {
	return Session{State: StateIdle, FormType: ActivityRunning}
}

// Apply moves the session along one edge of the state graph. A session
// starts at most once; a failed location lookup leaves it idle for good.
func (s *Session) Apply(ev Event) error {
	if ev == EventStart && s.Started {
		return fmt.Errorf("%w: session already started", apperrors.ErrInvalidTransition)
	}
	next, ok := transitions[s.State][ev]
	if !ok {
		return fmt.Errorf("%w: %s while %s", apperrors.ErrInvalidTransition, ev, s.State)
	}
	s.State = next
	switch ev {
	case EventStart:
		s.Started = true
	case EventLocateFailed:
		s.Failed = true
	case EventSubmitted, EventCancelled:
		s.Pending = Point{}
	}
	return nil
}
