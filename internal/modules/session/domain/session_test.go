package domain_test

import (
	"errors"
	"math"
	"testing"

	"mapty/internal/modules/session/domain"
	apperrors "mapty/internal/platform/errors"
)

func TestHappyPathTransitions(t *testing.T) {
	t.Parallel()
	s := domain.NewSession()
	steps := []struct {
		ev   domain.Event
		want domain.State
	}{
		{domain.EventStart, domain.StateAwaitingLocation},
		{domain.EventLocated, domain.StateReady},
		{domain.EventMapClick, domain.StateFormOpen},
		{domain.EventSubmitted, domain.StateReady},
		{domain.EventMapClick, domain.StateFormOpen},
		{domain.EventCancelled, domain.StateReady},
	}
	for _, step := range steps {
		if err := s.Apply(step.ev); err != nil {
			t.Fatalf("apply %s: %v", step.ev, err)
		}
		if s.State != step.want {
			t.Fatalf("after %s expected %s, got %s", step.ev, step.want, s.State)
		}
	}
}

func TestLocateFailureIsTerminal(t *testing.T) {
	t.Parallel()
	s := domain.NewSession()
	if err := s.Apply(domain.EventStart); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Apply(domain.EventLocateFailed); err != nil {
		t.Fatalf("locate failed: %v", err)
	}
	if s.State != domain.StateIdle || !s.Failed {
		t.Fatalf("expected failed idle session, got %+v", s)
	}
	for _, ev := range []domain.Event{domain.EventStart, domain.EventLocated, domain.EventMapClick} {
		if err := s.Apply(ev); !errors.Is(err, apperrors.ErrInvalidTransition) {
			t.Fatalf("%s after failure should be rejected, got %v", ev, err)
		}
	}
}

func TestRejectsOutOfOrderEvents(t *testing.T) {
	t.Parallel()
	s := domain.NewSession()
	for _, ev := range []domain.Event{domain.EventMapClick, domain.EventSubmitted, domain.EventLocated, domain.EventCancelled} {
		if err := s.Apply(ev); !errors.Is(err, apperrors.ErrInvalidTransition) {
			t.Fatalf("%s from idle should be rejected, got %v", ev, err)
		}
	}
	if s.State != domain.StateIdle {
		t.Fatalf("rejected events must not move the state, got %s", s.State)
	}
}

func TestParseActivityType(t *testing.T) {
	t.Parallel()
	if got, err := domain.ParseActivityType(" Cycling "); err != nil || got != domain.ActivityCycling {
		t.Fatalf("expected cycling, got %q %v", got, err)
	}
	if _, err := domain.ParseActivityType("rowing"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if domain.ActivityRunning.Toggle() != domain.ActivityCycling || domain.ActivityCycling.Toggle() != domain.ActivityRunning {
		t.Fatalf("toggle should swap running and cycling")
	}
}

func TestPointValid(t *testing.T) {
	t.Parallel()
	if !(domain.Point{Lat: 51.505, Lng: -0.09}).Valid() {
		t.Fatalf("london should be valid")
	}
	for _, p := range []domain.Point{{Lat: 90.1}, {Lng: -180.5}, {Lat: math.NaN()}, {Lng: math.Inf(1)}} {
		if p.Valid() {
			t.Fatalf("%+v should be invalid", p)
		}
	}
}
