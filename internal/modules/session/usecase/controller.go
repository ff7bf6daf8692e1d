package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"mapty/internal/modules/session/domain"
	sessiondto "mapty/internal/modules/session/dto"
	sessionin "mapty/internal/modules/session/port/in"
	sessionout "mapty/internal/modules/session/port/out"
	"mapty/internal/modules/session/service"
	workoutdto "mapty/internal/modules/workout/dto"
	workoutin "mapty/internal/modules/workout/port/in"
	apperrors "mapty/internal/platform/errors"
	"mapty/internal/platform/metrics"
)

const (
	msgInvalidInput     = "Inputs need to be positive numbers."
	msgLocationFailed   = "Could not access your location."
	msgWorkoutNotLogged = "Could not log the workout."
)

type Options struct {
	Zoom          int
	LocateTimeout time.Duration
	Logger        hclog.Logger
	Metrics       *metrics.Session
}

// Controller mediates between the map surface, the form, and the workout
// list. Every method runs on the caller's event loop, except the Lookup
// returned by Start and Logged, which only reads the workout store.
type Controller struct {
	workouts workoutin.Usecase
	surface  sessionout.MapSurface
	form     sessionout.Form
	notifier sessionout.Notifier
	logger   hclog.Logger
	metrics  *metrics.Session
	zoom     int
	timeout  time.Duration

	session domain.Session
}

func NewController(workouts workoutin.Usecase, surface sessionout.MapSurface, form sessionout.Form, notifier sessionout.Notifier, opts Options) sessionin.Controller {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Controller{
		workouts: workouts,
		surface:  surface,
		form:     form,
		notifier: notifier,
		logger:   logger.Named("session"),
		metrics:  opts.Metrics,
		zoom:     opts.Zoom,
		timeout:  opts.LocateTimeout,
		session:  domain.NewSession(),
	}
}

func (c *Controller) Start(ctx context.Context) (sessiondto.Lookup, error) {
	if err := c.session.Apply(domain.EventStart); err != nil {
		c.logger.Debug("start ignored", "error", err)
		return nil, err
	}
	c.logger.Debug("requesting current location")
	return func() sessiondto.LocationResult {
		lookupCtx := ctx
		if c.timeout > 0 {
			var cancel context.CancelFunc
			lookupCtx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}
		lat, lng, err := c.surface.RequestCurrentLocation(lookupCtx)
		if err != nil && !errors.Is(err, apperrors.ErrLocationUnavailable) {
			err = fmt.Errorf("%w: %w", apperrors.ErrLocationUnavailable, err)
		}
		return sessiondto.LocationResult{Lat: lat, Lng: lng, Err: err}
	}, nil
}

// Resolve applies the outcome of the location lookup. Only the first
// outcome counts; later ones are rejected with ErrInvalidTransition.
func (c *Controller) Resolve(result sessiondto.LocationResult) error {
	if c.session.State != domain.StateAwaitingLocation {
		err := fmt.Errorf("%w: location result while %s", apperrors.ErrInvalidTransition, c.session.State)
		c.logger.Debug("late location result ignored", "error", err)
		return err
	}
	point := domain.Point{Lat: result.Lat, Lng: result.Lng}
	if result.Err == nil && !point.Valid() {
		result.Err = fmt.Errorf("%w: locator returned %v,%v", apperrors.ErrLocationUnavailable, result.Lat, result.Lng)
	}
	if result.Err != nil {
		_ = c.session.Apply(domain.EventLocateFailed)
		c.metrics.LocationFailed()
		c.logger.Warn("location unavailable", "error", result.Err)
		c.notifier.Alert(msgLocationFailed)
		return result.Err
	}

	_ = c.session.Apply(domain.EventLocated)
	c.session.Center = point
	c.surface.CenterOn(point.Lat, point.Lng, c.zoom)
	c.surface.SubscribeToClick(func(lat, lng float64) {
		_ = c.MapClicked(lat, lng)
	})
	c.surface.PlaceMarker(point.Lat, point.Lng, domain.Marker{
		Kind:  "position",
		Title: "You are here",
		Label: service.PositionLabel(point.Lat, point.Lng),
	})
	c.logger.Debug("session ready", "lat", point.Lat, "lng", point.Lng, "zoom", c.zoom)
	return nil
}

func (c *Controller) Run(ctx context.Context) error {
	lookup, err := c.Start(ctx)
	if err != nil {
		return err
	}
	return c.Resolve(lookup())
}

// MapClicked opens the form for the clicked point. Clicks outside Ready,
// including while the form is already open, are dropped.
func (c *Controller) MapClicked(lat, lng float64) error {
	point := domain.Point{Lat: lat, Lng: lng}
	if !point.Valid() {
		c.logger.Debug("click outside the map ignored", "lat", lat, "lng", lng)
		return fmt.Errorf("%w: clicked %v,%v", apperrors.ErrInvalidCoordinates, lat, lng)
	}
	if err := c.session.Apply(domain.EventMapClick); err != nil {
		c.logger.Debug("click ignored", "error", err)
		return err
	}
	c.session.Pending = point
	c.form.Show()
	c.form.ShowField(c.session.FormType)
	c.form.Focus()
	c.logger.Debug("form opened", "lat", lat, "lng", lng)
	return nil
}

func (c *Controller) Submit(ctx context.Context, input sessiondto.FormInput) (sessiondto.SubmitOutput, error) {
	if c.session.State != domain.StateFormOpen {
		err := fmt.Errorf("%w: submit while %s", apperrors.ErrInvalidTransition, c.session.State)
		c.logger.Debug("submit ignored", "error", err)
		return sessiondto.SubmitOutput{}, err
	}
	parsed, err := service.ParseForm(input, c.session.FormType)
	if err != nil {
		return sessiondto.SubmitOutput{}, c.reject(err)
	}

	pending := c.session.Pending
	var workout workoutdto.WorkoutOutput
	switch parsed.Type {
	case domain.ActivityRunning:
		workout, err = c.workouts.CreateRunning(ctx, workoutdto.CreateRunningInput{
			Lat:         pending.Lat,
			Lng:         pending.Lng,
			DistanceKm:  parsed.DistanceKm,
			DurationMin: parsed.DurationMin,
			CadenceSPM:  parsed.CadenceSPM,
		})
	case domain.ActivityCycling:
		workout, err = c.workouts.CreateCycling(ctx, workoutdto.CreateCyclingInput{
			Lat:            pending.Lat,
			Lng:            pending.Lng,
			DistanceKm:     parsed.DistanceKm,
			DurationMin:    parsed.DurationMin,
			ElevationGainM: parsed.ElevationGainM,
		})
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidMetric) || errors.Is(err, apperrors.ErrInvalidInput) {
			return sessiondto.SubmitOutput{}, c.reject(err)
		}
		c.logger.Error("workout not stored", "error", err)
		c.notifier.Alert(msgWorkoutNotLogged)
		return sessiondto.SubmitOutput{}, err
	}

	label := service.SummaryLabel(workout)
	handle := c.surface.PlaceMarker(pending.Lat, pending.Lng, domain.Marker{
		Kind:  workout.Kind,
		Title: workout.Description,
		Label: label,
	})
	c.form.Clear()
	c.form.Hide()
	_ = c.session.Apply(domain.EventSubmitted)
	c.metrics.WorkoutLogged(workout.Kind)
	c.logger.Info("workout logged", "id", workout.ID, "kind", workout.Kind, "lat", pending.Lat, "lng", pending.Lng)
	c.notifier.Notify(workout.Description + " logged")
	return sessiondto.SubmitOutput{Workout: workout, Label: label, MarkerID: string(handle)}, nil
}

// ChangeType switches which type-specific field the open form asks for.
func (c *Controller) ChangeType(activityType string) error {
	if c.session.State != domain.StateFormOpen {
		return fmt.Errorf("%w: change type while %s", apperrors.ErrInvalidTransition, c.session.State)
	}
	t, err := domain.ParseActivityType(activityType)
	if err != nil {
		return err
	}
	c.session.FormType = t
	c.form.ShowField(t)
	return nil
}

// Cancel drops the pending click and closes the form.
func (c *Controller) Cancel() error {
	if err := c.session.Apply(domain.EventCancelled); err != nil {
		return err
	}
	c.form.Clear()
	c.form.Hide()
	c.logger.Debug("form cancelled")
	return nil
}

func (c *Controller) Status() sessiondto.StatusOutput {
	s := c.session
	return sessiondto.StatusOutput{
		State:      s.State.String(),
		Ready:      s.State == domain.StateReady,
		FormOpen:   s.State == domain.StateFormOpen,
		Failed:     s.Failed,
		FormType:   string(s.FormType),
		CenterLat:  s.Center.Lat,
		CenterLng:  s.Center.Lng,
		PendingLat: s.Pending.Lat,
		PendingLng: s.Pending.Lng,
	}
}

func (c *Controller) Logged(ctx context.Context) ([]sessiondto.LoggedWorkout, error) {
	workouts, err := c.workouts.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.LoggedWorkout, 0, len(workouts))
	for _, w := range workouts {
		out = append(out, sessiondto.LoggedWorkout{Workout: w, Label: service.SummaryLabel(w)})
	}
	return out, nil
}

// reject reports a validation failure. The form stays open on the same
// pending point so the user can correct it.
func (c *Controller) reject(err error) error {
	c.metrics.ValidationFailed()
	c.logger.Info("form rejected", "error", err)
	c.notifier.Alert(msgInvalidInput)
	return err
}
