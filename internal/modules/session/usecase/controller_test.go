package usecase_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"mapty/internal/modules/session/domain"
	sessiondto "mapty/internal/modules/session/dto"
	sessionin "mapty/internal/modules/session/port/in"
	sessionout "mapty/internal/modules/session/port/out"
	"mapty/internal/modules/session/usecase"
	workoutadapter "mapty/internal/modules/workout/adapter/out"
	workoutservice "mapty/internal/modules/workout/service"
	workoutusecase "mapty/internal/modules/workout/usecase"
	"mapty/internal/platform/clock"
	apperrors "mapty/internal/platform/errors"
	"mapty/internal/platform/metrics"
)

type placed struct {
	lat, lng float64
	marker   domain.Marker
}

type fakeSurface struct {
	lat, lng   float64
	locateErr  error
	centered   []placed
	zoom       int
	handler    sessionout.ClickHandler
	subscribed int
	markers    []placed
}

func (f *fakeSurface) RequestCurrentLocation(context.Context) (float64, float64, error) {
	return f.lat, f.lng, f.locateErr
}

func (f *fakeSurface) CenterOn(lat, lng float64, zoom int) {
	f.centered = append(f.centered, placed{lat: lat, lng: lng})
	f.zoom = zoom
}

func (f *fakeSurface) SubscribeToClick(handler sessionout.ClickHandler) {
	f.handler = handler
	f.subscribed++
}

func (f *fakeSurface) PlaceMarker(lat, lng float64, marker domain.Marker) domain.MarkerHandle {
	f.markers = append(f.markers, placed{lat: lat, lng: lng, marker: marker})
	return domain.MarkerHandle("m-" + strconv.Itoa(len(f.markers)))
}

// click simulates the user clicking the rendered map.
func (f *fakeSurface) click(lat, lng float64) {
	if f.handler != nil {
		f.handler(lat, lng)
	}
}

func (f *fakeSurface) workoutMarkers() []placed {
	var out []placed
	for _, m := range f.markers {
		if m.marker.Kind != "position" {
			out = append(out, m)
		}
	}
	return out
}

type fakeForm struct {
	visible bool
	focused int
	cleared int
	field   domain.ActivityType
}

func (f *fakeForm) Show()                             { f.visible = true }
func (f *fakeForm) Hide()                             { f.visible = false }
func (f *fakeForm) Focus()                            { f.focused++ }
func (f *fakeForm) Clear()                            { f.cleared++ }
func (f *fakeForm) ShowField(kind domain.ActivityType) { f.field = kind }

type fakeNotifier struct {
	alerts  []string
	notices []string
}

func (f *fakeNotifier) Alert(msg string)  { f.alerts = append(f.alerts, msg) }
func (f *fakeNotifier) Notify(msg string) { f.notices = append(f.notices, msg) }

type fixture struct {
	ctrl     sessionin.Controller
	surface  *fakeSurface
	form     *fakeForm
	notifier *fakeNotifier
	registry *prometheus.Registry
}

func newFixture(t *testing.T, surface *fakeSurface) fixture {
	t.Helper()
	reg := prometheus.NewRegistry()
	now := time.Date(2026, 10, 19, 7, 45, 0, 0, time.UTC)
	workouts := workoutusecase.NewInteractor(workoutservice.NewWorkoutService(clock.Fixed(now), &counterID{}, workoutadapter.NewMemoryWorkoutStore()))
	form := &fakeForm{}
	notifier := &fakeNotifier{}
	ctrl := usecase.NewController(workouts, surface, form, notifier, usecase.Options{
		Zoom:          13,
		LocateTimeout: time.Second,
		Metrics:       metrics.NewSession(reg),
	})
	return fixture{ctrl: ctrl, surface: surface, form: form, notifier: notifier, registry: reg}
}

type counterID struct{ n int }

func (c *counterID) New() string {
	c.n++
	return "w-" + strconv.Itoa(c.n)
}

func readyFixture(t *testing.T) fixture {
	t.Helper()
	f := newFixture(t, &fakeSurface{lat: 51.5, lng: -0.1})
	require.NoError(t, f.ctrl.Run(context.Background()))
	require.Equal(t, "ready", f.ctrl.Status().State)
	return f
}

func logged(t *testing.T, f fixture) []sessiondto.LoggedWorkout {
	t.Helper()
	list, err := f.ctrl.Logged(context.Background())
	require.NoError(t, err)
	return list
}

func TestStartCentersSubscribesAndMarksPosition(t *testing.T) {
	t.Parallel()
	f := readyFixture(t)
	require.Len(t, f.surface.centered, 1)
	require.Equal(t, placed{lat: 51.5, lng: -0.1}, f.surface.centered[0])
	require.Equal(t, 13, f.surface.zoom)
	require.Equal(t, 1, f.surface.subscribed)
	require.Len(t, f.surface.markers, 1)
	require.Equal(t, "position", f.surface.markers[0].marker.Kind)
	require.Contains(t, f.surface.markers[0].marker.Label, "51.5")

	status := f.ctrl.Status()
	require.True(t, status.Ready)
	require.Equal(t, 51.5, status.CenterLat)
}

func TestValidRunningSubmission(t *testing.T) {
	t.Parallel()
	f := readyFixture(t)

	f.surface.click(51.505, -0.09)
	status := f.ctrl.Status()
	require.True(t, status.FormOpen)
	require.Equal(t, 51.505, status.PendingLat)
	require.True(t, f.form.visible)
	require.Equal(t, 1, f.form.focused)
	require.Equal(t, domain.ActivityRunning, f.form.field)

	out, err := f.ctrl.Submit(context.Background(), sessiondto.FormInput{Type: "running", Distance: "5", Duration: "25", Cadence: "180"})
	require.NoError(t, err)
	require.Equal(t, "ready", f.ctrl.Status().State)
	require.False(t, f.form.visible)
	require.Equal(t, 1, f.form.cleared)

	w := out.Workout
	require.Equal(t, "running", w.Kind)
	require.Equal(t, 51.505, w.Lat)
	require.Equal(t, -0.09, w.Lng)
	require.Equal(t, 5.0, w.DistanceKm)
	require.Equal(t, 25.0, w.DurationMin)
	require.Equal(t, 180.0, w.CadenceSPM)
	require.Equal(t, 5.0, w.PaceMinPerKm)

	markers := f.surface.workoutMarkers()
	require.Len(t, markers, 1)
	require.Equal(t, 51.505, markers[0].lat)
	require.Equal(t, -0.09, markers[0].lng)
	require.Equal(t, "running", markers[0].marker.Kind)
	require.Contains(t, markers[0].marker.Label, "51.505")
	require.Contains(t, markers[0].marker.Label, "-0.09")
	require.Equal(t, "m-2", out.MarkerID)

	list := logged(t, f)
	require.Len(t, list, 1)
	require.Equal(t, out.Workout.ID, list[0].Workout.ID)
	require.Equal(t, out.Label, list[0].Label)
	require.Equal(t, 1.0, counterValue(t, f.registry, "mapty_session_workouts_logged_total"))
}

func TestValidCyclingSubmissionAfterTypeChange(t *testing.T) {
	t.Parallel()
	f := readyFixture(t)
	f.surface.click(48.85, 2.35)
	require.NoError(t, f.ctrl.ChangeType("cycling"))
	require.Equal(t, domain.ActivityCycling, f.form.field)
	require.True(t, f.ctrl.Status().FormOpen, "type change must not move the state")

	out, err := f.ctrl.Submit(context.Background(), sessiondto.FormInput{Distance: "20", Duration: "60", Elevation: "150"})
	require.NoError(t, err)
	require.Equal(t, "cycling", out.Workout.Kind)
	require.Equal(t, 20.0, out.Workout.SpeedKmh)
	require.Equal(t, 150.0, out.Workout.ElevationGainM)

	f.surface.click(48.86, 2.36)
	require.Equal(t, domain.ActivityCycling, f.form.field, "next form keeps the chosen type")
}

func TestInvalidSubmissionKeepsFormOpen(t *testing.T) {
	t.Parallel()
	f := readyFixture(t)
	f.surface.click(51.505, -0.09)

	inputs := []sessiondto.FormInput{
		{Type: "running", Distance: "-5", Duration: "25", Cadence: "180"},
		{Type: "running", Distance: "5", Duration: "abc", Cadence: "180"},
		{Type: "running", Distance: "5", Duration: "25", Cadence: ""},
		{Type: "cycling", Distance: "0", Duration: "60", Elevation: "10"},
		{Type: "cycling", Distance: "10", Duration: "60", Elevation: "NaN"},
		{Type: "rowing", Distance: "10", Duration: "60"},
	}
	for _, input := range inputs {
		_, err := f.ctrl.Submit(context.Background(), input)
		require.Error(t, err, "%+v", input)
		status := f.ctrl.Status()
		require.True(t, status.FormOpen, "%+v", input)
		require.Equal(t, 51.505, status.PendingLat)
		require.Equal(t, -0.09, status.PendingLng)
	}
	require.Empty(t, logged(t, f))
	require.Empty(t, f.surface.workoutMarkers())
	require.Len(t, f.notifier.alerts, len(inputs))
	require.Equal(t, "Inputs need to be positive numbers.", f.notifier.alerts[0])
	require.Equal(t, float64(len(inputs)), counterValue(t, f.registry, "mapty_session_validation_failures_total"))

	out, err := f.ctrl.Submit(context.Background(), sessiondto.FormInput{Type: "running", Distance: "5", Duration: "25", Cadence: "180"})
	require.NoError(t, err, "the user can correct the same form")
	require.Equal(t, 51.505, out.Workout.Lat)
	require.Len(t, logged(t, f), 1)
}

func TestNegativeElevationIsAccepted(t *testing.T) {
	t.Parallel()
	f := readyFixture(t)
	f.surface.click(46.0, 7.0)
	out, err := f.ctrl.Submit(context.Background(), sessiondto.FormInput{Type: "cycling", Distance: "30", Duration: "45", Elevation: "-800"})
	require.NoError(t, err)
	require.Equal(t, -800.0, out.Workout.ElevationGainM)
	require.Equal(t, 40.0, out.Workout.SpeedKmh)
}

func TestClicksWhileFormOpenAreIgnored(t *testing.T) {
	t.Parallel()
	f := readyFixture(t)
	f.surface.click(10, 10)
	f.surface.click(20, 20)
	err := f.ctrl.MapClicked(30, 30)
	require.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	require.Equal(t, 10.0, f.ctrl.Status().PendingLat)
	require.Equal(t, 1, f.form.focused)
}

func TestCancelDiscardsPendingClick(t *testing.T) {
	t.Parallel()
	f := readyFixture(t)
	f.surface.click(10, 10)
	require.NoError(t, f.ctrl.Cancel())
	status := f.ctrl.Status()
	require.True(t, status.Ready)
	require.Zero(t, status.PendingLat)
	require.False(t, f.form.visible)
	require.Empty(t, logged(t, f))
	require.Empty(t, f.surface.workoutMarkers())
	require.ErrorIs(t, f.ctrl.Cancel(), apperrors.ErrInvalidTransition)
}

func TestOperationsOutsideFormOpenAreRejected(t *testing.T) {
	t.Parallel()
	f := readyFixture(t)
	_, err := f.ctrl.Submit(context.Background(), sessiondto.FormInput{Type: "running", Distance: "5", Duration: "25", Cadence: "180"})
	require.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	require.ErrorIs(t, f.ctrl.ChangeType("cycling"), apperrors.ErrInvalidTransition)
	require.Empty(t, logged(t, f))
}

func TestLocationFailureNeverSubscribes(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &fakeSurface{locateErr: errors.New("permission denied")})
	err := f.ctrl.Run(context.Background())
	require.ErrorIs(t, err, apperrors.ErrLocationUnavailable)

	status := f.ctrl.Status()
	require.Equal(t, "idle", status.State)
	require.True(t, status.Failed)
	require.Zero(t, f.surface.subscribed)
	require.Empty(t, f.surface.centered)
	require.Equal(t, []string{"Could not access your location."}, f.notifier.alerts)
	require.Equal(t, 1.0, counterValue(t, f.registry, "mapty_session_location_failures_total"))

	f.surface.click(51.505, -0.09)
	require.Equal(t, "idle", f.ctrl.Status().State)
	require.False(t, f.form.visible)
	require.ErrorIs(t, f.ctrl.MapClicked(51.505, -0.09), apperrors.ErrInvalidTransition)

	_, err = f.ctrl.Start(context.Background())
	require.ErrorIs(t, err, apperrors.ErrInvalidTransition, "no retry after failure")
}

func TestLocatorReturningGarbageIsUnavailable(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &fakeSurface{lat: 123, lng: 0})
	require.ErrorIs(t, f.ctrl.Run(context.Background()), apperrors.ErrLocationUnavailable)
	require.Zero(t, f.surface.subscribed)
}

func TestFirstLocationResultWins(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &fakeSurface{lat: 1, lng: 2})
	lookup, err := f.ctrl.Start(context.Background())
	require.NoError(t, err)
	require.Equal(t, "awaiting-location", f.ctrl.Status().State)

	f.surface.click(5, 5)
	require.Equal(t, "awaiting-location", f.ctrl.Status().State, "no clicks before the map is ready")

	require.NoError(t, f.ctrl.Resolve(lookup()))
	err = f.ctrl.Resolve(sessiondto.LocationResult{Err: apperrors.ErrLocationUnavailable})
	require.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	require.True(t, f.ctrl.Status().Ready)
	require.Equal(t, 1, f.surface.subscribed)
}

func TestLookupHonoursContext(t *testing.T) {
	t.Parallel()
	surface := &blockingSurface{fakeSurface: &fakeSurface{}}
	workouts := workoutusecase.NewInteractor(workoutservice.NewWorkoutService(clock.SystemClock{}, &counterID{}, workoutadapter.NewMemoryWorkoutStore()))
	ctrl := usecase.NewController(workouts, surface, &fakeForm{}, &fakeNotifier{}, usecase.Options{LocateTimeout: 20 * time.Millisecond})

	err := ctrl.Run(context.Background())
	require.ErrorIs(t, err, apperrors.ErrLocationUnavailable)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.True(t, ctrl.Status().Failed)
	require.Zero(t, surface.subscribed)
}

type blockingSurface struct {
	*fakeSurface
}

func (b *blockingSurface) RequestCurrentLocation(ctx context.Context) (float64, float64, error) {
	<-ctx.Done()
	return 0, 0, ctx.Err()
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	var total float64
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, metric := range fam.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	return total
}
