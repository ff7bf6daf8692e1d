package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Session counts what happens inside one controller session. A nil
// *Session records nothing.
type Session struct {
	workouts   *prometheus.CounterVec
	validation prometheus.Counter
	location   prometheus.Counter
}

func NewSession(reg prometheus.Registerer) *Session {
	s := &Session{
		workouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mapty",
			Subsystem: "session",
			Name:      "workouts_logged_total",
			Help:      "Workouts created from a submitted form, by kind.",
		}, []string{"kind"}),
		validation: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mapty",
			Subsystem: "session",
			Name:      "validation_failures_total",
			Help:      "Form submissions rejected because of invalid input.",
		}),
		location: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mapty",
			Subsystem: "session",
			Name:      "location_failures_total",
			Help:      "Current-location lookups that failed.",
		}),
	}
	if reg != nil {
		reg.MustRegister(s.workouts, s.validation, s.location)
	}
	return s
}

func (s *Session) WorkoutLogged(kind string) {
	if s == nil {
		return
	}
	s.workouts.WithLabelValues(kind).Inc()
}

func (s *Session) ValidationFailed() {
	if s == nil {
		return
	}
	s.validation.Inc()
}

func (s *Session) LocationFailed() {
	if s == nil {
		return
	}
	s.location.Inc()
}

// Serve exposes gatherer on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown metrics server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve metrics: %w", err)
	}
}
