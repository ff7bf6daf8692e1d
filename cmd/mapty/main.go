package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"mapty/internal/bootstrap"
	sessiondto "mapty/internal/modules/session/dto"
	"mapty/internal/platform/config"
	apperrors "mapty/internal/platform/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd(os.Getenv).ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

type rootFlags struct {
	configPath  string
	lat         float64
	lng         float64
	zoom        int
	store       string
	logLevel    string
	logFile     string
	metricsAddr string
}

func newRootCmd(getenv func(string) string) *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:           "mapty",
		Short:         "Log running and cycling workouts on a map",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	pf.Float64Var(&flags.lat, "lat", 0, "latitude reported as the current location")
	pf.Float64Var(&flags.lng, "lng", 0, "longitude reported as the current location")
	pf.IntVar(&flags.zoom, "zoom", 0, "initial map zoom (0-18)")
	pf.StringVar(&flags.store, "store", "", "workout store: memory|sqlite")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: trace|debug|info|warn|error|off")
	pf.StringVar(&flags.logFile, "log-file", "", "write logs to this file")
	pf.StringVar(&flags.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")

	load := func(cmd *cobra.Command) (config.Config, error) {
		return loadConfig(cmd, flags, getenv)
	}

	root.AddCommand(newTUICmd(load))
	root.AddCommand(newLogCmd(load))
	root.AddCommand(newConfigCmd(load))
	return root
}

// loadConfig layers the config file, then MAPTY_LAT/MAPTY_LNG, then flags.
func loadConfig(cmd *cobra.Command, flags rootFlags, getenv func(string) string) (config.Config, error) {
	path, explicit := flags.configPath, flags.configPath != ""
	if !explicit {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path, explicit)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return config.Config{}, err
	}

	changed := cmd.Flags().Changed
	switch {
	case changed("lat") && changed("lng"):
		cfg.Home = &config.Location{Lat: flags.lat, Lng: flags.lng}
	case changed("lat") || changed("lng"):
		return config.Config{}, fmt.Errorf("%w: --lat and --lng must be given together", apperrors.ErrInvalidInput)
	}
	if changed("zoom") {
		cfg.Zoom = flags.zoom
	}
	if changed("store") {
		cfg.Store = flags.store
	}
	if changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if changed("log-file") {
		cfg.LogFile = flags.logFile
	}
	if changed("metrics-addr") {
		cfg.MetricsAddr = flags.metricsAddr
	}
	return cfg, cfg.Validate()
}

type configLoader func(cmd *cobra.Command) (config.Config, error)

func newTUICmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive map",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			app, err := bootstrap.New(cmd.Context(), cfg, bootstrap.Options{LogOutput: io.Discard})
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(cmd.Context(), app)
		},
	}
}

func newLogCmd(load configLoader) *cobra.Command {
	var at string
	var input sessiondto.FormInput

	logCmd := &cobra.Command{
		Use:       "log <running|cycling>",
		Short:     "Log one workout without the map",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"running", "cycling"},
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, lng, err := parseAt(at)
			if err != nil {
				return err
			}
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			// Without a configured home, the workout's own point stands in for
			// the current location.
			if cfg.Home == nil {
				cfg.Home = &config.Location{Lat: lat, Lng: lng}
			}
			app, err := bootstrap.New(cmd.Context(), cfg, bootstrap.Options{Headless: true, LogOutput: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			defer app.Close()

			input.Type = args[0]
			out, err := app.SessionCLI.LogWorkout(cmd.Context(), lat, lng, input)
			if err != nil {
				return err
			}
			w := out.Workout
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) at %s,%s\n", w.Description, w.ID, formatFloat(w.Lat), formatFloat(w.Lng))
			switch w.Kind {
			case "running":
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s km in %s min  pace %.1f min/km  cadence %s spm\n",
					formatFloat(w.DistanceKm), formatFloat(w.DurationMin), w.PaceMinPerKm, formatFloat(w.CadenceSPM))
			case "cycling":
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s km in %s min  speed %.1f km/h  elevation %s m\n",
					formatFloat(w.DistanceKm), formatFloat(w.DurationMin), w.SpeedKmh, formatFloat(w.ElevationGainM))
			}
			return nil
		},
	}
	f := logCmd.Flags()
	f.StringVar(&at, "at", "", "workout position as lat,lng")
	f.StringVar(&input.Distance, "distance", "", "distance in km")
	f.StringVar(&input.Duration, "duration", "", "duration in minutes")
	f.StringVar(&input.Cadence, "cadence", "", "running cadence in steps per minute")
	f.StringVar(&input.Elevation, "elevation", "", "cycling elevation gain in meters")
	_ = logCmd.MarkFlagRequired("at")
	return logCmd
}

func newConfigCmd(load configLoader) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Inspect configuration"}
	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			out, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	})
	return cfgCmd
}

func parseAt(raw string) (float64, float64, error) {
	latRaw, lngRaw, ok := strings.Cut(raw, ",")
	if !ok {
		return 0, 0, fmt.Errorf("%w: --at must be lat,lng, got %q", apperrors.ErrInvalidInput, raw)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: latitude %q", apperrors.ErrInvalidInput, latRaw)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngRaw), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: longitude %q", apperrors.ErrInvalidInput, lngRaw)
	}
	return lat, lng, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
