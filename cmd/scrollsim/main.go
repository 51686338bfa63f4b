package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/scrollsim/internal/analysis"
	"github.com/san-kum/scrollsim/internal/config"
	"github.com/san-kum/scrollsim/internal/gesture"
	"github.com/san-kum/scrollsim/internal/integrators"
	"github.com/san-kum/scrollsim/internal/interpolator"
	"github.com/san-kum/scrollsim/internal/logging"
	"github.com/san-kum/scrollsim/internal/metrics"
	"github.com/san-kum/scrollsim/internal/scrollview"
	"github.com/san-kum/scrollsim/internal/source"
	"github.com/san-kum/scrollsim/internal/storage"
	"github.com/san-kum/scrollsim/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	dataDir       string
	configFile    string
	logLevel      string
	sourceName    string
	frameRate     int
	physicsPreset string
	integrator    string
	axisName      string
	outFile       string
	noSave        bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "scrollsim",
		Short:         "scroll physics lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(os.Stderr)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".scrollsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (error, warn, info, debug)")

	runCmd := &cobra.Command{
		Use:   "run [script.yaml|preset]",
		Short: "replay a gesture script and save the run",
		Args:  cobra.ExactArgs(1),
		RunE:  runGesture,
	}
	addPhysicsFlags(runCmd)
	runCmd.Flags().StringVar(&sourceName, "source", "", "override the script's input source")
	runCmd.Flags().IntVar(&frameRate, "fps", 0, "override the frame rate")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "print metrics without saving the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot position and velocity of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&axisName, "axis", "y", "axis to plot (x, y)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOutput(func(w io.Writer) error {
				return storage.New(dataDir).ExportMetadata(w, args[0])
			})
		},
	}
	exportCmd.Flags().StringVar(&outFile, "out", "", "write to file instead of stdout")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOutput(func(w io.Writer) error {
				return storage.New(dataDir).CopyFrames(w, args[0])
			})
		},
	}
	exportCSVCmd.Flags().StringVar(&outFile, "out", "", "write to file instead of stdout")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and frames to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOutput(func(w io.Writer) error {
				return storage.New(dataDir).ExportJSON(w, args[0])
			})
		},
	}
	exportJSONCmd.Flags().StringVar(&outFile, "out", "", "write to file instead of stdout")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a position-over-time plot as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&axisName, "axis", "y", "axis to draw (x, y)")
	exportSVGCmd.Flags().StringVar(&outFile, "out", "", "write to file instead of stdout")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "judder spectrum of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&axisName, "axis", "y", "axis to analyze (x, y)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list gesture presets, physics presets, integrators and sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "gestures:   %s\n", strings.Join(gesture.ListPresets(), ", "))
			fmt.Fprintf(w, "physics:    %s\n", strings.Join(config.ListPresets(), ", "))
			fmt.Fprintf(w, "integrator: %s\n", strings.Join(integrators.Names(), ", "))
			names := make([]string, 0)
			for _, s := range source.All() {
				names = append(names, s.String())
			}
			fmt.Fprintf(w, "sources:    %s\n", strings.Join(names, ", "))
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the default config",
		RunE:  printConfig,
	}
	configCmd.Flags().StringVar(&outFile, "out", "", "write to file instead of stdout")

	compareCmd := &cobra.Command{
		Use:   "compare [script.yaml|preset] [source...]",
		Short: "replay one gesture across input sources",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareSources,
	}
	addPhysicsFlags(compareCmd)
	compareCmd.Flags().IntVar(&frameRate, "fps", 0, "override the frame rate")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive scroll playground",
		RunE:  runLive,
	}
	addPhysicsFlags(liveCmd)
	liveCmd.Flags().StringVar(&sourceName, "source", "", "initial input source")
	liveCmd.Flags().IntVar(&frameRate, "fps", 0, "frame rate")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, analyzeCmd, presetsCmd, configCmd, compareCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addPhysicsFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&physicsPreset, "physics-preset", "", "physics preset applied on top of the config")
	cmd.Flags().StringVar(&integrator, "integrator", "trapezoid", "velocity integrator")
}

func setupLogging(w io.Writer) error {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logging.Setup(level, w)
	return nil
}

// loadConfig resolves the config file, the physics preset and the integrator
// flag.
func loadConfig(cmd *cobra.Command) (*config.Config, integrators.Integrator, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
		if cfg.Logging.Level != "" && !cmd.Flags().Changed("log-level") {
			logLevel = cfg.Logging.Level
			if err := setupLogging(os.Stderr); err != nil {
				return nil, nil, err
			}
		}
	}

	if physicsPreset != "" {
		apply, ok := config.Presets[physicsPreset]
		if !ok {
			return nil, nil, fmt.Errorf("unknown physics preset: %s (available: %v)", physicsPreset, config.ListPresets())
		}
		apply(&cfg.Physics)
		if err := cfg.Physics.Validate(); err != nil {
			return nil, nil, fmt.Errorf("physics preset %s: %w", physicsPreset, err)
		}
	}

	if frameRate > 0 {
		cfg.Sim.FrameRate = frameRate
	}

	integ, err := integrators.Get(integrator)
	if err != nil {
		return nil, nil, err
	}
	return cfg, integ, nil
}

// staticOptions fixes the tunables of a run to cfg.Physics.
func staticOptions(cfg *config.Config, integ integrators.Integrator) []interpolator.Option {
	physics := config.Static(cfg.Physics)
	return []interpolator.Option{
		interpolator.WithTunables(&physics),
		interpolator.WithIntegrator(integ),
	}
}

func loadScript(arg string) (*gesture.Script, error) {
	if _, err := os.Stat(arg); err == nil {
		return gesture.LoadScript(arg)
	}
	s, ok := gesture.GetPreset(arg)
	if !ok {
		return nil, fmt.Errorf("no script file or preset named %s (presets: %v)", arg, gesture.ListPresets())
	}
	return s, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func presetLabel() string {
	if physicsPreset == "" {
		return "default"
	}
	return physicsPreset
}

func runGesture(cmd *cobra.Command, args []string) error {
	cfg, integ, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	script, err := loadScript(args[0])
	if err != nil {
		return err
	}
	if sourceName != "" {
		src, err := source.Parse(sourceName)
		if err != nil {
			return err
		}
		script.Source = src
	}
	if err := script.DefaultSource(cfg.Sim.Source); err != nil {
		return err
	}
	if frameRate > 0 {
		script.FrameRate = frameRate
	}

	runner := gesture.NewRunner(cfg.Sim, staticOptions(cfg, integ)...)
	geometry := runnerGeometry(cfg, script)
	for _, m := range metrics.Default(geometry) {
		runner.AddMetric(m)
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %s (%s)...\n", script.Name, script.Source)
	start := time.Now()

	result, err := runner.Run(ctx, script)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	if !noSave {
		runID, err := storage.New(dataDir).Save(result, integrator, presetLabel())
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	fmt.Printf("frames: %d\n", len(result.Frames))

	if n := len(result.Frames); n > 0 {
		last := result.Frames[n-1]
		fmt.Printf("final position: %s\n", last.Position)
		fmt.Printf("animating: %v\n", last.Animating)
	}

	fmt.Println("\nmetrics:")
	printMetrics(os.Stdout, result.Metrics)
	return nil
}

func runnerGeometry(cfg *config.Config, s *gesture.Script) gesture.Geometry {
	if s.Geometry != nil {
		return *s.Geometry
	}
	return gesture.Geometry{
		ContentHeight:  cfg.Sim.ContentHeight,
		ContentWidth:   cfg.Sim.ContentWidth,
		ViewportHeight: cfg.Sim.ViewportHeight,
		ViewportWidth:  cfg.Sim.ViewportWidth,
	}
}

func printMetrics(w io.Writer, values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-16s %.6f\n", name+":", values[name])
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCRIPT\tSOURCE\tTIME\tDURATION\tFPS\tINTEG\tPHYSICS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0fms\t%d\t%s\t%s\n",
			run.ID,
			run.Script,
			run.Source,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.DurationMs,
			run.FrameRate,
			run.Integrator,
			run.PhysicsPreset,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	axis, err := scrollview.ParseAxis(axisName)
	if err != nil {
		return err
	}

	meta, result, err := storage.New(dataDir).LoadResult(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("script: %s (%s)\n", meta.Script, meta.Source)
	fmt.Printf("frames: %d\n\n", len(result.Frames))

	graph, err := viz.PlotRun(result, axis, viz.DefaultHeight, viz.DefaultWidth)
	if err != nil {
		return err
	}
	fmt.Println(graph)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	axis, err := scrollview.ParseAxis(axisName)
	if err != nil {
		return err
	}

	_, result, err := storage.New(dataDir).LoadResult(args[0])
	if err != nil {
		return err
	}

	svg, err := viz.TrajectorySVG(result, axis, 800, 400)
	if err != nil {
		return err
	}
	return withOutput(func(w io.Writer) error {
		_, err := io.WriteString(w, svg)
		return err
	})
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	axis, err := scrollview.ParseAxis(axisName)
	if err != nil {
		return err
	}

	meta, result, err := storage.New(dataDir).LoadResult(args[0])
	if err != nil {
		return err
	}

	positions, err := result.Series(axis.String())
	if err != nil {
		return err
	}

	spectrum, err := analysis.JudderSpectrum(positions, meta.FrameRate)
	if err != nil {
		return err
	}

	fmt.Printf("judder analysis: %s\n", meta.ID)
	fmt.Printf("script: %s (%s), axis %s\n\n", meta.Script, meta.Source, axis)

	fmt.Println(viz.Plot(spectrum.Magnitudes(), "displacement spectrum (0 to nyquist)", 15, viz.DefaultWidth))
	fmt.Println()

	dom := spectrum.Dominant()
	fmt.Printf("dominant frequency: %.2f hz (magnitude %.4f)\n", dom.FreqHz, dom.Magnitude)
	fmt.Printf("high band ratio: %.3f\n", spectrum.HighBandRatio())
	return nil
}

func printConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if outFile != "" {
		if err := config.Save(outFile, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
		return nil
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}

func compareSources(cmd *cobra.Command, args []string) error {
	cfg, integ, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	base, err := loadScript(args[0])
	if err != nil {
		return err
	}
	if frameRate > 0 {
		base.FrameRate = frameRate
	}

	sources := source.All()
	if len(args) > 1 {
		sources = sources[:0:0]
		for _, name := range args[1:] {
			src, err := source.Parse(name)
			if err != nil {
				return err
			}
			sources = append(sources, src)
		}
	}

	geometry := runnerGeometry(cfg, base)
	jobs := make([]gesture.Job, 0, len(sources))
	for _, src := range sources {
		script := *base
		script.Source = src

		runner := gesture.NewRunner(cfg.Sim, staticOptions(cfg, integ)...)
		for _, m := range metrics.Default(geometry) {
			runner.AddMetric(m)
		}
		jobs = append(jobs, gesture.Job{Name: src.String(), Runner: runner, Script: &script})
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, runErr := gesture.RunAll(ctx, jobs)

	fmt.Printf("comparing sources for %s (%.0fms)\n\n", base.Name, base.DurationMs)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tFINAL_Y\tTRAVEL\tMAX_SPEED\tPEAK_OVER\tSETTLE_MS")
	for i, job := range jobs {
		r := results[i]
		if r == nil || r.Partial || len(r.Frames) == 0 {
			fmt.Fprintf(w, "%s\tfailed\n", job.Name)
			continue
		}
		last := r.Frames[len(r.Frames)-1]
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.4f\t%.2f\t%.0f\n",
			job.Name,
			last.Position.Y,
			r.Metrics["travel"],
			r.Metrics["max_speed"],
			r.Metrics["peak_overscroll"],
			r.Metrics["settle_ms"],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	return runErr
}

func runLive(cmd *cobra.Command, args []string) error {
	// stat before loading so an edit made in between is picked up by the
	// first watch tick
	var configMod time.Time
	if configFile != "" {
		if info, err := os.Stat(configFile); err == nil {
			configMod = info.ModTime()
		}
	}

	cfg, integ, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if sourceName != "" {
		cfg.Sim.Source = sourceName
	}

	// log to a file so the terminal stays readable
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	logPath := filepath.Join(dataDir, "live.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer logFile.Close()
	if err := setupLogging(logFile); err != nil {
		return err
	}

	var overlays []func(*config.Physics)
	if physicsPreset != "" {
		overlays = append(overlays, config.Presets[physicsPreset])
	}
	store := config.NewStore(cfg.Physics, overlays...)

	ctx, cancel := signalContext()
	defer cancel()

	if configFile != "" {
		go func() {
			logger := logging.Logger().With(slog.String("component", "config"))
			if err := store.Watch(ctx, configFile, configMod, 500*time.Millisecond, logger); err != nil && ctx.Err() == nil {
				logger.Error("config watch stopped", "error", err)
			}
		}()
	}

	m, err := viz.NewPlayground(cfg.Sim, store, interpolator.WithIntegrator(integ))
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func withOutput(fn func(w io.Writer) error) error {
	if outFile == "" {
		return fn(os.Stdout)
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outFile)
	return nil
}
