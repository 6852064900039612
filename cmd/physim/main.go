package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/physim/internal/analysis"
	"github.com/san-kum/physim/internal/automation"
	"github.com/san-kum/physim/internal/config"
	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/experiment"
	"github.com/san-kum/physim/internal/export"
	"github.com/san-kum/physim/internal/metrics"
	"github.com/san-kum/physim/internal/optim"
	"github.com/san-kum/physim/internal/scene"
	"github.com/san-kum/physim/internal/storage"
	"github.com/san-kum/physim/internal/viz"
	"github.com/san-kum/physim/internal/vmath"
	"github.com/spf13/cobra"
)

var (
	dataDir   string
	verbosity int

	// scene selection
	configFile string
	preset     string
	dt         float64
	duration   float64
	seed       int64
	setParams  []string

	// run
	recordEvery int
	noSave      bool

	// plot, phase, analyze
	body   string
	field  string
	xField string
	yField string

	// svg
	outFile  string
	svgWidth int
	trace    string

	// bench, sweep, search, montecarlo
	numRuns      int
	sweepMin     float64
	sweepMax     float64
	sweepSteps   int
	metricName   string
	gridSpecs    []string
	perturbation float64
)

// main registers the physim commands and launches the interactive scene
// picker when no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "physim",
		Short: "2d rigid body physics sandbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(logr.Discard())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".physim", "data directory")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "log verbosity (repeat for more)")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a scene and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSceneFlags(runCmd)
	runCmd.Flags().IntVar(&recordEvery, "every", 1, "record a frame every n steps (0 disables frames)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "run a scene with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded quantity over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&body, "body", "", "body name (empty sums over dynamic bodies)")
	plotCmd.Flags().StringVar(&field, "field", "ke", "one of "+strings.Join(storage.Fields, ", "))

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "plot one recorded quantity against another",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&body, "body", "", "body name (empty sums over dynamic bodies)")
	phaseCmd.Flags().StringVar(&xField, "x", "x", "field on the x axis")
	phaseCmd.Flags().StringVar(&yField, "y", "vx", "field on the y axis")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a recorded quantity",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&body, "body", "", "body name (empty sums over dynamic bodies)")
	analyzeCmd.Flags().StringVar(&field, "field", "x", "one of "+strings.Join(storage.Fields, ", "))

	svgCmd := &cobra.Command{
		Use:   "svg [scene]",
		Short: "run a scene and draw its final state as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeSVG,
	}
	addSceneFlags(svgCmd)
	svgCmd.Flags().StringVarP(&outFile, "out", "o", "scene.svg", "output file")
	svgCmd.Flags().IntVar(&svgWidth, "width", 800, "image width in pixels")
	svgCmd.Flags().StringVar(&trace, "trace", "", "draw the path of this body instead")

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list available scenes and presets",
		RunE:  listScenes,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "list available presets for a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scene: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "run a scene several times in parallel with consecutive seeds",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScene,
	}
	addSceneFlags(benchCmd)
	benchCmd.Flags().IntVar(&numRuns, "runs", 4, "number of runs")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scene] [param]",
		Short: "sweep one scene parameter across a range",
		Args:  cobra.ExactArgs(2),
		RunE:  sweepParam,
	}
	addSceneFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.5, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1.0, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	searchCmd := &cobra.Command{
		Use:   "search [scene]",
		Short: "grid search scene parameters minimizing a metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  gridSearch,
	}
	addSceneFlags(searchCmd)
	searchCmd.Flags().StringArrayVar(&gridSpecs, "grid", nil, "name=v1,v2,... (repeatable)")
	searchCmd.Flags().StringVar(&metricName, "metric", "max_penetration", "metric to minimize")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [scene]",
		Short: "run trials with jittered start positions",
		Args:  cobra.MaximumNArgs(1),
		RunE:  monteCarlo,
	}
	addSceneFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&numRuns, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturbation, "jitter", 0.05, "maximum position offset per axis")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every step of a scenario file and store the results",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "replay a stored run and export its frames as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>.json, - for stdout)")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, phaseCmd, analyzeCmd, svgCmd, scenesCmd, presetsCmd,
		benchCmd, sweepCmd, searchCmd, monteCarloCmd, scenarioCmd, exportJSONCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scene file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	cmd.Flags().StringArrayVar(&setParams, "set", nil, "name=value parameter override (repeatable)")
}

func newLogger() logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, args)
		} else {
			fmt.Fprintln(os.Stderr, args)
		}
	}, funcr.Options{Verbosity: verbosity, LogTimestamp: verbosity > 0})
}

// resolveConfig picks the scene configuration from --config, --preset or the
// scene argument, then applies flags that were set explicitly.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	var cfg *config.Config
	var title string
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg, title = c, configFile
	case preset != "":
		if len(args) == 0 {
			return nil, "", fmt.Errorf("--preset needs a scene")
		}
		cfg = config.GetPreset(args[0], preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(args[0]))
		}
		title = args[0] + "/" + preset
	default:
		cfg = config.DefaultConfig()
		if len(args) > 0 {
			cfg.Scene = args[0]
		}
		title = cfg.Scene
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	for _, kv := range setParams {
		name, raw, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, "", fmt.Errorf("--set expects name=value, got %q", kv)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, "", fmt.Errorf("--set %s: %w", name, err)
		}
		if err := cfg.SetParam(name, v); err != nil {
			return nil, "", err
		}
	}
	if title == "" {
		title = "custom"
	}
	return cfg, title, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, title, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	log := newLogger()

	exp := experiment.New(cfg, log)
	exp.RecordEvery = recordEvery
	if recordEvery == 0 {
		exp.RecordEvery = -1
	}
	if err := exp.Setup(metrics.All()); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %s...\n", title)
	start := time.Now()
	result, err := exp.Run(ctx)
	if err != nil && !errors.Is(err, dynamo.ErrCanceled) {
		return err
	}
	if err != nil {
		fmt.Printf("canceled: %v\n", err)
	}
	elapsed := time.Since(start)

	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("steps: %d (%.0f steps/s)\n", result.StepsTaken, float64(result.StepsTaken)/elapsed.Seconds())
	fmt.Printf("bodies: %d active of %d, contacts: %d, particles: %d\n",
		result.Stats.ActiveBodies, result.Stats.Bodies, result.Stats.Manifolds, result.Stats.Particles)

	if sc := exp.Scene(); len(sc.Counters) > 0 {
		fmt.Println("\nsensors:")
		for _, name := range sortedKeys(sc.Counters) {
			fmt.Printf("  %s: %d\n", name, sc.Counters[name].Count)
		}
	}

	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	sceneName := cfg.Scene
	if sceneName == "" {
		sceneName = "custom"
	}
	runID, err := st.Save(storage.RunMetadata{
		Scene:    sceneName,
		Preset:   preset,
		Seed:     cfg.Seed,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
	}, exp.Scene().Config, result)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, title, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	return viz.Run(cfg, title, logr.Discard())
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tPRESET\tTIME\tDURATION\tDT\tSTEPS\tFRAMES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Scene,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
			run.Frames,
		)
	}

	return w.Flush()
}

func loadSeries(runID, body string, fields ...string) (*storage.RunMetadata, []float64, [][]float64, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, nil, err
	}

	var times []float64
	values := make([][]float64, len(fields))
	for i, f := range fields {
		t, v, err := storage.Series(samples, body, f)
		if err != nil {
			return nil, nil, nil, err
		}
		times, values[i] = t, v
	}
	if len(times) == 0 {
		return nil, nil, nil, fmt.Errorf("no data to plot")
	}
	return meta, times, values, nil
}

func describe(body, field string) string {
	if body == "" {
		return field + " (all bodies)"
	}
	return body + " " + field
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, times, values, err := loadSeries(args[0], body, field)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d over %.2fs\n\n", len(times), times[len(times)-1])

	graph := asciigraph.Plot(values[0],
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(describe(body, field)+" vs time"),
	)
	fmt.Println(graph)
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, _, values, err := loadSeries(args[0], body, xField, yField)
	if err != nil {
		return err
	}

	fmt.Printf("phase plot: %s\n", meta.ID)
	fmt.Printf("x-axis: %s, y-axis: %s\n\n", describe(body, xField), describe(body, yField))

	portrait := analysis.NewPortrait(xField, values[0], yField, values[1])
	fmt.Print(analysis.PortraitToASCII(portrait, 80, 24))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, times, values, err := loadSeries(args[0], body, field)
	if err != nil {
		return err
	}
	if len(times) < 2 {
		return fmt.Errorf("need at least two frames")
	}
	sampleDt := times[1] - times[0]

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("series: %s, %d samples every %.4fs\n\n", describe(body, field), len(times), sampleDt)

	ps := analysis.PowerSpectrum(values[0])
	plotData := ps[:max(len(ps)/4, 1)]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq, err := analysis.DominantFrequency(values[0], sampleDt)
	if err != nil {
		return err
	}
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	return nil
}

func writeSVG(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, newLogger())
	if err := exp.Setup(nil); err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	if len(result.Frames) == 0 {
		return fmt.Errorf("no frames recorded")
	}

	var svg string
	if trace != "" {
		var path []vmath.Vector2D
		for _, f := range result.Frames {
			for _, b := range f.Bodies {
				if b.Name == trace {
					path = append(path, b.Position)
				}
			}
		}
		if len(path) < 2 {
			return fmt.Errorf("body %q not found in frames", trace)
		}
		svg = export.TrajectoryToSVG(path, svgWidth, export.DefaultStyle())
	} else {
		last := result.Frames[len(result.Frames)-1]
		area := viz.Extent(result.Frames[0], 1)
		svg = export.FrameToSVG(last, area, svgWidth, export.DefaultStyle())
	}

	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func listScenes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENE\tPRESETS\tDESCRIPTION")
	for _, name := range scene.Default.List() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, strings.Join(config.ListPresets(name), ","), scene.Default.Describe(name))
	}
	return w.Flush()
}

func benchScene(cmd *cobra.Command, args []string) error {
	cfg, title, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, newLogger())
	simCfg := exp.SimConfig()
	simCfg.RecordEvery = 0
	ens := dynamo.NewEnsemble(exp.Factory(), metrics.All, numRuns, cfg.Seed)

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("benchmarking %s: %d runs of %.2fs at dt %.4fs\n\n", title, numRuns, cfg.Duration, cfg.Dt)
	start := time.Now()
	results, err := ens.Run(ctx, simCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	names := metrics.Names()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SEED\tSTEPS\t%s\n", strings.ToUpper(strings.Join(names, "\t")))
	totalSteps := 0
	for i, r := range results {
		totalSteps += r.StepsTaken
		row := make([]string, len(names))
		for j, name := range names {
			row[j] = fmt.Sprintf("%.4f", r.Metrics[name])
		}
		fmt.Fprintf(w, "%d\t%d\t%s\n", cfg.Seed+int64(i), r.StepsTaken, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nwall time: %v (%.0f steps/s across runs)\n", elapsed, float64(totalSteps)/elapsed.Seconds())
	return nil
}

func sweepParam(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd, args[:1])
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	sweep := &automation.ParameterSweep{
		Base:      cfg,
		ParamName: args[1],
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	}
	results, err := automation.RunSweep(ctx, sweep, newLogger())
	if err != nil {
		return err
	}

	names := metrics.Names()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\tSTABLE\n", strings.ToUpper(args[1]), strings.ToUpper(strings.Join(names, "\t")))
	for _, r := range results {
		row := make([]string, len(names))
		for j, name := range names {
			row[j] = fmt.Sprintf("%.4f", r.Metrics[name])
		}
		fmt.Fprintf(w, "%g\t%s\t%t\n", r.ParamValue, strings.Join(row, "\t"), !r.Unstable)
	}
	return w.Flush()
}

func parseGrid(specs []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(specs))
	ranges := make([][]float64, 0, len(specs))
	for _, spec := range specs {
		name, list, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, nil, fmt.Errorf("--grid expects name=v1,v2,..., got %q", spec)
		}
		var vals []float64
		for _, raw := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("--grid %s: %w", name, err)
			}
			vals = append(vals, v)
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}
	return names, ranges, nil
}

func gridSearch(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	names, ranges, err := parseGrid(gridSpecs)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("at least one --grid is required (parameters: %s)", strings.Join(config.ParamNames(), ", "))
	}

	ctx, cancel := signalContext()
	defer cancel()

	best, value, runs, err := optim.NewGridSearch(names, ranges, newLogger()).Search(ctx, cfg, metricName)
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("all %d runs diverged", runs)
	}

	fmt.Printf("evaluated %d runs\n", runs)
	fmt.Printf("best %s: %.6f\n", metricName, value)
	for _, name := range sortedKeys(best) {
		fmt.Printf("  %s = %g\n", name, best[name])
	}
	return nil
}

func monteCarlo(cmd *cobra.Command, args []string) error {
	cfg, title, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Base:         cfg,
		Perturbation: perturbation,
		NumTrials:    numRuns,
		Seed:         cfg.Seed,
	}, newLogger())
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	mean := 0.0
	for _, r := range results {
		mean += r.Stability
	}
	if len(results) > 0 {
		mean /= float64(len(results))
	}
	fmt.Printf("%s: %d trials, jitter %g\n", title, len(results), perturbation)
	fmt.Printf("stable: %d, diverged: %d\n", stable, unstable)
	fmt.Printf("mean stability: %.4f\n", mean)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("  %s\n", sc.Description)
	}
	results, runErr := automation.RunScenario(ctx, sc, newLogger())

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	for i, r := range results {
		runID, err := st.Save(storage.RunMetadata{
			Scene:    r.Name,
			Preset:   sc.Steps[i].Preset,
			Seed:     r.Config.Seed,
			Dt:       r.Config.Dt,
			Duration: r.Config.Duration,
		}, r.Config, r.Result)
		if err != nil {
			return err
		}
		fmt.Printf("  %s: %d steps, run id %s\n", r.Name, r.Result.StepsTaken, runID)
	}
	return runErr
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	cfg, err := st.LoadScene(runID)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, newLogger())
	if err := exp.Setup(metrics.All()); err != nil {
		return err
	}
	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	data := storage.NewExport(meta.Scene, cfg.Dt, cfg.Duration, result)

	switch outFile {
	case "-":
		return storage.WriteJSON(os.Stdout, data)
	case "":
		outFile = runID + ".json"
	}
	if err := storage.ExportJSON(outFile, data); err != nil {
		return err
	}
	fmt.Printf("exported %d frames to %s\n", len(data.Frames), outFile)
	return nil
}
