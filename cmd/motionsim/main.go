package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/motionsim/internal/analysis"
	"github.com/san-kum/motionsim/internal/automation"
	"github.com/san-kum/motionsim/internal/config"
	"github.com/san-kum/motionsim/internal/export"
	"github.com/san-kum/motionsim/internal/motion"
	"github.com/san-kum/motionsim/internal/optim"
	"github.com/san-kum/motionsim/internal/storage"
	"github.com/san-kum/motionsim/internal/viz"
)

var (
	dataDir  string
	dt       float64
	duration float64
	// profile parameters
	profileType string
	velocity    float64
	accel       float64
	distance    float64
	// controller parameters
	controllerType string
	kvp, kvi, kvd  float64
	kpp, kpi, kpd  float64
	stepForce      float64
	stepDelay      float64
	// plant parameters
	plantType string
	mass      float64
	damper    float64
	spring    float64
	// config file and preset
	configFile string
	preset     string
	// tune
	tuneMetric string
	gridSteps  int
	kvpMin     float64
	kvpMax     float64
	kviMin     float64
	kviMax     float64
	// sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	// output paths
	outFile     string
	jsonOutFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "motionsim",
		Short: "single-axis motion control simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".motionsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a closed-loop motion simulation",
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "object phase plane (position vs velocity)",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSONRun,
	}
	exportJSONCmd.Flags().StringVar(&jsonOutFile, "out", "", "write to a file instead of stdout")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render commanded vs measured position to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVar(&outFile, "out", "tracking.svg", "output file")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the tracking error",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark simulation throughput",
		RunE:  benchRun,
	}

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search velocity loop gains",
		RunE:  tuneGains,
	}
	addRunFlags(tuneCmd)
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "pos_tracking_rms", "metric to minimize")
	tuneCmd.Flags().IntVar(&gridSteps, "grid", 5, "grid points per gain")
	tuneCmd.Flags().Float64Var(&kvpMin, "kvp-min", 1.0, "kvp lower bound")
	tuneCmd.Flags().Float64Var(&kvpMax, "kvp-max", 50.0, "kvp upper bound")
	tuneCmd.Flags().Float64Var(&kviMin, "kvi-min", 0.0, "kvi lower bound")
	tuneCmd.Flags().Float64Var(&kviMax, "kvi-max", 5.0, "kvi upper bound")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter across a range",
		RunE:  sweepRun,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "kvp", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 1.0, "lower bound")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 50.0, "upper bound")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of sweep points")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, phaseCmd, exportCmd, exportCSVCmd,
		exportJSONCmd, svgCmd, analyzeCmd, liveCmd, benchCmd, tuneCmd, sweepCmd,
		batchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "control interval in seconds")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "run duration in seconds")
	cmd.Flags().StringVar(&profileType, "profile", "trapezoidal", "motion profile type")
	cmd.Flags().Float64Var(&velocity, "vel", config.DefaultVelocity, "profile max velocity")
	cmd.Flags().Float64Var(&accel, "accel", config.DefaultAccel, "profile acceleration")
	cmd.Flags().Float64Var(&distance, "dist", config.DefaultDistance, "move distance (signed)")
	cmd.Flags().StringVar(&controllerType, "controller", "pid", "controller type")
	cmd.Flags().Float64Var(&kvp, "kvp", config.DefaultKvp, "velocity loop P gain")
	cmd.Flags().Float64Var(&kvi, "kvi", 0, "velocity loop I gain")
	cmd.Flags().Float64Var(&kvd, "kvd", 0, "velocity loop D gain")
	cmd.Flags().Float64Var(&kpp, "kpp", 0, "position loop P gain")
	cmd.Flags().Float64Var(&kpi, "kpi", 0, "position loop I gain")
	cmd.Flags().Float64Var(&kpd, "kpd", 0, "position loop D gain")
	cmd.Flags().Float64Var(&stepForce, "force", 0, "open-loop force (step/impulse controller)")
	cmd.Flags().Float64Var(&stepDelay, "delay", 0, "open-loop onset delay in seconds")
	cmd.Flags().StringVar(&plantType, "plant", "point_mass", "plant type")
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "object mass")
	cmd.Flags().Float64Var(&damper, "damper", 0, "damper coefficient (mds plant)")
	cmd.Flags().Float64Var(&spring, "spring", 0, "spring coefficient (mds plant)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml or json)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig merges preset, config file and explicitly set flags, in that
// order of increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	set := func(name string, dst *float64, val float64) {
		if cmd.Flags().Changed(name) {
			*dst = val
		}
	}
	set("dt", &cfg.Time.Dt, dt)
	set("time", &cfg.Time.Duration, duration)
	set("vel", &cfg.Profile.MaxVelocity, velocity)
	set("accel", &cfg.Profile.Acceleration, accel)
	set("dist", &cfg.Profile.Distance, distance)
	set("kvp", &cfg.Controller.Kvp, kvp)
	set("kvi", &cfg.Controller.Kvi, kvi)
	set("kvd", &cfg.Controller.Kvd, kvd)
	set("kpp", &cfg.Controller.Kpp, kpp)
	set("kpi", &cfg.Controller.Kpi, kpi)
	set("kpd", &cfg.Controller.Kpd, kpd)
	set("force", &cfg.Controller.Force, stepForce)
	set("delay", &cfg.Controller.DelayS, stepDelay)
	set("mass", &cfg.Plant.Mass, mass)
	set("damper", &cfg.Plant.Damper, damper)
	set("spring", &cfg.Plant.Spring, spring)
	if cmd.Flags().Changed("profile") {
		cfg.Profile.Type = profileType
	}
	if cmd.Flags().Changed("controller") {
		cfg.Controller.Type = controllerType
	}
	if cmd.Flags().Changed("plant") {
		cfg.Plant.Type = plantType
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	flow, err := cfg.BuildFlow()
	if err != nil {
		return err
	}
	automation.AttachStandardMetrics(flow, cfg)

	fmt.Printf("running %s move: %.3g units in %.3gs steps of %.3gs\n",
		cfg.Profile.Type, cfg.Profile.Distance, cfg.Time.Duration, cfg.Time.Dt)
	start := time.Now()

	result, err := flow.Execute(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Profile.Type, cfg.Controller.Type, cfg.Plant.Type,
		cfg.Time.Dt, cfg.Time.Duration, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
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
	fmt.Fprintln(w, "ID\tPROFILE\tCTRL\tPLANT\tTIME\tDURATION\tDT\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Profile,
			run.Controller,
			run.Plant,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	records, err := st.LoadRecords(runID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("profile: %s, controller: %s, plant: %s\n", meta.Profile, meta.Controller, meta.Plant)
	fmt.Printf("samples: %d\n\n", len(records))

	fmt.Println(viz.PlotOverlay(records, viz.CmdPos, viz.ObjPos, "position: cmd vs object", 80, 10))
	fmt.Println()
	fmt.Println(viz.PlotOverlay(records, viz.CmdVel, viz.ObjVel, "velocity: cmd vs object", 80, 10))
	fmt.Println()
	fmt.Println(viz.Plot(records, viz.Force, "control force", 80, 10))

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	records, err := st.LoadRecords(runID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no data to plot")
	}

	xMin, xMax := records[0].ObjPos, records[0].ObjPos
	yMin, yMax := records[0].ObjVel, records[0].ObjVel
	for _, r := range records {
		if r.ObjPos < xMin {
			xMin = r.ObjPos
		}
		if r.ObjPos > xMax {
			xMax = r.ObjPos
		}
		if r.ObjVel < yMin {
			yMin = r.ObjVel
		}
		if r.ObjVel > yMax {
			yMax = r.ObjVel
		}
	}
	xRange := xMax - xMin
	yRange := yMax - yMin
	if xRange == 0 {
		xRange = 1
	}
	if yRange == 0 {
		yRange = 1
	}

	canvas := viz.NewCanvas(70, 20)
	subW, subH := 70*2, 20*4
	for _, r := range records {
		px := int(float64(subW-1) * (r.ObjPos - xMin) / xRange)
		py := subH - 1 - int(float64(subH-1)*(r.ObjVel-yMin)/yRange)
		canvas.Set(px, py)
	}

	fmt.Printf("phase plane: %s\n", meta.ID)
	fmt.Printf("x: position [%.3f, %.3f], y: velocity [%.3f, %.3f]\n\n", xMin, xMax, yMin, yMax)
	fmt.Print(canvas.String())

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	records, err := st.LoadRecords(args[0])
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time_s", "cmd_vel", "cmd_pos", "force", "obj_acc", "obj_vel", "obj_pos"}); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			strconv.FormatFloat(r.Time, 'f', 6, 64),
			strconv.FormatFloat(r.CmdVel, 'f', 6, 64),
			strconv.FormatFloat(r.CmdPos, 'f', 6, 64),
			strconv.FormatFloat(r.Force, 'f', 6, 64),
			strconv.FormatFloat(r.ObjAcc, 'f', 6, 64),
			strconv.FormatFloat(r.ObjVel, 'f', 6, 64),
			strconv.FormatFloat(r.ObjPos, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSONRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	records, err := st.LoadRecords(args[0])
	if err != nil {
		return err
	}
	if jsonOutFile != "" {
		if err := storage.ExportJSONFile(jsonOutFile, meta, records); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonOutFile)
		return nil
	}
	return storage.ExportJSON(os.Stdout, meta, records)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	records, err := st.LoadRecords(args[0])
	if err != nil {
		return err
	}
	if len(records) < 2 {
		return fmt.Errorf("not enough data to render")
	}

	svg := export.TrackingToSVG(records, 800, 400)
	if err := export.WriteFile(outFile, svg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	records, err := st.LoadRecords(runID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("profile: %s, controller: %s\n\n", meta.Profile, meta.Controller)

	data := analysis.PositionError(records)
	ps := analysis.PowerSpectrum(data)

	plotData := ps
	if len(plotData) > 128 {
		plotData = plotData[:128]
	}

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (position error)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(data, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	clock, err := cfg.BuildClock()
	if err != nil {
		return err
	}
	prof, err := cfg.BuildProfile()
	if err != nil {
		return err
	}
	ctrl, err := cfg.BuildController()
	if err != nil {
		return err
	}
	plant, err := cfg.BuildPlant()
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s / %s / %s", cfg.Profile.Type, cfg.Controller.Type, cfg.Plant.Type)
	m := viz.NewLiveModel(clock, prof, ctrl, plant, title)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func benchRun(cmd *cobra.Command, args []string) error {
	durations := []float64{1.0, 5.0, 10.0}
	dts := []float64{0.0001, 0.001, 0.01}

	fmt.Println("benchmarking closed-loop stepping")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, step := range dts {
			cfg := config.DefaultConfig()
			cfg.Time.Dt = step
			cfg.Time.Duration = dur

			flow, err := cfg.BuildFlow()
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := flow.Execute(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%v\t%.0f\n",
				dur, step, result.StepsTaken, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}

func tuneGains(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	gs := optim.NewGridSearch(
		[]string{"kvp", "kvi"},
		[][]float64{
			optim.Linspace(kvpMin, kvpMax, gridSteps),
			optim.Linspace(kviMin, kviMax, gridSteps),
		},
	)

	buildFlow := func(params map[string]float64) (*motion.Flow, error) {
		trial := *cfg
		for name, val := range params {
			if err := automation.ApplyParam(&trial, name, val); err != nil {
				return nil, err
			}
		}
		flow, err := trial.BuildFlow()
		if err != nil {
			return nil, err
		}
		automation.AttachStandardMetrics(flow, &trial)
		return flow, nil
	}

	fmt.Printf("searching %dx%d grid, minimizing %s\n", gridSteps, gridSteps, tuneMetric)
	start := time.Now()

	best, bestVal, err := gs.Search(context.Background(), buildFlow, tuneMetric)
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("no grid point produced a usable run")
	}

	fmt.Printf("done in %v\n\n", time.Since(start))
	fmt.Printf("best %s: %.6f\n", tuneMetric, bestVal)
	for name, val := range best {
		fmt.Printf("  %s: %.4f\n", name, val)
	}

	return nil
}

func sweepRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		Base:      cfg,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	}

	results, err := automation.RunSweep(context.Background(), sweep)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFINAL_POS\tFINAL_VEL\tPOS_RMS\tEFFORT\n", sweepParam)
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%.6f\t%.4f\n",
			r.ParamValue, r.FinalPos, r.FinalVel,
			r.Metrics["pos_tracking_rms"], r.Metrics["control_effort"])
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s (%d steps)\n", scenario.Name, len(scenario.Steps))
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	results, err := automation.RunScenario(context.Background(), scenario)
	if err != nil {
		return err
	}

	for _, r := range results {
		fmt.Printf("\nstep %d: %d records\n", r.Step, len(r.Result.Records))
		for name, val := range r.Result.Metrics {
			fmt.Printf("  %s: %.6f\n", name, val)
		}
		if r.SaveAs != "" {
			runID, err := st.Save(r.Config.Profile.Type, r.Config.Controller.Type,
				r.Config.Plant.Type, r.Config.Time.Dt, r.Config.Time.Duration, r.Result)
			if err != nil {
				return err
			}
			fmt.Printf("  saved %s as %s\n", r.SaveAs, runID)
		}
	}

	return nil
}
