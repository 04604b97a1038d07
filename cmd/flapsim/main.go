package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/flapsim/internal/analysis"
	"github.com/san-kum/flapsim/internal/config"
	"github.com/san-kum/flapsim/internal/diagnostics"
	"github.com/san-kum/flapsim/internal/driver"
	"github.com/san-kum/flapsim/internal/engine"
	"github.com/san-kum/flapsim/internal/geometry"
	"github.com/san-kum/flapsim/internal/kinematics"
	"github.com/san-kum/flapsim/internal/storage"
	"github.com/san-kum/flapsim/internal/viz"
)

var (
	dataDir string
	dt      float64
	dur     float64
	preset  string
	logFile string
	uref    float64
	// Analysis column selection
	column int
	xCol   int
	yCol   int
	// Geometry generation
	numPoints int
	chord     float64
	thickness float64
	outFile   string
	shapeKind string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "flapsim",
		Short: "prescribed-kinematics driver for flapping foils and undulating swimmers",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".flapsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [config]",
		Short: "run a simulation from a config file or preset",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	runCmd.Flags().Float64Var(&dur, "time", 0, "duration override")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().StringVar(&logFile, "log", "", "write timestep log to file")
	runCmd.Flags().Float64Var(&uref, "uref", 1.0, "reference velocity for Strouhal number")

	liveCmd := &cobra.Command{
		Use:   "live [config]",
		Short: "animate prescribed kinematics in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", 0.01, "animation timestep per frame")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot recorded velocity traces",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a velocity trace",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&column, "column", 1, "velocity component index to analyze")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of two velocity components",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xCol, "x-col", 1, "component index for x-axis")
	phaseCmd.Flags().IntVar(&yCol, "y-col", 2, "component index for y-axis")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the velocity trace to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	geometryCmd := &cobra.Command{
		Use:   "geometry [naca-code]",
		Short: "generate a body surface vertex file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  generateGeometry,
	}
	geometryCmd.Flags().IntVar(&numPoints, "points", 64, "surface points per side")
	geometryCmd.Flags().Float64Var(&chord, "chord", 1.0, "chord length")
	geometryCmd.Flags().Float64Var(&thickness, "thickness", 0.12, "thickness ratio (ellipse)")
	geometryCmd.Flags().StringVar(&outFile, "out", "", "output vertex file (default stdout)")
	geometryCmd.Flags().StringVar(&shapeKind, "shape", "naca", "shape kind: naca or ellipse")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresetConfigs,
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, phaseCmd, exportCmd, exportCSVCmd, geometryCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the run configuration from the preset flag or a
// config file argument, then applies CLI overrides.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	var cfg *config.Config
	label := "run"

	switch {
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		label = preset
	case len(args) == 1:
		var err error
		cfg, err = config.Load(args[0])
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		label = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	default:
		return nil, "", fmt.Errorf("either a config file or --preset is required")
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = dur
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, label, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, label, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	reg, err := cfg.BuildRegistry()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	run, err := st.NewRun(label)
	if err != nil {
		return err
	}

	recorder := diagnostics.NewRecorder(reg)
	recorder.AddMetric(diagnostics.NewPeakHeaveRate())
	recorder.AddMetric(diagnostics.NewPeakPitchRate())
	reg.ForEach(func(m kinematics.Model) error {
		if foil, ok := m.(*kinematics.FlappingFoil); ok {
			p := foil.Params()
			recorder.AddMetric(diagnostics.NewStrouhal(foil.Name(), p.Frequency, p.HeaveAmplitude, uref))
		}
		return nil
	})

	opts := driver.Options{Viz: run, Restart: run, Diagnostics: recorder}
	if logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			return err
		}
		defer f.Close()
		opts.Log = f
	}

	hier := engine.NewPlayback(cfg.Dt, cfg.Duration, cfg.MaxSteps)
	drv := driver.New(hier, reg, cfg.Plan(), opts)

	fmt.Printf("running %s (%d bodies, dt=%g, duration=%g)...\n", label, reg.Len(), cfg.Dt, cfg.Duration)
	start := time.Now()

	result, err := drv.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Bodies:    recorder.BodyNames(),
		Advances:  result.Advances,
		FinalTime: result.FinalTime,
		Metrics:   recorder.MetricValues(),
	}
	if err := run.Finalize(meta, recorder.Samples(), recorder.BodyNames()); err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", run.ID())
	fmt.Printf("advances: %d (final t=%.6f)\n", result.Advances, result.FinalTime)
	fmt.Printf("dumps: %d viz, %d restart, %d diagnostic\n",
		result.VizDumps, result.RestartDumps, result.DiagnosticDumps)
	fmt.Println("\nmetrics:")
	for name, val := range meta.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, label, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	reg, err := cfg.BuildRegistry()
	if err != nil {
		return err
	}

	m := viz.NewModel(reg, dt, label)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
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
	fmt.Fprintln(w, "ID\tTIME\tBODIES\tDURATION\tDT\tADVANCES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			strings.Join(run.Bodies, ","),
			run.Duration,
			run.Dt,
			run.Advances,
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

	header, _, rows, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("bodies: %s\n", strings.Join(meta.Bodies, ", "))
	fmt.Printf("samples: %d\n\n", len(rows))

	numVars := len(rows[0])
	maxPlots := 6
	if numVars > maxPlots {
		numVars = maxPlots
	}

	for varIdx := 0; varIdx < numVars; varIdx++ {
		data := make([]float64, len(rows))
		for i := range rows {
			if varIdx < len(rows[i]) {
				data[i] = rows[i][varIdx]
			}
		}

		caption := fmt.Sprintf("component %d vs time", varIdx)
		if varIdx+2 < len(header) {
			caption = header[varIdx+2] + " vs time"
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	header, times, rows, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data")
	}
	if column >= len(rows[0]) {
		return fmt.Errorf("column %d out of range (trace has %d components)", column, len(rows[0]))
	}

	data := make([]float64, len(rows))
	for i := range rows {
		data[i] = rows[i][column]
	}

	name := fmt.Sprintf("component %d", column)
	if column+2 < len(header) {
		name = header[column+2]
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("signal: %s\n\n", name)

	spectrum := analysis.NewSpectrum(times, data)
	if len(spectrum.Power) == 0 {
		return fmt.Errorf("trace too short for spectral analysis")
	}

	plotData := spectrum.Power
	if len(plotData) > 80 {
		plotData = plotData[:80]
	}

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum ("+name+")"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := spectrum.DominantFrequency()
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	header, _, rows, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}
	if xCol >= len(rows[0]) || yCol >= len(rows[0]) {
		return fmt.Errorf("trace has only %d components", len(rows[0]))
	}

	xs := make([]float64, len(rows))
	ys := make([]float64, len(rows))
	for i := range rows {
		xs[i] = rows[i][xCol]
		ys[i] = rows[i][yCol]
	}

	xName, yName := fmt.Sprintf("component %d", xCol), fmt.Sprintf("component %d", yCol)
	if xCol+2 < len(header) {
		xName = header[xCol+2]
	}
	if yCol+2 < len(header) {
		yName = header[yCol+2]
	}

	fmt.Printf("phase portrait: %s\n", meta.ID)
	fmt.Printf("x-axis: %s, y-axis: %s\n\n", xName, yName)
	fmt.Print(analysis.NewPortrait(xs, ys).ToASCII(70, 20))

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
	header, times, rows, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(header[1:]); err != nil {
		return err
	}
	for i := range rows {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range rows[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func generateGeometry(cmd *cobra.Command, args []string) error {
	var xs, ys []float64
	var err error

	switch shapeKind {
	case "naca":
		code := "0012"
		if len(args) == 1 {
			code = args[0]
		}
		xs, ys, err = geometry.NACA4(code, numPoints, chord)
		if err != nil {
			return err
		}
	case "ellipse":
		xs, ys = geometry.Ellipse(thickness, numPoints, chord)
	default:
		return fmt.Errorf("unknown shape kind: %s", shapeKind)
	}

	if outFile != "" {
		if err := geometry.SaveVertexFile(outFile, xs, ys); err != nil {
			return err
		}
		fmt.Printf("wrote %d vertices to %s\n", len(xs), outFile)
		return nil
	}
	return geometry.WriteVertex(os.Stdout, xs, ys)
}

func listPresetConfigs(cmd *cobra.Command, args []string) error {
	names := config.ListPresets()
	if len(names) == 0 {
		fmt.Println("no presets available")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tDURATION\tDT")
	for _, name := range names {
		cfg := config.GetPreset(name)
		bodies := make([]string, 0, len(cfg.Bodies))
		for _, b := range cfg.Bodies {
			bodies = append(bodies, b.Name)
		}
		fmt.Fprintf(w, "%s\t%s\t%.1fs\t%.4fs\n", name, strings.Join(bodies, ","), cfg.Duration, cfg.Dt)
	}
	return w.Flush()
}
