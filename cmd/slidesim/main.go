package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/shardul-317/slidesim/internal/config"
	"github.com/shardul-317/slidesim/internal/export"
	"github.com/shardul-317/slidesim/internal/metrics"
	"github.com/shardul-317/slidesim/internal/physics"
	"github.com/shardul-317/slidesim/internal/sim"
	"github.com/shardul-317/slidesim/internal/storage"
	"github.com/shardul-317/slidesim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	// Surface parameters
	radius    float64
	semiMajor float64
	semiMinor float64
	amplitude float64
	frequency float64
	expr      string
	// Physics parameters
	gravity float64
	mass    float64
	mu      float64
	muExpr  string
	x0      float64
	v0      float64
	// Domain
	xmin float64
	xmax float64
	dx   float64
	// Config file and preset
	configFile string
	preset     string
	// Frame rate for live view
	frameRate int
	// SVG export
	svgOut    string
	svgWidth  int
	svgHeight int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "slidesim",
		Short: "sliding mass simulator for curved surfaces",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".slidesim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [family]",
		Short: "run a simulation to completion",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [family]",
		Short: "run a simulation with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot saved run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and samples to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSONRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render run trajectory to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets [family]",
		Short: "list available presets for a surface family",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for family: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&radius, "radius", 5.0, "circle radius")
	cmd.Flags().Float64Var(&semiMajor, "a", 3.0, "ellipse semi-major axis")
	cmd.Flags().Float64Var(&semiMinor, "b", 2.0, "ellipse semi-minor axis")
	cmd.Flags().Float64Var(&amplitude, "amplitude", 1.0, "track hill amplitude")
	cmd.Flags().Float64Var(&frequency, "frequency", 1.0, "track hill frequency")
	cmd.Flags().StringVar(&expr, "expr", "", "surface height expression y(x)")
	cmd.Flags().Float64Var(&gravity, "g", config.DefaultGravity, "gravitational acceleration")
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "mass")
	cmd.Flags().Float64Var(&mu, "mu", config.DefaultMu, "friction coefficient")
	cmd.Flags().StringVar(&muExpr, "mu-expr", "", "friction coefficient expression mu(x)")
	cmd.Flags().Float64Var(&x0, "x0", config.DefaultXMin, "initial position")
	cmd.Flags().Float64Var(&v0, "v0", config.DefaultV0, "initial speed")
	cmd.Flags().Float64Var(&xmin, "xmin", config.DefaultXMin, "domain lower bound")
	cmd.Flags().Float64Var(&xmax, "xmax", config.DefaultXMax, "domain upper bound")
	cmd.Flags().Float64Var(&dx, "dx", config.DefaultDx, "horizontal step size")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig assembles the run configuration: preset first, then config
// file, then explicit CLI flags, each layer overriding the previous one.
func buildConfig(cmd *cobra.Command, family string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(family, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(family))
		}
		copied := *p
		cfg = &copied
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	cfg.Surface.Family = family

	if cmd.Flags().Changed("radius") {
		cfg.Surface.Radius = radius
	}
	if cmd.Flags().Changed("a") {
		cfg.Surface.SemiMajor = semiMajor
	}
	if cmd.Flags().Changed("b") {
		cfg.Surface.SemiMinor = semiMinor
	}
	if cmd.Flags().Changed("amplitude") {
		cfg.Surface.Amplitude = amplitude
	}
	if cmd.Flags().Changed("frequency") {
		cfg.Surface.Frequency = frequency
	}
	if cmd.Flags().Changed("expr") {
		cfg.Surface.Expr = expr
	}
	if cmd.Flags().Changed("g") {
		cfg.Physics.Gravity = gravity
	}
	if cmd.Flags().Changed("mass") {
		cfg.Physics.Mass = mass
	}
	if cmd.Flags().Changed("mu") {
		cfg.Physics.Mu = mu
		cfg.Physics.MuExpr = ""
	}
	if cmd.Flags().Changed("mu-expr") {
		cfg.Physics.MuExpr = muExpr
	}
	if cmd.Flags().Changed("x0") {
		cfg.Physics.X0 = x0
	}
	if cmd.Flags().Changed("v0") {
		cfg.Physics.V0 = v0
	}
	if cmd.Flags().Changed("xmin") {
		cfg.Domain.XMin = xmin
	}
	if cmd.Flags().Changed("xmax") {
		cfg.Domain.XMax = xmax
	}
	if cmd.Flags().Changed("dx") {
		cfg.Domain.Dx = dx
	}

	return cfg, nil
}

func buildSimulator(cfg *config.Config) (*sim.Simulator, error) {
	surf, err := cfg.BuildSurface()
	if err != nil {
		return nil, err
	}
	params, err := cfg.BuildParams()
	if err != nil {
		return nil, err
	}
	dom, err := cfg.BuildDomain()
	if err != nil {
		return nil, err
	}

	s, err := sim.New(physics.NewStepper(surf, params), dom, cfg.Physics.X0, cfg.Physics.V0)
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.Defaults() {
		s.AddMetric(m)
	}
	return s, nil
}

func frictionLabel(cfg *config.Config) string {
	if cfg.Physics.MuExpr != "" {
		return "mu=" + cfg.Physics.MuExpr
	}
	return fmt.Sprintf("mu=%.2f", cfg.Physics.Mu)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	s, err := buildSimulator(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s simulation...\n", cfg.Surface.Family)
	start := time.Now()

	result, err := s.RunToCompletion(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(s.Stepper().Surface(), cfg.Domain.Dx, cfg.Domain.XMin, cfg.Domain.XMax,
		cfg.Physics.V0, frictionLabel(cfg), result)
	if err != nil {
		return err
	}

	sum := result.Summary
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", sum.Steps)
	fmt.Printf("final phase: %s\n", sum.FinalPhase)
	fmt.Printf("initial energy: %.6f J\n", sum.InitialEnergy)
	fmt.Printf("final energy: %.6f J\n", sum.FinalEnergy)
	fmt.Printf("friction work: %.6f J\n", sum.FrictionWork)
	if !math.IsNaN(sum.LiftoffX) {
		fmt.Printf("liftoff at x = %.4f m\n", sum.LiftoffX)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		if math.IsNaN(val) {
			continue
		}
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	s, err := buildSimulator(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(s, frameRate))
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
	fmt.Fprintln(w, "ID\tFAMILY\tTIME\tDOMAIN\tDX\tV0\tFRICTION\tPHASE\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t[%.2f, %.2f)\t%.4f\t%.2f\t%s\t%s\t%d\n",
			run.ID,
			run.Family,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.XMin,
			run.XMax,
			run.Dx,
			run.V0,
			run.Friction,
			run.Summary.FinalPhase,
			run.Summary.Steps,
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

	steps, err := st.LoadSteps(runID)
	if err != nil {
		return err
	}

	if len(steps) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("family: %s\n", meta.Family)
	fmt.Printf("samples: %d\n\n", len(steps))

	series := []struct {
		caption string
		pick    func(physics.StepResult) float64
	}{
		{"height y (m)", func(r physics.StepResult) float64 { return r.Y }},
		{"speed v (m/s)", func(r physics.StepResult) float64 { return r.V }},
		{"kinetic energy (J)", func(r physics.StepResult) float64 { return r.KE }},
		{"friction work (J)", func(r physics.StepResult) float64 { return r.W }},
		{"normal force (N)", func(r physics.StepResult) float64 { return r.Normal }},
	}

	for _, s := range series {
		data := make([]float64, len(steps))
		for i, r := range steps {
			data[i] = s.pick(r)
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

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
	steps, err := st.LoadSteps(args[0])
	if err != nil {
		return err
	}

	if len(steps) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"x", "v", "y", "ke", "pe", "w", "normal", "accel", "phase"}); err != nil {
		return err
	}
	for _, r := range steps {
		row := []string{
			fmtF(r.X), fmtF(r.V), fmtF(r.Y),
			fmtF(r.KE), fmtF(r.PE), fmtF(r.W),
			fmtF(r.Normal), fmtF(r.Accel), r.Phase.String(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func fmtF(v float64) string {
	return fmt.Sprintf("%.6f", v)
}

func exportJSONRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	steps, err := st.LoadSteps(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return storage.ExportJSON(enc, meta, steps)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	steps, err := st.LoadSteps(runID)
	if err != nil {
		return err
	}
	if len(steps) == 0 {
		return fmt.Errorf("no data to render")
	}

	surf, err := meta.BuildSurface()
	if err != nil {
		return err
	}

	svg := export.RunToSVG(surf, sim.Domain{XMin: meta.XMin, XMax: meta.XMax}, steps, svgWidth, svgHeight)

	out := svgOut
	if out == "" {
		out = runID + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}
