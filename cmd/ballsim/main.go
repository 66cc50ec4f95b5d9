package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/gui"
	"github.com/san-kum/ballsim/internal/metrics"
	"github.com/san-kum/ballsim/internal/sim"
	"github.com/san-kum/ballsim/internal/storage"
	"github.com/san-kum/ballsim/internal/viz"
)

var (
	dataDir     string
	configFile  string
	preset      string
	dt          float64
	duration    float64
	passes      int
	restitution float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ballsim",
		Short: "rigid-body balls bouncing in a spherical boundary",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the 3D window when no command given
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return gui.Run(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ballsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset scene")
	rootCmd.PersistentFlags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	rootCmd.PersistentFlags().Float64Var(&duration, "time", config.DefaultDuration, "duration (headless run)")
	rootCmd.PersistentFlags().IntVar(&passes, "passes", config.DefaultPasses, "relaxation passes per step")
	rootCmd.PersistentFlags().Float64Var(&restitution, "restitution", config.DefaultRestitution, "restitution factor")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation headlessly and record the result",
		RunE:  runSimulation,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live terminal visualization",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(cfg)
		},
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run simulation in a 3D window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return gui.Run(cfg)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run frames to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the step loop",
		RunE:  benchScene,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available scene presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves preset, then config file, then CLI flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
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

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("passes") {
		cfg.Passes = passes
	}
	if cmd.Flags().Changed("restitution") {
		cfg.Restitution = restitution
	}

	return cfg, nil
}

func sceneName() string {
	if preset != "" {
		return preset
	}
	return "demo"
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sc, err := cfg.BuildScene()
	if err != nil {
		return err
	}

	runner := sim.New(sc)
	for _, m := range metrics.Default() {
		runner.AddMetric(m)
	}

	fmt.Printf("running %s scene (%d bodies)...\n", sceneName(), sc.World().Len())
	start := time.Now()

	result, err := runner.Run(context.Background(), sim.Config{Dt: cfg.Dt, Duration: cfg.Duration})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(sceneName(), cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	for _, stepErr := range result.Errors {
		fmt.Printf("warning: %v\n", stepErr)
	}
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
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tDURATION\tDT\tBODIES\tPASSES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Bodies,
			run.Passes,
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

	frames, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 || len(frames[0]) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", len(frames))

	height := make([]float64, len(frames))
	energy := make([]float64, len(frames))
	for i, frame := range frames {
		height[i] = frame[0].Pos.Y
		for _, bs := range frame {
			energy[i] += 0.5 * bs.Vel.LengthSq()
		}
	}

	fmt.Println(asciigraph.Plot(height,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("body 0 height"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(energy,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("total kinetic energy (unit mass)"),
	))

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range frames[0] {
		header = append(header,
			fmt.Sprintf("px%d", i), fmt.Sprintf("py%d", i), fmt.Sprintf("pz%d", i),
			fmt.Sprintf("vx%d", i), fmt.Sprintf("vy%d", i), fmt.Sprintf("vz%d", i),
		)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, frame := range frames {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, bs := range frame {
			for _, v := range [6]float64{bs.Pos.X, bs.Pos.Y, bs.Pos.Z, bs.Vel.X, bs.Vel.Y, bs.Vel.Z} {
				row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, frames, times)
}

func benchScene(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	durations := []float64{1.0, 5.0, 10.0}
	dts := []float64{1e-4, 1e-3, 1e-2}

	fmt.Printf("benchmarking %s scene\n\n", sceneName())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, step := range dts {
			sc, err := cfg.BuildScene()
			if err != nil {
				return err
			}
			runner := sim.New(sc)

			start := time.Now()
			result, err := runner.Run(context.Background(), sim.Config{Dt: step, Duration: dur})
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
