package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/okalex/rebound"
	"github.com/okalex/rebound/internal/config"
	"github.com/okalex/rebound/internal/sim"
	"github.com/okalex/rebound/internal/storage"
	"github.com/okalex/rebound/internal/store"
	"github.com/okalex/rebound/internal/viz"
)

var (
	dataDir         string
	tension         float64
	friction        float64
	origamiTension  float64
	origamiFriction float64
	bounciness      float64
	speed           float64
	from            float64
	to              float64
	velocity        float64
	timestepMillis  float64
	maxTicks        int
	clamping        bool
	// Config file
	configFile string
	// Preset name
	preset string
	// convert mode
	convertMode string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rebound",
		Short: "spring dynamics toolkit",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rebound", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a spring to rest",
		RunE:  runSpring,
	}
	addSpringFlags(runCmd)
	runCmd.Flags().IntVar(&maxTicks, "max-ticks", config.DefaultMaxTicks, "tick budget")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "convert designer values to spring constants",
		RunE:  convertValues,
	}
	convertCmd.Flags().StringVar(&convertMode, "mode", "origami", "conversion mode (origami, bouncy)")
	convertCmd.Flags().Float64Var(&origamiTension, "origami-tension", 40, "origami tension")
	convertCmd.Flags().Float64Var(&origamiFriction, "origami-friction", 7, "origami friction")
	convertCmd.Flags().Float64Var(&bounciness, "bounciness", 20, "bounciness")
	convertCmd.Flags().Float64Var(&speed, "speed", 12, "speed")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTENSION\tFRICTION\tFROM\tTO\tVELOCITY")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				sc := cfg.SpringConfig()
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
					name, sc.Tension, sc.Friction, cfg.From, cfg.To, cfg.Velocity)
			}
			return w.Flush()
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "drive a spring with live visualization",
		RunE:  runLive,
	}
	addSpringFlags(liveCmd)
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, convertCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSpringFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&tension, "tension", rebound.DefaultOrigamiConfig.Tension, "spring tension")
	cmd.Flags().Float64Var(&friction, "friction", rebound.DefaultOrigamiConfig.Friction, "spring friction")
	cmd.Flags().Float64Var(&origamiTension, "origami-tension", 0, "origami tension (overrides tension)")
	cmd.Flags().Float64Var(&origamiFriction, "origami-friction", 0, "origami friction (overrides friction)")
	cmd.Flags().Float64Var(&bounciness, "bounciness", 0, "bounciness (overrides origami values)")
	cmd.Flags().Float64Var(&speed, "speed", 0, "speed (overrides origami values)")
	cmd.Flags().Float64Var(&from, "from", 0, "start value")
	cmd.Flags().Float64Var(&to, "to", 1, "end value")
	cmd.Flags().Float64Var(&velocity, "velocity", 0, "initial velocity")
	cmd.Flags().Float64Var(&timestepMillis, "timestep", rebound.DefaultSimulationTimestepMillis, "timestep in milliseconds")
	cmd.Flags().BoolVar(&clamping, "clamp", false, "clamp overshoot past the end value")
}

// buildConfig resolves preset, config file, and flags, with flags winning
// over the file and the file winning over the preset.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
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

	if cmd.Flags().Changed("tension") {
		cfg.Tension = tension
	}
	if cmd.Flags().Changed("friction") {
		cfg.Friction = friction
	}
	if cmd.Flags().Changed("origami-tension") {
		cfg.OrigamiTension = origamiTension
	}
	if cmd.Flags().Changed("origami-friction") {
		cfg.OrigamiFriction = origamiFriction
	}
	if cmd.Flags().Changed("bounciness") {
		cfg.Bounciness = bounciness
	}
	if cmd.Flags().Changed("speed") {
		cfg.Speed = speed
	}
	if cmd.Flags().Changed("from") {
		cfg.From = from
	}
	if cmd.Flags().Changed("to") {
		cfg.To = to
	}
	if cmd.Flags().Changed("velocity") {
		cfg.Velocity = velocity
	}
	if cmd.Flags().Changed("timestep") {
		cfg.TimestepMillis = timestepMillis
	}
	if cmd.Flags().Changed("max-ticks") {
		cfg.MaxTicks = maxTicks
	}
	if cmd.Flags().Changed("clamp") {
		cfg.OvershootClamping = clamping
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSpring(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sc := cfg.SpringConfig()
	fmt.Printf("running spring (tension=%.2f friction=%.2f)...\n", sc.Tension, sc.Friction)
	start := time.Now()

	result, err := sim.Run(cfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	if !result.Settled {
		fmt.Printf("warning: spring did not settle within %d ticks\n", cfg.MaxTicks)
	}

	meta := storage.RunMetadata{
		Preset:            preset,
		Tension:           sc.Tension,
		Friction:          sc.Friction,
		From:              cfg.From,
		To:                cfg.To,
		Velocity:          cfg.Velocity,
		TimestepMillis:    cfg.TimestepMillis,
		OvershootClamping: cfg.OvershootClamping,
		Summary:           result.Summary,
	}
	runID, err := st.Save(meta, result.Samples)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", result.Summary.Ticks)
	if result.Summary.SettledAtTick != -1 {
		fmt.Printf("settled after: %.1fms\n", result.Summary.SettlingTimeMillis)
	}
	fmt.Printf("peak overshoot: %.6f\n", result.Summary.PeakOvershoot)
	fmt.Printf("final position: %.6f\n", result.Summary.FinalPosition)

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
	fmt.Fprintln(w, "ID\tTIME\tTENSION\tFRICTION\tFROM\tTO\tTICKS\tSETTLED")

	for _, run := range runs {
		settled := "no"
		if run.Summary.SettledAtTick != -1 {
			settled = fmt.Sprintf("%.0fms", run.Summary.SettlingTimeMillis)
		}
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%.1f\t%.2f\t%.2f\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Tension,
			run.Friction,
			run.From,
			run.To,
			run.Summary.Ticks,
			settled,
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

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("tension: %.2f friction: %.2f\n", meta.Tension, meta.Friction)
	fmt.Printf("samples: %d\n\n", len(samples))

	positions := make([]float64, len(samples))
	velocities := make([]float64, len(samples))
	for i, s := range samples {
		positions[i] = s.Position
		velocities[i] = s.Velocity
	}

	fmt.Println(asciigraph.Plot(positions,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("position"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(velocities,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("velocity"),
	))

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	return store.ExportJSONStdout(*meta, samples)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no data to export")
	}

	return store.ExportCSV(os.Stdout, samples)
}

func convertValues(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	switch convertMode {
	case "origami":
		cfg := rebound.FromOrigamiTensionAndFriction(origamiTension, origamiFriction)
		fmt.Fprintln(w, "INPUT\tVALUE")
		fmt.Fprintf(w, "origami tension\t%.4f\n", origamiTension)
		fmt.Fprintf(w, "origami friction\t%.4f\n", origamiFriction)
		fmt.Fprintln(w, "OUTPUT\tVALUE")
		fmt.Fprintf(w, "tension\t%.4f\n", cfg.Tension)
		fmt.Fprintf(w, "friction\t%.4f\n", cfg.Friction)
		fmt.Fprintln(w, "ROUND TRIP\tVALUE")
		fmt.Fprintf(w, "origami tension\t%.4f\n", rebound.OrigamiValueFromTension(cfg.Tension))
		fmt.Fprintf(w, "origami friction\t%.4f\n", rebound.OrigamiValueFromFriction(cfg.Friction))
	case "bouncy":
		cfg := rebound.FromBouncinessAndSpeed(bounciness, speed)
		fmt.Fprintln(w, "INPUT\tVALUE")
		fmt.Fprintf(w, "bounciness\t%.4f\n", bounciness)
		fmt.Fprintf(w, "speed\t%.4f\n", speed)
		fmt.Fprintln(w, "OUTPUT\tVALUE")
		fmt.Fprintf(w, "tension\t%.4f\n", cfg.Tension)
		fmt.Fprintf(w, "friction\t%.4f\n", cfg.Friction)
	default:
		return fmt.Errorf("unknown conversion mode: %s (available: origami, bouncy)", convertMode)
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	m := viz.NewModel(cfg)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
