package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/threebody/internal/analysis"
	"github.com/san-kum/threebody/internal/config"
	"github.com/san-kum/threebody/internal/engine"
	"github.com/san-kum/threebody/internal/integrators"
	"github.com/san-kum/threebody/internal/runner"
	"github.com/san-kum/threebody/internal/scenario"
	"github.com/san-kum/threebody/internal/viz"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	configFile   string
	scenarioFile string
	dt           float64
	integrator   string
	ticks        int
	plot         bool
	every        int
	perturbation float64
	frameRate    int
	speed        int
	theme        string
)

// main registers the threebody commands and exits 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "threebody",
		Short:        "newtonian n-body gravity simulator",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario headless and print the final state",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	runCmd.Flags().StringVar(&integrator, "integrator", integrators.Default, "integrator (euler, rk4, verlet)")
	runCmd.Flags().StringVar(&scenarioFile, "scenario-file", "", "scenario file path (yaml)")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot energy and distances from the centre of mass")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run a scenario with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	liveCmd.Flags().StringVar(&integrator, "integrator", integrators.Default, "integrator (euler, rk4, verlet)")
	liveCmd.Flags().StringVar(&scenarioFile, "scenario-file", "", "scenario file path (yaml)")
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultTickRate, "frame rate")
	liveCmd.Flags().IntVar(&speed, "speed", 1, "ticks per frame")
	liveCmd.Flags().StringVar(&theme, "theme", viz.Themes[0].Name, "color theme")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list built-in scenarios",
		RunE:  listScenarios,
	}
	exportCmd := &cobra.Command{
		Use:   "export [scenario] [file]",
		Short: "write a scenario as yaml",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scenario.Get(args[0])
			if err != nil {
				return err
			}
			if err := scenario.Save(args[1], sc); err != nil {
				return err
			}
			fmt.Printf("wrote %s to %s\n", sc.Name, args[1])
			return nil
		},
	}
	scenariosCmd.AddCommand(exportCmd)

	benchCmd := &cobra.Command{
		Use:   "bench [scenario...]",
		Short: "run scenarios concurrently and report throughput",
		RunE:  benchScenarios,
	}
	benchCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks per scenario")
	benchCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	benchCmd.Flags().StringVar(&integrator, "integrator", integrators.Default, "integrator (euler, rk4, verlet)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [scenario]",
		Short: "estimate the lyapunov exponent and orbital periods",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeScenario,
	}
	analyzeCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	analyzeCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	analyzeCmd.Flags().StringVar(&integrator, "integrator", integrators.Default, "integrator (euler, rk4, verlet)")
	analyzeCmd.Flags().StringVar(&scenarioFile, "scenario-file", "", "scenario file path (yaml)")
	analyzeCmd.Flags().IntVar(&every, "every", 1, "sample every n ticks for the spectrum")
	analyzeCmd.Flags().Float64Var(&perturbation, "perturbation", analysis.DefaultPerturbation, "initial separation (m)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "threebody.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	configCmd.AddCommand(initCmd)

	rootCmd.AddCommand(runCmd, liveCmd, scenariosCmd, benchCmd, analyzeCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file if given and applies flags the user set
// explicitly on top of it.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if flags.Changed("fps") {
		cfg.TickRate = frameRate
	}
	if flags.Changed("scenario-file") {
		cfg.ScenarioFile = scenarioFile
	}
	if len(args) > 0 {
		cfg.Scenario = args[0]
		cfg.ScenarioFile = ""
	}
	return cfg, cfg.Validate()
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	sc, err := cfg.LoadScenario()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var series *runner.Series
	var observers []engine.Observer
	if plot {
		series = runner.NewSeries(cfg.Gravity(), max(1, cfg.Ticks/200))
		observers = append(observers, series)
	}

	fmt.Printf("running %s for %d ticks (dt %gs)...\n", sc.Name, cfg.Ticks, cfg.Dt)
	result, err := runner.Run(ctx, cfg, sc, cfg.Ticks, observers...)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("simulated: %.1f days\n\n", result.Time/86400)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tMASS\tPOSITION\tVELOCITY\tTAG")
	for i, b := range result.Bodies {
		fmt.Fprintf(w, "%d\t%.4e\t%v\t%v\t%s\n", i, b.Mass, b.Position, b.Velocity, b.Tag)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6e\n", name, result.Metrics[name])
	}

	if series != nil && series.Len() > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(series.Energy,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("total energy (J)"),
		))
		fmt.Println()
		fmt.Println(asciigraph.PlotMany(series.Distances,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Yellow, asciigraph.Blue, asciigraph.Red, asciigraph.Green),
			asciigraph.Caption("distance from centre of mass (m)"),
		))
	}

	return result.Check()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	sc, err := cfg.LoadScenario()
	if err != nil {
		return err
	}

	e, err := engine.FromConfig(cfg)
	if err != nil {
		return err
	}
	if err := e.Init(sc); err != nil {
		return err
	}
	return viz.Run(e, viz.WithFPS(cfg.TickRate), viz.WithSpeed(speed), viz.WithTheme(theme))
}

func listScenarios(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tDESCRIPTION")
	for _, name := range scenario.Names() {
		sc, err := scenario.Get(name)
		if err != nil {
			return err
		}
		marker := ""
		if name == scenario.Default {
			marker = " (default)"
		}
		fmt.Fprintf(w, "%s%s\t%d\t%s\n", name, marker, len(sc.Specs), sc.Description)
	}
	return w.Flush()
}

func benchScenarios(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = scenario.Names()
	}
	scs := make([]scenario.Scenario, 0, len(names))
	for _, n := range names {
		sc, err := scenario.Get(n)
		if err != nil {
			return err
		}
		scs = append(scs, sc)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("benchmarking %d scenarios, %d ticks each\n\n", len(scs), cfg.Ticks)
	start := time.Now()
	results, err := runner.Batch(ctx, cfg, scs, cfg.Ticks)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tBODIES\tTICKS\tTIME\tTICKS/SEC\tENERGY DRIFT\tFINITE")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\t%.3e\t%v\n",
			r.Scenario, len(r.Bodies), r.Ticks, r.Elapsed.Round(time.Microsecond), r.TicksPerSecond(), r.Metrics["energy_drift"], r.Finite)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\ntotal %v\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func analyzeScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	sc, err := cfg.LoadScenario()
	if err != nil {
		return err
	}
	integ, err := cfg.NewIntegrator()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("analyzing %s over %d ticks...\n\n", sc.Name, cfg.Ticks)

	var lambda float64
	var series *runner.Series
	var result *runner.Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lambda, err = analysis.LyapunovExponent(gctx, cfg.Gravity(), integ, sc.Bodies(), cfg.Dt, cfg.Ticks, perturbation)
		return err
	})
	g.Go(func() error {
		series = runner.NewSeries(cfg.Gravity(), every)
		r, err := runner.Run(gctx, cfg, sc, cfg.Ticks, series)
		result = r
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("lyapunov exponent: %.4e 1/s\n", lambda)
	if lambda > 0 {
		fmt.Printf("e-folding time: %.1f days\n", 1/lambda/86400)
	}
	fmt.Println()

	interval := cfg.Dt * float64(series.Every)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tTAG\tDOMINANT PERIOD")
	for i, d := range series.Distances {
		period := analysis.DominantPeriod(d, interval)
		label := "-"
		if period > 0 {
			label = fmt.Sprintf("%.1f days", period/86400)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", i, sc.Specs[i].Tag, label)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(series.Distances) > 0 {
		if ps := analysis.PowerSpectrum(series.Distances[0]); len(ps) > 1 {
			fmt.Println()
			fmt.Println(asciigraph.Plot(ps[1:],
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption("power spectrum (body 0 distance)"),
			))
		}
	}

	return result.Check()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
