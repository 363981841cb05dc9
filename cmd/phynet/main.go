package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"phynet/internal/catalog"
	"phynet/internal/config"
	"phynet/internal/ctxlog"
	"phynet/internal/live"
	"phynet/internal/netlist"
	"phynet/internal/solver"
	"phynet/internal/storage"
	"phynet/internal/viz"
)

var (
	dataDir   string
	logLevel  string
	logFormat string

	dt         float64
	duration   float64
	method     string
	abstol     float64
	reltol     float64
	maxIters   int
	configFile string
	preset     string
	signals    []string
	outFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "phynet",
		Short: "acausal physical network simulator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger := ctxlog.New(logLevel, logFormat, os.Stderr)
			cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".phynet", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	runCmd := &cobra.Command{
		Use:   "run [model.hcl]",
		Short: "run the analyses a model file requests",
		Args:  cobra.ExactArgs(1),
		RunE:  runModel,
	}
	addSolverFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "solver config file (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "solver preset name")

	opCmd := &cobra.Command{
		Use:   "op [model.hcl]",
		Short: "solve and print the operating point",
		Args:  cobra.ExactArgs(1),
		RunE:  runOperatingPoint,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run-id]",
		Short: "plot saved traces in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&signals, "signal", nil, "signals to plot (default: all)")

	pngCmd := &cobra.Command{
		Use:   "png [run-id]",
		Short: "export saved traces as a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE:  exportPNG,
	}
	pngCmd.Flags().StringVarP(&outFile, "out", "o", "traces.png", "output file")
	pngCmd.Flags().StringSliceVar(&signals, "signal", nil, "signals to plot (default: all)")

	exportCmd := &cobra.Command{
		Use:   "export [run-id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run-id]",
		Short: "export a run's traces as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	liveCmd := &cobra.Command{
		Use:   "live [model.hcl]",
		Short: "watch a transient solve interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addSolverFlags(liveCmd)

	componentsCmd := &cobra.Command{
		Use:   "components",
		Short: "list the component catalog",
		RunE:  listComponents,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list solver presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, opCmd, listCmd, plotCmd, pngCmd, exportCmd,
		exportCSVCmd, liveCmd, componentsCmd, presetsCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addSolverFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "transient step size")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "transient duration")
	cmd.Flags().StringVar(&method, "method", "", "integration method (backward-euler, trapezoidal)")
	cmd.Flags().Float64Var(&abstol, "abstol", config.DefaultAbstol, "newton absolute tolerance")
	cmd.Flags().Float64Var(&reltol, "reltol", config.DefaultReltol, "newton relative tolerance")
	cmd.Flags().IntVar(&maxIters, "max-iters", config.DefaultMaxIters, "newton iteration cap")
}

// mergeConfig layers the analysis config from the model file, then an
// optional preset or yaml file, then explicitly set CLI flags on top.
func mergeConfig(cmd *cobra.Command, base solver.Config) (solver.Config, error) {
	cfg := base

	if preset != "" {
		pc := config.GetPreset(preset)
		if pc == nil {
			return cfg, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		sc, err := pc.SolverConfig()
		if err != nil {
			return cfg, err
		}
		cfg = sc
	}

	if configFile != "" {
		fc, err := config.Load(configFile)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		sc, err := fc.SolverConfig()
		if err != nil {
			return cfg, err
		}
		cfg = sc
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("method") {
		m, err := solver.ParseMethod(method)
		if err != nil {
			return cfg, err
		}
		cfg.Method = m
	}
	if cmd.Flags().Changed("abstol") {
		cfg.Abstol = abstol
	}
	if cmd.Flags().Changed("reltol") {
		cfg.Reltol = reltol
	}
	if cmd.Flags().Changed("max-iters") {
		cfg.MaxIters = maxIters
	}
	return cfg, nil
}

func loadModel(ctx context.Context, path string) (*netlist.Model, error) {
	return netlist.Load(ctx, path, catalog.Default())
}

func runModel(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	model, err := loadModel(ctx, args[0])
	if err != nil {
		return err
	}

	sys, err := model.Network.Flatten()
	if err != nil {
		return err
	}

	analyses := model.Analyses
	if len(analyses) == 0 {
		analyses = []netlist.Analysis{{Kind: "transient", Config: solver.DefaultConfig()}}
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	for _, a := range analyses {
		cfg, err := mergeConfig(cmd, a.Config)
		if err != nil {
			return err
		}

		s := solver.New(sys)
		start := time.Now()

		var res *solver.Result
		switch a.Kind {
		case "op":
			res, err = s.OperatingPoint(ctx, cfg)
		default:
			res, err = s.Transient(ctx, cfg)
		}
		if err != nil {
			return fmt.Errorf("%s analysis of %s: %w", a.Kind, model.Name, err)
		}
		elapsed := time.Since(start)

		runID, err := st.Save(model.Name, a.Kind, cfg, res)
		if err != nil {
			return err
		}

		fmt.Printf("%s analysis of %s completed in %v\n", a.Kind, model.Name, elapsed)
		fmt.Printf("run id: %s\n", runID)
		fmt.Printf("steps: %d, newton iterations: %d\n", res.Stats.Steps, res.Stats.NewtonIters)

		probes := model.Probes
		if len(probes) == 0 {
			probes = res.Labels
		}
		fmt.Println("\nfinal values:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, label := range probes {
			v, err := res.Final(label)
			if err != nil {
				return err
			}
			sig, _ := res.Signal(label)
			fmt.Fprintf(w, "  %s\t%12.6g\t%s\n", label, v, viz.Sparkline(sig, 24))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Println()
	}

	return nil
}

func runOperatingPoint(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	model, err := loadModel(ctx, args[0])
	if err != nil {
		return err
	}

	sys, err := model.Network.Flatten()
	if err != nil {
		return err
	}

	cfg := solver.DefaultConfig()
	for _, a := range model.Analyses {
		if a.Kind == "op" {
			cfg = a.Config
			break
		}
	}

	res, err := solver.New(sys).OperatingPoint(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("operating point of %s (%d unknowns)\n\n", model.Name, sys.Size())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIGNAL\tVALUE")
	for _, label := range res.Labels {
		v, err := res.Final(label)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%12.6g\n", label, v)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tMODEL\tANALYSIS\tTIME\tDURATION\tDT\tMETHOD")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%gs\t%gs\t%s\n",
			run.ID,
			run.Model,
			run.Analysis,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Method,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	res, err := st.LoadTraces(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\nmodel: %s\nsamples: %d\n\n", meta.ID, meta.Model, len(res.Times))

	out, err := viz.PlotTraces(res, viz.DefaultPlotOptions(), signals...)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func exportPNG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	res, err := st.LoadTraces(args[0])
	if err != nil {
		return err
	}
	if err := viz.SavePNG(outFile, meta.Model, res, signals...); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	res, err := st.LoadTraces(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, res)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	res, err := st.LoadTraces(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(os.Stdout, res)
}

func runLive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	model, err := loadModel(ctx, args[0])
	if err != nil {
		return err
	}

	sys, err := model.Network.Flatten()
	if err != nil {
		return err
	}

	cfg := solver.DefaultConfig()
	for _, a := range model.Analyses {
		if a.Kind == "transient" {
			cfg = a.Config
			break
		}
	}
	cfg, err = mergeConfig(cmd, cfg)
	if err != nil {
		return err
	}

	stepper, err := solver.NewStepper(solver.New(sys), cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(live.New(model.Name, stepper))
	_, err = p.Run()
	return err
}

func listComponents(cmd *cobra.Command, args []string) error {
	reg := catalog.Default()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tDOMAIN\tDESCRIPTION")
	for _, e := range reg.Entries() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Type, e.Domain, e.Brief)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tDT\tDURATION\tMETHOD\tABSTOL\tRELTOL")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%g\t%g\t%s\t%g\t%g\n",
			name, p.Dt, p.Duration, p.Method, p.Abstol, p.Reltol)
	}
	return w.Flush()
}
