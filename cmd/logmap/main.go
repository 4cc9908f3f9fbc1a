package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/logmap/internal/config"
	"github.com/san-kum/logmap/internal/viz"
)

const (
	formatText = "text"
	formatCSV  = "csv"
	formatJSON = "json"
	formatSVG  = "svg"
)

var (
	// Global
	configFile string
	logLevel   string
	format     string
	width      int
	height     int
	// Map parameters
	paramA     float64
	x          float64
	x0         float64
	steps      int
	iterations int
	lo         float64
	hi         float64
	points     int
	// Sweep
	aMin      float64
	aMax      float64
	samples   int
	transient int
	workers   int
	tui       bool
	// Preset name
	preset string
	// compare
	compareAs     []float64
	compareX0     float64
	compareIters  int
	comparePreset string
	// regimes
	regimesX0 float64

	cfg    *config.Config
	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "logmap"})
)

// main runs the logmap CLI. An interrupt cancels the command context, which
// stops a running sweep at the next parameter sample.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "logmap",
		Short:             "logistic map explorer: cobwebs, fixed points and bifurcation diagrams",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", formatText, "output format (text, csv, json, svg)")
	rootCmd.PersistentFlags().IntVar(&width, "width", viz.DefaultWidth, "plot width in terminal cells")
	rootCmd.PersistentFlags().IntVar(&height, "height", viz.DefaultHeight, "plot height in terminal cells")

	stepCmd := &cobra.Command{
		Use:   "step",
		Short: "apply the map once",
		Args:  cobra.NoArgs,
		RunE:  runStep,
	}
	stepCmd.Flags().Float64Var(&x, "x", 0.5, "current value")
	stepCmd.Flags().Float64Var(&paramA, "a", config.DefaultCobwebA, "growth parameter")

	iterateCmd := &cobra.Command{
		Use:   "iterate",
		Short: "iterate the map and plot the orbit",
		Args:  cobra.NoArgs,
		RunE:  runIterate,
	}
	iterateCmd.Flags().Float64Var(&paramA, "a", config.DefaultCobwebA, "growth parameter")
	iterateCmd.Flags().Float64Var(&x0, "x0", config.DefaultCobwebX0, "initial value")
	iterateCmd.Flags().IntVarP(&steps, "steps", "n", config.DefaultOrbitLen, "number of iterations")

	fixedCmd := &cobra.Command{
		Use:   "fixed",
		Short: "list fixed points and their stability",
		Args:  cobra.NoArgs,
		RunE:  runFixed,
	}
	fixedCmd.Flags().Float64Var(&paramA, "a", config.DefaultStabilityA, "growth parameter")

	stabilityCmd := &cobra.Command{
		Use:   "stability",
		Short: "plot the map against the identity line",
		Args:  cobra.NoArgs,
		RunE:  runStability,
	}
	stabilityCmd.Flags().Float64Var(&paramA, "a", config.DefaultStabilityA, "growth parameter")
	stabilityCmd.Flags().Float64Var(&lo, "lo", 0, "lower bound of the x window")
	stabilityCmd.Flags().Float64Var(&hi, "hi", 1, "upper bound of the x window")
	stabilityCmd.Flags().IntVar(&points, "points", config.DefaultCurvePoints, "curve samples")

	cobwebCmd := &cobra.Command{
		Use:   "cobweb",
		Short: "draw a cobweb diagram",
		Args:  cobra.NoArgs,
		RunE:  runCobweb,
	}
	cobwebCmd.Flags().Float64Var(&paramA, "a", config.DefaultCobwebA, "growth parameter")
	cobwebCmd.Flags().Float64Var(&x0, "x0", config.DefaultCobwebX0, "initial value")
	cobwebCmd.Flags().IntVar(&iterations, "iterations", config.DefaultCobwebIters, "maximum iterations")
	cobwebCmd.Flags().Float64Var(&lo, "lo", 0, "lower bound of the window")
	cobwebCmd.Flags().Float64Var(&hi, "hi", 1, "upper bound of the window")
	cobwebCmd.Flags().IntVar(&points, "points", config.DefaultCurvePoints, "curve samples")
	cobwebCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	bifurcateCmd := &cobra.Command{
		Use:   "bifurcate",
		Short: "sweep the parameter and draw the bifurcation diagram",
		Args:  cobra.NoArgs,
		RunE:  runBifurcate,
	}
	bifurcateCmd.Flags().Float64Var(&aMin, "a-min", config.DefaultSweepAMin, "lowest parameter")
	bifurcateCmd.Flags().Float64Var(&aMax, "a-max", config.DefaultSweepAMax, "highest parameter")
	bifurcateCmd.Flags().IntVar(&samples, "samples", config.DefaultSweepN, "parameter samples")
	bifurcateCmd.Flags().Float64Var(&x0, "x0", config.DefaultSweepX0, "initial value")
	bifurcateCmd.Flags().IntVar(&iterations, "iterations", config.DefaultSweepIters, "iterations per sample")
	bifurcateCmd.Flags().IntVar(&transient, "transient", config.DefaultTransient, "iterations discarded per sample")
	bifurcateCmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = one per CPU)")
	bifurcateCmd.Flags().BoolVar(&tui, "tui", false, "show live progress and the diagram in a full-screen view")
	bifurcateCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "cobwebs for several parameters beside a bifurcation diagram",
		Args:  cobra.NoArgs,
		RunE:  runCompare,
	}
	compareCmd.Flags().Float64SliceVar(&compareAs, "a", []float64{1.5, 2.8, 3.2, 3.5, 3.8}, "parameters to compare")
	compareCmd.Flags().Float64Var(&compareX0, "x0", config.DefaultCobwebX0, "initial value")
	compareCmd.Flags().IntVar(&compareIters, "iterations", 30, "cobweb iterations")
	compareCmd.Flags().StringVar(&comparePreset, "preset", "overview", "bifurcation preset for the diagram (empty uses the config)")

	regimesCmd := &cobra.Command{
		Use:   "regimes",
		Short: "summarise fixed points and early iterates per regime",
		Args:  cobra.NoArgs,
		RunE:  runRegimes,
	}
	regimesCmd.Flags().Float64Var(&regimesX0, "x0", 0.5, "initial value")
	regimesCmd.Flags().IntVarP(&steps, "steps", "n", config.DefaultOrbitLen, "iterations per regime")

	presetsCmd := &cobra.Command{
		Use:       "presets [kind]",
		Short:     "list available presets",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{config.KindCobweb, config.KindBifurcation},
		RunE:      runPresets,
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			logger.Info("config written", "path", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(stepCmd, iterateCmd, fixedCmd, stabilityCmd, cobwebCmd, bifurcateCmd, compareCmd, regimesCmd, presetsCmd, initConfigCmd)
	return rootCmd
}

// setup configures logging and loads the config file, if any, over the
// defaults.
func setup(cmd *cobra.Command, args []string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logger.SetLevel(level)

	switch format {
	case formatText, formatCSV, formatJSON, formatSVG:
	default:
		return fmt.Errorf("unknown format %q (available: text, csv, json, svg)", format)
	}
	if width < 1 || height < 1 {
		return fmt.Errorf("plot size must be positive, got %dx%d", width, height)
	}

	cfg = config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		logger.Debug("config loaded", "path", configFile)
	}
	return nil
}
