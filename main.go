package main

import (
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"sepsim/internal/config"
	"sepsim/internal/exclusion"
	"sepsim/internal/logging"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sep",
		Short: "Simple exclusion process on a torus",
		Long: `sep simulates particles hopping on a wraparound grid. Each particle
waits an exponentially distributed time, then tries to move to a random
neighbouring cell; the move is rejected if the cell is taken.

Without a subcommand it opens a window and draws the particles.`,
		SilenceUsage: true,
		RunE:         runWindow,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "YAML config file")
	flags.Int("res", 0, "grid side length in cells")
	flags.Int("count", 0, "number of particles")
	flags.String("layout", "", "initial placement: center or scatter")
	flags.Float64("delta-t", 0, "simulated time per step")
	flags.Int("steps-per-frame", 0, "steps run per rendered frame")
	flags.Int64("seed", 0, "random seed (0 seeds from the clock)")
	flags.String("log-level", "", "info, debug or trace")

	rootCmd.AddCommand(newSimulateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and environment, then applies any flag
// the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if flags.Changed("res") {
		cfg.Grid.Res, _ = flags.GetInt("res")
	}
	if flags.Changed("count") {
		cfg.Grid.Count, _ = flags.GetInt("count")
	}
	if flags.Changed("layout") {
		cfg.Grid.Layout, _ = flags.GetString("layout")
	}
	if flags.Changed("delta-t") {
		cfg.Sim.DeltaT, _ = flags.GetFloat64("delta-t")
	}
	if flags.Changed("steps-per-frame") {
		cfg.Sim.StepsPerFrame, _ = flags.GetInt("steps-per-frame")
	}
	if flags.Changed("seed") {
		cfg.Sim.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setup turns a validated config into a logger and a ready engine.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, *exclusion.Engine, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())

	seed := cfg.Sim.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	engine, err := exclusion.New(cfg.Options(), rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, nil, nil, err
	}

	logger.Info("engine ready",
		"res", cfg.Grid.Res,
		"count", cfg.Grid.Count,
		"layout", cfg.Grid.Layout,
		"delta_t", cfg.Sim.DeltaT,
		"seed", seed)
	return cfg, logger, engine, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, logger, engine, err := setup(cmd)
	if err != nil {
		return err
	}

	scene := newScene(engine, cfg, logger)
	ebiten.SetWindowSize(cfg.Display.Width, cfg.Display.Width)
	ebiten.SetWindowTitle("Simple exclusion process")
	ebiten.SetTPS(cfg.Display.FrameRate)
	if err := ebiten.RunGame(scene); err != nil {
		log.Fatal(err)
	}
	return nil
}
