package main

import (
	"flag"
	"fmt"
	"os"

	"color-tango/internal/config"
	"color-tango/internal/logging"
	"color-tango/internal/pad"
	"color-tango/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	var (
		configPath string
		seed       int64
		level      string
		mute       bool
		logLevel   string
		logFile    string
	)

	flag.StringVar(&configPath, "config", "", "Path to a config file (default: ./config.yaml if present)")
	flag.Int64Var(&seed, "seed", 0, "Seed for the pad sequence (0 picks one from the clock)")
	flag.StringVar(&level, "level", "", "Answer the level prompt of the first game (1-4)")
	flag.BoolVar(&mute, "mute", false, "Do not ring the terminal bell for cues")
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flag.StringVar(&logFile, "log-file", "", "Log file path, or - to disable logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nRepeat the computer's dance steps. Keys: r g b y (or 1-4), esc gives up, q quits.\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	// A .env file is optional; TANGO_* variables may come from it.
	_ = godotenv.Load()

	cfg, loader, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	if seed != 0 {
		cfg.Game.Seed = seed
	}

	logger, closer, err := logging.Setup(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	logger.Info().
		Str("config_file", loader.FileUsed()).
		Int64("seed", cfg.Game.Seed).
		Dur("step_interval", cfg.Timing.StepInterval).
		Msg("Starting Color Tango")

	model := ui.New(ui.Options{
		Game:    ui.GameOptions(cfg),
		Flash:   cfg.Timing.FlashDuration,
		Source:  pad.NewGenerator(cfg.Game.Seed),
		Speaker: ui.NewSpeaker(os.Stderr, cfg.Audio.Enabled && !mute, cfg.Audio.AmbientVolume, logger),
		Level:   level,
		Logger:  logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	loader.Watch(func(c *config.Config) {
		if mute {
			c.Audio.Enabled = false
		}
		p.Send(ui.ConfigMsg{Config: c})
	}, func(err error) {
		logger.Warn().Err(err).Msg("Ignoring invalid config change")
	})

	if _, err := p.Run(); err != nil {
		logger.Error().Err(err).Msg("Program failed")
		fmt.Fprintf(os.Stderr, "Error running the program: %v\n", err)
		closer.Close()
		os.Exit(1)
	}

	sum := model.Game.Summary()
	if sum.Games > 0 {
		fmt.Printf("Games: %d | Wins: %d | Best: %d rounds\n", sum.Games, sum.Wins, sum.BestRounds)
	}
}
