package cmd

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/they4kman/swept/config"
	"github.com/they4kman/swept/director/constraint"
	"github.com/they4kman/swept/director/random"
	"github.com/they4kman/swept/game"
	"github.com/they4kman/swept/tui"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "swept",
	Short: "Play Minesweeper in the terminal",
	Long: `swept is a Minesweeper game for the terminal, played with the mouse
or the keyboard, with an optional computer player.

Run with no arguments to play a 16x16 board
	swept

Pick the board size and how much of it is mined
	swept -w 30 -h 16 -d 20

Let the computer play for you
	swept --autoplay
`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath, cmd.Flags())
		if err != nil {
			return err
		}

		logFile, err := setupLogging(cfg.Log)
		if err != nil {
			return err
		}
		defer logFile.Close()

		g, err := game.New(cfg.GameConfig())
		if err != nil {
			return err
		}

		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("unable to open terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("unable to initialise terminal: %w", err)
		}

		app := tui.New(screen, g, tui.Options{
			Director:         newDirector(cfg.Play.Director),
			Autoplay:         cfg.Play.Autoplay,
			AutoplayInterval: cfg.Play.AutoplayInterval,
		})

		log.WithField("seed", g.Seed()).Info("starting")
		return app.Run()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newDirector(name string) game.Director {
	switch name {
	case config.DirectorRandom:
		return &random.Director{}
	default:
		return &constraint.Director{}
	}
}

func init() {
	// Define our root -help without a shorthand, as we'll use -h for --height
	// Ref: https://github.com/spf13/cobra/issues/291
	rootCmd.PersistentFlags().Bool("help", false, "Help for this command")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./swept.yaml or ~/.config/swept/swept.yaml)")

	flags := rootCmd.PersistentFlags()
	flags.IntP("width", "w", game.DefaultWidth, "Width of game board, in cells")
	flags.IntP("height", "h", game.DefaultHeight, "Height of game board, in cells")
	flags.IntP("density", "d", game.DefaultMineDensity, "Percentage of cells holding a mine, 0-100")
	flags.Int64("seed", 0, "Seed for mine placement (0 picks one at random)")
	flags.String("director", config.DirectorConstraint, `Computer player used for hints and autoplay.
constraint: deduces safe cells and mines from the numbers, guesses when stuck
random: uncovers a random cell`)
	flags.Bool("autoplay", false, "Make the computer play")
	flags.Duration("autoplay-interval", 0, "Delay between computer moves (default 500ms)")
	flags.String("log-level", "info", "Log level: trace, debug, info, warn, error")
	flags.String("log-file", "swept.log", "File to write logs to; empty disables logging")

	rootCmd.AddCommand(configCmd)
}
