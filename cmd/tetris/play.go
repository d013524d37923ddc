package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/YUKII2K3/Shocker-s-Tetris-Game/internal/config"
	"github.com/YUKII2K3/Shocker-s-Tetris-Game/internal/core"
	"github.com/YUKII2K3/Shocker-s-Tetris-Game/internal/platform/sound"
	"github.com/YUKII2K3/Shocker-s-Tetris-Game/internal/platform/tui"
	"github.com/YUKII2K3/Shocker-s-Tetris-Game/internal/storage"
	"github.com/YUKII2K3/Shocker-s-Tetris-Game/internal/tetris"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the current terminal",
	Long: `Start a game in the current terminal.

Controls:
  A/D or Left/Right - Move piece
  W/X or Up         - Rotate clockwise
  S or Down         - Soft drop
  Space             - Hard drop
  Enter             - Start game
  R                 - Restart after game over
  Q/Ctrl+C          - Quit

Difficulty presets:
  easy   - Slower gravity, higher level threshold
  normal - Standard pace
  hard   - Fast gravity from the first piece

Examples:
  tetris play
  tetris play --difficulty hard
  tetris play --config ./my-tetris.yaml
  tetris play --mute`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
}

// loadGameConfig resolves the game configuration from the global flags,
// exiting with a message when the input is unusable.
func loadGameConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagDifficulty != "" {
		preset := config.DifficultyPreset(flagDifficulty)
		if !config.ValidPreset(preset) {
			fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q (expected easy, normal, or hard)\n", flagDifficulty)
			os.Exit(1)
		}
		config.ApplyPreset(&cfg, preset)
	}

	return cfg
}

func runPlay(cmd *cobra.Command, args []string) {
	gameCfg := loadGameConfig()

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game := tetris.New(tetris.WithTuning(gameCfg.Tuning()))

	var opts []tui.ModelOption

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
	} else {
		opts = append(opts, tui.WithStore(store))
	}

	if player := os.Getenv("USER"); player != "" {
		opts = append(opts, tui.WithPlayer(player))
	}

	// Audio is best-effort; on headless systems the game stays silent
	var sounds *sound.Player
	if gameCfg.Sound.Enabled && !flagMute {
		if p, sndErr := sound.NewPlayer(); sndErr == nil {
			sounds = p
			opts = append(opts, tui.WithSounds(sounds))
		}
	}

	runErr := tui.Run(game, cfg, opts...)

	sounds.Close()
	if store != nil {
		if runErr == nil {
			if best, bestErr := store.HighScore(); bestErr == nil && best > 0 {
				fmt.Printf("All-time best: %d\n", best)
			}
		}
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
