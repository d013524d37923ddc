package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/YUKII2K3/Shocker-s-Tetris-Game/internal/core"
	"github.com/YUKII2K3/Shocker-s-Tetris-Game/internal/platform/sound"
	"github.com/YUKII2K3/Shocker-s-Tetris-Game/internal/storage"
)

// Model is the Bubble Tea model that runs a game session in the terminal.
type Model struct {
	game       core.Game
	screen     *core.Screen
	keys       *KeyMapper
	store      *storage.Store
	sounds     *sound.Player
	player     string
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
}

// ModelOption configures optional session features.
type ModelOption func(*Model)

// WithStore enables persisting finished games to the scores database.
func WithStore(store *storage.Store) ModelOption {
	return func(m *Model) { m.store = store }
}

// WithSounds enables audio cues for game events.
// A nil player is accepted and plays nothing.
func WithSounds(p *sound.Player) ModelOption {
	return func(m *Model) { m.sounds = p }
}

// WithPlayer records scores under the given player name.
func WithPlayer(name string) ModelOption {
	return func(m *Model) {
		if name != "" {
			m.player = name
		}
	}
}

// NewModel creates a session model with the game reset and ready to play.
func NewModel(game core.Game, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keys:       NewKeyMapper(),
		player:     "local",
		config:     cfg,
		inputFrame: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	// Reset here rather than in Init: Bubble Tea calls Init on a copy
	// of the model, so state set there would be lost.
	game.Reset(cfg)
	m.gameState = game.State()

	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
// The playfield has fixed dimensions, so only the screen buffer changes;
// the simulation keeps running untouched.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick advances the simulation by one step and reacts to the
// events it reports.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Events.Has(core.EventHardDrop) {
		m.sounds.PlayHardDrop()
	}
	if result.Events.Has(core.EventLocked) {
		m.sounds.PlayLock()
	}
	if result.Events.Has(core.EventLinesCleared) {
		m.sounds.PlayLineClear(result.Lines)
	}
	if result.Events.Has(core.EventLevelUp) {
		m.sounds.PlayLevelUp()
	}
	if result.Events.Has(core.EventGameOver) {
		m.sounds.PlayGameOver()
		m.saveScore(result.State)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveScore persists a finished game. The game-over event fires exactly
// once per round, so no dedup flag is needed.
func (m *Model) saveScore(state core.GameState) {
	if m.store == nil || state.Score <= 0 {
		return
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveScore(state.Score, state.Level, state.Lines, m.player)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".tetris", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for the given game and blocks
// until the session ends.
func Run(game core.Game, cfg core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(game, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
