// Package core provides the contracts shared by the game engine and the
// terminal platform. It contains no external dependencies (especially no
// Bubble Tea) to keep game logic pure and testable.
package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the platform-facing summary of a game.
// Returned by Game.State() after every step.
type GameState struct {
	Score    int  // Current score
	Level    int  // Current level (1-based)
	Lines    int  // Total lines cleared this game
	GameOver bool // Whether the game has ended
}

// Events is a bitset of notable things that happened during one Step.
// The platform uses it to trigger sound cues and score persistence.
type Events uint8

const (
	EventLocked       Events = 1 << iota // a piece merged into the board
	EventLinesCleared                    // the lock removed at least one row
	EventLevelUp                         // the score crossed a level threshold
	EventGameOver                        // the game just ended
	EventHardDrop                        // the active piece was slammed down
)

// Has reports whether all flags in f are set.
func (e Events) Has(f Events) bool {
	return e&f == f
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events Events
	Lines  int // rows cleared by this step's lock event, 0 otherwise
}

// Game is the contract the engine presents to the platform.
// The engine contains pure logic only; the platform handles key mapping,
// timing, rendering to the terminal, and persistence.
type Game interface {
	// ID returns a stable identifier used for score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game for a new session.
	// The RuntimeConfig provides screen dimensions, tick rate, and RNG seed.
	Reset(cfg RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	// Input is abstracted to platform-level actions.
	Step(in InputFrame) StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *Screen)

	// State returns the current game state summary.
	State() GameState
}
