package tetris

import (
	"sort"
	"time"

	"github.com/YUKII2K3/Shocker-s-Tetris-Game/internal/core"
)

// Phase is the lifecycle state of a game.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhaseGameOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Piece is the tetromino instance currently under player control.
// X, Y anchor the shape's top-left corner on the board grid.
type Piece struct {
	Kind  Kind
	Shape Shape
	Color core.Color
	X, Y  int
}

// HighScore is one finished game's result, kept for the session only.
type HighScore struct {
	Score int
	Date  time.Time
}

// MaxHighScores caps the session high-score list.
const MaxHighScores = 5

// Tuning holds the pace parameters of a game. The drop interval starts
// at the initial value and shrinks by one step per level, never below
// the minimum. The signal durations control how long the line-clear
// flash and the level-up banner stay on screen.
type Tuning struct {
	InitialDropInterval time.Duration
	DropIntervalStep    time.Duration
	MinDropInterval     time.Duration
	LevelThreshold      int // score per level required to advance
	FlashDuration       time.Duration
	LevelUpDuration     time.Duration
}

// DefaultTuning returns the standard game pace.
func DefaultTuning() Tuning {
	return Tuning{
		InitialDropInterval: 600 * time.Millisecond,
		DropIntervalStep:    50 * time.Millisecond,
		MinDropInterval:     100 * time.Millisecond,
		LevelThreshold:      1000,
		FlashDuration:       400 * time.Millisecond,
		LevelUpDuration:     1200 * time.Millisecond,
	}
}

// Game implements the falling-block puzzle engine. All state lives here;
// transitions happen only inside Step, so consumers observe one atomic
// change per tick.
type Game struct {
	cfg            core.RuntimeConfig
	tuning         Tuning
	picker         Picker
	pickerOverride Picker // injected picker survives Reset
	now            func() time.Time

	tick  uint64
	phase Phase

	board  Board
	active Piece
	next   Tetromino

	score int
	level int
	lines int

	dropInterval  time.Duration
	gravityEvery  int // ticks between gravity steps at the current interval
	gravityTicker int // ticks since the last gravity step

	flashRows    []int // rows cleared by the last lock, shown briefly
	flashTicks   int
	levelUpTicks int

	highScores []HighScore
}

// Option configures a Game at construction.
type Option func(*Game)

// WithTuning overrides the default pace parameters.
func WithTuning(t Tuning) Option {
	return func(g *Game) { g.tuning = t }
}

// WithPicker injects a piece source, replacing the seeded random one.
func WithPicker(p Picker) Option {
	return func(g *Game) { g.pickerOverride = p }
}

// WithClock injects the clock used to date high-score entries.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// New creates a game with default tuning. Call Reset before stepping.
func New(opts ...Option) *Game {
	g := &Game{
		tuning: DefaultTuning(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the game identifier used for score storage.
func (g *Game) ID() string {
	return "tetris"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset initializes the game for a new session. The board stays empty
// and the phase stays NotStarted until a Start action arrives. Session
// high scores are discarded along with everything else.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	g.cfg = cfg

	if g.pickerOverride != nil {
		g.picker = g.pickerOverride
	} else {
		g.picker = NewRandomPicker(cfg.Seed)
	}

	g.tick = 0
	g.phase = PhaseNotStarted
	g.board = Board{}
	g.active = Piece{}
	g.next = Tetromino{}
	g.score = 0
	g.level = 1
	g.lines = 0
	g.dropInterval = g.tuning.InitialDropInterval
	g.gravityEvery = 0
	g.gravityTicker = 0
	g.flashRows = nil
	g.flashTicks = 0
	g.levelUpTicks = 0
	g.highScores = nil
}

// Step advances the game by one tick. Player actions and the gravity
// countdown are both resolved here, so no transition can race another.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++
	g.decaySignals()

	var events core.Events
	cleared := 0

	switch g.phase {
	case PhaseNotStarted:
		if input.Has(core.ActionStart) {
			g.startRound(false)
		}

	case PhaseGameOver:
		if input.Has(core.ActionStart) || input.Has(core.ActionRestart) {
			g.startRound(true)
		}

	case PhaseRunning:
		if input.Has(core.ActionRestart) {
			g.startRound(true)
			break
		}
		ev, n := g.handleActions(input)
		events |= ev
		cleared += n

		ev, n = g.applyGravity()
		events |= ev
		cleared += n
	}

	return core.StepResult{State: g.State(), Events: events, Lines: cleared}
}

// handleActions applies the player's moves for this tick. Illegal moves
// and rotations are no-ops rather than errors.
func (g *Game) handleActions(input core.InputFrame) (core.Events, int) {
	var events core.Events
	cleared := 0

	if input.Has(core.ActionMoveLeft) {
		g.tryShift(-1)
	}
	if input.Has(core.ActionMoveRight) {
		g.tryShift(1)
	}
	if input.Has(core.ActionRotate) {
		g.tryRotate()
	}
	if input.Has(core.ActionHardDrop) {
		if g.hardDrop() {
			events |= core.EventHardDrop
		}
	}
	if input.Has(core.ActionSoftDrop) {
		// One gravity step right now; the scheduled countdown keeps
		// running untouched.
		ev, n := g.descendOrLock()
		events |= ev
		cleared += n
	}
	return events, cleared
}

// applyGravity counts down the drop interval and performs one descend
// attempt when it elapses.
func (g *Game) applyGravity() (core.Events, int) {
	if g.phase != PhaseRunning {
		return 0, 0
	}
	g.gravityTicker++
	if g.gravityTicker < g.gravityEvery {
		return 0, 0
	}
	g.gravityTicker = 0
	return g.descendOrLock()
}

// descendOrLock is the atomic gravity transition: the active piece
// either moves down one row, or it cannot and the tick resolves into a
// game over (piece still at the ceiling) or a lock.
func (g *Game) descendOrLock() (core.Events, int) {
	if Fits(g.board, g.active.Shape, g.active.X, g.active.Y+1) {
		g.active.Y++
		return 0, 0
	}
	if g.active.Y < 1 {
		// Blocked without ever leaving the spawn row: the stack has
		// reached the ceiling.
		g.phase = PhaseGameOver
		return core.EventGameOver, 0
	}
	return g.lockAndRespawn()
}

// lockAndRespawn merges the active piece into the board, clears full
// rows, applies scoring, and promotes the next piece.
func (g *Game) lockAndRespawn() (core.Events, int) {
	events := core.EventLocked
	g.board = Merge(g.board, g.active.Shape, g.active.X, g.active.Y, g.active.Color)

	var cleared []int
	g.board, cleared = ClearFullRows(g.board)
	n := len(cleared)
	if n > 0 {
		events |= core.EventLinesCleared
		g.lines += n
		g.score += n * 100 * g.level
		g.flashRows = cleared
		g.flashTicks = g.ticksFor(g.tuning.FlashDuration)
		if g.maybeLevelUp() {
			events |= core.EventLevelUp
		}
	}

	g.spawn()
	if !Fits(g.board, g.active.Shape, g.active.X, g.active.Y) {
		g.phase = PhaseGameOver
		events |= core.EventGameOver
	}
	return events, n
}

// maybeLevelUp advances the level once the score reaches the current
// threshold and speeds the drop up by one step. At most one level per
// lock event, however far the score jumped.
func (g *Game) maybeLevelUp() bool {
	if g.score < g.level*g.tuning.LevelThreshold {
		return false
	}
	g.level++
	g.levelUpTicks = g.ticksFor(g.tuning.LevelUpDuration)

	g.dropInterval -= g.tuning.DropIntervalStep
	if g.dropInterval < g.tuning.MinDropInterval {
		g.dropInterval = g.tuning.MinDropInterval
	}
	g.rearmGravity()
	return true
}

// tryShift moves the active piece one column if the target placement
// is legal.
func (g *Game) tryShift(dx int) {
	if Fits(g.board, g.active.Shape, g.active.X+dx, g.active.Y) {
		g.active.X += dx
	}
}

// kickOffsets are the positional corrections attempted, in order, when
// an in-place rotation does not fit.
var kickOffsets = [...][2]int{{0, 0}, {0, -1}, {1, 0}, {-1, 0}, {0, 1}}

// tryRotate rotates the active piece clockwise, kicking it to a nearby
// anchor when the in-place rotation collides. If no kick fits, the
// piece keeps its shape and position.
func (g *Game) tryRotate() {
	rotated := Rotate(g.active.Shape)
	for _, off := range kickOffsets {
		x := g.active.X + off[0]
		y := g.active.Y + off[1]
		if Fits(g.board, rotated, x, y) {
			g.active.Shape = rotated
			g.active.X = x
			g.active.Y = y
			return
		}
	}
}

// hardDrop slides the active piece to the lowest legal row without
// locking it; the next gravity step finds it unable to descend and
// locks it then. Returns whether the piece moved at all.
func (g *Game) hardDrop() bool {
	dropped := false
	for Fits(g.board, g.active.Shape, g.active.X, g.active.Y+1) {
		g.active.Y++
		dropped = true
	}
	return dropped
}

// spawn promotes the next piece to active at the spawn anchor and draws
// a fresh one from the picker.
func (g *Game) spawn() {
	g.active = Piece{
		Kind:  g.next.Kind,
		Shape: g.next.Shape,
		Color: g.next.Color,
		X:     Width/2 - 1,
		Y:     0,
	}
	g.next = Definition(g.picker.Next())
}

// startRound resets the round state and enters the Running phase. When
// a round was in progress or just ended, its final score joins the
// session high-score list first.
func (g *Game) startRound(recordScore bool) {
	if recordScore {
		g.recordHighScore()
	}
	g.board = Board{}
	g.score = 0
	g.level = 1
	g.lines = 0
	g.dropInterval = g.tuning.InitialDropInterval
	g.flashRows = nil
	g.flashTicks = 0
	g.levelUpTicks = 0

	g.next = Definition(g.picker.Next())
	g.spawn()
	g.phase = PhaseRunning
	g.rearmGravity()
}

// recordHighScore appends the current score to the session list, kept
// sorted descending and capped at MaxHighScores entries.
func (g *Game) recordHighScore() {
	g.highScores = append(g.highScores, HighScore{Score: g.score, Date: g.now()})
	sort.SliceStable(g.highScores, func(i, j int) bool {
		return g.highScores[i].Score > g.highScores[j].Score
	})
	if len(g.highScores) > MaxHighScores {
		g.highScores = g.highScores[:MaxHighScores]
	}
}

// rearmGravity recomputes the tick quota from the current drop interval
// and restarts the countdown. Called on round start and whenever the
// interval changes, so a stale countdown never carries across.
func (g *Game) rearmGravity() {
	g.gravityEvery = g.ticksFor(g.dropInterval)
	g.gravityTicker = 0
}

// ticksFor converts a duration to simulation ticks, at least one.
func (g *Game) ticksFor(d time.Duration) int {
	rate := g.cfg.TickRate
	if rate <= 0 {
		rate = 60
	}
	ticks := int(d * time.Duration(rate) / time.Second)
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

// decaySignals counts down the transient render signals. They expire on
// elapsed time regardless of phase.
func (g *Game) decaySignals() {
	if g.flashTicks > 0 {
		g.flashTicks--
		if g.flashTicks == 0 {
			g.flashRows = nil
		}
	}
	if g.levelUpTicks > 0 {
		g.levelUpTicks--
	}
}

// DropInterval returns the current gravity period.
func (g *Game) DropInterval() time.Duration {
	return g.dropInterval
}

// HighScores returns a copy of the session high-score list, best first.
func (g *Game) HighScores() []HighScore {
	out := make([]HighScore, len(g.highScores))
	copy(out, g.highScores)
	return out
}

// State returns the platform-facing game state summary.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    g.level,
		Lines:    g.lines,
		GameOver: g.phase == PhaseGameOver,
	}
}
