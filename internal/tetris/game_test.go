package tetris

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/YUKII2K3/Shocker-s-Tetris-Game/internal/core"
)

// queuePicker cycles through a fixed kind sequence for deterministic tests.
type queuePicker struct {
	kinds []Kind
	i     int
}

func (p *queuePicker) Next() Kind {
	k := p.kinds[p.i%len(p.kinds)]
	p.i++
	return k
}

var testDate = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func newTestGame(t *testing.T, kinds ...Kind) *Game {
	t.Helper()
	opts := []Option{WithClock(func() time.Time { return testDate })}
	if len(kinds) > 0 {
		opts = append(opts, WithPicker(&queuePicker{kinds: kinds}))
	}
	g := New(opts...)
	g.Reset(testConfig())
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func startGame(t *testing.T, g *Game) {
	t.Helper()
	g.Step(frame(core.ActionStart))
	if g.phase != PhaseRunning {
		t.Fatalf("phase = %v after start, expected running", g.phase)
	}
}

func TestIdentity(t *testing.T) {
	g := New()
	if g.ID() != "tetris" {
		t.Errorf("ID() = %q", g.ID())
	}
	if g.Title() != "Tetris" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestStartSpawnsCentered(t *testing.T) {
	g := newTestGame(t, KindO)

	if g.phase != PhaseNotStarted {
		t.Fatal("game should wait for a start action after Reset")
	}

	startGame(t, g)

	if g.active.Kind != KindO {
		t.Errorf("active kind = %v, expected O", g.active.Kind)
	}
	if g.active.X != Width/2-1 || g.active.Y != 0 {
		t.Errorf("spawn anchor = (%d,%d), expected (%d,0)", g.active.X, g.active.Y, Width/2-1)
	}
	if g.next.Kind != KindO {
		t.Errorf("next kind = %v, expected O", g.next.Kind)
	}
	if g.score != 0 || g.level != 1 || g.lines != 0 {
		t.Errorf("fresh round counters = %d/%d/%d", g.score, g.level, g.lines)
	}

	// 600ms at 60 ticks/second
	if g.gravityEvery != 36 {
		t.Errorf("gravityEvery = %d, expected 36", g.gravityEvery)
	}
}

func TestMoveLeftStopsAtWall(t *testing.T) {
	g := newTestGame(t, KindO)
	startGame(t, g)

	for i := 0; i < 4; i++ {
		g.Step(frame(core.ActionMoveLeft))
	}
	if g.active.X != 0 {
		t.Fatalf("after 4 left moves X = %d, expected 0", g.active.X)
	}

	// The fifth move hits the wall and is a no-op
	g.Step(frame(core.ActionMoveLeft))
	if g.active.X != 0 {
		t.Errorf("move into the wall shifted the piece to X = %d", g.active.X)
	}
	if g.active.Y != 0 {
		t.Errorf("piece descended early, Y = %d", g.active.Y)
	}
}

func TestMoveRightStopsAtWall(t *testing.T) {
	g := newTestGame(t, KindO)
	startGame(t, g)

	for i := 0; i < 6; i++ {
		g.Step(frame(core.ActionMoveRight))
	}
	if g.active.X != Width-2 {
		t.Errorf("O piece should stop at X = %d, got %d", Width-2, g.active.X)
	}
}

func TestMoveBlockedByStack(t *testing.T) {
	g := newTestGame(t, KindO)
	startGame(t, g)
	g.board[0][3] = core.ColorGray

	g.Step(frame(core.ActionMoveLeft))

	if g.active.X != Width/2-1 {
		t.Errorf("move into a locked cell shifted the piece to X = %d", g.active.X)
	}
}

func TestRotationKicks(t *testing.T) {
	spawnT := Definition(KindT).Shape
	rotatedT := Rotate(spawnT)

	tests := []struct {
		name    string
		blocks  [][2]int // x, y of locked cells
		wantX   int
		wantY   int
		rotated bool
	}{
		{"in place", nil, 4, 5, true},
		{"kick up", [][2]int{{5, 7}}, 4, 4, true},
		{"kick right", [][2]int{{5, 7}, {5, 4}}, 5, 5, true},
		{"kick left", [][2]int{{5, 7}, {5, 4}, {6, 7}}, 3, 5, true},
		{"kick down", [][2]int{{4, 6}, {5, 4}, {6, 5}}, 4, 6, true},
		{"rejected", [][2]int{{5, 6}, {4, 6}}, 4, 5, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, KindT)
			startGame(t, g)
			g.active.X, g.active.Y = 4, 5
			for _, b := range tc.blocks {
				g.board[b[1]][b[0]] = core.ColorGray
			}

			g.tryRotate()

			if g.active.X != tc.wantX || g.active.Y != tc.wantY {
				t.Errorf("anchor = (%d,%d), expected (%d,%d)",
					g.active.X, g.active.Y, tc.wantX, tc.wantY)
			}
			want := spawnT
			if tc.rotated {
				want = rotatedT
			}
			if !reflect.DeepEqual(g.active.Shape, want) {
				t.Errorf("shape = %v, expected %v", g.active.Shape, want)
			}
		})
	}
}

func TestRotationRejectedAtFloor(t *testing.T) {
	g := newTestGame(t, KindI)
	startGame(t, g)

	g.hardDrop()
	if g.active.Y != Height-1 {
		t.Fatalf("flat bar should rest on the floor, Y = %d", g.active.Y)
	}

	// A vertical bar cannot exist this low and no kick reaches a legal
	// spot, so the rotation must leave the piece untouched.
	g.tryRotate()

	if g.active.Y != Height-1 || g.active.X != Width/2-1 {
		t.Errorf("rejected rotation moved the piece to (%d,%d)", g.active.X, g.active.Y)
	}
	if !reflect.DeepEqual(g.active.Shape, Definition(KindI).Shape) {
		t.Errorf("rejected rotation changed the shape: %v", g.active.Shape)
	}
}

func TestGravityPeriod(t *testing.T) {
	g := newTestGame(t, KindO)
	startGame(t, g)

	empty := core.NewInputFrame()
	for i := 0; i < 35; i++ {
		g.Step(empty)
	}
	if g.active.Y != 0 {
		t.Fatalf("piece descended before the interval elapsed, Y = %d", g.active.Y)
	}

	g.Step(empty)
	if g.active.Y != 1 {
		t.Errorf("piece should descend on the 36th tick, Y = %d", g.active.Y)
	}
	if g.gravityTicker != 0 {
		t.Errorf("gravity countdown should restart after a step, got %d", g.gravityTicker)
	}
}

func TestSoftDropKeepsCountdown(t *testing.T) {
	g := newTestGame(t, KindO)
	startGame(t, g)

	empty := core.NewInputFrame()
	for i := 0; i < 10; i++ {
		g.Step(empty)
	}

	g.Step(frame(core.ActionSoftDrop))

	if g.active.Y != 1 {
		t.Errorf("soft drop should descend immediately, Y = %d", g.active.Y)
	}
	if g.gravityTicker != 11 {
		t.Errorf("soft drop must not reset the gravity countdown, got %d", g.gravityTicker)
	}
}

func TestHardDropWaitsForGravityLock(t *testing.T) {
	g := newTestGame(t, KindO)
	startGame(t, g)

	res := g.Step(frame(core.ActionHardDrop))

	if !res.Events.Has(core.EventHardDrop) {
		t.Error("hard drop should report its event")
	}
	if res.Events.Has(core.EventLocked) {
		t.Error("hard drop must not lock immediately")
	}
	if g.active.Y != Height-2 {
		t.Errorf("O piece should rest at Y = %d, got %d", Height-2, g.active.Y)
	}
	if g.board != (Board{}) {
		t.Fatal("board must stay empty until the gravity lock")
	}

	// Let the next gravity step find the piece stuck and lock it
	g.gravityTicker = g.gravityEvery - 1
	res = g.Step(core.NewInputFrame())

	if !res.Events.Has(core.EventLocked) {
		t.Fatal("gravity step should lock the dropped piece")
	}
	for _, c := range [][2]int{{4, 18}, {5, 18}, {4, 19}, {5, 19}} {
		if g.board[c[1]][c[0]] != core.ColorYellow {
			t.Errorf("cell (%d,%d) should hold the locked piece", c[0], c[1])
		}
	}
	if g.active.Y != 0 {
		t.Errorf("a fresh piece should spawn after the lock, Y = %d", g.active.Y)
	}
}

func TestLineClearScoring(t *testing.T) {
	g := newTestGame(t, KindI)
	startGame(t, g)

	// Fill the bottom row except the four columns under the spawned bar
	for x := 0; x < Width; x++ {
		if x >= 4 && x <= 7 {
			continue
		}
		g.board[Height-1][x] = core.ColorGray
	}

	g.Step(frame(core.ActionHardDrop))
	g.gravityTicker = g.gravityEvery - 1
	res := g.Step(core.NewInputFrame())

	if !res.Events.Has(core.EventLocked | core.EventLinesCleared) {
		t.Fatalf("events = %b, expected lock and line clear", res.Events)
	}
	if res.Lines != 1 {
		t.Errorf("Lines = %d, expected 1", res.Lines)
	}
	if g.score != 100 {
		t.Errorf("score = %d, expected 1*100*1", g.score)
	}
	if g.lines != 1 {
		t.Errorf("lines = %d, expected 1", g.lines)
	}
	if !reflect.DeepEqual(g.flashRows, []int{Height - 1}) {
		t.Errorf("flashRows = %v, expected [%d]", g.flashRows, Height-1)
	}
	// 400ms flash at 60 ticks/s
	if g.flashTicks != 24 {
		t.Errorf("flashTicks = %d, expected 24", g.flashTicks)
	}
	if g.board != (Board{}) {
		t.Error("the cleared board should be empty again")
	}
}

func TestMultiLineScore(t *testing.T) {
	g := newTestGame(t, KindO)
	startGame(t, g)

	for _, y := range []int{Height - 2, Height - 1} {
		for x := 0; x < Width; x++ {
			if x == 4 || x == 5 {
				continue
			}
			g.board[y][x] = core.ColorGray
		}
	}

	g.Step(frame(core.ActionHardDrop))
	g.gravityTicker = g.gravityEvery - 1
	res := g.Step(core.NewInputFrame())

	if res.Lines != 2 {
		t.Fatalf("Lines = %d, expected 2", res.Lines)
	}
	if g.score != 200 {
		t.Errorf("score = %d, expected 2*100*1", g.score)
	}
	if !reflect.DeepEqual(g.flashRows, []int{Height - 2, Height - 1}) {
		t.Errorf("flashRows = %v", g.flashRows)
	}
}

func TestLevelUpOncePerLock(t *testing.T) {
	tun := DefaultTuning()
	tun.LevelThreshold = 100
	g := New(
		WithPicker(&queuePicker{kinds: []Kind{KindO}}),
		WithClock(func() time.Time { return testDate }),
		WithTuning(tun),
	)
	g.Reset(testConfig())
	startGame(t, g)

	for _, y := range []int{Height - 2, Height - 1} {
		for x := 0; x < Width; x++ {
			if x == 4 || x == 5 {
				continue
			}
			g.board[y][x] = core.ColorGray
		}
	}

	g.Step(frame(core.ActionHardDrop))
	g.gravityTicker = g.gravityEvery - 1
	res := g.Step(core.NewInputFrame())

	if !res.Events.Has(core.EventLevelUp) {
		t.Fatal("crossing the threshold should report a level up")
	}

	// Score 200 crosses both the level-1 and level-2 thresholds, but a
	// single lock advances the level exactly once.
	if g.level != 2 {
		t.Errorf("level = %d, expected 2", g.level)
	}
	if g.dropInterval != 550*time.Millisecond {
		t.Errorf("dropInterval = %v, expected 550ms", g.dropInterval)
	}
	if g.gravityEvery != 33 {
		t.Errorf("gravity quota should re-derive from the new interval, got %d", g.gravityEvery)
	}
	if g.gravityTicker != 0 {
		t.Errorf("gravity countdown should re-arm on interval change, got %d", g.gravityTicker)
	}
	if g.levelUpTicks == 0 {
		t.Error("level-up signal should be armed")
	}
}

func TestDropIntervalFloor(t *testing.T) {
	g := newTestGame(t, KindO)
	startGame(t, g)
	g.score = 1_000_000

	ups := 0
	for g.maybeLevelUp() {
		ups++
		if g.dropInterval < g.tuning.MinDropInterval {
			t.Fatalf("interval %v fell below the minimum after %d level ups", g.dropInterval, ups)
		}
	}

	if g.dropInterval != g.tuning.MinDropInterval {
		t.Errorf("interval = %v, expected the %v floor", g.dropInterval, g.tuning.MinDropInterval)
	}
}

func TestGameOverWhenSpawnBlocked(t *testing.T) {
	g := newTestGame(t, KindO)
	startGame(t, g)

	// Block the spawn anchor so the piece after this lock cannot exist
	g.board[0][4] = core.ColorGray

	g.Step(frame(core.ActionHardDrop))
	g.gravityTicker = g.gravityEvery - 1
	res := g.Step(core.NewInputFrame())

	if !res.Events.Has(core.EventLocked) {
		t.Error("the dropped piece itself still locks")
	}
	if !res.Events.Has(core.EventGameOver) {
		t.Error("blocked spawn should report game over")
	}
	if g.phase != PhaseGameOver {
		t.Errorf("phase = %v, expected game over", g.phase)
	}
	if !res.State.GameOver {
		t.Error("state summary should flag game over")
	}
}

func TestGameOverAtCeilingWithoutLock(t *testing.T) {
	g := newTestGame(t, KindO)
	startGame(t, g)

	// The piece sits at the spawn row and the cell below is taken:
	// the descend fails while Y < 1, which ends the game without a merge.
	g.board[2][4] = core.ColorGray

	res := g.Step(frame(core.ActionSoftDrop))

	if !res.Events.Has(core.EventGameOver) {
		t.Fatal("topped-out descend should report game over")
	}
	if res.Events.Has(core.EventLocked) {
		t.Error("a topped-out piece must not merge into the board")
	}
	if g.board[0][4] != core.ColorDefault || g.board[1][4] != core.ColorDefault {
		t.Error("spawn cells should stay empty")
	}
	if g.phase != PhaseGameOver {
		t.Errorf("phase = %v, expected game over", g.phase)
	}
}

func TestActionsIgnoredOutsideRunning(t *testing.T) {
	g := newTestGame(t, KindO)

	// Before the first start nothing reacts
	res := g.Step(frame(core.ActionMoveLeft, core.ActionRotate, core.ActionSoftDrop, core.ActionHardDrop))
	if g.phase != PhaseNotStarted {
		t.Fatalf("phase = %v, expected not started", g.phase)
	}
	if res.State.Score != 0 || res.Events != 0 {
		t.Error("actions before start should be no-ops")
	}

	// After game over movement is ignored too
	startGame(t, g)
	g.phase = PhaseGameOver
	x, y := g.active.X, g.active.Y

	for i := 0; i < 50; i++ {
		g.Step(frame(core.ActionMoveLeft, core.ActionSoftDrop))
	}
	if g.active.X != x || g.active.Y != y {
		t.Errorf("piece moved to (%d,%d) while the game was over", g.active.X, g.active.Y)
	}
}

func TestRestartRecordsSessionHighScore(t *testing.T) {
	g := newTestGame(t, KindO)
	startGame(t, g)

	if len(g.HighScores()) != 0 {
		t.Fatal("the first start must not record a score")
	}

	g.score = 700
	g.Step(frame(core.ActionRestart))

	if g.phase != PhaseRunning {
		t.Fatal("restart should enter the running phase")
	}
	if g.score != 0 || g.level != 1 || g.board != (Board{}) {
		t.Error("restart should reset the round state")
	}

	scores := g.HighScores()
	if len(scores) != 1 || scores[0].Score != 700 {
		t.Fatalf("high scores = %v, expected the ended round's 700", scores)
	}
	if !scores[0].Date.Equal(testDate) {
		t.Errorf("entry date = %v, expected the injected clock value", scores[0].Date)
	}

	// A game-over round joins the list through the start action as well
	g.score = 300
	g.phase = PhaseGameOver
	g.Step(frame(core.ActionStart))

	scores = g.HighScores()
	if len(scores) != 2 || scores[0].Score != 700 || scores[1].Score != 300 {
		t.Errorf("high scores = %v, expected [700 300]", scores)
	}
}

func TestHighScoreListSortedAndCapped(t *testing.T) {
	g := newTestGame(t, KindO)
	startGame(t, g)

	for _, s := range []int{700, 300, 800, 100, 900, 200, 50, 400} {
		g.score = s
		g.recordHighScore()
	}

	scores := g.HighScores()
	if len(scores) != MaxHighScores {
		t.Fatalf("list length = %d, expected %d", len(scores), MaxHighScores)
	}
	want := []int{900, 800, 700, 400, 300}
	for i, hs := range scores {
		if hs.Score != want[i] {
			t.Errorf("scores[%d] = %d, expected %d", i, hs.Score, want[i])
		}
	}
}

func TestTransientSignalsDecay(t *testing.T) {
	g := newTestGame(t, KindO)
	startGame(t, g)

	g.flashRows = []int{5}
	g.flashTicks = 3
	g.levelUpTicks = 2

	g.decaySignals()
	g.decaySignals()
	if g.flashRows == nil {
		t.Fatal("flash should survive until its countdown expires")
	}
	if g.Snapshot().LevelUpFlash {
		t.Error("level-up signal should have expired")
	}

	g.decaySignals()
	if g.flashRows != nil {
		t.Error("flash rows should clear when the countdown expires")
	}
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed and scripted inputs end up identical.
	newGame := func() *Game {
		g := New(WithClock(func() time.Time { return testDate }))
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 12345})
		return g
	}
	g1 := newGame()
	g2 := newGame()

	for i := 0; i < 600; i++ {
		in := core.NewInputFrame()
		if i == 0 {
			in.Set(core.ActionStart)
		}
		if i%7 == 3 {
			in.Set(core.ActionMoveLeft)
		}
		if i%11 == 5 {
			in.Set(core.ActionRotate)
		}
		if i%13 == 8 {
			in.Set(core.ActionMoveRight)
		}
		if i%50 == 25 {
			in.Set(core.ActionHardDrop)
		}
		if i == 400 {
			in.Set(core.ActionRestart)
		}
		g1.Step(in)
		g2.Step(in)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()

	if s1.Tick != s2.Tick || s1.Phase != s2.Phase {
		t.Errorf("lifecycle mismatch: tick %d/%d phase %v/%v", s1.Tick, s2.Tick, s1.Phase, s2.Phase)
	}
	if s1.Score != s2.Score || s1.Level != s2.Level || s1.Lines != s2.Lines {
		t.Errorf("progress mismatch: %d/%d/%d vs %d/%d/%d",
			s1.Score, s1.Level, s1.Lines, s2.Score, s2.Level, s2.Lines)
	}
	if s1.Board != s2.Board {
		t.Error("board mismatch")
	}
	if !reflect.DeepEqual(s1.Active, s2.Active) {
		t.Errorf("active piece mismatch: %+v vs %+v", s1.Active, s2.Active)
	}
	if s1.Next.Kind != s2.Next.Kind {
		t.Errorf("next piece mismatch: %v vs %v", s1.Next.Kind, s2.Next.Kind)
	}
	if s1.DropInterval != s2.DropInterval {
		t.Errorf("drop interval mismatch: %v vs %v", s1.DropInterval, s2.DropInterval)
	}
	if !reflect.DeepEqual(s1.HighScores, s2.HighScores) {
		t.Errorf("high score mismatch: %v vs %v", s1.HighScores, s2.HighScores)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, KindO)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	content := screen.String()
	if !strings.Contains(content, "Tetris") {
		t.Error("HUD should contain the title")
	}
	if !strings.Contains(content, "Press Enter to start") {
		t.Error("the idle screen should show the start hint")
	}

	startGame(t, g)
	g.Render(screen)
	content = screen.String()

	if strings.Contains(content, "Press Enter to start") {
		t.Error("the start overlay should disappear once running")
	}
	if !strings.Contains(content, "NEXT") {
		t.Error("the sidebar should label the preview")
	}

	// The spawned piece shows up in its color near the top of the well
	found := false
	for y := 0; y < screen.Height() && !found; y++ {
		for x := 0; x < screen.Width(); x++ {
			if screen.GetCell(x, y).Color == core.ColorYellow {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("the active piece should render in its catalog color")
	}

	g.phase = PhaseGameOver
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("the game-over overlay should render")
	}
}
