// Package sound synthesizes short audio cues for game events and plays
// them through the system speaker via beep. No sound assets are shipped;
// every effect is generated from oscillators at startup.
package sound

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player plays synthesized game cues over a shared mixer.
// A nil *Player is valid and silent, so callers can disable audio
// by simply not constructing one.
type Player struct {
	mixer       *beep.Mixer
	initialized bool
}

// NewPlayer initializes the speaker and returns a ready Player.
// Initializing the audio device can fail on headless systems; callers
// should treat that as non-fatal and continue without sound.
func NewPlayer() (*Player, error) {
	p := &Player{mixer: &beep.Mixer{}}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return p, nil
}

// Close stops all playing cues. The speaker itself stays initialized;
// beep does not expose a way to tear it down.
func (p *Player) Close() {
	if p == nil || !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
}

// play adds a finished streamer to the mixer under the speaker lock.
// The mixer drops streamers automatically once they are drained.
func (p *Player) play(s beep.Streamer) {
	if p == nil || !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// PlayLock plays the piece-settled thud.
func (p *Player) PlayLock() {
	p.play(lockEffect(sampleRate))
}

// PlayHardDrop plays the slam for a hard drop.
func (p *Player) PlayHardDrop() {
	p.play(hardDropEffect(sampleRate))
}

// PlayLineClear plays the clear chime, pitched by the number of rows.
func (p *Player) PlayLineClear(rows int) {
	p.play(lineClearEffect(sampleRate, rows))
}

// PlayLevelUp plays the level-up arpeggio.
func (p *Player) PlayLevelUp() {
	p.play(levelUpEffect(sampleRate))
}

// PlayGameOver plays the descending game-over line.
func (p *Player) PlayGameOver() {
	p.play(gameOverEffect(sampleRate))
}
