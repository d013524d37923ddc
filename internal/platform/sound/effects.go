package sound

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw audio wave for a fixed duration.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// newOscillator creates an oscillator streaming the given wave shape.
func newOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// newEnvelope wraps a streamer with attack/release volume shaping.
func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		var vol float64 = 1.0

		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = float64(remaining) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps a streamer with a linear volume level.
// math.Log2(0) is -Inf, so zero volume becomes a silent streamer.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// note shapes a single oscillator tone into a playable blip.
func note(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return newEnvelope(
		newOscillator(freq, duration, wave, rate),
		duration,
		4*time.Millisecond,
		duration/2,
		rate,
	)
}

// lockEffect is a short low thud for a piece settling into the stack.
func lockEffect(rate beep.SampleRate) beep.Streamer {
	return newVolume(note(196.0, 55*time.Millisecond, WaveSquare, rate), 0.35)
}

// hardDropEffect is a heavier slam: a low saw with a noise transient on top.
func hardDropEffect(rate beep.SampleRate) beep.Streamer {
	body := note(110.0, 90*time.Millisecond, WaveSaw, rate)
	crack := note(0, 30*time.Millisecond, WaveNoise, rate)
	return newVolume(beep.Mix(
		newVolume(body, 0.8),
		newVolume(crack, 0.25),
	), 0.4)
}

// lineClearEffect is an ascending two-note chime. The second note rises
// a whole tone for every extra row cleared at once.
func lineClearEffect(rate beep.SampleRate, rows int) beep.Streamer {
	if rows < 1 {
		rows = 1
	}
	if rows > 4 {
		rows = 4
	}

	// G5 up to B5/C#6/D#6/F6 depending on the clear size
	secondFreq := 987.77 * math.Pow(2, float64(rows-1)/6.0)
	first := note(783.99, 80*time.Millisecond, WaveSquare, rate)
	second := note(secondFreq, 140*time.Millisecond, WaveSquare, rate)
	return newVolume(beep.Seq(first, second), 0.35)
}

// levelUpEffect is a rising three-note arpeggio (C5, E5, G5).
func levelUpEffect(rate beep.SampleRate) beep.Streamer {
	return newVolume(beep.Seq(
		note(523.25, 90*time.Millisecond, WaveSquare, rate),
		note(659.25, 90*time.Millisecond, WaveSquare, rate),
		note(783.99, 160*time.Millisecond, WaveSquare, rate),
	), 0.35)
}

// gameOverEffect is a slow descending line ending on a low drone.
func gameOverEffect(rate beep.SampleRate) beep.Streamer {
	return newVolume(beep.Seq(
		note(392.00, 160*time.Millisecond, WaveSaw, rate),
		note(329.63, 160*time.Millisecond, WaveSaw, rate),
		note(261.63, 160*time.Millisecond, WaveSaw, rate),
		note(196.00, 320*time.Millisecond, WaveSaw, rate),
	), 0.4)
}
