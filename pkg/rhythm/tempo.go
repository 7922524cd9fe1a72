// ABOUTME: Tempo model for one measure of clicks
// ABOUTME: Validates meter and tempo, derives beat and measure durations
package rhythm

import (
	"errors"
	"fmt"
	"time"
)

const (
	MinBeatsPerBar  = 1
	MaxBeatsPerBar  = 32
	MinSubdivisions = 1
	MaxSubdivisions = 4
	MinBPM          = 30
	MaxBPM          = 480

	// DefaultBaseFrequency is the click pitch (A4)
	DefaultBaseFrequency = 440.0
)

var (
	ErrBeatsPerBarRange  = errors.New("beats per bar out of range")
	ErrSubdivisionsRange = errors.New("subdivisions out of range")
	ErrBPMRange          = errors.New("tempo out of range")
	ErrSampleRate        = errors.New("invalid sample rate")
)

// Tempo holds the meter, tempo and click oscillator state for one session.
// The meter and tempo are fixed by Configure; the oscillator fields are
// only advanced by Generate.
type Tempo struct {
	beatsPerBar  int
	subdivisions int
	bpm          int
	sampleRate   int

	beatDurationSamples    int
	measureDurationSeconds float64

	// Oscillator state
	phase          float64
	baseFrequency  float64
	samplesEmitted int
}

// Configure validates the meter and tempo and returns a Tempo ready for Generate
func Configure(beatsPerBar, subdivisions, bpm, sampleRate int) (*Tempo, error) {
	if beatsPerBar < MinBeatsPerBar || beatsPerBar > MaxBeatsPerBar {
		return nil, fmt.Errorf("%w: %d (want %d-%d)", ErrBeatsPerBarRange, beatsPerBar, MinBeatsPerBar, MaxBeatsPerBar)
	}
	if subdivisions < MinSubdivisions || subdivisions > MaxSubdivisions {
		return nil, fmt.Errorf("%w: %d (want %d-%d)", ErrSubdivisionsRange, subdivisions, MinSubdivisions, MaxSubdivisions)
	}
	if bpm < MinBPM || bpm > MaxBPM {
		return nil, fmt.Errorf("%w: %d bpm (want %d-%d)", ErrBPMRange, bpm, MinBPM, MaxBPM)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrSampleRate, sampleRate)
	}
	// Every tick needs room for a burst and its trailing silence
	if sampleRate*60/bpm < 2*subdivisions {
		return nil, fmt.Errorf("%w: %dHz is too low for %d bpm with %d subdivisions", ErrSampleRate, sampleRate, bpm, subdivisions)
	}

	return &Tempo{
		beatsPerBar:  beatsPerBar,
		subdivisions: subdivisions,
		bpm:          bpm,
		sampleRate:   sampleRate,

		// floor(sampleRate / (bpm/60)) without going through floating point
		beatDurationSamples:    sampleRate * 60 / bpm,
		measureDurationSeconds: float64(beatsPerBar) / (float64(bpm) / 60.0),

		phase:         0,
		baseFrequency: DefaultBaseFrequency,
	}, nil
}

func (t *Tempo) BeatsPerBar() int  { return t.beatsPerBar }
func (t *Tempo) Subdivisions() int { return t.subdivisions }
func (t *Tempo) BPM() int          { return t.bpm }
func (t *Tempo) SampleRate() int   { return t.sampleRate }

// BeatDurationSamples returns the length of one quarter-note beat in samples
func (t *Tempo) BeatDurationSamples() int { return t.beatDurationSamples }

// MeasureDurationSeconds returns the nominal measure length in seconds
func (t *Tempo) MeasureDurationSeconds() float64 { return t.measureDurationSeconds }

// MeasureDuration returns the nominal measure length
func (t *Tempo) MeasureDuration() time.Duration {
	return time.Duration(t.measureDurationSeconds * float64(time.Second))
}

// TotalFrames returns the exact sample count of one measure
func (t *Tempo) TotalFrames() int {
	return t.beatDurationSamples * t.beatsPerBar
}

// SmallestNote returns the denominator of the smallest rhythmic unit (1/N note)
func (t *Tempo) SmallestNote() int {
	return 4 * t.subdivisions
}

// BaseFrequency returns the click pitch in Hz
func (t *Tempo) BaseFrequency() float64 { return t.baseFrequency }

// SamplesEmitted returns how many samples Generate has produced so far
func (t *Tempo) SamplesEmitted() int { return t.samplesEmitted }

func (t *Tempo) String() string {
	return fmt.Sprintf("%d/4 at %d bpm, 1/%d note subdivision", t.beatsPerBar, t.bpm, t.SmallestNote())
}
