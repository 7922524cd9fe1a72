// ABOUTME: Click generator for the rhythm engine
// ABOUTME: Renders gated sine bursts on beats and subdivision ticks
package rhythm

import "math"

// TickKind classifies a tick inside the measure
type TickKind int

const (
	// TickDownbeat is the first tick of the measure
	TickDownbeat TickKind = iota
	// TickBeat is the first tick of any other beat
	TickBeat
	// TickSubdivision is a tick between beats
	TickSubdivision
)

// voice describes how one tick kind sounds
type voice struct {
	frequencyRatio float64 // relative to the base frequency
	amplitude      float64
	gateMs         int
}

var voices = [...]voice{
	TickDownbeat:    {frequencyRatio: 2.0, amplitude: 0.9, gateMs: 50},
	TickBeat:        {frequencyRatio: 1.0, amplitude: 0.6, gateMs: 40},
	TickSubdivision: {frequencyRatio: 1.0, amplitude: 0.3, gateMs: 20},
}

const (
	// Envelope decays by e^-decayConstants across the gate
	decayConstants = 5.0
	// Fraction of the gate used for the final linear release to zero
	releaseFraction = 0.1
)

// Generate fills dst with the next len(dst) samples of the measure and advances
// the tempo's sample counter by the same amount. The position inside the measure
// is taken from the counter alone, so consecutive calls of any size compose into
// one continuous waveform.
func Generate(t *Tempo, dst []float32) {
	total := t.TotalFrames()
	if total <= 0 {
		clear(dst)
		return
	}

	for i := range dst {
		dst[i] = t.next(t.samplesEmitted % total)
		t.samplesEmitted++
	}
}

// next renders the sample at pos (0 <= pos < TotalFrames)
func (t *Tempo) next(pos int) float32 {
	beat := pos / t.beatDurationSamples
	inBeat := pos % t.beatDurationSamples

	tick := t.tickAt(inBeat)
	start := t.tickStart(tick)
	offset := inBeat - start
	tickLen := t.tickStart(tick+1) - start

	kind := TickSubdivision
	if tick == 0 {
		kind = TickBeat
		if beat == 0 {
			kind = TickDownbeat
		}
	}
	v := voices[kind]

	if offset == 0 {
		t.phase = 0
	}

	gate := t.gateSamples(v, tickLen)
	if offset >= gate {
		return 0
	}

	sample := v.amplitude * envelope(offset, gate) * math.Sin(t.phase)

	t.phase += 2 * math.Pi * t.baseFrequency * v.frequencyRatio / float64(t.sampleRate)
	if t.phase >= 2*math.Pi {
		t.phase -= 2 * math.Pi
	}

	return float32(sample)
}

// tickStart returns the in-beat offset of tick k; tickStart(subdivisions) is the beat length
func (t *Tempo) tickStart(k int) int {
	return k * t.beatDurationSamples / t.subdivisions
}

// tickAt returns the index of the tick containing inBeat
func (t *Tempo) tickAt(inBeat int) int {
	k := inBeat * t.subdivisions / t.beatDurationSamples
	if k+1 < t.subdivisions && t.tickStart(k+1) <= inBeat {
		k++
	}
	return k
}

// gateSamples returns the burst length, at most half the tick so it ends in silence
func (t *Tempo) gateSamples(v voice, tickLen int) int {
	gate := t.sampleRate * v.gateMs / 1000
	if limit := tickLen / 2; gate > limit {
		gate = limit
	}
	return gate
}

// envelope returns the burst gain at offset, reaching exactly zero at gate
func envelope(offset, gate int) float64 {
	x := float64(offset) / float64(gate)
	gain := math.Exp(-decayConstants * x)

	if remaining := 1 - x; remaining < releaseFraction {
		gain *= remaining / releaseFraction
	}
	return gain
}

// TickOnsets returns the sample offsets of every tick in the measure along with their kinds
func (t *Tempo) TickOnsets() ([]int, []TickKind) {
	n := t.beatsPerBar * t.subdivisions
	offsets := make([]int, 0, n)
	kinds := make([]TickKind, 0, n)

	for beat := 0; beat < t.beatsPerBar; beat++ {
		for k := 0; k < t.subdivisions; k++ {
			offsets = append(offsets, beat*t.beatDurationSamples+t.tickStart(k))
			switch {
			case k > 0:
				kinds = append(kinds, TickSubdivision)
			case beat == 0:
				kinds = append(kinds, TickDownbeat)
			default:
				kinds = append(kinds, TickBeat)
			}
		}
	}
	return offsets, kinds
}

func (k TickKind) String() string {
	switch k {
	case TickDownbeat:
		return "downbeat"
	case TickBeat:
		return "beat"
	case TickSubdivision:
		return "subdivision"
	default:
		return "unknown"
	}
}
