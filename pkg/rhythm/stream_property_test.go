// ABOUTME: Property tests for the measure stream
// ABOUTME: Random block sequences must reproduce the single-pull waveform
package rhythm

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestPullCompositionProperty checks that any sequence of block sizes yields
// the same measure as one pull of the whole measure.
func TestPullCompositionProperty(t *testing.T) {
	ref := referenceMeasure(t, 2, 3, 480, 48000)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("concatenated blocks equal the single-pull measure", prop.ForAll(
		func(sizes []int) bool {
			if len(sizes) == 0 {
				sizes = []int{1024}
			}
			stream := newTestStream(t, 2, 3, 480, 48000)

			got := make([]float32, 0, len(ref))
			for i := 0; !stream.Completed(); i++ {
				block, _ := stream.pull(sizes[i%len(sizes)])
				got = append(got, block...)
			}

			if len(got) != len(ref) {
				return false
			}
			for i := range ref {
				if got[i] != ref[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(1, 5000)),
	))

	properties.TestingRun(t)
}

// TestCursorMonotonicProperty checks cursor bounds and the completion invariant
// under arbitrary callback sizes, including empty ones.
func TestCursorMonotonicProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("cursor never decreases nor passes the measure end", prop.ForAll(
		func(sizes []int) bool {
			stream := newTestStream(t, 1, 2, 480, 48000)

			last := 0
			for _, size := range sizes {
				stream.Render(make([]float32, size))

				cursor := stream.Cursor()
				if cursor < last || cursor > stream.TotalFrames() {
					return false
				}
				if stream.Completed() != (cursor == stream.TotalFrames()) {
					return false
				}
				last = cursor
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 2500)),
	))

	properties.TestingRun(t)
}
