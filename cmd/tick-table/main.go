// ABOUTME: Prints where every tick of a measure lands
// ABOUTME: Useful for checking meter and tempo settings before recording
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/Resonate-Protocol/autorhythm/pkg/rhythm"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

func main() {
	beats := flag.Int("beats", 4, "Beats per measure (1-32)")
	subdivisions := flag.Int("subdivisions", 1, "Ticks per beat (1-4)")
	bpm := flag.Int("bpm", 120, "Tempo in beats per minute (30-480)")
	sampleRate := flag.Int("sample-rate", 48000, "Sample rate in Hz")
	flag.Parse()

	tempo, err := rhythm.Configure(*beats, *subdivisions, *bpm, *sampleRate)
	if err != nil {
		log.Fatalf("Invalid tempo: %v", err)
	}

	offsets, kinds := tempo.TickOnsets()

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "beat", "kind", "sample", "seconds")

	for i, offset := range offsets {
		beat := offset/tempo.BeatDurationSamples() + 1
		t.Row(
			strconv.Itoa(i+1),
			strconv.Itoa(beat),
			kinds[i].String(),
			strconv.Itoa(offset),
			fmt.Sprintf("%.4f", float64(offset)/float64(tempo.SampleRate())),
		)
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	fmt.Fprintln(os.Stdout, header.Render(tempo.String()))
	fmt.Fprintln(os.Stdout, t.Render())
}
