// ABOUTME: Entry point for the autorhythm metronome
// ABOUTME: Parses CLI flags, plays one measure and writes it to a WAV file
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Resonate-Protocol/autorhythm/internal/app"
	"github.com/Resonate-Protocol/autorhythm/internal/config"
	"github.com/Resonate-Protocol/autorhythm/internal/ui"
	"github.com/Resonate-Protocol/autorhythm/internal/version"
	"github.com/Resonate-Protocol/autorhythm/pkg/audio/output"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.FromEnv(config.Default())

	flag.IntVar(&cfg.BeatsPerBar, "beats", cfg.BeatsPerBar, "Beats per measure (1-32)")
	flag.IntVar(&cfg.Subdivisions, "subdivisions", cfg.Subdivisions, "Ticks per beat: 1=quarter, 2=eighth, 3=triplet, 4=sixteenth")
	flag.IntVar(&cfg.BPM, "bpm", cfg.BPM, "Tempo in beats per minute (30-480)")
	flag.IntVar(&cfg.SampleRate, "sample-rate", cfg.SampleRate, "Device sample rate in Hz")
	flag.IntVar(&cfg.BitDepth, "bit-depth", cfg.BitDepth, "WAV bit depth (16 or 24)")
	flag.IntVar(&cfg.FramesPerBuffer, "frames-per-buffer", cfg.FramesPerBuffer, "Frames requested per device callback")
	flag.StringVar(&cfg.Backend, "backend", cfg.Backend, "Audio backend: "+strings.Join(output.Backends(), ", "))
	flag.StringVar(&cfg.Output, "output", cfg.Output, "Output WAV file")
	flag.DurationVar(&cfg.PollInterval, "poll", cfg.PollInterval, "Completion poll interval")
	flag.DurationVar(&cfg.Drain, "drain", cfg.Drain, "Time to let the device play out after the measure completes")
	flag.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Log file path")
	flag.BoolVar(&cfg.NoTUI, "no-tui", cfg.NoTUI, "Disable TUI, use streaming logs instead")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	// Set up logging
	f, err := os.OpenFile(cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}

	if cfg.NoTUI {
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	} else {
		log.SetOutput(f)
	}

	err = run(cfg)
	_ = f.Close()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("%v", err)
	}
}

func run(cfg config.Config) error {
	out, err := output.New(cfg.Backend)
	if err != nil {
		return err
	}

	session, err := app.NewSession(cfg, out)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Starting %s session %s", version.String(), session.ID)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.NoTUI {
		session.OnProgress = logProgress()
		return session.Run(ctx)
	}

	return runWithTUI(ctx, cfg, session)
}

// runWithTUI runs the session alongside the progress display
func runWithTUI(ctx context.Context, cfg config.Config, session *app.Session) error {
	tempo := session.Tempo()
	display := ui.New(ui.Info{
		SessionID:    session.ID,
		BeatsPerBar:  tempo.BeatsPerBar(),
		SmallestNote: tempo.SmallestNote(),
		BPM:          tempo.BPM(),
		Duration:     tempo.MeasureDurationSeconds(),
		Format:       cfg.Format().String(),
		Backend:      cfg.Backend,
		Output:       cfg.Output,
	})

	session.OnProgress = func(p app.Progress) {
		display.Progress(ui.ProgressMsg{
			Frames:    p.Frames,
			Total:     p.Total,
			Beat:      p.Beat,
			Completed: p.Completed,
		})
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sessionDone := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(sessionDone)
		err := session.Run(gctx)
		display.Finish(cfg.Output, tempo.TotalFrames(), err)
		return err
	})

	g.Go(func() error {
		if err := display.Run(); err != nil {
			return fmt.Errorf("TUI failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-display.QuitChan():
			log.Printf("Received quit signal from TUI")
			cancel()
		case <-sessionDone:
		}
		return nil
	})

	err := g.Wait()
	if errors.Is(err, app.ErrAborted) {
		log.Printf("Session %s aborted, nothing written", session.ID)
	}
	return err
}

// logProgress logs once per beat in streaming mode
func logProgress() func(app.Progress) {
	lastBeat := 0
	return func(p app.Progress) {
		if p.Completed {
			log.Printf("Measure complete: %d/%d frames", p.Frames, p.Total)
			return
		}
		if p.Beat != lastBeat {
			lastBeat = p.Beat
			log.Printf("Beat %d (%.0f%%)", p.Beat, p.Fraction()*100)
		}
	}
}
