package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-analyzer/analyzer"
	"github.com/cwbudde/algo-analyzer/dsp/signal"
	"github.com/cwbudde/algo-analyzer/internal/source"
)

// toneAmplitude is the peak level of the synthetic source.
const toneAmplitude = 0.5

// maxListedPeaks bounds the PEAKS column.
const maxListedPeaks = 3

// reporter prints one tab-aligned row per frame. It implements
// analyzer.Consumer. Frames whose gains are not all finite, such as the first
// sound after silence, are marked "unbounded" in the NOTE column.
type reporter struct {
	tw        *tabwriter.Writer
	beatsOnly bool
	header    bool
	err       error
}

func newReporter(w io.Writer, beatsOnly bool) *reporter {
	return &reporter{
		tw:        tabwriter.NewWriter(w, 10, 0, 2, ' ', 0),
		beatsOnly: beatsOnly,
	}
}

// Consume writes the row for f and flushes it. The first write error is kept
// and later frames are ignored.
func (r *reporter) Consume(f *analyzer.Frame) {
	if r.err != nil {
		return
	}
	if r.beatsOnly && f.Beat() == analyzer.BeatNone {
		return
	}
	if !r.header {
		r.header = true
		if _, err := fmt.Fprintln(r.tw, "FRAME\tDOMINANT [Hz]\tPEAKS [Hz]\tAVG\tAVG GAIN\tMAX BASS\tBASS GAIN\tBEAT\tNOTE"); err != nil {
			r.err = err
			return
		}
	}

	s := f.Summary()
	note := "-"
	if !f.Deltas().Finite() {
		note = "unbounded"
	}
	_, err := fmt.Fprintf(r.tw, "%d\t%.1f\t%s\t%.3f\t%.3g\t%.3f\t%.3g\t%s\t%s\n",
		f.Sequence(),
		f.DominantHz(),
		peakList(f),
		s.Average,
		f.Gain(analyzer.StatAverage),
		s.MaxBass,
		f.Gain(analyzer.StatMaxBass),
		f.Beat(),
		note,
	)
	if err == nil {
		err = r.tw.Flush()
	}
	r.err = err
}

// Err returns the first write error.
func (r *reporter) Err() error { return r.err }

func peakList(f *analyzer.Frame) string {
	peaks := f.Peaks()
	if len(peaks) == 0 {
		return "-"
	}
	if len(peaks) > maxListedPeaks {
		peaks = peaks[:maxListedPeaks]
	}
	binHz := f.BinHz()
	parts := make([]string, len(peaks))
	for i, p := range peaks {
		parts[i] = strconv.FormatFloat(float64(p.Bin)*binHz, 'f', 0, 64)
	}
	return strings.Join(parts, ",")
}

// statusLine summarizes f in one line. A nil frame means nothing has been
// analyzed yet.
func statusLine(f *analyzer.Frame) string {
	if f == nil {
		return "waiting for samples"
	}
	bar := ""
	switch f.Beat() {
	case analyzer.BeatStrong:
		bar = "##"
	case analyzer.BeatSoft:
		bar = "#"
	}
	return fmt.Sprintf("frame %-6d dominant %7.1f Hz  peaks %-2d beat %-6s %s",
		f.Sequence(), f.DominantHz(), len(f.Peaks()), f.Beat(), bar)
}

// renderStatus redraws the status line fps times per second until ctx is
// done. Frames are read through latest only.
func renderStatus(ctx context.Context, w io.Writer, latest *analyzer.Latest, fps float64) {
	ticker := time.NewTicker(time.Duration(float64(time.Second) / fps))
	defer ticker.Stop()

	var last *analyzer.Frame
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(w)
			return
		case <-ticker.C:
			f := latest.Load()
			if f != nil && f == last {
				continue
			}
			last = f
			fmt.Fprintf(w, "\r%-72s", statusLine(f))
		}
	}
}

// sourceFlags selects the sample source. At most one of input, tones and
// noise may be set.
type sourceFlags struct {
	input string
	tones string
	noise float64
	seed  int64
}

// openSource returns the selected sample source together with its close
// function.
func openSource(sf sourceFlags, sampleRate int) (io.Reader, func() error, error) {
	nop := func() error { return nil }

	selected := 0
	for _, set := range []bool{sf.input != "", sf.tones != "", sf.noise != 0} {
		if set {
			selected++
		}
	}
	if selected > 1 {
		return nil, nil, errors.New("-input, -tone and -noise are mutually exclusive")
	}

	switch {
	case sf.input == "-":
		return os.Stdin, nop, nil
	case sf.input != "":
		r, err := source.OpenWAV(sf.input, sampleRate)
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil
	case sf.tones != "":
		freqs, err := parseTones(sf.tones)
		if err != nil {
			return nil, nil, err
		}
		r, err := signal.NewToneReader(sampleRate, toneAmplitude, freqs...)
		if err != nil {
			return nil, nil, err
		}
		return r, nop, nil
	case sf.noise != 0:
		g := signal.NewGenerator(float64(sampleRate), signal.WithSeed(sf.seed))
		r, err := g.NoiseReader(sf.noise)
		if err != nil {
			return nil, nil, err
		}
		return r, nop, nil
	default:
		return nil, nil, errors.New("one of -input, -tone or -noise is required")
	}
}

// parseTones parses a comma-separated list of positive frequencies.
func parseTones(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	out := make([]float64, 0, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid tone %q: %w", field, err)
		}
		if !(v > 0) {
			return nil, fmt.Errorf("invalid tone %q: must be > 0 Hz", field)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, errors.New("no tone frequencies given")
	}
	return out, nil
}
