package source

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-analyzer/dsp/pcm"
	"github.com/cwbudde/algo-analyzer/dsp/spectrum"
	"github.com/cwbudde/algo-analyzer/internal/testutil"
)

// writeWAV writes interleaved integer samples to a WAV file in t.TempDir.
func writeWAV(t *testing.T, sampleRate, bitDepth, channels int, data []int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, 1)
	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
	return path
}

func readAllSamples(t *testing.T, path string, rate int) (*WAVReader, []float64) {
	t.Helper()
	r, err := OpenWAV(path, rate)
	if err != nil {
		t.Fatalf("OpenWAV: %v", err)
	}
	t.Cleanup(func() { r.Close() })

	raw, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	samples, err := pcm.Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return r, samples
}

func TestWAV16BitMonoPassesThrough(t *testing.T) {
	data := []int{0, 1000, -1000, 32767, -32768, 42}
	path := writeWAV(t, 8192, 16, 1, data)

	r, got := readAllSamples(t, path, 8192)
	if r.SourceRate() != 8192 || r.Channels() != 1 || r.BitDepth() != 16 || r.Rate() != 8192 {
		t.Fatalf("format = %d Hz %d ch %d bit", r.SourceRate(), r.Channels(), r.BitDepth())
	}
	if len(got) != len(data) {
		t.Fatalf("len = %d, want %d", len(got), len(data))
	}
	for i, v := range data {
		if want := float64(v) / pcm.Scale; got[i] != want {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestWAVStereoDownmix(t *testing.T) {
	data := []int{1000, 3000, -2000, 2000, 500, 500}
	path := writeWAV(t, 8192, 16, 2, data)

	_, got := readAllSamples(t, path, 8192)
	want := []float64{2000 / pcm.Scale, 0, 500 / pcm.Scale}
	testutil.RequireSliceNearlyEqual(t, got, want, 0)
}

func TestWAVBitDepths(t *testing.T) {
	tests := []struct {
		name     string
		bitDepth int
		data     []int
		want     []float64
	}{
		{"8-bit unsigned", 8, []int{128, 192, 64}, []float64{0, 0.5, -0.5}},
		{"24-bit", 24, []int{1 << 22, -(1 << 22), 0}, []float64{0.5, -0.5, 0}},
		{"32-bit", 32, []int{1 << 30, -(1 << 30)}, []float64{0.5, -0.5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeWAV(t, 8192, tc.bitDepth, 1, tc.data)
			_, got := readAllSamples(t, path, 8192)
			testutil.RequireSliceNearlyEqual(t, got, tc.want, 1/pcm.Scale)
		})
	}
}

func TestWAVResamplesToTargetRate(t *testing.T) {
	const (
		inRate  = 16000
		outRate = 8192
		n       = 16000
	)
	sine := testutil.DeterministicSine(1000, inRate, 0.5, n)
	data := make([]int, n)
	for i, v := range sine {
		data[i] = int(pcm.Quantize(v))
	}
	path := writeWAV(t, inRate, 16, 1, data)

	_, got := readAllSamples(t, path, outRate)
	wantLen := n * outRate / inRate
	if math.Abs(float64(len(got)-wantLen)) > 2 {
		t.Fatalf("len = %d, want about %d", len(got), wantLen)
	}

	// Skip the filter warm-up and check the tone landed on 1000 Hz.
	window := got[1024 : 1024+1024]
	mags, err := spectrum.Transform(pcm.Encode(window))
	if err != nil {
		t.Fatal(err)
	}
	wantBin := 1000.0 * 1024 / outRate
	if got := testutil.ArgMax(mags); math.Abs(float64(got)-wantBin) > 1 {
		t.Fatalf("peak bin = %d, want %v +/- 1", got, wantBin)
	}
}

func TestNewWAVReaderRejectsGarbage(t *testing.T) {
	_, err := NewWAVReader(bytes.NewReader([]byte("definitely not a RIFF file")), 8192)
	if !errors.Is(err, ErrInvalidWAV) {
		t.Fatalf("error = %v, want ErrInvalidWAV", err)
	}
}

func TestOpenWAVMissingFile(t *testing.T) {
	_, err := OpenWAV(filepath.Join(t.TempDir(), "missing.wav"), 8192)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error = %v, want os.ErrNotExist", err)
	}
}

func TestOpenWAVInvalidTargetRate(t *testing.T) {
	path := writeWAV(t, 8192, 16, 1, []int{0, 0})
	if _, err := OpenWAV(path, 0); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("error = %v, want ErrInvalidRate", err)
	}
}
