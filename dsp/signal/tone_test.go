package signal

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/cwbudde/algo-analyzer/dsp/pcm"
)

func readN(t *testing.T, r io.Reader, n int, chunk int) []byte {
	t.Helper()
	var out bytes.Buffer
	buf := make([]byte, chunk)
	for out.Len() < n {
		k, err := r.Read(buf[:min(chunk, n-out.Len())])
		if err != nil {
			t.Fatalf("Read error: %v", err)
		}
		out.Write(buf[:k])
	}
	return out.Bytes()
}

func TestToneReaderChunkingInvariant(t *testing.T) {
	a, err := NewToneReader(8192, 0.5, 200)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewToneReader(8192, 0.5, 200)
	if err != nil {
		t.Fatal(err)
	}

	whole := readN(t, a, 4096, 4096)
	odd := readN(t, b, 4096, 7)
	if !bytes.Equal(whole, odd) {
		t.Fatal("stream differs with odd-sized reads")
	}
}

func TestToneReaderMatchesGenerator(t *testing.T) {
	r, err := NewToneReader(8192, 0.5, 200)
	if err != nil {
		t.Fatal(err)
	}
	got, err := pcm.Decode(readN(t, r, 2048, 2048))
	if err != nil {
		t.Fatal(err)
	}
	want, err := NewGenerator(8192).Sine(200, 0.5, 1024)
	if err != nil {
		t.Fatal(err)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1/pcm.Scale {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNewToneReaderRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		rate  int
		amp   float64
		freqs []float64
	}{
		{"zero rate", 0, 0.5, []float64{100}},
		{"no tones", 8000, 0.5, nil},
		{"amplitude", 8000, 1.5, []float64{100}},
		{"above nyquist", 8000, 0.5, []float64{5000}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewToneReader(tc.rate, tc.amp, tc.freqs...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNoiseReaderMatchesWhiteNoise(t *testing.T) {
	g := NewGenerator(8192, WithSeed(5))
	r, err := g.NoiseReader(0.5)
	if err != nil {
		t.Fatal(err)
	}
	got, err := pcm.Decode(readN(t, r, 1024, 13))
	if err != nil {
		t.Fatal(err)
	}
	want, err := g.WhiteNoise(0.5, 512)
	if err != nil {
		t.Fatal(err)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1/pcm.Scale {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNoiseReaderRejectsAmplitude(t *testing.T) {
	if _, err := NewGenerator(8192).NoiseReader(1.5); err == nil {
		t.Fatal("expected error for amplitude above 1")
	}
}
