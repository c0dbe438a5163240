package testutil

import (
	"math"

	"github.com/cwbudde/algo-analyzer/dsp/pcm"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// ToneBuffer returns a raw 16-bit PCM buffer of samples holding the sum of
// sines at freqsHz, each with the given amplitude.
func ToneBuffer(sampleRate, amplitude float64, samples int, freqsHz ...float64) []byte {
	mix := make([]float64, samples)
	for _, f := range freqsHz {
		for i, v := range DeterministicSine(f, sampleRate, amplitude, samples) {
			mix[i] += v
		}
	}
	return pcm.Encode(mix)
}

// SilentBuffer returns an all-zero raw buffer of the given sample count.
func SilentBuffer(samples int) []byte {
	return make([]byte, samples*pcm.BytesPerSample)
}
