package signal

import (
	"errors"
	"fmt"
	"math"
)

// ToneReader is an endless io.Reader of signed 16-bit little-endian mono PCM
// holding the sum of one or more sine tones. Phase is continuous across Read
// calls.
type ToneReader struct {
	stream    pcmStream
	amplitude float64
	step      []float64
	phase     []float64
}

// NewToneReader returns a ToneReader at sampleRate Hz. Each tone gets
// amplitude/len(freqsHz) so the sum peaks at amplitude.
func NewToneReader(sampleRate int, amplitude float64, freqsHz ...float64) (*ToneReader, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("tone sample rate must be > 0: %d", sampleRate)
	}
	if len(freqsHz) == 0 {
		return nil, errors.New("tone needs at least one frequency")
	}
	if amplitude < 0 || amplitude > 1 {
		return nil, fmt.Errorf("tone amplitude must be in [0, 1]: %f", amplitude)
	}
	r := &ToneReader{
		amplitude: amplitude / float64(len(freqsHz)),
		step:      make([]float64, len(freqsHz)),
		phase:     make([]float64, len(freqsHz)),
	}
	for i, f := range freqsHz {
		if f < 0 || f > float64(sampleRate)/2 {
			return nil, fmt.Errorf("tone frequency %v Hz outside [0, %d]", f, sampleRate/2)
		}
		r.step[i] = 2 * math.Pi * f / float64(sampleRate)
	}
	r.stream.next = r.next
	return r, nil
}

// Read fills p with PCM bytes. It never returns an error.
func (r *ToneReader) Read(p []byte) (int, error) {
	return r.stream.read(p), nil
}

func (r *ToneReader) next() float64 {
	var v float64
	for i, step := range r.step {
		v += r.amplitude * math.Sin(r.phase[i])
		r.phase[i] = math.Mod(r.phase[i]+step, 2*math.Pi)
	}
	return v
}
