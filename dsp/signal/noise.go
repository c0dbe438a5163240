package signal

import "fmt"

// NoiseReader is an endless io.Reader of signed 16-bit little-endian mono PCM
// white noise. Two readers from generators with the same seed produce the
// same bytes.
type NoiseReader struct {
	stream pcmStream
}

// NoiseReader returns a PCM stream of uniform white noise peaking at
// amplitude, which must lie in [0, 1].
func (g *Generator) NoiseReader(amplitude float64) (*NoiseReader, error) {
	if amplitude < 0 || amplitude > 1 {
		return nil, fmt.Errorf("noise amplitude must be in [0, 1]: %f", amplitude)
	}
	return &NoiseReader{stream: pcmStream{next: g.noise(amplitude)}}, nil
}

// Read fills p with PCM bytes. It never returns an error.
func (r *NoiseReader) Read(p []byte) (int, error) {
	return r.stream.read(p), nil
}
