package source

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-analyzer/dsp/pcm"
)

// Errors returned when opening a WAV source.
var (
	ErrInvalidWAV  = errors.New("source: not a valid WAV file")
	ErrUnsupported = errors.New("source: unsupported WAV format")
)

// readFrames is the number of source frames decoded per fill.
const readFrames = 4096

// WAVReader streams a PCM WAV file as 16-bit little-endian mono at a target
// sample rate.
type WAVReader struct {
	dec    *wav.Decoder
	closer io.Closer

	sourceRate int
	rate       int
	channels   int
	bitDepth   int

	buf  *audio.IntBuffer
	rs   *Resampler
	mono []float64
	out  []byte
	done bool
}

// OpenWAV opens the WAV file at path for reading at targetRate Hz.
func OpenWAV(path string, targetRate int) (*WAVReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %q: %w", path, err)
	}
	r, err := NewWAVReader(f, targetRate)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("source: %q: %w", path, err)
	}
	r.closer = f
	return r, nil
}

// NewWAVReader decodes WAV data from rs for reading at targetRate Hz.
func NewWAVReader(rs io.ReadSeeker, targetRate int) (*WAVReader, error) {
	if targetRate <= 0 {
		return nil, fmt.Errorf("%w: target %d", ErrInvalidRate, targetRate)
	}
	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrInvalidWAV
	}
	if dec.WavAudioFormat != 1 {
		return nil, fmt.Errorf("%w: audio format %d is not PCM", ErrUnsupported, dec.WavAudioFormat)
	}

	r := &WAVReader{
		dec:        dec,
		sourceRate: int(dec.SampleRate),
		rate:       targetRate,
		channels:   int(dec.NumChans),
		bitDepth:   int(dec.BitDepth),
	}
	switch r.bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d-bit samples", ErrUnsupported, r.bitDepth)
	}
	if r.channels < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupported, r.channels)
	}
	if r.sourceRate != targetRate {
		rs, err := NewResampler(r.sourceRate, targetRate)
		if err != nil {
			return nil, err
		}
		r.rs = rs
	}

	r.buf = &audio.IntBuffer{
		Data:           make([]int, readFrames*r.channels),
		Format:         &audio.Format{NumChannels: r.channels, SampleRate: r.sourceRate},
		SourceBitDepth: r.bitDepth,
	}
	r.mono = make([]float64, readFrames)
	return r, nil
}

// SourceRate returns the sample rate stored in the file.
func (r *WAVReader) SourceRate() int { return r.sourceRate }

// Rate returns the output sample rate.
func (r *WAVReader) Rate() int { return r.rate }

// Channels returns the channel count of the file.
func (r *WAVReader) Channels() int { return r.channels }

// BitDepth returns the sample size of the file in bits.
func (r *WAVReader) BitDepth() int { return r.bitDepth }

// Read implements io.Reader. It returns io.EOF after the last sample.
func (r *WAVReader) Read(p []byte) (int, error) {
	for len(r.out) == 0 {
		if r.done {
			return 0, io.EOF
		}
		if err := r.fill(); err != nil {
			return 0, err
		}
	}
	n := copy(p, r.out)
	r.out = r.out[n:]
	return n, nil
}

// Close closes the underlying file, if OpenWAV opened it.
func (r *WAVReader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func (r *WAVReader) fill() error {
	n, err := r.dec.PCMBuffer(r.buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("source: decode wav: %w", err)
	}
	frames := n / r.channels
	if frames == 0 {
		r.done = true
		return nil
	}

	mono := r.mono[:frames]
	for i := range mono {
		var sum float64
		for c := 0; c < r.channels; c++ {
			sum += r.normalize(r.buf.Data[i*r.channels+c])
		}
		mono[i] = sum / float64(r.channels)
	}
	if r.rs != nil {
		mono = r.rs.Process(mono)
	}
	r.out = pcm.Encode(mono)
	return nil
}

// normalize maps a decoded sample to [-1, 1). 8-bit WAV samples are unsigned.
func (r *WAVReader) normalize(v int) float64 {
	if r.bitDepth == 8 {
		return float64(v-128) / 128
	}
	return float64(v) / float64(int64(1)<<(r.bitDepth-1))
}
