package pcm

import (
	"errors"
	"fmt"
	"math"
)

// BytesPerSample is the size of one mono signed 16-bit sample.
const BytesPerSample = 2

// Scale is the divisor used to normalize a signed 16-bit sample.
const Scale = 32768.0

// ErrOddLength is returned when a buffer does not hold a whole number of samples.
var ErrOddLength = errors.New("pcm: odd byte count")

// BufferSize returns the number of bytes delivered per time slice:
// sampleRate * bytesPerFrame / updatesPerSecond.
func BufferSize(sampleRate, updatesPerSecond int) int {
	if sampleRate <= 0 || updatesPerSecond <= 0 {
		return 0
	}
	return sampleRate * BytesPerSample / updatesPerSecond
}

// Sample returns the normalized value of the sample starting at raw[2*i].
func Sample(raw []byte, i int) float64 {
	v := int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
	return float64(v) / Scale
}

// Decode converts raw little-endian samples to normalized floats.
func Decode(raw []byte) ([]float64, error) {
	if len(raw)%BytesPerSample != 0 {
		return nil, fmt.Errorf("%w: %d", ErrOddLength, len(raw))
	}
	out := make([]float64, len(raw)/BytesPerSample)
	DecodeTo(out, raw)
	return out, nil
}

// DecodeTo decodes raw into dst. dst must hold len(raw)/2 samples.
func DecodeTo(dst []float64, raw []byte) {
	for i := range dst {
		dst[i] = Sample(raw, i)
	}
}

// Quantize converts a normalized sample to int16 with rounding and clamping.
func Quantize(x float64) int16 {
	v := math.Round(x * Scale)
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

// Encode converts normalized samples to raw little-endian bytes.
func Encode(samples []float64) []byte {
	out := make([]byte, len(samples)*BytesPerSample)
	EncodeTo(out, samples)
	return out
}

// EncodeTo writes samples into dst, which must hold 2*len(samples) bytes.
func EncodeTo(dst []byte, samples []float64) {
	for i, x := range samples {
		PutInt16(dst[2*i:], Quantize(x))
	}
}

// PutInt16 stores v little-endian into b[0:2].
func PutInt16(b []byte, v int16) {
	u := uint16(v)
	b[0] = byte(u)
	b[1] = byte(u >> 8)
}
