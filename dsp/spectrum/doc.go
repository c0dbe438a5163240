// Package spectrum implements the spectral transform of the analyzer: a raw
// signed 16-bit little-endian sample buffer is normalized, run through a
// radix-2 FFT, and reduced to the magnitudes of the non-mirrored half.
//
// FFT plans come from algo-fft; magnitudes are computed with algo-vecmath.
// Input whose sample count is not a power of two is rejected with
// [ErrInvalidInputLength] instead of being truncated or padded.
package spectrum
