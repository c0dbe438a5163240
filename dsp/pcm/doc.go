// Package pcm converts between raw signed 16-bit little-endian mono sample
// buffers and normalized float64 samples.
//
// A sample occupies two bytes, low byte first. Decoding divides by 32768, so
// normalized samples lie in [-1, 1). Encoding clamps to the int16 range.
package pcm
