// Package source adapts sample supplies to the analyzer's input format:
// signed 16-bit little-endian mono PCM at the analyzer's sample rate.
//
// [OpenWAV] decodes PCM WAV files, downmixes to mono and resamples with a
// streaming polyphase FIR ([Resampler]). [Paced] throttles any reader to real
// time so file and synthetic sources behave like a live capture.
package source
