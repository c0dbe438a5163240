package signal

import "github.com/cwbudde/algo-analyzer/dsp/pcm"

// pcmStream encodes an endless sample sequence as 16-bit little-endian PCM.
// A read that ends mid-sample keeps the high byte for the next read, so any
// chunking of the stream yields the same bytes.
type pcmStream struct {
	next func() float64

	pending    byte
	hasPending bool
}

func (s *pcmStream) read(p []byte) int {
	n := 0
	if s.hasPending && len(p) > 0 {
		p[0] = s.pending
		s.hasPending = false
		n = 1
	}
	for len(p)-n >= pcm.BytesPerSample {
		pcm.PutInt16(p[n:], pcm.Quantize(s.next()))
		n += pcm.BytesPerSample
	}
	if n < len(p) {
		var b [pcm.BytesPerSample]byte
		pcm.PutInt16(b[:], pcm.Quantize(s.next()))
		p[n] = b[0]
		s.pending = b[1]
		s.hasPending = true
		n++
	}
	return n
}
