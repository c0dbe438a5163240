package source

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// pacedReader releases bytes no faster than a fixed byte rate.
type pacedReader struct {
	ctx     context.Context
	r       io.Reader
	limiter *rate.Limiter
	burst   int
}

// Paced returns a reader that delivers r's bytes at bytesPerSecond. Reads
// block until their bytes are due and fail with the context error once ctx is
// done. A non-positive rate returns r unchanged.
func Paced(ctx context.Context, r io.Reader, bytesPerSecond int) io.Reader {
	if bytesPerSecond <= 0 {
		return r
	}
	burst := max(bytesPerSecond/50, 2)
	return &pacedReader{
		ctx:     ctx,
		r:       r,
		limiter: rate.NewLimiter(rate.Limit(bytesPerSecond), burst),
		burst:   burst,
	}
}

func (p *pacedReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	for left := n; left > 0; {
		chunk := min(left, p.burst)
		if werr := p.limiter.WaitN(p.ctx, chunk); werr != nil {
			return n, werr
		}
		left -= chunk
	}
	return n, err
}
