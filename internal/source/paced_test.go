package source

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"
)

func TestPacedThrottles(t *testing.T) {
	const bps = 20000
	r := Paced(context.Background(), bytes.NewReader(make([]byte, 4000)), bps)

	start := time.Now()
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if n != 4000 {
		t.Fatalf("copied %d bytes, want 4000", n)
	}
	// 4000 bytes at 20000 B/s is 200ms, minus the initial burst.
	if elapsed := time.Since(start); elapsed < 150*time.Millisecond {
		t.Fatalf("elapsed %v, want >= 150ms", elapsed)
	}
}

func TestPacedCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := Paced(ctx, bytes.NewReader(make([]byte, 1000)), 100)
	_, err := io.ReadAll(r)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestPacedZeroRateIsPassthrough(t *testing.T) {
	src := bytes.NewReader(nil)
	if r := Paced(context.Background(), src, 0); r != io.Reader(src) {
		t.Fatal("Paced with zero rate must return the source reader")
	}
}
