/*
NAME
  geometry_test.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package watermark

import (
	"errors"
	"testing"
)

func TestDeriveValid(t *testing.T) {
	tests := []struct {
		sampleRate, frameMs, msgLen  int
		frameLen, fftLen, spectrum   int
	}{
		{16000, 32, 9, 512, 512, 257},
		{8000, 64, 9, 512, 512, 257},
		{32000, 64, 0, 2048, 2048, 1025},
	}
	for _, tt := range tests {
		g, err := Derive(tt.sampleRate, tt.frameMs, tt.msgLen)
		if err != nil {
			t.Fatalf("Derive(%d, %d, %d): unexpected error: %v", tt.sampleRate, tt.frameMs, tt.msgLen, err)
		}
		if g.FrameLen != tt.frameLen || g.FFTLen != tt.fftLen || g.SpectrumLen != tt.spectrum {
			t.Errorf("Derive(%d, %d, %d) = %+v, want frameLen=%d fftLen=%d spectrum=%d",
				tt.sampleRate, tt.frameMs, tt.msgLen, g, tt.frameLen, tt.fftLen, tt.spectrum)
		}
		if g.SpectrumLen != g.FFTLen/2+1 {
			t.Errorf("spectrum invariant broken: %+v", g)
		}
		if g.FFTLen&(g.FFTLen-1) != 0 {
			t.Errorf("fftLen %d is not a power of two", g.FFTLen)
		}
	}
}

func TestDeriveInvalidConfig(t *testing.T) {
	if _, err := Derive(44100, 32, 9); err == nil {
		t.Error("expected error for unsupported sample rate")
	}
	if _, err := Derive(16000, 10, 9); err == nil {
		t.Error("expected error for unsupported frame duration")
	}
}

func TestDeriveInsufficientCapacity(t *testing.T) {
	// 8kHz/20ms gives a small spectrum; a large message should overflow it.
	_, err := Derive(8000, 20, 200)
	if err == nil {
		t.Fatal("expected InsufficientCapacity error")
	}
	var capErr *CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected *CapacityError, got %T", err)
	}
	if !errors.Is(capErr.Err, ErrInsufficientCapacity) {
		t.Errorf("expected ErrInsufficientCapacity, got %v", capErr.Err)
	}
	if capErr.TotalBits != 8+LengthHeaderBits+8*200 {
		t.Errorf("TotalBits = %d, want %d", capErr.TotalBits, 8+LengthHeaderBits+8*200)
	}
}

func TestDeriveUsableBinsMonotonic(t *testing.T) {
	small, _ := deriveFrame(8000, 20)
	large, _ := deriveFrame(32000, 64)
	if small.UsableBins >= large.UsableBins {
		t.Errorf("expected larger geometry to have more usable bins: %d vs %d", small.UsableBins, large.UsableBins)
	}
}
