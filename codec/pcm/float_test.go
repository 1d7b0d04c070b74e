/*
NAME
  float_test.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pcm

import (
	"math"
	"testing"
)

func TestFloat64RoundTrip(t *testing.T) {
	samples := make([]float64, 1000)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/16000)
	}

	buf, err := FromFloat64(samples, BufferFormat{Rate: 16000, SFormat: S16_LE})
	if err != nil {
		t.Fatal(err)
	}
	got, err := ToFloat64(buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(samples) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(samples))
	}
	for i := range samples {
		if d := math.Abs(got[i] - samples[i]); d > 1.0/(1<<14) {
			t.Fatalf("sample %d round-tripped to %v, want ~%v", i, got[i], samples[i])
		}
	}
}

func TestFromFloat64Clips(t *testing.T) {
	buf, err := FromFloat64([]float64{2, -2}, BufferFormat{Rate: 16000, SFormat: S16_LE})
	if err != nil {
		t.Fatal(err)
	}
	got, err := ToFloat64(buf)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 1 || got[1] != -1 {
		t.Errorf("clipped samples = %v, want [1 -1]", got)
	}
}

func TestToFloat64RejectsStereo(t *testing.T) {
	_, err := ToFloat64(Buffer{Format: BufferFormat{Channels: 2, SFormat: S16_LE}, Data: make([]byte, 8)})
	if err == nil {
		t.Error("expected error for stereo input")
	}
}
