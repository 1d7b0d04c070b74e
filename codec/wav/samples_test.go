/*
NAME
  samples_test.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package wav

import (
	"bytes"
	"math"
	"testing"
)

func TestWriteSamplesThenRead(t *testing.T) {
	samples := make([]float64, 200)
	for i := range samples {
		samples[i] = 0.2 * math.Sin(2*math.Pi*440*float64(i)/16000)
	}

	w := &WAV{}
	if err := w.WriteSamples(samples, 16000, 16); err != nil {
		t.Fatal(err)
	}

	got, err := Read(bytes.NewReader(w.Audio))
	if err != nil {
		t.Fatal(err)
	}
	if got.Metadata.SampleRate != 16000 || got.Metadata.BitDepth != 16 {
		t.Errorf("metadata = %+v", got.Metadata)
	}
	if len(got.Audio) != len(samples)*2 {
		t.Fatalf("audio length = %d, want %d", len(got.Audio), len(samples)*2)
	}
}
