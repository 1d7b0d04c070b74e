/*
NAME
  load_test.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package audioio

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveThenLoadWAV(t *testing.T) {
	samples := make([]float64, 400)
	for i := range samples {
		samples[i] = 0.3 * math.Sin(2*math.Pi*440*float64(i)/16000)
	}

	path := filepath.Join(t.TempDir(), "tone.wav")
	if err := Save(path, samples, 16000); err != nil {
		t.Fatal(err)
	}
	defer os.Remove(path)

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.SampleRate != 16000 {
		t.Errorf("SampleRate = %d, want 16000", got.SampleRate)
	}
	if len(got.Samples) != len(samples) {
		t.Fatalf("len(Samples) = %d, want %d", len(got.Samples), len(samples))
	}
	for i := range samples {
		if math.Abs(got.Samples[i]-samples[i]) > 1e-3 {
			t.Fatalf("sample %d = %v, want %v", i, got.Samples[i], samples[i])
		}
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load("clip.mp3")
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}
