/*
NAME
  config_test.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package watermark

import "testing"

func TestWithDefaults(t *testing.T) {
	p := Params{}.WithDefaults()
	if p.SampleRate != DefaultSampleRate {
		t.Errorf("SampleRate = %d, want %d", p.SampleRate, DefaultSampleRate)
	}
	if p.FrameMs != DefaultFrameMs {
		t.Errorf("FrameMs = %d, want %d", p.FrameMs, DefaultFrameMs)
	}
	if p.StrengthPercent != DefaultStrengthPercent {
		t.Errorf("StrengthPercent = %v, want %v", p.StrengthPercent, DefaultStrengthPercent)
	}

	custom := Params{SampleRate: 8000, FrameMs: 20, StrengthPercent: 80}.WithDefaults()
	if custom.SampleRate != 8000 || custom.FrameMs != 20 || custom.StrengthPercent != 80 {
		t.Errorf("WithDefaults changed explicitly set fields: %+v", custom)
	}
}

func TestParamsEncodeDecodeRoundTrip(t *testing.T) {
	p := Params{SampleRate: 16000, FrameMs: 32, StrengthPercent: 80}
	samples := toneBed(3*p.SampleRate, p.SampleRate)

	msg := []byte("ok")
	encoded, err := p.Encode(samples, msg)
	if err != nil {
		t.Fatal(err)
	}

	got, _, err := p.Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(msg) {
		t.Errorf("got %q, want %q", got, msg)
	}
}
