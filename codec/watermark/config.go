/*
NAME
  config.go

DESCRIPTION
  config.go defines the Params a caller supplies to Encode/Decode, with
  defaulting behaviour: an unset field falls back to a documented default
  rather than a zero value silently propagating into the codec.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package watermark

// Default parameter values, used by Params.WithDefaults when a field is
// left at its zero value.
const (
	DefaultSampleRate      = 16000
	DefaultFrameMs         = 32
	DefaultStrengthPercent = 50.0
)

// Params collects the tunables a caller binds to CLI flags or a config
// file, rather than passing sampleRate/frameMs/strengthPercent as separate
// arguments at every call site.
type Params struct {
	// SampleRate is the PCM sample rate in Hz; must be 8000, 16000 or 32000.
	SampleRate int

	// FrameMs is the analysis frame duration in milliseconds; must be 20,
	// 32 or 64.
	FrameMs int

	// StrengthPercent controls how strongly a bit's carrier bins are
	// boosted or attenuated; see EffectiveStrength.
	StrengthPercent float64
}

// WithDefaults returns a copy of p with zero-valued fields replaced by the
// package defaults.
func (p Params) WithDefaults() Params {
	if p.SampleRate == 0 {
		p.SampleRate = DefaultSampleRate
	}
	if p.FrameMs == 0 {
		p.FrameMs = DefaultFrameMs
	}
	if p.StrengthPercent == 0 {
		p.StrengthPercent = DefaultStrengthPercent
	}
	return p
}

// Encode embeds message into samples using p (defaulted via WithDefaults).
func (p Params) Encode(samples []float64, message []byte) ([]float64, error) {
	p = p.WithDefaults()
	return Encode(samples, p.SampleRate, message, p.FrameMs, p.StrengthPercent)
}

// Decode recovers a message from samples using p (defaulted via
// WithDefaults).
func (p Params) Decode(samples []float64) ([]byte, Diagnostics, error) {
	p = p.WithDefaults()
	return Decode(samples, p.SampleRate, p.FrameMs)
}
