/*
NAME
  encoder.go

DESCRIPTION
  encoder.go implements the per-frame magnitude-scaling watermark encoder.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package watermark

// strengthFloor and strengthCap bound the mapped strength fraction; see
// EffectiveStrength.
const (
	strengthFloor  = 15.0
	strengthCap    = 0.6
	strengthDivide = 20.0
)

// EffectiveStrength maps a caller-supplied strength percentage (0-100) to
// the fraction actually used to scale watermark bins: values below 15 are
// promoted to 15 before dividing, and the result is capped at 0.6. Note the
// floor (15/20 = 0.75) already exceeds the cap (0.6), so this function is
// constant at 0.6 across the whole input range (see DESIGN.md).
func EffectiveStrength(strengthPercent float64) float64 {
	p := strengthPercent
	if p < strengthFloor {
		p = strengthFloor
	}
	s := p / strengthDivide
	if s > strengthCap {
		s = strengthCap
	}
	return s
}

// scale returns the multiplicative factor applied to a watermark bin's
// magnitude for the given bit value.
func scale(bit int, strength float64) float64 {
	if bit == 1 {
		return 1 + strength
	}
	s := 1 - strength
	if s < 0 {
		s = 0
	}
	return s
}

// Encode embeds message into samples (float64 values in [-1, 1], mono) and
// returns a new sample slice of the same length. sampleRate must be one of
// 8000, 16000 or 32000 Hz and frameMs one of 20, 32 or 64 ms. strengthPercent
// is in [0, 100]; see EffectiveStrength for how it maps to the per-bin
// scale factor.
//
// Encoding cannot fail once Derive accepts the geometry: the only errors
// returned are configuration errors surfaced by Derive/EncodeBits.
func Encode(samples []float64, sampleRate int, message []byte, frameMs int, strengthPercent float64) ([]float64, error) {
	g, err := Derive(sampleRate, frameMs, len(message))
	if err != nil {
		return nil, err
	}

	bits, err := EncodeBits(message, g.UsableBins)
	if err != nil {
		return nil, err
	}

	strength := EffectiveStrength(strengthPercent)

	out := make([]float64, len(samples))
	numFrames := len(samples) / g.FrameLen
	for f := 0; f < numFrames; f++ {
		frame := samples[f*g.FrameLen : (f+1)*g.FrameLen]
		encoded := encodeFrame(g, frame, bits, strength)
		copy(out[f*g.FrameLen:(f+1)*g.FrameLen], encoded)
	}

	// Trailing partial frame, if any, passes through untouched.
	copy(out[numFrames*g.FrameLen:], samples[numFrames*g.FrameLen:])

	return out, nil
}

// encodeFrame applies the per-bit magnitude scale to one full frame.
func encodeFrame(g Geometry, frame []float64, bits []int, strength float64) []float64 {
	spec := g.Forward(frame)
	for k, bit := range bits {
		i := g.StartBin + k
		if i >= len(spec) {
			break
		}
		s := scale(bit, strength)
		spec[i] = complex(real(spec[i])*s, imag(spec[i])*s)
	}
	return g.Inverse(spec)
}
