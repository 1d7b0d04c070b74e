/*
NAME
  spectral.go

DESCRIPTION
  spectral.go wraps github.com/mjibson/go-dsp/fft behind the narrow
  forward/inverse interface the rest of the codec depends on, so the FFT
  backend can be swapped without leaking complex128 plumbing into the
  encoder or decoder.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package watermark

import "github.com/mjibson/go-dsp/fft"

// Forward computes the non-redundant half of the real-to-complex FFT of
// frame, zero-padding to g.FFTLen first if frame is shorter. The result has
// length g.SpectrumLen; bin 0 and bin g.FFTLen/2 carry zero imaginary part,
// as is guaranteed for a real input.
func (g Geometry) Forward(frame []float64) []complex128 {
	padded := make([]float64, g.FFTLen)
	copy(padded, frame)

	full := fft.FFTReal(padded)
	return append([]complex128(nil), full[:g.SpectrumLen]...)
}

// Inverse reconstructs the length g.FFTLen real time-domain frame from its
// non-redundant half spectrum (via conjugate symmetry) and truncates the
// result to g.FrameLen.
func (g Geometry) Inverse(spec []complex128) []float64 {
	full := make([]complex128, g.FFTLen)
	full[0] = complex(real(spec[0]), 0)
	if g.FFTLen%2 == 0 {
		full[g.FFTLen/2] = complex(real(spec[g.FFTLen/2]), 0)
	}
	for k := 1; k < g.SpectrumLen-1; k++ {
		full[k] = spec[k]
		full[g.FFTLen-k] = complex(real(spec[k]), -imag(spec[k]))
	}

	timeDomain := fft.IFFT(full)
	out := make([]float64, g.FrameLen)
	for i := 0; i < g.FrameLen && i < len(timeDomain); i++ {
		out[i] = real(timeDomain[i])
	}
	return out
}
