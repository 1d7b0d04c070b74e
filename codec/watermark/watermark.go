/*
NAME
  watermark.go

DESCRIPTION
  watermark.go defines the package-wide constants and documentation for the
  watermark codec.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package watermark implements a spectral audio watermark codec: it embeds a
// short byte message into a monaural PCM stream by scaling the magnitude of
// selected FFT bins, and recovers that message from a (possibly noisy) copy
// of the watermarked audio.
//
// The scheme is not a secret marker and is not designed to survive
// adversarial transforms such as perceptual coding, time-stretching or heavy
// filtering; it is designed to survive WAV round-tripping and be inaudible
// at low strengths.
package watermark

// Fixed constants exposed at the package boundary, as referenced by callers
// needing to interpret diagnostics independent of a particular Geometry.
const (
	// StartBin is the first spectral bin used to carry watermark data.
	// Lower bins are left untouched to avoid perceptually-dominant energy.
	StartBin = 48

	// LengthHeaderBits is the width of the big-endian payload-length header
	// that follows the pilot sequence in the bitstream.
	LengthHeaderBits = 16

	// WindowRadius is the number of neighbour bins on each side of a
	// watermark bin considered when computing its spectral score.
	WindowRadius = 3

	// MaxMsgLen is the largest payload, in bytes, the 16-bit length header
	// can represent.
	MaxMsgLen = 1<<LengthHeaderBits - 1
)

// Pilot is the fixed 8-bit prefix used to infer the per-frame score
// threshold and polarity. It is alternating so that, in the noise-free
// case, it partitions cleanly into a high half and a low half.
var Pilot = [8]int{0, 1, 0, 1, 0, 1, 0, 1}

// Decision-rule constants, tuned against the reference model and named
// here for future recalibration rather than buried as literals.
const (
	// lengthHeaderRatioThreshold is the minimum effective vote ratio needed
	// to decide a length-header bit as 1; length bits are biased toward 0
	// under uncertainty because a corrupt header collapses the whole
	// message.
	lengthHeaderRatioThreshold = 0.54

	// softOneRatioThreshold is the minimum effective vote ratio needed to
	// decide a payload bit as 1 when neither bitIsOne nor bitIsZero fires.
	softOneRatioThreshold = 0.45

	// softOneBandFactor and zeroBandFactor scale the pilot high/low gap
	// ("band") used to build the soft-decision and hard-zero thresholds.
	softOneBandFactor = 0.75
	zeroBandFactor    = 3.0

	// pilotMatchThreshold is the minimum number (out of 8) of pilot bits
	// that must agree with one polarity hypothesis for a frame's pilot
	// analysis to be usable.
	pilotMatchThreshold = 5
)
