/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the sentinel error taxonomy for the watermark codec.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package watermark

import "github.com/pkg/errors"

// Configuration errors (pre-compute): rejected before any DSP work happens.
var (
	ErrInvalidSampleRate    = errors.New("watermark: invalid sample rate")
	ErrInvalidFrameMs       = errors.New("watermark: invalid frame duration")
	ErrInvalidStrength      = errors.New("watermark: invalid strength percent")
	ErrMessageTooLong       = errors.New("watermark: message exceeds 16-bit length header or usable bins")
	ErrInsufficientCapacity = errors.New("watermark: usable bins cannot carry total bits")
)

// Decoding errors.
var (
	ErrInsufficientBins = errors.New("watermark: spectrum too small to hold a watermark bin")
	ErrNoPilot          = errors.New("watermark: no frame produced a usable pilot")
	ErrInvalidLength    = errors.New("watermark: decoded length header exceeds capacity")
	ErrTruncated        = errors.New("watermark: insufficient frames to cover the decided payload")
)

// Bitstream framing errors.
var (
	ErrTruncatedPayload = errors.New("watermark: bit sequence lacks the pilot or is shorter than framing requires")
)

// CapacityError reports a rejected configuration along with the computed
// bin budget, so a caller can present remediation (shorter message, higher
// sample rate, or a longer frame).
type CapacityError struct {
	Err        error
	UsableBins int
	TotalBits  int
}

func (e *CapacityError) Error() string {
	return errors.Wrapf(e.Err, "usable_bins=%d total_bits=%d", e.UsableBins, e.TotalBits).Error()
}

func (e *CapacityError) Unwrap() error { return e.Err }
