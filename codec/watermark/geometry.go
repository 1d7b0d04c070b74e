/*
NAME
  geometry.go

DESCRIPTION
  geometry.go derives the per-call frame geometry (frame length, FFT length,
  spectrum length, bit budget) from a sample rate, frame duration and message
  length.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package watermark

// fftLenCap is the largest FFT length the codec will derive. Sample
// rate/frame duration combinations that would need more are rejected by
// Derive rather than silently clamped.
const fftLenCap = 4096

// validSampleRates enumerates the sample rates the codec supports.
var validSampleRates = map[int]bool{8000: true, 16000: true, 32000: true}

// validFrameMs enumerates the frame durations the codec supports.
var validFrameMs = map[int]bool{20: true, 32: true, 64: true}

// Geometry is the immutable set of sizes derived from a sample rate, frame
// duration and message length. It is produced fresh for every Encode/Decode
// call and carries no state beyond its fields.
type Geometry struct {
	SampleRate int
	FrameMs    int

	FrameLen     int // Samples per frame.
	FFTLen       int // Smallest power of two >= FrameLen, capped at fftLenCap.
	SpectrumLen  int // FFTLen/2 + 1.
	StartBin     int // First watermark bin, fixed at StartBin.
	MsgLen       int // Payload length in bytes this geometry was derived for.
	TotalBits    int // 8 (pilot) + 16 (length header) + 8*MsgLen.
	UsableBins   int // max(0, SpectrumLen - StartBin).
}

// Derive computes the Geometry for the given sample rate (Hz), frame
// duration (milliseconds) and message length (bytes). It returns a
// *CapacityError wrapping ErrMessageTooLong, ErrInvalidSampleRate,
// ErrInvalidFrameMs or ErrInsufficientCapacity when the configuration cannot
// be used.
func Derive(sampleRate, frameMs, msgLen int) (Geometry, error) {
	if msgLen < 0 || msgLen > MaxMsgLen {
		return Geometry{}, &CapacityError{Err: ErrMessageTooLong}
	}

	g, err := deriveFrame(sampleRate, frameMs)
	if err != nil {
		return g, err
	}
	g.MsgLen = msgLen
	g.TotalBits = 8 + LengthHeaderBits + 8*msgLen

	if g.SpectrumLen < StartBin+1 || g.UsableBins < g.TotalBits {
		return g, &CapacityError{Err: ErrInsufficientCapacity, UsableBins: g.UsableBins, TotalBits: g.TotalBits}
	}
	return g, nil
}

// deriveFrame computes only the sample-rate/frame-duration-dependent part of
// Geometry (frame/FFT/spectrum sizing), independent of any message length.
// The decoder uses this directly because it does not know msgLen until it
// has read the length header out of the bitstream; frame partitioning must
// not depend on that recovered value.
func deriveFrame(sampleRate, frameMs int) (Geometry, error) {
	if !validSampleRates[sampleRate] {
		return Geometry{}, &CapacityError{Err: ErrInvalidSampleRate}
	}
	if !validFrameMs[frameMs] {
		return Geometry{}, &CapacityError{Err: ErrInvalidFrameMs}
	}

	frameLen := sampleRate * frameMs / 1000
	fftLen := nextPow2(frameLen)
	if fftLen > fftLenCap {
		return Geometry{}, &CapacityError{Err: ErrInsufficientCapacity}
	}
	spectrumLen := fftLen/2 + 1

	usableBins := spectrumLen - StartBin
	if usableBins < 0 {
		usableBins = 0
	}

	return Geometry{
		SampleRate:  sampleRate,
		FrameMs:     frameMs,
		FrameLen:    frameLen,
		FFTLen:      fftLen,
		SpectrumLen: spectrumLen,
		StartBin:    StartBin,
		UsableBins:  usableBins,
	}, nil
}

// nextPow2 returns the smallest power of two greater than or equal to n.
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
