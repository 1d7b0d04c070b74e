/*
NAME
  decoder.go

DESCRIPTION
  decoder.go implements per-frame spectral scoring, pilot-based threshold
  and polarity inference, cross-frame windowed aggregation, and the
  per-bit decision rule that together recover a watermark message without
  prior knowledge of its length.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package watermark

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// neighborWeight returns the weighting applied to a neighbour d bins away
// from a watermark bin when computing its spectral score. It is positive
// and strictly decreasing in d; the particular 1/(d+1) schedule is not
// pinned down by the reference model and was chosen for its simplicity
// (see DESIGN.md).
func neighborWeight(d int) float64 {
	return 1 / float64(d+1)
}

// Diagnostics is the optional, caller-inspectable record of how Decode
// reached its result (or how far it got before failing). It is produced on
// every call, including failed ones, so a caller can inspect a decode
// failure instead of only seeing the error.
type Diagnostics struct {
	// BitSequence holds the decided bits, truncated to the recovered
	// message's total bit length once known.
	BitSequence []int

	// Scores holds the per-bit aggregated average score, one entry per
	// usable bin position.
	Scores []float64

	// Votes holds the per-bit effective vote ratio (polarity-resolved),
	// one entry per usable bin position.
	Votes []float64

	Threshold float64
	AvgHigh   float64
	AvgLow    float64
	Inverted  bool

	// FirstFrame is the time-domain samples of the first usable frame,
	// offered for a caller's own visualization; nil if no frame was usable.
	FirstFrame []float64
}

// pilotStats is the per-frame result of analysing the first 8 score
// positions against the pilot sequence.
type pilotStats struct {
	threshold float64
	avgHigh   float64
	avgLow    float64
	inverted  bool
	usable    bool
}

// analyzePilot computes threshold/polarity from the first 8 scores of a
// frame, matching them against Pilot under both polarity hypotheses.
func analyzePilot(scores []float64) pilotStats {
	var sumHigh, sumLow float64
	for k, bit := range Pilot {
		if bit == 1 {
			sumHigh += scores[k]
		} else {
			sumLow += scores[k]
		}
	}
	avgHigh := sumHigh / 4
	avgLow := sumLow / 4
	threshold := (avgHigh + avgLow) / 2

	var matchesNormal, matchesInverted int
	for k, bit := range Pilot {
		normalBit := 0
		if scores[k] >= threshold {
			normalBit = 1
		}
		if bit == normalBit {
			matchesNormal++
		}
		invertedBit := 0
		if scores[k] <= threshold {
			invertedBit = 1
		}
		if bit == invertedBit {
			matchesInverted++
		}
	}

	inverted := matchesInverted > matchesNormal
	best := matchesNormal
	if inverted {
		best = matchesInverted
	}

	return pilotStats{
		threshold: threshold,
		avgHigh:   avgHigh,
		avgLow:    avgLow,
		inverted:  inverted,
		usable:    best >= pilotMatchThreshold,
	}
}

// frameScores computes the spectral score for every candidate bit position
// k in [0, usableBins) of one frame's spectrum.
func frameScores(spec []complex128, startBin, usableBins int) []float64 {
	scores := make([]float64, usableBins)
	for k := 0; k < usableBins; k++ {
		i := startBin + k
		score := sqMag(spec[i])
		for d := 1; d <= WindowRadius; d++ {
			w := neighborWeight(d)
			if i-d >= 0 {
				score += w * sqMag(spec[i-d])
			}
			if i+d < len(spec) {
				score += w * sqMag(spec[i+d])
			}
		}
		scores[k] = score
	}
	return scores
}

func sqMag(c complex128) float64 {
	re, im := real(c), imag(c)
	return re*re + im*im
}

// median returns the 0.5-quantile of a sorted copy of xs, or 0 for an empty
// slice.
func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

// Decode recovers a watermark message from samples (float64 values in
// [-1, 1], mono) at sampleRate. The caller must supply the same frameMs
// used to encode, since frame partitioning depends on it and cannot be
// inferred from samples alone.
//
// Decode always returns the best Diagnostics it was able to build, even
// when it also returns a non-nil error.
func Decode(samples []float64, sampleRate, frameMs int) ([]byte, Diagnostics, error) {
	g, err := deriveFrame(sampleRate, frameMs)
	if err != nil {
		return nil, Diagnostics{}, err
	}
	if g.SpectrumLen < StartBin+1 {
		return nil, Diagnostics{}, ErrInsufficientBins
	}
	usableBins := g.UsableBins

	numFrames := len(samples) / g.FrameLen

	scoreSum := make([]float64, usableBins)
	voteSum := make([]float64, usableBins)
	count := make([]int, usableBins)

	var thresholds, avgHighs, avgLows []float64
	var invertedVotes, acceptedFrames int
	var firstFrame []float64

	for f := 0; f < numFrames; f++ {
		frame := samples[f*g.FrameLen : (f+1)*g.FrameLen]
		spec := g.Forward(frame)
		scores := frameScores(spec, g.StartBin, usableBins)

		if len(scores) < 8 {
			continue
		}
		ps := analyzePilot(scores[:8])
		if !ps.usable {
			continue
		}

		acceptedFrames++
		if firstFrame == nil {
			firstFrame = g.Inverse(spec)
		}
		thresholds = append(thresholds, ps.threshold)
		avgHighs = append(avgHighs, ps.avgHigh)
		avgLows = append(avgLows, ps.avgLow)
		if ps.inverted {
			invertedVotes++
		}

		for k := 0; k < usableBins; k++ {
			scoreSum[k] += scores[k]
			one := scores[k] >= ps.threshold
			if ps.inverted {
				one = !one
			}
			if one {
				voteSum[k]++
			}
			count[k]++
		}
	}

	if acceptedFrames == 0 {
		return nil, Diagnostics{}, ErrNoPilot
	}

	threshold := median(thresholds)
	avgHigh := median(avgHighs)
	avgLow := median(avgLows)
	inv := invertedVotes*2 > acceptedFrames
	band := 0.1 * absFloat(avgHigh-avgLow)

	avgScore := make([]float64, usableBins)
	voteRatio := make([]float64, usableBins)
	decided := make([]int, usableBins)
	for k := 0; k < usableBins; k++ {
		if count[k] == 0 {
			continue
		}
		avgScore[k] = scoreSum[k] / float64(count[k])
		voteRatio[k] = voteSum[k] / float64(count[k])
		decided[k] = decideBit(k, avgScore[k], voteRatio[k], threshold, band, inv)
	}

	diag := Diagnostics{
		BitSequence: append([]int(nil), decided...),
		Scores:      avgScore,
		Votes:       voteRatio,
		Threshold:   threshold,
		AvgHigh:     avgHigh,
		AvgLow:      avgLow,
		Inverted:    inv,
		FirstFrame:  firstFrame,
	}

	lMax := 0
	if usableBins > 24 {
		lMax = (usableBins - 24) / 8
	}
	if lMax > MaxMsgLen {
		lMax = MaxMsgLen
	}
	bound := 8 + LengthHeaderBits + 8*lMax
	if bound > usableBins {
		bound = usableBins
	}

	msg, err := DecodeBits(decided[:bound], false)
	if err != nil {
		diag.BitSequence = decided[:bound]
		return nil, diag, classifyBitstreamError(err, decided, lMax)
	}

	total := 8 + LengthHeaderBits + 8*len(msg)
	if total <= len(diag.BitSequence) {
		diag.BitSequence = diag.BitSequence[:total]
	}
	return msg, diag, nil
}

// classifyBitstreamError maps a Bitstream framing error onto the decoder's
// fatal error taxonomy.
func classifyBitstreamError(err error, decided []int, lMax int) error {
	if err != ErrTruncatedPayload {
		return err
	}
	// Determine whether the failure is an over-long length header (fatal,
	// InvalidLength) or simply not enough frames to cover the declared
	// payload (fatal, Truncated).
	if len(decided) < 8+LengthHeaderBits {
		return ErrTruncated
	}
	var length uint16
	for i := 0; i < LengthHeaderBits; i++ {
		length = length<<1 | uint16(decided[8+i])
	}
	if int(length) > lMax {
		return ErrInvalidLength
	}
	return ErrTruncated
}

// decideBit applies the per-bit decision rule (soft/hard thresholds and
// vote ratio) to one bit position.
func decideBit(k int, avgScore, voteRatio, threshold, band float64, inv bool) int {
	bitIsOne := avgScore >= threshold
	bitIsZero := avgScore <= threshold-zeroBandFactor*band
	softOne := avgScore >= threshold-softOneBandFactor*band
	if inv {
		bitIsOne = avgScore <= threshold
		bitIsZero = avgScore >= threshold+zeroBandFactor*band
		softOne = avgScore <= threshold+softOneBandFactor*band
	}

	effectiveRatio := voteRatio
	if inv {
		effectiveRatio = 1 - voteRatio
	}

	if k >= 8 && k < 24 {
		if effectiveRatio >= lengthHeaderRatioThreshold && bitIsOne {
			return 1
		}
		return 0
	}

	switch {
	case bitIsOne:
		return 1
	case bitIsZero:
		return 0
	case effectiveRatio >= softOneRatioThreshold || softOne:
		return 1
	default:
		return 0
	}
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
