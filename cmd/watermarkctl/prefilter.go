/*
NAME
  prefilter.go

DESCRIPTION
  prefilter.go applies an optional frequency-selective filter and/or gain
  adjustment to audio before it is handed to the watermark encoder, using
  codec/pcm's FIR filter and amplifier implementations.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"github.com/pkg/errors"

	"github.com/ausocean/audiowm/codec/pcm"
)

// applyPrefilter runs samples through the named codec/pcm filter before
// watermarking. kind "" or "none" is a no-op. cutoffHigh is only consulted
// for "bandpass"/"bandstop".
func applyPrefilter(samples []float64, rate int, kind string, cutoffLow, cutoffHigh float64, taps int) ([]float64, error) {
	if kind == "" || kind == "none" {
		return samples, nil
	}

	format := pcm.BufferFormat{SFormat: pcm.S16_LE, Rate: uint(rate), Channels: 1}

	var filter pcm.AudioFilter
	var err error
	switch kind {
	case "lowpass":
		filter, err = pcm.NewLowPass(cutoffLow, format, taps)
	case "highpass":
		filter, err = pcm.NewHighPass(cutoffLow, format, taps)
	case "bandpass":
		filter, err = pcm.NewBandPass(cutoffLow, cutoffHigh, format, taps)
	case "bandstop":
		filter, err = pcm.NewBandStop(cutoffLow, cutoffHigh, format, taps)
	default:
		return nil, errors.Errorf("prefilter: unknown kind %q", kind)
	}
	if err != nil {
		return nil, errors.Wrap(err, "prefilter: failed to build filter")
	}

	buf, err := pcm.FromFloat64(samples, format)
	if err != nil {
		return nil, errors.Wrap(err, "prefilter: failed to pack samples")
	}
	filtered, err := filter.Apply(buf)
	if err != nil {
		return nil, errors.Wrap(err, "prefilter: failed to apply filter")
	}

	out, err := pcm.ToFloat64(pcm.Buffer{Format: format, Data: filtered})
	if err != nil {
		return nil, errors.Wrap(err, "prefilter: failed to unpack filtered samples")
	}
	return out, nil
}

// applyGain scales samples by factor using codec/pcm's Amplifier, clipping
// to [-1, 1]. A factor of 0 or 1 is treated as disabled and returns samples
// unchanged without spending a conversion round-trip.
func applyGain(samples []float64, rate int, factor float64) ([]float64, error) {
	if factor == 0 || factor == 1 {
		return samples, nil
	}

	format := pcm.BufferFormat{SFormat: pcm.S16_LE, Rate: uint(rate), Channels: 1}
	buf, err := pcm.FromFloat64(samples, format)
	if err != nil {
		return nil, errors.Wrap(err, "gain: failed to pack samples")
	}

	amplified, err := pcm.NewAmplifier(factor).Apply(buf)
	if err != nil {
		return nil, errors.Wrap(err, "gain: failed to apply amplifier")
	}

	out, err := pcm.ToFloat64(pcm.Buffer{Format: format, Data: amplified})
	if err != nil {
		return nil, errors.Wrap(err, "gain: failed to unpack amplified samples")
	}
	return out, nil
}
