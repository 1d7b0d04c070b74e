/*
NAME
  encode.go

DESCRIPTION
  encode.go implements the "encode" subcommand: embed a message into an
  audio file and write the watermarked result out as WAV.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"flag"
	"os"

	"github.com/pkg/errors"

	"github.com/ausocean/audiowm/codec/audioio"
	"github.com/ausocean/audiowm/codec/watermark"
)

func runEncode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	in := fs.String("in", "", "input audio file (.wav or .flac)")
	out := fs.String("out", "", "output WAV file")
	message := fs.String("message", "", "message to embed")
	messageFile := fs.String("message-file", "", "file containing the message to embed, overrides -message")
	sampleRate := fs.Int("rate", watermark.DefaultSampleRate, "sample rate (8000, 16000 or 32000 Hz)")
	frameMs := fs.Int("frame-ms", watermark.DefaultFrameMs, "frame duration (20, 32 or 64 ms)")
	strength := fs.Float64("strength", watermark.DefaultStrengthPercent, "watermark strength percent (0-100)")
	prefilter := fs.String("prefilter", "none", "preprocessing filter to apply before watermarking: none, lowpass, highpass, bandpass or bandstop")
	prefilterCutoff := fs.Float64("prefilter-cutoff", 0, "cutoff frequency in Hz (lowpass/highpass), or lower cutoff (bandpass/bandstop)")
	prefilterCutoffHigh := fs.Float64("prefilter-cutoff-high", 0, "upper cutoff frequency in Hz (bandpass/bandstop only)")
	prefilterTaps := fs.Int("prefilter-taps", 128, "number of FIR filter taps used by -prefilter")
	gain := fs.Float64("gain", 0, "amplification factor applied before watermarking (0 or 1 disables)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *in == "" || *out == "" {
		return errors.New("encode: -in and -out are required")
	}

	msg := []byte(*message)
	if *messageFile != "" {
		var err error
		msg, err = os.ReadFile(*messageFile)
		if err != nil {
			return errors.Wrap(err, "encode: failed to read message file")
		}
	}
	if len(msg) == 0 {
		return errors.New("encode: -message or -message-file is required")
	}

	audio, err := audioio.Load(*in)
	if err != nil {
		return errors.Wrap(err, "encode: failed to load input audio")
	}
	log.Info("loaded audio", "file", *in, "samples", len(audio.Samples), "sampleRate", audio.SampleRate)

	p := watermark.Params{SampleRate: *sampleRate, FrameMs: *frameMs, StrengthPercent: *strength}.WithDefaults()
	if audio.SampleRate != p.SampleRate {
		log.Warning("input sample rate differs from requested encode rate", "input", audio.SampleRate, "requested", p.SampleRate)
	}

	samples, err := applyPrefilter(audio.Samples, p.SampleRate, *prefilter, *prefilterCutoff, *prefilterCutoffHigh, *prefilterTaps)
	if err != nil {
		return errors.Wrap(err, "encode: failed to apply prefilter")
	}
	if *prefilter != "none" {
		log.Info("applied prefilter", "kind", *prefilter, "cutoff", *prefilterCutoff, "cutoffHigh", *prefilterCutoffHigh)
	}
	samples, err = applyGain(samples, p.SampleRate, *gain)
	if err != nil {
		return errors.Wrap(err, "encode: failed to apply gain")
	}

	watermarked, err := p.Encode(samples, msg)
	if err != nil {
		return errors.Wrap(err, "encode: failed to embed message")
	}

	if err := audioio.Save(*out, watermarked, p.SampleRate); err != nil {
		return errors.Wrap(err, "encode: failed to write output")
	}
	log.Info("wrote watermarked audio", "file", *out, "messageBytes", len(msg))
	return nil
}
