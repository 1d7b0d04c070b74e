/*
NAME
  record.go

DESCRIPTION
  record.go implements the "record" subcommand: capture a clip from an
  ALSA microphone, embed a message, and save the watermarked clip.

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
	"time"

	"github.com/pkg/errors"

	"github.com/ausocean/audiowm/codec/audioio"
	"github.com/ausocean/audiowm/codec/watermark"
	"github.com/ausocean/audiowm/device/alsa"
)

func runRecord(args []string) error {
	fs := flag.NewFlagSet("record", flag.ExitOnError)
	out := fs.String("out", "", "output WAV file")
	device := fs.String("device", "", "ALSA device title, empty selects the first recording device")
	duration := fs.Duration("duration", 5*time.Second, "recording length")
	message := fs.String("message", "", "message to embed")
	sampleRate := fs.Int("rate", watermark.DefaultSampleRate, "sample rate (8000, 16000 or 32000 Hz)")
	frameMs := fs.Int("frame-ms", watermark.DefaultFrameMs, "frame duration (20, 32 or 64 ms)")
	strength := fs.Float64("strength", watermark.DefaultStrengthPercent, "watermark strength percent (0-100)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" || *message == "" {
		return errors.New("record: -out and -message are required")
	}

	p := watermark.Params{SampleRate: *sampleRate, FrameMs: *frameMs, StrengthPercent: *strength}.WithDefaults()

	mic := alsa.New(log, *device)
	log.Info("recording", "duration", duration.String(), "rate", p.SampleRate)
	samples, err := mic.Capture(p.SampleRate, *duration)
	if err != nil {
		return errors.Wrap(err, "record: capture failed")
	}

	watermarked, err := p.Encode(samples, []byte(*message))
	if err != nil {
		return errors.Wrap(err, "record: failed to embed message")
	}

	if err := audioio.Save(*out, watermarked, p.SampleRate); err != nil {
		return errors.Wrap(err, "record: failed to write output")
	}
	log.Info("wrote watermarked recording", "file", *out)
	return nil
}
