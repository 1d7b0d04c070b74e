/*
NAME
  decode.go

DESCRIPTION
  decode.go implements the "decode" subcommand: recover a message from a
  watermarked audio file, optionally dumping diagnostics as JSON.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/ausocean/audiowm/codec/audioio"
	"github.com/ausocean/audiowm/codec/watermark"
)

func runDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	in := fs.String("in", "", "input audio file (.wav or .flac)")
	sampleRate := fs.Int("rate", watermark.DefaultSampleRate, "sample rate used at encode time")
	frameMs := fs.Int("frame-ms", watermark.DefaultFrameMs, "frame duration used at encode time")
	diagnostics := fs.Bool("diagnostics", false, "always print diagnostics as JSON, not just on failure")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("decode: -in is required")
	}

	audio, err := audioio.Load(*in)
	if err != nil {
		return errors.Wrap(err, "decode: failed to load input audio")
	}

	p := watermark.Params{SampleRate: *sampleRate, FrameMs: *frameMs}.WithDefaults()
	msg, diag, decodeErr := p.Decode(audio.Samples)

	if *diagnostics || decodeErr != nil {
		dumpDiagnostics(diag)
	}
	if decodeErr != nil {
		return errors.Wrap(decodeErr, "decode: failed to recover message")
	}

	log.Info("recovered message", "file", *in, "bytes", len(msg))
	fmt.Println(string(msg))
	return nil
}

func dumpDiagnostics(d watermark.Diagnostics) {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		log.Error("failed to marshal diagnostics", "error", err.Error())
		return
	}
	fmt.Fprintln(os.Stderr, string(b))
}
