/*
NAME
  load.go

DESCRIPTION
  load.go loads mono float64 sample buffers from WAV or FLAC files, and
  saves them back out as WAV, so a caller can hand watermark.Encode/Decode
  a file path instead of raw sample buffers. This is deliberately a thin
  shim around codec/wav and codec/pcm: container and codec handling itself
  stays outside the watermark core.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package audioio loads and saves the audio files a watermark CLI operates
// on, bridging WAV and FLAC container formats to the mono float64 sample
// buffers the watermark codec expects.
package audioio

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mewkiz/flac"
	"github.com/pkg/errors"

	"github.com/ausocean/audiowm/codec/pcm"
	"github.com/ausocean/audiowm/codec/wav"
)

// Audio is a loaded mono audio file: its samples, normalised to [-1, 1],
// and the sample rate they were recorded at.
type Audio struct {
	Samples    []float64
	SampleRate int
}

// Load reads a WAV or FLAC file (selected by extension) and returns its
// audio as mono float64 samples. Of stereo WAV input only the left channel
// is kept (pcm.StereoToMono); of FLAC input only the first channel is kept.
func Load(path string) (Audio, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return loadWAV(path)
	case ".flac":
		return loadFLAC(path)
	default:
		return Audio{}, errors.Errorf("audioio: unsupported extension %q", filepath.Ext(path))
	}
}

func loadWAV(path string) (Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return Audio{}, errors.Wrap(err, "audioio: failed to open WAV file")
	}
	defer f.Close()

	decoded, err := wav.Read(f)
	if err != nil {
		return Audio{}, err
	}

	buf := pcm.Buffer{
		Format: pcm.BufferFormat{
			Channels: uint(decoded.Metadata.Channels),
			Rate:     uint(decoded.Metadata.SampleRate),
			SFormat:  sformatFromBitDepth(decoded.Metadata.BitDepth),
		},
		Data: decoded.Audio,
	}
	buf, err = pcm.StereoToMono(buf)
	if err != nil {
		return Audio{}, err
	}

	samples, err := pcm.ToFloat64(buf)
	if err != nil {
		return Audio{}, err
	}
	return Audio{Samples: samples, SampleRate: decoded.Metadata.SampleRate}, nil
}

func loadFLAC(path string) (Audio, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Audio{}, errors.Wrap(err, "audioio: failed to read FLAC file")
	}

	stream, err := flac.Parse(bytes.NewReader(raw))
	if err != nil {
		return Audio{}, errors.Wrap(err, "audioio: failed to parse FLAC stream")
	}

	scale := float64(int64(1) << (stream.Info.BitsPerSample - 1))

	// Only the first subframe (left channel, or the sole channel if mono) is
	// kept; the watermark codec operates on mono audio only.
	var left []float64
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Audio{}, errors.Wrap(err, "audioio: failed to parse FLAC frame")
		}
		for i := 0; i < frame.Subframes[0].NSamples; i++ {
			left = append(left, float64(frame.Subframes[0].Samples[i])/scale)
		}
	}

	return Audio{Samples: left, SampleRate: int(stream.Info.SampleRate)}, nil
}

func sformatFromBitDepth(bitDepth int) pcm.SampleFormat {
	if bitDepth == 32 {
		return pcm.S32_LE
	}
	return pcm.S16_LE
}

// Save writes samples (mono float64 in [-1, 1]) to path as a 16-bit PCM WAV
// file at sampleRate.
func Save(path string, samples []float64, sampleRate int) error {
	w := &wav.WAV{}
	if err := w.WriteSamples(samples, sampleRate, 16); err != nil {
		return err
	}
	return os.WriteFile(path, w.Audio, 0644)
}
