/*
NAME
  alsa.go

AUTHOR
  Alan Noble <alan@ausocean.org>
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package alsa provides access to input from ALSA audio devices, for
// one-shot capture of a fixed-length clip to feed to the watermark encoder.
package alsa

import (
	"fmt"
	"time"

	yalsa "github.com/yobert/alsa"

	"github.com/ausocean/audiowm/codec/pcm"
	"github.com/ausocean/utils/logging"
)

const (
	defaultChannels = 1
	defaultBitDepth = 16
)

// Mic captures mono PCM audio from the first recording-capable ALSA device
// found, at one of the sample rates the watermark codec accepts.
type Mic struct {
	l     logging.Logger
	title string // device title to open; empty selects the first recording device.
}

// New returns a Mic that logs to l. If title is non-empty, only a device
// with a matching title is opened.
func New(l logging.Logger, title string) *Mic {
	return &Mic{l: l, title: title}
}

// Capture records duration of mono audio at sampleRate and returns it as
// float64 samples in [-1, 1], ready for watermark.Encode.
func (m *Mic) Capture(sampleRate int, duration time.Duration) ([]float64, error) {
	dev, negotiatedRate, bitdepth, err := m.open(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("failed to open device: %w", err)
	}
	defer dev.Close()

	buf := dev.NewBufferDuration(duration)
	m.l.Debug("recording", "duration", duration.String(), "rate", negotiatedRate, "bitdepth", bitdepth)
	if err := dev.Read(buf.Data); err != nil {
		return nil, fmt.Errorf("failed to read from device: %w", err)
	}

	sf, err := pcm.SFFromString(buf.Format.SampleFormat.String())
	if err != nil {
		return nil, fmt.Errorf("unable to get sample format: %w", err)
	}
	raw := pcm.Buffer{
		Format: pcm.BufferFormat{SFormat: sf, Channels: uint(buf.Format.Channels), Rate: uint(buf.Format.Rate)},
		Data:   buf.Data,
	}

	mono, err := pcm.StereoToMono(raw)
	if err != nil {
		return nil, fmt.Errorf("channel conversion failed: %w", err)
	}
	if mono.Format.Rate != uint(sampleRate) {
		mono, err = pcm.Resample(mono, uint(sampleRate))
		if err != nil {
			return nil, fmt.Errorf("rate conversion failed: %w", err)
		}
	}

	return pcm.ToFloat64(mono)
}

// open finds and prepares a recording-capable ALSA device negotiated to
// mono, sampleRate (or the closest multiple ALSA will grant), and 16-bit
// depth.
func (m *Mic) open(sampleRate int) (*yalsa.Device, int, int, error) {
	m.l.Debug("opening sound card")
	cards, err := yalsa.OpenCards()
	if err != nil {
		return nil, 0, 0, err
	}
	defer yalsa.CloseCards(cards)

	var dev *yalsa.Device
	for _, card := range cards {
		devices, err := card.Devices()
		if err != nil {
			continue
		}
		for _, d := range devices {
			if d.Type != yalsa.PCM || !d.Record {
				continue
			}
			if d.Title == m.title || m.title == "" {
				dev = d
				break
			}
		}
		if dev != nil {
			break
		}
	}
	if dev == nil {
		return nil, 0, 0, fmt.Errorf("no ALSA recording device found")
	}

	if err := dev.Open(); err != nil {
		return nil, 0, 0, err
	}

	if _, err := dev.NegotiateChannels(defaultChannels); err != nil {
		if _, err = dev.NegotiateChannels(2); err != nil {
			return nil, 0, 0, fmt.Errorf("device cannot record mono or stereo: %w", err)
		}
	}

	rate, err := dev.NegotiateRate(sampleRate)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("device cannot record at %d Hz: %w", sampleRate, err)
	}

	devFmt, err := dev.NegotiateFormat(yalsa.S16_LE)
	if err != nil {
		return nil, 0, 0, err
	}
	bitdepth := defaultBitDepth
	if devFmt == yalsa.S32_LE {
		bitdepth = 32
	}

	const wantPeriod = 0.05 // seconds; a sensible value for low-ish latency.
	periodSize, err := dev.NegotiatePeriodSize(nearestPowerOfTwo(int(float64(rate) * wantPeriod)))
	if err != nil {
		return nil, 0, 0, err
	}
	if _, err := dev.NegotiateBufferSize(periodSize * 4); err != nil {
		return nil, 0, 0, err
	}
	if err := dev.Prepare(); err != nil {
		return nil, 0, 0, err
	}

	return dev, rate, bitdepth, nil
}

// nearestPowerOfTwo finds and returns the nearest power of two to the given
// integer. For negative values, 1 is returned.
// Source: https://stackoverflow.com/a/45859570
func nearestPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	if n == 1 {
		return 2
	}
	v := n
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v++
	x := v >> 1
	if (v - n) > (n - x) {
		return x
	}
	return v
}
