/*
NAME
  float.go

DESCRIPTION
  float.go converts between PCM byte Buffers and normalised float64 sample
  slices, the representation the watermark codec's spectral pipeline
  operates on.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pcm

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// ToFloat64 converts a mono Buffer's samples to float64 values in [-1, 1].
// Only S16_LE and S32_LE are supported.
func ToFloat64(b Buffer) ([]float64, error) {
	if b.Format.Channels > 1 {
		return nil, errors.Errorf("ToFloat64: expected mono audio, got %d channels", b.Format.Channels)
	}

	switch b.Format.SFormat {
	case S16_LE:
		if len(b.Data)%2 != 0 {
			return nil, errors.New("ToFloat64: odd number of bytes for S16_LE")
		}
		out := make([]float64, len(b.Data)/2)
		for i := range out {
			v := int16(binary.LittleEndian.Uint16(b.Data[i*2:]))
			out[i] = float64(v) / (1 << 15)
		}
		return out, nil
	case S32_LE:
		if len(b.Data)%4 != 0 {
			return nil, errors.New("ToFloat64: byte count not a multiple of 4 for S32_LE")
		}
		out := make([]float64, len(b.Data)/4)
		for i := range out {
			v := int32(binary.LittleEndian.Uint32(b.Data[i*4:]))
			out[i] = float64(v) / (1 << 31)
		}
		return out, nil
	default:
		return nil, errors.Errorf("ToFloat64: unhandled sample format %v", b.Format.SFormat)
	}
}

// FromFloat64 packs float64 samples in [-1, 1] into a mono Buffer using the
// given format's SFormat and Rate; out-of-range samples are clipped.
func FromFloat64(samples []float64, format BufferFormat) (Buffer, error) {
	format.Channels = 1

	switch format.SFormat {
	case S16_LE:
		data := make([]byte, len(samples)*2)
		for i, s := range samples {
			binary.LittleEndian.PutUint16(data[i*2:], uint16(int16(clip(s)*(1<<15-1))))
		}
		return Buffer{Format: format, Data: data}, nil
	case S32_LE:
		data := make([]byte, len(samples)*4)
		for i, s := range samples {
			binary.LittleEndian.PutUint32(data[i*4:], uint32(int32(clip(s)*(1<<31-1))))
		}
		return Buffer{Format: format, Data: data}, nil
	default:
		return Buffer{}, errors.Errorf("FromFloat64: unhandled sample format %v", format.SFormat)
	}
}

func clip(s float64) float64 {
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return s
}
