/*
NAME
  reader.go

DESCRIPTION
  reader.go decodes WAV audio into PCM samples, pairing the package's own
  minimal Write encoder with github.com/go-audio/wav for the read side,
  which tolerates the fuller range of real-world WAV headers a watermark
  CLI might be handed.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package wav

import (
	"encoding/binary"
	"io"

	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

// Decoded is a fully read WAV file: its format metadata and raw little
// endian PCM sample bytes, in the package's own Metadata/WAV shape so
// callers don't need to know whether the data came via Write or Read.
type Decoded struct {
	Metadata Metadata
	Audio    []byte
}

// Read decodes a WAV stream from r. It rejects non-PCM and floating point
// formats; the watermark codec works on integer PCM at the byte boundary
// and converts to float64 itself (see codec/pcm).
func Read(r io.ReadSeeker) (Decoded, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return Decoded{}, errors.New("wav: not a valid WAV file")
	}
	if dec.WavAudioFormat != PCMFormat {
		return Decoded{}, errors.Errorf("wav: unsupported audio format %d, want PCM", dec.WavAudioFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Decoded{}, errors.Wrap(err, "wav: failed to decode PCM buffer")
	}

	md := Metadata{
		AudioFormat: PCMFormat,
		Channels:    buf.Format.NumChannels,
		SampleRate:  buf.Format.SampleRate,
		BitDepth:    buf.SourceBitDepth,
	}

	audio, err := packInts(buf.Data, md.BitDepth)
	if err != nil {
		return Decoded{}, err
	}
	return Decoded{Metadata: md, Audio: audio}, nil
}

// packInts packs go-audio's per-sample int slice into little-endian bytes
// at the given bit depth (16 or 32).
func packInts(data []int, bitDepth int) ([]byte, error) {
	switch bitDepth {
	case 16:
		out := make([]byte, len(data)*2)
		for i, v := range data {
			binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(v)))
		}
		return out, nil
	case 32:
		out := make([]byte, len(data)*4)
		for i, v := range data {
			binary.LittleEndian.PutUint32(out[i*4:], uint32(int32(v)))
		}
		return out, nil
	default:
		return nil, errors.Errorf("wav: unsupported bit depth %d", bitDepth)
	}
}
