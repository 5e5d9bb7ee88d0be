// Package wavio reads and writes stereo float32 PCM to and from WAV files,
// and applies a soft-knee limiter at the file-writing boundary so that a
// hot wet signal rounds off instead of wrapping.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// limiterThreshold is the magnitude above which limitStereo starts
// compressing toward unity instead of passing the sample through.
const limiterThreshold = 0.8

// limitStereo bounds every sample in an interleaved stereo buffer to
// [-1, 1]. Samples under limiterThreshold pass through unchanged; samples
// over it are compressed through a tanh knee that approaches but never
// reaches 1, so a hot reverb tail rounds off instead of hard-clipping at
// the 16-bit quantization step below.
func limitStereo(interleaved []float32) {
	for i, v := range interleaved {
		interleaved[i] = softKnee(v)
	}
}

func softKnee(v float32) float32 {
	sign := float32(1)
	if v < 0 {
		sign = -1
		v = -v
	}
	if v <= limiterThreshold {
		return sign * v
	}
	over := (v - limiterThreshold) / (1 - limiterThreshold)
	return sign * (limiterThreshold + (1-limiterThreshold)*float32(math.Tanh(float64(over))))
}

// ErrUnsupportedChannels is returned by ReadStereo for files that are
// neither mono nor stereo.
var ErrUnsupportedChannels = errors.New("wavio: only mono and stereo wav files are supported")

// ErrNotWAV is returned by ReadStereo when the stream is not a valid WAV
// container.
var ErrNotWAV = errors.New("wavio: input is not a valid wav file")

// ReadStereo decodes r fully into left/right float32 slices in [-1, 1].
// Mono input is duplicated into both channels. r must support seeking;
// go-audio/wav needs it to walk the chunk list.
func ReadStereo(r io.ReadSeeker) (left, right []float32, sampleRate int, err error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, nil, 0, ErrNotWAV
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("wavio: decode: %w", err)
	}

	sampleRate = buf.Format.SampleRate
	channels := buf.Format.NumChannels
	bitDepth := int(dec.BitDepth)

	switch channels {
	case 1:
		left = make([]float32, len(buf.Data))
		right = make([]float32, len(buf.Data))
		for i, s := range buf.Data {
			v := intToFloat32(s, bitDepth)
			left[i] = v
			right[i] = v
		}
	case 2:
		frames := len(buf.Data) / 2
		left = make([]float32, frames)
		right = make([]float32, frames)
		for i := 0; i < frames; i++ {
			left[i] = intToFloat32(buf.Data[2*i], bitDepth)
			right[i] = intToFloat32(buf.Data[2*i+1], bitDepth)
		}
	default:
		return nil, nil, 0, ErrUnsupportedChannels
	}

	return left, right, sampleRate, nil
}

// WriteStereo encodes left/right as a 16-bit stereo WAV file at sampleRate.
// Every sample first goes through limitStereo, so samples whose magnitude
// exceeds limiterThreshold are compressed toward unity rather than
// clipped. left and right must have equal length.
func WriteStereo(w io.WriteSeeker, left, right []float32, sampleRate int) error {
	if len(left) != len(right) {
		return fmt.Errorf("wavio: left and right channel lengths differ (%d != %d)", len(left), len(right))
	}

	frames := len(left)
	interleaved := make([]float32, frames*2)
	for i := 0; i < frames; i++ {
		interleaved[2*i] = left[i]
		interleaved[2*i+1] = right[i]
	}

	limitStereo(interleaved)

	data := make([]int, frames*2)
	for i, v := range interleaved {
		data[i] = int(quantizeInt16(v))
	}

	enc := wav.NewEncoder(w, sampleRate, 16, 2, 1)
	defer enc.Close()

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 2,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: encode: %w", err)
	}
	return nil
}
