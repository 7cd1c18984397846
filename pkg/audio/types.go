// ABOUTME: Audio type definitions
// ABOUTME: Defines capture formats and float sample helpers
package audio

import "math"

// Encoding identifies how samples are stored
type Encoding string

const (
	EncodingFloat32 Encoding = "float32"
)

// Format describes an audio stream format
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Encoding   Encoding
}

// Float32Format returns the 32-bit float format for the given rate and channels
func Float32Format(sampleRate, channels int) Format {
	return Format{
		SampleRate: sampleRate,
		Channels:   channels,
		BitDepth:   32,
		Encoding:   EncodingFloat32,
	}
}

// BytesPerFrame returns the size of one frame across all channels
func (f Format) BytesPerFrame() int {
	return f.Channels * f.BitDepth / 8
}

// Peak returns the largest absolute sample value in samples.
// It does not allocate and is safe to call from an audio callback.
func Peak(samples []float32) float32 {
	var peak float32
	for _, s := range samples {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	return peak
}

// Decibels converts a linear amplitude to dBFS; silence maps to -Inf
func Decibels(amplitude float32) float64 {
	if amplitude <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(float64(amplitude))
}
