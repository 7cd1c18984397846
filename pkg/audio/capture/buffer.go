// ABOUTME: Bounded append-only sample buffer
// ABOUTME: Pre-sized so appends never reallocate inside the audio callback
package capture

// SampleBuffer is an append-only sequence of interleaved float32 samples.
// Its capacity is fixed at construction; appends past it are truncated.
// It is not safe for concurrent use: the callback writes it while the
// stream runs, and the controller reads it only after the stream is closed.
type SampleBuffer struct {
	samples []float32
}

// NewSampleBuffer allocates a buffer holding at most maxSamples samples
func NewSampleBuffer(maxSamples int) *SampleBuffer {
	if maxSamples < 0 {
		maxSamples = 0
	}
	return &SampleBuffer{
		samples: make([]float32, 0, maxSamples),
	}
}

// Append copies as much of in as fits and returns the number of samples taken
func (b *SampleBuffer) Append(in []float32) int {
	n := min(len(in), b.Remaining())
	b.samples = append(b.samples, in[:n]...)
	return n
}

// AppendSilence appends up to n zero samples and returns the number appended
func (b *SampleBuffer) AppendSilence(n int) int {
	n = min(n, b.Remaining())
	if n <= 0 {
		return 0
	}
	start := len(b.samples)
	b.samples = b.samples[:start+n]
	clear(b.samples[start:])
	return n
}

// Len returns the number of samples recorded
func (b *SampleBuffer) Len() int {
	return len(b.samples)
}

// Cap returns the maximum number of samples the buffer holds
func (b *SampleBuffer) Cap() int {
	return cap(b.samples)
}

// Remaining returns the free capacity in samples
func (b *SampleBuffer) Remaining() int {
	return cap(b.samples) - len(b.samples)
}

// Full reports whether the buffer reached its capacity
func (b *SampleBuffer) Full() bool {
	return b.Remaining() == 0
}

// Samples returns the recorded samples. The slice aliases the buffer.
func (b *SampleBuffer) Samples() []float32 {
	return b.samples
}
