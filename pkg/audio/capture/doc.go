// ABOUTME: Capture package for fixed-duration input recording
// ABOUTME: Provides Session, SampleBuffer and the Backend interface
// Package capture records a fixed-duration input stream into memory.
//
// A Session negotiates a stream with a Backend, registers Process as the
// real-time callback and drives the stream for the configured duration.
// The callback appends into a SampleBuffer whose capacity is reserved up
// front, so it never allocates while the stream runs.
//
// Example:
//
//	s := capture.NewSession(backend, capture.DefaultStreamConfig())
//	if err := s.Initialize(); err != nil { ... }
//	buf, err := s.Record(ctx)
package capture
