// ABOUTME: Audio package for capture formats and sample helpers
// ABOUTME: Shared by the capture session, backends and the WAV writer
// Package audio provides the types shared by the capture pipeline.
//
// Samples are float32 in [-1, 1], interleaved by channel.
package audio
