// ABOUTME: Audio input package for capture backends
// ABOUTME: Provides malgo and PortAudio implementations of capture.Backend
// Package input provides capture backends.
//
// malgo (miniaudio) is the default and needs no system library.
// PortAudio requires the portaudio library and the portaudio build tag.
//
// Example:
//
//	backend, err := input.New("malgo")
//	defer backend.Terminate()
//	session := capture.NewSession(backend, capture.DefaultStreamConfig())
package input
