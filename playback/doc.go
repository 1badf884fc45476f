// Package playback owns the start/stop lifecycle of the audio output path.
//
// A Controller feeds a synth.Engine to an Output backend (ebitengine/oto by
// default) through a pull-based stream reader. Start and stop are idempotent
// and cheap after the first device open: stopping pauses the output rather
// than tearing it down. The device's reader goroutine is the audio domain;
// the controller mutex guards setup and lifecycle only and is never taken on
// the sample path.
package playback
