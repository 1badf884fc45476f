// Package synth implements the ambient-noise synthesis pipeline: a 2D
// control position is mapped to bounded synthesis parameters, a white-noise
// generator is scaled by them, and an optional two-band filter stage shapes
// the spectrum into the audible "noise color".
//
// Two concurrency domains meet here. The control domain publishes parameter
// snapshots through Engine.SetControl at arbitrary rates; the audio domain
// calls Engine.RenderBlock from the output device's goroutine. The handoff is
// a single atomic pointer swap: the render path never locks, never allocates,
// and never waits on the control domain.
package synth
