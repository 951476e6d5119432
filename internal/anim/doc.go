// Package anim renders a simulation run frame by frame.
//
// An [Animator] walks frame indices 0..N-1 strictly in order. Each step
// loads one frame, rebuilds its lattice, renders it onto the shared
// drawing surface with the frame index as title, and hands the image to an
// encoder. Nothing but the render options carries over from one frame to
// the next.
//
// A failure on any frame stops the run: [Animator.Run] aborts the encoder so
// no partial artifact remains, and returns a [FrameError] naming the frame.
//
// # Example
//
//	fps, _ := anim.FrameRate(meta.NumSteps, 10)
//	enc, _ := encode.New("run.avi", surface.Bounds(), fps)
//	a, _ := anim.New(cfg, pattern, surface, enc)
//	err := a.Run(ctx)
package anim
