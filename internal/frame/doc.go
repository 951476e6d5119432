// Package frame reads one timestep of 2D field samples from disk.
//
// A frame file is headerless comma-separated text with one record per grid
// sample, always in the column order
//
//	x,y,field,u,v
//
// where field is the primary scalar (E, B, ...) and (u, v) the vector
// components at that point. Records may appear in any order; recovering the
// lattice is the job of package lattice.
//
// Use [Read] for a single file and [Pattern] to address the numbered files of
// an animation run.
package frame
