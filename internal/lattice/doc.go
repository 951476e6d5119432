// Package lattice recovers the rectangular grid behind a frame's samples.
//
// The lattice of a frame is the Cartesian product of its unique x and unique
// y coordinates, each sorted ascending. Every reconstructed [Field] uses the
// same axis convention:
//
//	field.At(row, col) <-> y = lattice.Y[row], x = lattice.X[col]
//
// so the first array axis is vertical and the second horizontal, and a flat
// column emitted x-fastest maps onto the array in row-major order. All
// components of one frame go through [Lattice.Reshape], which keeps u, v and
// the color field aligned.
package lattice
