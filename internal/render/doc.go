// Package render draws reconstructed fields with gonum plot.
//
// Call [Setup] once before any render call; it installs the process-wide
// text handler and the font size applied to every new plot. Then:
//
//   - [Scalar]: heatmap of one field with a color bar
//   - [Vector]: arrows along (u, v), colored by a scalar field
//   - [Magnitude]: arrows along (u, v) weighted by a magnitude field and
//     capped at a maximum length, drawn in one color
//
// [Render] dispatches on a [Kind] for a whole frame. Figures are drawn onto a
// reusable [Surface] for animation or written to a file with [Save].
package render
