// Package render draws plotter documents as previews and converts them for
// other machines.
//
// # Overview
//
// Renderers consume parsed commands directly, without canonicalization, and
// track pen position and state themselves. [Trace] does that walk once and
// yields the visible segments; the image renderers draw from it:
//
//   - [SVG]: vector preview, one line element per segment
//   - [PDF]: A4 page via gofpdf
//   - [PNG]: raster preview via golang.org/x/image/vector
//   - [GCode]: machine-motion code for G-code plotters
//   - [TourDOT] and [RenderDOT]: the optimized visiting order as a graph
//
// Pen 0 never draws. Pens are colored by a [Palette].
//
// # Orientation
//
// Plotter X runs down the page and plotter Y runs across it, so previews
// transpose coordinates. The default page is the plotter [hpgl.Sheet].
//
//	cmds, _ := hpgl.Parse(doc)
//	svg := render.SVG(cmds, render.WithStrokeWidth(10))
package render
