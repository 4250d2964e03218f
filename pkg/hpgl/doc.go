// Package hpgl parses and normalizes HP-GL style pen-plotter command streams.
//
// # Overview
//
// A plotter document is a sequence of semicolon-terminated instructions such as
// "IN;SP1;PU0,0;PD100,0,100,100;PU;". The language is stateful and ambiguous:
// pen-state instructions may carry coordinates, and a single instruction may
// carry any number of points. This package turns raw text into typed
// [Command] values with [Parse], then rewrites them into the smaller
// [CanonicalCommand] set with [Canonicalize], where every point is an
// absolute move and pen-state instructions carry no coordinates.
//
// # Commands
//
// Both command families are closed sum types. The concrete types are:
//
//   - Parsed: [PenUp], [PenDown], [PlotAbsolute], [PlotRelative], [SelectPen], [Initialize]
//   - Canonical: [CanonicalPenUp], [CanonicalPenDown], [CanonicalPlot],
//     [CanonicalSelectPen], [CanonicalInitialize]
//
// Switch on the concrete type to consume them:
//
//	for _, c := range cmds {
//	    switch c := c.(type) {
//	    case hpgl.PenDown:
//	        draw(c.Points)
//	    case hpgl.SelectPen:
//	        pen = c.Pen
//	    }
//	}
//
// # Errors
//
// [Parse] is all-or-nothing: when any fragment is malformed it returns a
// [*ParseError] listing every offending fragment and no commands at all.
// [Canonicalize] rejects relative-coordinate input with an error wrapping
// [ErrRelativeCoordinates]. Both errors carry codes from pkg/errors so the
// CLI and API can report them uniformly.
//
// # Optional Passes
//
// [CollapsePenCommands] and [CollapseCanonical] drop redundant pen-state
// commands. [CheckBounds] reports points outside the plotter sheet; it is
// advisory and never fails a document. [Relativize] converts canonical
// absolute moves into relative ones for plotters that are driven that way.
package hpgl
