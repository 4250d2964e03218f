// Package osm turns OpenStreetMap XML extracts into plotter command streams.
//
// [Parse] reads an .osm document (as exported by openstreetmap.org or the
// 0.6 map API) into a [Map]. [Map.Commands] then draws every way as a
// polyline, picking a pen from the way's tags:
//
//	SP1  buildings
//	SP2  parks and playgrounds
//	SP3  highways
//	SP0  everything else (not drawn)
//
// The map's bounds are projected onto the full plotter sheet with latitude
// on the x axis, so north is at the paper origin. Only points inside the
// bounds, or adjacent to a point inside them, are emitted; this keeps roads
// that leave the extract from being drawn off the sheet.
package osm
