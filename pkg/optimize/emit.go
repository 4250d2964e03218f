package optimize

import "github.com/matzehuels/penpath/pkg/hpgl"

// Emit turns a plot back into canonical commands.
//
// Colors other than [NoPen] are emitted in ascending order, each introduced by
// a pen select. Every shape is reached with the pen up, then drawn with the
// pen down:
//
//	PU; PA<first>; PD; PA<second>; ...
//
// The stream ends with a pen-up and a select of pen 0.
func Emit(plot *Plot) []hpgl.CanonicalCommand {
	out := make([]hpgl.CanonicalCommand, 0, plot.Points()+3*plot.Len()+len(plot.Colors())+2)
	for _, c := range plot.Colors() {
		if c == NoPen {
			continue
		}
		out = append(out, hpgl.CanonicalSelectPen{Pen: c})
		for _, s := range plot.Shapes(c) {
			out = append(out, hpgl.CanonicalPenUp{}, hpgl.CanonicalPlot{Point: s[0]}, hpgl.CanonicalPenDown{})
			for _, p := range s[1:] {
				out = append(out, hpgl.CanonicalPlot{Point: p})
			}
		}
	}
	return append(out, hpgl.CanonicalPenUp{}, hpgl.CanonicalSelectPen{Pen: NoPen})
}
