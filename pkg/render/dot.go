package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/penpath/pkg/optimize"
)

// TourDOT describes the visiting order of plot as a Graphviz digraph. Each
// color is a cluster of shape nodes chained in drawing order; edges carry
// the pen-up travel between consecutive shapes.
func TourDOT(plot *optimize.Plot, palette Palette) string {
	if palette == nil {
		palette = DefaultPalette
	}

	var buf bytes.Buffer
	buf.WriteString("digraph tour {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded\", fontsize=12];\n")

	for _, c := range plot.Colors() {
		if c == optimize.NoPen {
			continue
		}
		shapes := plot.Shapes(c)
		fmt.Fprintf(&buf, "\n  subgraph cluster_pen%d {\n", c)
		fmt.Fprintf(&buf, "    label=%q;\n", fmt.Sprintf("pen %d (%s)", c, palette.Name(c)))
		fmt.Fprintf(&buf, "    color=%q;\n", palette.Name(c))
		for i, s := range shapes {
			label := fmt.Sprintf("#%d\n%v -> %v\n%d points", i, s.Start(), s.End(), len(s))
			fmt.Fprintf(&buf, "    %q [label=%q];\n", nodeID(c, i), label)
		}
		for i := 1; i < len(shapes); i++ {
			d := optimize.Distance(shapes[i-1].End(), shapes[i].Start())
			fmt.Fprintf(&buf, "    %q -> %q [label=%q];\n", nodeID(c, i-1), nodeID(c, i), fmt.Sprintf("%.0f", d))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(pen uint8, i int) string {
	return fmt.Sprintf("p%d_s%d", pen, i)
}

// RenderDOT lays out a DOT graph with Graphviz and returns SVG.
func RenderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
