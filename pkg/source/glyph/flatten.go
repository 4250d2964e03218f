package glyph

import (
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/penpath/pkg/hpgl"
)

type pointF struct{ x, y float64 }

// toSheet converts a glyph-space point (y down) to sheet space (y up).
func toSheet(p fixed.Point26_6, origin pointF) pointF {
	return pointF{origin.x + float64(p.X)/64, origin.y - float64(p.Y)/64}
}

func (p pointF) round() hpgl.Point {
	return hpgl.Pt(int(math.Round(p.x)), int(math.Round(p.y)))
}

func lerp(a, b pointF, t float64) pointF {
	return pointF{a.x + (b.x-a.x)*t, a.y + (b.y-a.y)*t}
}

func quad(p0, c, p1 pointF, t float64) pointF {
	return lerp(lerp(p0, c, t), lerp(c, p1, t), t)
}

func cubic(p0, c0, c1, p1 pointF, t float64) pointF {
	return quad(lerp(p0, c0, t), lerp(c0, c1, t), lerp(c1, p1, t), t)
}

// outline flattens glyph segments into closed polylines. Consecutive points
// that round to the same plotter unit are merged, and contours that collapse
// to a single point are dropped.
func outline(segs sfnt.Segments, origin pointF, steps int) [][]hpgl.Point {
	var (
		out   [][]hpgl.Point
		cur   []hpgl.Point
		pen   pointF
		start pointF
	)
	add := func(p pointF) {
		q := p.round()
		if len(cur) == 0 || cur[len(cur)-1] != q {
			cur = append(cur, q)
		}
	}
	closeContour := func() {
		if len(cur) == 0 {
			return
		}
		add(start)
		if len(cur) > 1 {
			out = append(out, cur)
		}
		cur = nil
	}

	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			closeContour()
			pen = toSheet(s.Args[0], origin)
			start = pen
			add(pen)
		case sfnt.SegmentOpLineTo:
			pen = toSheet(s.Args[0], origin)
			add(pen)
		case sfnt.SegmentOpQuadTo:
			c, end := toSheet(s.Args[0], origin), toSheet(s.Args[1], origin)
			for i := 1; i <= steps; i++ {
				add(quad(pen, c, end, float64(i)/float64(steps)))
			}
			pen = end
		case sfnt.SegmentOpCubeTo:
			c0, c1, end := toSheet(s.Args[0], origin), toSheet(s.Args[1], origin), toSheet(s.Args[2], origin)
			for i := 1; i <= steps; i++ {
				add(cubic(pen, c0, c1, end, float64(i)/float64(steps)))
			}
			pen = end
		}
	}
	closeContour()
	return out
}
