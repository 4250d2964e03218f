package optimize

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/penpath/pkg/hpgl"
)

func TestNearestNeighbor(t *testing.T) {
	tests := []struct {
		name   string
		shapes []Shape
		want   []Shape
	}{
		{"empty", nil, nil},
		{"single", []Shape{shape(5, 5)}, []Shape{shape(5, 5)}},
		{
			"greedy by start point",
			[]Shape{shape(0, 0, 10, 0), shape(100, 0, 110, 0), shape(12, 0, 20, 0)},
			[]Shape{shape(0, 0, 10, 0), shape(12, 0, 20, 0), shape(100, 0, 110, 0)},
		},
		{
			"ties go to the earliest shape",
			[]Shape{shape(0, 0), shape(10, 0), shape(-10, 0)},
			[]Shape{shape(0, 0), shape(10, 0), shape(-10, 0)},
		},
		{
			"32-bit extremes",
			[]Shape{shape(-2000000000, 0), shape(2000000000, 0), shape(-1999999000, 0)},
			[]Shape{shape(-2000000000, 0), shape(-1999999000, 0), shape(2000000000, 0)},
		},
		{
			"opposite corners",
			[]Shape{shape(math.MinInt32, math.MinInt32), shape(math.MaxInt32, math.MaxInt32), shape(math.MinInt32+1, math.MinInt32)},
			[]Shape{shape(math.MinInt32, math.MinInt32), shape(math.MinInt32+1, math.MinInt32), shape(math.MaxInt32, math.MaxInt32)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearestNeighbor(tt.shapes); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NearestNeighbor() = %v, want %v", got, tt.want)
			}
		})
	}
}

// The metric runs from the previous end point to candidate start points, so a
// candidate whose end lies close by does not win.
func TestNearestNeighborUsesStartPoints(t *testing.T) {
	first := shape(0, 0, 1000, 1000)
	farStartNearEnd := shape(9000, 9000, 1001, 1001)
	nearStart := shape(1500, 1500, 9000, 0)

	got := NearestNeighbor([]Shape{first, farStartNearEnd, nearStart})
	want := []Shape{first, nearStart, farStartNearEnd}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NearestNeighbor() = %v, want %v", got, want)
	}
}

func TestNearestNeighborDoesNotModifyInput(t *testing.T) {
	in := []Shape{shape(0, 0), shape(50, 0), shape(1, 0)}
	orig := append([]Shape(nil), in...)
	NearestNeighbor(in)
	if !reflect.DeepEqual(in, orig) {
		t.Errorf("NearestNeighbor modified its input: %v, want %v", in, orig)
	}
}

func testPlot() *Plot {
	p := NewPlot()
	p.Add(0, shape(7, 7, 8, 8))
	p.Add(0, shape(0, 0, 1, 1))
	p.Add(1, shape(0, 0, 10, 0))
	p.Add(1, shape(500, 500, 600, 600))
	p.Add(1, shape(11, 0, 20, 0))
	p.Add(2, shape(100, 100, 100, 200))
	p.Add(2, shape(0, 0, 0, 1))
	p.Add(2, shape(100, 210, 100, 300))
	p.Ensure(3)
	return p
}

func TestOptimize(t *testing.T) {
	in := testPlot()
	out, err := Optimize(context.Background(), in, Options{Workers: 2})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}

	if got, want := out.Colors(), []uint8{0, 1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("Colors() = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(out.Shapes(0), in.Shapes(0)) {
		t.Errorf("pen 0 was reordered: %v", out.Shapes(0))
	}
	want1 := []Shape{shape(0, 0, 10, 0), shape(11, 0, 20, 0), shape(500, 500, 600, 600)}
	if !reflect.DeepEqual(out.Shapes(1), want1) {
		t.Errorf("Shapes(1) = %v, want %v", out.Shapes(1), want1)
	}
	want2 := []Shape{shape(100, 100, 100, 200), shape(100, 210, 100, 300), shape(0, 0, 0, 1)}
	if !reflect.DeepEqual(out.Shapes(2), want2) {
		t.Errorf("Shapes(2) = %v, want %v", out.Shapes(2), want2)
	}
	if len(out.Shapes(3)) != 0 || !out.Has(3) {
		t.Errorf("color 3 entry lost or filled: %v", out.Shapes(3))
	}

	// input is untouched
	if !reflect.DeepEqual(in.Shapes(1)[1], shape(500, 500, 600, 600)) {
		t.Errorf("Optimize modified its input plot")
	}
}

func TestOptimizeIsIdempotent(t *testing.T) {
	once, err := Optimize(context.Background(), testPlot(), Options{})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	twice, err := Optimize(context.Background(), once, Options{})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	for _, c := range once.Colors() {
		if !reflect.DeepEqual(once.Shapes(c), twice.Shapes(c)) {
			t.Errorf("color %d: second pass = %v, want %v", c, twice.Shapes(c), once.Shapes(c))
		}
	}
}

func TestOptimizeReducesTravel(t *testing.T) {
	in := testPlot()
	out, err := Optimize(context.Background(), in, Options{})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	if before, after := PlotTravel(in), PlotTravel(out); after > before {
		t.Errorf("PlotTravel after = %v, want <= %v", after, before)
	}
}

func TestOptimizeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Optimize(ctx, testPlot(), Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Optimize(canceled) error = %v, want context.Canceled", err)
	}
}

func TestTravelDistance(t *testing.T) {
	tests := []struct {
		shapes []Shape
		want   float64
	}{
		{nil, 0},
		{[]Shape{shape(100, 100, 200, 200)}, 0},
		{[]Shape{shape(0, 0, 0, 10), shape(3, 14)}, 5},
		{[]Shape{shape(0, 0), shape(0, 10), shape(0, 0)}, 20},
	}
	for _, tt := range tests {
		if got := TravelDistance(tt.shapes); got != tt.want {
			t.Errorf("TravelDistance(%v) = %v, want %v", tt.shapes, got, tt.want)
		}
	}
	if got := Distance(hpgl.Pt(0, 0), hpgl.Pt(6, 8)); got != 10 {
		t.Errorf("Distance() = %v, want 10", got)
	}
	if got := Distance(hpgl.Pt(math.MinInt32, 0), hpgl.Pt(math.MaxInt32, 0)); got != 4294967295 {
		t.Errorf("Distance(min, max) = %v, want 4294967295", got)
	}
	if d := Distance(hpgl.Pt(math.MinInt32, math.MinInt32), hpgl.Pt(math.MaxInt32, math.MaxInt32)); d <= 0 {
		t.Errorf("Distance across the full range = %v, want positive", d)
	}
}
