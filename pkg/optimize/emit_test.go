package optimize

import (
	"context"
	"testing"

	"github.com/matzehuels/penpath/pkg/hpgl"
)

func TestEmit(t *testing.T) {
	p := NewPlot()
	p.Add(0, shape(1, 1, 2, 2))
	p.Add(2, shape(5, 5))
	p.Add(1, shape(0, 0, 10, 0, 10, 10))

	want := "SP1;\nPU;\nPA0,0;\nPD;\nPA10,0;\nPA10,10;\n" +
		"SP2;\nPU;\nPA5,5;\nPD;\n" +
		"PU;\nSP0;\n"
	if got := hpgl.Render(Emit(p)); got != want {
		t.Errorf("Emit() = %q, want %q", got, want)
	}
}

func TestEmitEmptyPlot(t *testing.T) {
	if got, want := hpgl.Render(Emit(NewPlot())), "PU;\nSP0;\n"; got != want {
		t.Errorf("Emit(empty) = %q, want %q", got, want)
	}
}

func TestEmitReextracts(t *testing.T) {
	in := "SP2;PU0,0;PD0,100,100,100;PU;PA500,500;PD;PA600,600;PU;SP1;PU9,9;PD10,10;PU;"
	plot, err := Extract(canonical(t, in))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	opt, err := Optimize(context.Background(), plot, Options{})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}

	again, err := Extract(Emit(opt))
	if err != nil {
		t.Fatalf("Extract(Emit()) error = %v", err)
	}
	for _, c := range opt.Colors() {
		if len(again.Shapes(c)) != len(opt.Shapes(c)) {
			t.Errorf("color %d: %d shapes after re-extract, want %d", c, len(again.Shapes(c)), len(opt.Shapes(c)))
		}
	}
	if again.Points() != opt.Points() {
		t.Errorf("re-extracted %d points, want %d", again.Points(), opt.Points())
	}
}
