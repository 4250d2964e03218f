package render

import (
	"testing"

	"github.com/matzehuels/penpath/pkg/hpgl"
)

func TestGCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  []GCodeOption
		want  string
	}{
		{
			"pen changes dwell",
			"PU1000,0;PD1000,1000;",
			nil,
			"G90\nM107\nG4 P100\nG1 X76 Y0\n" +
				"G90\nM106\nG4 P100\nG1 X76 Y76\n",
		},
		{
			"plot modes",
			"PA10,20;PR-10,5;",
			[]GCodeOption{WithScale(1)},
			"G90\nG1 X10 Y20\nG91\nG1 X-10 Y5\n",
		},
		{
			"select and initialize are dropped",
			"IN;SP1;",
			nil,
			"",
		},
		{
			"custom scale and dwell",
			"PU;PA3,4;",
			[]GCodeOption{WithAxisScale(0.5, 0.25), WithDwell(250)},
			"G90\nM107\nG4 P250\nG90\nG1 X1.5 Y1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(GCode(hpgl.MustParse(tt.input), tt.opts...)); got != tt.want {
				t.Errorf("GCode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{76, "76"},
		{3 * 0.076, "0.228"},
		{-1.5, "-1.5"},
		{0.00004, "0"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
