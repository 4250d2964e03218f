package hpgl

import (
	"errors"
	"reflect"
	"testing"

	perrors "github.com/matzehuels/penpath/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Command
	}{
		{"empty", "", nil},
		{"separator only", ";", nil},
		{"whitespace", "  ", nil},
		{"newline", "\n", nil},
		{"bare pen states", "PU;PD;", []Command{PenUp{}, PenDown{}}},
		{"padded pen states", "  PU  ; PD  ; ", []Command{PenUp{}, PenDown{}}},
		{"initialize", "IN;", []Command{Initialize{}}},
		{"select pen", "SP3;", []Command{SelectPen{Pen: 3}}},
		{"select pen padded", "SP 12;", []Command{SelectPen{Pen: 12}}},
		{"select pen zero", "SP0;", []Command{SelectPen{Pen: 0}}},
		{"select pen max", "SP255;", []Command{SelectPen{Pen: 255}}},
		{
			"pen up with points",
			"PU10,20,30,40;",
			[]Command{PenUp{Points: []Point{Pt(10, 20), Pt(30, 40)}}},
		},
		{
			"plot absolute spaced fields",
			"PA 1000, 2000;",
			[]Command{PlotAbsolute{Points: []Point{Pt(1000, 2000)}}},
		},
		{
			"plot relative negative",
			"PR-5,7;",
			[]Command{PlotRelative{Points: []Point{Pt(-5, 7)}}},
		},
		{
			"32-bit extremes",
			"PA2147483647,-2147483648;",
			[]Command{PlotAbsolute{Points: []Point{Pt(2147483647, -2147483648)}}},
		},
		{
			"multiline document",
			"IN;\nSP1;\nPU0,0;\nPD100,0,100,100;\nPU;\n",
			[]Command{
				Initialize{},
				SelectPen{Pen: 1},
				PenUp{Points: []Point{Pt(0, 0)}},
				PenDown{Points: []Point{Pt(100, 0), Pt(100, 100)}},
				PenUp{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		fragments []string
	}{
		{"unknown mnemonic", "command_not_valid", []string{"command_not_valid"}},
		{"single character", "a", []string{"a"}},
		{"non numeric points", "PA foo, bar", []string{"PA foo, bar"}},
		{"odd field count", "PA1,2,3;", []string{"PA1,2,3"}},
		{"select pen out of range", "SP256;", []string{"SP256"}},
		{"select pen negative", "SP-1;", []string{"SP-1"}},
		{"select pen empty", "SP;", []string{"SP"}},
		{"select pen blank", "SP ;", []string{"SP"}},
		{"coordinate beyond 32 bits", "PA99999999999,0;", []string{"PA99999999999,0"}},
		{"negative coordinate beyond 32 bits", "PU0,-2147483649;", []string{"PU0,-2147483649"}},
		{"lowercase", "pu;", []string{"pu"}},
		{
			"valid neighbours are not returned",
			"  PU  ; command_not_valid ; PD  ; ",
			[]string{"command_not_valid"},
		},
		{
			"every bad fragment in order",
			"PU;XX1;PD;PA1;SP1;",
			[]string{"XX1", "PA1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) = %v, want error", tt.input, cmds)
			}
			if cmds != nil {
				t.Errorf("Parse(%q) returned partial commands %v", tt.input, cmds)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse(%q) error %T is not a *ParseError", tt.input, err)
			}
			if !reflect.DeepEqual(pe.Fragments, tt.fragments) {
				t.Errorf("Parse(%q) fragments = %q, want %q", tt.input, pe.Fragments, tt.fragments)
			}
			if !perrors.Is(err, perrors.ErrCodeInvalidCommand) {
				t.Errorf("Parse(%q) error code = %q, want %q", tt.input, perrors.GetCode(err), perrors.ErrCodeInvalidCommand)
			}
		})
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input   string
		want    Command
		wantErr bool
	}{
		{"", nil, true},
		{"a", nil, true},
		{"PU ", nil, true},
		{" PU", nil, true},
		{"PU", PenUp{}, false},
		{"IN", Initialize{}, false},
		{"SP", nil, true},
		{"PD1,2", PenDown{Points: []Point{Pt(1, 2)}}, false},
	}

	for _, tt := range tests {
		got, err := parseCommand(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseCommand(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseCommand(%q) = %#v, want %#v", tt.input, got, tt.want)
		}
	}
}

func TestCommandString(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{PenUp{}, "PU;"},
		{PenDown{Points: []Point{Pt(1, 2), Pt(3, 4)}}, "PD1,2,3,4;"},
		{PlotAbsolute{Points: []Point{Pt(-1, 0)}}, "PA-1,0;"},
		{PlotRelative{Points: []Point{Pt(5, 5)}}, "PR5,5;"},
		{SelectPen{Pen: 7}, "SP7;"},
		{Initialize{}, "IN;"},
	}

	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.cmd, got, tt.want)
		}
	}
}

func TestFormatReparses(t *testing.T) {
	cmds := MustParse("IN;SP2;PU10,10;PD20,10,20,20;PR1,1;PU;")
	again, err := Parse(Format(cmds))
	if err != nil {
		t.Fatalf("Parse(Format(...)) error = %v", err)
	}
	if !reflect.DeepEqual(again, cmds) {
		t.Errorf("Parse(Format(cmds)) = %v, want %v", again, cmds)
	}
}
