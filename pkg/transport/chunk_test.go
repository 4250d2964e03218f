package transport

import (
	"reflect"
	"strings"
	"testing"
)

func TestLines(t *testing.T) {
	got := Lines("SP1;\r\nPU;\n\n  PA1,2;  \n")
	want := []string{"SP1;", "PU;", "PA1,2;"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() = %q, want %q", got, want)
	}
	if got := Lines(""); got != nil {
		t.Errorf("Lines(\"\") = %q, want nil", got)
	}
}

func TestChunk(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		budget int
		want   []string
	}{
		{"empty", nil, 60, nil},
		{"fits in one", []string{"PU;", "PA1,2;"}, 60, []string{"PU;PA1,2;"}},
		{
			"strictly below budget minus reserve",
			// limit 7: "PU;" + "PD;" = 6 < 7 joins, adding "PU;" would make 9
			[]string{"PU;", "PD;", "PU;"},
			10,
			[]string{"PU;PD;", "PU;"},
		},
		{
			"exactly at limit starts a new chunk",
			[]string{"PA1;", "PD;"},
			10,
			[]string{"PA1;", "PD;"},
		},
		{
			"oversized line goes alone",
			[]string{"PU;", "PA1000,1000;", "PD;"},
			10,
			[]string{"PU;", "PA1000,1000;", "PD;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, c := range Chunk(tt.lines, tt.budget) {
				got = append(got, string(c))
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Chunk(%q, %d) = %q, want %q", tt.lines, tt.budget, got, tt.want)
			}
		})
	}
}

func TestChunkBudgetNeverExceeded(t *testing.T) {
	var lines []string
	for i := range 200 {
		lines = append(lines, "PA"+strings.Repeat("1", i%9+1)+",20;")
	}
	for _, budget := range []int{16, 30, 60, 200} {
		chunks := Chunk(lines, budget)
		joined := 0
		for _, c := range chunks {
			if len(c) >= budget-Reserve && strings.Count(string(c), ";") > 1 {
				t.Errorf("budget %d: chunk %q has %d bytes", budget, c, len(c))
			}
			if !strings.HasSuffix(string(c), ";") {
				t.Errorf("budget %d: chunk %q splits an instruction", budget, c)
			}
			joined += len(c)
		}
		if want := len(strings.Join(lines, "")); joined != want {
			t.Errorf("budget %d: chunks carry %d bytes, want %d", budget, joined, want)
		}
	}
}
