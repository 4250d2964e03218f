package osm

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	perrors "github.com/matzehuels/penpath/pkg/errors"
	"github.com/matzehuels/penpath/pkg/hpgl"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
  <bounds minlat="0" minlon="0" maxlat="1" maxlon="1"/>
  <node id="1" lat="0.5" lon="0.5"/>
  <node id="2" lat="0.25" lon="0.75"/>
  <node id="3" lat="2" lon="2"/>
  <node id="4" lat="3" lon="3"/>
  <node id="5" lat="0.5" lon="0.25"/>
  <node id="bad" lat="0.1" lon="0.1"/>
  <way id="20">
    <nd ref="1"/>
    <nd ref="3"/>
    <nd ref="4"/>
    <tag k="highway" v="residential"/>
  </way>
  <way id="10">
    <nd ref="1"/>
    <nd ref="2"/>
    <nd ref="99"/>
    <tag k="building" v="yes"/>
  </way>
  <way id="30">
    <nd ref="5"/>
    <tag k="natural" v="water"/>
  </way>
  <relation id="40"><member ref="10"/></relation>
</osm>`

func TestParse(t *testing.T) {
	m, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if m.Bounds != (Bounds{MinLat: 0, MinLon: 0, MaxLat: 1, MaxLon: 1}) {
		t.Errorf("Bounds = %+v", m.Bounds)
	}
	if len(m.Nodes) != 5 {
		t.Errorf("len(Nodes) = %d, want 5", len(m.Nodes))
	}
	if len(m.Ways) != 3 {
		t.Errorf("len(Ways) = %d, want 3", len(m.Ways))
	}
	if got := m.Ways[10].Tags["building"]; got != "yes" {
		t.Errorf("way 10 building tag = %q, want yes", got)
	}
	if got := m.Ways[20].Nodes; len(got) != 3 || got[2] != 4 {
		t.Errorf("way 20 nodes = %v", got)
	}
}

func TestParseWithoutBounds(t *testing.T) {
	_, err := Parse(strings.NewReader(`<osm><node id="1" lat="0" lon="0"/></osm>`))
	if !perrors.Is(err, perrors.ErrCodeMalformedDocument) {
		t.Errorf("Parse() error = %v, want MALFORMED_DOCUMENT", err)
	}
}

func TestParseInvalidXML(t *testing.T) {
	if _, err := Parse(strings.NewReader("<osm")); err == nil {
		t.Error("Parse() expected error for truncated xml")
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.osm")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseFile(path); err != nil {
		t.Errorf("ParseFile() error: %v", err)
	}

	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.osm"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ParseFile(missing) error = %v, want not exist", err)
	}
}

func TestPenFor(t *testing.T) {
	tests := []struct {
		tags map[string]string
		want uint8
	}{
		{map[string]string{"building": "yes"}, PenBuilding},
		{map[string]string{"building": "yes", "highway": "service"}, PenBuilding},
		{map[string]string{"leisure": "park"}, PenPark},
		{map[string]string{"leisure": "playground"}, PenPark},
		{map[string]string{"leisure": "pitch"}, PenNone},
		{map[string]string{"highway": "primary"}, PenHighway},
		{nil, PenNone},
	}
	for _, tt := range tests {
		if got := PenFor(tt.tags); got != tt.want {
			t.Errorf("PenFor(%v) = %d, want %d", tt.tags, got, tt.want)
		}
	}
}

func TestTransformCorners(t *testing.T) {
	b := Bounds{MinLat: 52.5, MinLon: 13.25, MaxLat: 53, MaxLon: 13.5}
	tests := []struct {
		node Node
		want hpgl.Point
	}{
		{Node{Lat: 52.5, Lon: 13.25}, hpgl.Pt(SheetX, 0)},
		{Node{Lat: 53, Lon: 13.5}, hpgl.Pt(0, SheetY)},
	}
	for _, tt := range tests {
		if got := b.Transform(tt.node); got != tt.want {
			t.Errorf("Transform(%v) = %v, want %v", tt.node, got, tt.want)
		}
	}

	unit := Bounds{MaxLat: 1, MaxLon: 1}
	if got := unit.Transform(Node{Lat: 0.5, Lon: 0.5}); got != hpgl.Pt(5150, 3825) {
		t.Errorf("Transform(center) = %v, want 5150,3825", got)
	}
}

func TestCommands(t *testing.T) {
	m, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}

	got := hpgl.Format(m.Commands(Options{}))
	want := strings.Join([]string{
		// way 10: both nodes inside, missing ref skipped
		"SP1;", "PU;", "PA5150,3825;", "PD;", "PA7725,5737;", "PD;",
		// way 20: node 3 is next to node 1, node 4 has no visible neighbour
		"SP3;", "PU;", "PA5150,3825;", "PD;", "PA-10300,15300;", "PD;",
		// way 30: unstyled
		"SP0;", "PU;", "PA5150,1912;", "PD;",
		"SP0;",
	}, "\n") + "\n"

	if got != want {
		t.Errorf("Commands() =\n%s\nwant\n%s", got, want)
	}
}

func TestCommandsSkipUnstyled(t *testing.T) {
	m, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	cmds := m.Commands(Options{SkipUnstyled: true})
	text := hpgl.Format(cmds)
	if strings.Contains(text, "PA5150,1912;") {
		t.Errorf("unstyled way emitted:\n%s", text)
	}
	if last := cmds[len(cmds)-1]; last != (hpgl.SelectPen{Pen: 0}) {
		t.Errorf("last command = %v, want SP0;", last)
	}
}

func TestCommandsReparse(t *testing.T) {
	m, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	cmds, err := hpgl.Parse(hpgl.Format(m.Commands(Options{})))
	if err != nil {
		t.Fatalf("Parse(Commands()) error: %v", err)
	}
	if _, err := hpgl.Canonicalize(cmds); err != nil {
		t.Errorf("Canonicalize(Commands()) error: %v", err)
	}
}

func TestCommandsEmptyMap(t *testing.T) {
	m := &Map{Bounds: Bounds{MaxLat: 1, MaxLon: 1}}
	if got := hpgl.Format(m.Commands(Options{})); got != "SP0;\n" {
		t.Errorf("Commands() = %q, want %q", got, "SP0;\n")
	}
}
