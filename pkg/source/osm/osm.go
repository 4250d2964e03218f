package osm

import (
	"io"
	"os"
	"strconv"

	"github.com/beevik/etree"

	perrors "github.com/matzehuels/penpath/pkg/errors"
)

// Bounds is the lat/lon rectangle an extract was cut to.
type Bounds struct {
	MinLat float64 `json:"minlat"`
	MinLon float64 `json:"minlon"`
	MaxLat float64 `json:"maxlat"`
	MaxLon float64 `json:"maxlon"`
}

// Contains reports whether n lies strictly inside b.
func (b Bounds) Contains(n Node) bool {
	return n.Lat > b.MinLat && n.Lat < b.MaxLat && n.Lon > b.MinLon && n.Lon < b.MaxLon
}

// Node is a single coordinate.
type Node struct {
	Lat  float64
	Lon  float64
	Tags map[string]string
}

// Way is an ordered list of node references.
type Way struct {
	Nodes []int64
	Tags  map[string]string
}

// Map holds the nodes and ways of one extract, keyed by OSM id.
type Map struct {
	Bounds Bounds
	Nodes  map[int64]Node
	Ways   map[int64]Way
}

// ParseFile reads and parses an .osm file.
func ParseFile(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, perrors.Wrap(perrors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads an OSM XML document. Elements with missing or unparsable ids
// or coordinates are skipped; a document without <bounds> is rejected.
func Parse(r io.Reader) (*Map, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeMalformedDocument, err, "read osm xml")
	}
	root := doc.Root()
	if root == nil {
		return nil, perrors.New(perrors.ErrCodeMalformedDocument, "empty osm document")
	}

	m := &Map{Nodes: make(map[int64]Node), Ways: make(map[int64]Way)}
	var haveBounds bool

	for _, e := range root.ChildElements() {
		switch e.Tag {
		case "bounds":
			if b, ok := parseBounds(e); ok {
				m.Bounds, haveBounds = b, true
			}
		case "node":
			id, ok := parseID(e)
			if !ok {
				continue
			}
			if n, ok := parseNode(e); ok {
				m.Nodes[id] = n
			}
		case "way":
			id, ok := parseID(e)
			if !ok {
				continue
			}
			if w, ok := parseWay(e); ok {
				m.Ways[id] = w
			}
		}
	}

	if !haveBounds {
		return nil, perrors.New(perrors.ErrCodeMalformedDocument, "osm document has no bounds")
	}
	return m, nil
}

func parseID(e *etree.Element) (int64, bool) {
	id, err := strconv.ParseInt(e.SelectAttrValue("id", ""), 10, 64)
	return id, err == nil
}

func parseFloat(e *etree.Element, attr string) (float64, bool) {
	v, err := strconv.ParseFloat(e.SelectAttrValue(attr, ""), 64)
	return v, err == nil
}

func parseBounds(e *etree.Element) (Bounds, bool) {
	var b Bounds
	var ok [4]bool
	b.MinLat, ok[0] = parseFloat(e, "minlat")
	b.MinLon, ok[1] = parseFloat(e, "minlon")
	b.MaxLat, ok[2] = parseFloat(e, "maxlat")
	b.MaxLon, ok[3] = parseFloat(e, "maxlon")
	return b, ok[0] && ok[1] && ok[2] && ok[3]
}

func parseNode(e *etree.Element) (Node, bool) {
	lat, okLat := parseFloat(e, "lat")
	lon, okLon := parseFloat(e, "lon")
	if !okLat || !okLon {
		return Node{}, false
	}
	return Node{Lat: lat, Lon: lon, Tags: parseTags(e)}, true
}

func parseWay(e *etree.Element) (Way, bool) {
	var refs []int64
	for _, nd := range e.SelectElements("nd") {
		ref, err := strconv.ParseInt(nd.SelectAttrValue("ref", ""), 10, 64)
		if err != nil {
			return Way{}, false
		}
		refs = append(refs, ref)
	}
	return Way{Nodes: refs, Tags: parseTags(e)}, true
}

func parseTags(e *etree.Element) map[string]string {
	tags := make(map[string]string)
	for _, t := range e.SelectElements("tag") {
		k := t.SelectAttr("k")
		v := t.SelectAttr("v")
		if k != nil && v != nil {
			tags[k.Value] = v.Value
		}
	}
	return tags
}
