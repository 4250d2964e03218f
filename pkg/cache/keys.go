package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data. Documents and plots are keyed by it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashString is [Hash] for text.
func HashString(s string) string { return Hash([]byte(s)) }

// hashKey returns "<kind>:" followed by the hash of parts encoded as JSON.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":" + Hash(data)
}

// PlotKeyOpts holds the options that change an optimized plot.
type PlotKeyOpts struct {
	Collapse bool `json:"collapse"`
	Optimize bool `json:"optimize"`
	// Limit is the bounds-check rectangle as min x, min y, max x, max y.
	// The cached entry carries the out-of-bounds report for it.
	Limit [4]int `json:"limit"`
}

// ArtifactKeyOpts holds the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Scale       float64 `json:"scale,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	Palette     string  `json:"palette,omitempty"`
	Sheet       [4]int  `json:"sheet,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// HTTPKey returns the key for a fetched HTTP response.
	HTTPKey(namespace, key string) string

	// PlotKey returns the key for the optimized form of a document.
	PlotKey(docHash string, opts PlotKeyOpts) string

	// ArtifactKey returns the key for a rendered artifact of a plot.
	ArtifactKey(plotHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// HTTPKey returns "http:<namespace>:<key>". Keys stay readable so that a
// cached response can be located by hand.
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// PlotKey hashes the document hash together with opts.
func (DefaultKeyer) PlotKey(docHash string, opts PlotKeyOpts) string {
	return hashKey("plot", docHash, opts)
}

// ArtifactKey hashes the plot hash together with opts.
func (DefaultKeyer) ArtifactKey(plotHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", plotHash, opts)
}

var _ Keyer = DefaultKeyer{}
