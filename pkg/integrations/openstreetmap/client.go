// Package openstreetmap fetches map extracts from the OpenStreetMap 0.6 API.
package openstreetmap

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/matzehuels/penpath/pkg/cache"
	perrors "github.com/matzehuels/penpath/pkg/errors"
	"github.com/matzehuels/penpath/pkg/integrations"
	"github.com/matzehuels/penpath/pkg/source/osm"
)

// DefaultBaseURL is the public API endpoint.
const DefaultBaseURL = "https://api.openstreetmap.org/api/0.6"

// maxArea is the largest bbox the public API serves, in square degrees.
const maxArea = 0.25

// BBox is a request rectangle in degrees.
type BBox struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// ParseBBox reads "minlon,minlat,maxlon,maxlat", the order the API uses.
func ParseBBox(s string) (BBox, error) {
	var v [4]float64
	parts := bytes.Split([]byte(s), []byte(","))
	if len(parts) != 4 {
		return BBox{}, perrors.New(perrors.ErrCodeInvalidInput, "bbox needs 4 values, got %d", len(parts))
	}
	for i, p := range parts {
		f, err := strconv.ParseFloat(string(bytes.TrimSpace(p)), 64)
		if err != nil {
			return BBox{}, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "bbox value %q", p)
		}
		v[i] = f
	}
	b := BBox{MinLon: v[0], MinLat: v[1], MaxLon: v[2], MaxLat: v[3]}
	return b, b.Validate()
}

// Validate checks ordering, coordinate ranges and the API's area limit.
func (b BBox) Validate() error {
	switch {
	case b.MinLon >= b.MaxLon || b.MinLat >= b.MaxLat:
		return perrors.New(perrors.ErrCodeInvalidInput, "bbox min must be below max")
	case b.MinLon < -180 || b.MaxLon > 180 || b.MinLat < -90 || b.MaxLat > 90:
		return perrors.New(perrors.ErrCodeInvalidInput, "bbox out of range")
	case (b.MaxLon-b.MinLon)*(b.MaxLat-b.MinLat) > maxArea:
		return perrors.New(perrors.ErrCodeInvalidInput, "bbox larger than %g square degrees", maxArea)
	}
	return nil
}

// String formats b in API order.
func (b BBox) String() string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return f(b.MinLon) + "," + f(b.MinLat) + "," + f(b.MaxLon) + "," + f(b.MaxLat)
}

// Client fetches map extracts with caching.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates an OpenStreetMap client. Responses are cached in c for
// cacheTTL, keyed by bbox.
func NewClient(c cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  integrations.NewClient(c, "osm", cacheTTL, map[string]string{"User-Agent": integrations.UserAgent()}),
		baseURL: DefaultBaseURL,
	}
}

// FetchXML returns the raw extract for bbox. If refresh is true, the
// cache is bypassed.
func (c *Client) FetchXML(ctx context.Context, bbox BBox, refresh bool) ([]byte, error) {
	if err := bbox.Validate(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/map?bbox=%s", c.baseURL, integrations.URLEncode(bbox.String()))
	data, err := c.CachedBytes(ctx, bbox.String(), refresh, func() ([]byte, error) {
		return c.GetBytes(ctx, url)
	})
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeNetwork, err, "fetch osm map %s", bbox)
	}
	return data, nil
}

// FetchMap fetches and parses the extract for bbox.
func (c *Client) FetchMap(ctx context.Context, bbox BBox, refresh bool) (*osm.Map, error) {
	data, err := c.FetchXML(ctx, bbox, refresh)
	if err != nil {
		return nil, err
	}
	return osm.Parse(bytes.NewReader(data))
}
