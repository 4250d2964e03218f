// Package integrations provides HTTP clients for external map data.
//
// The [Client] type holds the shared plumbing: default headers, retry with
// backoff on network errors and 5xx/429 responses, and response caching
// through a [cache.Cache]. Service clients live in subpackages:
//
//   - [openstreetmap]: OpenStreetMap API map extracts
//
//	client := openstreetmap.NewClient(c, cache.TTLHTTP)
//	data, err := client.FetchMap(ctx, bbox, false)  // false = use cache
//
// [openstreetmap]: github.com/matzehuels/penpath/pkg/integrations/openstreetmap
// [cache.Cache]: github.com/matzehuels/penpath/pkg/cache.Cache
package integrations
