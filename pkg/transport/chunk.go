package transport

import "strings"

const (
	// DefaultChunkSize is the device input buffer the chunking targets.
	DefaultChunkSize = 60

	// Reserve is kept free in every chunk for the "OA;" resume request.
	Reserve = 3
)

// Lines splits text into instructions, one per non-empty line, without
// line terminators.
func Lines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Chunk groups lines into chunks of whole instructions. A line joins the
// current chunk only while the combined length stays strictly below
// budget-[Reserve]; otherwise it starts a new chunk. A line that is too long
// on its own becomes a chunk by itself.
func Chunk(lines []string, budget int) [][]byte {
	limit := budget - Reserve
	var (
		out  [][]byte
		next []byte
	)
	for _, line := range lines {
		if len(next) > 0 && len(next)+len(line) >= limit {
			out = append(out, next)
			next = nil
		}
		next = append(next, line...)
	}
	if len(next) > 0 {
		out = append(out, next)
	}
	return out
}
