package optimize

import (
	"errors"

	"github.com/matzehuels/penpath/pkg/hpgl"
	perrors "github.com/matzehuels/penpath/pkg/errors"
)

// ErrInitializeMidStream is returned (wrapped) by [Extract] when an
// Initialize command appears after the first position of the stream.
var ErrInitializeMidStream = errors.New("initialize after start of document")

// extractor is the state carried through a single pass over a canonical stream.
type extractor struct {
	plot    *Plot
	color   uint8
	current Shape
	penDown bool
}

func newExtractor() *extractor {
	return &extractor{plot: NewPlot()}
}

// flush closes the in-progress shape and files it under the active color.
func (e *extractor) flush() {
	if len(e.current) == 0 {
		return
	}
	e.plot.Add(e.color, e.current)
	e.current = nil
}

func (e *extractor) step(i int, c hpgl.CanonicalCommand) error {
	switch c := c.(type) {
	case hpgl.CanonicalPlot:
		e.current = append(e.current, c.Point)
	case hpgl.CanonicalPenDown:
		e.penDown = true
	case hpgl.CanonicalPenUp:
		e.penDown = false
		e.flush()
	case hpgl.CanonicalSelectPen:
		e.flush()
		e.color = c.Pen
		e.plot.Ensure(c.Pen)
	case hpgl.CanonicalInitialize:
		if i != 0 {
			return perrors.Wrap(perrors.ErrCodeMalformedDocument, ErrInitializeMidStream, "command %d", i)
		}
	}
	return nil
}

// Extract partitions a canonical stream into shapes grouped by pen color.
//
// Every move extends the shape in progress regardless of pen state. A pen-up
// closes the shape under the active color; a pen select closes it under the
// previous color before switching. A shape still open at the end of the
// stream is closed under the active color. Every selected color gets an
// entry, possibly without shapes, and no empty shape is ever recorded.
//
// Initialize is accepted only as the first command.
func Extract(cmds []hpgl.CanonicalCommand) (*Plot, error) {
	e := newExtractor()
	for i, c := range cmds {
		if err := e.step(i, c); err != nil {
			return nil, err
		}
	}
	e.flush()
	return e.plot, nil
}
