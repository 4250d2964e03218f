package hpgl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	perrors "github.com/matzehuels/penpath/pkg/errors"
)

// ParseError is returned by [Parse] when one or more fragments do not match
// the grammar. Fragments holds every offending fragment (trimmed) in input order.
type ParseError struct {
	Fragments []string
}

func (e *ParseError) Error() string {
	quoted := make([]string, len(e.Fragments))
	for i, f := range e.Fragments {
		quoted[i] = strconv.Quote(f)
	}
	return fmt.Sprintf("invalid command(s): %s", strings.Join(quoted, ", "))
}

// Parse splits text into instructions and parses each of them.
//
// Fragments are separated by ';', trimmed, and empty fragments are skipped, so
// "", ";" and whitespace-only input all yield an empty sequence. Parsing is
// all-or-nothing: if any fragment is invalid, Parse returns no commands and an
// error wrapping a [*ParseError] that lists every invalid fragment.
func Parse(text string) ([]Command, error) {
	var (
		cmds []Command
		bad  []string
	)
	for _, frag := range strings.Split(text, ";") {
		frag = strings.TrimSpace(frag)
		if frag == "" {
			continue
		}
		c, err := parseCommand(frag)
		if err != nil {
			bad = append(bad, frag)
			continue
		}
		cmds = append(cmds, c)
	}
	if len(bad) > 0 {
		pe := &ParseError{Fragments: bad}
		return nil, perrors.Wrap(perrors.ErrCodeInvalidCommand, pe, "parse %d fragment(s)", len(bad))
	}
	return cmds, nil
}

// MustParse is like [Parse] but panics on error. It is intended for tests and
// fixed documents compiled into the binary.
func MustParse(text string) []Command {
	cmds, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return cmds
}

var errFragment = errors.New("invalid fragment")

func parseCommand(frag string) (Command, error) {
	if len(frag) < 2 {
		return nil, errFragment
	}
	kind, rest := frag[:2], frag[2:]

	if kind == "SP" {
		pen, err := strconv.ParseUint(strings.TrimSpace(rest), 10, 8)
		if err != nil {
			return nil, errFragment
		}
		return SelectPen{Pen: uint8(pen)}, nil
	}

	var points []Point
	if rest != "" {
		p, err := parsePoints(rest)
		if err != nil {
			return nil, err
		}
		points = p
	}

	switch kind {
	case "PU":
		return PenUp{Points: points}, nil
	case "PD":
		return PenDown{Points: points}, nil
	case "PA":
		return PlotAbsolute{Points: points}, nil
	case "PR":
		return PlotRelative{Points: points}, nil
	case "IN":
		return Initialize{}, nil
	}
	return nil, errFragment
}

func parsePoints(s string) ([]Point, error) {
	fields := strings.Split(s, ",")
	if len(fields)%2 != 0 {
		return nil, errFragment
	}
	points := make([]Point, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseInt(strings.TrimSpace(fields[i]), 10, 32)
		if err != nil {
			return nil, errFragment
		}
		y, err := strconv.ParseInt(strings.TrimSpace(fields[i+1]), 10, 32)
		if err != nil {
			return nil, errFragment
		}
		points = append(points, Point{X: int(x), Y: int(y)})
	}
	return points, nil
}
