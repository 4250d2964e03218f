package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/penpath/pkg/cache"
	"github.com/matzehuels/penpath/pkg/hpgl"
	"github.com/matzehuels/penpath/pkg/observability"
	"github.com/matzehuels/penpath/pkg/optimize"
)

// stage runs fn between the pipeline hooks and returns its duration.
func stage(ctx context.Context, name string, fn func() error) (time.Duration, error) {
	observability.Pipeline().OnStageStart(ctx, name)
	start := time.Now()
	err := fn()
	d := time.Since(start)
	observability.Pipeline().OnStageComplete(ctx, name, d, err)
	return d, err
}

// Process runs parse → canonicalize → extract → optimize → emit on doc
// without caching. Artifacts are not rendered.
func Process(ctx context.Context, doc []byte, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	result := &Result{DocHash: cache.Hash(doc), Artifacts: make(map[string][]byte)}

	var (
		cmds      []hpgl.Command
		canonical []hpgl.CanonicalCommand
	)
	d, err := stage(ctx, observability.StageParse, func() error {
		var err error
		cmds, err = hpgl.Parse(string(doc))
		return err
	})
	if err != nil {
		return nil, err
	}
	result.Stats.ParseTime = d

	d, err = stage(ctx, observability.StageCanonicalize, func() error {
		var err error
		canonical, err = hpgl.Canonicalize(cmds)
		if err == nil && opts.Collapse {
			canonical = hpgl.CollapseCanonical(canonical)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	result.Stats.ParseTime += d
	result.Stats.Commands = len(cmds)
	result.Stats.Canonical = len(canonical)
	result.OutOfBounds = hpgl.CheckBounds(canonical, opts.Limit)

	logger.Debug("parsed document",
		"commands", len(cmds),
		"canonical", len(canonical),
		"collapse", opts.Collapse)
	if n := len(result.OutOfBounds); n > 0 {
		logger.Warn("moves outside sheet", "count", n, "first", result.OutOfBounds[0])
	}

	var plot *optimize.Plot
	d, err = stage(ctx, observability.StageExtract, func() error {
		var err error
		plot, err = optimize.Extract(canonical)
		return err
	})
	if err != nil {
		return nil, err
	}
	result.Stats.ExtractTime = d
	result.Stats.TravelBefore = optimize.PlotTravel(plot)

	if opts.ShouldOptimize() {
		d, err = stage(ctx, observability.StageOptimize, func() error {
			var err error
			plot, err = optimize.Optimize(ctx, plot, optimize.Options{Workers: opts.Workers})
			return err
		})
		if err != nil {
			return nil, err
		}
		result.Stats.OptimizeTime = d
	}
	result.Stats.TravelAfter = optimize.PlotTravel(plot)

	d, _ = stage(ctx, observability.StageEmit, func() error {
		result.Canonical = optimize.Emit(plot)
		result.Commands = hpgl.Decanonicalize(result.Canonical)
		result.Text = hpgl.Render(result.Canonical)
		return nil
	})
	result.Stats.EmitTime = d

	result.Plot = plot
	result.PlotHash = cache.HashString(result.Text)
	result.Stats.Shapes = plot.Len()
	result.Stats.Colors = penCount(plot)
	result.Stats.Points = plot.Points()

	logger.Info("optimized plot",
		"shapes", result.Stats.Shapes,
		"colors", result.Stats.Colors,
		"travel_before", int64(result.Stats.TravelBefore),
		"travel_after", int64(result.Stats.TravelAfter))

	return result, nil
}

// fromText rebuilds the plot parts of a result from cached optimized text.
func fromText(text string) (*Result, error) {
	cmds, err := hpgl.Parse(text)
	if err != nil {
		return nil, err
	}
	canonical, err := hpgl.Canonicalize(cmds)
	if err != nil {
		return nil, err
	}
	plot, err := optimize.Extract(canonical)
	if err != nil {
		return nil, err
	}
	return &Result{
		Canonical: canonical,
		Commands:  hpgl.Decanonicalize(canonical),
		Plot:      plot,
		Text:      text,
		PlotHash:  cache.HashString(text),
		Artifacts: make(map[string][]byte),
	}, nil
}

// penCount counts the drawing pens of plot, excluding [optimize.NoPen].
func penCount(plot *optimize.Plot) int {
	n := 0
	for _, c := range plot.Colors() {
		if c != optimize.NoPen {
			n++
		}
	}
	return n
}
