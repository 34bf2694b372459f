package separation

import (
	"slices"
	"time"

	"github.com/matzehuels/gridsep/pkg/observability"
	"github.com/matzehuels/gridsep/pkg/tiling"
)

// Loop separates a tiling repeatedly until a pass makes no progress.
//
// All passes run in [NewLoop]; the accessors only report what happened.
type Loop struct {
	input   *tiling.Tiling
	history []*tiling.Tiling
	cellMap CellMap
}

// NewLoop runs separation passes on t, each on the tiling produced by the
// previous one, and stops at the first pass that is not separable.
func NewLoop(t *tiling.Tiling, opts ...Option) *Loop {
	o := newOptions(opts)
	hooks := observability.Separation()
	l := &Loop{input: t, cellMap: Identity(t.ActiveCells())}

	start := time.Now()
	current := t
	for n := 1; ; n++ {
		cols, rows := current.Dimensions()
		hooks.OnPassStart(o.ctx, n, cols, rows)
		passStart := time.Now()

		p := newPass(current, o)
		separable := p.Separable()
		hooks.OnPassComplete(o.ctx, n, separable, time.Since(passStart))
		if !separable {
			o.logger.Debug("pass not separable", "pass", n, "cols", cols, "rows", rows)
			break
		}

		next := p.SeparatedTiling()
		l.cellMap = l.cellMap.Compose(p.FinalCellMap())
		l.history = append(l.history, next)

		newCols, newRows := next.Dimensions()
		o.logger.Debug("separated", "pass", n, "cols", newCols, "rows", newRows)
		current = next
	}
	hooks.OnLoopComplete(o.ctx, len(l.history), time.Since(start))
	return l
}

// Separable reports whether at least one pass refined the tiling.
func (l *Loop) Separable() bool { return len(l.history) > 0 }

// Result returns the last separated tiling, or the input if no pass was
// separable.
func (l *Loop) Result() *tiling.Tiling {
	if len(l.history) == 0 {
		return l.input
	}
	return l.history[len(l.history)-1]
}

// FinalCellMap maps the active cells of the input to their cells in
// [Loop.Result]. Cells that became inactive along the way are omitted.
func (l *Loop) FinalCellMap() CellMap { return l.cellMap.Clone() }

// History returns the tiling produced by each separable pass, in order.
func (l *Loop) History() []*tiling.Tiling { return slices.Clone(l.history) }

// Passes returns the number of separable passes.
func (l *Loop) Passes() int { return len(l.history) }
