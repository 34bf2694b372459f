package separation

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridsep/pkg/observability"
	"github.com/matzehuels/gridsep/pkg/tiling"
)

func TestLoop_NotSeparable(t *testing.T) {
	tl := rowChain()
	l := NewLoop(tl)

	if l.Separable() {
		t.Error("Separable() = true")
	}
	if l.Result() != tl {
		t.Error("Result() is not the input")
	}
	if l.Passes() != 0 || len(l.History()) != 0 {
		t.Errorf("Passes() = %d, History() = %v", l.Passes(), l.History())
	}
	if got, want := l.FinalCellMap(), Identity(tl.ActiveCells()); !reflect.DeepEqual(got, want) {
		t.Errorf("FinalCellMap() = %v, want identity", got)
	}
}

func TestLoop_TransitiveChain(t *testing.T) {
	l := NewLoop(rowChain(), WithTransitivity(true))
	if !l.Separable() || l.Passes() != 1 {
		t.Fatalf("Separable() = %v, Passes() = %d", l.Separable(), l.Passes())
	}
	if l.History()[0] != l.Result() {
		t.Error("Result() is not the last tiling in History()")
	}
	want := CellMap{cell(0, 0): cell(0, 0), cell(1, 0): cell(1, 1), cell(2, 0): cell(2, 2)}
	if got := l.FinalCellMap(); !reflect.DeepEqual(got, want) {
		t.Errorf("FinalCellMap() = %v, want %v", got, want)
	}
}

func TestLoop_CompetingSeparations(t *testing.T) {
	l := NewLoop(rowConflict())
	if l.Passes() != 1 {
		t.Fatalf("Passes() = %d, want 1", l.Passes())
	}
	want := CellMap{cell(0, 0): cell(0, 1), cell(1, 0): cell(1, 0)}
	if got := l.FinalCellMap(); !reflect.DeepEqual(got, want) {
		t.Errorf("FinalCellMap() = %v, want %v", got, want)
	}
	if got := l.Result().PositiveCells(); !reflect.DeepEqual(got, []tiling.Cell{cell(0, 1)}) {
		t.Errorf("PositiveCells() = %v, want [(0,1)]", got)
	}
}

func TestLoop_Idempotent(t *testing.T) {
	tests := []struct {
		name string
		t    *tiling.Tiling
		opts []Option
	}{
		{"chain", rowChain(), []Option{WithTransitivity(true)}},
		{"conflict", rowConflict(), nil},
		{"cycle", rowCycle(), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := NewLoop(tt.t, tt.opts...)
			second := NewLoop(first.Result(), tt.opts...)
			if second.Separable() {
				t.Errorf("second loop separable:\n%s", second.Result())
			}
			if !second.Result().Equal(first.Result()) {
				t.Errorf("second loop changed the tiling:\n%s\nvs\n%s", first.Result(), second.Result())
			}
		})
	}
}

func TestLoop_HistoryIsACopy(t *testing.T) {
	l := NewLoop(rowConflict())
	h := l.History()
	h[0] = nil
	if l.History()[0] == nil {
		t.Error("History() exposed internal state")
	}
	m := l.FinalCellMap()
	delete(m, cell(0, 0))
	if _, ok := l.FinalCellMap()[cell(0, 0)]; !ok {
		t.Error("FinalCellMap() exposed internal state")
	}
}

type recordingHooks struct {
	observability.NoopSeparationHooks
	starts    []int
	completes []bool
	searches  []string
	passes    int
}

func (r *recordingHooks) OnPassStart(_ context.Context, pass, _, _ int) {
	r.starts = append(r.starts, pass)
}

func (r *recordingHooks) OnPassComplete(_ context.Context, _ int, separable bool, _ time.Duration) {
	r.completes = append(r.completes, separable)
}

func (r *recordingHooks) OnSearchComplete(_ context.Context, dim string, _, _ int, _ time.Duration) {
	r.searches = append(r.searches, dim)
}

func (r *recordingHooks) OnLoopComplete(_ context.Context, passes int, _ time.Duration) {
	r.passes = passes
}

func TestLoop_Hooks(t *testing.T) {
	rec := &recordingHooks{}
	observability.SetSeparationHooks(rec)
	defer observability.Reset()

	NewLoop(rowChain(), WithTransitivity(true), WithContext(context.Background()))

	if !reflect.DeepEqual(rec.starts, []int{1, 2}) {
		t.Errorf("pass starts = %v, want [1 2]", rec.starts)
	}
	if !reflect.DeepEqual(rec.completes, []bool{true, false}) {
		t.Errorf("pass completions = %v, want [true false]", rec.completes)
	}
	if !reflect.DeepEqual(rec.searches, []string{"rows", "cols", "rows", "cols"}) {
		t.Errorf("searches = %v", rec.searches)
	}
	if rec.passes != 1 {
		t.Errorf("loop passes = %d, want 1", rec.passes)
	}
}

func TestLoop_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	NewLoop(rowConflict(), WithLogger(logger))

	out := buf.String()
	for _, want := range []string{"separated", "pass=1", "pass not separable", "pass=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}
