package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/gridsep/pkg/cache"
	"github.com/matzehuels/gridsep/pkg/io"
	"github.com/matzehuels/gridsep/pkg/observability"
	"github.com/matzehuels/gridsep/pkg/separation"
	"github.com/matzehuels/gridsep/pkg/tiling"
)

// Runner encapsulates separation runs with caching.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides how long results stay cached. Zero keeps the defaults
	// of [cache.TTLSeparation] and [cache.TTLOrders].
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Separate runs the separation loop on t, or returns the cached result of an
// earlier run on the same tiling.
func (r *Runner) Separate(ctx context.Context, t *tiling.Tiling, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)
	start := time.Now()

	hash, err := tilingHash(t)
	if err != nil {
		return nil, err
	}
	key := r.Keyer.SeparationKey(hash, cache.SeparationKeyOpts{Transitive: opts.Transitive})

	if !opts.Refresh {
		if res, ok := r.cachedSeparation(ctx, key); ok {
			res.Duration = time.Since(start)
			logger.Debug("separation cache hit", "passes", res.Output.Passes)
			return res, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loop := separation.NewLoop(t, append(opts.separationOptions(r), separation.WithContext(ctx))...)
	res := &Result{
		Tiling:  loop.Result(),
		CellMap: loop.FinalCellMap(),
	}
	res.Output = io.Result{
		Separable: loop.Separable(),
		Passes:    loop.Passes(),
		Tiling:    io.FromTiling(res.Tiling),
		CellMap:   io.FromCellMap(res.CellMap),
	}

	if data, err := io.MarshalResult(res.Output); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLSeparation)); err != nil {
			logger.Warn("cache store failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cache.KeyTypeSeparation, len(data))
		}
	}

	res.Output.RunID = uuid.NewString()
	res.Duration = time.Since(start)
	cols, rows := res.Tiling.Dimensions()
	logger.Info("separated tiling",
		"separable", res.Output.Separable,
		"passes", res.Output.Passes,
		"cols", cols,
		"rows", rows,
		"duration", res.Duration)
	return res, nil
}

func (r *Runner) cachedSeparation(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, cache.KeyTypeSeparation)
		return nil, false
	}
	out, err := io.UnmarshalResult(data)
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, cache.KeyTypeSeparation)
		return nil, false
	}
	t, err := io.ToTiling(out.Tiling)
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, cache.KeyTypeSeparation)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cache.KeyTypeSeparation)
	out.RunID = uuid.NewString()
	return &Result{
		Output:   out,
		Tiling:   t,
		CellMap:  separation.CellMap(io.ToCellMap(out.CellMap)),
		CacheHit: true,
	}, true
}

// Orders runs a single pass on t and lists its orders in the requested
// dimensions. The search stops early when ctx is cancelled.
func (r *Runner) Orders(ctx context.Context, t *tiling.Tiling, opts Options) (*Orders, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	hash, err := tilingHash(t)
	if err != nil {
		return nil, err
	}
	dimension := opts.Dimension
	if dimension == "" {
		dimension = DimBoth
	}
	key := r.Keyer.OrdersKey(hash, cache.OrdersKeyOpts{
		Dimension:  dimension,
		BestOnly:   opts.BestOnly,
		Transitive: opts.Transitive,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached Orders
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, cache.KeyTypeOrders)
				cached.CacheHit = true
				return &cached, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, cache.KeyTypeOrders)
	}

	p := separation.NewPass(t, append(opts.separationOptions(r), separation.WithContext(ctx))...)
	out := &Orders{Cells: cellPairs(p.Cells())}
	for _, dim := range opts.dimensions() {
		var found [][][]int
		for ord := range p.SearchOrders(p.Graph(dim), opts.BestOnly).All() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			found = append(found, ord)
		}
		if found == nil {
			found = [][][]int{}
		}
		logger.Debug("listed orders", "dim", dim, "count", len(found))
		if dim == separation.Cols {
			out.Cols = found
		} else {
			out.Rows = found
		}
	}

	if data, err := json.Marshal(out); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLOrders)); err != nil {
			logger.Warn("cache store failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cache.KeyTypeOrders, len(data))
		}
	}
	return out, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// tilingHash hashes the canonical JSON form of t.
func tilingHash(t *tiling.Tiling) (string, error) {
	data, err := io.MarshalTiling(t)
	if err != nil {
		return "", fmt.Errorf("serialize tiling for cache key: %w", err)
	}
	return cache.Hash(data), nil
}

func cellPairs(cells []tiling.Cell) [][2]int {
	out := make([][2]int, len(cells))
	for i, c := range cells {
		out[i] = [2]int{c.Col, c.Row}
	}
	return out
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}
