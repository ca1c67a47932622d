package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/jewelry/pkg/cache"
	"github.com/matzehuels/jewelry/pkg/errors"
	"github.com/matzehuels/jewelry/pkg/grid"
	jio "github.com/matzehuels/jewelry/pkg/io"
	"github.com/matzehuels/jewelry/pkg/layout"
	"github.com/matzehuels/jewelry/pkg/observability"
)

// Runner executes layout passes with caching.
//
// The Runner holds no per-pass state: every pass builds its own tiles, grid
// and queue, so one Runner can serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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

// Layout lays out set. Configuration errors abort the pass before any tile
// is placed; relocation problems are reported in Result.Skipped.
func (r *Runner) Layout(ctx context.Context, set *jio.TileSet, opts Options) (*Result, error) {
	if set == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "tile set is required")
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	opts.ApplyTileSet(set)
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	passID := uuid.NewString()
	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, passID, len(set.Tiles), opts.Columns)
	start := time.Now()

	key := r.Keyer.LayoutKey(inputHash(set, opts.Stamps), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if res, ok := r.cached(ctx, key); ok {
			res.PassID = passID
			hooks.OnLayoutComplete(ctx, passID, res.Rows, time.Since(start), nil)
			return res, nil
		}
	}

	res, err := r.compute(ctx, passID, set, opts)
	hooks.OnLayoutComplete(ctx, passID, rowsOf(res), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
			opts.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	opts.Logger.Debug("computed layout",
		"pass", passID,
		"tiles", len(res.Tiles),
		"rows", res.Rows,
		"relocated", res.Relocated,
		"skipped", len(res.Skipped),
		"duration", time.Since(start))
	return res, nil
}

func (r *Runner) cached(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "layout")
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		observability.Cache().OnCacheMiss(ctx, "layout")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "layout")
	res.CacheHit = true
	return &res, true
}

func (r *Runner) compute(ctx context.Context, passID string, set *jio.TileSet, opts Options) (*Result, error) {
	tiles := set.Build()
	strategy := layout.NewJewelry()

	pass, err := strategy.ComputePositions(tiles, layout.Context{
		Columns:         opts.Columns,
		ColumnWidth:     opts.ColumnWidth,
		Stamps:          opts.Stamps,
		LastLineReorder: opts.LastLineReorder,
		Logger:          opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	res := &Result{
		PassID:        passID,
		Columns:       opts.Columns,
		Rows:          pass.Rows,
		TileWidth:     pass.TileWidth,
		TileHeight:    pass.TileHeight,
		ContentHeight: pass.ContentHeight,
		Tiles:         make([]Placement, len(tiles)),
		Grid:          snapshot(pass.Grid),
		Relocated:     pass.Relocation.Relocated,
		Skipped:       pass.Relocation.SkippedMessages(),
	}
	for i, t := range tiles {
		pos, _ := strategy.PositionOf(t)
		res.Tiles[i] = Placement{
			ID:     t.ID,
			Class:  t.Class,
			Row:    t.Row,
			Col:    t.Col,
			X:      pos.X,
			Y:      pos.Y,
			Offset: t.Offset,
		}
	}
	for _, err := range pass.Relocation.Skipped {
		observability.Layout().OnRelocationSkipped(ctx, passID, string(errors.GetCode(err)))
	}
	return res, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// inputHash hashes the parts of the input that change placement. Grid
// parameters are covered by LayoutKeyOpts.
func inputHash(set *jio.TileSet, stamps []grid.StampRule) string {
	data, _ := json.Marshal(struct {
		Tiles  []jio.TileSpec   `json:"tiles"`
		Stamps []grid.StampRule `json:"stamps"`
	}{set.Tiles, stamps})
	return cache.Digest(data)
}

func rowsOf(res *Result) int {
	if res == nil {
		return 0
	}
	return res.Rows
}
