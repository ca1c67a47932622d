// Package pkg provides the core libraries for Jewelry diamond grid layouts.
//
// # Overview
//
// Jewelry packs an ordered stream of uniform tiles into a staggered grid.
// Normal tiles fill one cell. Huge tiles take a diamond-shaped footprint whose
// shape depends on column parity. Companion tiles are moved diagonally next to
// the huge tile they follow. The pkg directory is organized into three areas:
//
//  1. Algorithm - [tile], [grid], [placement], [companion], [layout]
//  2. Orchestration - [pipeline], [io], [cache]
//  3. Support - [errors], [observability], [buildinfo]
//
// # Architecture
//
// The data flow of one layout pass:
//
//	Tile set (JSON/YAML)
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [placement] package (row/column scan into a [grid.Grid])
//	         ↓
//	    [companion] package (relocate companions next to huge tiles)
//	         ↓
//	    [pipeline.Result] (slots, pixel positions, content height)
//
// [layout.Jewelry] ties placement and relocation together behind the
// [layout.Strategy] interface; [pipeline.Runner] adds option defaults, caching
// and observability on top.
//
// # Quick Start
//
//	set, _ := io.ReadTileSetFile("tiles.yaml")
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	res, err := runner.Layout(ctx, set, pipeline.Options{Columns: 5})
//	if err != nil {
//	    return err
//	}
//	for _, p := range res.Tiles {
//	    fmt.Printf("%s at (%g, %g)\n", p.ID, p.X, p.Y)
//	}
//
// # Main Packages
//
// ## Algorithm
//
// [tile] - Tile, size class and the double-ended queue placement drains.
//
// [grid] - Sparse occupancy grid with lazily evaluated stamp rules that
// reserve clearance cells.
//
// [placement] - The placement engine: next-tile selection, huge footprint
// checks and optional last-line reordering.
//
// [companion] - Host-side linear index and the companion relocator.
//
// [layout] - The strategy a host engine calls to compute and look up positions.
//
// ## Orchestration
//
// [pipeline] - Options, TOML config and the caching runner used by the CLI and
// the API server.
//
// [io] - Tile-set decoding and layout encoding.
//
// [cache] - File, Redis, MongoDB and null cache backends selected by URL.
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/placement/...  # Specific package
//
// [tile]: https://pkg.go.dev/github.com/matzehuels/jewelry/pkg/tile
// [grid]: https://pkg.go.dev/github.com/matzehuels/jewelry/pkg/grid
// [grid.Grid]: https://pkg.go.dev/github.com/matzehuels/jewelry/pkg/grid#Grid
// [placement]: https://pkg.go.dev/github.com/matzehuels/jewelry/pkg/placement
// [companion]: https://pkg.go.dev/github.com/matzehuels/jewelry/pkg/companion
// [layout]: https://pkg.go.dev/github.com/matzehuels/jewelry/pkg/layout
// [layout.Jewelry]: https://pkg.go.dev/github.com/matzehuels/jewelry/pkg/layout#Jewelry
// [layout.Strategy]: https://pkg.go.dev/github.com/matzehuels/jewelry/pkg/layout#Strategy
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/jewelry/pkg/pipeline
// [pipeline.Result]: https://pkg.go.dev/github.com/matzehuels/jewelry/pkg/pipeline#Result
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/jewelry/pkg/pipeline#Runner
// [io]: https://pkg.go.dev/github.com/matzehuels/jewelry/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/jewelry/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/jewelry/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/jewelry/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/jewelry/pkg/buildinfo
package pkg
