// Package io reads tile sets and writes computed layouts.
//
// # Tile Sets
//
// A tile set describes the tiles to lay out, in sequence order, plus optional
// grid parameters. It can be written as JSON or YAML:
//
//	columns: 4
//	columnWidth: 120
//	stamps:
//	  - endRow: 0
//	    column: 3
//	tiles:
//	  - id: hero
//	    width: 240
//	    height: 120
//	    class: huge
//	  - id: caption
//	    width: 120
//	    height: 120
//	    class: companion
//	  - id: a
//	    width: 120
//	    height: 120
//
// Tile fields:
//   - id: Unique, non-empty identifier
//   - width, height: Positive pixel size
//   - class: "normal" (default), "huge" or "companion"
//
// Use [ReadTileSetFile] to read a file (format chosen by extension) or
// [ReadTileSet] to read from any io.Reader. Both validate the tiles and
// return INVALID_INPUT or INVALID_FORMAT errors from [errors].
//
// # Layouts
//
// [WriteLayout] and [WriteLayoutFile] encode a computed layout as indented
// JSON or YAML. The value is usually a pipeline result; any value with json
// and yaml tags works.
//
// [errors]: github.com/matzehuels/jewelry/pkg/errors
package io
