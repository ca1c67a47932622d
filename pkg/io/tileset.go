package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/jewelry/pkg/errors"
	"github.com/matzehuels/jewelry/pkg/grid"
	"github.com/matzehuels/jewelry/pkg/tile"
)

// Format is a tile-set or layout encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	if err := errors.ValidateInputFilename(path); err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "%s is not a tile-set file", filepath.Base(path))
}

// TileSet is a sequence of tiles plus optional grid parameters.
type TileSet struct {
	Columns     int              `json:"columns,omitempty" yaml:"columns,omitempty"`
	ColumnWidth float64          `json:"columnWidth,omitempty" yaml:"columnWidth,omitempty"`
	Stamps      []grid.StampRule `json:"stamps,omitempty" yaml:"stamps,omitempty"`
	Tiles       []TileSpec       `json:"tiles" yaml:"tiles"`
}

// TileSpec describes one tile.
type TileSpec struct {
	ID     string         `json:"id" yaml:"id"`
	Width  float64        `json:"width" yaml:"width"`
	Height float64        `json:"height" yaml:"height"`
	Class  tile.SizeClass `json:"class,omitempty" yaml:"class,omitempty"`
}

// Validate checks every tile has a unique valid ID and a positive size.
func (s *TileSet) Validate() error {
	if s.Columns < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "columns cannot be negative, got %d", s.Columns)
	}
	seen := make(map[string]bool, len(s.Tiles))
	for i, t := range s.Tiles {
		if err := errors.ValidateTileID(t.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "tile %d", i)
		}
		if seen[t.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate tile id %q", t.ID)
		}
		seen[t.ID] = true
		if err := errors.ValidateTileSize(t.ID, t.Width, t.Height); err != nil {
			return err
		}
	}
	return nil
}

// Build returns fresh tiles for a layout pass, in sequence order.
func (s *TileSet) Build() []*tile.Tile {
	tiles := make([]*tile.Tile, len(s.Tiles))
	for i, t := range s.Tiles {
		tiles[i] = tile.New(t.ID, t.Width, t.Height, t.Class)
	}
	return tiles
}

// ReadTileSet decodes and validates a tile set from r.
// ReadTileSet does not close r.
func ReadTileSet(r io.Reader, format Format) (*TileSet, error) {
	var set TileSet
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&set); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode tile set")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&set); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode tile set")
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}
	return &set, nil
}

// ReadTileSetFile reads the tile set at path.
func ReadTileSetFile(path string) (*TileSet, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadTileSet(f, format)
}
