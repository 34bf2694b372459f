package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/gridsep/pkg/errors"
	"github.com/matzehuels/gridsep/pkg/tiling"
)

// ReadTiling decodes a JSON tiling from r and builds it.
//
// The input must be a JSON object with an "obstructions" array and optional
// "requirements" and "assumptions" arrays of arrays:
//
//	{
//	  "obstructions": [{"patt": [0, 1], "pos": [[0, 0], [1, 0]]}],
//	  "requirements": [[{"patt": [0], "pos": [[0, 0]]}]]
//	}
//
// ReadTiling returns an INVALID_FORMAT error if the JSON is malformed or has
// unknown fields, and an INVALID_TILING error if a pattern is not a
// permutation, a pattern and its positions differ in length, or a cell is
// out of range. Errors name the offending item.
//
// The tiling goes through [tiling.Build], so contradictory or redundant
// items are silently dropped. ReadTiling does not close r.
func ReadTiling(r io.Reader) (*tiling.Tiling, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var data Tiling
	if err := dec.Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode tiling")
	}
	return ToTiling(data)
}

// UnmarshalTiling decodes a JSON tiling from data.
func UnmarshalTiling(data []byte) (*tiling.Tiling, error) {
	return ReadTiling(bytes.NewReader(data))
}

// ImportTiling reads a JSON file at path and returns the decoded tiling.
//
// A missing file is reported as FILE_NOT_FOUND; otherwise ImportTiling
// returns the same errors as [ReadTiling].
func ImportTiling(path string) (*tiling.Tiling, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "tiling file %s not found", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	t, err := ReadTiling(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ToTiling validates the JSON form of a tiling and builds it.
func ToTiling(data Tiling) (*tiling.Tiling, error) {
	obs, err := toGPs(data.Obstructions, "obstruction")
	if err != nil {
		return nil, err
	}
	reqs := make([][]tiling.GriddedPerm, len(data.Requirements))
	for i, req := range data.Requirements {
		if reqs[i], err = toGPs(req, fmt.Sprintf("requirement %d alternative", i)); err != nil {
			return nil, err
		}
	}
	ass := make([][]tiling.GriddedPerm, len(data.Assumptions))
	for i, a := range data.Assumptions {
		if ass[i], err = toGPs(a, fmt.Sprintf("assumption %d entry", i)); err != nil {
			return nil, err
		}
		for j, g := range ass[i] {
			if !g.IsPoint() {
				return nil, errors.New(errors.ErrCodeInvalidTiling, "assumption %d entry %d: want a single point, got %d", i, j, g.Len())
			}
		}
	}
	if err := checkGrid(obs, reqs, ass); err != nil {
		return nil, err
	}
	return tiling.Build(obs, reqs, ass), nil
}

// checkGrid rejects input whose cells span more than errors.MaxCells, before
// Build materialises the grid.
func checkGrid(obs []tiling.GriddedPerm, groups ...[][]tiling.GriddedPerm) error {
	cols, rows := 1, 1
	grow := func(gps []tiling.GriddedPerm) {
		for _, g := range gps {
			for _, c := range g.Pos {
				cols, rows = max(cols, c.Col+1), max(rows, c.Row+1)
			}
		}
	}
	grow(obs)
	for _, group := range groups {
		for _, gps := range group {
			grow(gps)
		}
	}
	return errors.ValidateGrid(cols, rows)
}

func toGPs(in []GriddedPerm, what string) ([]tiling.GriddedPerm, error) {
	out := make([]tiling.GriddedPerm, len(in))
	for i, g := range in {
		if len(g.Patt) != len(g.Pos) {
			return nil, errors.New(errors.ErrCodeInvalidTiling, "%s %d: pattern has %d points but %d positions", what, i, len(g.Patt), len(g.Pos))
		}
		if err := errors.ValidatePattern(g.Patt); err != nil {
			return nil, fmt.Errorf("%s %d: %w", what, i, err)
		}
		pos := make([]tiling.Cell, len(g.Pos))
		for j, c := range g.Pos {
			if err := errors.ValidateCell(c[0], c[1]); err != nil {
				return nil, fmt.Errorf("%s %d: %w", what, i, err)
			}
			pos[j] = toCell(c)
		}
		out[i] = tiling.NewGriddedPerm(g.Patt, pos)
	}
	return out, nil
}
