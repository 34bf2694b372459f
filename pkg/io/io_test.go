package io

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/gridsep/pkg/errors"
	"github.com/matzehuels/gridsep/pkg/tiling"
)

const sample = `{
  "obstructions": [
    {"patt": [0], "pos": [[1, 1]]},
    {"patt": [0, 1], "pos": [[0, 0], [1, 0]]}
  ],
  "requirements": [[{"patt": [0], "pos": [[0, 0]]}]],
  "assumptions": [[{"patt": [0], "pos": [[1, 0]]}]]
}`

func TestReadTiling(t *testing.T) {
	got, err := ReadTiling(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ReadTiling() error = %v", err)
	}
	if cols, rows := got.Dimensions(); cols != 2 || rows != 2 {
		t.Errorf("Dimensions() = %d, %d, want 2, 2", cols, rows)
	}
	if n := len(got.Obstructions()); n != 2 {
		t.Errorf("Obstructions() has %d entries, want 2", n)
	}
	if got := got.PositiveCells(); !reflect.DeepEqual(got, []tiling.Cell{{Col: 0, Row: 0}}) {
		t.Errorf("PositiveCells() = %v", got)
	}
	if n := len(got.Assumptions()); n != 1 {
		t.Errorf("Assumptions() has %d entries, want 1", n)
	}
}

func TestReadTiling_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"malformed", `{"obstructions": [`, errors.ErrCodeInvalidFormat},
		{"unknown field", `{"obstructions": [], "cells": []}`, errors.ErrCodeInvalidFormat},
		{"not a permutation", `{"obstructions": [{"patt": [0, 0], "pos": [[0, 0], [0, 0]]}]}`, errors.ErrCodeInvalidTiling},
		{"length mismatch", `{"obstructions": [{"patt": [0, 1], "pos": [[0, 0]]}]}`, errors.ErrCodeInvalidTiling},
		{"negative cell", `{"obstructions": [{"patt": [0], "pos": [[-1, 0]]}]}`, errors.ErrCodeInvalidTiling},
		{"bad requirement", `{"obstructions": [], "requirements": [[{"patt": [1], "pos": [[0, 0]]}]]}`, errors.ErrCodeInvalidTiling},
		{"long assumption", `{"obstructions": [], "assumptions": [[{"patt": [0, 1], "pos": [[0, 0], [0, 0]]}]]}`, errors.ErrCodeInvalidTiling},
		{"grid too large", `{"obstructions": [{"patt": [0, 1], "pos": [[1024, 1024], [1024, 1024]]}]}`, errors.ErrCodeInvalidTiling},
		{"wide requirement", `{"obstructions": [], "requirements": [[{"patt": [0, 1], "pos": [[0, 64], [64, 64]]}]]}`, errors.ErrCodeInvalidTiling},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTiling(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("ReadTiling() error = nil")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("GetCode() = %v, want %v (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestTilingRoundTrip(t *testing.T) {
	inputs := map[string]*tiling.Tiling{
		"sample":  mustRead(t, sample),
		"empty":   tiling.Build([]tiling.GriddedPerm{{}}, nil, nil),
		"epsilon": tiling.Build([]tiling.GriddedPerm{tiling.Point(tiling.Cell{})}, nil, nil),
	}
	for name, want := range inputs {
		t.Run(name, func(t *testing.T) {
			data, err := MarshalTiling(want)
			if err != nil {
				t.Fatalf("MarshalTiling() error = %v", err)
			}
			got, err := UnmarshalTiling(data)
			if err != nil {
				t.Fatalf("UnmarshalTiling() error = %v\n%s", err, data)
			}
			if !got.Equal(want) {
				t.Errorf("round trip changed the tiling:\n%s\nvs\n%s", want, got)
			}
		})
	}
}

func TestWriteTiling_EmptyPatternIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTiling(tiling.Build([]tiling.GriddedPerm{{}}, nil, nil), &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"patt": []`) {
		t.Errorf("WriteTiling() = %s, want an empty patt array", buf.String())
	}
	if strings.Contains(buf.String(), "requirements") {
		t.Errorf("WriteTiling() = %s, want requirements omitted", buf.String())
	}
}

func TestImportExportTiling(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiling.json")
	want := mustRead(t, sample)

	if err := ExportTiling(want, path); err != nil {
		t.Fatalf("ExportTiling() error = %v", err)
	}
	got, err := ImportTiling(path)
	if err != nil {
		t.Fatalf("ImportTiling() error = %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("ImportTiling() = \n%s, want \n%s", got, want)
	}

	_, err = ImportTiling(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportTiling(missing) error = %v, want FILE_NOT_FOUND", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"obstructions": [{"patt": [3], "pos": [[0, 0]]}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = ImportTiling(bad)
	if !errors.IsInvalid(err) || !strings.Contains(err.Error(), "bad.json") {
		t.Errorf("ImportTiling(bad) error = %v, want an invalid-input error naming the file", err)
	}
}

func TestResultRoundTrip(t *testing.T) {
	m := map[tiling.Cell]tiling.Cell{
		{Col: 1, Row: 0}: {Col: 1, Row: 0},
		{Col: 0, Row: 0}: {Col: 0, Row: 1},
	}
	res := Result{
		RunID:     "run-1",
		Separable: true,
		Passes:    1,
		Tiling:    FromTiling(mustRead(t, sample)),
		CellMap:   FromCellMap(m),
	}
	if res.CellMap[0].From != [2]int{0, 0} {
		t.Errorf("FromCellMap() not sorted: %v", res.CellMap)
	}

	data, err := MarshalResult(res)
	if err != nil {
		t.Fatalf("MarshalResult() error = %v", err)
	}
	got, err := UnmarshalResult(data)
	if err != nil {
		t.Fatalf("UnmarshalResult() error = %v", err)
	}
	if !reflect.DeepEqual(got, res) {
		t.Errorf("UnmarshalResult() = %+v, want %+v", got, res)
	}
	if !reflect.DeepEqual(ToCellMap(got.CellMap), m) {
		t.Errorf("ToCellMap() = %v, want %v", ToCellMap(got.CellMap), m)
	}
}

func TestWriteResult_NilCellMap(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResult(Result{}, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"cell_map": []`) {
		t.Errorf("WriteResult() = %s", buf.String())
	}
}

func mustRead(t *testing.T, s string) *tiling.Tiling {
	t.Helper()
	tl, err := ReadTiling(strings.NewReader(s))
	if err != nil {
		t.Fatal(err)
	}
	return tl
}
