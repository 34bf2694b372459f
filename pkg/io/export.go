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

// WriteTiling encodes a tiling as indented JSON and writes it to w.
// The output can be re-imported with [ReadTiling] and rebuilds an equal
// tiling.
func WriteTiling(t *tiling.Tiling, w io.Writer) error {
	return writeJSON(FromTiling(t), w)
}

// MarshalTiling encodes a tiling as JSON bytes.
func MarshalTiling(t *tiling.Tiling) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteTiling(t, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportTiling writes a tiling to a JSON file, creating or truncating it.
func ExportTiling(t *tiling.Tiling, path string) error {
	return writeFile(path, func(w io.Writer) error { return WriteTiling(t, w) })
}

// WriteResult encodes a separation result as indented JSON and writes it to w.
func WriteResult(res Result, w io.Writer) error {
	if res.CellMap == nil {
		res.CellMap = []CellMapping{}
	}
	return writeJSON(res, w)
}

// MarshalResult encodes a separation result as JSON bytes.
func MarshalResult(res Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteResult(res, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalResult decodes a separation result. The embedded tiling is not
// validated; use [ToTiling] on it.
func UnmarshalResult(data []byte) (Result, error) {
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode result")
	}
	return res, nil
}

// ExportResult writes a separation result to a JSON file.
func ExportResult(res Result, path string) error {
	return writeFile(path, func(w io.Writer) error { return WriteResult(res, w) })
}

func writeJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
