package table

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/radialstack/pkg/errors"
)

// Format identifies a table file format.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
	FormatParquet Format = "parquet"
)

// FormatOf returns the format implied by a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".parquet":
		return FormatParquet, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported table file %q", filepath.Base(path))
}

// Load reads the table at path, choosing the loader by extension.
func Load(path string, b Bindings) (Table, error) {
	if err := errors.ValidateTablePath(path); err != nil {
		return Table{}, err
	}
	if err := b.Validate(); err != nil {
		return Table{}, err
	}
	format, err := FormatOf(path)
	if err != nil {
		return Table{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Table{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "table file %s", path)
		}
		return Table{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	if format == FormatParquet {
		info, err := f.Stat()
		if err != nil {
			return Table{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "stat %s", path)
		}
		return ReadParquet(f, info.Size(), b)
	}
	return Decode(f, format, b)
}

// Decode reads a table of the given format from r. Parquet input is
// buffered in memory since the format needs random access.
func Decode(r io.Reader, format Format, b Bindings) (Table, error) {
	switch format {
	case FormatCSV:
		return ReadCSV(r, b)
	case FormatJSON, "":
		return ReadJSON(r, b)
	case FormatParquet:
		data, err := io.ReadAll(r)
		if err != nil {
			return Table{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read parquet input")
		}
		return ReadParquet(bytes.NewReader(data), int64(len(data)), b)
	}
	return Table{}, errors.New(errors.ErrCodeUnsupported, "unsupported table format %q", format)
}
