package table

import (
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/matzehuels/radialstack/pkg/errors"
)

const parquetBatchSize = 256

// ReadParquet reads a flat parquet file. Each leaf column becomes a table
// column; roles come from b. Numeric cells decode as float64 or int64,
// byte arrays as strings and nulls as nil.
func ReadParquet(r io.ReaderAt, size int64, b Bindings) (Table, error) {
	f, err := parquet.OpenFile(r, size)
	if err != nil {
		return Table{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open parquet file")
	}

	paths := f.Schema().Columns()
	cols := make([]Column, len(paths))
	for i, p := range paths {
		name := ""
		if len(p) > 0 {
			name = p[len(p)-1]
		}
		cols[i] = Column{Name: name}
	}
	if cols, err = b.Apply(cols); err != nil {
		return Table{}, err
	}

	reader := parquet.NewReader(f)
	defer func() { _ = reader.Close() }()

	t := Table{Columns: cols, Rows: make([][]any, 0, f.NumRows())}
	buf := make([]parquet.Row, parquetBatchSize)
	for {
		n, err := reader.ReadRows(buf)
		for _, pr := range buf[:n] {
			row := make([]any, len(cols))
			for _, v := range pr {
				if c := v.Column(); c >= 0 && c < len(row) {
					row[c] = parquetCell(v)
				}
			}
			t.Rows = append(t.Rows, row)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read parquet rows")
		}
		if n == 0 {
			break
		}
	}
	return t, nil
}

func parquetCell(v parquet.Value) any {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	}
	return v.String()
}
