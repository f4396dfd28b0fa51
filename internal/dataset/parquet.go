package dataset

import (
	"bytes"
	"context"
	"math"
	"time"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/apache/arrow/go/v14/parquet"
	"github.com/apache/arrow/go/v14/parquet/compress"
	"github.com/apache/arrow/go/v14/parquet/pqarrow"
)

// DecodeParquet decodes a parquet file into a table. Integer and float
// columns become numeric, timestamp columns become datetime, everything
// else is carried as text.
func DecodeParquet(data []byte) (*Table, error) {
	mem := memory.NewGoAllocator()
	tbl, err := pqarrow.ReadTable(context.Background(), bytes.NewReader(data),
		parquet.NewReaderProperties(mem), pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, err
	}
	defer tbl.Release()

	cols := make([]*Column, 0, tbl.NumCols())
	for i := 0; i < int(tbl.NumCols()); i++ {
		field := tbl.Schema().Field(i)
		cols = append(cols, columnFromChunks(field.Name, field.Type, tbl.Column(i).Data().Chunks()))
	}
	return &Table{Columns: cols}, nil
}

func columnFromChunks(name string, dt arrow.DataType, chunks []arrow.Array) *Column {
	switch dt.ID() {
	case arrow.FLOAT64, arrow.FLOAT32, arrow.INT64, arrow.INT32, arrow.INT16, arrow.INT8:
		var nums []float64
		var valid []bool
		for _, chunk := range chunks {
			for i := 0; i < chunk.Len(); i++ {
				if chunk.IsNull(i) {
					nums = append(nums, math.NaN())
					valid = append(valid, false)
					continue
				}
				nums = append(nums, numericValue(chunk, i))
				valid = append(valid, true)
			}
		}
		return NewNumericColumn(name, nums, valid)
	case arrow.TIMESTAMP:
		unit := dt.(*arrow.TimestampType).Unit
		var times []time.Time
		var valid []bool
		for _, chunk := range chunks {
			a := chunk.(*array.Timestamp)
			for i := 0; i < a.Len(); i++ {
				if a.IsNull(i) {
					times = append(times, time.Time{})
					valid = append(valid, false)
					continue
				}
				times = append(times, a.Value(i).ToTime(unit).UTC())
				valid = append(valid, true)
			}
		}
		return NewTimeColumn(name, times, valid)
	default:
		var text []string
		for _, chunk := range chunks {
			for i := 0; i < chunk.Len(); i++ {
				if chunk.IsNull(i) {
					text = append(text, "")
					continue
				}
				text = append(text, chunk.ValueStr(i))
			}
		}
		return NewTextColumn(name, text)
	}
}

func numericValue(arr arrow.Array, i int) float64 {
	switch a := arr.(type) {
	case *array.Float64:
		return a.Value(i)
	case *array.Float32:
		return float64(a.Value(i))
	case *array.Int64:
		return float64(a.Value(i))
	case *array.Int32:
		return float64(a.Value(i))
	case *array.Int16:
		return float64(a.Value(i))
	case *array.Int8:
		return float64(a.Value(i))
	}
	return math.NaN()
}

// EncodeParquet serializes the table as snappy-compressed parquet. Numeric
// columns are written as float64, datetime columns as UTC millisecond
// timestamps, text columns as utf8.
func EncodeParquet(t *Table) ([]byte, error) {
	mem := memory.NewGoAllocator()

	fields := make([]arrow.Field, len(t.Columns))
	for i, c := range t.Columns {
		var dt arrow.DataType
		switch c.Type {
		case TypeNumeric:
			dt = arrow.PrimitiveTypes.Float64
		case TypeDatetime:
			dt = arrow.FixedWidthTypes.Timestamp_ms
		default:
			dt = arrow.BinaryTypes.String
		}
		fields[i] = arrow.Field{Name: c.Name, Type: dt, Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	builder := array.NewRecordBuilder(mem, schema)
	defer builder.Release()

	for i, c := range t.Columns {
		switch c.Type {
		case TypeNumeric:
			fb := builder.Field(i).(*array.Float64Builder)
			for r := range c.Nums {
				if c.Valid[r] {
					fb.Append(c.Nums[r])
				} else {
					fb.AppendNull()
				}
			}
		case TypeDatetime:
			tb := builder.Field(i).(*array.TimestampBuilder)
			for r := range c.Times {
				if c.Valid[r] {
					tb.Append(arrow.Timestamp(c.Times[r].UnixMilli()))
				} else {
					tb.AppendNull()
				}
			}
		default:
			sb := builder.Field(i).(*array.StringBuilder)
			for r := range c.Text {
				if c.Valid[r] {
					sb.Append(c.Text[r])
				} else {
					sb.AppendNull()
				}
			}
		}
	}

	rec := builder.NewRecord()
	defer rec.Release()
	atbl := array.NewTableFromRecords(schema, []arrow.Record{rec})
	defer atbl.Release()

	chunkSize := int64(t.NumRows())
	if chunkSize == 0 {
		chunkSize = 1
	}
	var buf bytes.Buffer
	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	if err := pqarrow.WriteTable(atbl, &buf, chunkSize, props, pqarrow.DefaultWriterProps()); err != nil {
		return nil, &ExportError{Format: FormatParquet, Err: err}
	}
	return buf.Bytes(), nil
}
