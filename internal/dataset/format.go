package dataset

import (
	"path"
	"strings"
)

// Format identifies a supported file format.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatExcel   Format = "xlsx"
	FormatParquet Format = "parquet"
)

// FormatFromPath infers the format from a file name or URL path extension.
func FormatFromPath(p string) (Format, bool) {
	switch strings.ToLower(path.Ext(p)) {
	case ".csv":
		return FormatCSV, true
	case ".xlsx":
		return FormatExcel, true
	case ".parquet":
		return FormatParquet, true
	}
	return "", false
}

// ParseFormat parses a format token like "csv" or "parquet".
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "csv":
		return FormatCSV, true
	case "xlsx", "excel":
		return FormatExcel, true
	case "parquet":
		return FormatParquet, true
	}
	return "", false
}

// MIME returns the media type used when serving a download in this format.
func (f Format) MIME() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// Filename returns the fixed download name for this format.
func (f Format) Filename() string {
	switch f {
	case FormatCSV:
		return "data.csv"
	case FormatExcel:
		return "data.xlsx"
	default:
		return "data.parquet"
	}
}

func (f Format) String() string { return string(f) }
