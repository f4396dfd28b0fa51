package dataset

import "fmt"

// IngestionError wraps a failure to obtain or decode a source file.
type IngestionError struct {
	Source string
	Err    error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("failed to ingest %s: %v", e.Source, e.Err)
}

func (e *IngestionError) Unwrap() error { return e.Err }

// ConversionError reports a time column that is wholly unparseable as a
// timestamp.
type ConversionError struct {
	Column string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("column %q could not be converted to a timestamp", e.Column)
}

// NoNumericColumnsError reports that nothing is left to aggregate once the
// time column and non-numeric columns are excluded.
type NoNumericColumnsError struct{}

func (e *NoNumericColumnsError) Error() string {
	return "no numeric columns found to resample"
}

// ExportError wraps a codec failure during re-serialization.
type ExportError struct {
	Format Format
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("failed to export %s: %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
