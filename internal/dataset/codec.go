package dataset

// Decode decodes raw bytes in the given format. Codec failures are wrapped
// as IngestionError by callers that know the source.
func Decode(format Format, data []byte) (*Table, error) {
	switch format {
	case FormatExcel:
		return DecodeExcel(data)
	case FormatParquet:
		return DecodeParquet(data)
	default:
		return DecodeCSV(data)
	}
}

// Encode serializes the table in the given format as an in-memory buffer
// suitable for direct download.
func Encode(t *Table, format Format) ([]byte, error) {
	switch format {
	case FormatExcel:
		return EncodeExcel(t)
	case FormatParquet:
		return EncodeParquet(t)
	default:
		return EncodeCSV(t)
	}
}
