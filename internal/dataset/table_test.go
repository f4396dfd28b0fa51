package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRecordsClassification(t *testing.T) {
	tbl := FromRecords(
		[]string{"ts", "value", "label", "when", ""},
		[][]string{
			{"0", "1.5", "a", "2024-01-01 00:00:00", "x"},
			{"5", "2.5", "b", "2024-01-01 00:00:05", "y"},
			{"10", "bad", "c", "2024-01-01 00:00:10", "z"},
			{"15", "4.5", "d", "2024-01-01 00:00:15", "w"},
			{"20", "5.5", "e", "2024-01-01 00:00:20", "v"},
		},
	)

	require.Equal(t, 5, tbl.NumCols())
	require.Equal(t, 5, tbl.NumRows())

	assert.Equal(t, TypeNumeric, tbl.Column("ts").Type)
	// 4 of 5 cells parse, which clears the 80% threshold
	assert.Equal(t, TypeNumeric, tbl.Column("value").Type)
	assert.Equal(t, TypeText, tbl.Column("label").Type)
	assert.Equal(t, TypeDatetime, tbl.Column("when").Type)

	// Blank headers get synthetic names
	assert.NotNil(t, tbl.Column("Column_5"))

	// The unparseable numeric cell is invalid, the rest are valid
	value := tbl.Column("value")
	assert.False(t, value.Valid[2])
	assert.True(t, value.Valid[0])
	assert.Equal(t, 1.5, value.Nums[0])

	assert.Equal(t, []string{"ts", "value"}, tbl.NumericColumns())
}

func TestFromRecordsBelowThresholdIsText(t *testing.T) {
	tbl := FromRecords([]string{"mixed"}, [][]string{
		{"1"}, {"2"}, {"three"}, {"four"}, {"5"},
	})
	assert.Equal(t, TypeText, tbl.Column("mixed").Type)
}

func TestFromRecordsPadsShortRows(t *testing.T) {
	tbl := FromRecords([]string{"a", "b"}, [][]string{
		{"1", "2"},
		{"3"},
	})
	require.Equal(t, 2, tbl.NumRows())
	b := tbl.Column("b")
	assert.Equal(t, "", b.Text[1])
	assert.False(t, b.Valid[1])
}

func TestTimestampsFromNumericEpochSeconds(t *testing.T) {
	col := NewNumericColumn("ts", []float64{0, 30, 90}, nil)
	times, valid := col.Timestamps()
	require.Len(t, times, 3)
	assert.True(t, valid[0])
	assert.Equal(t, time.Unix(0, 0).UTC(), times[0])
	assert.Equal(t, time.Unix(90, 0).UTC(), times[2])
}

func TestTimestampsFromTextCoercesPerRow(t *testing.T) {
	col := NewTextColumn("when", []string{"2024-01-01 00:00:00", "not a date", "2024-01-02"})
	times, valid := col.Timestamps()
	assert.True(t, valid[0])
	assert.False(t, valid[1])
	assert.True(t, valid[2])
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), times[2])
}

func TestParseTimestampLayouts(t *testing.T) {
	for _, in := range []string{
		"2024-06-15T12:30:00Z",
		"2024-06-15T12:30:00",
		"2024-06-15 12:30:00",
		"2024-06-15 12:30",
		"2024-06-15",
		"06/15/2024",
	} {
		_, ok := ParseTimestamp(in)
		assert.True(t, ok, "expected %q to parse", in)
	}
	_, ok := ParseTimestamp("yesterday")
	assert.False(t, ok)
}

func TestNewTableRejectsRaggedColumns(t *testing.T) {
	_, err := NewTable(
		NewTextColumn("a", []string{"1", "2"}),
		NewTextColumn("b", []string{"1"}),
	)
	assert.Error(t, err)
}

func TestRecordsLimit(t *testing.T) {
	tbl := FromRecords([]string{"n"}, [][]string{{"1"}, {"2"}, {"3"}})
	assert.Len(t, tbl.Records(2), 2)
	assert.Len(t, tbl.Records(0), 3)
	assert.Len(t, tbl.Records(10), 3)
}
