package dataset_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/soxlite/api/dataset"
	soxlite_errors "github.com/soxlite/api/errors"
)

func TestDecodeCSV(t *testing.T) {
	data := []byte("\xef\xbb\xbfControl ID, Owner ,Due Date\nC-1,alice,2024-01-01\n\nC-2,,\nC-3\n")

	rs, err := dataset.Decode("controls.CSV", data)

	require.NoError(t, err)
	assert.Equal(t, []string{"Control ID", "Owner", "Due Date"}, rs.Columns)
	require.Len(t, rs.Rows, 3)
	assert.Equal(t, "alice", rs.Rows[0]["Owner"])
	assert.Nil(t, rs.Rows[1]["Owner"])
	assert.Nil(t, rs.Rows[2]["Due Date"], "short rows are padded with nil")
}

func TestDecodeXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Status", "Value", "Threshold"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Fail", 50, 80}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rs, err := dataset.Decode("esg.xlsx", buf.Bytes())

	require.NoError(t, err)
	assert.Equal(t, []string{"Status", "Value", "Threshold"}, rs.Columns)
	require.Len(t, rs.Rows, 1)
	assert.Equal(t, "50", rs.Rows[0]["Value"])
}

func TestDecodeErrors(t *testing.T) {
	_, err := dataset.Decode("report.pdf", []byte("x"))
	assert.True(t, errors.Is(err, soxlite_errors.ErrUnsupportedFileFormat))

	_, err = dataset.Decode("a.csv", []byte("  \n"))
	assert.True(t, errors.Is(err, soxlite_errors.ErrEmptyUpload))

	_, err = dataset.Decode("a.csv", []byte("a,\"b\n1,2"))
	assert.True(t, errors.Is(err, soxlite_errors.ErrDatasetDecode))

	_, err = dataset.Decode("a.xlsx", []byte("not a zip"))
	assert.True(t, errors.Is(err, soxlite_errors.ErrDatasetDecode))
}

func TestDecodeDuplicateHeaders(t *testing.T) {
	rs, err := dataset.Decode("sox.csv", []byte("Owner,Owner,Result,Owner\n,bob,Pass,carol\n"))

	require.NoError(t, err)
	assert.Equal(t, []string{"Owner", "Owner.1", "Result", "Owner.2"}, rs.Columns)
	require.Len(t, rs.Rows, 1)
	assert.Nil(t, rs.Rows[0]["Owner"], "first column keeps its own value")
	assert.Equal(t, "bob", rs.Rows[0]["Owner.1"])
	assert.Equal(t, "carol", rs.Rows[0]["Owner.2"])
}

func TestDecodeKeepsCommaOnlyRows(t *testing.T) {
	rs, err := dataset.Decode("sox.csv", []byte("Owner,Result\n,\nbob,Pass\n\n"))

	require.NoError(t, err)
	require.Len(t, rs.Rows, 2)
	assert.Nil(t, rs.Rows[0]["Owner"])
	assert.Nil(t, rs.Rows[0]["Result"])
	assert.Equal(t, "bob", rs.Rows[1]["Owner"])
}
