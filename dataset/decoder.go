// dataset/decoder.go
package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	soxlite_errors "github.com/soxlite/api/errors"
	"github.com/soxlite/api/model"
)

// Format is a supported upload encoding
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat picks the decoder from the file extension
func DetectFormat(fileName string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	switch ext {
	case "csv", "txt":
		return FormatCSV, nil
	case "xlsx", "xlsm":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", soxlite_errors.ErrUnsupportedFileFormat, ext)
	}
}

// Decode parses an uploaded file into a RecordSet. The first row is the
// header; blank cells become nil.
func Decode(fileName string, data []byte) (*model.RecordSet, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, soxlite_errors.ErrEmptyUpload
	}
	format, err := DetectFormat(fileName)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	switch format {
	case FormatCSV:
		rows, err = readCSV(data)
	case FormatXLSX:
		rows, err = readXLSX(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", soxlite_errors.ErrDatasetDecode, err)
	}
	return build(rows)
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// readXLSX reads the first worksheet
func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

func build(rows [][]string) (*model.RecordSet, error) {
	// skip leading blank lines before the header
	for len(rows) > 0 && blankRow(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: missing header row", soxlite_errors.ErrDatasetDecode)
	}

	header := make([]string, len(rows[0]))
	taken := make(map[string]bool, len(rows[0]))
	seen := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		// repeated names become "Owner.1", "Owner.2", ...
		base := name
		for taken[name] {
			seen[base]++
			name = fmt.Sprintf("%s.%d", base, seen[base])
		}
		taken[name] = true
		header[i] = name
	}

	rs := &model.RecordSet{Columns: header, Rows: make([]model.Record, 0, len(rows)-1)}
	for _, row := range rows[1:] {
		// only truly empty lines are dropped; ",," is a row of missing cells
		if emptyLine(row) {
			continue
		}
		rec := make(model.Record, len(header))
		for i, col := range header {
			var v interface{}
			if i < len(row) {
				if cell := strings.TrimSpace(row[i]); cell != "" {
					v = cell
				}
			}
			rec[col] = v
		}
		rs.Rows = append(rs.Rows, rec)
	}
	return rs, nil
}

func emptyLine(row []string) bool {
	return len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "")
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
