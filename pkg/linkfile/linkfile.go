// Package linkfile reads the CSV file listing the links to create.
//
// The header row must name a source_path and a target_path column. Other
// columns are ignored. Rows are streamed one at a time.
package linkfile

import (
	"encoding/csv"
	stderrors "errors"
	"io"
	"strings"

	"github.com/arthur-debert/vpath/pkg/errors"
)

// Required column names
const (
	SourceColumn = "source_path"
	TargetColumn = "target_path"
)

const utf8BOM = "\ufeff"

// Row is one link request from the CSV file
type Row struct {
	// Line is the 1-based line the record starts on
	Line       int
	SourcePath string
	TargetPath string
}

// Reader streams rows from a link file
type Reader struct {
	csv       *csv.Reader
	sourceIdx int
	targetIdx int
}

// NewReader reads the header row and checks for the required columns.
// A missing column (or an empty input) yields an ErrMissingHeaders error.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if stderrors.Is(err, io.EOF) {
		return nil, errors.New(errors.ErrMissingHeaders, "link file is empty")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCSVParse, "failed to read header row")
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	rd := &Reader{csv: cr, sourceIdx: -1, targetIdx: -1}
	for i, name := range header {
		switch name {
		case SourceColumn:
			rd.sourceIdx = i
		case TargetColumn:
			rd.targetIdx = i
		}
	}

	var missing []string
	if rd.sourceIdx < 0 {
		missing = append(missing, SourceColumn)
	}
	if rd.targetIdx < 0 {
		missing = append(missing, TargetColumn)
	}
	if len(missing) > 0 {
		return nil, errors.Newf(errors.ErrMissingHeaders, "required headers not found: %s", strings.Join(missing, ", ")).
			WithDetail("header", header).
			WithDetail("missing", missing)
	}

	return rd, nil
}

// Next returns the next row, or io.EOF once the input is exhausted.
// Fields absent from a short record read as "".
func (rd *Reader) Next() (Row, error) {
	record, err := rd.csv.Read()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return Row{}, io.EOF
		}
		return Row{}, errors.Wrap(err, errors.ErrCSVParse, "failed to read link file")
	}

	line, _ := rd.csv.FieldPos(0)
	return Row{
		Line:       line,
		SourcePath: field(record, rd.sourceIdx),
		TargetPath: field(record, rd.targetIdx),
	}, nil
}

func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}
