package frame

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
)

// Read loads the frame stored at path. field names the primary scalar column
// (e.g. "E" or "B"); it only labels the frame.
func Read(path, field string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingInputError{Path: path, Err: err}
		}
		return nil, err
	}
	defer file.Close()

	f, err := Parse(file, path, field)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Parse reads frame records from r. name is used in error messages.
func Parse(r io.Reader, name, field string) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	f := &Frame{Index: -1, Path: name, Field: field}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				line = perr.Line
			}
			return nil, &RecordError{Path: name, Line: line, Reason: "unreadable record", Err: err}
		}
		line, _ := cr.FieldPos(0)

		s, err := parseRecord(record)
		if err != nil {
			return nil, &RecordError{Path: name, Line: line, Reason: err.Error()}
		}
		f.append(s)
	}

	if f.Len() == 0 {
		return nil, &RecordError{Path: name, Line: 0, Reason: "no records"}
	}
	return f, nil
}

func parseRecord(record []string) (Sample, error) {
	if len(record) != NumColumns {
		return Sample{}, fmt.Errorf("want %d fields, got %d", NumColumns, len(record))
	}

	var vals [NumColumns]float64
	for i, raw := range record {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return Sample{}, fmt.Errorf("%s: %q is not a number", Column(i), raw)
		}
		vals[i] = v
	}

	if math.IsNaN(vals[0]) || math.IsInf(vals[0], 0) || math.IsNaN(vals[1]) || math.IsInf(vals[1], 0) {
		return Sample{}, errors.New("non-finite coordinate")
	}

	return Sample{X: vals[0], Y: vals[1], Value: vals[2], U: vals[3], V: vals[4]}, nil
}
