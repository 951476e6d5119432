package frame

import (
	"fmt"
	"strings"
)

// Pattern addresses the numbered frame files of one simulation run.
// Format holds a single integer verb, e.g. "outputs/run_%d.txt".
type Pattern struct {
	Format string
	Field  string
}

// NewPattern validates format and returns a Pattern for field.
func NewPattern(format, field string) (Pattern, error) {
	p := Pattern{Format: format, Field: field}
	if strings.Count(strings.ReplaceAll(format, "%%", ""), "%") != 1 {
		return Pattern{}, fmt.Errorf("frame pattern %q: want exactly one integer verb", format)
	}
	if strings.Contains(p.Path(0), "%!") {
		return Pattern{}, fmt.Errorf("frame pattern %q: verb does not accept an integer", format)
	}
	return p, nil
}

// Path returns the file name for frame index.
func (p Pattern) Path(index int) string {
	return fmt.Sprintf(p.Format, index)
}

// Load reads frame index from disk.
func (p Pattern) Load(index int) (*Frame, error) {
	f, err := Read(p.Path(index), p.Field)
	if err != nil {
		return nil, err
	}
	f.Index = index
	return f, nil
}
