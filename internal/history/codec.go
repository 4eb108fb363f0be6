// Package history reads and writes a ride's history as CSV.
//
// The format is one visitor per line, fields joined with commas and no
// quoting or escaping:
//
//	name,age,id,membershipLevel,tickets
//
// A name or id containing a comma therefore cannot round-trip. Readers accept
// four fields (tickets then defaults to 1) and skip malformed lines instead of
// failing the whole read.
package history

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"themepark/internal/domain/entities"
)

const (
	fieldSeparator = ","
	minFields      = 4
)

var (
	ErrTooFewFields  = errors.New("invalid format: expected at least 4 fields")
	ErrInvalidNumber = errors.New("invalid number format")
)

// EncodeLine renders v as one CSV record without a trailing newline.
func EncodeLine(v *entities.Visitor) string {
	return strings.Join([]string{
		v.Name(),
		strconv.Itoa(v.Age()),
		v.ID(),
		v.MembershipLevel(),
		strconv.Itoa(v.Tickets()),
	}, fieldSeparator)
}

// ParseLine decodes one CSV record. The returned error wraps
// entities.ErrMalformedRecord and one of ErrTooFewFields, ErrInvalidNumber,
// or a visitor validation error.
func ParseLine(line string) (*entities.Visitor, error) {
	fields := trimTrailingEmpty(strings.Split(line, fieldSeparator))
	if len(fields) < minFields {
		return nil, fmt.Errorf("%w: %w (got %d)", entities.ErrMalformedRecord, ErrTooFewFields, len(fields))
	}

	age, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %w: age %q", entities.ErrMalformedRecord, ErrInvalidNumber, fields[1])
	}

	tickets := entities.DefaultTickets
	if len(fields) > minFields {
		tickets, err = strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("%w: %w: tickets %q", entities.ErrMalformedRecord, ErrInvalidNumber, fields[4])
		}
	}

	v, err := entities.NewVisitor(fields[0], age, fields[2], fields[3], tickets)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrMalformedRecord, err)
	}
	return v, nil
}

// Write encodes every visitor as one line.
func Write(w io.Writer, visitors []*entities.Visitor) error {
	bw := bufio.NewWriter(w)
	for _, v := range visitors {
		if _, err := bw.WriteString(EncodeLine(v) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LineWarning describes a line that was skipped while reading.
type LineWarning struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

func (w LineWarning) String() string {
	return fmt.Sprintf("line %d: %v: %s", w.Line, w.Err, w.Text)
}

// Report summarizes a read. Skipped always equals len(Warnings).
type Report struct {
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Warnings []LineWarning `json:"warnings,omitempty"`
}

// Read decodes every non-blank line of r. Malformed lines are recorded in the
// report and skipped; only a failure of r itself is returned as an error.
func Read(r io.Reader) ([]*entities.Visitor, Report, error) {
	var (
		out    []*entities.Visitor
		report Report
	)

	// Lines may be of any length.
	br := bufio.NewReader(r)
	for lineNumber := 1; ; lineNumber++ {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return out, report, readErr
		}

		if line := strings.TrimSpace(raw); line != "" {
			v, err := ParseLine(line)
			if err != nil {
				report.Skipped++
				report.Warnings = append(report.Warnings, LineWarning{
					Line:   lineNumber,
					Text:   line,
					Reason: err.Error(),
					Err:    err,
				})
			} else {
				out = append(out, v)
				report.Imported++
			}
		}

		if readErr == io.EOF {
			return out, report, nil
		}
	}
}

// trimTrailingEmpty drops empty fields from the end of a split record, so
// "Ann,30,V1,Gold," still counts as four fields.
func trimTrailingEmpty(fields []string) []string {
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}
