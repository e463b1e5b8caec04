package parser

import (
	"strings"
	"time"

	"github.com/ajitpratap0/tabula/pkg/errors"
)

// TimestampFormat parses cells written with a date-time pattern such as
// "yyyyMMddHHmmss" or "dd.MM.yyyy HH:mm". Parsed wall-clock times are read
// in the process's local time zone (unless the pattern carries an offset)
// and normalised to UTC instants.
type TimestampFormat struct {
	pattern string
	layout  string
	loc     *time.Location
}

// CompilePattern translates a date-time pattern into a reusable format.
//
// Supported letters: y/u (year), M (month, MMM/MMMM for names), d (day),
// H (hour 0-23), h (hour 1-12), m (minute), s (second), S (fraction, only
// after '.' or ','), a (AM/PM), E (weekday name), X/x/Z (offset), z (zone
// abbreviation). Text in single quotes is literal; '' is a quote.
//
// Two limits follow from Go's layouts. A two-digit year (yy) uses Go's
// pivot, so 69-99 read as 1969-1999 and 00-68 as 2000-2068, unlike
// patterns that read yy as the century of the current date. Fractions
// (S) need a '.' or ',' before them, so "HHmmssSSS" is rejected; write
// "HHmmss.SSS" when the input has a separator.
func CompilePattern(pattern string) (*TimestampFormat, error) {
	layout, err := translatePattern(pattern)
	if err != nil {
		return nil, err
	}
	return &TimestampFormat{pattern: pattern, layout: layout, loc: time.Local}, nil
}

// MustCompilePattern is CompilePattern that panics on an invalid pattern.
func MustCompilePattern(pattern string) *TimestampFormat {
	f, err := CompilePattern(pattern)
	if err != nil {
		panic(err)
	}
	return f
}

// In returns a copy of f that reads wall-clock times in loc.
func (f *TimestampFormat) In(loc *time.Location) *TimestampFormat {
	c := *f
	c.loc = loc
	return &c
}

func (f *TimestampFormat) Pattern() string { return f.pattern }

// Layout returns the equivalent Go reference layout.
func (f *TimestampFormat) Layout() string { return f.layout }

// Parse reads value as a wall-clock time and returns the instant in UTC.
func (f *TimestampFormat) Parse(value string) (time.Time, error) {
	t, err := time.ParseInLocation(f.layout, value, f.loc)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// parseInstant reads an RFC 3339 instant such as "2006-01-08T05:09:16Z".
func parseInstant(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// letterRuns maps a pattern letter and its repeat count to a layout element.
// A count of 0 is the entry used for any count not listed.
var letterRuns = map[rune]map[int]string{
	'y': {2: "06", 0: "2006"},
	'u': {2: "06", 0: "2006"},
	'M': {1: "1", 2: "01", 3: "Jan", 0: "January"},
	'd': {1: "2", 0: "02"},
	'H': {0: "15"},
	'h': {1: "3", 0: "03"},
	'm': {1: "4", 0: "04"},
	's': {1: "5", 0: "05"},
	'a': {0: "PM"},
	'E': {4: "Monday", 0: "Mon"},
	'X': {1: "Z07", 2: "Z0700", 0: "Z07:00"},
	'x': {1: "-07", 2: "-0700", 0: "-07:00"},
	'Z': {4: "GMT-07:00", 5: "Z07:00", 0: "-0700"},
	'z': {0: "MST"},
}

func translatePattern(pattern string) (string, error) {
	if pattern == "" {
		return "", errors.New(errors.ErrorTypeConfig, "empty timestamp pattern")
	}

	var b strings.Builder
	runes := []rune(pattern)
	for i := 0; i < len(runes); {
		r := runes[i]

		switch {
		case r == '\'':
			end := i + 1
			var lit strings.Builder
			for ; end < len(runes); end++ {
				if runes[end] != '\'' {
					lit.WriteRune(runes[end])
					continue
				}
				if end+1 < len(runes) && runes[end+1] == '\'' {
					lit.WriteRune('\'')
					end++
					continue
				}
				break
			}
			if i+1 == end && end < len(runes) {
				// '' outside quoted text
				b.WriteRune('\'')
				i = end + 1
				continue
			}
			if end >= len(runes) {
				return "", invalidPattern(pattern, "unterminated quoted text")
			}
			if err := writeLiteral(&b, pattern, lit.String()); err != nil {
				return "", err
			}
			i = end + 1

		case r == 'S':
			n := runLength(runes, i)
			out := b.String()
			if out == "" || (out[len(out)-1] != '.' && out[len(out)-1] != ',') {
				return "", invalidPattern(pattern, "fraction of second must follow '.' or ','")
			}
			b.WriteString(strings.Repeat("0", n))
			i += n

		case isPatternLetter(r):
			runs, ok := letterRuns[r]
			if !ok {
				return "", invalidPattern(pattern, "unsupported pattern letter "+string(r))
			}
			n := runLength(runes, i)
			elem, ok := runs[n]
			if !ok {
				elem = runs[0]
			}
			b.WriteString(elem)
			i += n

		default:
			if err := writeLiteral(&b, pattern, string(r)); err != nil {
				return "", err
			}
			i++
		}
	}
	return b.String(), nil
}

func writeLiteral(b *strings.Builder, pattern, lit string) error {
	if strings.ContainsAny(lit, "0123456789") {
		return invalidPattern(pattern, "literal digits are not supported")
	}
	b.WriteString(lit)
	return nil
}

func runLength(runes []rune, i int) int {
	n := 1
	for i+n < len(runes) && runes[i+n] == runes[i] {
		n++
	}
	return n
}

func isPatternLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func invalidPattern(pattern, reason string) error {
	return errors.Newf(errors.ErrorTypeConfig, "invalid timestamp pattern %q: %s", pattern, reason).
		WithDetail("pattern", pattern)
}
