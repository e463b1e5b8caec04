package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tabula/pkg/errors"
)

func TestCompilePatternLayouts(t *testing.T) {
	tests := []struct {
		pattern string
		layout  string
	}{
		{"yyyyMMddHHmmss", "20060102150405"},
		{"yyyy-MM-dd", "2006-01-02"},
		{"dd.MM.yy HH:mm", "02.01.06 15:04"},
		{"d MMM yyyy", "2 Jan 2006"},
		{"EEEE, d MMMM uuuu", "Monday, 2 January 2006"},
		{"EEE hh:mm a", "Mon 03:04 PM"},
		{"yyyy-MM-dd'T'HH:mm:ss.SSSXXX", "2006-01-02T15:04:05.000Z07:00"},
		{"HH:mm:ss,SS", "15:04:05,00"},
		{"yyyy-MM-dd HH:mm:ss Z", "2006-01-02 15:04:05 -0700"},
		{"yyyy-MM-dd HH:mm z", "2006-01-02 15:04 MST"},
		{"'at' HH:mm", "at 15:04"},
		{"HH 'o''clock'", "15 o'clock"},
		{"HH''mm", "15'04"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			f, err := CompilePattern(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.layout, f.Layout())
			assert.Equal(t, tt.pattern, f.Pattern())
		})
	}
}

func TestCompilePatternErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"empty", ""},
		{"unsupported letter", "yyyy-QQ"},
		{"unterminated quote", "yyyy 'at"},
		{"literal digits", "yyyy'1'"},
		{"bare fraction", "HHmmssSSS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompilePattern(tt.pattern)
			assert.True(t, errors.IsType(err, errors.ErrorTypeConfig), err)
		})
	}

	assert.Panics(t, func() { MustCompilePattern("QQ") })
}

func TestTimestampFormatParse(t *testing.T) {
	tests := []struct {
		pattern string
		value   string
		want    time.Time
	}{
		{"yyyyMMddHHmmss", "19750826050916", time.Date(1975, 8, 26, 5, 9, 16, 0, time.UTC)},
		{"dd.MM.yyyy", "08.01.2006", time.Date(2006, 1, 8, 0, 0, 0, 0, time.UTC)},
		{"d MMM yyyy hh:mm a", "26 Oct 1947 05:09 PM", time.Date(1947, 10, 26, 17, 9, 0, 0, time.UTC)},
		{"yyyy-MM-dd HH:mm:ss.SSS", "2006-01-08 05:09:16.250", time.Date(2006, 1, 8, 5, 9, 16, 250e6, time.UTC)},
		{"yyyy-MM-dd'T'HH:mmXXX", "2006-01-08T05:09+02:00", time.Date(2006, 1, 8, 3, 9, 0, 0, time.UTC)},
		// two-digit years pivot at 69
		{"dd.MM.yy", "01.02.69", time.Date(1969, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"yyMMdd", "680201", time.Date(2068, 2, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			f := MustCompilePattern(tt.pattern).In(time.UTC)
			got, err := f.Parse(tt.value)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestTimestampFormatParseError(t *testing.T) {
	f := MustCompilePattern("yyyyMMdd")
	_, err := f.Parse("2006-01-08")
	assert.Error(t, err)
}

func TestInDoesNotMutate(t *testing.T) {
	f := MustCompilePattern("yyyyMMdd")
	g := f.In(time.UTC)

	assert.NotSame(t, f, g)
	assert.Equal(t, f.Layout(), g.Layout())

	local, err := f.Parse("20060108")
	require.NoError(t, err)
	utc, err := g.Parse("20060108")
	require.NoError(t, err)

	_, offset := time.Date(2006, 1, 8, 0, 0, 0, 0, time.Local).Zone()
	assert.Equal(t, time.Duration(offset)*time.Second, utc.Sub(local))
}

func TestParseInstant(t *testing.T) {
	got, err := parseInstant("2006-01-08T05:09:16.5Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2006, 1, 8, 5, 9, 16, 5e8, time.UTC), got)

	_, err = parseInstant("2006-01-08")
	assert.Error(t, err)
}
