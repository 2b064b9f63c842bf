package datemodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name    string
		date    CalendarDate
		pattern string
		want    string
	}{
		{"default pattern", CalendarDate{2000, 0, 27}, "", "27/01/2000"},
		{"explicit default", CalendarDate{2024, 11, 5}, "dd/MM/yyyy", "05/12/2024"},
		{"year first", CalendarDate{2024, 1, 29}, "yyyy/MM/dd", "2024/02/29"},
		{"dashes", CalendarDate{1999, 6, 4}, "MM-dd-yyyy", "07-04-1999"},
		{"short year is not padded", CalendarDate{999, 0, 1}, "dd/MM/yyyy", "01/01/999"},
		{"missing token left alone", CalendarDate{2020, 2, 3}, "dd.MM", "03.03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.date, tt.pattern))
		})
	}
}

// Substitution happens once per token in a fixed order, so a replacement that
// itself contains a later token is substituted again. This is documented
// behaviour, not something callers should rely on.
func TestFormatSinglePassLimitation(t *testing.T) {
	got := Format(CalendarDate{2021, 4, 9}, "dd MM yyyy dd")
	assert.Equal(t, "09 05 2021 dd", got, "only the first occurrence of each token is replaced")
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  CalendarDate
		ok    bool
	}{
		{"27/01/2000", CalendarDate{2000, 0, 27}, true},
		{"1/1/2020", CalendarDate{2020, 0, 1}, true},
		{"29/02/2024", CalendarDate{2024, 1, 29}, true},
		{"29/02/2023", CalendarDate{}, false},
		{"31/04/2024", CalendarDate{}, false},
		{"39/09/2020", CalendarDate{}, false},
		{"00/01/2020", CalendarDate{}, false},
		{"01/13/2020", CalendarDate{}, false},
		{"01/00/2020", CalendarDate{}, false},
		{"", CalendarDate{}, false},
		{"2020-01-01", CalendarDate{}, false},
		{"01/01", CalendarDate{}, false},
		{"01/01/2020/1", CalendarDate{}, false},
		{"aa/01/2020", CalendarDate{}, false},
		{"12abc/01/2020", CalendarDate{}, false},
		{" 1/01/2020", CalendarDate{}, false},
		{"-1/01/2020", CalendarDate{}, false},
		{"01//2020", CalendarDate{}, false},
		{"99999999999/01/2020", CalendarDate{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Parse(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	years := YearRange{Min: 2019, Max: 2025}
	patterns := []string{DefaultPattern, "yyyy/MM/dd", "MM-dd-yyyy", "yyyy.dd.MM", "ddMMyyyy", "yyyyMMdd"}

	for _, pattern := range patterns {
		for _, y := range years.Years() {
			for m := 0; m < 12; m++ {
				for d := 1; d <= DaysInMonth(y, m); d++ {
					want := CalendarDate{y, m, d}
					got, ok := ParseFormat(Format(want, pattern), pattern)
					if !ok || got != want {
						t.Fatalf("round trip of %s with %q: got %v ok=%v", want, pattern, got, ok)
					}
				}
			}
		}
	}
}

func TestParseFormatCompactLayouts(t *testing.T) {
	tests := []struct {
		input   string
		pattern string
		want    CalendarDate
		ok      bool
	}{
		{"15012024", "ddMMyyyy", CalendarDate{2024, 0, 15}, true},
		{"20240115", "yyyyMMdd", CalendarDate{2024, 0, 15}, true},
		{"2024-0115", "yyyy-MMdd", CalendarDate{2024, 0, 15}, true},
		{"150112024", "ddMMyyyy", CalendarDate{12024, 0, 15}, true},
		{"2024115", "yyyyMMdd", CalendarDate{}, false},
		{"20240230", "yyyyMMdd", CalendarDate{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.input, func(t *testing.T) {
			got, ok := ParseFormat(tt.input, tt.pattern)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseFormatMatchesParseForDefault(t *testing.T) {
	for _, input := range []string{"27/01/2000", "31/04/2024", "x/1/2", "1/1/1"} {
		a, aok := Parse(input)
		b, bok := ParseFormat(input, DefaultPattern)
		assert.Equal(t, aok, bok, input)
		assert.Equal(t, a, b, input)
	}
}

func TestParseFormatRejects(t *testing.T) {
	tests := []struct {
		input   string
		pattern string
	}{
		{"2024/02/30", "yyyy/MM/dd"},
		{"2024-02-01", "yyyy/MM/dd"},
		{"27/01/2000", "yyyy/MM/dd"},
		{"2024/02/01", "yyyy/MM"},
		{"2024/02/01 ", "yyyy/MM/dd"},
	}
	for _, tt := range tests {
		t.Run(tt.input+" "+tt.pattern, func(t *testing.T) {
			_, ok := ParseFormat(tt.input, tt.pattern)
			assert.False(t, ok)
		})
	}
}

func TestParseValue(t *testing.T) {
	d := CalendarDate{2024, 0, 1}

	got, ok := ParseValue(d)
	require.True(t, ok)
	assert.Equal(t, d, got)

	got, ok = ParseValue(&d)
	require.True(t, ok)
	assert.Equal(t, d, got)

	got, ok = ParseValue(time.Date(2024, time.January, 1, 15, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, d, got)

	got, ok = ParseValue("01/01/2024")
	require.True(t, ok)
	assert.Equal(t, d, got)

	_, ok = ParseValue((*CalendarDate)(nil))
	assert.False(t, ok)
	_, ok = ParseValue(time.Time{})
	assert.False(t, ok)
	_, ok = ParseValue(42)
	assert.False(t, ok)
}
