package datemodel

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultPattern is the layout used when no pattern is configured.
const DefaultPattern = "dd/MM/yyyy"

const (
	tokenDay   = "dd"
	tokenMonth = "MM"
	tokenYear  = "yyyy"
)

// Format substitutes the first dd, MM and yyyy tokens of pattern, in that
// order, with the two digit day, the two digit month and the year.
//
// Substitution is a single literal pass per token: a pattern whose literal
// text contains a token (or whose earlier replacement produces one) is not
// supported.
func Format(d CalendarDate, pattern string) string {
	if pattern == "" {
		pattern = DefaultPattern
	}
	out := strings.Replace(pattern, tokenDay, pad2(d.Day), 1)
	out = strings.Replace(out, tokenMonth, pad2(d.Month+1), 1)
	return strings.Replace(out, tokenYear, strconv.Itoa(d.Year), 1)
}

func pad2(n int) string {
	s := strconv.Itoa(n)
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

// Parse reads a day/month/year string. It returns false when the text does
// not have exactly three numeric parts or when the date does not survive
// Gregorian normalisation unchanged (31/04/2024, 29/02/2023).
func Parse(text string) (CalendarDate, bool) {
	parts := strings.Split(text, "/")
	if len(parts) != 3 {
		return CalendarDate{}, false
	}
	return compose(parts[0], parts[1], parts[2])
}

// ParseValue returns v unchanged when it already is a CalendarDate, converts
// time.Time values and parses strings with Parse.
func ParseValue(v any) (CalendarDate, bool) {
	switch v := v.(type) {
	case CalendarDate:
		return v, true
	case *CalendarDate:
		if v == nil {
			return CalendarDate{}, false
		}
		return *v, true
	case time.Time:
		if v.IsZero() {
			return CalendarDate{}, false
		}
		return FromTime(v), true
	case string:
		return Parse(v)
	}
	return CalendarDate{}, false
}

// ParseFormat reads text laid out as pattern, e.g. yyyy/MM/dd or dd-MM-yyyy.
// With DefaultPattern it accepts exactly what Parse accepts.
func ParseFormat(text, pattern string) (CalendarDate, bool) {
	if pattern == "" || pattern == DefaultPattern {
		return Parse(text)
	}
	re, order, ok := compilePattern(pattern)
	if !ok {
		return CalendarDate{}, false
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return CalendarDate{}, false
	}
	var day, month, year string
	for i, tok := range order {
		switch tok {
		case tokenDay:
			day = m[i+1]
		case tokenMonth:
			month = m[i+1]
		case tokenYear:
			year = m[i+1]
		}
	}
	return compose(day, month, year)
}

// compilePattern turns a pattern into an anchored expression with one digit
// group per token, returning the tokens in the order they appear. A day or
// month token that touches another token takes exactly two digits so that
// compact layouts such as yyyyMMdd split unambiguously; the year always
// takes the remaining digits.
func compilePattern(pattern string) (*regexp.Regexp, []string, bool) {
	type hit struct {
		at  int
		tok string
	}
	var hits []hit
	for _, tok := range []string{tokenDay, tokenMonth, tokenYear} {
		i := strings.Index(pattern, tok)
		if i < 0 {
			return nil, nil, false
		}
		hits = append(hits, hit{i, tok})
	}
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].at < hits[j-1].at; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}

	var expr strings.Builder
	expr.WriteString("^")
	order := make([]string, 0, len(hits))
	pos := 0
	for i, h := range hits {
		if h.at < pos {
			return nil, nil, false
		}
		expr.WriteString(regexp.QuoteMeta(pattern[pos:h.at]))
		touches := h.at == pos && i > 0 ||
			i+1 < len(hits) && hits[i+1].at == h.at+len(h.tok)
		if touches && h.tok != tokenYear {
			expr.WriteString(`(\d{2})`)
		} else {
			expr.WriteString(`(\d+)`)
		}
		order = append(order, h.tok)
		pos = h.at + len(h.tok)
	}
	expr.WriteString(regexp.QuoteMeta(pattern[pos:]))
	expr.WriteString("$")

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, nil, false
	}
	return re, order, true
}

func compose(dayText, monthText, yearText string) (CalendarDate, bool) {
	day, ok := digits(dayText)
	if !ok {
		return CalendarDate{}, false
	}
	month, ok := digits(monthText)
	if !ok {
		return CalendarDate{}, false
	}
	year, ok := digits(yearText)
	if !ok {
		return CalendarDate{}, false
	}
	month--

	t := time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC)
	got := FromTime(t)
	if got.Year != year || got.Month != month || got.Day != day {
		return CalendarDate{}, false
	}
	return got, true
}

func digits(s string) (int, bool) {
	if s == "" || len(s) > 9 {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
