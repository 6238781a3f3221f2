package common

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DayMonthLayout is the layout of the "15 Jan" tokens combined with the
// statement year.
const DayMonthLayout = "2 Jan 2006"

// DayMonthWidth is how many leading characters of a line hold the date token.
const DayMonthWidth = 6

// ParseAmount parses a bare decimal amount such as "1,234.50". Thousands
// separators are dropped; suffixes such as "CR" are rejected.
func ParseAmount(text string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(text), ",", ""))
}

// ParseDayMonth parses a day and abbreviated month token ("15 Jan") in the
// given year. The month name is matched case-insensitively.
func ParseDayMonth(token string, year int) (time.Time, error) {
	token = strings.Join(strings.Fields(token), " ")
	if token == "" {
		return time.Time{}, fmt.Errorf("empty date token")
	}
	return time.ParseInLocation(DayMonthLayout, token+" "+strconv.Itoa(year), time.Local)
}

// FormatDayMonth is the inverse of ParseDayMonth.
func FormatDayMonth(t time.Time) string {
	return t.Format("02 Jan")
}

// LeadingDate parses the date token held in the first DayMonthWidth
// characters of a line. The rest of the line is returned alongside.
func LeadingDate(line string, year int) (time.Time, string, error) {
	head, rest := line, ""
	if len(line) > DayMonthWidth {
		head, rest = line[:DayMonthWidth], line[DayMonthWidth:]
	}
	date, err := ParseDayMonth(head, year)
	if err != nil {
		return time.Time{}, "", err
	}
	return date, rest, nil
}

// SplitSignToken splits "<body> <sign>" on its last space. The body is
// everything before the sign token.
func SplitSignToken(text string) (string, Sign, error) {
	text = strings.TrimSpace(text)
	i := strings.LastIndex(text, " ")
	if i < 0 {
		return "", SignUnknown, fmt.Errorf("no sign token in %q", text)
	}
	return strings.TrimSpace(text[:i]), SignFromToken(text[i+1:]), nil
}

// SignedAmount parses "<amount> <sign>" and applies the sign multiplier.
func SignedAmount(text string) (decimal.Decimal, Sign, error) {
	body, sign, err := SplitSignToken(text)
	if err != nil {
		return decimal.Zero, SignUnknown, err
	}
	amount, err := ParseAmount(body)
	if err != nil {
		return decimal.Zero, SignUnknown, fmt.Errorf("invalid amount %q: %w", body, err)
	}
	return amount.Mul(sign.Multiplier()), sign, nil
}

// ParseDate parses a date string using a layout, handling common issues
func ParseDate(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, strings.TrimSpace(value), time.Local)
}

var fullDateRegex = regexp.MustCompile(`\b(\d{1,2} [A-Za-z]{3} \d{4})\b`)

// FindStatementDate returns the first "D Mon YYYY" date found in lines.
func FindStatementDate(lines ...string) (time.Time, bool) {
	for _, line := range lines {
		for _, m := range fullDateRegex.FindAllString(line, -1) {
			if dt, err := ParseDate(DayMonthLayout, m); err == nil {
				return dt, true
			}
		}
	}
	return time.Time{}, false
}
