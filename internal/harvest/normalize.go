package harvest

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The normalizers in this file are total: malformed input maps to a
// documented sentinel (0, nil, or the original string) instead of an error,
// so a single bad cell never aborts a page.

var ofPairRe = regexp.MustCompile(`^(\d+)\s+of\s+(\d+)`)

// listingDateLayout matches dates like "February 21, 2026" on listing pages.
const listingDateLayout = "January 2, 2006"

// dobLayout matches dates of birth like "Aug 20, 1987" on profile pages.
const dobLayout = "Jan 2, 2006"

// ParseControlTime converts a control-time string like "4:32" to total
// seconds (272). Empty strings and the site's "--"/"---" placeholders
// yield 0.
func ParseControlTime(s string) int {
	s = strings.TrimSpace(s)
	if s == "" || s == "--" || s == "---" {
		return 0
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0
	}
	minutes, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	seconds, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return minutes*60 + seconds
}

// ParseOfPair parses "X of Y" into (landed, attempted). A bare integer "N"
// yields (N, 0); anything else falls back to (0, 0).
func ParseOfPair(s string) (int, int) {
	s = strings.TrimSpace(s)
	if m := ofPairRe.FindStringSubmatch(s); m != nil {
		landed, _ := strconv.Atoi(m[1])
		attempted, _ := strconv.Atoi(m[2])
		return landed, attempted
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return n, 0
	}
	return 0, 0
}

// NormalizeDate converts "February 21, 2026" to "2026-02-21". Unparseable
// dates pass through verbatim rather than being dropped, so the column is
// "ISO-8601 or opaque" and nothing is silently lost.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	t, err := time.Parse(listingDateLayout, s)
	if err != nil {
		return s
	}
	return t.Format("2006-01-02")
}

// ParsePercent converts "50%" to 0.50. "--" and empty input yield nil.
func ParsePercent(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "--" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return nil
	}
	v /= 100
	return &v
}

// ParseDecimal converts a plain decimal like "4.53" to a float. "--" and
// empty input yield nil.
func ParseDecimal(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "--" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseHeight converts a height like `5' 7"` to total inches (67). A
// missing inches segment means feet only, so `6'` yields 72.
func ParseHeight(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" || s == "--" {
		return nil
	}
	s = strings.ReplaceAll(s, `"`, "")
	parts := strings.SplitN(s, "'", 2)
	feet, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil
	}
	inches := 0
	if len(parts) == 2 {
		if rest := strings.TrimSpace(parts[1]); rest != "" {
			inches, err = strconv.Atoi(rest)
			if err != nil {
				return nil
			}
		}
	}
	total := feet*12 + inches
	return &total
}

// ParseWeight converts "155 lbs." to 155. Non-numeric input yields nil.
func ParseWeight(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" || s == "--" {
		return nil
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, "lbs."))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	n := int(v)
	return &n
}

// ParseReach converts `72"` to 72. Non-numeric input yields nil.
func ParseReach(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" || s == "--" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, `"`, "")), 64)
	if err != nil {
		return nil
	}
	n := int(v)
	return &n
}

// ParseRecord splits a career record like "12-3-1" into wins, losses, and
// ties. Missing or non-numeric components default to 0.
func ParseRecord(s string) (wins, losses, ties int) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "Record:"))
	parts := strings.Split(s, "-")
	nums := [3]int{}
	for i := 0; i < 3 && i < len(parts); i++ {
		if n, err := strconv.Atoi(strings.TrimSpace(parts[i])); err == nil {
			nums[i] = n
		}
	}
	return nums[0], nums[1], nums[2]
}

// AgeAt computes a whole-year age from a date-of-birth string like
// "Aug 20, 1987". An unparseable date of birth yields nil.
func AgeAt(dob string, today time.Time) *int {
	t, err := time.Parse(dobLayout, strings.TrimSpace(dob))
	if err != nil {
		return nil
	}
	age := today.Year() - t.Year()
	if today.Month() < t.Month() || (today.Month() == t.Month() && today.Day() < t.Day()) {
		age--
	}
	return &age
}
