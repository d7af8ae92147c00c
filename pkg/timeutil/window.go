// Package timeutil parses the short look-back windows used by `list --since`.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const day = 24 * time.Hour

var (
	windowPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitMap       = map[string]time.Duration{
		"h":     time.Hour,
		"hr":    time.Hour,
		"hrs":   time.Hour,
		"hour":  time.Hour,
		"hours": time.Hour,
		"d":     day,
		"day":   day,
		"days":  day,
		"w":     7 * day,
		"wk":    7 * day,
		"wks":   7 * day,
		"week":  7 * day,
		"weeks": 7 * day,
	}
)

// ParseWindow parses windows like "3d", "2w" or "1w2d12h" and returns the
// duration with its compact label.
func ParseWindow(input string) (time.Duration, string, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, "", fmt.Errorf("empty window")
	}

	var total time.Duration
	for len(remaining) > 0 {
		m := windowPattern.FindStringSubmatch(remaining)
		if len(m) != 3 {
			return 0, "", fmt.Errorf("invalid window segment %q", strings.TrimSpace(remaining))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid window value %q: %w", m[1], err)
		}
		unit, ok := unitMap[m[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported window unit %q", m[2])
		}
		total += time.Duration(n) * unit
		remaining = remaining[len(m[0]):]
	}
	if total <= 0 {
		return 0, "", fmt.Errorf("window must be greater than zero")
	}
	return total, FormatWindow(total), nil
}

// FormatWindow renders d with w, d and h tokens. Anything under an hour
// rounds down.
func FormatWindow(d time.Duration) string {
	var b strings.Builder
	for _, u := range []struct {
		label string
		value time.Duration
	}{{"w", 7 * day}, {"d", day}, {"h", time.Hour}} {
		if d < u.value {
			continue
		}
		n := d / u.value
		d -= n * u.value
		fmt.Fprintf(&b, "%d%s", n, u.label)
	}
	if b.Len() == 0 {
		return "0h"
	}
	return b.String()
}

// Since is the start of the window ending at now. Windows of whole days
// start at local midnight, so "1d" means today and yesterday.
func Since(input string, now time.Time) (time.Time, error) {
	d, _, err := ParseWindow(input)
	if err != nil {
		return time.Time{}, err
	}
	if d%day != 0 {
		return now.Add(-d), nil
	}
	y, m, dd := now.Date()
	midnight := time.Date(y, m, dd, 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -int(d/day)), nil
}
