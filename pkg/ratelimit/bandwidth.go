package ratelimit

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseBandwidth parses limits such as "512K", "10M", "1G" or a plain byte
// count into bytes per second. Suffixes are binary multiples; an empty string
// or "0" means unlimited.
func ParseBandwidth(input string) (int64, error) {
	s := strings.TrimSpace(strings.ToUpper(input))
	s = strings.TrimSuffix(strings.TrimSuffix(s, "/S"), "B")
	if s == "" {
		return 0, nil
	}

	multiplier := int64(1)
	switch s[len(s)-1] {
	case 'K':
		multiplier = 1 << 10
	case 'M':
		multiplier = 1 << 20
	case 'G':
		multiplier = 1 << 30
	}
	if multiplier > 1 {
		s = s[:len(s)-1]
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid bandwidth %q", input)
	}
	return int64(value * float64(multiplier)), nil
}
