package resolve

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRange reads "first-last" (e.g. "5-12"). A single number is a range
// of one.
func ParseRange(s string) (int, int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, fmt.Errorf("empty range")
	}

	parts := strings.Split(s, "-")
	switch len(parts) {
	case 1:
		n, err := atoi(parts[0])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid range %q: %w", s, err)
		}
		return n, n, nil
	case 2:
		first, err1 := atoi(parts[0])
		last, err2 := atoi(parts[1])
		if err1 != nil || err2 != nil {
			return 0, 0, fmt.Errorf("invalid range %q", s)
		}
		return first, last, nil
	default:
		return 0, 0, fmt.Errorf("invalid range %q", s)
	}
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
