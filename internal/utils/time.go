package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseMinutes reads a duration typed by a user and returns whole minutes.
// Accepted forms: "90", "1:30" (h:mm) and Go durations such as "2h" or "1h15m".
func ParseMinutes(s string) (int, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("duration must not be negative")
		}
		return n, nil
	}

	if h, m, ok := strings.Cut(s, ":"); ok {
		hours, err := strconv.Atoi(h)
		if err != nil || hours < 0 {
			return 0, fmt.Errorf("invalid hours %q", h)
		}
		minutes, err := strconv.Atoi(m)
		if err != nil || minutes < 0 || minutes > 59 || len(m) != 2 {
			return 0, fmt.Errorf("invalid minutes %q", m)
		}
		return hours*60 + minutes, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must not be negative")
	}
	return int(d.Minutes()), nil
}
