package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTimezoneLocation resolves the configured user zone. It accepts:
//   - "" / "Local" for the host zone
//   - "UTC" / "GMT"
//   - IANA names like "Europe/Vilnius"
//   - fixed offsets: "UTC+3", "UTC-7", "+02:00", "-03:30"
//
// Fixed offsets map to time.FixedZone and ignore DST.
func ParseTimezoneLocation(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	switch strings.ToUpper(tz) {
	case "", "LOCAL":
		return time.Local, nil
	case "UTC", "GMT", "ETC/UTC":
		return time.UTC, nil
	}

	if loc, err := time.LoadLocation(tz); err == nil {
		return loc, nil
	}

	offset := tz
	if len(offset) >= 3 && strings.EqualFold(offset[:3], "UTC") {
		offset = strings.TrimSpace(offset[3:])
	}
	sec, err := offsetSeconds(offset)
	if err != nil {
		return nil, fmt.Errorf("unsupported timezone %q: %w", tz, err)
	}
	return time.FixedZone(offsetName(sec), sec), nil
}

func offsetSeconds(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	sign := 1
	switch s[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return 0, fmt.Errorf("offset must start with + or -")
	}

	hh, mm, hasMinutes := strings.Cut(s[1:], ":")
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("parse hours: %w", err)
	}
	m := 0
	if hasMinutes {
		if m, err = strconv.Atoi(mm); err != nil {
			return 0, fmt.Errorf("parse minutes: %w", err)
		}
	}
	if h < 0 || h > 14 || m < 0 || m >= 60 {
		return 0, fmt.Errorf("offset out of range")
	}
	return sign * (h*3600 + m*60), nil
}

func offsetName(sec int) string {
	sign := '+'
	if sec < 0 {
		sign = '-'
		sec = -sec
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, sec/3600, (sec%3600)/60)
}
