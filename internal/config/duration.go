package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration parses "10s", "5m" or a bare number of seconds (e.g. "10" -> 10s).
type Duration time.Duration

// UnmarshalEnvironment implements cleanenv.Setter
func (d *Duration) UnmarshalEnvironment(data string) error {
	v, err := parseDuration(data)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// UnmarshalText lets yaml config files use the same notation
func (d *Duration) UnmarshalText(text []byte) error {
	return d.UnmarshalEnvironment(string(text))
}

// Duration returns the value as a time.Duration
func (d Duration) Duration() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && ((s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')) {
		s = s[1 : len(s)-1]
	}

	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	// bare number first so "10s" never reaches ParseInt
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("duration must be like 10s, 5m or a number of seconds: %w", err)
	}
	return d, nil
}
