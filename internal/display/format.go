// Package display renders timestamps and durations into the fixed strings the
// panel shows.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const (
	Unknown         = "unknown"
	TimestampLayout = "2006-01-02 15:04:05"
)

// Formatter renders timestamps in a fixed location.
type Formatter struct {
	loc *time.Location
}

func NewFormatter(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{loc: loc}
}

// NewFormatterForZone resolves an IANA zone name ("Local" and "" mean the
// process location).
func NewFormatterForZone(zone string) (*Formatter, error) {
	if zone == "" || strings.EqualFold(zone, "local") {
		return NewFormatter(time.Local), nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, err
	}
	return NewFormatter(loc), nil
}

// FormatTimestamp returns Unknown for an empty or unparseable value.
func (f *Formatter) FormatTimestamp(value string) string {
	if strings.TrimSpace(value) == "" {
		return Unknown
	}
	t, err := ParseTimestamp(value)
	if err != nil {
		return Unknown
	}
	return t.In(f.loc).Format(TimestampLayout)
}

// ParseTimestamp accepts the formats the control plane has used over time.
// Values without a zone are read as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	return dateparse.ParseIn(strings.TrimSpace(value), time.UTC)
}

// FormatDuration renders milliseconds as "<H>h <M>m <S>s", rounded to the
// nearest second. Negative input renders as zero.
func FormatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	secs := (ms + 500) / 1000
	return fmt.Sprintf("%dh %dm %ds", secs/3600, (secs%3600)/60, secs%60)
}
