// Package accuracy records which calendrical fields a time parse was
// accurate to, and keeps a per-goroutine stack of parsing frames.
package accuracy

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Flag is a bitmask of matched granularities.
// The numeric values are stable; persisted masks depend on them.
type Flag uint16

const (
	// Year - "next year", "2014"
	Year Flag = 1 << iota
	// Month - "March", "下个月"
	Month
	// Week - "last week", "下周"
	Week
	// Day - "tomorrow", "明天"
	Day
	// HalfDay - "morning", "tonight", "下午"
	HalfDay
	// Hour - "18:00", "3点"
	Hour
	// Min - "18:32", "30分"
	Min
	// Sec - "18:32:55"
	Sec
	// Now - "now", "现在"
	Now
)

const (
	// Date is any date-level granularity.
	Date = Year | Month | Week | Day
	// Time is any time-of-day granularity.
	Time = HalfDay | Hour | Min | Sec | Now
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{Year, "Year"},
	{Month, "Month"},
	{Week, "Week"},
	{Day, "Day"},
	{HalfDay, "HalfDay"},
	{Hour, "Hour"},
	{Min, "Min"},
	{Sec, "Sec"},
	{Now, "Now"},
}

// labelFlags maps natural-language unit names onto flags.
var labelFlags = map[string]Flag{
	"year":      Year,
	"years":     Year,
	"month":     Month,
	"months":    Month,
	"week":      Week,
	"weeks":     Week,
	"day":       Day,
	"days":      Day,
	"halfday":   HalfDay,
	"morning":   HalfDay,
	"afternoon": HalfDay,
	"evening":   HalfDay,
	"night":     HalfDay,
	"tonight":   HalfDay,
	"midnight":  HalfDay,
	"hour":      Hour,
	"hours":     Hour,
	"min":       Min,
	"minute":    Min,
	"mins":      Min,
	"minutes":   Min,
	"sec":       Sec,
	"second":    Sec,
	"secs":      Sec,
	"seconds":   Sec,
	"now":       Now,
}

// ParseLabel resolves a unit label such as "minutes" or "tonight".
func ParseLabel(label string) (Flag, error) {
	f, ok := labelFlags[label]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownLabel, "%q", label)
	}
	return f, nil
}

// Labels returns every accepted label, sorted.
func Labels() []string {
	out := make([]string, 0, len(labelFlags))
	for label := range labelFlags {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// Has reports whether any bit of mask is set in f.
func (f Flag) Has(mask Flag) bool {
	return f&mask != 0
}

// String joins the names of the set bits with " | ".
func (f Flag) String() string {
	var names []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, " | ")
}
