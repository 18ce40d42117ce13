// Package aitime provides the time parsing service used by AI agents.
// Every result carries the accuracy the input expression supported.
package aitime

import (
	"context"
	"time"

	"github.com/hrygo/aitime/plugin/aitime/accuracy"
)

// TimeService defines the time parsing service interface.
type TimeService interface {
	// Normalize standardizes time expressions.
	// Supports: "明天3点", "下午三点", "2026-1-28", "15:00"
	Normalize(ctx context.Context, input string, timezone string) (time.Time, error)

	// ParseNaturalTime parses natural language time expressions.
	// reference: reference time point (usually current time)
	ParseNaturalTime(ctx context.Context, input string, reference time.Time) (TimeRange, error)

	// ParseBatch parses several expressions against the same reference.
	// Results are returned in input order.
	ParseBatch(ctx context.Context, inputs []string, reference time.Time) ([]TimeRange, error)
}

// TimeRange represents a time range.
type TimeRange struct {
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Accuracy accuracy.Flag `json:"accuracy"`
}

// HasDate reports whether the range was anchored to an explicit date.
func (tr TimeRange) HasDate() bool {
	return tr.Accuracy.Has(accuracy.Date)
}

// HasTime reports whether the range was anchored to an explicit time of day.
func (tr TimeRange) HasTime() bool {
	return tr.Accuracy.Has(accuracy.Time)
}
