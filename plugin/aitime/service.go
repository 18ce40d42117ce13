package aitime

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	aierrors "github.com/hrygo/aitime/internal/errors"
	"github.com/hrygo/aitime/internal/observability"
	"github.com/hrygo/aitime/internal/timezone"
	"github.com/hrygo/aitime/plugin/aitime/accuracy"
)

// DefaultBatchLimit bounds concurrent parses in ParseBatch.
const DefaultBatchLimit = 8

// Service implements TimeService with rule-based parsing.
type Service struct {
	defaultTimezone *time.Location
	logger          *slog.Logger
	batchLimit      int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for parse traces.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBatchLimit sets the ParseBatch concurrency limit.
func WithBatchLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchLimit = n
		}
	}
}

// NewService creates a new time service.
func NewService(defaultTimezone string, opts ...Option) *Service {
	s := &Service{
		defaultTimezone: timezone.Resolve(defaultTimezone, time.Local),
		logger:          slog.Default(),
		batchLimit:      DefaultBatchLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Normalize standardizes time expressions.
func (s *Service) Normalize(ctx context.Context, input string, tz string) (time.Time, error) {
	loc := timezone.Resolve(tz, s.defaultTimezone)

	trace := s.trace(ctx, input, loc)
	if err := ctx.Err(); err != nil {
		return time.Time{}, aierrors.ContextCanceled(err)
	}

	r, err := NewParser(loc).ParseWithAccuracy(input)
	if err != nil {
		return time.Time{}, s.fail(trace, input, err)
	}
	trace.Debug("normalized time expression",
		slog.String(observability.LogFieldAccuracy, r.Accuracy.String()),
		trace.DurationAttr())
	return r.Time, nil
}

// ParseNaturalTime parses natural language time expressions.
func (s *Service) ParseNaturalTime(ctx context.Context, input string, reference time.Time) (TimeRange, error) {
	return s.parseRange(ctx, referenceParser(reference), input, reference)
}

// ParseBatch parses inputs concurrently through a single parser.
// The first failure cancels the remaining work.
func (s *Service) ParseBatch(ctx context.Context, inputs []string, reference time.Time) ([]TimeRange, error) {
	parser := referenceParser(reference)
	out := make([]TimeRange, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchLimit)
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			tr, err := s.parseRange(gctx, parser, input, reference)
			if err != nil {
				return errors.Wrapf(err, "batch item %d", i)
			}
			out[i] = tr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// referenceParser creates a parser that treats reference as "now".
func referenceParser(reference time.Time) *Parser {
	return newParserAt(reference.Location(), func() time.Time { return reference })
}

func (s *Service) parseRange(ctx context.Context, parser *Parser, input string, reference time.Time) (TimeRange, error) {
	trace := s.trace(ctx, input, reference.Location())
	if err := ctx.Err(); err != nil {
		return TimeRange{}, aierrors.ContextCanceled(err)
	}

	// First try to parse as a time range keyword
	tr, ok := s.parseRangeKeyword(strings.TrimSpace(input), reference)
	if !ok {
		r, err := parser.ParseWithAccuracy(input)
		if err != nil {
			return TimeRange{}, s.fail(trace, input, err)
		}
		// For specific times, default to 1-hour duration
		tr = TimeRange{Start: r.Time, End: r.Time.Add(time.Hour), Accuracy: r.Accuracy}
	}

	trace.Debug("parsed time range",
		slog.String(observability.LogFieldAccuracy, tr.Accuracy.String()),
		trace.DurationAttr())
	return tr, nil
}

// parseRangeKeyword parses time range keywords like "今天", "这周".
func (s *Service) parseRangeKeyword(input string, ref time.Time) (TimeRange, bool) {
	loc := ref.Location()
	dayStart := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc)

	// Day ranges
	dayRanges := map[string]int{
		"今天": 0,
		"明天": 1,
		"后天": 2,
		"昨天": -1,
		"前天": -2,
	}

	for keyword, offset := range dayRanges {
		if input == keyword || input == keyword+"的" {
			start := dayStart.AddDate(0, 0, offset)
			return TimeRange{Start: start, End: start.AddDate(0, 0, 1), Accuracy: accuracy.Day}, true
		}
	}

	// Week ranges
	weekday := int(ref.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	mondayOffset := -(weekday - 1)

	weekRanges := map[string]int{
		"这周":  0,
		"本周":  0,
		"这个周": 0,
		"下周":  7,
		"下一周": 7,
		"上周":  -7,
		"上一周": -7,
	}

	if offset, ok := weekRanges[input]; ok {
		monday := dayStart.AddDate(0, 0, mondayOffset+offset)
		return TimeRange{Start: monday, End: monday.AddDate(0, 0, 7), Accuracy: accuracy.Week}, true
	}

	// Month ranges
	monthStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)

	switch input {
	case "这个月", "本月":
		return TimeRange{Start: monthStart, End: monthStart.AddDate(0, 1, 0), Accuracy: accuracy.Month}, true
	case "下个月", "下月":
		start := monthStart.AddDate(0, 1, 0)
		return TimeRange{Start: start, End: start.AddDate(0, 1, 0), Accuracy: accuracy.Month}, true
	case "上个月", "上月":
		start := monthStart.AddDate(0, -1, 0)
		return TimeRange{Start: start, End: monthStart, Accuracy: accuracy.Month}, true
	}

	return TimeRange{}, false
}

func (s *Service) trace(ctx context.Context, input string, loc *time.Location) *observability.ParseTrace {
	if trace, ok := observability.FromContext(ctx); ok {
		return trace
	}
	return observability.NewParseTrace(s.logger, input, loc.String())
}

func (s *Service) fail(trace *observability.ParseTrace, input string, cause error) error {
	var err *aierrors.TimeError
	if strings.TrimSpace(input) == "" {
		err = aierrors.InvalidArgument("empty input")
	} else {
		err = aierrors.UnparseableTime(input, cause)
	}
	trace.Warn("time expression not understood",
		slog.String(observability.LogFieldErrorCode, string(err.Code)),
		trace.DurationAttr())
	return err
}

// Ensure Service implements TimeService
var _ TimeService = (*Service)(nil)
