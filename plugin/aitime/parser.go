package aitime

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/aitime/plugin/aitime/accuracy"
)

// Patterns for time parsing
var (
	// Arabic number patterns
	numberPattern  = regexp.MustCompile(`(\d+)`)
	minutePattern  = regexp.MustCompile(`(\d+)\s*分`)
	hourMinPattern = regexp.MustCompile(`(\d{1,2})[:\s时点](\d{1,2})`)

	// Relative time patterns
	relativePattern = regexp.MustCompile(`(\d+)\s*(小时|分钟|天|周|月)(后|前)`)

	// Weekday patterns
	weekdayPattern     = regexp.MustCompile(`(?:这|本)?周([一二三四五六日天])`)
	nextWeekdayPattern = regexp.MustCompile(`下周([一二三四五六日天])`)
	lastWeekdayPattern = regexp.MustCompile(`上周([一二三四五六日天])`)
)

// standardFormats lists layouts with the accuracy each one establishes.
var standardFormats = []struct {
	layout   string
	accuracy accuracy.Flag
}{
	{time.RFC3339, accuracy.Year | accuracy.Month | accuracy.Day | accuracy.Hour | accuracy.Min | accuracy.Sec},
	{"2006-01-02T15:04:05", accuracy.Year | accuracy.Month | accuracy.Day | accuracy.Hour | accuracy.Min | accuracy.Sec},
	{"2006-01-02 15:04:05", accuracy.Year | accuracy.Month | accuracy.Day | accuracy.Hour | accuracy.Min | accuracy.Sec},
	{"2006-01-02 15:04", accuracy.Year | accuracy.Month | accuracy.Day | accuracy.Hour | accuracy.Min},
	{"2006-01-02", accuracy.Year | accuracy.Month | accuracy.Day},
	{"2006-1-2 15:04", accuracy.Year | accuracy.Month | accuracy.Day | accuracy.Hour | accuracy.Min},
	{"2006-1-2", accuracy.Year | accuracy.Month | accuracy.Day},
	{"2006/01/02 15:04:05", accuracy.Year | accuracy.Month | accuracy.Day | accuracy.Hour | accuracy.Min | accuracy.Sec},
	{"2006/01/02 15:04", accuracy.Year | accuracy.Month | accuracy.Day | accuracy.Hour | accuracy.Min},
	{"2006/01/02", accuracy.Year | accuracy.Month | accuracy.Day},
	{"2006年01月02日 15:04", accuracy.Year | accuracy.Month | accuracy.Day | accuracy.Hour | accuracy.Min},
	{"2006年01月02日", accuracy.Year | accuracy.Month | accuracy.Day},
	{"2006年1月2日 15:04", accuracy.Year | accuracy.Month | accuracy.Day | accuracy.Hour | accuracy.Min},
	{"2006年1月2日", accuracy.Year | accuracy.Month | accuracy.Day},
	{"01/02/2006", accuracy.Year | accuracy.Month | accuracy.Day},
	{"15:04:05", accuracy.Hour | accuracy.Min | accuracy.Sec},
	{"15:04", accuracy.Hour | accuracy.Min},
}

// relativeUnitLabels maps relative-offset units to accuracy labels.
var relativeUnitLabels = map[string]string{
	"小时": "hours",
	"分钟": "minutes",
	"天":  "days",
	"周":  "weeks",
	"月":  "months",
}

// relDateOffsets maps relative date keywords to day offsets.
// Longer keywords come first so "大后天" is not read as "后天".
var relDateOffsets = []struct {
	keyword string
	offset  int
}{
	{"大后天", 3},
	{"今天", 0},
	{"明天", 1},
	{"后天", 2},
	{"昨天", -1},
	{"前天", -2},
}

// periodHours maps time period keywords to typical hours and the
// accuracy label they stand for.
var periodHours = []struct {
	keyword string
	hour    int
	label   string
}{
	{"早上", 7, "morning"},
	{"上午", 9, "morning"},
	{"中午", 12, "halfday"},
	{"下午", 14, "afternoon"},
	{"傍晚", 17, "evening"},
	{"晚上", 19, "evening"},
	{"夜里", 22, "night"},
	{"凌晨", 2, "midnight"},
}

// nowKeywords are inputs meaning the reference time itself.
var nowKeywords = map[string]bool{
	"现在": true,
	"此刻": true,
	"now": true,
}

// chineseNums maps Chinese numbers to integers (ordered by length for correct matching).
var chineseNums = []struct {
	pattern string
	value   int
}{
	{"二十四", 24},
	{"二十三", 23},
	{"二十二", 22},
	{"二十一", 21},
	{"二十", 20},
	{"十九", 19},
	{"十八", 18},
	{"十七", 17},
	{"十六", 16},
	{"十五", 15},
	{"十四", 14},
	{"十三", 13},
	{"十二", 12},
	{"十一", 11},
	{"十", 10},
	{"九", 9},
	{"八", 8},
	{"七", 7},
	{"六", 6},
	{"五", 5},
	{"四", 4},
	{"三", 3},
	{"二", 2},
	{"两", 2},
	{"一", 1},
}

// weekdayMap maps Chinese weekday names to time.Weekday offset from Monday.
var weekdayMap = map[string]int{
	"一": 0, // Monday
	"二": 1,
	"三": 2,
	"四": 3,
	"五": 4,
	"六": 5,
	"日": 6,
	"天": 6,
}

// Result is a parsed time together with the accuracy the input supported.
type Result struct {
	Time     time.Time
	Accuracy accuracy.Flag
}

// Parser parses natural language time expressions.
//
// A Parser is safe for concurrent use: accuracy frames are kept per
// goroutine.
type Parser struct {
	timezone *time.Location
	now      func() time.Time
	frames   *accuracy.Stack
}

// NewParser creates a new time parser with the given timezone.
func NewParser(timezone *time.Location) *Parser {
	return newParserAt(timezone, time.Now)
}

func newParserAt(timezone *time.Location, now func() time.Time) *Parser {
	if timezone == nil {
		timezone = time.Local
	}
	return &Parser{
		timezone: timezone,
		now:      now,
		frames:   accuracy.NewStack(),
	}
}

// WithTimezone returns a new parser with the given timezone.
func (p *Parser) WithTimezone(tz *time.Location) *Parser {
	return newParserAt(tz, p.now)
}

// Parse parses a time expression and returns the parsed time.
func (p *Parser) Parse(input string) (time.Time, error) {
	r, err := p.ParseWithAccuracy(input)
	return r.Time, err
}

// ParseWithAccuracy parses a time expression and reports which fields
// of the result came from the input rather than from the reference time.
func (p *Parser) ParseWithAccuracy(input string) (Result, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Result{}, errors.New("empty input")
	}

	p.frames.Push(accuracy.NewContext(0))
	defer p.frames.Pop()

	t, err := p.parse(input)
	if err != nil {
		return Result{}, err
	}

	top, err := p.frames.Peek()
	if err != nil {
		return Result{}, err
	}
	return Result{Time: t, Accuracy: top.Accuracy()}, nil
}

func (p *Parser) parse(input string) (time.Time, error) {
	now := p.now().In(p.timezone)

	if t, ok := p.tryNow(input, now); ok {
		return t, nil
	}

	// Try standard formats first
	if t, ok := p.tryStandardFormats(input, now); ok {
		return t, nil
	}

	// Try relative time (e.g., "1小时后")
	if t, ok := p.tryRelativeTime(input, now); ok {
		return t, nil
	}

	// Parse Chinese expressions
	return p.parseChineseTime(input, now)
}

// enter opens a child frame for one recognizer.
func (p *Parser) enter() *accuracy.Context {
	ctx := accuracy.NewContext(0)
	p.frames.Push(ctx)
	return ctx
}

// leave closes the current frame. A matched frame is merged into its
// parent; an unmatched one is discarded.
func (p *Parser) leave(matched bool) {
	child, ok := p.frames.Pop()
	if !ok || !matched {
		return
	}
	if parent, err := p.frames.Peek(); err == nil {
		parent.Merge(child)
	}
}

func (p *Parser) tryNow(input string, now time.Time) (t time.Time, ok bool) {
	frame := p.enter()
	defer func() { p.leave(ok) }()

	if !nowKeywords[strings.ToLower(input)] {
		return time.Time{}, false
	}
	frame.Update(accuracy.Now)
	return now, true
}

// tryStandardFormats attempts to parse standard date/time formats.
func (p *Parser) tryStandardFormats(input string, now time.Time) (t time.Time, ok bool) {
	frame := p.enter()
	defer func() { p.leave(ok) }()

	for _, f := range standardFormats {
		parsed, err := time.ParseInLocation(f.layout, input, p.timezone)
		if err != nil {
			continue
		}
		frame.Update(f.accuracy)
		// If only time, use today's date
		if !f.accuracy.Has(accuracy.Date) {
			return time.Date(now.Year(), now.Month(), now.Day(),
				parsed.Hour(), parsed.Minute(), parsed.Second(), 0, p.timezone), true
		}
		return parsed, true
	}

	return time.Time{}, false
}

// tryRelativeTime parses relative time expressions like "1小时后".
func (p *Parser) tryRelativeTime(input string, now time.Time) (t time.Time, ok bool) {
	frame := p.enter()
	defer func() { p.leave(ok) }()

	matches := relativePattern.FindStringSubmatch(input)
	if len(matches) != 4 {
		return time.Time{}, false
	}

	n, _ := strconv.Atoi(matches[1])
	unit := matches[2]
	direction := matches[3]
	if direction == "前" {
		n = -n
	}

	if err := frame.UpdateLabels(relativeUnitLabels[unit]); err != nil {
		return time.Time{}, false
	}

	switch unit {
	case "小时":
		return now.Add(time.Duration(n) * time.Hour), true
	case "分钟":
		return now.Add(time.Duration(n) * time.Minute), true
	case "天":
		return now.AddDate(0, 0, n), true
	case "周":
		return now.AddDate(0, 0, 7*n), true
	case "月":
		return now.AddDate(0, n, 0), true
	}
	return time.Time{}, false
}

// parseChineseTime parses Chinese time expressions.
func (p *Parser) parseChineseTime(input string, now time.Time) (time.Time, error) {
	result := now

	// Parse date part
	dateModified := false

	// Check relative dates (今天/明天/后天/昨天)
	if d, ok := p.parseRelativeDate(input, now); ok {
		result = d
		dateModified = true
	}

	// Check weekday patterns
	if !dateModified {
		if weekday, ok := p.parseWeekday(input, now); ok {
			result = weekday
			dateModified = true
		}
	}

	// Parse time part
	hour, minute, timeFound := p.parseTimePart(input)

	if timeFound {
		result = time.Date(result.Year(), result.Month(), result.Day(),
			hour, minute, 0, 0, p.timezone)
		return result, nil
	}

	// If only date was found, default to 9:00
	if dateModified {
		result = time.Date(result.Year(), result.Month(), result.Day(),
			9, 0, 0, 0, p.timezone)
		return result, nil
	}

	return time.Time{}, errors.Errorf("unable to parse time: %s", input)
}

func (p *Parser) parseRelativeDate(input string, now time.Time) (t time.Time, ok bool) {
	frame := p.enter()
	defer func() { p.leave(ok) }()

	for _, rd := range relDateOffsets {
		if strings.Contains(input, rd.keyword) {
			frame.Update(accuracy.Day)
			return now.AddDate(0, 0, rd.offset), true
		}
	}
	return time.Time{}, false
}

// parseWeekday parses weekday expressions.
func (p *Parser) parseWeekday(input string, now time.Time) (t time.Time, ok bool) {
	frame := p.enter()
	defer func() { p.leave(ok) }()

	// Current weekday (Monday = 0)
	currentWeekday := int(now.Weekday())
	if currentWeekday == 0 {
		currentWeekday = 7
	}
	currentWeekday-- // Convert to Monday = 0

	var diff int
	// Next week - check FIRST to avoid matching "周X" in "下周X"
	if matches := nextWeekdayPattern.FindStringSubmatch(input); len(matches) > 1 {
		// Days until next Monday + target weekday
		diff = 7 - currentWeekday + weekdayMap[matches[1]]
	} else if matches := lastWeekdayPattern.FindStringSubmatch(input); len(matches) > 1 {
		// Go back to last Monday, then add target weekday
		diff = -(currentWeekday + 7) + weekdayMap[matches[1]]
	} else if matches := weekdayPattern.FindStringSubmatch(input); len(matches) > 1 {
		diff = weekdayMap[matches[1]] - currentWeekday
	} else {
		return time.Time{}, false
	}

	frame.Update(accuracy.Day)
	return now.AddDate(0, 0, diff), true
}

// parseTimePart parses the time part of an expression.
func (p *Parser) parseTimePart(input string) (hour, minute int, found bool) {
	frame := p.enter()
	defer func() { p.leave(found) }()

	hour = -1
	minute = 0
	clock := false

	// Try HH:MM format
	if matches := hourMinPattern.FindStringSubmatch(input); len(matches) > 2 {
		h, _ := strconv.Atoi(matches[1])
		m, _ := strconv.Atoi(matches[2])
		if h >= 0 && h <= 24 && m >= 0 && m < 60 {
			hour, minute, clock = h, m, true
			frame.Update(accuracy.Min)
		}
	}

	// Try Chinese hour (X点)
	if hour == -1 {
		for _, cn := range chineseNums {
			if strings.Contains(input, cn.pattern+"点") {
				hour = cn.value
				break
			}
		}
	}

	// Try Arabic number + 点
	if hour == -1 {
		matches := numberPattern.FindAllStringSubmatch(input, -1)
		for _, m := range matches {
			if len(m) > 1 {
				h, _ := strconv.Atoi(m[1])
				if h >= 0 && h <= 24 && strings.Contains(input, m[1]+"点") {
					hour = h
					break
				}
			}
		}
	}

	period, hasPeriod := p.parsePeriod(input, frame)

	if hour != -1 {
		frame.Update(accuracy.Hour)
	}

	// Apply AM/PM modifiers
	if hour != -1 && hour <= 12 {
		hasPMModifier := strings.Contains(input, "下午") || strings.Contains(input, "晚上") ||
			strings.Contains(input, "傍晚") || strings.Contains(input, "夜里")
		hasAMModifier := strings.Contains(input, "上午") || strings.Contains(input, "早上") ||
			strings.Contains(input, "凌晨") || strings.Contains(input, "中午")

		// - With explicit PM modifier: always PM
		// - No modifier + hour 1-6: default to PM (13:00-18:00)
		// - hour 7-11 without modifier stays as AM, 12 stays as noon
		if hasPMModifier {
			if hour < 12 {
				hour += 12
			}
		} else if !hasAMModifier && hour >= 1 && hour <= 6 {
			hour += 12
		}
	}

	// Parse minutes unless HH:MM supplied them
	if !clock {
		if matches := minutePattern.FindStringSubmatch(input); len(matches) > 1 {
			minute, _ = strconv.Atoi(matches[1])
			frame.Update(accuracy.Min)
		} else if strings.Contains(input, "半") {
			minute = 30
			frame.Update(accuracy.Min)
		}
	}

	// If only period keyword, use default hour
	if hour == -1 && hasPeriod {
		hour = period
	}

	return hour, minute, hour != -1
}

// parsePeriod finds a period keyword such as "下午" and records the
// half-day accuracy it implies in frame.
func (p *Parser) parsePeriod(input string, frame *accuracy.Context) (int, bool) {
	for _, ph := range periodHours {
		if strings.Contains(input, ph.keyword) {
			if err := frame.UpdateLabels(ph.label); err != nil {
				return 0, false
			}
			return ph.hour, true
		}
	}
	return 0, false
}
