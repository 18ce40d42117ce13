package accuracy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlag_Values(t *testing.T) {
	assert.Equal(t, Flag(1), Year)
	assert.Equal(t, Flag(2), Month)
	assert.Equal(t, Flag(4), Week)
	assert.Equal(t, Flag(8), Day)
	assert.Equal(t, Flag(16), HalfDay)
	assert.Equal(t, Flag(32), Hour)
	assert.Equal(t, Flag(64), Min)
	assert.Equal(t, Flag(128), Sec)
	assert.Equal(t, Flag(256), Now)
	assert.Equal(t, Flag(15), Date)
	assert.Equal(t, Flag(496), Time)
}

func TestContext_YearThenNow(t *testing.T) {
	ctx := NewContext(0)

	require.NoError(t, ctx.UpdateLabels("year"))
	assert.Equal(t, Flag(1), ctx.Accuracy())
	assert.True(t, ctx.HasDate())
	assert.False(t, ctx.HasTime())
	assert.Equal(t, 1, ctx.DateTimeFlag())

	require.NoError(t, ctx.UpdateLabels("now"))
	assert.Equal(t, Flag(257), ctx.Accuracy())
	assert.True(t, ctx.HasDate())
	assert.True(t, ctx.HasTime())
	assert.Equal(t, 3, ctx.DateTimeFlag())
}

func TestContext_UnknownLabel(t *testing.T) {
	ctx := NewContext(Day)

	err := ctx.UpdateLabels("bogus_unit")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownLabel))
	assert.Contains(t, err.Error(), "bogus_unit")
	assert.Equal(t, Day, ctx.Accuracy())

	// No partial application before the failing label.
	err = ctx.UpdateLabels("hour", "bogus_unit", "minute")
	require.Error(t, err)
	assert.Equal(t, Day, ctx.Accuracy())
}

func TestContext_LabelSynonyms(t *testing.T) {
	tests := []struct {
		labels []string
		want   Flag
	}{
		{[]string{"year", "years"}, Year},
		{[]string{"month", "months"}, Month},
		{[]string{"week", "weeks"}, Week},
		{[]string{"day", "days"}, Day},
		{[]string{"halfday", "morning", "afternoon", "evening", "night", "tonight", "midnight"}, HalfDay},
		{[]string{"hour", "hours"}, Hour},
		{[]string{"min", "mins", "minute", "minutes"}, Min},
		{[]string{"sec", "secs", "second", "seconds"}, Sec},
		{[]string{"now"}, Now},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			for _, label := range tt.labels {
				f, err := ParseLabel(label)
				require.NoError(t, err, label)
				assert.Equal(t, tt.want, f, label)
			}
		})
	}
}

func TestContext_UpdateIsUnion(t *testing.T) {
	a := NewContext(0)
	a.Update(Hour, Min, Hour, Day)

	b := NewContext(0)
	b.Update(Day)
	b.Update(Min)
	b.Update(Hour)
	b.Update(Min)

	assert.Equal(t, Day|Hour|Min, a.Accuracy())
	assert.True(t, a.Equal(b))
}

func TestContext_Merge(t *testing.T) {
	parent := NewContext(Year)
	child := NewContext(Month | Day)

	parent.Merge(child)
	assert.Equal(t, Year|Month|Day, parent.Accuracy())
	assert.Equal(t, Month|Day, child.Accuracy())

	viaUpdate := NewContext(Year)
	viaUpdate.Update(child.Accuracy())
	assert.True(t, parent.Equal(viaUpdate))

	// Merging never clears bits.
	parent.Merge(NewContext(0))
	parent.Merge(nil)
	assert.Equal(t, Year|Month|Day, parent.Accuracy())
}

func TestContext_MergeCommutes(t *testing.T) {
	x, y, z := NewContext(Year), NewContext(HalfDay), NewContext(Sec|Day)

	left := NewContext(0)
	left.Merge(x)
	left.Merge(y)
	left.Merge(z)

	right := NewContext(0)
	right.Merge(z)
	right.Merge(x)
	right.Merge(y)

	assert.True(t, left.Equal(right))
}

func TestContext_Equal(t *testing.T) {
	byLabels := NewContext(0)
	require.NoError(t, byLabels.UpdateLabels("year", "month"))

	assert.True(t, byLabels.Equal(NewContext(Year|Month)))
	assert.False(t, byLabels.Equal(NewContext(Year)))
	assert.False(t, byLabels.Equal(nil))
}

func TestContext_Queries(t *testing.T) {
	tests := []struct {
		name     string
		mask     Flag
		hasDate  bool
		hasTime  bool
		hasAny   bool
		flagCode int
	}{
		{"empty", 0, false, false, false, 0},
		{"week", Week, true, false, true, 1},
		{"halfday", HalfDay, false, true, true, 2},
		{"now", Now, false, true, true, 2},
		{"day and hour", Day | Hour, true, true, true, 3},
		{"all", Date | Time, true, true, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext(tt.mask)
			assert.Equal(t, tt.hasDate, ctx.HasDate())
			assert.Equal(t, tt.hasTime, ctx.HasTime())
			assert.Equal(t, tt.hasAny, ctx.HasDateOrTime())
			assert.Equal(t, tt.flagCode, ctx.DateTimeFlag())
		})
	}
}

func TestContext_String(t *testing.T) {
	assert.Equal(t, "Context()", NewContext(0).String())
	assert.Equal(t, "Context(accuracy=Year)", NewContext(Year).String())
	assert.Equal(t, "Context(accuracy=Year | HalfDay | Now)", NewContext(Now|Year|HalfDay).String())
	assert.Equal(t, "Month | Min", (Min | Month).String())
}

func TestLabels(t *testing.T) {
	labels := Labels()
	assert.Len(t, labels, 26)
	assert.IsIncreasing(t, labels)
	assert.Contains(t, labels, "tonight")
}
