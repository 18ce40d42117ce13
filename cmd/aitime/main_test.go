package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd, err := newRootCmd()
	require.NoError(t, err)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), err
}

func TestParseCmd_Text(t *testing.T) {
	out, err := run(t, "parse", "--timezone", "UTC", "--ref", "2026-01-27T10:00:00Z", "明天下午3点")
	require.NoError(t, err)
	assert.Equal(t, "明天下午3点\t2026-01-28T15:00:00Z\t2026-01-28T16:00:00Z\tDay | HalfDay | Hour\n", out)
}

func TestParseCmd_JSON(t *testing.T) {
	out, err := run(t, "parse", "--timezone", "UTC", "--ref", "2026-01-27T10:00:00Z", "--json", "2026-01-28", "现在")
	require.NoError(t, err)

	var results []parseOutput
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)

	assert.Equal(t, uint16(11), results[0].Accuracy)
	assert.Equal(t, 1, results[0].DateTime)
	assert.True(t, results[0].HasDate)
	assert.False(t, results[0].HasTime)

	assert.Equal(t, uint16(256), results[1].Accuracy)
	assert.Equal(t, "Now", results[1].Fields)
	assert.Equal(t, 2, results[1].DateTime)
}

func TestParseCmd_Errors(t *testing.T) {
	_, err := run(t, "parse", "--timezone", "UTC", "随便什么")
	assert.ErrorContains(t, err, "UNPARSEABLE_TIME")

	_, err = run(t, "parse", "--timezone", "Mars/Olympus", "明天")
	assert.ErrorContains(t, err, "invalid timezone")

	_, err = run(t, "parse", "--ref", "yesterday", "明天")
	assert.ErrorContains(t, err, "parse --ref")
}

func TestLabelsCmd(t *testing.T) {
	out, err := run(t, "labels")
	require.NoError(t, err)
	assert.Contains(t, out, "tonight")
	assert.Contains(t, out, "HalfDay")
	assert.Contains(t, out, "256")
}
