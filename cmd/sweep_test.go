package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/vvpsim/sim"
	"github.com/inference-sim/vvpsim/sim/sweep"
)

func TestWriteSweepCSV_HeaderAndRows(t *testing.T) {
	points := []sweep.Point{
		{Value: 100, Mean: 1500.5, Completion: sim.Distribution{P50: 1400, P90: 1700, P99: 1800, Max: 1900}},
		{Value: 200, Mean: 1184, Completion: sim.Distribution{P50: 1184, P90: 1184, P99: 1184, Max: 1184}},
	}
	var buf bytes.Buffer

	require.NoError(t, writeSweepCSV(&buf, sweep.ParamInterarrival, points))

	want := "interarrival,mean_completion,p50,p90,p99,max\n" +
		"100,1500.50,1400,1700,1800,1900\n" +
		"200,1184.00,1184,1184,1184,1184\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteSweepTable_OneLinePerPoint(t *testing.T) {
	points := []sweep.Point{{Value: 1}, {Value: 2}, {Value: 3}}
	var buf bytes.Buffer

	writeSweepTable(&buf, sweep.ParamCores, points)

	assert.Equal(t, 4, bytes.Count(buf.Bytes(), []byte("\n")))
	assert.Contains(t, buf.String(), "cores")
}
