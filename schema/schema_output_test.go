package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/lushalytics/dateplot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSampleSizeLabel(t *testing.T) {
	tests := []struct {
		name     string
		size     int64
		expected string
	}{
		{"Zero", 0, schema.SmallSample},
		{"Small Upper", 1000, schema.SmallSample},
		{"Medium Lower", 1001, schema.MediumSample},
		{"Medium Upper", 10000, schema.MediumSample},
		{"Large Lower", 10001, schema.LargeSample},
		{"Negative", -5, schema.SmallSample}, // Edge case
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schema.GetSampleSizeLabel(tt.size))
		})
	}
}

func TestSampleSizeLegendCoversBands(t *testing.T) {
	for _, band := range []string{schema.SmallSample, schema.MediumSample, schema.LargeSample} {
		assert.NotEmpty(t, schema.SampleSizeLegend[band], band)
	}
}

func TestPointJSONNoData(t *testing.T) {
	p := schema.Point{Y: schema.NoData}
	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"y":null`)

	var back schema.Point
	require.NoError(t, json.Unmarshal(b, &back))
	assert.False(t, back.Y.Valid)
}
