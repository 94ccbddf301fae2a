package v2oss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeQuery_Build(t *testing.T) {
	q := RangeQuery{
		Bucket:      "weather",
		Measurement: "weather_logs",
		Columns:     []string{"city", "temperature"},
		Limit:       50,
	}

	flux, err := q.Build()
	require.NoError(t, err)

	want := `from(bucket: "weather")
  |> range(start: 0)
  |> filter(fn: (r) => r["_measurement"] == "weather_logs")
  |> pivot(rowKey: ["_time"], columnKey: ["_field"], valueColumn: "_value")
  |> group()
  |> keep(columns: ["_time", "city", "temperature"])
  |> sort(columns: ["_time"], desc: true)
  |> limit(n: 50)`
	assert.Equal(t, want, flux)
}

func TestRangeQuery_QuotesInput(t *testing.T) {
	flux, err := RangeQuery{Bucket: `we"ird`, Measurement: "m", Start: "-7d"}.Build()
	require.NoError(t, err)
	assert.Contains(t, flux, `from(bucket: "we\"ird")`)
	assert.Contains(t, flux, "range(start: -7d)")
	assert.NotContains(t, flux, "limit(")
	assert.NotContains(t, flux, "keep(")
}

func TestRangeQuery_Validation(t *testing.T) {
	_, err := RangeQuery{Measurement: "m"}.Build()
	assert.Error(t, err)
	_, err = RangeQuery{Bucket: "b"}.Build()
	assert.Error(t, err)
}
