package v2oss

import (
	"fmt"
	"strconv"
	"strings"
)

// RangeQuery describes a pivoted read over one measurement
type RangeQuery struct {
	Bucket      string
	Measurement string
	Start       string // Flux duration or RFC3339, e.g. "0" or "-30d"
	Columns     []string
	Limit       int // 0 means no limit
}

// Build renders the Flux: newest rows first, one row per timestamp.
func (q RangeQuery) Build() (string, error) {
	if q.Bucket == "" {
		return "", fmt.Errorf("bucket is required")
	}
	if q.Measurement == "" {
		return "", fmt.Errorf("measurement is required")
	}
	start := q.Start
	if start == "" {
		start = "0"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "from(bucket: %s)\n", strconv.Quote(q.Bucket))
	fmt.Fprintf(&b, "  |> range(start: %s)\n", start)
	fmt.Fprintf(&b, "  |> filter(fn: (r) => r[\"_measurement\"] == %s)\n", strconv.Quote(q.Measurement))
	b.WriteString("  |> pivot(rowKey: [\"_time\"], columnKey: [\"_field\"], valueColumn: \"_value\")\n")
	b.WriteString("  |> group()\n")
	if len(q.Columns) > 0 {
		cols := make([]string, 0, len(q.Columns)+1)
		cols = append(cols, strconv.Quote("_time"))
		for _, c := range q.Columns {
			cols = append(cols, strconv.Quote(c))
		}
		fmt.Fprintf(&b, "  |> keep(columns: [%s])\n", strings.Join(cols, ", "))
	}
	b.WriteString("  |> sort(columns: [\"_time\"], desc: true)")
	if q.Limit > 0 {
		fmt.Fprintf(&b, "\n  |> limit(n: %d)", q.Limit)
	}
	return b.String(), nil
}
