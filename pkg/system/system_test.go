package system

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMemInfo(t *testing.T) {
	input := "MemTotal:       1000 kB\nMemFree:         100 kB\nMemAvailable:    250 kB\n"
	usage, err := parseMemInfo(strings.NewReader(input))
	require.NoError(t, err)
	assert.InDelta(t, 75.0, usage, 0.001)

	_, err = parseMemInfo(strings.NewReader("garbage\n"))
	assert.Error(t, err)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512B", FormatBytes(512))
	assert.Equal(t, "1.5KB", FormatBytes(1536))
	assert.Equal(t, "2.0MB", FormatBytes(2*1024*1024))
	assert.Equal(t, "1.0GB", FormatBytes(1024*1024*1024))
}

func TestCollect(t *testing.T) {
	s := Collect("")
	assert.Positive(t, s.GoroutineCount)
	assert.NotEmpty(t, s.AppMemory.CurrentAlloc)
	assert.Empty(t, s.DiskUsage)
}
