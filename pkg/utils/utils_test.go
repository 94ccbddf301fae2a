package utils

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNow_UsesInjectedClock(t *testing.T) {
	fixed := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { SetClock(nil) })

	assert.True(t, Now().Equal(fixed))
	assert.Equal(t, "2024-03-10T12:00:00Z", FormatTime(Now()))
}

func TestInitTimezone(t *testing.T) {
	t.Cleanup(func() { _ = InitTimezone("") })

	require.NoError(t, InitTimezone("America/Sao_Paulo"))
	assert.Equal(t, "America/Sao_Paulo", Location().String())

	err := InitTimezone("Mars/Olympus")
	require.Error(t, err)
	assert.Equal(t, time.UTC, Location())
}

func TestRound(t *testing.T) {
	assert.Equal(t, 21.7, Round(21.66666, 1))
	assert.Equal(t, 22.0, Round(21.96, 1))
	assert.Equal(t, -3.3, Round(-3.25, 1))
	assert.Equal(t, -1.0, Round(-0.5, 0))
	assert.Equal(t, -3.0, Round(-2.5, 0))
	assert.Equal(t, 3.0, Round(2.5, 0))
	assert.Equal(t, 10.0, Round(10, 1))
}

func TestRecordID(t *testing.T) {
	id := CreateRecordID("1700000000", "abc-123")
	assert.NotContains(t, id, "=")
	assert.NotEqual(t, id, CreateRecordID("1700000000", "abc-124"))
}
