package utils

import (
	"encoding/base64"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

var (
	mu          sync.RWMutex
	appLocation = time.UTC
	clock       = clockwork.NewRealClock()
)

// InitTimezone sets the application timezone. An empty name means UTC.
func InitTimezone(timezone string) error {
	if timezone == "" {
		setLocation(time.UTC)
		return nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		setLocation(time.UTC)
		return fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	setLocation(loc)
	return nil
}

func setLocation(loc *time.Location) {
	mu.Lock()
	appLocation = loc
	mu.Unlock()
}

// SetClock swaps the time source. Pass nil to restore the real clock.
func SetClock(c clockwork.Clock) {
	mu.Lock()
	defer mu.Unlock()
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Clock returns the active time source
func Clock() clockwork.Clock {
	mu.RLock()
	defer mu.RUnlock()
	return clock
}

// Location returns the application timezone
func Location() *time.Location {
	mu.RLock()
	defer mu.RUnlock()
	return appLocation
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return Clock().Now().In(Location())
}

// FormatTime formats t in the application timezone
func FormatTime(t time.Time) string {
	return t.In(Location()).Format(time.RFC3339)
}

// Round rounds v to the given number of decimals, half away from zero
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// CreateRecordID builds an opaque URL-safe ID from a timestamp and a unique suffix
func CreateRecordID(timestamp, unique string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(timestamp + "|" + unique))
}
