package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expiryx-backend/internal/domain/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewThresholds_Valid(t *testing.T) {
	th, err := NewThresholds(5, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, th.WarningDays)
	assert.Equal(t, 1, th.CriticalDays)
}

func TestNewThresholds_Rejected(t *testing.T) {
	cases := []struct {
		name     string
		warning  int
		critical int
	}{
		{"critical equals warning", 5, 5},
		{"critical above warning", 3, 7},
		{"zero warning", 0, 1},
		{"negative critical", 5, -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewThresholds(tc.warning, tc.critical)
			assert.Error(t, err)
		})
	}
}

func TestClassify_Bands(t *testing.T) {
	th, err := NewThresholds(5, 1)
	require.NoError(t, err)

	today := day(2024, time.June, 10)

	cases := []struct {
		name   string
		expiry time.Time
		want   Tier
	}{
		{"expired yesterday", day(2024, time.June, 9), TierExpired},
		{"expires today", day(2024, time.June, 10), TierExpired},
		{"expires tomorrow", day(2024, time.June, 11), TierCritical},
		{"critical upper bound exclusive", day(2024, time.June, 12), TierWarning},
		{"mid warning window", day(2024, time.June, 14), TierWarning},
		{"warning upper bound inclusive", day(2024, time.June, 15), TierWarning},
		{"just outside window", day(2024, time.June, 16), TierNone},
		{"far future", day(2024, time.December, 25), TierNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, th.Classify(tc.expiry, today))
		})
	}
}

func TestClassify_WiderCriticalWindow(t *testing.T) {
	th, err := NewThresholds(10, 3)
	require.NoError(t, err)

	today := day(2024, time.June, 10)

	assert.Equal(t, TierCritical, th.Classify(day(2024, time.June, 13), today))
	assert.Equal(t, TierWarning, th.Classify(day(2024, time.June, 14), today))
	assert.Equal(t, TierWarning, th.Classify(day(2024, time.June, 20), today))
	assert.Equal(t, TierNone, th.Classify(day(2024, time.June, 21), today))
}

func TestClassify_IgnoresTimeOfDay(t *testing.T) {
	th, err := NewThresholds(5, 1)
	require.NoError(t, err)

	today := time.Date(2024, time.June, 10, 23, 45, 0, 0, time.UTC)
	expiry := time.Date(2024, time.June, 11, 0, 30, 0, 0, time.UTC)

	assert.Equal(t, TierCritical, th.Classify(expiry, today))
	assert.Equal(t, 1, DaysUntil(today, expiry))
}

func TestDaysUntil(t *testing.T) {
	assert.Equal(t, 1, DaysUntil(day(2024, time.June, 10), day(2024, time.June, 11)))
	assert.Equal(t, 0, DaysUntil(day(2024, time.June, 10), day(2024, time.June, 10)))
	assert.Equal(t, -1, DaysUntil(day(2024, time.June, 10), day(2024, time.June, 9)))
	assert.Equal(t, 21, DaysUntil(day(2024, time.June, 25), day(2024, time.July, 16)))
}

func TestTier_AlertMapping(t *testing.T) {
	typ, ok := TierWarning.AlertType()
	assert.True(t, ok)
	assert.Equal(t, models.TypeExpiryWarning, typ)
	assert.Equal(t, models.LevelWarning, TierWarning.AlertLevel())

	typ, ok = TierCritical.AlertType()
	assert.True(t, ok)
	assert.Equal(t, models.TypeExpiryCritical, typ)
	assert.Equal(t, models.LevelCritical, TierCritical.AlertLevel())

	_, ok = TierNone.AlertType()
	assert.False(t, ok)
	_, ok = TierExpired.AlertType()
	assert.False(t, ok)
}

func TestTier_String(t *testing.T) {
	assert.Equal(t, "none", TierNone.String())
	assert.Equal(t, "warning", TierWarning.String())
	assert.Equal(t, "critical", TierCritical.String())
	assert.Equal(t, "expired", TierExpired.String())
}
