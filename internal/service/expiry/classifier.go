package expiry

import (
	"fmt"
	"time"

	"expiryx-backend/internal/domain/models"
)

// Tier is the urgency classification of a batch's expiry date.
type Tier int

const (
	// TierNone means the expiry is far enough out that no alert is due.
	TierNone Tier = iota
	// TierWarning means the batch expires within the warning window.
	TierWarning
	// TierCritical means the batch expires within the critical window.
	TierCritical
	// TierExpired means the expiry date has passed; the batch should be
	// deactivated.
	TierExpired
)

func (t Tier) String() string {
	switch t {
	case TierWarning:
		return "warning"
	case TierCritical:
		return "critical"
	case TierExpired:
		return "expired"
	default:
		return "none"
	}
}

// AlertType maps an alerting tier to its stored alert type. Only warning and
// critical tiers produce alerts.
func (t Tier) AlertType() (models.AlertType, bool) {
	switch t {
	case TierWarning:
		return models.TypeExpiryWarning, true
	case TierCritical:
		return models.TypeExpiryCritical, true
	default:
		return "", false
	}
}

// AlertLevel maps an alerting tier to its stored severity.
func (t Tier) AlertLevel() models.AlertLevel {
	switch t {
	case TierCritical:
		return models.LevelCritical
	default:
		return models.LevelWarning
	}
}

// Thresholds holds the configured expiry windows, in calendar days.
// CriticalDays must be strictly smaller than WarningDays.
type Thresholds struct {
	WarningDays  int
	CriticalDays int
}

// NewThresholds validates and builds a Thresholds value. Violations are
// rejected, never silently reordered.
func NewThresholds(warningDays, criticalDays int) (Thresholds, error) {
	if warningDays <= 0 || criticalDays <= 0 {
		return Thresholds{}, fmt.Errorf("expiry thresholds must be positive, got warning=%d critical=%d",
			warningDays, criticalDays)
	}
	if criticalDays >= warningDays {
		return Thresholds{}, fmt.Errorf("critical window (%d days) must be smaller than warning window (%d days)",
			criticalDays, warningDays)
	}
	return Thresholds{WarningDays: warningDays, CriticalDays: criticalDays}, nil
}

// Classify maps an expiry date and an evaluation day onto a tier:
//
//	expiry <= today                     -> expired
//	today < expiry <= today+critical    -> critical
//	today+critical < expiry <= warning  -> warning
//	otherwise                           -> none
//
// Both dates are compared at calendar-day granularity; times of day are
// ignored.
func (t Thresholds) Classify(expiryDate, today time.Time) Tier {
	days := DaysUntil(today, expiryDate)
	switch {
	case days <= 0:
		return TierExpired
	case days <= t.CriticalDays:
		return TierCritical
	case days <= t.WarningDays:
		return TierWarning
	default:
		return TierNone
	}
}

// DaysUntil returns the number of whole calendar days from one date to
// another, ignoring times of day and timezones.
func DaysUntil(from, to time.Time) int {
	return int(midnightUTC(to).Sub(midnightUTC(from)).Hours() / 24)
}

// midnightUTC pins a date to UTC midnight so day arithmetic is exact across
// DST transitions.
func midnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
