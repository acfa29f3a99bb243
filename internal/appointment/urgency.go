package appointment

import (
	"time"

	"github.com/tartampluch/go-petcare/internal/config"
)

// Classify returns the effective urgency at now. An explicit level wins;
// otherwise anything due within the urgency window is high. Appointments
// whose date or time cannot be read are low.
func Classify(a Appointment, now time.Time) Urgency {
	if a.Urgency == UrgencyHigh || a.Urgency == UrgencyLow {
		return a.Urgency
	}
	fire, err := a.FireInstant(now.Location())
	if err != nil {
		return UrgencyLow
	}
	if fire.Sub(now) <= config.UrgencyWindow {
		return UrgencyHigh
	}
	return UrgencyLow
}

// Color maps an urgency level to its display color.
func Color(u Urgency) string {
	if u == UrgencyHigh {
		return config.ColorHigh
	}
	return config.ColorLow
}
