package services

import (
	"fmt"
	"time"
)

// ExpiryCategory classifies how close a client is to expiry
type ExpiryCategory string

const (
	CategoryExpired  ExpiryCategory = "expired"
	CategoryCritical ExpiryCategory = "critical"
	CategoryReminder ExpiryCategory = "reminder"
)

// MessagingWindowDays is the horizon beyond which a client is not yet
// actionable for outreach
const MessagingWindowDays = 15

const criticalWindowDays = 7

// DaysLeft returns the whole-day difference between expiry and now,
// truncated toward zero. Negative means overdue.
func DaysLeft(expiry, now time.Time) int {
	return int(expiry.Sub(now).Hours() / 24)
}

// Classify maps a day count onto its expiry category. Every value maps to
// exactly one category; actionability (daysLeft <= 15) is checked separately.
func Classify(daysLeft int) ExpiryCategory {
	switch {
	case daysLeft < 0:
		return CategoryExpired
	case daysLeft <= criticalWindowDays:
		return CategoryCritical
	default:
		return CategoryReminder
	}
}

// ExpiryLabel returns the display label for a day count
func ExpiryLabel(daysLeft int) string {
	switch {
	case daysLeft < 0:
		return fmt.Sprintf("%d days overdue", -daysLeft)
	case daysLeft == 0:
		return "Expires today"
	default:
		return fmt.Sprintf("%d days left", daysLeft)
	}
}

// CalendarDaysLeft returns the difference in calendar days between the
// expiry date and now, both truncated to midnight. Used by the expiry chart,
// which buckets by date rather than by elapsed 24-hour periods.
func CalendarDaysLeft(expiry, now time.Time) int {
	return int(dayStart(expiry).Sub(dayStart(now)).Hours() / 24)
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
