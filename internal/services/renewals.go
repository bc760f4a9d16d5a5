package services

import (
	"time"

	"clienthub/internal/models"
	"clienthub/internal/store"
)

// RenewalDue is an auto-pay client whose hosting lapsed: payment was
// collected but the expiry date was never pushed forward
type RenewalDue struct {
	models.Client
	DaysOverdue int `json:"days_overdue"`
}

// dangerZoneDays is how long a client may stay overdue before the trash
// view suggests removal
const dangerZoneDays = 7

// RenewalService derives the manual-renewal queue from store state
type RenewalService struct {
	store *store.Store
}

// NewRenewalService creates a new renewal service
func NewRenewalService(s *store.Store) *RenewalService {
	return &RenewalService{store: s}
}

// Due returns auto-pay clients whose expiry date has lapsed
func (r *RenewalService) Due(now time.Time) []RenewalDue {
	var out []RenewalDue
	for _, c := range r.store.Clients() {
		if !c.AutoPay {
			continue
		}
		daysLeft := DaysLeft(c.ExpiryDate, now)
		if daysLeft < 0 {
			out = append(out, RenewalDue{Client: c, DaysOverdue: -daysLeft})
		}
	}
	return out
}

// MarkRenewed pushes the expiry date one year out and resets the status.
// Goes through the normal update path, so an "edited" entry is logged.
func (r *RenewalService) MarkRenewed(id string, now time.Time) (models.Client, bool) {
	newExpiry := now.AddDate(1, 0, 0)
	status := models.StatusActive
	return r.store.UpdateClient(id, models.ClientUpdate{
		ExpiryDate: &newExpiry,
		Status:     &status,
	})
}

// LongExpired returns active clients overdue beyond the danger-zone window;
// the trash view offers these for deletion
func (r *RenewalService) LongExpired(now time.Time) []RenewalDue {
	var out []RenewalDue
	for _, c := range r.store.Clients() {
		daysLeft := DaysLeft(c.ExpiryDate, now)
		if daysLeft < -dangerZoneDays {
			out = append(out, RenewalDue{Client: c, DaysOverdue: -daysLeft})
		}
	}
	return out
}
