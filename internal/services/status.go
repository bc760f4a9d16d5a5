package services

import (
	"log"
	"time"

	"clienthub/internal/models"
	"clienthub/internal/store"
)

// StatusService re-syncs the informational status field on active clients
// from their derived expiry state. The field is display metadata only; the
// classifier remains the authority.
type StatusService struct {
	store *store.Store
}

// NewStatusService creates a new status service
func NewStatusService(s *store.Store) *StatusService {
	return &StatusService{store: s}
}

// RefreshAll recomputes the status field for every active client
func (s *StatusService) RefreshAll() {
	now := time.Now()
	updated := 0

	for _, c := range s.store.Clients() {
		desired := statusFor(c, now)
		if desired == c.Status {
			continue
		}
		if s.store.SetStatus(c.ID, desired) {
			updated++
		}
	}

	if updated > 0 {
		log.Printf("Status refresh updated %d clients", updated)
	}
}

// statusFor maps derived expiry state onto a status value. A user-assigned
// "pending" is kept unless the client has actually expired.
func statusFor(c models.Client, now time.Time) string {
	daysLeft := DaysLeft(c.ExpiryDate, now)

	switch {
	case daysLeft < 0:
		return models.StatusExpired
	case c.Status == models.StatusPending:
		return models.StatusPending
	case daysLeft <= criticalWindowDays:
		return models.StatusCritical
	default:
		return models.StatusActive
	}
}
