package store

import (
	"strings"
	"sync"
	"time"

	"clienthub/internal/models"

	"github.com/google/uuid"
)

// activityLogCap bounds the activity log; the oldest entry is evicted first.
const activityLogCap = 20

// Store is the single owner of application state: the active client set,
// the trashed client set, the activity log and the session settings.
// It is built once in main and injected into services and handlers.
// The mutex guards against concurrent HTTP requests; every mutation is
// immediate and atomic with respect to a single call.
type Store struct {
	mu       sync.RWMutex
	clients  []models.Client
	trashed  []models.Client
	activity []models.ActivityEntry // newest first
	settings models.Settings
}

// New creates an empty store seeded with the given settings
func New(settings models.Settings) *Store {
	return &Store{settings: settings}
}

// AddClient assigns identity and timestamps, appends the client to the
// active set and logs an "added" entry. Duplicate checking is the caller's
// responsibility.
func (s *Store) AddClient(c models.Client) models.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = models.StatusActive
	}

	s.clients = append(s.clients, c)
	s.appendLog(models.ActionAdded, c.Name)
	return c
}

// UpdateClient merges non-nil fields into the matching active client and
// logs an "edited" entry carrying the pre-update name. Returns false if the
// id is not in the active set; nothing is written in that case.
func (s *Store) UpdateClient(id string, upd models.ClientUpdate) (models.Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.clients, id)
	if i < 0 {
		return models.Client{}, false
	}

	c := &s.clients[i]
	prevName := c.Name

	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Phone != nil {
		c.Phone = *upd.Phone
	}
	if upd.Email != nil {
		c.Email = *upd.Email
	}
	if upd.Website != nil {
		c.Website = *upd.Website
	}
	if upd.Price != nil {
		c.Price = *upd.Price
	}
	if upd.ExpiryDate != nil {
		c.ExpiryDate = *upd.ExpiryDate
	}
	if upd.Status != nil {
		c.Status = *upd.Status
	}
	if upd.AutoPay != nil {
		c.AutoPay = *upd.AutoPay
	}
	if upd.Notes != nil {
		c.Notes = *upd.Notes
	}
	c.UpdatedAt = time.Now()

	s.appendLog(models.ActionEdited, prevName)
	return *c, true
}

// DeleteClient moves the client from the active set to the trash, fields
// untouched, and logs a "deleted" entry
func (s *Store) DeleteClient(id string) (models.Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.clients, id)
	if i < 0 {
		return models.Client{}, false
	}

	c := s.clients[i]
	s.clients = append(s.clients[:i], s.clients[i+1:]...)
	s.trashed = append(s.trashed, c)
	s.appendLog(models.ActionDeleted, c.Name)
	return c, true
}

// RestoreClient moves the client from the trash back to the active set and
// logs a "restored" entry
func (s *Store) RestoreClient(id string) (models.Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.trashed, id)
	if i < 0 {
		return models.Client{}, false
	}

	c := s.trashed[i]
	s.trashed = append(s.trashed[:i], s.trashed[i+1:]...)
	s.clients = append(s.clients, c)
	s.appendLog(models.ActionRestored, c.Name)
	return c, true
}

// PermanentDeleteClient removes the client from the trash irreversibly.
// Unlike the other mutations it does not log an activity entry.
func (s *Store) PermanentDeleteClient(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.trashed, id)
	if i < 0 {
		return false
	}

	s.trashed = append(s.trashed[:i], s.trashed[i+1:]...)
	return true
}

// RecordMessageSent stamps LastMessageSent on the client and logs a
// "message_sent" entry
func (s *Store) RecordMessageSent(id string, at time.Time) (models.Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.clients, id)
	if i < 0 {
		return models.Client{}, false
	}

	t := at
	s.clients[i].LastMessageSent = &t
	s.appendLog(models.ActionMessageSent, s.clients[i].Name)
	return s.clients[i], true
}

// StampMessageSent stamps LastMessageSent without logging; used by the bulk
// mark-all-sent action, which sends nothing
func (s *Store) StampMessageSent(id string, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.clients, id)
	if i < 0 {
		return false
	}

	t := at
	s.clients[i].LastMessageSent = &t
	return true
}

// SetStatus re-syncs the informational status field. Maintenance writes do
// not touch UpdatedAt and do not log.
func (s *Store) SetStatus(id, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.clients, id)
	if i < 0 {
		return false
	}

	s.clients[i].Status = status
	return true
}

// Client returns a copy of the active client with the given id
func (s *Store) Client(id string) (models.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.clients, id)
	if i < 0 {
		return models.Client{}, false
	}
	return s.clients[i], true
}

// Clients returns a copy of the active set
func (s *Store) Clients() []models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Client, len(s.clients))
	copy(out, s.clients)
	return out
}

// Trashed returns a copy of the trashed set
func (s *Store) Trashed() []models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Client, len(s.trashed))
	copy(out, s.trashed)
	return out
}

// Activity returns the activity log, newest first
func (s *Store) Activity() []models.ActivityEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ActivityEntry, len(s.activity))
	copy(out, s.activity)
	return out
}

// Settings returns the current session settings
func (s *Store) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings replaces the session settings in place
func (s *Store) UpdateSettings(settings models.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// HasDuplicateContact reports whether another active client already uses the
// phone or website. Trashed clients are not checked, so duplicates remain
// possible via trash and restore.
func (s *Store) HasDuplicateContact(phone, website, excludeID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.clients {
		if c.ID == excludeID {
			continue
		}
		if c.Phone == phone || strings.EqualFold(c.Website, website) {
			return true
		}
	}
	return false
}

// appendLog prepends an entry and evicts beyond the cap. Callers hold the lock.
func (s *Store) appendLog(action, clientName string) {
	entry := models.ActivityEntry{
		ID:         uuid.NewString(),
		Action:     action,
		ClientName: clientName,
		Timestamp:  time.Now(),
	}

	s.activity = append([]models.ActivityEntry{entry}, s.activity...)
	if len(s.activity) > activityLogCap {
		s.activity = s.activity[:activityLogCap]
	}
}

func indexOf(list []models.Client, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
