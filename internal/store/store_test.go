package store

import (
	"fmt"
	"testing"
	"time"

	"clienthub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() models.Settings {
	return models.Settings{
		AppName:          "ClientHub Pro",
		Currency:         "₹",
		MonthlyGoal:      100000,
		MessageFrequency: 3,
	}
}

func testClient(name string) models.Client {
	return models.Client{
		Name:       name,
		Phone:      "+1234567890",
		Website:    name + ".com",
		Price:      2500,
		ExpiryDate: time.Now().AddDate(0, 1, 0),
	}
}

func TestAddClientAssignsIdentity(t *testing.T) {
	s := New(testSettings())

	created := s.AddClient(testClient("John Smith"))

	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())
	assert.Equal(t, models.StatusActive, created.Status)

	clients := s.Clients()
	require.Len(t, clients, 1)
	assert.Equal(t, created.ID, clients[0].ID)

	activity := s.Activity()
	require.Len(t, activity, 1)
	assert.Equal(t, models.ActionAdded, activity[0].Action)
	assert.Equal(t, "John Smith", activity[0].ClientName)
}

func TestUpdateClientMergesPartialFields(t *testing.T) {
	s := New(testSettings())
	created := s.AddClient(testClient("John Smith"))

	newName := "John S."
	newPrice := 3000.0
	updated, ok := s.UpdateClient(created.ID, models.ClientUpdate{
		Name:  &newName,
		Price: &newPrice,
	})

	require.True(t, ok)
	assert.Equal(t, "John S.", updated.Name)
	assert.Equal(t, 3000.0, updated.Price)
	// untouched fields survive the merge
	assert.Equal(t, created.Phone, updated.Phone)
	assert.Equal(t, created.Website, updated.Website)
	assert.True(t, created.ExpiryDate.Equal(updated.ExpiryDate))

	// the edit entry carries the pre-update name
	activity := s.Activity()
	require.Len(t, activity, 2)
	assert.Equal(t, models.ActionEdited, activity[0].Action)
	assert.Equal(t, "John Smith", activity[0].ClientName)
}

func TestUpdateClientUnknownID(t *testing.T) {
	s := New(testSettings())
	s.AddClient(testClient("John Smith"))
	before := len(s.Activity())

	name := "Nobody"
	_, ok := s.UpdateClient("missing", models.ClientUpdate{Name: &name})

	assert.False(t, ok)
	assert.Len(t, s.Activity(), before)
	assert.Equal(t, "John Smith", s.Clients()[0].Name)
}

func TestDeleteRestoreRoundTrip(t *testing.T) {
	s := New(testSettings())
	created := s.AddClient(testClient("Mike Wilson"))

	deleted, ok := s.DeleteClient(created.ID)
	require.True(t, ok)
	assert.Equal(t, created, deleted)
	assert.Empty(t, s.Clients())
	require.Len(t, s.Trashed(), 1)

	restored, ok := s.RestoreClient(created.ID)
	require.True(t, ok)
	assert.Equal(t, created, restored)
	assert.Empty(t, s.Trashed())
	require.Len(t, s.Clients(), 1)
	assert.Equal(t, created, s.Clients()[0])

	activity := s.Activity()
	require.Len(t, activity, 3)
	assert.Equal(t, models.ActionRestored, activity[0].Action)
	assert.Equal(t, models.ActionDeleted, activity[1].Action)
	assert.Equal(t, models.ActionAdded, activity[2].Action)
}

func TestDeleteClientUnknownID(t *testing.T) {
	s := New(testSettings())

	_, ok := s.DeleteClient("missing")
	assert.False(t, ok)

	_, ok = s.RestoreClient("missing")
	assert.False(t, ok)
}

func TestPermanentDeleteDoesNotLog(t *testing.T) {
	s := New(testSettings())
	created := s.AddClient(testClient("Alex Brown"))
	s.DeleteClient(created.ID)
	before := len(s.Activity())

	ok := s.PermanentDeleteClient(created.ID)

	require.True(t, ok)
	assert.Empty(t, s.Trashed())
	assert.Len(t, s.Activity(), before)

	assert.False(t, s.PermanentDeleteClient(created.ID))
}

func TestActivityLogEvictsOldest(t *testing.T) {
	s := New(testSettings())

	for i := 1; i <= 21; i++ {
		c := testClient(fmt.Sprintf("Client %d", i))
		c.Phone = fmt.Sprintf("+%010d", i)
		s.AddClient(c)
	}

	activity := s.Activity()
	require.Len(t, activity, 20)
	assert.Equal(t, "Client 21", activity[0].ClientName)
	assert.Equal(t, "Client 2", activity[19].ClientName)
	for _, entry := range activity {
		assert.NotEqual(t, "Client 1", entry.ClientName)
	}
}

func TestRecordMessageSent(t *testing.T) {
	s := New(testSettings())
	created := s.AddClient(testClient("Emily Davis"))
	at := time.Now()

	stamped, ok := s.RecordMessageSent(created.ID, at)

	require.True(t, ok)
	require.NotNil(t, stamped.LastMessageSent)
	assert.True(t, stamped.LastMessageSent.Equal(at))

	activity := s.Activity()
	assert.Equal(t, models.ActionMessageSent, activity[0].Action)
	assert.Equal(t, "Emily Davis", activity[0].ClientName)
}

func TestStampMessageSentDoesNotLog(t *testing.T) {
	s := New(testSettings())
	created := s.AddClient(testClient("Emily Davis"))
	before := len(s.Activity())

	require.True(t, s.StampMessageSent(created.ID, time.Now()))

	got, _ := s.Client(created.ID)
	assert.NotNil(t, got.LastMessageSent)
	assert.Len(t, s.Activity(), before)
}

func TestSetStatusDoesNotTouchUpdatedAt(t *testing.T) {
	s := New(testSettings())
	created := s.AddClient(testClient("Sarah Johnson"))
	before := len(s.Activity())

	require.True(t, s.SetStatus(created.ID, models.StatusExpired))

	got, _ := s.Client(created.ID)
	assert.Equal(t, models.StatusExpired, got.Status)
	assert.True(t, got.UpdatedAt.Equal(created.UpdatedAt))
	assert.Len(t, s.Activity(), before)
}

func TestHasDuplicateContact(t *testing.T) {
	s := New(testSettings())
	created := s.AddClient(testClient("John Smith"))

	assert.True(t, s.HasDuplicateContact("+1234567890", "other.com", ""))
	assert.True(t, s.HasDuplicateContact("+1999999999", "John Smith.com", ""))
	assert.False(t, s.HasDuplicateContact("+1999999999", "other.com", ""))

	// the client being edited is not its own duplicate
	assert.False(t, s.HasDuplicateContact("+1234567890", "John Smith.com", created.ID))

	// trashed clients are not checked
	s.DeleteClient(created.ID)
	assert.False(t, s.HasDuplicateContact("+1234567890", "John Smith.com", ""))
}

func TestUpdateSettings(t *testing.T) {
	s := New(testSettings())

	settings := s.Settings()
	settings.MessageFrequency = 7
	settings.Currency = "$"
	s.UpdateSettings(settings)

	got := s.Settings()
	assert.Equal(t, 7, got.MessageFrequency)
	assert.Equal(t, "$", got.Currency)
}
