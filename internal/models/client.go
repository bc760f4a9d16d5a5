package models

import (
	"time"
)

// Client statuses. The status field is informational; the authoritative
// expiry state is always derived from ExpiryDate.
const (
	StatusActive   = "active"
	StatusCritical = "critical"
	StatusExpired  = "expired"
	StatusPending  = "pending"
)

// Activity log actions
const (
	ActionAdded       = "added"
	ActionEdited      = "edited"
	ActionDeleted     = "deleted"
	ActionRestored    = "restored"
	ActionMessageSent = "message_sent"
)

// Client represents a hosting subscription record
type Client struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Phone           string     `json:"phone"`
	Email           string     `json:"email,omitempty"`
	Website         string     `json:"website"`
	Price           float64    `json:"price"`
	ExpiryDate      time.Time  `json:"expiry_date"`
	Status          string     `json:"status"`
	AutoPay         bool       `json:"auto_pay"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	LastMessageSent *time.Time `json:"last_message_sent,omitempty"`
}

// ClientUpdate carries a partial edit; nil fields are left untouched
type ClientUpdate struct {
	Name       *string    `json:"name"`
	Phone      *string    `json:"phone"`
	Email      *string    `json:"email"`
	Website    *string    `json:"website"`
	Price      *float64   `json:"price"`
	ExpiryDate *time.Time `json:"expiry_date"`
	Status     *string    `json:"status"`
	AutoPay    *bool      `json:"auto_pay"`
	Notes      *string    `json:"notes"`
}

// ActivityEntry represents an immutable audit record. ClientName is a
// snapshot, not a reference, so entries survive client deletion.
type ActivityEntry struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}

// MessageTemplates holds the outbound message templates. Placeholders
// {name} {website} {days} {price} {currency} are substituted at send time.
type MessageTemplates struct {
	Reminder string `json:"reminder" yaml:"reminder"`
	Critical string `json:"critical" yaml:"critical"`
	Expired  string `json:"expired" yaml:"expired"`
	Welcome  string `json:"welcome" yaml:"welcome"`
}

// Settings represents session-wide configuration
type Settings struct {
	AppName          string           `json:"app_name" yaml:"app_name"`
	Currency         string           `json:"currency" yaml:"currency"`
	MonthlyGoal      float64          `json:"monthly_goal" yaml:"monthly_goal"`
	MessageFrequency int              `json:"message_frequency" yaml:"message_frequency"` // cooldown between messages, in days
	Templates        MessageTemplates `json:"templates" yaml:"templates"`
}
