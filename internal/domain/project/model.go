package project

import (
	"fmt"
	"time"
)

// Status is the lifecycle state shown on a project card.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusPending:
		return true
	default:
		return false
	}
}

// Date is a calendar day in YYYY-MM-DD form.
type Date string

const dateLayout = "2006-01-02"

// DateOf returns the UTC calendar day of t.
func DateOf(t time.Time) Date {
	return Date(t.UTC().Format(dateLayout))
}

// ParseDate validates a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", fmt.Errorf("%w: bad date %q", ErrInvalidInput, s)
	}
	return Date(s), nil
}

// Integration is one entry of a project's integration list.
type Integration struct {
	Name    IntegrationName `json:"name"`
	Enabled bool            `json:"enabled"`
}

// Project is a dashboard entry holding a masked API key.
type Project struct {
	ID           string        `json:"id"`
	BoardID      string        `json:"board_id"`
	Name         string        `json:"name"`
	APIKey       string        `json:"api_key"`
	Status       Status        `json:"status"`
	CreatedAt    Date          `json:"created_at"`
	Integrations []Integration `json:"integrations"`
}

// IntegrationCount is the number of enabled integrations.
func (p Project) IntegrationCount() int {
	n := 0
	for _, in := range p.Integrations {
		if in.Enabled {
			n++
		}
	}
	return n
}

// MaskSuffix is appended to every raw key before it is stored.
const MaskSuffix = "***"

// MaskKey returns the display form of a raw key. It is cosmetic only.
func MaskKey(raw string) string {
	return raw + MaskSuffix
}
