package domain

import (
	"errors"
	"time"
)

const (
	StatusAvailable = "available"
	StatusBusy      = "busy"
	StatusOffline   = "offline"
)

var ErrTechnicianNotFound = errors.New("technician not found")

// Technician is a service worker who can be assigned to resolve issues.
type Technician struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	Status    string    `json:"status"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
