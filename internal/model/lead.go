package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeadType enum constants
const (
	LeadTypeContact     = "CONTACT"
	LeadTypeReservation = "RESERVERING"
)

// LeadStatus enum constants
const (
	LeadStatusNew     = "NIEUW"
	LeadStatusHandled = "AFGEHANDELD"
)

// Lead is a public enquiry: a plain contact message or a reservation with a
// deposit for a specific vehicle.
type Lead struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Type      string     `gorm:"type:varchar(20);not null;index" json:"type"` // CONTACT, RESERVERING
	VehicleID *uuid.UUID `gorm:"type:uuid;index" json:"vehicle_id"`
	Vehicle   *Vehicle   `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`

	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	Email   string `gorm:"type:varchar(255);not null" json:"email"`
	Phone   string `gorm:"type:varchar(50)" json:"phone"`
	Message string `gorm:"type:text" json:"message"`

	DepositAmount decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"deposit_amount"`
	Status        string          `gorm:"type:varchar(20);not null;default:'NIEUW';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
