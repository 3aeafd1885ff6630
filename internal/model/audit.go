package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateVehicle  = "CREATE_VEHICLE"
	ActionUpdateVehicle  = "UPDATE_VEHICLE"
	ActionDeleteVehicle  = "DELETE_VEHICLE"
	ActionCreatePurchase = "CREATE_PURCHASE"
	ActionUpdatePurchase = "UPDATE_PURCHASE"
	ActionDeletePurchase = "DELETE_PURCHASE"
	ActionCreateSale     = "CREATE_SALE"
	ActionUpdateSale     = "UPDATE_SALE"
	ActionDeleteSale     = "DELETE_SALE"
	ActionHandleLead     = "HANDLE_LEAD"
)

// AuditLog tracks Who, What, and When for critical back-office changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/code)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
