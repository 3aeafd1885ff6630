package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VehicleStatus enum constants
const (
	VehicleAvailable = "BESCHIKBAAR"
	VehicleReserved  = "GERESERVEERD"
	VehicleSold      = "VERKOCHT"
)

// Vehicle represents a car in the dealership inventory and on the public
// catalog pages.
type Vehicle struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Brand        string          `gorm:"type:varchar(100);not null;index" json:"brand"`
	Model        string          `gorm:"type:varchar(100);not null" json:"model"`
	Year         int             `gorm:"type:int" json:"year"`
	Mileage      int             `gorm:"type:int" json:"mileage"` // km
	Fuel         string          `gorm:"type:varchar(50)" json:"fuel"`
	Transmission string          `gorm:"type:varchar(50)" json:"transmission"`
	Color        string          `gorm:"type:varchar(50)" json:"color"`
	LicensePlate string          `gorm:"type:varchar(20);index" json:"license_plate"`
	VIN          string          `gorm:"type:varchar(30)" json:"vin"`
	AskingPrice  decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"asking_price"` // advertised price incl VAT
	Status       string          `gorm:"type:varchar(20);not null;default:'BESCHIKBAAR';index" json:"status"`
	Description  string          `gorm:"type:text" json:"description"`
	Images       []VehicleImage  `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE" json:"images"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

// VehicleImage stores a reference to an externally hosted photo. Upload and
// storage live outside this service; only the URL and ordering are kept.
type VehicleImage struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VehicleID uuid.UUID `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	Position  int       `gorm:"type:int;default:0" json:"position"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
