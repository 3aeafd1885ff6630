package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Purchase represents money paid to acquire a vehicle for resale. VATAmount
// and TotalInclVAT are derived by the finance calculator before persistence;
// the same calculation backs the live form preview.
type Purchase struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VehicleID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"vehicle_id"`
	Vehicle   *Vehicle  `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`

	SupplierName string    `gorm:"type:varchar(255)" json:"supplier_name"`
	PurchaseDate time.Time `gorm:"type:date;not null" json:"purchase_date"`

	NetPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"net_price"`
	VATRegime string          `gorm:"type:varchar(10);not null" json:"vat_regime"` // 21%, marge, geen_btw
	BPM       decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"bpm"`

	TransportCost   decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"transport_cost"`
	MaintenanceCost decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"maintenance_cost"`
	CleaningCost    decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"cleaning_cost"`
	GuaranteeCost   decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"guarantee_cost"`
	OtherCosts      decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"other_costs"`

	VATAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"vat_amount"`
	TotalInclVAT decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_incl_vat"`

	Note      string         `gorm:"type:text" json:"note"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
