package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale represents money received from a buyer. The derived columns are
// computed by the finance calculator at write time. ProfitExclVAT and
// ProfitInclVAT are nullable: a sale without a linked purchase has no profit
// figures, which is not the same as a profit of zero.
type Sale struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VehicleID uuid.UUID `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	Vehicle   *Vehicle  `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`

	PurchaseID *uuid.UUID `gorm:"type:uuid;index" json:"purchase_id"`
	Purchase   *Purchase  `gorm:"foreignKey:PurchaseID" json:"purchase,omitempty"`

	CustomerName  string    `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail string    `gorm:"type:varchar(255)" json:"customer_email"`
	CustomerPhone string    `gorm:"type:varchar(50)" json:"customer_phone"`
	SaleDate      time.Time `gorm:"type:date;not null" json:"sale_date"`

	NetPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"net_price"`
	VATRegime string          `gorm:"type:varchar(10);not null" json:"vat_regime"` // defaults to the linked purchase's regime
	Discount  decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"discount"`

	VATAmount     decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0" json:"vat_amount"`
	GrossPrice    decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0" json:"gross_price"`
	FinalPrice    decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0" json:"final_price"`
	ProfitExclVAT *decimal.Decimal `gorm:"type:decimal(18,2)" json:"profit_excl_vat"`
	ProfitInclVAT *decimal.Decimal `gorm:"type:decimal(18,2)" json:"profit_incl_vat"`

	Note      string         `gorm:"type:text" json:"note"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
