package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Medicine is a catalog item owned by the seller who created it.
// Stock is decremented on order creation and restored on order deletion.
type Medicine struct {
	BaseModel
	Name         string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Manufacturer string          `gorm:"type:varchar(255);not null" json:"manufacturer" validate:"required"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock        int             `gorm:"not null;default:0" json:"stock" validate:"gte=0"`

	CategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id" validate:"uuid_required"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	SellerID uuid.UUID `gorm:"type:uuid;not null;index" json:"seller_id"`
	Seller   *User     `gorm:"foreignKey:SellerID" json:"seller,omitempty"`

	Reviews []Review `gorm:"foreignKey:MedicineID" json:"reviews,omitempty"`

	// Populated by list/detail queries, not a stored column
	ReviewCount int64 `gorm:"->;-:migration" json:"review_count"`
}
