package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus tracks an order through its lifecycle
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Valid reports whether s is one of the known statuses
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Order is created atomically with its items. All items must reference
// medicines of a single seller; SellerID records that derived owner.
type Order struct {
	BaseModel
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer   *User     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	SellerID uuid.UUID `gorm:"type:uuid;not null;index" json:"seller_id"`

	Address string `gorm:"type:text;not null" json:"address" validate:"required"`

	SubTotal       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"sub_total"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"tax_amount"`
	ShippingFee    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"shipping_fee"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discount_amount"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`

	Status OrderStatus `gorm:"type:varchar(20);default:'PENDING'" json:"status"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// OrderItem snapshots the unit price at order time, decoupling historical
// orders from future price changes.
type OrderItem struct {
	BaseModel
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	MedicineID uuid.UUID       `gorm:"type:uuid;not null;index" json:"medicine_id" validate:"uuid_required"`
	Medicine   *Medicine       `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"`
	Quantity   int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

// LineTotal is the snapshot price times quantity
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
