package models

import "time"

// StockLevel is a derived classification; it is never stored.
type StockLevel string

const (
	StockOut         StockLevel = "out-of-stock"
	StockCritical    StockLevel = "critical"
	StockLow         StockLevel = "low"
	StockIn          StockLevel = "in-stock"
	StockOverstocked StockLevel = "overstocked"
)

// InventoryQuantity is embedded into InventoryItem. Current is mutated only
// through the StockTransaction-producing operations; the generic update path
// strips it from payloads.
type InventoryQuantity struct {
	Current float64 `gorm:"column:current;type:decimal(12,3);not null;default:0" json:"current"`
	Minimum float64 `gorm:"column:minimum;type:decimal(12,3);not null;default:0" json:"minimum"`
	Maximum float64 `gorm:"column:maximum;type:decimal(12,3);not null;default:0" json:"maximum"`
}

type InventoryItem struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	HotelID uint  `gorm:"index;not null" json:"hotel_id"`
	Hotel   Hotel `gorm:"foreignKey:HotelID;references:ID" json:"-"`

	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Category string `gorm:"type:varchar(100)" json:"category"`
	Unit     string `gorm:"type:varchar(20);not null" json:"unit"`

	Quantity    InventoryQuantity `gorm:"embedded;embeddedPrefix:quantity_" json:"quantity"`
	CostPerUnit float64           `gorm:"type:decimal(10,2)" json:"cost_per_unit"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// StockLevel classifies the current quantity against the configured bounds.
func (i *InventoryItem) StockLevel() StockLevel {
	q := i.Quantity
	switch {
	case q.Current <= 0:
		return StockOut
	case q.Minimum > 0 && q.Current <= q.Minimum/2:
		return StockCritical
	case q.Minimum > 0 && q.Current <= q.Minimum:
		return StockLow
	case q.Maximum > 0 && q.Current >= q.Maximum:
		return StockOverstocked
	default:
		return StockIn
	}
}
