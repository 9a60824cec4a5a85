package models

import (
	"fmt"
	"time"
)

type StockTransactionType string

const (
	StockPurchase   StockTransactionType = "purchase"
	StockUsage      StockTransactionType = "usage"
	StockWastage    StockTransactionType = "wastage"
	StockAdjustment StockTransactionType = "adjustment"
	StockReturn     StockTransactionType = "return"
	StockTransfer   StockTransactionType = "transfer"
	StockSale       StockTransactionType = "sale"
)

func ParseStockTransactionType(s string) (StockTransactionType, error) {
	switch StockTransactionType(s) {
	case StockPurchase, StockUsage, StockWastage, StockAdjustment, StockReturn, StockTransfer, StockSale:
		return StockTransactionType(s), nil
	}
	return "", fmt.Errorf("invalid stock transaction type: %q", s)
}

// StockTransaction is an append-only ledger row. Rows are never updated or
// deleted after creation; the previous/new snapshot pair plus the reference
// make every stock movement traceable to its cause.
type StockTransaction struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	HotelID uint `gorm:"index;not null" json:"hotel_id"`

	InventoryItemID uint          `gorm:"index;not null" json:"inventory_item_id"`
	InventoryItem   InventoryItem `gorm:"foreignKey:InventoryItemID;references:ID" json:"-"`

	TransactionType StockTransactionType `gorm:"type:varchar(15);not null" json:"transaction_type"`
	Quantity        float64              `gorm:"type:decimal(12,3);not null" json:"quantity"`
	PreviousStock   float64              `gorm:"type:decimal(12,3);not null" json:"previous_stock"`
	NewStock        float64              `gorm:"type:decimal(12,3);not null" json:"new_stock"`

	// Reference names the cause: an order number, "manual", a supplier
	// invoice, etc.
	Reference string `gorm:"type:varchar(64);not null" json:"reference"`
	Note      string `gorm:"type:text" json:"note,omitempty"`

	PerformedBy *uint     `json:"performed_by,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}
