package models

import (
	"time"

	"gorm.io/datatypes"
)

type MenuItem struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	HotelID uint  `gorm:"index;not null" json:"hotel_id"`
	Hotel   Hotel `gorm:"foreignKey:HotelID;references:ID" json:"-"`

	CategoryID    uint         `gorm:"not null" json:"category_id"`
	Category      MenuCategory `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	SubCategoryID *uint        `json:"sub_category_id,omitempty"`

	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`

	// IsAvailable and IsActive gate orderability independently: availability
	// is the day-to-day kitchen switch, active is the catalog lifecycle flag.
	IsAvailable bool `gorm:"not null;default:true" json:"is_available"`
	IsActive    bool `gorm:"not null;default:true" json:"is_active"`

	// TotalOrders is a denormalized counter bumped on order creation.
	TotalOrders int `gorm:"not null;default:0" json:"total_orders"`

	ImageURLs datatypes.JSON `gorm:"type:json" json:"image_urls,omitempty"`

	Variants    []MenuVariant    `gorm:"foreignKey:MenuItemID" json:"variants"`
	Ingredients []MenuIngredient `gorm:"foreignKey:MenuItemID" json:"ingredients"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// CanOrder reports whether the item may appear on a new order.
func (m *MenuItem) CanOrder() bool {
	return m.IsAvailable && m.IsActive
}

// ResolvePrice returns the price for the named variant, falling back to the
// base price when the variant is empty or unmatched.
func (m *MenuItem) ResolvePrice(variant string) float64 {
	if variant == "" {
		return m.Price
	}
	for _, v := range m.Variants {
		if v.Name == variant {
			return v.Price
		}
	}
	return m.Price
}

type MenuVariant struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	MenuItemID uint    `gorm:"not null;index" json:"menu_item_id"`
	Name       string  `gorm:"type:varchar(100);not null" json:"name"`
	Price      float64 `gorm:"type:decimal(10,2);not null" json:"price"`
}

// MenuIngredient is one recipe row: consumption of an inventory item per unit
// sold.
type MenuIngredient struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	MenuItemID      uint          `gorm:"not null;index" json:"menu_item_id"`
	InventoryItemID uint          `gorm:"not null;index" json:"inventory_item_id"`
	InventoryItem   InventoryItem `gorm:"foreignKey:InventoryItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"inventory_item,omitempty"`
	Quantity        float64       `gorm:"type:decimal(10,3);not null" json:"quantity"`
	Unit            string        `gorm:"type:varchar(20)" json:"unit"`
}
