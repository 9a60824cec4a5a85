package models

import "time"

type MenuCategory struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	HotelID uint  `gorm:"index;not null" json:"hotel_id"`
	Hotel   Hotel `gorm:"foreignKey:HotelID;references:ID" json:"-"`

	// ParentID is set for sub-categories; top-level categories leave it nil.
	ParentID *uint `gorm:"index" json:"parent_id,omitempty"`

	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
