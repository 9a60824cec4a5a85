package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// RoomStatus is a closed set; anything else is rejected at the boundary.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
	RoomCleaning    RoomStatus = "cleaning"
	RoomReserved    RoomStatus = "reserved"
)

func ParseRoomStatus(s string) (RoomStatus, error) {
	switch RoomStatus(s) {
	case RoomAvailable, RoomOccupied, RoomMaintenance, RoomCleaning, RoomReserved:
		return RoomStatus(s), nil
	}
	return "", fmt.Errorf("invalid room status: %q", s)
}

type Room struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	HotelID    uint       `gorm:"index;not null" json:"hotel_id"`
	Hotel      Hotel      `gorm:"foreignKey:HotelID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	RoomNumber string     `gorm:"type:varchar(20);not null" json:"room_number"`
	Floor      string     `gorm:"type:varchar(10)" json:"floor"`
	RoomType   string     `gorm:"type:varchar(50)" json:"room_type"`
	Status     RoomStatus `gorm:"type:varchar(20);not null;default:'available'" json:"status"`

	MaxAdults   int `gorm:"not null;default:2" json:"max_adults"`
	MaxChildren int `gorm:"not null;default:0" json:"max_children"`

	BasePrice float64 `gorm:"type:decimal(10,2);not null" json:"base_price"`
	// WeekendPrice exists on the entity but the daily pricing path does not
	// consult it; see the pricing notes in DESIGN.md.
	WeekendPrice     float64 `gorm:"type:decimal(10,2)" json:"weekend_price"`
	ExtraAdultCharge float64 `gorm:"type:decimal(10,2)" json:"extra_adult_charge"`
	ExtraChildCharge float64 `gorm:"type:decimal(10,2)" json:"extra_child_charge"`

	AllowHourlyBooking bool    `gorm:"not null;default:false" json:"allow_hourly_booking"`
	HourlyRate         float64 `gorm:"type:decimal(10,2)" json:"hourly_rate"`

	Amenities datatypes.JSON `gorm:"type:json" json:"amenities,omitempty"`

	// CurrentBookingID is a weak back-reference for lookup only; the Booking
	// owns the relationship's lifetime.
	CurrentBookingID *uint `gorm:"index" json:"current_booking_id,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
