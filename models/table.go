package models

import (
	"fmt"
	"time"
)

type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableReserved  TableStatus = "reserved"
	TableOccupied  TableStatus = "occupied"
)

func ParseTableStatus(s string) (TableStatus, error) {
	switch TableStatus(s) {
	case TableAvailable, TableReserved, TableOccupied:
		return TableStatus(s), nil
	}
	return "", fmt.Errorf("invalid table status: %q", s)
}

type Table struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	HotelID     uint        `gorm:"index;not null" json:"hotel_id"`
	Hotel       Hotel       `gorm:"foreignKey:HotelID;references:ID" json:"-"`
	TableNumber string      `gorm:"type:varchar(50);not null" json:"table_number"`
	Capacity    int         `gorm:"not null;default:4" json:"capacity"`
	Status      TableStatus `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
}
