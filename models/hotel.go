package models

import "time"

// HotelSettings is embedded into Hotel; the pricing paths read the tax rates
// from here, everything else is display preference.
type HotelSettings struct {
	GSTRate  int    `gorm:"column:gst_rate;default:0" json:"gst_rate"`
	TaxRate  int    `gorm:"column:tax_rate;default:0" json:"tax_rate"`
	Currency string `gorm:"type:varchar(10);default:'INR'" json:"currency"`
}

type Hotel struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"type:varchar(255);not null" json:"name"`
	Address     string        `gorm:"type:text" json:"address"`
	City        string        `gorm:"type:varchar(100)" json:"city"`
	Phone       string        `gorm:"type:varchar(20)" json:"phone"`
	Email       string        `gorm:"type:varchar(255)" json:"email"`
	GSTNumber   string        `gorm:"type:varchar(32)" json:"gst_number"`
	IsActive    bool          `gorm:"not null;default:true" json:"is_active"`
	Settings    HotelSettings `gorm:"embedded;embeddedPrefix:settings_" json:"settings"`
	CreatedAt   time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"not null" json:"updated_at"`
}

// EffectiveGSTRate returns the hotel's own GST percentage, or the process-wide
// default when the hotel never configured one.
func (h *Hotel) EffectiveGSTRate(defaultRate int) int {
	if h.Settings.GSTRate > 0 {
		return h.Settings.GSTRate
	}
	return defaultRate
}
