package models

import (
	"time"
)

// Payment gateway transaction states. The order itself only knows
// PAID/UNPAID; these track the attempt against the gateway.
const (
	PaymentPending = "pending"
	PaymentSuccess = "success"
	PaymentFailed  = "failed"
	PaymentExpired = "expired"
)

// Payment methods.
const (
	PaymentMethodCash = "cash"
	PaymentMethodQRIS = "qris"
)

// Payment records one payment attempt for an order. Cash payments settle
// immediately; QRIS payments stay pending until the gateway callback.
type Payment struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	HotelID uint  `gorm:"index;not null" json:"hotel_id"`
	OrderID uint  `gorm:"index;not null" json:"order_id"`
	Order   Order `gorm:"foreignKey:OrderID;references:ID" json:"-"`

	Amount float64 `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method string  `gorm:"type:varchar(20);not null;default:'cash'" json:"method"`
	Status string  `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	// ReferenceID is the id sent to the gateway (and printed on receipts).
	ReferenceID string `gorm:"type:varchar(64);uniqueIndex" json:"reference_id"`
	QRCodeURL   string `gorm:"type:varchar(255)" json:"qr_code_url,omitempty"`

	CashReceived float64 `gorm:"type:decimal(10,2)" json:"cash_received,omitempty"`
	Change       float64 `gorm:"type:decimal(10,2)" json:"change,omitempty"`

	PaymentTime *time.Time `json:"payment_time,omitempty"`
	ExpiredAt   *time.Time `json:"expired_at,omitempty"`
	VerifiedBy  *uint      `json:"verified_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
