package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	// BookingReserved exists in stored data from the cashier flow and behaves
	// exactly like confirmed everywhere a transition is decided.
	BookingReserved   BookingStatus = "reserved"
	BookingCheckedIn  BookingStatus = "checked_in"
	BookingCheckedOut BookingStatus = "checked_out"
	BookingCancelled  BookingStatus = "cancelled"
	BookingNoShow     BookingStatus = "no_show"
)

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingReserved, BookingCheckedIn,
		BookingCheckedOut, BookingCancelled, BookingNoShow:
		return BookingStatus(s), nil
	}
	return "", fmt.Errorf("invalid booking status: %q", s)
}

// bookingTransitions is the exhaustive legal-transition table. checked_out,
// cancelled and no_show are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCheckedIn, BookingCancelled, BookingNoShow},
	BookingReserved:  {BookingCheckedIn, BookingCancelled, BookingNoShow},
	BookingCheckedIn: {BookingCheckedOut},
}

func (s BookingStatus) CanTransition(to BookingStatus) bool {
	for _, t := range bookingTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

type BookingType string

const (
	BookingDaily  BookingType = "daily"
	BookingHourly BookingType = "hourly"
)

func ParseBookingType(s string) (BookingType, error) {
	switch BookingType(s) {
	case BookingDaily, BookingHourly:
		return BookingType(s), nil
	}
	return "", fmt.Errorf("invalid booking type: %q", s)
}

type BookingPaymentStatus string

const (
	BookingPaymentPending BookingPaymentStatus = "pending"
	BookingPartiallyPaid  BookingPaymentStatus = "partially_paid"
	BookingPaid           BookingPaymentStatus = "paid"
)

// BookingPricing is the snapshot computed once at creation; it is never
// silently recomputed afterwards.
type BookingPricing struct {
	RoomCharges  float64 `gorm:"column:room_charges;type:decimal(10,2)" json:"room_charges"`
	ExtraCharges float64 `gorm:"column:extra_charges;type:decimal(10,2)" json:"extra_charges"`
	Discount     float64 `gorm:"column:discount;type:decimal(10,2)" json:"discount"`
	Subtotal     float64 `gorm:"column:subtotal;type:decimal(10,2)" json:"subtotal"`
	Tax          float64 `gorm:"column:tax;type:decimal(10,2)" json:"tax"`
	Total        float64 `gorm:"column:total;type:decimal(10,2)" json:"total"`
}

type Booking struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	BookingNumber string `gorm:"type:varchar(20);uniqueIndex;not null" json:"booking_number"`

	HotelID uint  `gorm:"index;not null" json:"hotel_id"`
	Hotel   Hotel `gorm:"foreignKey:HotelID;references:ID" json:"-"`
	RoomID  uint  `gorm:"index;not null" json:"room_id"`
	Room    Room  `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`

	// BookingType is immutable once set.
	BookingType BookingType `gorm:"type:varchar(10);not null" json:"booking_type"`
	Hours       int         `gorm:"default:0" json:"hours,omitempty"`

	CheckIn  time.Time `gorm:"not null;index" json:"check_in"`
	CheckOut time.Time `gorm:"not null;index" json:"check_out"`

	ActualCheckIn  *time.Time `json:"actual_check_in,omitempty"`
	ActualCheckOut *time.Time `json:"actual_check_out,omitempty"`

	Adults   int `gorm:"not null;default:1" json:"adults"`
	Children int `gorm:"not null;default:0" json:"children"`

	GuestName          string         `gorm:"type:varchar(255);not null" json:"guest_name"`
	GuestPhone         string         `gorm:"type:varchar(20)" json:"guest_phone"`
	GuestEmail         string         `gorm:"type:varchar(255)" json:"guest_email"`
	AccompanyingGuests datatypes.JSON `gorm:"type:json" json:"accompanying_guests,omitempty"`

	Status  BookingStatus  `gorm:"type:varchar(15);not null;default:'confirmed'" json:"status"`
	Pricing BookingPricing `gorm:"embedded;embeddedPrefix:pricing_" json:"pricing"`

	AdvancePayment float64              `gorm:"type:decimal(10,2);not null;default:0" json:"advance_payment"`
	PaymentStatus  BookingPaymentStatus `gorm:"type:varchar(15);not null;default:'pending'" json:"payment_status"`

	CreatedBy    uint  `gorm:"not null" json:"created_by"`
	CheckedInBy  *uint `json:"checked_in_by,omitempty"`
	CheckedOutBy *uint `json:"checked_out_by,omitempty"`
	CancelledBy  *uint `json:"cancelled_by,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// RefreshPaymentStatus derives PaymentStatus from AdvancePayment against the
// pricing total.
func (b *Booking) RefreshPaymentStatus() {
	switch {
	case b.AdvancePayment <= 0:
		b.PaymentStatus = BookingPaymentPending
	case b.AdvancePayment < b.Pricing.Total:
		b.PaymentStatus = BookingPartiallyPaid
	default:
		b.PaymentStatus = BookingPaid
	}
}

// Outstanding returns the unpaid balance.
func (b *Booking) Outstanding() float64 {
	rest := b.Pricing.Total - b.AdvancePayment
	if rest < 0 {
		return 0
	}
	return rest
}
