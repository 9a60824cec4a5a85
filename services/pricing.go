package services

import (
	"math"
	"time"

	"hoteldine/models"
)

// Money rounding rules shared by bookings and orders. The GST rate is always
// passed in (per-hotel override or the configured default), never read from a
// package-level constant, so tests can vary it per case.

// CalcTax rounds GST up to the next rupee.
func CalcTax(subtotal float64, gstRate int) float64 {
	return math.Ceil(subtotal * float64(gstRate) / 100)
}

// CalcTotal rounds the grand total up to the next rupee.
func CalcTotal(subtotal, tax float64) float64 {
	return math.Ceil(subtotal + tax)
}

// BookingNights counts billable nights: any started day bills in full.
func BookingNights(checkIn, checkOut time.Time) int {
	hours := checkOut.Sub(checkIn).Hours()
	nights := int(math.Ceil(hours / 24))
	if nights < 1 {
		nights = 1
	}
	return nights
}

// PriceDailyBooking computes the pricing snapshot for a daily booking.
// Weekend pricing exists on the room but is deliberately not consulted here;
// base price applies to every night. Extra-guest charges apply only when the
// party exceeds the room's capacity.
func PriceDailyBooking(room *models.Room, checkIn, checkOut time.Time, adults, children, gstRate int) models.BookingPricing {
	nights := BookingNights(checkIn, checkOut)
	roomCharges := room.BasePrice * float64(nights)

	var extra float64
	if adults > room.MaxAdults {
		extra += float64(adults-room.MaxAdults) * room.ExtraAdultCharge * float64(nights)
	}
	if children > room.MaxChildren {
		extra += float64(children-room.MaxChildren) * room.ExtraChildCharge * float64(nights)
	}

	return finishPricing(roomCharges, extra, gstRate)
}

// PriceHourlyBooking computes the pricing snapshot for an hourly booking.
// Hourly bookings never carry extra-guest charges.
func PriceHourlyBooking(room *models.Room, hours, gstRate int) models.BookingPricing {
	roomCharges := room.HourlyRate * float64(hours)
	return finishPricing(roomCharges, 0, gstRate)
}

func finishPricing(roomCharges, extraCharges float64, gstRate int) models.BookingPricing {
	subtotal := roomCharges + extraCharges
	tax := CalcTax(subtotal, gstRate)
	return models.BookingPricing{
		RoomCharges:  roomCharges,
		ExtraCharges: extraCharges,
		Subtotal:     subtotal,
		Tax:          tax,
		Total:        CalcTotal(subtotal, tax),
	}
}
