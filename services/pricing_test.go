package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hoteldine/models"
)

func TestCalcTaxRoundsUp(t *testing.T) {
	assert.Equal(t, 200.0, CalcTax(4000, 5))
	assert.Equal(t, 50.0, CalcTax(999, 5))   // 49.95 rounds up
	assert.Equal(t, 1.0, CalcTax(1, 5))      // 0.05 rounds up
	assert.Equal(t, 0.0, CalcTax(0, 5))
	assert.Equal(t, 0.0, CalcTax(1000, 0))
}

func TestCalcTotalRoundsUp(t *testing.T) {
	assert.Equal(t, 4200.0, CalcTotal(4000, 200))
	assert.Equal(t, 1050.0, CalcTotal(999.5, 50))
}

func TestBookingNights(t *testing.T) {
	in := time.Date(2026, 10, 1, 14, 0, 0, 0, time.UTC)

	// exactly two days
	assert.Equal(t, 2, BookingNights(in, in.AddDate(0, 0, 2)))
	// any started day bills in full
	assert.Equal(t, 2, BookingNights(in, in.Add(36*time.Hour)))
	// short stays still bill one night
	assert.Equal(t, 1, BookingNights(in, in.Add(3*time.Hour)))
}

func TestPriceDailyBooking(t *testing.T) {
	room := models.Room{BasePrice: 2000, WeekendPrice: 3500, MaxAdults: 2, MaxChildren: 0}
	in := time.Date(2026, 10, 2, 14, 0, 0, 0, time.UTC) // friday
	out := in.AddDate(0, 0, 2)

	p := PriceDailyBooking(&room, in, out, 2, 0, 5)
	assert.Equal(t, 4000.0, p.RoomCharges) // base price both nights, weekend rate unused
	assert.Equal(t, 0.0, p.ExtraCharges)
	assert.Equal(t, 4000.0, p.Subtotal)
	assert.Equal(t, 200.0, p.Tax)
	assert.Equal(t, 4200.0, p.Total)
}

func TestPriceDailyBookingExtraGuests(t *testing.T) {
	room := models.Room{
		BasePrice: 1000, MaxAdults: 2, MaxChildren: 1,
		ExtraAdultCharge: 500, ExtraChildCharge: 250,
	}
	in := time.Date(2026, 10, 1, 14, 0, 0, 0, time.UTC)
	out := in.AddDate(0, 0, 2)

	// 3 adults (1 extra), 2 children (1 extra), 2 nights
	p := PriceDailyBooking(&room, in, out, 3, 2, 5)
	assert.Equal(t, 2000.0, p.RoomCharges)
	assert.Equal(t, 1500.0, p.ExtraCharges) // (500 + 250) * 2 nights
	assert.Equal(t, 3500.0, p.Subtotal)
	assert.Equal(t, 175.0, p.Tax)
	assert.Equal(t, 3675.0, p.Total)

	// within capacity there is no extra charge
	p = PriceDailyBooking(&room, in, out, 2, 1, 5)
	assert.Equal(t, 0.0, p.ExtraCharges)
}

func TestPriceHourlyBooking(t *testing.T) {
	room := models.Room{HourlyRate: 300, ExtraAdultCharge: 500, MaxAdults: 1}

	p := PriceHourlyBooking(&room, 3, 5)
	assert.Equal(t, 900.0, p.RoomCharges)
	assert.Equal(t, 0.0, p.ExtraCharges) // hourly never carries guest charges
	assert.Equal(t, 45.0, p.Tax)
	assert.Equal(t, 945.0, p.Total)
}

func TestPerHotelGSTOverride(t *testing.T) {
	hotel := models.Hotel{Settings: models.HotelSettings{GSTRate: 12}}
	assert.Equal(t, 12, hotel.EffectiveGSTRate(5))

	hotel.Settings.GSTRate = 0
	assert.Equal(t, 5, hotel.EffectiveGSTRate(5))
}
