package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoteldine/apperrors"
	"hoteldine/models"
)

func TestCreateBookingHappyPath(t *testing.T) {
	db := setupTestDB(t)
	hotel := seedHotel(t, db)
	room := seedRoom(t, db, hotel.ID, 2000)
	svc := NewBookingService(db, NewNumberGenerator(nil), 5)

	booking, err := svc.Create(CreateBookingInput{
		HotelID:     hotel.ID,
		RoomID:      room.ID,
		BookingType: models.BookingDaily,
		CheckIn:     day(0),
		CheckOut:    day(2),
		Adults:      2,
		GuestName:   "Asha Verma",
		ActorID:     1,
	})
	require.NoError(t, err)

	assert.Equal(t, models.BookingConfirmed, booking.Status)
	assert.True(t, strings.HasPrefix(booking.BookingNumber, "BKG"))
	assert.Len(t, booking.BookingNumber, 13)
	assert.Equal(t, 4200.0, booking.Pricing.Total)
	assert.Equal(t, models.BookingPaymentPending, booking.PaymentStatus)

	var updated models.Room
	require.NoError(t, db.First(&updated, room.ID).Error)
	assert.Equal(t, models.RoomReserved, updated.Status)
	require.NotNil(t, updated.CurrentBookingID)
	assert.Equal(t, booking.ID, *updated.CurrentBookingID)
}

func TestCreateBookingOverlapMatrix(t *testing.T) {
	db := setupTestDB(t)
	hotel := seedHotel(t, db)
	room := seedRoom(t, db, hotel.ID, 2000)
	svc := NewBookingService(db, NewNumberGenerator(nil), 5)

	existing, err := svc.Create(CreateBookingInput{
		HotelID: hotel.ID, RoomID: room.ID, BookingType: models.BookingDaily,
		CheckIn: day(2), CheckOut: day(5), Adults: 1, GuestName: "First Guest", ActorID: 1,
	})
	require.NoError(t, err)

	cases := []struct {
		name     string
		in, out  time.Time
		conflict bool
	}{
		{"new start inside existing", day(3), day(7), true},
		{"new end inside existing", day(0), day(3), true},
		{"new contains existing", day(1), day(6), true},
		{"contained by existing", day(3), day(4), true},
		{"identical interval", day(2), day(5), true},
		{"touching boundary at existing check-out", day(5), day(7), false},
		{"touching boundary at existing check-in", day(0), day(2), false},
		{"fully before", day(-3), day(-1), false},
		{"fully after", day(6), day(8), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			freeRoom(t, db, room.ID)
			booking, err := svc.Create(CreateBookingInput{
				HotelID: hotel.ID, RoomID: room.ID, BookingType: models.BookingDaily,
				CheckIn: tc.in, CheckOut: tc.out, Adults: 1, GuestName: "Second Guest", ActorID: 1,
			})
			if tc.conflict {
				require.Error(t, err)
				assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
				assert.Contains(t, err.Error(), existing.BookingNumber)
			} else {
				require.NoError(t, err)
				// clean up so the next disjoint case is not blocked by this one
				_, cancelErr := svc.Cancel(booking.ID, 1)
				require.NoError(t, cancelErr)
			}
		})
	}
}

func TestCancelledBookingDoesNotBlock(t *testing.T) {
	db := setupTestDB(t)
	hotel := seedHotel(t, db)
	room := seedRoom(t, db, hotel.ID, 2000)
	svc := NewBookingService(db, NewNumberGenerator(nil), 5)

	first, err := svc.Create(CreateBookingInput{
		HotelID: hotel.ID, RoomID: room.ID, BookingType: models.BookingDaily,
		CheckIn: day(0), CheckOut: day(2), Adults: 1, GuestName: "Guest A", ActorID: 1,
	})
	require.NoError(t, err)
	_, err = svc.Cancel(first.ID, 1)
	require.NoError(t, err)

	_, err = svc.Create(CreateBookingInput{
		HotelID: hotel.ID, RoomID: room.ID, BookingType: models.BookingDaily,
		CheckIn: day(0), CheckOut: day(2), Adults: 1, GuestName: "Guest B", ActorID: 1,
	})
	assert.NoError(t, err)
}

func TestCreateBookingRejectsUnavailableRoom(t *testing.T) {
	db := setupTestDB(t)
	hotel := seedHotel(t, db)
	room := seedRoom(t, db, hotel.ID, 2000)
	require.NoError(t, db.Model(&models.Room{}).Where("id = ?", room.ID).
		Update("status", models.RoomMaintenance).Error)
	svc := NewBookingService(db, NewNumberGenerator(nil), 5)

	_, err := svc.Create(CreateBookingInput{
		HotelID: hotel.ID, RoomID: room.ID, BookingType: models.BookingDaily,
		CheckIn: day(0), CheckOut: day(1), Adults: 1, GuestName: "Guest", ActorID: 1,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))
}

func TestHourlyBookingGates(t *testing.T) {
	db := setupTestDB(t)
	hotel := seedHotel(t, db)
	svc := NewBookingService(db, NewNumberGenerator(nil), 5)

	plain := seedRoom(t, db, hotel.ID, 2000)
	in := day(0)

	// room does not allow hourly booking
	_, err := svc.Create(CreateBookingInput{
		HotelID: hotel.ID, RoomID: plain.ID, BookingType: models.BookingHourly,
		CheckIn: in, CheckOut: in.Add(3 * time.Hour), Hours: 3,
		Adults: 1, GuestName: "Guest", ActorID: 1,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))

	hourly := models.Room{
		HotelID: hotel.ID, RoomNumber: "102", Status: models.RoomAvailable,
		MaxAdults: 2, BasePrice: 2000, AllowHourlyBooking: true, HourlyRate: 300,
	}
	require.NoError(t, db.Create(&hourly).Error)

	// check-out drifting more than the tolerance from check-in + hours
	_, err = svc.Create(CreateBookingInput{
		HotelID: hotel.ID, RoomID: hourly.ID, BookingType: models.BookingHourly,
		CheckIn: in, CheckOut: in.Add(3*time.Hour + 10*time.Minute), Hours: 3,
		Adults: 1, GuestName: "Guest", ActorID: 1,
	})
	require.Error(t, err)

	// within tolerance
	booking, err := svc.Create(CreateBookingInput{
		HotelID: hotel.ID, RoomID: hourly.ID, BookingType: models.BookingHourly,
		CheckIn: in, CheckOut: in.Add(3*time.Hour + 2*time.Minute), Hours: 3,
		Adults: 1, GuestName: "Guest", ActorID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 900.0, booking.Pricing.RoomCharges)
	assert.Equal(t, 945.0, booking.Pricing.Total)
}

func TestCheckInLifecycle(t *testing.T) {
	db := setupTestDB(t)
	hotel := seedHotel(t, db)
	room := seedRoom(t, db, hotel.ID, 2000)
	svc := NewBookingService(db, NewNumberGenerator(nil), 5)

	booking, err := svc.Create(CreateBookingInput{
		HotelID: hotel.ID, RoomID: room.ID, BookingType: models.BookingDaily,
		CheckIn: day(0), CheckOut: day(2), Adults: 1, GuestName: "Guest", ActorID: 1,
	})
	require.NoError(t, err)

	checkedIn, err := svc.CheckIn(booking.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCheckedIn, checkedIn.Status)
	require.NotNil(t, checkedIn.ActualCheckIn)
	require.NotNil(t, checkedIn.CheckedInBy)
	assert.Equal(t, uint(7), *checkedIn.CheckedInBy)

	var updated models.Room
	require.NoError(t, db.First(&updated, room.ID).Error)
	assert.Equal(t, models.RoomOccupied, updated.Status)

	// second check-in is rejected
	_, err = svc.CheckIn(booking.ID, 7)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))
}

func TestCheckOutRequiresFullPayment(t *testing.T) {
	db := setupTestDB(t)
	hotel := seedHotel(t, db)
	room := seedRoom(t, db, hotel.ID, 2000)
	svc := NewBookingService(db, NewNumberGenerator(nil), 5)

	booking, err := svc.Create(CreateBookingInput{
		HotelID: hotel.ID, RoomID: room.ID, BookingType: models.BookingDaily,
		CheckIn: day(0), CheckOut: day(2), Adults: 1, GuestName: "Guest", ActorID: 1,
	})
	require.NoError(t, err)
	_, err = svc.CheckIn(booking.ID, 1)
	require.NoError(t, err)

	_, err = svc.CheckOut(booking.ID, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outstanding balance")

	// partial payment is still not enough
	partial, err := svc.RecordPayment(booking.ID, 2000, 1)
	require.NoError(t, err)
	assert.Equal(t, models.BookingPartiallyPaid, partial.PaymentStatus)
	_, err = svc.CheckOut(booking.ID, 1)
	require.Error(t, err)

	paid, err := svc.RecordPayment(booking.ID, 2200, 1)
	require.NoError(t, err)
	assert.Equal(t, models.BookingPaid, paid.PaymentStatus)

	out, err := svc.CheckOut(booking.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCheckedOut, out.Status)
	require.NotNil(t, out.ActualCheckOut)

	var updated models.Room
	require.NoError(t, db.First(&updated, room.ID).Error)
	assert.Equal(t, models.RoomCleaning, updated.Status)
	assert.Nil(t, updated.CurrentBookingID)
}

func TestRecordPaymentNeverExceedsTotal(t *testing.T) {
	db := setupTestDB(t)
	hotel := seedHotel(t, db)
	room := seedRoom(t, db, hotel.ID, 2000)
	svc := NewBookingService(db, NewNumberGenerator(nil), 5)

	booking, err := svc.Create(CreateBookingInput{
		HotelID: hotel.ID, RoomID: room.ID, BookingType: models.BookingDaily,
		CheckIn: day(0), CheckOut: day(2), Adults: 1, GuestName: "Guest", ActorID: 1,
	})
	require.NoError(t, err)

	_, err = svc.RecordPayment(booking.ID, booking.Pricing.Total+1, 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))

	_, err = svc.RecordPayment(booking.ID, -5, 1)
	require.Error(t, err)
}

func TestNoShowOnlyAfterScheduledCheckIn(t *testing.T) {
	db := setupTestDB(t)
	hotel := seedHotel(t, db)
	room := seedRoom(t, db, hotel.ID, 2000)
	svc := NewBookingService(db, NewNumberGenerator(nil), 5)

	future, err := svc.Create(CreateBookingInput{
		HotelID: hotel.ID, RoomID: room.ID, BookingType: models.BookingDaily,
		CheckIn: time.Now().Add(24 * time.Hour), CheckOut: time.Now().Add(48 * time.Hour),
		Adults: 1, GuestName: "Guest", ActorID: 1,
	})
	require.NoError(t, err)

	_, err = svc.MarkNoShow(future.ID, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before the scheduled check-in")

	freeRoom(t, db, room.ID)
	past, err := svc.Create(CreateBookingInput{
		HotelID: hotel.ID, RoomID: room.ID, BookingType: models.BookingDaily,
		CheckIn: time.Now().Add(-2 * time.Hour), CheckOut: time.Now().Add(22 * time.Hour),
		Adults: 1, GuestName: "Guest", ActorID: 1,
	})
	require.NoError(t, err)

	marked, err := svc.MarkNoShow(past.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.BookingNoShow, marked.Status)

	var updated models.Room
	require.NoError(t, db.First(&updated, room.ID).Error)
	assert.Equal(t, models.RoomAvailable, updated.Status)

	// no_show is terminal
	_, err = svc.CheckIn(past.ID, 1)
	require.Error(t, err)
}

func TestBookingStatusTransitions(t *testing.T) {
	assert.True(t, models.BookingConfirmed.CanTransition(models.BookingCheckedIn))
	assert.True(t, models.BookingReserved.CanTransition(models.BookingCheckedIn))
	assert.True(t, models.BookingCheckedIn.CanTransition(models.BookingCheckedOut))
	assert.False(t, models.BookingCheckedIn.CanTransition(models.BookingCancelled))
	assert.False(t, models.BookingCheckedOut.CanTransition(models.BookingCheckedIn))
	assert.False(t, models.BookingCancelled.CanTransition(models.BookingConfirmed))
	assert.False(t, models.BookingPending.CanTransition(models.BookingCheckedIn))
}
