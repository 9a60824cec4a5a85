package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"hoteldine/apperrors"
	"hoteldine/events"
	"hoteldine/models"
)

// hourlyTolerance is how far checkOut may drift from checkIn + hours before
// an hourly booking is rejected.
const hourlyTolerance = 5 * time.Minute

// blockingStatuses are the booking statuses that hold a room's interval.
// pending, cancelled, no_show and checked_out do not block.
var blockingStatuses = []models.BookingStatus{
	models.BookingConfirmed,
	models.BookingCheckedIn,
	models.BookingReserved,
}

// BookingService is the room availability engine and booking state machine.
type BookingService struct {
	db      *gorm.DB
	numbers *NumberGenerator
	// defaultGST applies when the hotel has no GST rate of its own.
	defaultGST int
}

func NewBookingService(db *gorm.DB, numbers *NumberGenerator, defaultGST int) *BookingService {
	return &BookingService{db: db, numbers: numbers, defaultGST: defaultGST}
}

type CreateBookingInput struct {
	HotelID     uint
	RoomID      uint
	BookingType models.BookingType
	CheckIn     time.Time
	CheckOut    time.Time
	Hours       int
	Adults      int
	Children    int
	GuestName   string
	GuestPhone  string
	GuestEmail  string
	Discount    float64
	Advance     float64
	ActorID     uint
}

// Create validates the request, runs the overlap check and persists the
// booking plus the room side effects in one transaction, so two concurrent
// requests cannot both pass the check and both write.
func (s *BookingService) Create(in CreateBookingInput) (*models.Booking, error) {
	var hotel models.Hotel
	if err := s.db.First(&hotel, in.HotelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("hotel %d not found", in.HotelID)
		}
		return nil, apperrors.Internal(err)
	}

	var room models.Room
	if err := s.db.First(&room, in.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("room %d not found", in.RoomID)
		}
		return nil, apperrors.Internal(err)
	}
	if room.HotelID != in.HotelID {
		return nil, apperrors.BadRequest("room %s does not belong to this hotel", room.RoomNumber)
	}

	if in.GuestName == "" {
		return nil, apperrors.Validation("guest_name is required")
	}
	if !in.CheckIn.Before(in.CheckOut) {
		return nil, apperrors.BadRequest("check-in must be before check-out")
	}

	switch in.BookingType {
	case models.BookingHourly:
		if !room.AllowHourlyBooking || room.HourlyRate <= 0 {
			return nil, apperrors.BadRequest("room %s does not allow hourly booking", room.RoomNumber)
		}
		if in.Hours <= 0 {
			return nil, apperrors.BadRequest("hours must be positive for an hourly booking")
		}
		expected := in.CheckIn.Add(time.Duration(in.Hours) * time.Hour)
		drift := in.CheckOut.Sub(expected)
		if drift < -hourlyTolerance || drift > hourlyTolerance {
			return nil, apperrors.BadRequest("check-out must equal check-in plus %d hours", in.Hours)
		}
	case models.BookingDaily:
		// nothing extra
	default:
		return nil, apperrors.BadRequest("invalid booking type: %q", in.BookingType)
	}

	if room.Status != models.RoomAvailable {
		return nil, apperrors.BadRequest("room %s is %s", room.RoomNumber, room.Status)
	}

	gstRate := hotel.EffectiveGSTRate(s.defaultGST)
	var pricing models.BookingPricing
	if in.BookingType == models.BookingHourly {
		pricing = PriceHourlyBooking(&room, in.Hours, gstRate)
	} else {
		pricing = PriceDailyBooking(&room, in.CheckIn, in.CheckOut, in.Adults, in.Children, gstRate)
	}
	pricing.Discount = in.Discount

	if in.Advance < 0 || in.Advance > pricing.Total {
		return nil, apperrors.BadRequest("advance payment cannot exceed the booking total")
	}

	booking := models.Booking{
		HotelID:        in.HotelID,
		RoomID:         in.RoomID,
		BookingType:    in.BookingType,
		Hours:          in.Hours,
		CheckIn:        in.CheckIn,
		CheckOut:       in.CheckOut,
		Adults:         in.Adults,
		Children:       in.Children,
		GuestName:      in.GuestName,
		GuestPhone:     in.GuestPhone,
		GuestEmail:     in.GuestEmail,
		Status:         models.BookingConfirmed,
		Pricing:        pricing,
		AdvancePayment: in.Advance,
		CreatedBy:      in.ActorID,
	}
	booking.RefreshPaymentStatus()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if blocking, err := findBlockingBooking(tx, room.ID, in.CheckIn, in.CheckOut); err != nil {
			return err
		} else if blocking != nil {
			return apperrors.Conflict("room %s is already booked by %s for this period",
				room.RoomNumber, blocking.BookingNumber)
		}

		number, err := s.numbers.BookingNumber(tx)
		if err != nil {
			return err
		}
		booking.BookingNumber = number

		if err := tx.Create(&booking).Error; err != nil {
			return apperrors.Internal(err)
		}

		return tx.Model(&models.Room{}).Where("id = ?", room.ID).Updates(map[string]interface{}{
			"status":             models.RoomReserved,
			"current_booking_id": booking.ID,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	room.Status = models.RoomReserved
	room.CurrentBookingID = &booking.ID
	events.PublishBookingCreated(booking)
	events.PublishRoomUpdated(room)

	return &booking, nil
}

// findBlockingBooking returns a blocking booking whose interval conflicts
// with [checkIn, checkOut) on half-open semantics. The three cases are the
// classic decomposition of `a < d AND c < b`: the new start falls inside an
// existing stay, the new end falls inside one, or the new stay fully contains
// one. Touching boundaries (existing check-out == new check-in) do not
// conflict.
func findBlockingBooking(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time) (*models.Booking, error) {
	var blocking models.Booking
	err := tx.
		Where("room_id = ? AND status IN ?", roomID, blockingStatuses).
		Where(
			tx.Session(&gorm.Session{NewDB: true}).
				Where("check_in <= ? AND check_out > ?", checkIn, checkIn).
				Or("check_in < ? AND check_out >= ?", checkOut, checkOut).
				Or("check_in >= ? AND check_out <= ?", checkIn, checkOut),
		).
		First(&blocking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &blocking, nil
}

// CheckIn moves a confirmed booking to checked_in and the room to occupied.
func (s *BookingService) CheckIn(bookingID, actorID uint) (*models.Booking, error) {
	booking, err := s.load(bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status == models.BookingCheckedIn {
		return nil, apperrors.BadRequest("booking %s is already checked in", booking.BookingNumber)
	}
	if !booking.Status.CanTransition(models.BookingCheckedIn) {
		return nil, apperrors.BadRequest("cannot check in a %s booking", booking.Status)
	}

	now := time.Now()
	booking.Status = models.BookingCheckedIn
	booking.ActualCheckIn = &now
	booking.CheckedInBy = &actorID

	if err := s.saveWithRoom(booking, models.RoomOccupied, &booking.ID); err != nil {
		return nil, err
	}
	events.PublishBookingUpdated(*booking)
	return booking, nil
}

// CheckOut completes a stay. It is hard-gated on full payment; the room goes
// to cleaning and drops its back-reference.
func (s *BookingService) CheckOut(bookingID, actorID uint) (*models.Booking, error) {
	booking, err := s.load(bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status != models.BookingCheckedIn {
		return nil, apperrors.BadRequest("cannot check out a %s booking", booking.Status)
	}
	if booking.PaymentStatus != models.BookingPaid {
		return nil, apperrors.BadRequest("outstanding balance of %.2f must be settled before check-out",
			booking.Outstanding())
	}

	now := time.Now()
	booking.Status = models.BookingCheckedOut
	booking.ActualCheckOut = &now
	booking.CheckedOutBy = &actorID

	if err := s.saveWithRoom(booking, models.RoomCleaning, nil); err != nil {
		return nil, err
	}
	events.PublishBookingUpdated(*booking)
	return booking, nil
}

// Cancel releases the room back to available.
func (s *BookingService) Cancel(bookingID, actorID uint) (*models.Booking, error) {
	booking, err := s.load(bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransition(models.BookingCancelled) {
		return nil, apperrors.BadRequest("cannot cancel a %s booking", booking.Status)
	}

	booking.Status = models.BookingCancelled
	booking.CancelledBy = &actorID

	if err := s.saveWithRoom(booking, models.RoomAvailable, nil); err != nil {
		return nil, err
	}
	events.PublishBookingUpdated(*booking)
	return booking, nil
}

// MarkNoShow is only legal once the scheduled check-in time has passed.
func (s *BookingService) MarkNoShow(bookingID, actorID uint) (*models.Booking, error) {
	booking, err := s.load(bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransition(models.BookingNoShow) {
		return nil, apperrors.BadRequest("cannot mark a %s booking as no-show", booking.Status)
	}
	if time.Now().Before(booking.CheckIn) {
		return nil, apperrors.BadRequest("cannot mark no-show before the scheduled check-in time")
	}

	booking.Status = models.BookingNoShow

	if err := s.saveWithRoom(booking, models.RoomAvailable, nil); err != nil {
		return nil, err
	}
	events.PublishBookingUpdated(*booking)
	return booking, nil
}

// RecordPayment adds to the advance payment. The cumulative paid amount may
// never exceed the pricing total.
func (s *BookingService) RecordPayment(bookingID uint, amount float64, actorID uint) (*models.Booking, error) {
	booking, err := s.load(bookingID)
	if err != nil {
		return nil, err
	}

	if amount <= 0 {
		return nil, apperrors.BadRequest("payment amount must be positive")
	}
	if booking.Status == models.BookingCancelled || booking.Status == models.BookingNoShow {
		return nil, apperrors.BadRequest("cannot record payment on a %s booking", booking.Status)
	}
	if booking.AdvancePayment+amount > booking.Pricing.Total {
		return nil, apperrors.BadRequest("payment of %.2f would exceed the booking total of %.2f",
			amount, booking.Pricing.Total)
	}

	booking.AdvancePayment += amount
	booking.RefreshPaymentStatus()

	if err := s.db.Save(booking).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	events.PublishBookingUpdated(*booking)
	return booking, nil
}

// Get returns one booking with its room preloaded.
func (s *BookingService) Get(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Preload("Room").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("booking %d not found", bookingID)
		}
		return nil, apperrors.Internal(err)
	}
	return &booking, nil
}

// ListByHotel returns a hotel's bookings, newest first.
func (s *BookingService) ListByHotel(hotelID uint, status string) ([]models.Booking, error) {
	q := s.db.Preload("Room").Where("hotel_id = ?", hotelID).Order("created_at DESC")
	if status != "" {
		parsed, err := models.ParseBookingStatus(status)
		if err != nil {
			return nil, apperrors.BadRequest("%v", err)
		}
		q = q.Where("status = ?", parsed)
	}
	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return bookings, nil
}

func (s *BookingService) load(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("booking %d not found", bookingID)
		}
		return nil, apperrors.Internal(err)
	}
	return &booking, nil
}

// saveWithRoom persists the booking and the room status change together.
func (s *BookingService) saveWithRoom(booking *models.Booking, roomStatus models.RoomStatus, currentBookingID *uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(booking).Error; err != nil {
			return apperrors.Internal(err)
		}
		if err := tx.Model(&models.Room{}).Where("id = ?", booking.RoomID).Updates(map[string]interface{}{
			"status":             roomStatus,
			"current_booking_id": currentBookingID,
		}).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
}
