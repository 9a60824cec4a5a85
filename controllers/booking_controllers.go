package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hoteldine/models"
	"hoteldine/services"
	"hoteldine/utils"
)

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{Bookings: bookings}
}

func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req struct {
		RoomID      uint      `json:"room_id" binding:"required"`
		BookingType string    `json:"booking_type" binding:"required"`
		CheckIn     time.Time `json:"check_in" binding:"required"`
		CheckOut    time.Time `json:"check_out" binding:"required"`
		Hours       int       `json:"hours"`
		Adults      int       `json:"adults" binding:"required,min=1"`
		Children    int       `json:"children"`
		GuestName   string    `json:"guest_name" binding:"required"`
		GuestPhone  string    `json:"guest_phone"`
		GuestEmail  string    `json:"guest_email"`
		Discount    float64   `json:"discount"`
		Advance     float64   `json:"advance"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	bookingType, err := models.ParseBookingType(req.BookingType)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hotelID, ok := scopedHotelID(c)
	if !ok {
		return
	}
	if !requireHotelAccess(c, hotelID) {
		return
	}

	booking, err := bc.Bookings.Create(services.CreateBookingInput{
		HotelID:     hotelID,
		RoomID:      req.RoomID,
		BookingType: bookingType,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		Hours:       req.Hours,
		Adults:      req.Adults,
		Children:    req.Children,
		GuestName:   req.GuestName,
		GuestPhone:  req.GuestPhone,
		GuestEmail:  req.GuestEmail,
		Discount:    req.Discount,
		Advance:     req.Advance,
		ActorID:     actorID(c),
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Booking created", booking)
}

func (bc *BookingController) ListBookings(c *gin.Context) {
	hotelID, ok := scopedHotelID(c)
	if !ok {
		return
	}
	if !requireHotelAccess(c, hotelID) {
		return
	}

	bookings, err := bc.Bookings.ListByHotel(hotelID, c.Query("status"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of bookings", bookings)
}

func (bc *BookingController) GetBooking(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	booking, err := bc.Bookings.Get(id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if !requireHotelAccess(c, booking.HotelID) {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking detail", booking)
}

// transition wraps the shared load/scope-check/apply pattern for the
// lifecycle endpoints below.
func (bc *BookingController) transition(c *gin.Context, message string,
	apply func(bookingID, actorID uint) (*models.Booking, error)) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	booking, err := bc.Bookings.Get(id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if !requireHotelAccess(c, booking.HotelID) {
		return
	}

	booking, err = apply(id, actorID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, booking)
}

func (bc *BookingController) CheckIn(c *gin.Context) {
	bc.transition(c, "Guest checked in", bc.Bookings.CheckIn)
}

func (bc *BookingController) CheckOut(c *gin.Context) {
	bc.transition(c, "Guest checked out", bc.Bookings.CheckOut)
}

func (bc *BookingController) CancelBooking(c *gin.Context) {
	bc.transition(c, "Booking cancelled", bc.Bookings.Cancel)
}

func (bc *BookingController) MarkNoShow(c *gin.Context) {
	bc.transition(c, "Booking marked no-show", bc.Bookings.MarkNoShow)
}

func (bc *BookingController) RecordPayment(c *gin.Context) {
	var req struct {
		Amount float64 `json:"amount" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	bc.transition(c, "Payment recorded", func(bookingID, actorID uint) (*models.Booking, error) {
		return bc.Bookings.RecordPayment(bookingID, req.Amount, actorID)
	})
}
