package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hoteldine/events"
	"hoteldine/models"
	"hoteldine/utils"
)

type RoomController struct {
	DB *gorm.DB
}

func NewRoomController(db *gorm.DB) *RoomController {
	return &RoomController{DB: db}
}

type roomRequest struct {
	RoomNumber         string         `json:"room_number" binding:"required"`
	Floor              string         `json:"floor"`
	RoomType           string         `json:"room_type"`
	MaxAdults          int            `json:"max_adults"`
	MaxChildren        int            `json:"max_children"`
	BasePrice          float64        `json:"base_price" binding:"required"`
	WeekendPrice       float64        `json:"weekend_price"`
	ExtraAdultCharge   float64        `json:"extra_adult_charge"`
	ExtraChildCharge   float64        `json:"extra_child_charge"`
	AllowHourlyBooking bool           `json:"allow_hourly_booking"`
	HourlyRate         float64        `json:"hourly_rate"`
	Amenities          datatypes.JSON `json:"amenities"`
}

func (rc *RoomController) CreateRoom(c *gin.Context) {
	hotelID, ok := scopedHotelID(c)
	if !ok {
		return
	}
	if !requireHotelAccess(c, hotelID) {
		return
	}

	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	room := models.Room{
		HotelID:            hotelID,
		RoomNumber:         req.RoomNumber,
		Floor:              req.Floor,
		RoomType:           req.RoomType,
		Status:             models.RoomAvailable,
		MaxAdults:          req.MaxAdults,
		MaxChildren:        req.MaxChildren,
		BasePrice:          req.BasePrice,
		WeekendPrice:       req.WeekendPrice,
		ExtraAdultCharge:   req.ExtraAdultCharge,
		ExtraChildCharge:   req.ExtraChildCharge,
		AllowHourlyBooking: req.AllowHourlyBooking,
		HourlyRate:         req.HourlyRate,
		Amenities:          req.Amenities,
	}
	if room.MaxAdults <= 0 {
		room.MaxAdults = 2
	}

	if err := rc.DB.Create(&room).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Room created", room)
}

func (rc *RoomController) ListRooms(c *gin.Context) {
	hotelID, ok := scopedHotelID(c)
	if !ok {
		return
	}
	if !requireHotelAccess(c, hotelID) {
		return
	}

	query := rc.DB.Where("hotel_id = ?", hotelID)
	if status := c.Query("status"); status != "" {
		parsed, err := models.ParseRoomStatus(status)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		query = query.Where("status = ?", parsed)
	}

	var rooms []models.Room
	if err := query.Order("room_number").Find(&rooms).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of rooms", rooms)
}

func (rc *RoomController) GetRoom(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var room models.Room
	if err := rc.DB.First(&room, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("room not found"))
		return
	}
	if !requireHotelAccess(c, room.HotelID) {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Room detail", room)
}

func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var room models.Room
	if err := rc.DB.First(&room, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("room not found"))
		return
	}
	if !requireHotelAccess(c, room.HotelID) {
		return
	}

	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	room.RoomNumber = req.RoomNumber
	room.Floor = req.Floor
	room.RoomType = req.RoomType
	room.MaxAdults = req.MaxAdults
	room.MaxChildren = req.MaxChildren
	room.BasePrice = req.BasePrice
	room.WeekendPrice = req.WeekendPrice
	room.ExtraAdultCharge = req.ExtraAdultCharge
	room.ExtraChildCharge = req.ExtraChildCharge
	room.AllowHourlyBooking = req.AllowHourlyBooking
	room.HourlyRate = req.HourlyRate
	if req.Amenities != nil {
		room.Amenities = req.Amenities
	}

	if err := rc.DB.Save(&room).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	events.PublishRoomUpdated(room)
	utils.RespondJSON(c, http.StatusOK, "Room updated", room)
}

// UpdateRoomStatus handles manual status moves (maintenance, cleaning done).
// Occupancy moves belong to the booking flow and are rejected here.
func (rc *RoomController) UpdateRoomStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	status, err := models.ParseRoomStatus(body.Status)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if status == models.RoomOccupied || status == models.RoomReserved {
		utils.RespondError(c, http.StatusBadRequest,
			errors.New("occupied and reserved are set by the booking flow"))
		return
	}

	var room models.Room
	if err := rc.DB.First(&room, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("room not found"))
		return
	}
	if !requireHotelAccess(c, room.HotelID) {
		return
	}
	if room.CurrentBookingID != nil {
		utils.RespondError(c, http.StatusConflict,
			errors.New("room has an active booking"))
		return
	}

	room.Status = status
	if err := rc.DB.Save(&room).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	events.PublishRoomUpdated(room)
	utils.RespondJSON(c, http.StatusOK, "Room status updated", room)
}
