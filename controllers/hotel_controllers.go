package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hoteldine/models"
	"hoteldine/utils"
)

// HotelController manages the tenant records themselves; every route behind
// it is admin-only.
type HotelController struct {
	DB *gorm.DB
}

func NewHotelController(db *gorm.DB) *HotelController {
	return &HotelController{DB: db}
}

type hotelRequest struct {
	Name      string `json:"name" binding:"required"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	GSTNumber string `json:"gst_number"`
	GSTRate   int    `json:"gst_rate"`
	TaxRate   int    `json:"tax_rate"`
	Currency  string `json:"currency"`
}

func (hc *HotelController) CreateHotel(c *gin.Context) {
	var req hotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hotel := models.Hotel{
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		Phone:     req.Phone,
		Email:     req.Email,
		GSTNumber: req.GSTNumber,
		IsActive:  true,
		Settings: models.HotelSettings{
			GSTRate:  req.GSTRate,
			TaxRate:  req.TaxRate,
			Currency: req.Currency,
		},
	}
	if hotel.Settings.Currency == "" {
		hotel.Settings.Currency = "INR"
	}

	if err := hc.DB.Create(&hotel).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Hotel created", hotel)
}

func (hc *HotelController) ListHotels(c *gin.Context) {
	var hotels []models.Hotel
	if err := hc.DB.Order("id").Find(&hotels).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of hotels", hotels)
}

func (hc *HotelController) GetHotel(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var hotel models.Hotel
	if err := hc.DB.First(&hotel, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("hotel not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Hotel detail", hotel)
}

func (hc *HotelController) UpdateHotel(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var hotel models.Hotel
	if err := hc.DB.First(&hotel, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("hotel not found"))
		return
	}

	var req hotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hotel.Name = req.Name
	hotel.Address = req.Address
	hotel.City = req.City
	hotel.Phone = req.Phone
	hotel.Email = req.Email
	hotel.GSTNumber = req.GSTNumber
	hotel.Settings.GSTRate = req.GSTRate
	hotel.Settings.TaxRate = req.TaxRate
	if req.Currency != "" {
		hotel.Settings.Currency = req.Currency
	}

	if err := hc.DB.Save(&hotel).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Hotel updated", hotel)
}

// DeactivateHotel soft-disables a tenant instead of deleting its history.
func (hc *HotelController) DeactivateHotel(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var hotel models.Hotel
	if err := hc.DB.First(&hotel, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("hotel not found"))
		return
	}
	hotel.IsActive = false
	if err := hc.DB.Save(&hotel).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Hotel deactivated", hotel)
}
