package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hoteldine/models"
	"hoteldine/utils"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

func (nc *NotificationController) ListNotifications(c *gin.Context) {
	hotelID, ok := scopedHotelID(c)
	if !ok {
		return
	}
	if !requireHotelAccess(c, hotelID) {
		return
	}

	var notifications []models.Notification
	if err := nc.DB.Where("hotel_id = ?", hotelID).
		Order("id DESC").Limit(100).Find(&notifications).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of notifications", notifications)
}
