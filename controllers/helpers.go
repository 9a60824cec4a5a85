package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hoteldine/models"
	"hoteldine/utils"
)

// idParam parses a numeric path parameter, responding 400 on garbage.
// The bool result is false when the response has already been written.
func idParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid "+name))
		return 0, false
	}
	return uint(id), true
}

func actorID(c *gin.Context) uint {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func actorRole(c *gin.Context) string {
	if v, ok := c.Get("role"); ok {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

func actorHotelID(c *gin.Context) *uint {
	if v, ok := c.Get("hotel_id"); ok {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}

// requireHotelAccess enforces tenant isolation: admins reach every hotel,
// everyone else only their own. Responds 403 and returns false on mismatch.
func requireHotelAccess(c *gin.Context, hotelID uint) bool {
	if actorRole(c) == models.RoleAdmin {
		return true
	}
	own := actorHotelID(c)
	if own != nil && *own == hotelID {
		return true
	}
	utils.RespondError(c, http.StatusForbidden, errors.New("access to this hotel is not allowed"))
	return false
}

// scopedHotelID resolves which hotel a list/create call targets: admins may
// pass ?hotel_id=, hotel-bound staff always get their own.
func scopedHotelID(c *gin.Context) (uint, bool) {
	if own := actorHotelID(c); own != nil && actorRole(c) != models.RoleAdmin {
		return *own, true
	}
	raw := c.Query("hotel_id")
	if raw == "" {
		if own := actorHotelID(c); own != nil {
			return *own, true
		}
		utils.RespondError(c, http.StatusBadRequest, errors.New("hotel_id query parameter required"))
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid hotel_id"))
		return 0, false
	}
	return uint(id), true
}
