package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hoteldine/models"
	"hoteldine/utils"
)

type MenuCategoryController struct {
	DB *gorm.DB
}

func NewMenuCategoryController(db *gorm.DB) *MenuCategoryController {
	return &MenuCategoryController{DB: db}
}

func (cc *MenuCategoryController) CreateCategory(c *gin.Context) {
	hotelID, ok := scopedHotelID(c)
	if !ok {
		return
	}
	if !requireHotelAccess(c, hotelID) {
		return
	}

	var body struct {
		Name     string `json:"name" binding:"required"`
		ParentID *uint  `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.ParentID != nil {
		var parent models.MenuCategory
		if err := cc.DB.Where("id = ? AND hotel_id = ?", *body.ParentID, hotelID).
			First(&parent).Error; err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("parent category not found"))
			return
		}
		if parent.ParentID != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("categories nest only one level deep"))
			return
		}
	}

	category := models.MenuCategory{
		HotelID:  hotelID,
		Name:     body.Name,
		ParentID: body.ParentID,
		IsActive: true,
	}
	if err := cc.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

func (cc *MenuCategoryController) ListCategories(c *gin.Context) {
	hotelID, ok := scopedHotelID(c)
	if !ok {
		return
	}
	if !requireHotelAccess(c, hotelID) {
		return
	}

	var categories []models.MenuCategory
	if err := cc.DB.Where("hotel_id = ?", hotelID).Order("name").
		Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of categories", categories)
}

func (cc *MenuCategoryController) UpdateCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var category models.MenuCategory
	if err := cc.DB.First(&category, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("category not found"))
		return
	}
	if !requireHotelAccess(c, category.HotelID) {
		return
	}

	var body struct {
		Name     string `json:"name" binding:"required"`
		IsActive *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category.Name = body.Name
	if body.IsActive != nil {
		category.IsActive = *body.IsActive
	}
	if err := cc.DB.Save(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

func (cc *MenuCategoryController) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var category models.MenuCategory
	if err := cc.DB.First(&category, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("category not found"))
		return
	}
	if !requireHotelAccess(c, category.HotelID) {
		return
	}

	var count int64
	cc.DB.Model(&models.MenuItem{}).
		Where("category_id = ? AND is_active = ?", id, true).Count(&count)
	if count > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("category still has active menu items"))
		return
	}

	category.IsActive = false
	if err := cc.DB.Save(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category removed", nil)
}
