package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hoteldine/models"
	"hoteldine/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

type menuItemRequest struct {
	CategoryID    uint           `json:"category_id" binding:"required"`
	SubCategoryID *uint          `json:"sub_category_id"`
	Name          string         `json:"name" binding:"required"`
	Description   string         `json:"description"`
	Price         float64        `json:"price" binding:"required,gt=0"`
	IsAvailable   *bool          `json:"is_available"`
	ImageURLs     datatypes.JSON `json:"image_urls"`
	Variants      []struct {
		Name  string  `json:"name" binding:"required"`
		Price float64 `json:"price" binding:"required,gt=0"`
	} `json:"variants"`
	Ingredients []struct {
		InventoryItemID uint    `json:"inventory_item_id" binding:"required"`
		Quantity        float64 `json:"quantity" binding:"required,gt=0"`
		Unit            string  `json:"unit"`
	} `json:"ingredients"`
}

func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	hotelID, ok := scopedHotelID(c)
	if !ok {
		return
	}
	if !requireHotelAccess(c, hotelID) {
		return
	}

	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.MenuCategory
	if err := mc.DB.Where("id = ? AND hotel_id = ?", req.CategoryID, hotelID).
		First(&category).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("category not found for this hotel"))
		return
	}

	item := models.MenuItem{
		HotelID:       hotelID,
		CategoryID:    req.CategoryID,
		SubCategoryID: req.SubCategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		IsAvailable:   true,
		IsActive:      true,
		ImageURLs:     req.ImageURLs,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	for _, v := range req.Variants {
		item.Variants = append(item.Variants, models.MenuVariant{Name: v.Name, Price: v.Price})
	}
	for _, ing := range req.Ingredients {
		item.Ingredients = append(item.Ingredients, models.MenuIngredient{
			InventoryItemID: ing.InventoryItemID,
			Quantity:        ing.Quantity,
			Unit:            ing.Unit,
		})
	}

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

func (mc *MenuController) ListMenuItems(c *gin.Context) {
	hotelID, ok := scopedHotelID(c)
	if !ok {
		return
	}
	if !requireHotelAccess(c, hotelID) {
		return
	}
	mc.listForHotel(c, hotelID, false)
}

// ListPublicMenu is the unauthenticated catalog for the table QR flow; it
// only shows orderable items and takes the hotel from the path.
func (mc *MenuController) ListPublicMenu(c *gin.Context) {
	hotelID, ok := idParam(c, "hotel_id")
	if !ok {
		return
	}
	mc.listForHotel(c, hotelID, true)
}

func (mc *MenuController) listForHotel(c *gin.Context, hotelID uint, publicOnly bool) {
	query := mc.DB.Preload("Variants").Where("hotel_id = ?", hotelID)
	if publicOnly {
		query = query.Where("is_available = ? AND is_active = ?", true, true)
	} else {
		query = query.Preload("Ingredients")
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category_id"))
			return
		}
		query = query.Where("category_id = ?", id)
	}

	var items []models.MenuItem
	if err := query.Order("name").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

func (mc *MenuController) GetMenuItem(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var item models.MenuItem
	if err := mc.DB.Preload("Variants").Preload("Ingredients").
		First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}
	if !requireHotelAccess(c, item.HotelID) {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}
	if !requireHotelAccess(c, item.HotelID) {
		return
	}

	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item.CategoryID = req.CategoryID
	item.SubCategoryID = req.SubCategoryID
	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.ImageURLs != nil {
		item.ImageURLs = req.ImageURLs
	}

	err := mc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		// variants and recipe are replaced wholesale on update
		if req.Variants != nil {
			if err := tx.Where("menu_item_id = ?", item.ID).
				Delete(&models.MenuVariant{}).Error; err != nil {
				return err
			}
			for _, v := range req.Variants {
				variant := models.MenuVariant{MenuItemID: item.ID, Name: v.Name, Price: v.Price}
				if err := tx.Create(&variant).Error; err != nil {
					return err
				}
			}
		}
		if req.Ingredients != nil {
			if err := tx.Where("menu_item_id = ?", item.ID).
				Delete(&models.MenuIngredient{}).Error; err != nil {
				return err
			}
			for _, ing := range req.Ingredients {
				row := models.MenuIngredient{
					MenuItemID:      item.ID,
					InventoryItemID: ing.InventoryItemID,
					Quantity:        ing.Quantity,
					Unit:            ing.Unit,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// SetAvailability is the quick kitchen toggle used when an item runs out.
func (mc *MenuController) SetAvailability(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var body struct {
		IsAvailable *bool `json:"is_available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}
	if !requireHotelAccess(c, item.HotelID) {
		return
	}

	item.IsAvailable = *body.IsAvailable
	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Availability updated", item)
}

// DeleteMenuItem retires an item from the catalog. Orders keep their frozen
// line snapshots, so this is a soft delete.
func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}
	if !requireHotelAccess(c, item.HotelID) {
		return
	}

	item.IsActive = false
	item.IsAvailable = false
	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item removed", nil)
}
