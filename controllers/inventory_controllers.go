package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hoteldine/models"
	"hoteldine/services"
	"hoteldine/utils"
)

type InventoryController struct {
	DB        *gorm.DB
	Inventory *services.InventoryService
}

func NewInventoryController(db *gorm.DB, inventory *services.InventoryService) *InventoryController {
	return &InventoryController{DB: db, Inventory: inventory}
}

func (ic *InventoryController) CreateItem(c *gin.Context) {
	hotelID, ok := scopedHotelID(c)
	if !ok {
		return
	}
	if !requireHotelAccess(c, hotelID) {
		return
	}

	var body struct {
		Name        string  `json:"name" binding:"required"`
		Category    string  `json:"category"`
		Unit        string  `json:"unit" binding:"required"`
		Current     float64 `json:"current"`
		Minimum     float64 `json:"minimum"`
		Maximum     float64 `json:"maximum"`
		CostPerUnit float64 `json:"cost_per_unit"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.InventoryItem{
		HotelID:  hotelID,
		Name:     body.Name,
		Category: body.Category,
		Unit:     body.Unit,
		Quantity: models.InventoryQuantity{
			Current: body.Current,
			Minimum: body.Minimum,
			Maximum: body.Maximum,
		},
		CostPerUnit: body.CostPerUnit,
		IsActive:    true,
	}
	if err := ic.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Inventory item created", item)
}

type inventoryItemView struct {
	models.InventoryItem
	StockLevel models.StockLevel `json:"stock_level"`
}

func (ic *InventoryController) ListItems(c *gin.Context) {
	hotelID, ok := scopedHotelID(c)
	if !ok {
		return
	}
	if !requireHotelAccess(c, hotelID) {
		return
	}

	var items []models.InventoryItem
	if err := ic.DB.Where("hotel_id = ? AND is_active = ?", hotelID, true).
		Order("name").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	views := make([]inventoryItemView, 0, len(items))
	for i := range items {
		views = append(views, inventoryItemView{
			InventoryItem: items[i],
			StockLevel:    items[i].StockLevel(),
		})
	}
	utils.RespondJSON(c, http.StatusOK, "List of inventory items", views)
}

func (ic *InventoryController) GetItem(c *gin.Context) {
	item, ok := ic.loadScoped(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Inventory item detail", inventoryItemView{
		InventoryItem: *item,
		StockLevel:    item.StockLevel(),
	})
}

// UpdateItem edits item metadata and thresholds. The current quantity is
// deliberately absent from the payload; it moves only through the stock
// operations so the transaction ledger stays complete.
func (ic *InventoryController) UpdateItem(c *gin.Context) {
	item, ok := ic.loadScoped(c)
	if !ok {
		return
	}

	var body struct {
		Name        string  `json:"name" binding:"required"`
		Category    string  `json:"category"`
		Unit        string  `json:"unit" binding:"required"`
		Minimum     float64 `json:"minimum"`
		Maximum     float64 `json:"maximum"`
		CostPerUnit float64 `json:"cost_per_unit"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item.Name = body.Name
	item.Category = body.Category
	item.Unit = body.Unit
	item.Quantity.Minimum = body.Minimum
	item.Quantity.Maximum = body.Maximum
	item.CostPerUnit = body.CostPerUnit

	if err := ic.DB.Save(item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Inventory item updated", item)
}

func (ic *InventoryController) Restock(c *gin.Context) {
	item, ok := ic.loadScoped(c)
	if !ok {
		return
	}
	var body struct {
		Quantity  float64 `json:"quantity" binding:"required,gt=0"`
		Reference string  `json:"reference"`
		Note      string  `json:"note"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updated, err := ic.Inventory.Restock(item.ID, body.Quantity, body.Reference, body.Note, actorID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Stock received", updated)
}

func (ic *InventoryController) Adjust(c *gin.Context) {
	item, ok := ic.loadScoped(c)
	if !ok {
		return
	}
	var body struct {
		CountedQuantity *float64 `json:"counted_quantity" binding:"required"`
		Note            string   `json:"note"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updated, err := ic.Inventory.Adjust(item.ID, *body.CountedQuantity, body.Note, actorID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Stock adjusted", updated)
}

func (ic *InventoryController) RecordWastage(c *gin.Context) {
	item, ok := ic.loadScoped(c)
	if !ok {
		return
	}
	var body struct {
		Quantity float64 `json:"quantity" binding:"required,gt=0"`
		Note     string  `json:"note"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updated, err := ic.Inventory.RecordWastage(item.ID, body.Quantity, body.Note, actorID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Wastage recorded", updated)
}

func (ic *InventoryController) ListTransactions(c *gin.Context) {
	item, ok := ic.loadScoped(c)
	if !ok {
		return
	}
	txns, err := ic.Inventory.Transactions(item.ID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Stock transactions", txns)
}

func (ic *InventoryController) loadScoped(c *gin.Context) (*models.InventoryItem, bool) {
	id, ok := idParam(c, "id")
	if !ok {
		return nil, false
	}
	var item models.InventoryItem
	if err := ic.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("inventory item not found"))
		return nil, false
	}
	if !requireHotelAccess(c, item.HotelID) {
		return nil, false
	}
	return &item, true
}
