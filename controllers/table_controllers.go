package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"hoteldine/models"
	"hoteldine/utils"
)

type TableController struct {
	DB *gorm.DB
	// PublicBaseURL is the origin embedded in table QR codes.
	PublicBaseURL string
}

func NewTableController(db *gorm.DB, publicBaseURL string) *TableController {
	if publicBaseURL == "" {
		publicBaseURL = "http://localhost:8080"
	}
	return &TableController{DB: db, PublicBaseURL: publicBaseURL}
}

func (tc *TableController) CreateTable(c *gin.Context) {
	hotelID, ok := scopedHotelID(c)
	if !ok {
		return
	}
	if !requireHotelAccess(c, hotelID) {
		return
	}

	var body struct {
		TableNumber string `json:"table_number" binding:"required"`
		Capacity    int    `json:"capacity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		HotelID:     hotelID,
		TableNumber: body.TableNumber,
		Capacity:    body.Capacity,
		Status:      models.TableAvailable,
	}
	if table.Capacity <= 0 {
		table.Capacity = 4
	}
	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

func (tc *TableController) ListTables(c *gin.Context) {
	hotelID, ok := scopedHotelID(c)
	if !ok {
		return
	}
	if !requireHotelAccess(c, hotelID) {
		return
	}

	query := tc.DB.Where("hotel_id = ?", hotelID)
	if status := c.Query("status"); status != "" {
		parsed, err := models.ParseTableStatus(status)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		query = query.Where("status = ?", parsed)
	}

	var tables []models.Table
	if err := query.Order("table_number").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetPublicTable lets the QR landing page confirm the table it scanned.
func (tc *TableController) GetPublicTable(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

func (tc *TableController) UpdateTable(c *gin.Context) {
	table, ok := tc.loadScoped(c)
	if !ok {
		return
	}

	var body struct {
		TableNumber string `json:"table_number" binding:"required"`
		Capacity    int    `json:"capacity" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table.TableNumber = body.TableNumber
	table.Capacity = body.Capacity
	if err := tc.DB.Save(table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

func (tc *TableController) DeleteTable(c *gin.Context) {
	table, ok := tc.loadScoped(c)
	if !ok {
		return
	}
	if table.Status != models.TableAvailable {
		utils.RespondError(c, http.StatusConflict, errors.New("table is in use"))
		return
	}
	if err := tc.DB.Delete(table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table removed", nil)
}

// TableQRCode renders the PNG guests scan to reach the public ordering page.
func (tc *TableController) TableQRCode(c *gin.Context) {
	table, ok := tc.loadScoped(c)
	if !ok {
		return
	}

	target := fmt.Sprintf("%s/order?hotel_id=%d&table_id=%d",
		tc.PublicBaseURL, table.HotelID, table.ID)
	png, err := qrcode.Encode(target, qrcode.Medium, 256)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (tc *TableController) loadScoped(c *gin.Context) (*models.Table, bool) {
	id, ok := idParam(c, "id")
	if !ok {
		return nil, false
	}
	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return nil, false
	}
	if !requireHotelAccess(c, table.HotelID) {
		return nil, false
	}
	return &table, true
}
