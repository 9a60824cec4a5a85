package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hoteldine/apperrors"
	"hoteldine/models"
)

func seedInventoryItem(t *testing.T, db *gorm.DB, hotelID uint, name string, current float64) models.InventoryItem {
	t.Helper()
	item := models.InventoryItem{
		HotelID: hotelID, Name: name, Unit: "kg", IsActive: true,
		Quantity: models.InventoryQuantity{Current: current, Minimum: 2, Maximum: 50},
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

// seedRecipeOrder builds a paid order whose single line consumes the given
// ingredients, without going through the full order flow.
func seedRecipeOrder(t *testing.T, db *gorm.DB, hotelID uint, quantity int, ingredients []models.MenuIngredient) models.Order {
	t.Helper()
	category := models.MenuCategory{HotelID: hotelID, Name: "Mains", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	menuItem := models.MenuItem{
		HotelID: hotelID, CategoryID: category.ID, Name: "Paneer Curry",
		Price: 200, IsAvailable: true, IsActive: true,
		Ingredients: ingredients,
	}
	require.NoError(t, db.Create(&menuItem).Error)

	order := models.Order{
		OrderNumber: "ORD2610000042", HotelID: hotelID,
		OrderType: models.OrderTakeaway, Status: models.OrderServed,
		PaymentStatus: models.OrderPaid,
		Items: []models.OrderItem{{
			MenuItemID: menuItem.ID, Name: menuItem.Name,
			Price: 200, Quantity: quantity, Subtotal: 200 * float64(quantity),
		}},
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestDeductForOrderConservation(t *testing.T) {
	db := setupTestDB(t)
	hotel := seedHotel(t, db)
	paneer := seedInventoryItem(t, db, hotel.ID, "Paneer", 10)
	svc := NewInventoryService(db)

	// recipe: 2 kg per unit, 3 units ordered -> exactly 6 kg deducted
	order := seedRecipeOrder(t, db, hotel.ID, 3, []models.MenuIngredient{
		{InventoryItemID: paneer.ID, Quantity: 2, Unit: "kg"},
	})

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return svc.DeductForOrder(tx, &order)
	}))

	var after models.InventoryItem
	require.NoError(t, db.First(&after, paneer.ID).Error)
	assert.Equal(t, 4.0, after.Quantity.Current)

	// exactly one sale ledger row per ingredient per order
	var rows []models.StockTransaction
	require.NoError(t, db.Where("inventory_item_id = ?", paneer.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, models.StockSale, rows[0].TransactionType)
	assert.Equal(t, 6.0, rows[0].Quantity)
	assert.Equal(t, 10.0, rows[0].PreviousStock)
	assert.Equal(t, 4.0, rows[0].NewStock)
	assert.Equal(t, order.OrderNumber, rows[0].Reference)
}

func TestDeductForOrderShortageIsAtomic(t *testing.T) {
	db := setupTestDB(t)
	hotel := seedHotel(t, db)
	paneer := seedInventoryItem(t, db, hotel.ID, "Paneer", 100)
	cream := seedInventoryItem(t, db, hotel.ID, "Cream", 1)
	svc := NewInventoryService(db)

	// 2 units: paneer needs 4 (plenty), cream needs 2 (only 1 on hand)
	order := seedRecipeOrder(t, db, hotel.ID, 2, []models.MenuIngredient{
		{InventoryItemID: paneer.ID, Quantity: 2, Unit: "kg"},
		{InventoryItemID: cream.ID, Quantity: 1, Unit: "l"},
	})

	err := db.Transaction(func(tx *gorm.DB) error {
		return svc.DeductForOrder(tx, &order)
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "Cream")

	// nothing moved, nothing was written to the ledger
	var paneerAfter models.InventoryItem
	require.NoError(t, db.First(&paneerAfter, paneer.ID).Error)
	assert.Equal(t, 100.0, paneerAfter.Quantity.Current)
	var creamAfter models.InventoryItem
	require.NoError(t, db.First(&creamAfter, cream.ID).Error)
	assert.Equal(t, 1.0, creamAfter.Quantity.Current)

	var count int64
	require.NoError(t, db.Model(&models.StockTransaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeductForOrderAggregatesAcrossLines(t *testing.T) {
	db := setupTestDB(t)
	hotel := seedHotel(t, db)
	paneer := seedInventoryItem(t, db, hotel.ID, "Paneer", 10)
	svc := NewInventoryService(db)

	category := models.MenuCategory{HotelID: hotel.ID, Name: "Mains", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	curry := models.MenuItem{
		HotelID: hotel.ID, CategoryID: category.ID, Name: "Paneer Curry",
		Price: 200, IsAvailable: true, IsActive: true,
		Ingredients: []models.MenuIngredient{{InventoryItemID: paneer.ID, Quantity: 2, Unit: "kg"}},
	}
	require.NoError(t, db.Create(&curry).Error)
	tikka := models.MenuItem{
		HotelID: hotel.ID, CategoryID: category.ID, Name: "Paneer Tikka",
		Price: 180, IsAvailable: true, IsActive: true,
		Ingredients: []models.MenuIngredient{{InventoryItemID: paneer.ID, Quantity: 1, Unit: "kg"}},
	}
	require.NoError(t, db.Create(&tikka).Error)

	order := models.Order{
		OrderNumber: "ORD2610000043", HotelID: hotel.ID,
		OrderType: models.OrderTakeaway, Status: models.OrderServed,
		PaymentStatus: models.OrderPaid,
		Items: []models.OrderItem{
			{MenuItemID: curry.ID, Name: curry.Name, Price: 200, Quantity: 2, Subtotal: 400},
			{MenuItemID: tikka.ID, Name: tikka.Name, Price: 180, Quantity: 3, Subtotal: 540},
		},
	}
	require.NoError(t, db.Create(&order).Error)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return svc.DeductForOrder(tx, &order)
	}))

	// 2*2 + 3*1 = 7 consumed, in a single aggregated ledger row
	var after models.InventoryItem
	require.NoError(t, db.First(&after, paneer.ID).Error)
	assert.Equal(t, 3.0, after.Quantity.Current)

	var rows []models.StockTransaction
	require.NoError(t, db.Where("inventory_item_id = ?", paneer.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 7.0, rows[0].Quantity)
}

func TestRestockWritesPurchaseRow(t *testing.T) {
	db := setupTestDB(t)
	hotel := seedHotel(t, db)
	item := seedInventoryItem(t, db, hotel.ID, "Rice", 5)
	svc := NewInventoryService(db)

	updated, err := svc.Restock(item.ID, 20, "INV-881", "weekly delivery", 3)
	require.NoError(t, err)
	assert.Equal(t, 25.0, updated.Quantity.Current)

	rows, err := svc.Transactions(item.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.StockPurchase, rows[0].TransactionType)
	assert.Equal(t, "INV-881", rows[0].Reference)
	assert.Equal(t, 5.0, rows[0].PreviousStock)
	assert.Equal(t, 25.0, rows[0].NewStock)

	_, err = svc.Restock(item.ID, -1, "", "", 3)
	require.Error(t, err)
}

func TestAdjustRecordsDelta(t *testing.T) {
	db := setupTestDB(t)
	hotel := seedHotel(t, db)
	item := seedInventoryItem(t, db, hotel.ID, "Flour", 10)
	svc := NewInventoryService(db)

	// physical count found less than the books say
	updated, err := svc.Adjust(item.ID, 7.5, "monthly count", 3)
	require.NoError(t, err)
	assert.Equal(t, 7.5, updated.Quantity.Current)

	rows, err := svc.Transactions(item.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.StockAdjustment, rows[0].TransactionType)
	assert.Equal(t, 2.5, rows[0].Quantity)

	// a matching count writes nothing
	_, err = svc.Adjust(item.ID, 7.5, "recount", 3)
	require.NoError(t, err)
	rows, err = svc.Transactions(item.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWastageCannotGoBelowZero(t *testing.T) {
	db := setupTestDB(t)
	hotel := seedHotel(t, db)
	item := seedInventoryItem(t, db, hotel.ID, "Milk", 3)
	svc := NewInventoryService(db)

	_, err := svc.RecordWastage(item.ID, 5, "spilled", 3)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))

	updated, err := svc.RecordWastage(item.ID, 2, "expired", 3)
	require.NoError(t, err)
	assert.Equal(t, 1.0, updated.Quantity.Current)

	rows, err := svc.Transactions(item.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.StockWastage, rows[0].TransactionType)
}

func TestStockLevelClassification(t *testing.T) {
	item := models.InventoryItem{Quantity: models.InventoryQuantity{Minimum: 4, Maximum: 20}}

	item.Quantity.Current = 0
	assert.Equal(t, models.StockOut, item.StockLevel())
	item.Quantity.Current = 2
	assert.Equal(t, models.StockCritical, item.StockLevel())
	item.Quantity.Current = 4
	assert.Equal(t, models.StockLow, item.StockLevel())
	item.Quantity.Current = 10
	assert.Equal(t, models.StockIn, item.StockLevel())
	item.Quantity.Current = 20
	assert.Equal(t, models.StockOverstocked, item.StockLevel())
}
