package services

import (
	"log"
	"os"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hoteldine/models"
	"hoteldine/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// setupTestDB opens a fresh in-memory SQLite database and migrates every
// model the services touch.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Hotel{},
		&models.User{},
		&models.Room{},
		&models.Booking{},
		&models.Table{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.MenuVariant{},
		&models.MenuIngredient{},
		&models.InventoryItem{},
		&models.StockTransaction{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	return db
}

func seedHotel(t *testing.T, db *gorm.DB) models.Hotel {
	t.Helper()
	hotel := models.Hotel{Name: "Test Residency", City: "Pune", IsActive: true}
	if err := db.Create(&hotel).Error; err != nil {
		t.Fatalf("seed hotel: %v", err)
	}
	return hotel
}

func seedRoom(t *testing.T, db *gorm.DB, hotelID uint, basePrice float64) models.Room {
	t.Helper()
	room := models.Room{
		HotelID:    hotelID,
		RoomNumber: "101",
		RoomType:   "deluxe",
		Status:     models.RoomAvailable,
		MaxAdults:  2,
		BasePrice:  basePrice,
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("seed room: %v", err)
	}
	return room
}

// freeRoom forces a room back to available so a later creation exercises the
// interval check instead of the room-status gate.
func freeRoom(t *testing.T, db *gorm.DB, roomID uint) {
	t.Helper()
	if err := db.Model(&models.Room{}).Where("id = ?", roomID).Updates(map[string]interface{}{
		"status":             models.RoomAvailable,
		"current_booking_id": nil,
	}).Error; err != nil {
		t.Fatalf("free room: %v", err)
	}
}

func day(d int) time.Time {
	base := time.Date(2026, 10, 1, 14, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, d)
}
