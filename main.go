package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"hoteldine/config"
	"hoteldine/models"
	"hoteldine/router"
	"hoteldine/services"
	"hoteldine/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
	utils.InitLogger()
}

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("database connection failed: %v", err)
	}
	utils.InitDB(db)

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
		utils.ErrorLogger.Fatalf("migration failed: %v", err)
	}

	rdb, err := config.InitRedis(cfg)
	if err != nil {
		utils.ErrorLogger.Printf("redis unavailable, falling back to random numbering: %v", err)
	}

	numbers := services.NewNumberGenerator(rdb)
	inventory := services.NewInventoryService(db)
	bookings := services.NewBookingService(db, numbers, cfg.DefaultGSTRate)
	orders := services.NewOrderService(db, numbers, inventory, cfg.DefaultGSTRate)
	payments := services.NewPaymentService(db, orders)

	payments.StartTimeoutChecker()
	utils.StartBlacklistCleanup()

	r := router.SetupRouter(db, &cfg, &router.Services{
		Bookings:  bookings,
		Orders:    orders,
		Inventory: inventory,
		Payments:  payments,
	})

	utils.InfoLogger.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatalf("server exited: %v", err)
	}
}
