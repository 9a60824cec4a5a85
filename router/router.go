package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hoteldine/config"
	"hoteldine/controllers"
	"hoteldine/middlewares"
	"hoteldine/models"
	"hoteldine/services"
)

// SetupRouter wires every HTTP surface: the public ordering flow, the
// authenticated staff API, and the websocket event stream.
func SetupRouter(db *gorm.DB, cfg *config.AppConfig, svc *Services) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	hotelCtrl := controllers.NewHotelController(db)
	roomCtrl := controllers.NewRoomController(db)
	bookingCtrl := controllers.NewBookingController(svc.Bookings)
	orderCtrl := controllers.NewOrderController(svc.Orders)
	menuCtrl := controllers.NewMenuController(db)
	categoryCtrl := controllers.NewMenuCategoryController(db)
	inventoryCtrl := controllers.NewInventoryController(db, svc.Inventory)
	tableCtrl := controllers.NewTableController(db, cfg.PublicBaseURL)
	paymentCtrl := controllers.NewPaymentController(svc.Payments, svc.Orders)
	notificationCtrl := controllers.NewNotificationController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// login and register sit behind the strict limiter
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// guest-facing surface reached from a table QR code, no auth
	r.GET("/public/hotels/:hotel_id/menu", menuCtrl.ListPublicMenu)
	r.GET("/public/tables/:id", tableCtrl.GetPublicTable)
	r.POST("/public/orders", orderCtrl.CreatePublicOrder)

	// server-to-server gateway notification, signature-checked inside
	r.POST("/payments/callback", paymentCtrl.GatewayCallback)

	// websocket event stream, token via query parameter
	r.GET("/events/ws", middlewares.WebSocketAuthMiddleware(), controllers.EventStreamHandler)

	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/logout", userCtrl.Logout)
		auth.GET("/profile", userCtrl.Profile)

		admin := auth.Group("/hotels")
		admin.Use(middlewares.RequireRole(models.RoleAdmin))
		{
			admin.POST("", hotelCtrl.CreateHotel)
			admin.GET("", hotelCtrl.ListHotels)
			admin.GET("/:id", hotelCtrl.GetHotel)
			admin.PATCH("/:id", hotelCtrl.UpdateHotel)
			admin.DELETE("/:id", hotelCtrl.DeactivateHotel)
		}

		manage := auth.Group("/")
		manage.Use(middlewares.RequireRole(models.RoleManager))
		{
			manage.POST("/rooms", roomCtrl.CreateRoom)
			manage.PATCH("/rooms/:id", roomCtrl.UpdateRoom)

			manage.POST("/menu-categories", categoryCtrl.CreateCategory)
			manage.PATCH("/menu-categories/:id", categoryCtrl.UpdateCategory)
			manage.DELETE("/menu-categories/:id", categoryCtrl.DeleteCategory)

			manage.POST("/menu-items", menuCtrl.CreateMenuItem)
			manage.PATCH("/menu-items/:id", menuCtrl.UpdateMenuItem)
			manage.DELETE("/menu-items/:id", menuCtrl.DeleteMenuItem)

			manage.POST("/inventory", inventoryCtrl.CreateItem)
			manage.PATCH("/inventory/:id", inventoryCtrl.UpdateItem)
			manage.POST("/inventory/:id/adjust", inventoryCtrl.Adjust)

			manage.POST("/tables", tableCtrl.CreateTable)
			manage.PATCH("/tables/:id", tableCtrl.UpdateTable)
			manage.DELETE("/tables/:id", tableCtrl.DeleteTable)
		}

		staff := auth.Group("/")
		staff.Use(middlewares.RequireRole(models.RoleManager, models.RoleStaff))
		{
			staff.GET("/rooms", roomCtrl.ListRooms)
			staff.GET("/rooms/:id", roomCtrl.GetRoom)
			staff.PATCH("/rooms/:id/status", roomCtrl.UpdateRoomStatus)

			staff.POST("/bookings", bookingCtrl.CreateBooking)
			staff.GET("/bookings", bookingCtrl.ListBookings)
			staff.GET("/bookings/:id", bookingCtrl.GetBooking)
			staff.POST("/bookings/:id/check-in", bookingCtrl.CheckIn)
			staff.POST("/bookings/:id/check-out", bookingCtrl.CheckOut)
			staff.POST("/bookings/:id/cancel", bookingCtrl.CancelBooking)
			staff.POST("/bookings/:id/no-show", bookingCtrl.MarkNoShow)
			staff.POST("/bookings/:id/payments", bookingCtrl.RecordPayment)

			staff.POST("/orders", orderCtrl.CreateOrder)
			staff.POST("/orders/:id/serve", orderCtrl.MarkServed)
			staff.POST("/orders/:id/cancel", orderCtrl.CancelOrder)
			staff.POST("/orders/:id/complete", orderCtrl.CompleteOrder)

			staff.POST("/payments/cash", paymentCtrl.PayCash)
			staff.POST("/payments/qris", paymentCtrl.CreateQRIS)
			staff.GET("/payments", paymentCtrl.ListPayments)

			staff.GET("/tables", tableCtrl.ListTables)
			staff.GET("/tables/:id/qrcode", tableCtrl.TableQRCode)
		}

		kitchen := auth.Group("/")
		kitchen.Use(middlewares.RequireRole(models.RoleManager, models.RoleStaff, models.RoleChef))
		{
			kitchen.GET("/orders", orderCtrl.ListOrders)
			kitchen.GET("/orders/:id", orderCtrl.GetOrder)
			kitchen.POST("/orders/:id/start-preparing", orderCtrl.StartPreparing)
			kitchen.POST("/orders/:id/ready", orderCtrl.MarkReady)

			kitchen.GET("/menu-categories", categoryCtrl.ListCategories)
			kitchen.GET("/menu-items", menuCtrl.ListMenuItems)
			kitchen.GET("/menu-items/:id", menuCtrl.GetMenuItem)
			kitchen.PATCH("/menu-items/:id/availability", menuCtrl.SetAvailability)

			kitchen.GET("/inventory", inventoryCtrl.ListItems)
			kitchen.GET("/inventory/:id", inventoryCtrl.GetItem)
			kitchen.POST("/inventory/:id/restock", inventoryCtrl.Restock)
			kitchen.POST("/inventory/:id/wastage", inventoryCtrl.RecordWastage)
			kitchen.GET("/inventory/:id/transactions", inventoryCtrl.ListTransactions)

			kitchen.GET("/notifications", notificationCtrl.ListNotifications)
		}
	}

	return r
}

// Services bundles the wired service layer for the router.
type Services struct {
	Bookings  *services.BookingService
	Orders    *services.OrderService
	Inventory *services.InventoryService
	Payments  *services.PaymentService
}
