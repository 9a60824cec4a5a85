package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hoteldine/models"
	"hoteldine/services"
	"hoteldine/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

type orderRequest struct {
	OrderType     string                      `json:"order_type" binding:"required"`
	TableID       *uint                       `json:"table_id"`
	RoomID        *uint                       `json:"room_id"`
	BookingID     *uint                       `json:"booking_id"`
	Items         []services.OrderItemInput   `json:"items" binding:"required,min=1"`
	CustomerName  string                      `json:"customer_name"`
	CustomerPhone string                      `json:"customer_phone"`
}

// CreateOrder is the staff-side entry point.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	orderType, err := models.ParseOrderType(req.OrderType)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hotelID, ok := scopedHotelID(c)
	if !ok {
		return
	}
	if !requireHotelAccess(c, hotelID) {
		return
	}

	actor := actorID(c)
	order, err := oc.Orders.Create(services.CreateOrderInput{
		HotelID:       hotelID,
		OrderType:     orderType,
		TableID:       req.TableID,
		RoomID:        req.RoomID,
		BookingID:     req.BookingID,
		Items:         req.Items,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		ActorID:       &actor,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// CreatePublicOrder serves the table QR flow: no authentication, dine-in
// only, hotel and table come from the scanned code.
func (oc *OrderController) CreatePublicOrder(c *gin.Context) {
	var req struct {
		HotelID       uint                      `json:"hotel_id" binding:"required"`
		TableID       uint                      `json:"table_id" binding:"required"`
		Items         []services.OrderItemInput `json:"items" binding:"required,min=1"`
		CustomerName  string                    `json:"customer_name" binding:"required"`
		CustomerPhone string                    `json:"customer_phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tableID := req.TableID
	order, err := oc.Orders.Create(services.CreateOrderInput{
		HotelID:       req.HotelID,
		OrderType:     models.OrderDineIn,
		TableID:       &tableID,
		Items:         req.Items,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Public:        true,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order placed", order)
}

func (oc *OrderController) ListOrders(c *gin.Context) {
	hotelID, ok := scopedHotelID(c)
	if !ok {
		return
	}
	if !requireHotelAccess(c, hotelID) {
		return
	}

	orders, err := oc.Orders.ListByHotel(hotelID, c.Query("status"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func (oc *OrderController) GetOrder(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := oc.Orders.Get(id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if !requireHotelAccess(c, order.HotelID) {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

func (oc *OrderController) transition(c *gin.Context, message string,
	apply func(orderID uint) (*models.Order, error)) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := oc.Orders.Get(id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if !requireHotelAccess(c, order.HotelID) {
		return
	}

	order, err = apply(id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, order)
}

func (oc *OrderController) StartPreparing(c *gin.Context) {
	oc.transition(c, "Order in preparation", func(orderID uint) (*models.Order, error) {
		return oc.Orders.StartPreparing(orderID, actorID(c))
	})
}

func (oc *OrderController) MarkReady(c *gin.Context) {
	oc.transition(c, "Order ready", oc.Orders.MarkReady)
}

func (oc *OrderController) MarkServed(c *gin.Context) {
	oc.transition(c, "Order served", func(orderID uint) (*models.Order, error) {
		return oc.Orders.MarkServed(orderID, actorID(c))
	})
}

func (oc *OrderController) CancelOrder(c *gin.Context) {
	oc.transition(c, "Order cancelled", func(orderID uint) (*models.Order, error) {
		actor := actorID(c)
		return oc.Orders.Cancel(orderID, &actor)
	})
}

func (oc *OrderController) CompleteOrder(c *gin.Context) {
	oc.transition(c, "Order completed", func(orderID uint) (*models.Order, error) {
		actor := actorID(c)
		return oc.Orders.Complete(orderID, &actor)
	})
}
