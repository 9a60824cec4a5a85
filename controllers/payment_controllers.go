package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hoteldine/services"
	"hoteldine/utils"
)

type PaymentController struct {
	Payments *services.PaymentService
	Orders   *services.OrderService
}

func NewPaymentController(payments *services.PaymentService, orders *services.OrderService) *PaymentController {
	return &PaymentController{Payments: payments, Orders: orders}
}

func (pc *PaymentController) PayCash(c *gin.Context) {
	var req struct {
		OrderID      uint    `json:"order_id" binding:"required"`
		CashReceived float64 `json:"cash_received" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := pc.Orders.Get(req.OrderID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if !requireHotelAccess(c, order.HotelID) {
		return
	}

	payment, err := pc.Payments.PayCash(req.OrderID, req.CashReceived, actorID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment received", payment)
}

func (pc *PaymentController) CreateQRIS(c *gin.Context) {
	var req struct {
		OrderID uint `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := pc.Orders.Get(req.OrderID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if !requireHotelAccess(c, order.HotelID) {
		return
	}

	payment, err := pc.Payments.CreateQRIS(req.OrderID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "QRIS payment created", payment)
}

// GatewayCallback receives the payment gateway's server-to-server
// notification. It is unauthenticated; the signature check stands in for
// auth.
func (pc *PaymentController) GatewayCallback(c *gin.Context) {
	var payload struct {
		OrderID           string `json:"order_id"`
		TransactionStatus string `json:"transaction_status"`
		StatusCode        string `json:"status_code"`
		GrossAmount       string `json:"gross_amount"`
		SignatureKey      string `json:"signature_key"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := pc.Payments.HandleCallback(payload.OrderID, payload.TransactionStatus,
		payload.StatusCode, payload.GrossAmount, payload.SignatureKey); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification processed", nil)
}

func (pc *PaymentController) ListPayments(c *gin.Context) {
	hotelID, ok := scopedHotelID(c)
	if !ok {
		return
	}
	if !requireHotelAccess(c, hotelID) {
		return
	}

	payments, err := pc.Payments.ListByHotel(hotelID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of payments", payments)
}
