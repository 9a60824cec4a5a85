package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hoteldine/apperrors"
	"hoteldine/events"
	"hoteldine/models"
	"hoteldine/utils"
)

// qrisExpiry is how long a pending QRIS payment stays valid.
const qrisExpiry = 15 * time.Minute

// PaymentService records payment attempts for POS orders. The order state
// change itself (UNPAID -> PAID, auto-serve) lives in OrderService.MarkPaid;
// this layer adds the attempt ledger and the gateway flow.
type PaymentService struct {
	db       *gorm.DB
	orders   *OrderService
	midtrans *MidtransService
}

func NewPaymentService(db *gorm.DB, orders *OrderService) *PaymentService {
	return &PaymentService{db: db, orders: orders, midtrans: GetMidtransService()}
}

// PayCash settles an order immediately and records change.
func (s *PaymentService) PayCash(orderID uint, cashReceived float64, actorID uint) (*models.Payment, error) {
	order, err := s.orders.Get(orderID)
	if err != nil {
		return nil, err
	}
	if cashReceived < order.Total {
		return nil, apperrors.BadRequest("cash received %.2f is less than the order total %.2f",
			cashReceived, order.Total)
	}

	order, err = s.orders.MarkPaid(orderID, models.PaymentMethodCash, &actorID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	payment := models.Payment{
		HotelID:      order.HotelID,
		OrderID:      order.ID,
		Amount:       order.Total,
		Method:       models.PaymentMethodCash,
		Status:       models.PaymentSuccess,
		ReferenceID:  uuid.NewString(),
		CashReceived: cashReceived,
		Change:       cashReceived - order.Total,
		PaymentTime:  &now,
		VerifiedBy:   &actorID,
	}
	if err := s.db.Create(&payment).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	events.PublishStaffNotification(order.HotelID, fmt.Sprintf("Order %s paid in cash, change %s",
		order.OrderNumber, utils.FormatCurrency(payment.Change)))
	return &payment, nil
}

// CreateQRIS opens a pending gateway payment and returns the QR code URL.
func (s *PaymentService) CreateQRIS(orderID uint) (*models.Payment, error) {
	order, err := s.orders.Get(orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus == models.OrderPaid {
		return nil, apperrors.BadRequest("order %s is already paid", order.OrderNumber)
	}
	if order.Status == models.OrderCancelled {
		return nil, apperrors.BadRequest("cannot take payment for a cancelled order")
	}

	// reuse an existing unexpired pending payment instead of double-charging
	var existing models.Payment
	err = s.db.Where("order_id = ? AND status = ? AND expired_at > ?",
		order.ID, models.PaymentPending, time.Now()).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal(err)
	}

	referenceID := uuid.NewString()
	qrURL, err := s.midtrans.ChargeQRIS(referenceID, order.Total)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	expiredAt := time.Now().Add(qrisExpiry)
	payment := models.Payment{
		HotelID:     order.HotelID,
		OrderID:     order.ID,
		Amount:      order.Total,
		Method:      models.PaymentMethodQRIS,
		Status:      models.PaymentPending,
		ReferenceID: referenceID,
		QRCodeURL:   qrURL,
		ExpiredAt:   &expiredAt,
	}
	if err := s.db.Create(&payment).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return &payment, nil
}

// HandleCallback processes a gateway notification. Settlement marks the
// payment success and drives the order's PAID transition.
func (s *PaymentService) HandleCallback(referenceID, transactionStatus, statusCode, grossAmount, signature string) error {
	if !s.midtrans.VerifySignature(referenceID, statusCode, grossAmount, signature) {
		return apperrors.Forbidden("invalid gateway signature")
	}

	var payment models.Payment
	if err := s.db.Where("reference_id = ?", referenceID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("payment %s not found", referenceID)
		}
		return apperrors.Internal(err)
	}
	if payment.Status != models.PaymentPending {
		// idempotent on duplicate notifications
		return nil
	}

	switch transactionStatus {
	case "settlement", "capture":
		now := time.Now()
		payment.Status = models.PaymentSuccess
		payment.PaymentTime = &now
		if err := s.db.Save(&payment).Error; err != nil {
			return apperrors.Internal(err)
		}
		_, err := s.orders.MarkPaid(payment.OrderID, models.PaymentMethodQRIS, nil)
		return err
	case "expire":
		payment.Status = models.PaymentExpired
		return s.db.Save(&payment).Error
	case "deny", "cancel", "failure":
		payment.Status = models.PaymentFailed
		return s.db.Save(&payment).Error
	}
	return nil
}

// StartTimeoutChecker expires stale pending payments in the background.
func (s *PaymentService) StartTimeoutChecker() {
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if err := s.db.Model(&models.Payment{}).
				Where("status = ? AND expired_at < ?", models.PaymentPending, time.Now()).
				Update("status", models.PaymentExpired).Error; err != nil {
				utils.ErrorLogger.Printf("payment timeout sweep failed: %v", err)
			}
		}
	}()
}

// ListByHotel returns a hotel's payment attempts, newest first.
func (s *PaymentService) ListByHotel(hotelID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.db.Where("hotel_id = ?", hotelID).Order("id DESC").Find(&payments).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return payments, nil
}
