package models

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderServed    OrderStatus = "served"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderPending, OrderPreparing, OrderReady, OrderServed, OrderCompleted, OrderCancelled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("invalid order status: %q", s)
}

// orderTransitions is the exhaustive legal-transition table. Cancellation is
// only reachable from pre-served states; completed and cancelled are terminal.
// pending -> served exists because marking payment serves the order directly.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderPreparing, OrderServed, OrderCancelled},
	OrderPreparing: {OrderReady, OrderServed, OrderCancelled},
	OrderReady:     {OrderServed, OrderCancelled},
	OrderServed:    {OrderCompleted},
}

func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, t := range orderTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// PreServed reports whether the order has not yet reached the served state.
func (s OrderStatus) PreServed() bool {
	return s == OrderPending || s == OrderPreparing || s == OrderReady
}

type OrderType string

const (
	OrderDineIn      OrderType = "dine-in"
	OrderRoomService OrderType = "room-service"
	OrderTakeaway    OrderType = "takeaway"
	OrderDelivery    OrderType = "delivery"
)

func ParseOrderType(s string) (OrderType, error) {
	switch OrderType(s) {
	case OrderDineIn, OrderRoomService, OrderTakeaway, OrderDelivery:
		return OrderType(s), nil
	}
	return "", fmt.Errorf("invalid order type: %q", s)
}

type OrderPaymentStatus string

const (
	OrderUnpaid OrderPaymentStatus = "UNPAID"
	OrderPaid   OrderPaymentStatus = "PAID"
)

type Order struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderNumber string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"order_number"`
	HotelID     uint      `gorm:"index;not null" json:"hotel_id"`
	Hotel       Hotel     `gorm:"foreignKey:HotelID;references:ID" json:"-"`
	OrderType   OrderType `gorm:"type:varchar(15);not null" json:"order_type"`

	TableID   *uint  `gorm:"index" json:"table_id,omitempty"`
	Table     *Table `gorm:"foreignKey:TableID;references:ID" json:"table,omitempty"`
	RoomID    *uint  `gorm:"index" json:"room_id,omitempty"`
	BookingID *uint  `gorm:"index" json:"booking_id,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	Subtotal float64 `gorm:"type:decimal(10,2);not null;default:0" json:"subtotal"`
	Tax      float64 `gorm:"type:decimal(10,2);not null;default:0" json:"tax"`
	Total    float64 `gorm:"type:decimal(10,2);not null;default:0" json:"total"`

	Status OrderStatus `gorm:"type:varchar(15);not null;default:'pending'" json:"status"`

	PaymentStatus OrderPaymentStatus `gorm:"type:varchar(10);not null;default:'UNPAID'" json:"payment_status"`
	PaymentMethod string             `gorm:"type:varchar(20)" json:"payment_method,omitempty"`
	PaymentRef    string             `gorm:"type:varchar(64)" json:"payment_ref,omitempty"`
	PaymentTime   *time.Time         `json:"payment_time,omitempty"`

	// IsPublic marks orders placed without an authenticated actor (table QR
	// flow); a public dine-in order reserves its table instead of occupying it
	// until a cashier confirms by taking payment.
	IsPublic      bool   `gorm:"not null;default:false" json:"is_public"`
	CustomerName  string `gorm:"type:varchar(255)" json:"customer_name,omitempty"`
	CustomerPhone string `gorm:"type:varchar(20)" json:"customer_phone,omitempty"`

	CreatedBy  *uint `json:"created_by,omitempty"`
	PreparedBy *uint `json:"prepared_by,omitempty"`
	ServedBy   *uint `json:"served_by,omitempty"`
	PaidBy     *uint `json:"paid_by,omitempty"`

	PreparingAt *time.Time `json:"preparing_at,omitempty"`
	ServedAt    *time.Time `json:"served_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
