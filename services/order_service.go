package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"hoteldine/apperrors"
	"hoteldine/events"
	"hoteldine/models"
)

// OrderService is the POS order state machine: cart pricing, status
// lifecycle, the payment gate and checkout with inventory deduction.
type OrderService struct {
	db        *gorm.DB
	numbers   *NumberGenerator
	inventory *InventoryService
	// defaultGST applies when the hotel has no GST rate of its own.
	defaultGST int
}

func NewOrderService(db *gorm.DB, numbers *NumberGenerator, inventory *InventoryService, defaultGST int) *OrderService {
	return &OrderService{db: db, numbers: numbers, inventory: inventory, defaultGST: defaultGST}
}

type OrderItemInput struct {
	MenuItemID uint   `json:"menu_item_id"`
	Variant    string `json:"variant"`
	Quantity   int    `json:"quantity"`
	Notes      string `json:"notes"`
}

type CreateOrderInput struct {
	HotelID       uint
	OrderType     models.OrderType
	TableID       *uint
	RoomID        *uint
	BookingID     *uint
	Items         []OrderItemInput
	CustomerName  string
	CustomerPhone string
	// Public marks orders placed through the table QR flow, without an
	// authenticated actor.
	Public  bool
	ActorID *uint
}

// Create resolves and freezes every cart line against the live catalog,
// prices the order, and applies the dine-in table side effect. Menu price
// changes after this point never touch the order.
func (s *OrderService) Create(in CreateOrderInput) (*models.Order, error) {
	var hotel models.Hotel
	if err := s.db.First(&hotel, in.HotelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("hotel %d not found", in.HotelID)
		}
		return nil, apperrors.Internal(err)
	}

	if len(in.Items) == 0 {
		return nil, apperrors.Validation("items must not be empty")
	}
	if in.OrderType == models.OrderDineIn && in.TableID == nil {
		return nil, apperrors.Validation("table_id is required for dine-in orders")
	}
	if in.OrderType == models.OrderRoomService && in.RoomID == nil {
		return nil, apperrors.Validation("room_id is required for room-service orders")
	}

	if in.RoomID != nil {
		var room models.Room
		if err := s.db.First(&room, *in.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("room %d not found", *in.RoomID)
			}
			return nil, apperrors.Internal(err)
		}
		if room.HotelID != in.HotelID {
			return nil, apperrors.BadRequest("room %s does not belong to this hotel", room.RoomNumber)
		}
	}
	if in.BookingID != nil {
		var booking models.Booking
		if err := s.db.First(&booking, *in.BookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("booking %d not found", *in.BookingID)
			}
			return nil, apperrors.Internal(err)
		}
		if booking.HotelID != in.HotelID {
			return nil, apperrors.BadRequest("booking %s does not belong to this hotel", booking.BookingNumber)
		}
	}

	var (
		lines    []models.OrderItem
		subtotal float64
	)
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, apperrors.BadRequest("quantity must be positive")
		}

		var menuItem models.MenuItem
		if err := s.db.Preload("Variants").First(&menuItem, item.MenuItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("menu item %d not found", item.MenuItemID)
			}
			return nil, apperrors.Internal(err)
		}
		if menuItem.HotelID != in.HotelID {
			return nil, apperrors.BadRequest("menu item %s does not belong to this hotel", menuItem.Name)
		}
		if !menuItem.CanOrder() {
			return nil, apperrors.BadRequest("menu item %s is not available for ordering", menuItem.Name)
		}

		price := menuItem.ResolvePrice(item.Variant)
		lineSubtotal := price * float64(item.Quantity)
		subtotal += lineSubtotal

		lines = append(lines, models.OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Variant:    item.Variant,
			Price:      price,
			Quantity:   item.Quantity,
			Subtotal:   lineSubtotal,
			Notes:      item.Notes,
		})
	}

	gstRate := hotel.EffectiveGSTRate(s.defaultGST)
	tax := CalcTax(subtotal, gstRate)

	order := models.Order{
		HotelID:       in.HotelID,
		OrderType:     in.OrderType,
		TableID:       in.TableID,
		RoomID:        in.RoomID,
		BookingID:     in.BookingID,
		Items:         lines,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         CalcTotal(subtotal, tax),
		Status:        models.OrderPending,
		PaymentStatus: models.OrderUnpaid,
		IsPublic:      in.Public,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		CreatedBy:     in.ActorID,
	}

	var table *models.Table
	err := s.db.Transaction(func(tx *gorm.DB) error {
		number, err := s.numbers.OrderNumber(tx)
		if err != nil {
			return err
		}
		order.OrderNumber = number

		if err := tx.Create(&order).Error; err != nil {
			return apperrors.Internal(err)
		}

		for _, item := range in.Items {
			if err := tx.Model(&models.MenuItem{}).Where("id = ?", item.MenuItemID).
				UpdateColumn("total_orders", gorm.Expr("total_orders + ?", item.Quantity)).Error; err != nil {
				return apperrors.Internal(err)
			}
		}

		if in.OrderType == models.OrderDineIn {
			table, err = s.seatTable(tx, in.HotelID, *in.TableID, in.Public)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	events.PublishOrderCreated(order)
	if table != nil {
		events.PublishTableUpdated(*table)
	}
	return &order, nil
}

// seatTable transitions the table for a new dine-in order: staff orders
// occupy it, public QR orders only reserve it until a cashier confirms.
func (s *OrderService) seatTable(tx *gorm.DB, hotelID, tableID uint, public bool) (*models.Table, error) {
	var table models.Table
	if err := tx.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("table %d not found", tableID)
		}
		return nil, apperrors.Internal(err)
	}
	if table.HotelID != hotelID {
		return nil, apperrors.BadRequest("table %s does not belong to this hotel", table.TableNumber)
	}

	if public {
		if table.Status != models.TableAvailable {
			return nil, apperrors.BadRequest("table %s is %s", table.TableNumber, table.Status)
		}
		table.Status = models.TableReserved
	} else {
		table.Status = models.TableOccupied
	}

	if err := tx.Save(&table).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return &table, nil
}

// StartPreparing moves pending -> preparing and assigns the preparer.
func (s *OrderService) StartPreparing(orderID, actorID uint) (*models.Order, error) {
	order, err := s.load(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderPending {
		return nil, apperrors.BadRequest("cannot start preparing a %s order", order.Status)
	}

	now := time.Now()
	order.Status = models.OrderPreparing
	order.PreparingAt = &now
	order.PreparedBy = &actorID

	if err := s.db.Save(order).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	events.PublishOrderUpdated(*order)
	return order, nil
}

// MarkReady moves preparing -> ready.
func (s *OrderService) MarkReady(orderID uint) (*models.Order, error) {
	order, err := s.load(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderPreparing {
		return nil, apperrors.BadRequest("cannot mark a %s order as ready", order.Status)
	}

	order.Status = models.OrderReady
	if err := s.db.Save(order).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	events.PublishOrderUpdated(*order)
	return order, nil
}

// MarkServed stamps the server. ready is a pass-through rest state: serving
// is legal from preparing as well, matching how the floor actually works.
func (s *OrderService) MarkServed(orderID, actorID uint) (*models.Order, error) {
	order, err := s.load(orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransition(models.OrderServed) {
		return nil, apperrors.BadRequest("cannot serve a %s order", order.Status)
	}

	s.stampServed(order, &actorID)
	if err := s.db.Save(order).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	events.PublishOrderUpdated(*order)
	return order, nil
}

// MarkPaid records payment against the order. A successful payment also
// auto-transitions the status straight to served (bypassing preparing/ready)
// and, for public dine-in orders, confirms the reserved table as occupied.
func (s *OrderService) MarkPaid(orderID uint, method string, actorID *uint) (*models.Order, error) {
	order, err := s.load(orderID)
	if err != nil {
		return nil, err
	}

	if order.PaymentStatus == models.OrderPaid {
		return nil, apperrors.BadRequest("order %s is already paid", order.OrderNumber)
	}
	if order.Status == models.OrderCancelled {
		return nil, apperrors.BadRequest("cannot take payment for a cancelled order")
	}

	now := time.Now()
	order.PaymentStatus = models.OrderPaid
	order.PaymentMethod = method
	order.PaymentTime = &now
	order.PaidBy = actorID
	if order.Status != models.OrderServed && order.Status != models.OrderCompleted {
		s.stampServed(order, actorID)
	}

	var table *models.Table
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(order).Error; err != nil {
			return apperrors.Internal(err)
		}
		if order.OrderType == models.OrderDineIn && order.TableID != nil {
			var t models.Table
			if err := tx.First(&t, *order.TableID).Error; err == nil && t.Status == models.TableReserved {
				t.Status = models.TableOccupied
				if err := tx.Save(&t).Error; err != nil {
					return apperrors.Internal(err)
				}
				table = &t
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	events.PublishOrderPaid(*order)
	if table != nil {
		events.PublishTableUpdated(*table)
	}
	return order, nil
}

// Cancel is legal from any pre-served state; dine-in tables are released.
func (s *OrderService) Cancel(orderID uint, actorID *uint) (*models.Order, error) {
	order, err := s.load(orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.PreServed() {
		return nil, apperrors.BadRequest("cannot cancel a %s order", order.Status)
	}

	order.Status = models.OrderCancelled

	var table *models.Table
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(order).Error; err != nil {
			return apperrors.Internal(err)
		}
		table, err = s.releaseTable(tx, order)
		return err
	})
	if err != nil {
		return nil, err
	}

	events.PublishOrderUpdated(*order)
	if table != nil {
		events.PublishTableUpdated(*table)
	}
	return order, nil
}

// Complete is the checkout gate: it requires full payment, deducts the
// recipe ingredients from inventory exactly once, and frees the table. The
// deduction and the status change commit or roll back together.
func (s *OrderService) Complete(orderID uint, actorID *uint) (*models.Order, error) {
	order, err := s.load(orderID)
	if err != nil {
		return nil, err
	}

	if order.PaymentStatus != models.OrderPaid {
		return nil, apperrors.BadRequest("order %s must be paid before checkout", order.OrderNumber)
	}
	if !order.Status.CanTransition(models.OrderCompleted) {
		return nil, apperrors.BadRequest("cannot complete a %s order", order.Status)
	}

	now := time.Now()
	order.Status = models.OrderCompleted
	order.CompletedAt = &now

	var table *models.Table
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.inventory.DeductForOrder(tx, order); err != nil {
			return err
		}
		if err := tx.Save(order).Error; err != nil {
			return apperrors.Internal(err)
		}
		table, err = s.releaseTable(tx, order)
		return err
	})
	if err != nil {
		return nil, err
	}

	events.PublishOrderCompleted(*order)
	if table != nil {
		events.PublishTableUpdated(*table)
	}
	return order, nil
}

func (s *OrderService) releaseTable(tx *gorm.DB, order *models.Order) (*models.Table, error) {
	if order.OrderType != models.OrderDineIn || order.TableID == nil {
		return nil, nil
	}
	var table models.Table
	if err := tx.First(&table, *order.TableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Internal(err)
	}
	table.Status = models.TableAvailable
	if err := tx.Save(&table).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return &table, nil
}

func (s *OrderService) stampServed(order *models.Order, actorID *uint) {
	now := time.Now()
	order.Status = models.OrderServed
	order.ServedAt = &now
	order.ServedBy = actorID
}

// Get returns one order with its frozen lines.
func (s *OrderService) Get(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").Preload("Table").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order %d not found", orderID)
		}
		return nil, apperrors.Internal(err)
	}
	return &order, nil
}

// ListByHotel returns a hotel's orders, newest first.
func (s *OrderService) ListByHotel(hotelID uint, status string) ([]models.Order, error) {
	q := s.db.Preload("Items").Where("hotel_id = ?", hotelID).Order("created_at DESC")
	if status != "" {
		parsed, err := models.ParseOrderStatus(status)
		if err != nil {
			return nil, apperrors.BadRequest("%v", err)
		}
		q = q.Where("status = ?", parsed)
	}
	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return orders, nil
}

func (s *OrderService) load(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order %d not found", orderID)
		}
		return nil, apperrors.Internal(err)
	}
	return &order, nil
}
