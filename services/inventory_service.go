package services

import (
	"errors"

	"gorm.io/gorm"

	"hoteldine/apperrors"
	"hoteldine/events"
	"hoteldine/models"
)

// InventoryService owns every mutation of InventoryItem.quantity.current.
// Each mutation appends an immutable StockTransaction row; nothing else in
// the codebase writes stock directly.
type InventoryService struct {
	db *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

// requirement accumulates what one order consumes of one inventory item.
type requirement struct {
	item     models.InventoryItem
	required float64
}

// DeductForOrder runs at checkout only. It aggregates the recipe consumption
// across all order lines, validates every ingredient before mutating any
// (so a shortage on the last ingredient leaves stock untouched), then
// decrements and writes one `sale` ledger row per ingredient. Must be called
// inside the checkout transaction.
func (s *InventoryService) DeductForOrder(tx *gorm.DB, order *models.Order) error {
	required, orderedIDs, err := collectRequirements(tx, order)
	if err != nil {
		return err
	}

	// validation pre-pass: all or nothing
	for _, id := range orderedIDs {
		r := required[id]
		if r.item.Quantity.Current < r.required {
			return apperrors.BadRequest("insufficient stock of %s: need %.3f %s, have %.3f",
				r.item.Name, r.required, r.item.Unit, r.item.Quantity.Current)
		}
	}

	for _, id := range orderedIDs {
		r := required[id]
		previous := r.item.Quantity.Current
		r.item.Quantity.Current = previous - r.required

		if err := tx.Model(&models.InventoryItem{}).Where("id = ?", r.item.ID).
			Update("quantity_current", r.item.Quantity.Current).Error; err != nil {
			return apperrors.Internal(err)
		}

		ledger := models.StockTransaction{
			HotelID:         order.HotelID,
			InventoryItemID: r.item.ID,
			TransactionType: models.StockSale,
			Quantity:        r.required,
			PreviousStock:   previous,
			NewStock:        r.item.Quantity.Current,
			Reference:       order.OrderNumber,
			PerformedBy:     order.CreatedBy,
		}
		if err := tx.Create(&ledger).Error; err != nil {
			return apperrors.Internal(err)
		}

		if level := r.item.StockLevel(); level == models.StockLow || level == models.StockCritical || level == models.StockOut {
			events.PublishStockAlert(r.item)
		}
	}
	return nil
}

// collectRequirements resolves each order line's recipe and sums consumption
// per inventory item. Returns the ids in first-seen order so error messages
// and ledger rows are deterministic.
func collectRequirements(tx *gorm.DB, order *models.Order) (map[uint]*requirement, []uint, error) {
	required := make(map[uint]*requirement)
	var orderedIDs []uint

	for _, line := range order.Items {
		var ingredients []models.MenuIngredient
		if err := tx.Where("menu_item_id = ?", line.MenuItemID).Find(&ingredients).Error; err != nil {
			return nil, nil, apperrors.Internal(err)
		}

		for _, ing := range ingredients {
			r, seen := required[ing.InventoryItemID]
			if !seen {
				var item models.InventoryItem
				if err := tx.First(&item, ing.InventoryItemID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return nil, nil, apperrors.NotFound("inventory item %d not found", ing.InventoryItemID)
					}
					return nil, nil, apperrors.Internal(err)
				}
				r = &requirement{item: item}
				required[ing.InventoryItemID] = r
				orderedIDs = append(orderedIDs, ing.InventoryItemID)
			}
			r.required += ing.Quantity * float64(line.Quantity)
		}
	}
	return required, orderedIDs, nil
}

// Restock adds purchased stock and writes a `purchase` ledger row.
func (s *InventoryService) Restock(itemID uint, quantity float64, reference, note string, actorID uint) (*models.InventoryItem, error) {
	if quantity <= 0 {
		return nil, apperrors.BadRequest("restock quantity must be positive")
	}
	if reference == "" {
		reference = "manual"
	}
	return s.applyMovement(itemID, quantity, models.StockPurchase, reference, note, actorID)
}

// Adjust corrects stock to an absolute counted quantity and writes an
// `adjustment` ledger row for the delta.
func (s *InventoryService) Adjust(itemID uint, countedQuantity float64, note string, actorID uint) (*models.InventoryItem, error) {
	if countedQuantity < 0 {
		return nil, apperrors.BadRequest("counted quantity cannot be negative")
	}

	var item models.InventoryItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("inventory item %d not found", itemID)
		}
		return nil, apperrors.Internal(err)
	}

	delta := countedQuantity - item.Quantity.Current
	if delta == 0 {
		return &item, nil
	}
	return s.applyMovement(itemID, delta, models.StockAdjustment, "manual", note, actorID)
}

// RecordWastage removes spoiled stock and writes a `wastage` ledger row.
func (s *InventoryService) RecordWastage(itemID uint, quantity float64, note string, actorID uint) (*models.InventoryItem, error) {
	if quantity <= 0 {
		return nil, apperrors.BadRequest("wastage quantity must be positive")
	}
	return s.applyMovement(itemID, -quantity, models.StockWastage, "manual", note, actorID)
}

func (s *InventoryService) applyMovement(itemID uint, delta float64, txType models.StockTransactionType, reference, note string, actorID uint) (*models.InventoryItem, error) {
	var item models.InventoryItem

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("inventory item %d not found", itemID)
			}
			return apperrors.Internal(err)
		}

		previous := item.Quantity.Current
		next := previous + delta
		if next < 0 {
			return apperrors.BadRequest("movement would take %s below zero stock", item.Name)
		}
		item.Quantity.Current = next

		if err := tx.Model(&models.InventoryItem{}).Where("id = ?", item.ID).
			Update("quantity_current", next).Error; err != nil {
			return apperrors.Internal(err)
		}

		quantity := delta
		if quantity < 0 {
			quantity = -quantity
		}
		ledger := models.StockTransaction{
			HotelID:         item.HotelID,
			InventoryItemID: item.ID,
			TransactionType: txType,
			Quantity:        quantity,
			PreviousStock:   previous,
			NewStock:        next,
			Reference:       reference,
			Note:            note,
			PerformedBy:     &actorID,
		}
		return tx.Create(&ledger).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Transactions lists the ledger for one inventory item, newest first.
func (s *InventoryService) Transactions(itemID uint) ([]models.StockTransaction, error) {
	var rows []models.StockTransaction
	if err := s.db.Where("inventory_item_id = ?", itemID).Order("id DESC").Find(&rows).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return rows, nil
}
