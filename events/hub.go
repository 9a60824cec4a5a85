package events

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"hoteldine/models"
	"hoteldine/utils"
)

// Event names. Delivery is fire-and-forget, at-most-once: a slow or broken
// client is skipped, nothing is retried.
const (
	EventOrderCreated   = "order:created"
	EventOrderUpdated   = "order:updated"
	EventOrderPaid      = "order:paid"
	EventOrderCompleted = "order:completed"
	EventTableUpdated   = "table:updated"
	EventBookingCreated = "booking:created"
	EventBookingUpdated = "booking:updated"
	EventRoomUpdated    = "room:updated"
	EventStockAlert     = "stock:alert"
	EventStaffNotif     = "staff:notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected client (staff, chef, cashier, admin) by role.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient removes and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

func PublishOrderCreated(order models.Order) {
	broadcast(Message{Event: EventOrderCreated, Data: order})
}

func PublishOrderUpdated(order models.Order) {
	broadcast(Message{Event: EventOrderUpdated, Data: order})
}

func PublishOrderPaid(order models.Order) {
	broadcast(Message{Event: EventOrderPaid, Data: order})
}

func PublishOrderCompleted(order models.Order) {
	broadcast(Message{Event: EventOrderCompleted, Data: order})
}

func PublishTableUpdated(table models.Table) {
	broadcast(Message{Event: EventTableUpdated, Data: table})
}

func PublishBookingCreated(booking models.Booking) {
	broadcast(Message{Event: EventBookingCreated, Data: booking})
}

func PublishBookingUpdated(booking models.Booking) {
	broadcast(Message{Event: EventBookingUpdated, Data: booking})
}

func PublishRoomUpdated(room models.Room) {
	broadcast(Message{Event: EventRoomUpdated, Data: room})
}

func PublishStockAlert(item models.InventoryItem) {
	persist(item.HotelID, EventStockAlert, fmt.Sprintf("%s is %s (%.2f %s left)",
		item.Name, item.StockLevel(), item.Quantity.Current, item.Unit))
	broadcast(Message{Event: EventStockAlert, Data: item})
}

func PublishStaffNotification(hotelID uint, message string) {
	persist(hotelID, EventStaffNotif, message)
	broadcast(Message{Event: EventStaffNotif, Data: message})
}

// persist keeps a copy of the event for staff who were offline when it fired.
// Skipped silently when the shared DB handle is not initialized.
func persist(hotelID uint, event, message string) {
	db := utils.GetDB()
	if db == nil {
		return
	}
	notif := models.Notification{
		HotelID: hotelID,
		Event:   event,
		Message: message,
	}
	if err := db.Create(&notif).Error; err != nil {
		log.Printf("Error persisting %s notification: %v", event, err)
	}
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, role := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending %s to %s client: %v", msg.Event, role, err)
			continue
		}
	}
}
