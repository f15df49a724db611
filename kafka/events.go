package kafka

import "time"

// StockMovementEvent is published after a reconciliation commits. It carries
// the movement and the product's resulting cached quantity.
type StockMovementEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	MovementID    uint      `json:"movement_id"`
	ProductID     uint      `json:"product_id"`
	MovementType  string    `json:"movement_type"`
	Quantity      int       `json:"quantity"`
	StockQuantity int       `json:"stock_quantity"`
	Reason        string    `json:"reason,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeMovementRecorded = "stock.movement.recorded"
	EventTypeMovementUpdated  = "stock.movement.updated"
	EventTypeMovementDeleted  = "stock.movement.deleted"
)

// Kafka topics
const (
	TopicStockMovements = "stock-movements"
)
