package domain

import "time"

// TransitionEvent is emitted after an order reaches a terminal status.
type TransitionEvent struct {
	EventID       string      `json:"event_id"`
	OrderID       int64       `json:"order_id"`
	SequenceNum   int64       `json:"sequence_num"`
	TrackingCode  string      `json:"tracking_code"`
	From          OrderStatus `json:"from"`
	To            OrderStatus `json:"to"`
	StockRestored bool        `json:"stock_restored"`
	OccurredAt    time.Time   `json:"occurred_at"`
}
