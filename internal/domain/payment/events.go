package payment

import "time"

// SettlementRequestedEvent asks the settlement worker to resolve a freshly
// persisted PROCESSING payment.
type SettlementRequestedEvent struct {
	PaymentID  string
	OrderID    string
	OccurredAt time.Time
}

func (SettlementRequestedEvent) EventName() string { return "payment.settlement_requested" }

func NewSettlementRequestedEvent(p *Payment) SettlementRequestedEvent {
	return SettlementRequestedEvent{
		PaymentID:  p.ID,
		OrderID:    p.OrderID,
		OccurredAt: time.Now().UTC(),
	}
}
