package catalog

import "time"

// StockLowEvent is emitted when a stock mutation leaves a product at or below
// its low-stock threshold. It is advisory only and never part of an atomic unit.
type StockLowEvent struct {
	ProductID  string
	Name       string
	Quantity   int
	Threshold  int
	OccurredAt time.Time
}

func (StockLowEvent) EventName() string { return "stock.low" }

func NewStockLowEvent(p *Product) StockLowEvent {
	return StockLowEvent{
		ProductID:  p.ID,
		Name:       p.Name,
		Quantity:   p.StockQuantity,
		Threshold:  p.MinStockLevel,
		OccurredAt: time.Now().UTC(),
	}
}
