package alertproducer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stackrow/warehouse/internal/kafka"
	"github.com/stackrow/warehouse/internal/model"
)

// stockAlertEvent is the wire shape published to the stock-alert topic.
type stockAlertEvent struct {
	CategoryID      string    `json:"categoryId"`
	CategoryName    string    `json:"categoryName"`
	Threshold       string    `json:"threshold"`
	NewQuantity     int64     `json:"newQuantity"`
	MinQuantity     int64     `json:"minQuantity"`
	ReorderPoint    int64     `json:"reorderPoint"`
	ReorderQuantity int64     `json:"reorderQuantity"`
	FixedLocations  []string  `json:"fixedLocations,omitempty"`
	Message         string    `json:"message"`
	RaisedAt        time.Time `json:"raisedAt"`
}

type service struct {
	producer kafka.Producer
}

func NewAlertProducer(producer kafka.Producer) *service {
	return &service{producer: producer}
}

// SendStockAlert publishes a threshold alert keyed by category, so alerts
// for one category stay ordered.
func (s *service) SendStockAlert(ctx context.Context, alert *model.StockAlert) error {
	payload, err := json.Marshal(stockAlertEvent{
		CategoryID:      alert.CategoryID,
		CategoryName:    alert.CategoryName,
		Threshold:       string(alert.Threshold),
		NewQuantity:     alert.NewQuantity,
		MinQuantity:     alert.MinQuantity,
		ReorderPoint:    alert.ReorderPoint,
		ReorderQuantity: alert.ReorderQuantity,
		FixedLocations:  alert.FixedLocations,
		Message:         alert.Message,
		RaisedAt:        time.Now(),
	})
	if err != nil {
		return fmt.Errorf("marshal stock_alert event: %w", err)
	}

	if err := s.producer.Send(ctx, []byte(alert.CategoryID), payload); err != nil {
		return fmt.Errorf("producer to stock.alert topic error: %w", err)
	}

	return nil
}
