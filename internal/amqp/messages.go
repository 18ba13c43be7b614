package amqp

import (
	"encoding/json"
	"time"

	"budgetcharts/internal/charts"

	"github.com/google/uuid"
)

// ChartBundleMessage carries one finished chart bundle. ID is a random UUID
// consumers can use to drop duplicate deliveries.
type ChartBundleMessage struct {
	ID        string        `json:"id"`
	AccountID string        `json:"accountId"`
	Year      int           `json:"year"`
	Month     int           `json:"month"`
	Timestamp time.Time     `json:"timestamp"`
	Bundle    charts.Bundle `json:"bundle"`
}

// NewChartBundleMessage wraps a bundle with a fresh id and timestamp
func NewChartBundleMessage(b charts.Bundle) *ChartBundleMessage {
	return &ChartBundleMessage{
		ID:        uuid.NewString(),
		AccountID: b.AccountID,
		Year:      b.Year,
		Month:     b.Month,
		Timestamp: time.Now().UTC(),
		Bundle:    b,
	}
}

// ToJSON converts the message to JSON bytes
func (m *ChartBundleMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChartBundleMessageFromJSON creates a message from JSON bytes
func ChartBundleMessageFromJSON(data []byte) (*ChartBundleMessage, error) {
	var msg ChartBundleMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
