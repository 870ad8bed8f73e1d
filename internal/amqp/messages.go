package amqp

import (
	"encoding/json"
	"time"

	"sales/internal/core"
)

// ReportLine is one reported entity.
type ReportLine struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Total int64  `json:"total"`
}

// ReportMessage announces a completed run with its final totals.
type ReportMessage struct {
	RunID       string       `json:"run_id"`
	Directory   string       `json:"directory"`
	RecordCount int          `json:"record_count"`
	Branches    []ReportLine `json:"branches"`
	Commodities []ReportLine `json:"commodities,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
}

// NewReportMessage builds the message for a run summary.
func NewReportMessage(s core.Summary) *ReportMessage {
	msg := &ReportMessage{
		RunID:       s.RunID,
		Directory:   s.Directory,
		RecordCount: s.RecordCount,
		Branches:    toLines(s.Branches),
		Timestamp:   s.CompletedAt,
	}
	if s.CommodityEnabled {
		msg.Commodities = toLines(s.Commodities)
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	return msg
}

func toLines(entities []core.Entity) []ReportLine {
	out := make([]ReportLine, len(entities))
	for i, e := range entities {
		out[i] = ReportLine{Code: e.Code, Name: e.Name, Total: e.Total}
	}
	return out
}

// ToJSON converts the message to JSON bytes
func (m *ReportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportMessageFromJSON creates a message from JSON bytes
func ReportMessageFromJSON(data []byte) (*ReportMessage, error) {
	var msg ReportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
