package amqp

import (
	"encoding/json"
	"time"
)

// PeriodSavedMessage announces that a budget period was written. It carries
// only the id and version; the worker reloads the full period from the
// database before acting on it.
type PeriodSavedMessage struct {
	PeriodID  string    `json:"period_id"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

func NewPeriodSavedMessage(periodID string, version int64) *PeriodSavedMessage {
	return &PeriodSavedMessage{
		PeriodID:  periodID,
		Version:   version,
		Timestamp: time.Now(),
	}
}

func (m *PeriodSavedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func PeriodSavedMessageFromJSON(data []byte) (*PeriodSavedMessage, error) {
	var msg PeriodSavedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
