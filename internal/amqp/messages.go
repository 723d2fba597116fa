package amqp

import (
	"encoding/json"
	"time"

	"github.com/mmynk/konta/internal/models"
)

// EntryMessage is the wire form of a committed log entry.
type EntryMessage struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	EntityID    string    `json:"entity_id,omitempty"`
	Amount      *string   `json:"amount,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewEntryMessage converts a log entry. Amounts keep full precision as strings.
func NewEntryMessage(e *models.LogEntry) *EntryMessage {
	msg := &EntryMessage{
		ID:          e.ID,
		Kind:        string(e.Kind),
		EntityID:    e.EntityID,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
	if e.Amount.Valid {
		s := e.Amount.Decimal.String()
		msg.Amount = &s
	}
	return msg
}

// ToJSON converts the message to JSON bytes
func (m *EntryMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// EntryMessageFromJSON creates a message from JSON bytes
func EntryMessageFromJSON(data []byte) (*EntryMessage, error) {
	var msg EntryMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
