package amqp

import (
	"encoding/json"
	"time"
)

// SubmissionMessage asks the worker to submit one ledger transaction to
// the tax authority. It carries only the transaction ID; the worker
// loads the full record from the database so stale copies never travel
// over the wire.
type SubmissionMessage struct {
	TransactionID string    `json:"transaction_id"`
	Ledger        string    `json:"ledger"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewSubmissionMessage(transactionID, ledger string) *SubmissionMessage {
	return &SubmissionMessage{
		TransactionID: transactionID,
		Ledger:        ledger,
		Timestamp:     time.Now(),
	}
}

func (m *SubmissionMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func SubmissionMessageFromJSON(data []byte) (*SubmissionMessage, error) {
	var msg SubmissionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
