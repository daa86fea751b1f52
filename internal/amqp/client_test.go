package amqp

import (
	"testing"
	"time"
)

func TestNewSubmissionMessage(t *testing.T) {
	msg := NewSubmissionMessage("5f9b1c2d", "cash")

	if msg.TransactionID != "5f9b1c2d" {
		t.Errorf("NewSubmissionMessage() TransactionID = %v, want 5f9b1c2d", msg.TransactionID)
	}
	if msg.Ledger != "cash" {
		t.Errorf("NewSubmissionMessage() Ledger = %v, want cash", msg.Ledger)
	}
	if msg.Timestamp.IsZero() {
		t.Error("NewSubmissionMessage() Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("NewSubmissionMessage() Timestamp should be recent")
	}
}

func TestSubmissionMessage_JSON(t *testing.T) {
	timestamp := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	msg := &SubmissionMessage{
		TransactionID: "5f9b1c2d",
		Ledger:        "bank",
		Timestamp:     timestamp,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsedMsg, err := SubmissionMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("SubmissionMessageFromJSON() error = %v", err)
	}

	if parsedMsg.TransactionID != msg.TransactionID {
		t.Errorf("Parsed TransactionID = %v, want %v", parsedMsg.TransactionID, msg.TransactionID)
	}
	if parsedMsg.Ledger != msg.Ledger {
		t.Errorf("Parsed Ledger = %v, want %v", parsedMsg.Ledger, msg.Ledger)
	}
	if !parsedMsg.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsedMsg.Timestamp, msg.Timestamp)
	}
}

func TestSubmissionMessage_InvalidJSON(t *testing.T) {
	invalidJSON := []byte(`{"transaction_id": 42, "ledger": []}`)

	if _, err := SubmissionMessageFromJSON(invalidJSON); err == nil {
		t.Error("SubmissionMessageFromJSON() should fail with invalid JSON")
	}
}
