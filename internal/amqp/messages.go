package amqp

import (
	"encoding/json"
	"time"
)

// BackupRequestMessage asks the worker to take and upload a fresh ledger
// snapshot. It carries no ledger data: the worker reads the current state
// from its own store handle, so a stale message still produces a current
// backup.
type BackupRequestMessage struct {
	Reason      string    `json:"reason"`
	RequestedAt time.Time `json:"requested_at"`
}

func NewBackupRequestMessage(reason string) *BackupRequestMessage {
	return &BackupRequestMessage{
		Reason:      reason,
		RequestedAt: time.Now().UTC(),
	}
}

func (m *BackupRequestMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func BackupRequestMessageFromJSON(data []byte) (*BackupRequestMessage, error) {
	var msg BackupRequestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
