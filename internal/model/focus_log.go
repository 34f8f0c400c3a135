package model

import "time"

// LossEventTypes are the event types counted into Result.FocusLossCount.
var LossEventTypes = []string{"blur", "visibility_hidden", "focusout", "pagehide"}

func IsLossEvent(eventType string) bool {
	for _, t := range LossEventTypes {
		if t == eventType {
			return true
		}
	}
	return false
}

// FocusLog is append-only: rows are never updated or deleted.
type FocusLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ResultID  uint      `json:"result_id" gorm:"not null;index"`
	Timestamp time.Time `json:"timestamp" gorm:"not null"`
	EventType string    `json:"event_type" gorm:"size:100;not null;index"`
	Extra     *string   `json:"extra,omitempty" gorm:"type:text"`
}
