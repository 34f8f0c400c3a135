package model

import "time"

// Result is one attempt by one user at one Test. A user may hold any number
// of Results for the same Test; every start creates a new row.
type Result struct {
	ID             uint         `gorm:"primarykey" json:"id"`
	UserID         uint         `json:"user_id" gorm:"not null;index"`
	User           User         `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	TestID         uint         `json:"test_id" gorm:"not null;index"`
	Test           Test         `json:"test,omitempty" gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE;"`
	AnswersJSON    string       `json:"answers_json" gorm:"type:text;not null"`
	StartTime      time.Time    `json:"start_time" gorm:"not null"`
	FinishTime     time.Time    `json:"finish_time" gorm:"not null"`
	FocusLossCount int          `json:"focus_loss_count" gorm:"not null;default:0"`
	FocusLogs      []FocusLog   `json:"focus_logs,omitempty" gorm:"foreignKey:ResultID;constraint:OnDelete:CASCADE;"`
	Screenshots    []Screenshot `json:"screenshots,omitempty" gorm:"foreignKey:ResultID;constraint:OnDelete:CASCADE;"`
	CreatedAt      time.Time    `json:"created_at" gorm:"index"`
}
