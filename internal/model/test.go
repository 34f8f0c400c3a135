package model

import "time"

// Test is an uploaded HTML exam. FilePath is relative to the project root.
type Test struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Title     string    `json:"title" gorm:"size:200;not null"`
	FilePath  string    `json:"file_path" gorm:"size:500;not null"`
	CreatedAt time.Time `json:"created_at"`
}
