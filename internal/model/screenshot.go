package model

import "time"

type Screenshot struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	ResultID       uint      `json:"result_id" gorm:"not null;index"`
	ImagePath      string    `json:"image_path" gorm:"size:255;not null"` // key inside the media store
	CreatedAt      time.Time `json:"created_at"`
	SentToTelegram bool      `json:"sent_to_telegram" gorm:"not null;default:false"`
}
