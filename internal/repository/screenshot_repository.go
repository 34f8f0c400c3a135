package repository

import (
	"context"

	"github.com/lshigami/examguard/internal/model"
	"gorm.io/gorm"
)

type ScreenshotRepository interface {
	Create(ctx context.Context, shot *model.Screenshot) error
	MarkSent(ctx context.Context, id uint) error
}

type screenshotRepository struct {
	db *gorm.DB
}

func NewScreenshotRepository(db *gorm.DB) ScreenshotRepository {
	return &screenshotRepository{db: db}
}

func (r *screenshotRepository) Create(ctx context.Context, shot *model.Screenshot) error {
	return r.db.WithContext(ctx).Create(shot).Error
}

func (r *screenshotRepository) MarkSent(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&model.Screenshot{}).
		Where("id = ?", id).
		UpdateColumn("sent_to_telegram", true).Error
}
