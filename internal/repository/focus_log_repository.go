package repository

import (
	"context"

	"github.com/lshigami/examguard/internal/model"
	"gorm.io/gorm"
)

type FocusLogRepository interface {
	// AppendAndRecount inserts entry and rewrites the owning Result's
	// focus_loss_count from a full count of loss events. Both writes share
	// one transaction. It returns the new count.
	AppendAndRecount(ctx context.Context, entry *model.FocusLog) (int, error)
	CountLossEvents(ctx context.Context, resultID uint) (int, error)
	FindByResult(ctx context.Context, resultID uint) ([]model.FocusLog, error)
}

type focusLogRepository struct {
	db *gorm.DB
}

func NewFocusLogRepository(db *gorm.DB) FocusLogRepository {
	return &focusLogRepository{db: db}
}

func (r *focusLogRepository) AppendAndRecount(ctx context.Context, entry *model.FocusLog) (int, error) {
	var count int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		n, err := countLossEvents(tx, entry.ResultID)
		if err != nil {
			return err
		}
		count = n
		return tx.Model(&model.Result{}).
			Where("id = ?", entry.ResultID).
			UpdateColumn("focus_loss_count", n).Error
	})
	return count, err
}

func (r *focusLogRepository) CountLossEvents(ctx context.Context, resultID uint) (int, error) {
	return countLossEvents(r.db.WithContext(ctx), resultID)
}

func (r *focusLogRepository) FindByResult(ctx context.Context, resultID uint) ([]model.FocusLog, error) {
	var logs []model.FocusLog
	err := r.db.WithContext(ctx).Where("result_id = ?", resultID).Order("id ASC").Find(&logs).Error
	return logs, err
}

func countLossEvents(db *gorm.DB, resultID uint) (int, error) {
	var n int64
	err := db.Model(&model.FocusLog{}).
		Where("result_id = ? AND event_type IN ?", resultID, model.LossEventTypes).
		Count(&n).Error
	return int(n), err
}
