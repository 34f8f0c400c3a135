package repository

import (
	"context"
	"time"

	"github.com/lshigami/examguard/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResultRepository interface {
	Create(ctx context.Context, result *model.Result) error
	// FindOwned loads a Result only if it belongs to userID, with User and
	// Test preloaded. A foreign Result is reported as gorm.ErrRecordNotFound.
	FindOwned(ctx context.Context, id, userID uint) (*model.Result, error)
	FindByID(ctx context.Context, id uint) (*model.Result, error)
	UpdateSubmission(ctx context.Context, id uint, answers string, finishTime time.Time) error
	FindRecent(ctx context.Context, limit int) ([]model.Result, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Create(ctx context.Context, result *model.Result) error {
	// User and Test already exist; never upsert them from a Result.
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(result).Error
}

func (r *resultRepository) FindOwned(ctx context.Context, id, userID uint) (*model.Result, error) {
	var result model.Result
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Test").
		Where("id = ? AND user_id = ?", id, userID).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *resultRepository) FindByID(ctx context.Context, id uint) (*model.Result, error) {
	var result model.Result
	if err := r.db.WithContext(ctx).Preload("User").Preload("Test").First(&result, id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *resultRepository) UpdateSubmission(ctx context.Context, id uint, answers string, finishTime time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Result{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"answers_json": answers,
			"finish_time":  finishTime,
		}).Error
}

func (r *resultRepository) FindRecent(ctx context.Context, limit int) ([]model.Result, error) {
	var results []model.Result
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Test").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&results).Error
	return results, err
}
