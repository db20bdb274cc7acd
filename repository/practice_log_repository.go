package repository

import (
	"errors"
	"fmt"

	"github.com/rlejr135/band-archive/model"

	"gorm.io/gorm"
)

// PracticeLogRepository defines the interface for practice log data operations.
type PracticeLogRepository interface {
	ListBySong(songID int64) ([]model.PracticeLog, error)
	GetByID(id int64) (*model.PracticeLog, error)
	Create(log *model.PracticeLog) error
	Save(log *model.PracticeLog) error
	Delete(id int64) error
	Count() (int64, error)
	Recent(limit int) ([]model.PracticeLog, error)
}

type gormPracticeLogRepository struct {
	db *gorm.DB
}

// NewGormPracticeLogRepository creates a practice log repository backed by GORM.
func NewGormPracticeLogRepository(db *gorm.DB) PracticeLogRepository {
	return &gormPracticeLogRepository{db: db}
}

func (r *gormPracticeLogRepository) ListBySong(songID int64) ([]model.PracticeLog, error) {
	logs := make([]model.PracticeLog, 0)
	err := r.db.Where("song_id = ?", songID).Order("date DESC").Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list practice logs for song %d: %w", songID, err)
	}
	return logs, nil
}

func (r *gormPracticeLogRepository) GetByID(id int64) (*model.PracticeLog, error) {
	var log model.PracticeLog
	if err := r.db.First(&log, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get practice log %d: %w", id, err)
	}
	return &log, nil
}

func (r *gormPracticeLogRepository) Create(log *model.PracticeLog) error {
	if err := r.db.Create(log).Error; err != nil {
		return fmt.Errorf("failed to create practice log: %w", err)
	}
	return nil
}

func (r *gormPracticeLogRepository) Save(log *model.PracticeLog) error {
	if err := r.db.Save(log).Error; err != nil {
		return fmt.Errorf("failed to save practice log %d: %w", log.ID, err)
	}
	return nil
}

func (r *gormPracticeLogRepository) Delete(id int64) error {
	if err := r.db.Delete(&model.PracticeLog{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete practice log %d: %w", id, err)
	}
	return nil
}

func (r *gormPracticeLogRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.PracticeLog{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count practice logs: %w", err)
	}
	return count, nil
}

func (r *gormPracticeLogRepository) Recent(limit int) ([]model.PracticeLog, error) {
	logs := make([]model.PracticeLog, 0)
	err := r.db.Order("date DESC").Limit(limit).Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent practice logs: %w", err)
	}
	return logs, nil
}
