package repository

import (
	"errors"
	"fmt"

	"github.com/rlejr135/band-archive/model"

	"gorm.io/gorm"
)

// PersonalLogRepository defines the interface for personal log data operations.
type PersonalLogRepository interface {
	ListByMember(memberID int64) ([]model.PersonalLog, error)
	GetByID(id int64) (*model.PersonalLog, error)
	Create(log *model.PersonalLog) error
	Delete(id int64) error
}

type gormPersonalLogRepository struct {
	db *gorm.DB
}

// NewGormPersonalLogRepository creates a personal log repository backed by GORM.
func NewGormPersonalLogRepository(db *gorm.DB) PersonalLogRepository {
	return &gormPersonalLogRepository{db: db}
}

func (r *gormPersonalLogRepository) ListByMember(memberID int64) ([]model.PersonalLog, error) {
	logs := make([]model.PersonalLog, 0)
	err := r.db.Where("member_id = ?", memberID).Order("created_at DESC").Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list personal logs for member %d: %w", memberID, err)
	}
	return logs, nil
}

func (r *gormPersonalLogRepository) GetByID(id int64) (*model.PersonalLog, error) {
	var log model.PersonalLog
	if err := r.db.First(&log, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get personal log %d: %w", id, err)
	}
	return &log, nil
}

func (r *gormPersonalLogRepository) Create(log *model.PersonalLog) error {
	if err := r.db.Create(log).Error; err != nil {
		return fmt.Errorf("failed to create personal log: %w", err)
	}
	return nil
}

func (r *gormPersonalLogRepository) Delete(id int64) error {
	if err := r.db.Delete(&model.PersonalLog{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete personal log %d: %w", id, err)
	}
	return nil
}
