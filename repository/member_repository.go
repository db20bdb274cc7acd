package repository

import (
	"errors"
	"fmt"

	"github.com/rlejr135/band-archive/model"

	"gorm.io/gorm"
)

// MemberRepository defines the interface for member data operations.
type MemberRepository interface {
	List() ([]model.Member, error)
	GetByID(id int64) (*model.Member, error)
	Create(member *model.Member) error
	Save(member *model.Member) error
	// Delete removes the member and all owned personal logs, returning the
	// filenames of the deleted logs so stored objects can be cleaned up.
	Delete(id int64) ([]string, error)
}

type gormMemberRepository struct {
	db *gorm.DB
}

// NewGormMemberRepository creates a member repository backed by GORM.
func NewGormMemberRepository(db *gorm.DB) MemberRepository {
	return &gormMemberRepository{db: db}
}

func (r *gormMemberRepository) List() ([]model.Member, error) {
	members := make([]model.Member, 0)
	if err := r.db.Order("id").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

func (r *gormMemberRepository) GetByID(id int64) (*model.Member, error) {
	var member model.Member
	if err := r.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member %d: %w", id, err)
	}
	return &member, nil
}

func (r *gormMemberRepository) Create(member *model.Member) error {
	if err := r.db.Create(member).Error; err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

func (r *gormMemberRepository) Save(member *model.Member) error {
	if err := r.db.Save(member).Error; err != nil {
		return fmt.Errorf("failed to save member %d: %w", member.ID, err)
	}
	return nil
}

func (r *gormMemberRepository) Delete(id int64) ([]string, error) {
	var filenames []string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var logs []model.PersonalLog
		if err := tx.Where("member_id = ?", id).Find(&logs).Error; err != nil {
			return fmt.Errorf("failed to list personal logs for member %d: %w", id, err)
		}
		for _, log := range logs {
			filenames = append(filenames, log.Filename)
		}

		if err := tx.Where("member_id = ?", id).Delete(&model.PersonalLog{}).Error; err != nil {
			return fmt.Errorf("failed to delete personal logs for member %d: %w", id, err)
		}
		if err := tx.Delete(&model.Member{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete member %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return filenames, nil
}
