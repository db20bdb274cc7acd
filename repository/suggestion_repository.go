package repository

import (
	"errors"
	"fmt"

	"github.com/rlejr135/band-archive/model"

	"gorm.io/gorm"
)

// SuggestionRepository defines the interface for suggestion data operations.
type SuggestionRepository interface {
	// List returns suggestions ordered by score (thumbs_up - thumbs_down)
	// descending, ties in insertion order.
	List() ([]model.Suggestion, error)
	GetByID(id int64) (*model.Suggestion, error)
	Create(suggestion *model.Suggestion) error
	Delete(id int64) error
	// Vote atomically increments one counter and returns the updated record.
	Vote(id int64, voteType string) (*model.Suggestion, error)
}

type gormSuggestionRepository struct {
	db *gorm.DB
}

// NewGormSuggestionRepository creates a suggestion repository backed by GORM.
func NewGormSuggestionRepository(db *gorm.DB) SuggestionRepository {
	return &gormSuggestionRepository{db: db}
}

func (r *gormSuggestionRepository) List() ([]model.Suggestion, error) {
	suggestions := make([]model.Suggestion, 0)
	err := r.db.Order("(thumbs_up - thumbs_down) DESC, id").Find(&suggestions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	return suggestions, nil
}

func (r *gormSuggestionRepository) GetByID(id int64) (*model.Suggestion, error) {
	var suggestion model.Suggestion
	if err := r.db.First(&suggestion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get suggestion %d: %w", id, err)
	}
	return &suggestion, nil
}

func (r *gormSuggestionRepository) Create(suggestion *model.Suggestion) error {
	if err := r.db.Create(suggestion).Error; err != nil {
		return fmt.Errorf("failed to create suggestion: %w", err)
	}
	return nil
}

func (r *gormSuggestionRepository) Delete(id int64) error {
	if err := r.db.Delete(&model.Suggestion{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete suggestion %d: %w", id, err)
	}
	return nil
}

func (r *gormSuggestionRepository) Vote(id int64, voteType string) (*model.Suggestion, error) {
	column := "thumbs_up"
	if voteType == "down" {
		column = "thumbs_down"
	}

	err := r.db.Model(&model.Suggestion{}).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error
	if err != nil {
		return nil, fmt.Errorf("failed to record %s vote for suggestion %d: %w", voteType, id, err)
	}

	return r.GetByID(id)
}
