package repository

import (
	"errors"
	"fmt"

	"github.com/rlejr135/band-archive/model"

	"gorm.io/gorm"
)

// MediaRepository defines the interface for media asset data operations.
type MediaRepository interface {
	GetByID(id int64) (*model.MediaAsset, error)
	Create(asset *model.MediaAsset) error
	Save(asset *model.MediaAsset) error
	Delete(id int64) error
}

type gormMediaRepository struct {
	db *gorm.DB
}

// NewGormMediaRepository creates a media repository backed by GORM.
func NewGormMediaRepository(db *gorm.DB) MediaRepository {
	return &gormMediaRepository{db: db}
}

func (r *gormMediaRepository) GetByID(id int64) (*model.MediaAsset, error) {
	var asset model.MediaAsset
	if err := r.db.First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get media %d: %w", id, err)
	}
	return &asset, nil
}

func (r *gormMediaRepository) Create(asset *model.MediaAsset) error {
	if err := r.db.Create(asset).Error; err != nil {
		return fmt.Errorf("failed to create media asset: %w", err)
	}
	return nil
}

func (r *gormMediaRepository) Save(asset *model.MediaAsset) error {
	if err := r.db.Save(asset).Error; err != nil {
		return fmt.Errorf("failed to save media %d: %w", asset.ID, err)
	}
	return nil
}

func (r *gormMediaRepository) Delete(id int64) error {
	if err := r.db.Delete(&model.MediaAsset{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete media %d: %w", id, err)
	}
	return nil
}
