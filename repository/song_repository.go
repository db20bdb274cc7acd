package repository

import (
	"errors"
	"fmt"

	"github.com/rlejr135/band-archive/model"

	"gorm.io/gorm"
)

// SongFilter narrows the song list. Zero values mean "no filter".
type SongFilter struct {
	Query  string // matches title or artist, case-insensitive
	Status string
	Genre  string
}

// SongRepository defines the interface for song data operations.
type SongRepository interface {
	List(filter SongFilter) ([]model.Song, error)
	GetByID(id int64) (*model.Song, error)
	Create(song *model.Song) error
	Save(song *model.Song) error
	Delete(id int64) error
	Count() (int64, error)
	CountByStatus() (map[string]int, error)
}

type gormSongRepository struct {
	db *gorm.DB
}

// NewGormSongRepository creates a song repository backed by GORM.
func NewGormSongRepository(db *gorm.DB) SongRepository {
	return &gormSongRepository{db: db}
}

func (r *gormSongRepository) List(filter SongFilter) ([]model.Song, error) {
	query := r.db.Model(&model.Song{}).Preload("Media")

	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("title LIKE ? OR artist LIKE ?", like, like)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Genre != "" {
		query = query.Where("genre = ?", filter.Genre)
	}

	songs := make([]model.Song, 0)
	if err := query.Order("id").Find(&songs).Error; err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	return songs, nil
}

func (r *gormSongRepository) GetByID(id int64) (*model.Song, error) {
	var song model.Song
	err := r.db.Preload("Media", func(db *gorm.DB) *gorm.DB {
		return db.Order("media_assets.id")
	}).First(&song, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // song not found
		}
		return nil, fmt.Errorf("failed to get song %d: %w", id, err)
	}
	return &song, nil
}

func (r *gormSongRepository) Create(song *model.Song) error {
	if err := r.db.Create(song).Error; err != nil {
		return fmt.Errorf("failed to create song: %w", err)
	}
	return nil
}

func (r *gormSongRepository) Save(song *model.Song) error {
	if err := r.db.Save(song).Error; err != nil {
		return fmt.Errorf("failed to save song %d: %w", song.ID, err)
	}
	return nil
}

func (r *gormSongRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("song_id = ?", id).Delete(&model.MediaAsset{}).Error; err != nil {
			return fmt.Errorf("failed to delete media for song %d: %w", id, err)
		}
		if err := tx.Where("song_id = ?", id).Delete(&model.PracticeLog{}).Error; err != nil {
			return fmt.Errorf("failed to delete practice logs for song %d: %w", id, err)
		}
		if err := tx.Delete(&model.Song{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete song %d: %w", id, err)
		}
		return nil
	})
}

func (r *gormSongRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Song{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}
	return count, nil
}

func (r *gormSongRepository) CountByStatus() (map[string]int, error) {
	type row struct {
		Status string
		N      int
	}
	var rows []row
	err := r.db.Model(&model.Song{}).
		Select("status, count(id) as n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count songs by status: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.N
	}
	return counts, nil
}
