package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/profile-screener/internal/models"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	Save(profile *models.ProfileObject) error
	FindByName(name string) (*models.ProfileObject, error)
	List(limit int) ([]models.ProfileObject, error)
	DeleteByName(name string) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Save implements ProfileRepository. Re-uploading a name replaces its content.
func (r *profileRepository) Save(profile *models.ProfileObject) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "content_type", "size", "updated_at"}),
	}).Create(profile).Error
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}

// FindByName implements ProfileRepository.
func (r *profileRepository) FindByName(name string) (*models.ProfileObject, error) {
	var profile models.ProfileObject
	if err := r.db.Where("name = ?", name).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
		}

		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	return &profile, nil
}

// List implements ProfileRepository. Content is not loaded.
func (r *profileRepository) List(limit int) ([]models.ProfileObject, error) {
	var profiles []models.ProfileObject
	query := r.db.
		Select("id", "name", "content_type", "size", "created_at", "updated_at").
		Order("created_at DESC").
		Order("name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	return profiles, nil
}

// DeleteByName implements ProfileRepository.
func (r *profileRepository) DeleteByName(name string) error {
	result := r.db.Where("name = ?", name).Delete(&models.ProfileObject{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete profile: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}

	return nil
}
