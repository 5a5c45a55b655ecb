package services

import (
	"context"
	"errors"
	"fmt"

	"alfredoptarigan/profile-screener/internal/models"
	"alfredoptarigan/profile-screener/internal/repositories"
)

type databaseStore struct {
	repo repositories.ProfileRepository
}

// NewDatabaseStore keeps documents as rows in the profile_objects table.
func NewDatabaseStore(repo repositories.ProfileRepository) ObjectStore {
	return &databaseStore{repo: repo}
}

func (s *databaseStore) List(_ context.Context) ([]models.ProfileInfo, error) {
	rows, err := s.repo.List(0)
	if err != nil {
		return nil, err
	}

	profiles := make([]models.ProfileInfo, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, models.ProfileInfo{
			Name:       row.Name,
			Size:       row.Size,
			UploadedAt: row.CreatedAt,
		})
	}
	return profiles, nil
}

func (s *databaseStore) Get(_ context.Context, name string) ([]byte, error) {
	profile, err := s.repo.FindByName(name)
	if err != nil {
		return nil, translateRepoError(err, name)
	}
	return profile.Content, nil
}

func (s *databaseStore) Put(_ context.Context, name string, data []byte) error {
	if err := validateObjectName(name); err != nil {
		return err
	}

	return s.repo.Save(&models.ProfileObject{
		Name:        name,
		ContentType: "application/pdf",
		Size:        int64(len(data)),
		Content:     data,
	})
}

func (s *databaseStore) Delete(_ context.Context, name string) error {
	if err := s.repo.DeleteByName(name); err != nil {
		return translateRepoError(err, name)
	}
	return nil
}

func translateRepoError(err error, name string) error {
	if errors.Is(err, repositories.ErrProfileNotFound) {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, name)
	}
	return err
}
