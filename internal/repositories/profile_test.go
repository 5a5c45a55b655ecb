package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/profile-screener/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.ProfileObject{}))
	return db
}

func TestProfileRepository_SaveAndFind(t *testing.T) {
	repo := NewProfileRepository(newTestDB(t))

	require.NoError(t, repo.Save(&models.ProfileObject{
		Name:        "alice.pdf",
		ContentType: "application/pdf",
		Size:        3,
		Content:     []byte("abc"),
	}))

	found, err := repo.FindByName("alice.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), found.Content)
	assert.Equal(t, int64(3), found.Size)
}

func TestProfileRepository_SaveReplacesContent(t *testing.T) {
	repo := NewProfileRepository(newTestDB(t))

	require.NoError(t, repo.Save(&models.ProfileObject{Name: "bob.pdf", Content: []byte("v1"), Size: 2}))
	require.NoError(t, repo.Save(&models.ProfileObject{Name: "bob.pdf", Content: []byte("v2!"), Size: 3}))

	found, err := repo.FindByName("bob.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2!"), found.Content)

	all, err := repo.List(0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProfileRepository_ListNewestFirst(t *testing.T) {
	repo := NewProfileRepository(newTestDB(t))
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for i, name := range []string{"old.pdf", "mid.pdf", "new.pdf"} {
		require.NoError(t, repo.Save(&models.ProfileObject{
			Name:      name,
			Content:   []byte(name),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	profiles, err := repo.List(2)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "new.pdf", profiles[0].Name)
	assert.Equal(t, "mid.pdf", profiles[1].Name)
	assert.Empty(t, profiles[0].Content)
}

func TestProfileRepository_NotFound(t *testing.T) {
	repo := NewProfileRepository(newTestDB(t))

	_, err := repo.FindByName("missing.pdf")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	err = repo.DeleteByName("missing.pdf")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileRepository_Delete(t *testing.T) {
	repo := NewProfileRepository(newTestDB(t))
	require.NoError(t, repo.Save(&models.ProfileObject{Name: "carol.pdf", Content: []byte("x")}))

	require.NoError(t, repo.DeleteByName("carol.pdf"))

	_, err := repo.FindByName("carol.pdf")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
