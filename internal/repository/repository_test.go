package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/taxpilot/tax-assistant/internal/models"
	"github.com/taxpilot/tax-assistant/pkg/database"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	logger := zap.NewNop()
	db, err := database.New(database.Config{
		Path:            filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	migrator := database.NewMigrator(db, logger)
	require.NoError(t, migrator.RunMigrations("../../migrations"))

	return db
}

func TestDocumentRepositoryLifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDocumentRepository(db.DB, zap.NewNop())

	doc := &models.DocumentRecord{
		ID:           "doc-1",
		UserID:       "user-1",
		DocumentType: models.DocTypeSalarySlip,
		FileURL:      "uploads/doc-1.pdf",
		Metadata: map[string]interface{}{
			"gross_salary": 100000.0,
			"employer":     "Acme",
		},
		Status: models.DocumentStatusProcessed,
	}
	require.NoError(t, repo.Create(doc))
	assert.False(t, doc.UploadedAt.IsZero())

	fetched, err := repo.GetByID("doc-1")
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, models.DocTypeSalarySlip, fetched.DocumentType)
	assert.InDelta(t, 100000, fetched.Metadata["gross_salary"].(float64), 0.001)
	assert.Equal(t, "Acme", fetched.Metadata["employer"])

	listed, err := repo.ListByUser("user-1")
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, repo.Delete("doc-1"))
	gone, err := repo.GetByID("doc-1")
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.Error(t, repo.Delete("doc-1"))
}

func TestDocumentRepositoryListOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDocumentRepository(db.DB, zap.NewNop())

	older := &models.DocumentRecord{
		ID: "doc-old", UserID: "user-1", DocumentType: models.DocTypeForm16,
		Status: models.DocumentStatusProcessed, UploadedAt: time.Now().UTC().Add(-time.Hour),
	}
	newer := &models.DocumentRecord{
		ID: "doc-new", UserID: "user-1", DocumentType: models.DocTypeForm26AS,
		Status: models.DocumentStatusProcessed, UploadedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(older))
	require.NoError(t, repo.Create(newer))

	listed, err := repo.ListByUser("user-1")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "doc-new", listed[0].ID)

	other, err := repo.ListByUser("someone-else")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestProfileRepositoryUpsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db.DB, zap.NewNop())

	missing, err := repo.GetByUserID("user-1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	profile := &models.UserProfile{
		UserID: "user-1",
		Name:   "Asha Verma",
		PAN:    "ABCDE1234F",
		Email:  "asha@example.com",
	}
	require.NoError(t, repo.Upsert(profile))

	profile.Name = "Asha V"
	require.NoError(t, repo.Upsert(profile))

	fetched, err := repo.GetByUserID("user-1")
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "Asha V", fetched.Name)
	assert.Equal(t, "ABCDE1234F", fetched.PAN)
}

func TestChatRepositoryRecent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChatRepository(db.DB, zap.NewNop())

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Append(&models.ChatMessage{
			UserID:      "user-1",
			Message:     "question",
			Response:    "answer",
			ContextUsed: true,
			Timestamp:   base.Add(time.Duration(i) * time.Minute),
		}))
	}

	messages, err := repo.Recent("user-1", 2)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	// Chronological order, so the last entry is the newest.
	assert.True(t, messages[0].Timestamp.Before(messages[1].Timestamp))
	assert.True(t, messages[0].ContextUsed)
}

func TestDeadlineRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeadlineRepository(db.DB, zap.NewNop())

	deadline := &models.UserDeadline{
		UserID: "user-1",
		Title:  "CA appointment",
		Date:   "2025-05-20",
	}
	require.NoError(t, repo.Create(deadline))
	assert.NotEmpty(t, deadline.ID)
	assert.Equal(t, "custom", deadline.Category)

	require.NoError(t, repo.Create(&models.UserDeadline{
		UserID: "user-1",
		Title:  "Collect Form 16",
		Date:   "2025-04-10",
	}))

	listed, err := repo.ListByUser("user-1")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Collect Form 16", listed[0].Title)

	require.NoError(t, repo.MarkCompleted(deadline.ID))
	listed, err = repo.ListByUser("user-1")
	require.NoError(t, err)
	assert.True(t, listed[1].IsCompleted)

	assert.Error(t, repo.MarkCompleted("nonexistent"))
}

func TestHealthScoreRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHealthScoreRepository(db.DB, zap.NewNop())

	empty, err := repo.Latest("user-1")
	require.NoError(t, err)
	assert.Nil(t, empty)

	require.NoError(t, repo.Record("user-1", 49, "2025-04"))
	require.NoError(t, repo.Record("user-1", 72, "2025-05"))

	latest, err := repo.Latest("user-1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 72, latest.Score)
	assert.Equal(t, "2025-05", latest.Month)
}
