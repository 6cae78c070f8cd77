package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/inkboard/internal/models"
	"github.com/iudanet/inkboard/internal/server/storage"
)

func TestDocumentStorage_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := &models.DocumentInfo{
		ID:        uuid.New().String(),
		Title:     "Roadmap",
		CreatedAt: created,
		UpdatedAt: created,
	}
	require.NoError(t, s.CreateDocument(ctx, doc))

	got, err := s.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, "Roadmap", got.Title)
	assert.True(t, created.Equal(got.CreatedAt))
	assert.True(t, created.Equal(got.UpdatedAt))

	// повторный id отклоняется
	require.Error(t, s.CreateDocument(ctx, doc))
}

func TestDocumentStorage_GetDocument_NotFound(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrDocumentNotFound)
}

func TestDocumentStorage_UpdateTitle(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	id := createTestDocument(t, ctx, s)

	tests := []struct {
		wantErr error
		name    string
		id      string
		title   string
	}{
		{name: "existing document", id: id, title: "Renamed"},
		{name: "missing document", id: "missing", title: "x", wantErr: storage.ErrDocumentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated := time.Now().Add(time.Hour).Truncate(time.Second)
			err := s.UpdateTitle(ctx, tt.id, tt.title, updated)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			got, err := s.GetDocument(ctx, tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.title, got.Title)
			assert.True(t, updated.Equal(got.UpdatedAt))
		})
	}
}
