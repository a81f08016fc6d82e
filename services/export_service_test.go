package services

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/Bhaskar125/macro-tracking-webapp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	objects map[string][]byte
}

func (m *memStore) Upload(_ context.Context, key, _ string, body []byte) (string, error) {
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[key] = body
	return "https://cdn.example.com/" + key, nil
}

func TestExportService_ExportDay(t *testing.T) {
	f := newProgressFixture(t)
	day := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	f.log(t, 1, f.chicken, 150, models.Lunch, day)

	store := &memStore{}
	svc := NewExportService(f.progress, store)

	res, err := svc.ExportDay(context.Background(), 1, day, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", res.Date)
	assert.Equal(t, 1, res.Entries)
	assert.True(t, strings.HasPrefix(res.Key, "exports/1/2024-06-01-"))
	assert.Equal(t, "https://cdn.example.com/"+res.Key, res.URL)

	rows, err := csv.NewReader(strings.NewReader(string(store.objects[res.Key]))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "logged_at", rows[0][0])
	assert.Equal(t, []string{"2024-06-01T12:00:00Z", "lunch", "Chicken Breast", "Generic", "150", "g", "247.5", "46.5", "0", "5.4", "0", "0", "0"}, rows[1])
	assert.Equal(t, "TOTAL", rows[2][0])
	assert.Equal(t, "247.5", rows[2][6])
}

func TestExportService_NoStore(t *testing.T) {
	_, err := NewExportService(nil, nil).ExportDay(context.Background(), 1, time.Now(), nil)
	assert.ErrorIs(t, err, ErrExportUnavailable)
}
