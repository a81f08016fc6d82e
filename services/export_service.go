package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ObjectStore uploads a file and returns where it can be fetched.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
}

var ErrExportUnavailable = errors.New("export storage is not configured")

type ExportService struct {
	progress *ProgressService
	store    ObjectStore
}

func NewExportService(progress *ProgressService, store ObjectStore) *ExportService {
	return &ExportService{progress: progress, store: store}
}

type ExportResult struct {
	Date    string `json:"date"`
	Key     string `json:"key"`
	URL     string `json:"url"`
	Entries int    `json:"entries"`
}

// ExportDay renders the day's entries and totals as CSV and uploads it.
func (s *ExportService) ExportDay(ctx context.Context, userID uint, day time.Time, loc *time.Location) (*ExportResult, error) {
	if s.store == nil {
		return nil, ErrExportUnavailable
	}
	summary, err := s.progress.Daily(ctx, userID, day, loc)
	if err != nil {
		return nil, err
	}
	body, err := RenderDayCSV(summary)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("exports/%d/%s-%s.csv", userID, summary.Date, uuid.NewString())
	url, err := s.store.Upload(ctx, key, "text/csv", body)
	if err != nil {
		return nil, err
	}
	return &ExportResult{Date: summary.Date, Key: key, URL: url, Entries: len(summary.Entries)}, nil
}

// RenderDayCSV writes one row per entry followed by a TOTAL row.
func RenderDayCSV(d *DailySummary) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"logged_at", "meal", "food", "brand", "quantity", "unit", "calories", "protein", "carbs", "fat", "fiber", "sugar", "sodium"})
	for _, e := range d.Entries {
		name, brand, unit := "", "", ""
		if e.Food != nil {
			name, brand, unit = e.Food.Name, e.Food.Brand, e.Food.ServingUnit
		}
		c := e.Contribution
		_ = w.Write([]string{
			e.LoggedAt.UTC().Format(time.RFC3339), string(e.Meal), name, brand,
			num(e.Quantity), unit,
			num(c.Calories), num(c.Protein), num(c.Carbs), num(c.Fat), num(c.Fiber), num(c.Sugar), num(c.Sodium),
		})
	}
	t := d.Totals
	_ = w.Write([]string{
		"TOTAL", "", "", "", "", "",
		num(t.Calories), num(t.Protein), num(t.Carbs), num(t.Fat), num(t.Fiber), num(t.Sugar), num(t.Sodium),
	})

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("render csv: %w", err)
	}
	return buf.Bytes(), nil
}

func num(v float64) string { return strconv.FormatFloat(round2(v), 'f', -1, 64) }
