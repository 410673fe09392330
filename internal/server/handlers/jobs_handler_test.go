package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appconfig "expiryx-backend/internal/config"
	"expiryx-backend/internal/domain/models"
	"expiryx-backend/internal/repository/postgres"
	"expiryx-backend/internal/service/expiry"
)

type stubStore struct {
	batches []models.Batch
	fail    bool
	alerts  []models.Alert
}

func (s *stubStore) InTx(_ context.Context, fn func(postgres.Repository) error) error {
	if s.fail {
		return errors.New("database down")
	}
	return fn(s)
}

func (s *stubStore) ExpiringBatches(context.Context, time.Time, time.Time) ([]models.Batch, error) {
	return s.batches, nil
}

func (s *stubStore) LowStockBatches(context.Context, int) ([]models.Batch, error) {
	return s.batches, nil
}

func (s *stubStore) AlertExistsOn(context.Context, uint, models.AlertType, time.Time) (bool, error) {
	return false, nil
}

func (s *stubStore) PendingAlertExists(context.Context, uint, models.AlertType) (bool, error) {
	return false, nil
}

func (s *stubStore) CreateAlert(_ context.Context, alert *models.Alert) (bool, error) {
	s.alerts = append(s.alerts, *alert)
	return true, nil
}

func (s *stubStore) MarkBatchesExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func newTestHandler(t *testing.T, store *stubStore) *JobsHandler {
	t.Helper()

	svc, err := expiry.NewService(store, nil, appconfig.AlertConfig{
		WarningDays:       5,
		CriticalDays:      1,
		LowStockThreshold: 5,
	}, time.UTC, zap.NewNop())
	require.NoError(t, err)

	return NewJobsHandler(svc, zap.NewNop())
}

func performRequest(handler gin.HandlerFunc, method, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Handle(method, path, handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRunExpiryCheck_ReturnsSummary(t *testing.T) {
	store := &stubStore{batches: []models.Batch{{
		ID:              1,
		BatchNumber:     "B-001",
		BranchID:        1,
		Branch:          models.Branch{ID: 1, Name: "Alappuzha"},
		Product:         models.Product{ID: 1, Name: "Milk 1L"},
		CurrentQuantity: 10,
		ExpiryDate:      time.Now().AddDate(0, 0, 1),
		IsActive:        true,
	}}}
	h := newTestHandler(t, store)

	w := performRequest(h.RunExpiryCheck, http.MethodPost, "/jobs/expiry-check/run")
	require.Equal(t, http.StatusOK, w.Code)

	var summary expiry.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.AlertsCreated)
	require.Len(t, store.alerts, 1)
	assert.Equal(t, models.TypeExpiryCritical, store.alerts[0].Type)
}

func TestRunExpiryCheck_PassFailure(t *testing.T) {
	h := newTestHandler(t, &stubStore{fail: true})

	w := performRequest(h.RunExpiryCheck, http.MethodPost, "/jobs/expiry-check/run")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "expiry check failed")
}

func TestRunLowStockCheck_ReturnsSummary(t *testing.T) {
	store := &stubStore{batches: []models.Batch{{
		ID:              2,
		BatchNumber:     "B-002",
		BranchID:        1,
		Branch:          models.Branch{ID: 1, Name: "Alappuzha"},
		Product:         models.Product{ID: 2, Name: "Bread"},
		CurrentQuantity: 3,
		ExpiryDate:      time.Now().AddDate(0, 0, 30),
		IsActive:        true,
	}}}
	h := newTestHandler(t, store)

	w := performRequest(h.RunLowStockCheck, http.MethodPost, "/jobs/low-stock-check/run")
	require.Equal(t, http.StatusOK, w.Code)

	var summary expiry.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.AlertsCreated)
	require.Len(t, store.alerts, 1)
	assert.Equal(t, models.TypeLowStock, store.alerts[0].Type)
	assert.Equal(t, models.LevelInfo, store.alerts[0].Level)
}
