package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"expiryx-backend/internal/domain/models"
)

// Store implements TxRunner on top of a gorm Postgres connection.
type Store struct {
	db *gorm.DB
}

// Open connects to Postgres, runs the schema migration and returns a Store.
// TranslateError is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Store{},
		&models.Branch{},
		&models.User{},
		&models.Product{},
		&models.Batch{},
		&models.Sale{},
		&models.Alert{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Store{db: db}, nil
}

// NewStore wraps an existing gorm connection. Used by tests and by InTx to
// rebind the repository to a transaction handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InTx runs fn inside one transaction; an error from fn rolls everything
// back.
func (s *Store) InTx(ctx context.Context, fn func(Repository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// ExpiringBatches implements Repository.
func (s *Store) ExpiringBatches(ctx context.Context, after, until time.Time) ([]models.Batch, error) {
	var batches []models.Batch
	err := s.db.WithContext(ctx).
		Preload("Product").
		Preload("Branch.Store").
		Where("is_active = ? AND current_quantity > 0 AND expiry_date > ? AND expiry_date <= ?",
			true, after, until).
		Order("expiry_date ASC").
		Find(&batches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query expiring batches: %w", err)
	}
	return batches, nil
}

// LowStockBatches implements Repository.
func (s *Store) LowStockBatches(ctx context.Context, threshold int) ([]models.Batch, error) {
	var batches []models.Batch
	err := s.db.WithContext(ctx).
		Preload("Product").
		Preload("Branch.Store").
		Where("is_active = ? AND current_quantity > 0 AND current_quantity <= ?", true, threshold).
		Order("current_quantity ASC").
		Find(&batches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock batches: %w", err)
	}
	return batches, nil
}

// AlertExistsOn implements Repository.
func (s *Store) AlertExistsOn(ctx context.Context, batchID uint, alertType models.AlertType, day time.Time) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Alert{}).
		Where("batch_id = ? AND type = ? AND alert_date = ?", batchID, alertType, day).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check existing alert: %w", err)
	}
	return count > 0, nil
}

// PendingAlertExists implements Repository.
func (s *Store) PendingAlertExists(ctx context.Context, batchID uint, alertType models.AlertType) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Alert{}).
		Where("batch_id = ? AND type = ? AND status = ?", batchID, alertType, models.StatusPending).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check pending alert: %w", err)
	}
	return count > 0, nil
}

// CreateAlert implements Repository.
func (s *Store) CreateAlert(ctx context.Context, alert *models.Alert) (bool, error) {
	err := s.db.WithContext(ctx).Create(alert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Another pass already recorded this (batch, type, day); treat as
			// already-exists and skip.
			return false, nil
		}
		return false, fmt.Errorf("failed to insert alert: %w", err)
	}
	return true, nil
}

// MarkBatchesExpired implements Repository.
func (s *Store) MarkBatchesExpired(ctx context.Context, asOf time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Batch{}).
		Where("is_active = ? AND is_expired = ? AND expiry_date <= ?", true, false, asOf).
		Updates(map[string]any{"is_expired": true, "is_active": false})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to mark batches expired: %w", res.Error)
	}
	return res.RowsAffected, nil
}
