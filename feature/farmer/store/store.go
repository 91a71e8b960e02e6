package store

import (
	"context"
	"errors"
	"fmt"

	"farmer-registry/core/database"
	"farmer-registry/feature/farmer/models"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no farmer matches a lookup.
	ErrNotFound = errors.New("farmer not found")
	// ErrDuplicate is returned when a unique column already holds the value.
	ErrDuplicate = errors.New("farmer already exists")
)

// Store is the persistence collaborator of the registry.
type Store interface {
	FindByTempID(ctx context.Context, tempID string) (*models.Farmer, error)
	FindByNRCHash(ctx context.Context, hash string) (*models.Farmer, error)
	FindByPhone(ctx context.Context, phone string) (*models.Farmer, error)
	FindByFarmerID(ctx context.Context, farmerID string) (*models.Farmer, error)
	// Create inserts a new farmer.
	Create(ctx context.Context, farmer *models.Farmer) error
	// Save writes every column of an existing farmer, keyed by its primary key.
	Save(ctx context.Context, farmer *models.Farmer) error
}

// GormStore implements Store over GORM.
type GormStore struct {
	db *gorm.DB
}

// New creates a GORM backed store.
func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the farmers table.
func (s *GormStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&models.Farmer{}); err != nil {
		return fmt.Errorf("failed to migrate farmers table: %w", err)
	}
	return nil
}

// MissingColumns reports registry columns absent from the farmers table.
func (s *GormStore) MissingColumns() ([]string, error) {
	return database.MissingColumns(s.db, models.Farmer{}.TableName(), models.Columns())
}

func (s *GormStore) FindByTempID(ctx context.Context, tempID string) (*models.Farmer, error) {
	return s.findBy(ctx, "temp_id", tempID)
}

func (s *GormStore) FindByNRCHash(ctx context.Context, hash string) (*models.Farmer, error) {
	return s.findBy(ctx, "nrc_hash", hash)
}

func (s *GormStore) FindByPhone(ctx context.Context, phone string) (*models.Farmer, error) {
	return s.findBy(ctx, "phone_primary", phone)
}

func (s *GormStore) FindByFarmerID(ctx context.Context, farmerID string) (*models.Farmer, error) {
	return s.findBy(ctx, "farmer_id", farmerID)
}

// findBy returns the oldest farmer whose column equals value.
func (s *GormStore) findBy(ctx context.Context, column, value string) (*models.Farmer, error) {
	var farmer models.Farmer
	err := s.db.WithContext(ctx).
		Where(column+" = ?", value).
		Order("id").
		Limit(1).
		Find(&farmer).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up farmer by %s: %w", column, err)
	}
	if farmer.ID == 0 {
		return nil, ErrNotFound
	}
	return &farmer, nil
}

func (s *GormStore) Create(ctx context.Context, farmer *models.Farmer) error {
	err := s.db.WithContext(ctx).Create(farmer).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create farmer %s: %w", farmer.FarmerID, err)
	}
	return nil
}

func (s *GormStore) Save(ctx context.Context, farmer *models.Farmer) error {
	if farmer.ID == 0 {
		return fmt.Errorf("cannot save farmer %s without primary key", farmer.FarmerID)
	}
	if err := s.db.WithContext(ctx).Save(farmer).Error; err != nil {
		return fmt.Errorf("failed to save farmer %s: %w", farmer.FarmerID, err)
	}
	return nil
}
