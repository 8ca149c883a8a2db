package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/shared"
)

// GormActivationRepository implements ActivationRepository using GORM
type GormActivationRepository struct {
	db *gorm.DB
}

// NewGormActivationRepository creates a new GormActivationRepository
func NewGormActivationRepository(db *gorm.DB) *GormActivationRepository {
	return &GormActivationRepository{db: db}
}

// FindByID finds an activation record by its ID
func (r *GormActivationRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Activation, error) {
	var activation catalog.Activation
	if err := r.db.WithContext(ctx).First(&activation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &activation, nil
}

// FindByEntryID finds the activation record for a catalog entry
func (r *GormActivationRepository) FindByEntryID(ctx context.Context, entryID string) (*catalog.Activation, error) {
	var activation catalog.Activation
	if err := r.db.WithContext(ctx).First(&activation, "entry_id = ?", entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &activation, nil
}

// FindAll returns every activation record
func (r *GormActivationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Activation, error) {
	var activations []catalog.Activation
	query := r.db.WithContext(ctx).Model(&catalog.Activation{})

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ActivationSortFields, "title")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&activations).Error; err != nil {
		return nil, err
	}
	return activations, nil
}

// FindActive returns activation records that are switched on
func (r *GormActivationRepository) FindActive(ctx context.Context) ([]catalog.Activation, error) {
	var activations []catalog.Activation
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("title ASC").
		Find(&activations).Error; err != nil {
		return nil, err
	}
	return activations, nil
}

// Save creates or updates an activation record
func (r *GormActivationRepository) Save(ctx context.Context, activation *catalog.Activation) error {
	return r.db.WithContext(ctx).Save(activation).Error
}

// Delete removes an activation record
func (r *GormActivationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Activation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormActivationRepository implements ActivationRepository
var _ catalog.ActivationRepository = (*GormActivationRepository)(nil)
