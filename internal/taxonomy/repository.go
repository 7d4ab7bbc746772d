package taxonomy

import (
	"context"

	"github.com/LogoBenz/authenticfurniture-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists the two-level Space/Subcategory tree.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every space with its subcategories, both ordered by
// sort_order with insertion order as the tie-break.
func (r *Repository) List(ctx context.Context) ([]models.Space, error) {
	var rows []models.Space
	err := r.db.WithContext(ctx).
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC").Order("created_at ASC").Order("id ASC")
		}).
		Order("sort_order ASC").
		Order("id ASC").
		Find(&rows).
		Error
	return rows, err
}

// GetByID loads one space with its subcategories.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Space, error) {
	var space models.Space
	err := r.db.WithContext(ctx).
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC").Order("created_at ASC").Order("id ASC")
		}).
		First(&space, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &space, nil
}

// Create inserts a space; nested subcategories ride along.
func (r *Repository) Create(ctx context.Context, space *models.Space) (*models.Space, error) {
	if err := r.db.WithContext(ctx).Create(space).Error; err != nil {
		return nil, err
	}
	return space, nil
}

// Update saves the space and replaces its subcategory set wholesale.
func (r *Repository) Update(ctx context.Context, space *models.Space) (*models.Space, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("space_id = ?", space.ID).Delete(&models.Subcategory{}).Error; err != nil {
			return err
		}
		return tx.Save(space).Error
	})
	if err != nil {
		return nil, err
	}
	return space, nil
}

// Delete removes the space and cascades to its subcategories.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("space_id = ?", id).Delete(&models.Subcategory{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Space{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// MoveSubcategory reassigns a subcategory to another space in one
// transaction, so no reader ever sees the node orphaned or duplicated.
func (r *Repository) MoveSubcategory(ctx context.Context, subcategoryID, targetSpaceID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target models.Space
		if err := tx.Select("id").First(&target, "id = ?", targetSpaceID).Error; err != nil {
			return err
		}
		result := tx.Model(&models.Subcategory{}).
			Where("id = ?", subcategoryID).
			Update("space_id", targetSpaceID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
