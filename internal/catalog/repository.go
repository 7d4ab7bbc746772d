package catalog

import (
	"context"

	"github.com/LogoBenz/authenticfurniture-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists products with their bulk price tiers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every product, newest first, tiers preloaded.
func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Preload("BulkTiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("min_qty ASC")
		}).
		Order("created_at DESC").
		Order("id ASC").
		Find(&rows).
		Error
	return rows, err
}

// GetByID loads one product with tiers.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("BulkTiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("min_qty ASC")
		}).
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Create inserts a product row; tiers ride along via the association.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Update saves the product and replaces its bulk tiers wholesale.
func (r *Repository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductBulkTier{}).Error; err != nil {
			return err
		}
		return tx.Save(product).Error
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes the product and its tiers.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductBulkTier{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Product{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
