package warehouses

import (
	"context"

	"github.com/LogoBenz/authenticfurniture-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists warehouses and their per-product stock rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every warehouse with its stock rows.
func (r *Repository) List(ctx context.Context) ([]models.Warehouse, error) {
	var rows []models.Warehouse
	err := r.db.WithContext(ctx).
		Preload("Stock", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Order("id ASC")
		}).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).
		Error
	return rows, err
}

// GetByID loads one warehouse with stock.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	err := r.db.WithContext(ctx).
		Preload("Stock", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Order("id ASC")
		}).
		First(&warehouse, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &warehouse, nil
}

// Create inserts a warehouse; stock rows ride along via the association.
func (r *Repository) Create(ctx context.Context, warehouse *models.Warehouse) (*models.Warehouse, error) {
	if err := r.db.WithContext(ctx).Create(warehouse).Error; err != nil {
		return nil, err
	}
	return warehouse, nil
}

// Update saves the warehouse and replaces its stock rows wholesale.
func (r *Repository) Update(ctx context.Context, warehouse *models.Warehouse) (*models.Warehouse, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("warehouse_id = ?", warehouse.ID).Delete(&models.WarehouseStock{}).Error; err != nil {
			return err
		}
		return tx.Save(warehouse).Error
	})
	if err != nil {
		return nil, err
	}
	return warehouse, nil
}

// Delete removes the warehouse and its stock rows.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("warehouse_id = ?", id).Delete(&models.WarehouseStock{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Warehouse{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// UpsertStock writes one warehouse-by-product stock row, creating or
// replacing it inside a transaction.
func (r *Repository) UpsertStock(ctx context.Context, stock *models.WarehouseStock) (*models.WarehouseStock, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.WarehouseStock
		err := tx.First(&existing,
			"warehouse_id = ? AND product_id = ?", stock.WarehouseID, stock.ProductID).Error
		switch {
		case err == nil:
			stock.ID = existing.ID
			stock.CreatedAt = existing.CreatedAt
			return tx.Save(stock).Error
		case err == gorm.ErrRecordNotFound:
			return tx.Create(stock).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return stock, nil
}
