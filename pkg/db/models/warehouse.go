package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Warehouse holds location and contact metadata for a fulfilment site.
type Warehouse struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string           `gorm:"column:name;not null" json:"name"`
	Address     string           `gorm:"column:address;not null" json:"address"`
	City        string           `gorm:"column:city;not null" json:"city"`
	State       string           `gorm:"column:state;not null" json:"state"`
	Phone       string           `gorm:"column:phone" json:"phone"`
	ContactName string           `gorm:"column:contact_name" json:"contact_name"`
	IsActive    bool             `gorm:"column:is_active;not null;default:true" json:"is_active"`
	Stock       []WarehouseStock `gorm:"foreignKey:WarehouseID;constraint:OnDelete:CASCADE" json:"stock,omitempty"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (w *Warehouse) BeforeCreate(*gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// WarehouseStock is the warehouse-by-product stock junction. The available
// quantity (stock minus reserved) must never go negative; updates that would
// violate that are rejected, not clamped.
type WarehouseStock struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	WarehouseID      uuid.UUID `gorm:"column:warehouse_id;type:uuid;not null;uniqueIndex:idx_warehouse_product" json:"warehouse_id"`
	ProductID        uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_warehouse_product" json:"product_id"`
	StockQuantity    int       `gorm:"column:stock_quantity;not null;default:0" json:"stock_quantity"`
	ReservedQuantity int       `gorm:"column:reserved_quantity;not null;default:0" json:"reserved_quantity"`
	ReorderLevel     int       `gorm:"column:reorder_level;not null;default:0" json:"reorder_level"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (s *WarehouseStock) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Available is the sellable quantity.
func (s WarehouseStock) Available() int {
	return s.StockQuantity - s.ReservedQuantity
}

// NeedsReorder reports whether available stock has dropped to the reorder
// threshold.
func (s WarehouseStock) NeedsReorder() bool {
	return s.Available() <= s.ReorderLevel
}
