package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is the canonical catalog item. Images are ordered; the first entry
// is the primary storefront image. A product with no images is not
// publishable (InStock may still be tracked).
type Product struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name            string            `gorm:"column:name;not null" json:"name"`
	Slug            string            `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Category        string            `gorm:"column:category;not null;index" json:"category"`
	Description     *string           `gorm:"column:description" json:"description,omitempty"`
	Price           decimal.Decimal   `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Images          pq.StringArray    `gorm:"column:images;type:text[];not null;default:ARRAY[]::text[]" json:"images"`
	InStock         bool              `gorm:"column:in_stock;not null;default:true" json:"in_stock"`
	IsFeatured      bool              `gorm:"column:is_featured;not null;default:false" json:"is_featured"`
	DiscountPercent *float64          `gorm:"column:discount_percent;type:numeric(5,2)" json:"discount_percent,omitempty"`
	Badges          pq.StringArray    `gorm:"column:badges;type:text[]" json:"badges,omitempty"`
	BulkTiers       []ProductBulkTier `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"bulk_tiers,omitempty"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns an id client-side so the embedded fallback store and
// the test suites do not depend on a database default.
func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Publishable reports whether the product can appear on the storefront.
func (p *Product) Publishable() bool {
	return len(p.Images) > 0
}

// ProductBulkTier is an optional volume price for orders at or above MinQty.
type ProductBulkTier struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index" json:"product_id"`
	MinQty    int             `gorm:"column:min_qty;not null" json:"min_qty"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null" json:"unit_price"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (t *ProductBulkTier) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
