package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LogoBenz/authenticfurniture-backend/pkg/db/models"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// Filter fields understood by the product view.
const (
	FilterCategory = "category"
	FilterInStock  = "in_stock"
	FilterFeatured = "featured"
)

// Descriptor adapts products to the collection layer.
type Descriptor struct {
	MaxImages int
}

func (Descriptor) ID(p models.Product) uuid.UUID {
	return p.ID
}

func (Descriptor) SearchValues(p models.Product) []string {
	return []string{p.Name, p.Category, p.ID.String()}
}

func (Descriptor) FilterValue(p models.Product, field string) string {
	switch field {
	case FilterCategory:
		return p.Category
	case FilterInStock:
		return boolValue(p.InStock)
	case FilterFeatured:
		return boolValue(p.IsFeatured)
	default:
		return ""
	}
}

// Validate aggregates every field failure so callers see them all at once.
func (d Descriptor) Validate(p models.Product) error {
	var err error
	if strings.TrimSpace(p.Name) == "" {
		err = multierr.Append(err, errors.New("name: required"))
	}
	if strings.TrimSpace(p.Category) == "" {
		err = multierr.Append(err, errors.New("category: required"))
	}
	if p.Price.IsNegative() {
		err = multierr.Append(err, errors.New("price: must not be negative"))
	}
	if p.DiscountPercent != nil && (*p.DiscountPercent < 0 || *p.DiscountPercent > 100) {
		err = multierr.Append(err, errors.New("discount_percent: must be between 0 and 100"))
	}
	if !p.Publishable() {
		err = multierr.Append(err, errors.New("images: at least one required"))
	}
	if d.MaxImages > 0 && len(p.Images) > d.MaxImages {
		err = multierr.Append(err, fmt.Errorf("images: at most %d allowed", d.MaxImages))
	}
	for i, tier := range p.BulkTiers {
		if tier.MinQty < 1 {
			err = multierr.Append(err, fmt.Errorf("bulk_tiers[%d].min_qty: must be at least 1", i))
		}
		if tier.UnitPrice.IsNegative() {
			err = multierr.Append(err, fmt.Errorf("bulk_tiers[%d].unit_price: must not be negative", i))
		}
	}
	return err
}

func boolValue(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
