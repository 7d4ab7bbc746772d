package warehouses

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LogoBenz/authenticfurniture-backend/pkg/db/models"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// Filter fields understood by the warehouse view.
const (
	FilterActive = "is_active"
	FilterState  = "state"
)

// Descriptor adapts warehouses to the collection layer.
type Descriptor struct{}

func (Descriptor) ID(w models.Warehouse) uuid.UUID {
	return w.ID
}

func (Descriptor) SearchValues(w models.Warehouse) []string {
	return []string{w.Name, w.City, w.State, w.ContactName, w.ID.String()}
}

func (Descriptor) FilterValue(w models.Warehouse, field string) string {
	switch field {
	case FilterActive:
		if w.IsActive {
			return "true"
		}
		return "false"
	case FilterState:
		return w.State
	default:
		return ""
	}
}

// Validate aggregates every field failure. Stock rows whose reserved
// quantity exceeds the stock on hand are rejected outright, never clamped.
func (Descriptor) Validate(w models.Warehouse) error {
	var err error
	if strings.TrimSpace(w.Name) == "" {
		err = multierr.Append(err, errors.New("name: required"))
	}
	if strings.TrimSpace(w.City) == "" {
		err = multierr.Append(err, errors.New("city: required"))
	}
	if strings.TrimSpace(w.State) == "" {
		err = multierr.Append(err, errors.New("state: required"))
	}
	for i, s := range w.Stock {
		err = multierr.Append(err, validateStockRow(s, fmt.Sprintf("stock[%d]", i)))
	}
	return err
}

// ValidateStock checks a single stock row against the availability
// invariant.
func ValidateStock(s models.WarehouseStock) error {
	return validateStockRow(s, "stock")
}

func validateStockRow(s models.WarehouseStock, prefix string) error {
	var err error
	if s.ProductID == uuid.Nil {
		err = multierr.Append(err, fmt.Errorf("%s.product_id: required", prefix))
	}
	if s.StockQuantity < 0 {
		err = multierr.Append(err, fmt.Errorf("%s.stock_quantity: must not be negative", prefix))
	}
	if s.ReservedQuantity < 0 {
		err = multierr.Append(err, fmt.Errorf("%s.reserved_quantity: must not be negative", prefix))
	}
	if s.StockQuantity >= 0 && s.ReservedQuantity >= 0 && s.Available() < 0 {
		err = multierr.Append(err, fmt.Errorf("%s: reserved quantity exceeds stock on hand", prefix))
	}
	if s.ReorderLevel < 0 {
		err = multierr.Append(err, fmt.Errorf("%s.reorder_level: must not be negative", prefix))
	}
	return err
}
