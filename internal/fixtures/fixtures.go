// Package fixtures bundles the embedded datasets that back the fallback data
// source when no remote database is configured. The datasets mirror the
// storefront's sample catalog and are deterministic: fixed ids, fixed order.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/LogoBenz/authenticfurniture-backend/pkg/db"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/db/models"
)

//go:embed data/*.json
var dataFS embed.FS

// Products decodes the bundled product dataset.
func Products() ([]models.Product, error) {
	var out []models.Product
	if err := load("data/products.json", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Customers decodes the bundled customer dataset.
func Customers() ([]models.Customer, error) {
	var out []models.Customer
	if err := load("data/customers.json", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Spaces decodes the bundled taxonomy dataset, subcategories nested.
func Spaces() ([]models.Space, error) {
	var out []models.Space
	if err := load("data/spaces.json", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Warehouses decodes the bundled warehouse dataset, stock rows nested.
func Warehouses() ([]models.Warehouse, error) {
	var out []models.Warehouse
	if err := load("data/warehouses.json", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Seed migrates the embedded database and inserts every bundled dataset.
// Products are seeded first so warehouse stock rows can reference them.
func Seed(client *db.Client) error {
	if client == nil {
		return fmt.Errorf("db client required")
	}
	gdb := client.DB()
	if err := gdb.AutoMigrate(
		&models.Product{},
		&models.ProductBulkTier{},
		&models.Customer{},
		&models.Space{},
		&models.Subcategory{},
		&models.Warehouse{},
		&models.WarehouseStock{},
	); err != nil {
		return fmt.Errorf("migrating embedded schema: %w", err)
	}

	products, err := Products()
	if err != nil {
		return err
	}
	if err := gdb.Create(&products).Error; err != nil {
		return fmt.Errorf("seeding products: %w", err)
	}

	customers, err := Customers()
	if err != nil {
		return err
	}
	if err := gdb.Create(&customers).Error; err != nil {
		return fmt.Errorf("seeding customers: %w", err)
	}

	spaces, err := Spaces()
	if err != nil {
		return err
	}
	if err := gdb.Create(&spaces).Error; err != nil {
		return fmt.Errorf("seeding spaces: %w", err)
	}

	warehouses, err := Warehouses()
	if err != nil {
		return err
	}
	if err := gdb.Create(&warehouses).Error; err != nil {
		return fmt.Errorf("seeding warehouses: %w", err)
	}

	return nil
}

func load(name string, out any) error {
	payload, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("reading fixture %s: %w", name, err)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decoding fixture %s: %w", name, err)
	}
	return nil
}
