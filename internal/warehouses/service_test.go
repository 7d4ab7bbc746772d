package warehouses

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/LogoBenz/authenticfurniture-backend/pkg/db/models"
	pkgerrors "github.com/LogoBenz/authenticfurniture-backend/pkg/errors"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/logger"
	"github.com/google/uuid"
)

func newServiceOverRepo(t *testing.T, withStockWriter bool) (Service, *Repository) {
	t.Helper()
	repo := NewRepository(newRepoTestDB(t))
	var writer StockWriter
	if withStockWriter {
		writer = repo
	}
	svc, err := NewService(repo, writer, logger.New(logger.Options{ServiceName: "test"}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func TestServiceSetStock(t *testing.T) {
	svc, repo := newServiceOverRepo(t, true)
	ctx := context.Background()

	warehouse := createWarehouse(t, repo, "Ikeja Main")
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	written, err := svc.SetStock(ctx, models.WarehouseStock{
		WarehouseID:      warehouse.ID,
		ProductID:        uuid.New(),
		StockQuantity:    30,
		ReservedQuantity: 10,
		ReorderLevel:     5,
	})
	if err != nil {
		t.Fatalf("set stock: %v", err)
	}
	if written.Available() != 20 {
		t.Fatalf("expected available 20, got %d", written.Available())
	}

	// the working copy was refreshed
	got, err := svc.Get(warehouse.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Stock) != 1 {
		t.Fatalf("expected refreshed stock, got %d rows", len(got.Stock))
	}
}

// cachingStockSource stands in for the datasource adapter: it records the
// call order so the test can check the snapshot is dropped before the reload
// that follows a stock upsert.
type cachingStockSource struct {
	records []models.Warehouse
	events  []string
}

func (f *cachingStockSource) List(context.Context) ([]models.Warehouse, error) {
	f.events = append(f.events, "list")
	out := make([]models.Warehouse, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *cachingStockSource) Create(_ context.Context, w *models.Warehouse) (*models.Warehouse, error) {
	stored := *w
	return &stored, nil
}

func (f *cachingStockSource) Update(_ context.Context, w *models.Warehouse) (*models.Warehouse, error) {
	stored := *w
	return &stored, nil
}

func (f *cachingStockSource) Delete(context.Context, uuid.UUID) error {
	return nil
}

func (f *cachingStockSource) InvalidateSnapshot(context.Context) {
	f.events = append(f.events, "invalidate")
}

func (f *cachingStockSource) UpsertStock(_ context.Context, stock *models.WarehouseStock) (*models.WarehouseStock, error) {
	f.events = append(f.events, "upsert")
	for i := range f.records {
		if f.records[i].ID == stock.WarehouseID {
			f.records[i].Stock = append(f.records[i].Stock, *stock)
		}
	}
	written := *stock
	return &written, nil
}

func TestServiceSetStockDropsSnapshotBeforeReload(t *testing.T) {
	warehouse := models.Warehouse{ID: uuid.New(), Name: "Ikeja Main", IsActive: true}
	source := &cachingStockSource{records: []models.Warehouse{warehouse}}

	svc, err := NewService(source, source, logger.New(logger.Options{ServiceName: "test"}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, err := svc.SetStock(ctx, models.WarehouseStock{
		WarehouseID:   warehouse.ID,
		ProductID:     uuid.New(),
		StockQuantity: 12,
	}); err != nil {
		t.Fatalf("set stock: %v", err)
	}

	want := []string{"list", "upsert", "invalidate", "list"}
	if !reflect.DeepEqual(source.events, want) {
		t.Fatalf("expected call order %v, got %v", want, source.events)
	}
	got, err := svc.Get(warehouse.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Stock) != 1 {
		t.Fatal("reload served the pre-upsert snapshot")
	}
}

func TestServiceSetStockRejectsNegativeAvailability(t *testing.T) {
	svc, repo := newServiceOverRepo(t, true)
	ctx := context.Background()

	warehouse := createWarehouse(t, repo, "Abuja DC")
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	_, err := svc.SetStock(ctx, models.WarehouseStock{
		WarehouseID:      warehouse.ID,
		ProductID:        uuid.New(),
		StockQuantity:    5,
		ReservedQuantity: 8,
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	typed := pkgerrors.As(err)
	details, _ := typed.Details().(string)
	if !strings.Contains(details, "reserved quantity exceeds stock on hand") {
		t.Fatalf("expected invariant detail, got %q", details)
	}

	// nothing was clamped or written
	got, getErr := svc.Get(warehouse.ID)
	if getErr != nil {
		t.Fatalf("get: %v", getErr)
	}
	if len(got.Stock) != 0 {
		t.Fatal("invalid stock row must not be persisted")
	}
}

func TestServiceSetStockWithoutRemote(t *testing.T) {
	svc, repo := newServiceOverRepo(t, false)
	ctx := context.Background()

	warehouse := createWarehouse(t, repo, "PH Depot")
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	_, err := svc.SetStock(ctx, models.WarehouseStock{
		WarehouseID:   warehouse.ID,
		ProductID:     uuid.New(),
		StockQuantity: 3,
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotConfigured) {
		t.Fatalf("expected NOT_CONFIGURED, got %v", err)
	}
}

func TestServiceStats(t *testing.T) {
	svc, repo := newServiceOverRepo(t, true)
	ctx := context.Background()

	warehouse := createWarehouse(t, repo, "Ikeja Main")
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, err := svc.SetStock(ctx, models.WarehouseStock{
		WarehouseID:      warehouse.ID,
		ProductID:        uuid.New(),
		StockQuantity:    10,
		ReservedQuantity: 2,
		ReorderLevel:     3,
	}); err != nil {
		t.Fatalf("set stock: %v", err)
	}
	if _, err := svc.SetStock(ctx, models.WarehouseStock{
		WarehouseID:      warehouse.ID,
		ProductID:        uuid.New(),
		StockQuantity:    4,
		ReservedQuantity: 2,
		ReorderLevel:     5,
	}); err != nil {
		t.Fatalf("set stock: %v", err)
	}

	stats := svc.Stats()
	if stats.Warehouses != 1 {
		t.Fatalf("expected 1 warehouse, got %d", stats.Warehouses)
	}
	if stats.TotalAvailable != 10 {
		t.Fatalf("expected available 10, got %d", stats.TotalAvailable)
	}
	if stats.NeedingReorder != 1 {
		t.Fatalf("expected 1 row needing reorder, got %d", stats.NeedingReorder)
	}
}
