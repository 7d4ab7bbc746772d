package warehouses

import (
	"context"
	"fmt"

	"github.com/LogoBenz/authenticfurniture-backend/internal/collection"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/db"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/db/models"
	pkgerrors "github.com/LogoBenz/authenticfurniture-backend/pkg/errors"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/logger"
	"github.com/google/uuid"
)

// StockWriter performs the transactional stock upsert. The warehouse
// repository implements it; fallback mode has none.
type StockWriter interface {
	UpsertStock(ctx context.Context, stock *models.WarehouseStock) (*models.WarehouseStock, error)
}

// snapshotInvalidator is implemented by the datasource adapter. Stock upserts
// write through the repository, not the adapter, so the cached list snapshot
// has to be dropped by hand before the reload.
type snapshotInvalidator interface {
	InvalidateSnapshot(ctx context.Context)
}

// Stats summarizes the warehouse network.
type Stats struct {
	Warehouses     int `json:"warehouses"`
	Active         int `json:"active"`
	TotalAvailable int `json:"total_available"`
	NeedingReorder int `json:"needing_reorder"`
}

// Service exposes warehouse management over the collection controller.
type Service interface {
	Load(ctx context.Context) error
	View(query string, filters map[string]string) []models.Warehouse
	Get(id uuid.UUID) (models.Warehouse, error)
	Create(ctx context.Context, warehouse models.Warehouse) (models.Warehouse, error)
	Update(ctx context.Context, warehouse models.Warehouse) (models.Warehouse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetStock(ctx context.Context, stock models.WarehouseStock) (models.WarehouseStock, error)
	Stats() Stats
}

type service struct {
	ctrl       *collection.Controller[models.Warehouse]
	stocks     StockWriter
	invalidate snapshotInvalidator
}

// NewService wires the warehouse controller. The stock writer may be nil
// when no remote data source is configured.
func NewService(source collection.Source[models.Warehouse], stocks StockWriter, logg *logger.Logger) (Service, error) {
	ctrl, err := collection.NewController[models.Warehouse](source, Descriptor{}, logg)
	if err != nil {
		return nil, fmt.Errorf("building warehouse controller: %w", err)
	}
	svc := &service{ctrl: ctrl, stocks: stocks}
	if invalidate, ok := source.(snapshotInvalidator); ok {
		svc.invalidate = invalidate
	}
	return svc, nil
}

func (s *service) Load(ctx context.Context) error {
	return s.ctrl.Load(ctx)
}

func (s *service) View(query string, filters map[string]string) []models.Warehouse {
	return s.ctrl.ViewWith(query, filters)
}

func (s *service) Get(id uuid.UUID) (models.Warehouse, error) {
	return s.ctrl.Get(id)
}

func (s *service) Create(ctx context.Context, warehouse models.Warehouse) (models.Warehouse, error) {
	return s.ctrl.Create(ctx, warehouse)
}

func (s *service) Update(ctx context.Context, warehouse models.Warehouse) (models.Warehouse, error) {
	return s.ctrl.Update(ctx, warehouse)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.ctrl.Remove(ctx, id)
}

// SetStock validates the availability invariant, writes the row, and
// refreshes the working copy.
func (s *service) SetStock(ctx context.Context, stock models.WarehouseStock) (models.WarehouseStock, error) {
	var zero models.WarehouseStock
	if err := ValidateStock(stock); err != nil {
		return zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed").WithDetails(err.Error())
	}
	if s.stocks == nil {
		return zero, pkgerrors.New(pkgerrors.CodeNotConfigured, "no remote data source configured for warehouses")
	}
	if _, err := s.ctrl.Get(stock.WarehouseID); err != nil {
		return zero, err
	}

	written, err := s.stocks.UpsertStock(ctx, &stock)
	if err != nil {
		if db.IsConstraintViolation(err) {
			return zero, pkgerrors.Wrap(pkgerrors.CodeRemoteRejected, err, "upserting stock")
		}
		return zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upserting stock")
	}
	if s.invalidate != nil {
		s.invalidate.InvalidateSnapshot(ctx)
	}
	if err := s.ctrl.Load(ctx); err != nil {
		return zero, err
	}
	return *written, nil
}

func (s *service) Stats() Stats {
	items := s.ctrl.Items()
	stats := Stats{Warehouses: len(items)}
	for _, w := range items {
		if w.IsActive {
			stats.Active++
		}
		for _, row := range w.Stock {
			stats.TotalAvailable += row.Available()
			if row.NeedsReorder() {
				stats.NeedingReorder++
			}
		}
	}
	return stats
}
