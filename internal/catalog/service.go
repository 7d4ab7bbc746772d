package catalog

import (
	"context"
	"fmt"

	"github.com/LogoBenz/authenticfurniture-backend/internal/collection"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/db/models"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/format"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stats summarizes the loaded catalog.
type Stats struct {
	Total               int             `json:"total"`
	InStock             int             `json:"in_stock"`
	Featured            int             `json:"featured"`
	PerCategory         map[string]int  `json:"per_category"`
	AveragePrice        decimal.Decimal `json:"average_price"`
	AveragePriceDisplay string          `json:"average_price_display"`
}

// Service exposes catalog management over the collection controller.
type Service interface {
	Load(ctx context.Context) error
	View(query string, filters map[string]string) []models.Product
	Get(id uuid.UUID) (models.Product, error)
	Create(ctx context.Context, product models.Product) (models.Product, error)
	Update(ctx context.Context, product models.Product) (models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats() Stats
}

type service struct {
	ctrl *collection.Controller[models.Product]
}

// NewService wires the product controller over the given source.
func NewService(source collection.Source[models.Product], maxImages int, logg *logger.Logger) (Service, error) {
	ctrl, err := collection.NewController[models.Product](source, Descriptor{MaxImages: maxImages}, logg)
	if err != nil {
		return nil, fmt.Errorf("building catalog controller: %w", err)
	}
	return &service{ctrl: ctrl}, nil
}

func (s *service) Load(ctx context.Context) error {
	return s.ctrl.Load(ctx)
}

func (s *service) View(query string, filters map[string]string) []models.Product {
	return s.ctrl.ViewWith(query, filters)
}

func (s *service) Get(id uuid.UUID) (models.Product, error) {
	return s.ctrl.Get(id)
}

func (s *service) Create(ctx context.Context, product models.Product) (models.Product, error) {
	return s.ctrl.Create(ctx, product)
}

func (s *service) Update(ctx context.Context, product models.Product) (models.Product, error) {
	return s.ctrl.Update(ctx, product)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.ctrl.Remove(ctx, id)
}

// Stats derives the headline numbers from the authoritative working copy,
// not the filtered view.
func (s *service) Stats() Stats {
	items := s.ctrl.Items()
	avgPrice := collection.Average(items, func(p models.Product) decimal.Decimal {
		return p.Price
	})
	return Stats{
		Total:    len(items),
		InStock:  collection.Count(items, func(p models.Product) bool { return p.InStock }),
		Featured: collection.Count(items, func(p models.Product) bool { return p.IsFeatured }),
		PerCategory: collection.CountBy(items, func(p models.Product) string {
			return p.Category
		}),
		AveragePrice:        avgPrice,
		AveragePriceDisplay: format.Price(avgPrice),
	}
}
