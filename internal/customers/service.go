package customers

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

// Stats summarizes the loaded customer base. AverageOrderValue is total
// revenue spread over the customer count, zero for an empty base.
type Stats struct {
	Total               int             `json:"total"`
	PerType             map[string]int  `json:"per_type"`
	PerStatus           map[string]int  `json:"per_status"`
	TotalOrders         int             `json:"total_orders"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	TotalRevenueDisplay string          `json:"total_revenue_display"`
	AverageOrderValue   decimal.Decimal `json:"average_order_value"`
}

// Service exposes customer management over the collection controller.
type Service interface {
	Load(ctx context.Context) error
	View(query string, filters map[string]string) []models.Customer
	Get(id uuid.UUID) (models.Customer, error)
	Create(ctx context.Context, customer models.Customer) (models.Customer, error)
	Update(ctx context.Context, customer models.Customer) (models.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats() Stats
}

type service struct {
	ctrl *collection.Controller[models.Customer]
}

// NewService wires the customer controller over the given source.
func NewService(source collection.Source[models.Customer], logg *logger.Logger) (Service, error) {
	ctrl, err := collection.NewController[models.Customer](source, Descriptor{}, logg)
	if err != nil {
		return nil, fmt.Errorf("building customer controller: %w", err)
	}
	return &service{ctrl: ctrl}, nil
}

func (s *service) Load(ctx context.Context) error {
	return s.ctrl.Load(ctx)
}

func (s *service) View(query string, filters map[string]string) []models.Customer {
	return s.ctrl.ViewWith(query, filters)
}

func (s *service) Get(id uuid.UUID) (models.Customer, error) {
	return s.ctrl.Get(id)
}

func (s *service) Create(ctx context.Context, customer models.Customer) (models.Customer, error) {
	return s.ctrl.Create(ctx, customer)
}

func (s *service) Update(ctx context.Context, customer models.Customer) (models.Customer, error) {
	return s.ctrl.Update(ctx, customer)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.ctrl.Remove(ctx, id)
}

func (s *service) Stats() Stats {
	items := s.ctrl.Items()

	totalOrders := 0
	for _, c := range items {
		totalOrders += c.TotalOrders
	}
	revenue := collection.Sum(items, func(c models.Customer) decimal.Decimal {
		return c.TotalSpent
	})
	avg := decimal.Zero
	if len(items) > 0 {
		avg = revenue.Div(decimal.NewFromInt(int64(len(items))))
	}

	return Stats{
		Total: len(items),
		PerType: collection.CountBy(items, func(c models.Customer) string {
			return c.CustomerType.String()
		}),
		PerStatus: collection.CountBy(items, func(c models.Customer) string {
			return c.Status.String()
		}),
		TotalOrders:         totalOrders,
		TotalRevenue:        revenue,
		TotalRevenueDisplay: format.Price(revenue),
		AverageOrderValue:   avg,
	}
}
