package customers

import (
	"context"
	"strings"
	"testing"

	"github.com/LogoBenz/authenticfurniture-backend/pkg/db/models"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/enums"
	pkgerrors "github.com/LogoBenz/authenticfurniture-backend/pkg/errors"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fakeSource struct {
	records []models.Customer
}

func (f *fakeSource) List(context.Context) ([]models.Customer, error) {
	out := make([]models.Customer, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeSource) Create(_ context.Context, c *models.Customer) (*models.Customer, error) {
	stored := *c
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	return &stored, nil
}

func (f *fakeSource) Update(_ context.Context, c *models.Customer) (*models.Customer, error) {
	stored := *c
	return &stored, nil
}

func (f *fakeSource) Delete(context.Context, uuid.UUID) error {
	return nil
}

func sampleCustomers() []models.Customer {
	return []models.Customer{
		{
			ID:           uuid.New(),
			Name:         "Adaeze Okafor",
			Email:        "adaeze@example.com",
			Phone:        "+2348012345601",
			CustomerType: enums.CustomerTypeRetail,
			Status:       enums.CustomerStatusActive,
			TotalOrders:  3,
			TotalSpent:   decimal.NewFromInt(612000),
		},
		{
			ID:           uuid.New(),
			Name:         "Tunde Balogun",
			Email:        "tunde@balogunhotels.ng",
			Phone:        "+2348012345602",
			CustomerType: enums.CustomerTypeCorporate,
			Status:       enums.CustomerStatusVIP,
			TotalOrders:  12,
			TotalSpent:   decimal.NewFromInt(8450000),
		},
		{
			ID:           uuid.New(),
			Name:         "Hauwa Abdullahi",
			Email:        "hauwa@example.com",
			Phone:        "+2348012345603",
			CustomerType: enums.CustomerTypeRetail,
			Status:       enums.CustomerStatusInactive,
			TotalOrders:  0,
			TotalSpent:   decimal.Zero,
		},
	}
}

func newTestService(t *testing.T, source *fakeSource) Service {
	t.Helper()
	svc, err := NewService(source, logger.New(logger.Options{ServiceName: "test"}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return svc
}

func TestServiceViewSearchesContactFields(t *testing.T) {
	svc := newTestService(t, &fakeSource{records: sampleCustomers()})

	t.Run("by email domain", func(t *testing.T) {
		view := svc.View("balogunhotels", nil)
		if len(view) != 1 || view[0].Name != "Tunde Balogun" {
			t.Fatalf("unexpected view: %+v", view)
		}
	})

	t.Run("by phone fragment", func(t *testing.T) {
		view := svc.View("45603", nil)
		if len(view) != 1 || view[0].Name != "Hauwa Abdullahi" {
			t.Fatalf("unexpected view: %+v", view)
		}
	})

	t.Run("type and status filters combine", func(t *testing.T) {
		view := svc.View("", map[string]string{
			FilterType:   enums.CustomerTypeRetail.String(),
			FilterStatus: enums.CustomerStatusActive.String(),
		})
		if len(view) != 1 || view[0].Name != "Adaeze Okafor" {
			t.Fatalf("unexpected view: %+v", view)
		}
	})
}

func TestServiceStats(t *testing.T) {
	svc := newTestService(t, &fakeSource{records: sampleCustomers()})

	stats := svc.Stats()
	if stats.Total != 3 {
		t.Fatalf("expected 3 customers, got %d", stats.Total)
	}
	if stats.PerType["retail"] != 2 || stats.PerType["corporate"] != 1 {
		t.Fatalf("unexpected per-type counts: %v", stats.PerType)
	}
	if stats.PerStatus["vip"] != 1 {
		t.Fatalf("unexpected per-status counts: %v", stats.PerStatus)
	}
	if stats.TotalOrders != 15 {
		t.Fatalf("expected 15 orders, got %d", stats.TotalOrders)
	}
	wantRevenue := decimal.NewFromInt(612000 + 8450000)
	if !stats.TotalRevenue.Equal(wantRevenue) {
		t.Fatalf("expected revenue %s, got %s", wantRevenue, stats.TotalRevenue)
	}
	wantAvg := wantRevenue.Div(decimal.NewFromInt(3))
	if !stats.AverageOrderValue.Equal(wantAvg) {
		t.Fatalf("expected avg %s, got %s", wantAvg, stats.AverageOrderValue)
	}
	if stats.TotalRevenueDisplay != "₦9,062,000.00" {
		t.Fatalf("unexpected display revenue: %s", stats.TotalRevenueDisplay)
	}
}

func TestServiceStatsAverageIgnoresOrderCounts(t *testing.T) {
	records := []models.Customer{
		{ID: uuid.New(), Name: "A", Email: "a@example.com", CustomerType: enums.CustomerTypeRetail, Status: enums.CustomerStatusActive, TotalSpent: decimal.NewFromInt(100)},
		{ID: uuid.New(), Name: "B", Email: "b@example.com", CustomerType: enums.CustomerTypeCorporate, Status: enums.CustomerStatusActive, TotalSpent: decimal.NewFromInt(500)},
		{ID: uuid.New(), Name: "C", Email: "c@example.com", CustomerType: enums.CustomerTypeRetail, Status: enums.CustomerStatusActive, TotalSpent: decimal.NewFromInt(200)},
	}
	svc := newTestService(t, &fakeSource{records: records})

	stats := svc.Stats()
	if !stats.TotalRevenue.Equal(decimal.NewFromInt(800)) {
		t.Fatalf("expected revenue 800, got %s", stats.TotalRevenue)
	}
	want := decimal.NewFromInt(800).Div(decimal.NewFromInt(3))
	if !stats.AverageOrderValue.Equal(want) {
		t.Fatalf("expected avg %s, got %s", want, stats.AverageOrderValue)
	}
}

func TestServiceStatsZeroGuard(t *testing.T) {
	svc := newTestService(t, &fakeSource{})

	stats := svc.Stats()
	if !stats.AverageOrderValue.Equal(decimal.Zero) {
		t.Fatalf("average with no orders must be zero, got %s", stats.AverageOrderValue)
	}
	if !stats.TotalRevenue.Equal(decimal.Zero) {
		t.Fatalf("revenue of empty base must be zero, got %s", stats.TotalRevenue)
	}
}

func TestServiceValidation(t *testing.T) {
	svc := newTestService(t, &fakeSource{records: sampleCustomers()})

	_, err := svc.Create(context.Background(), models.Customer{
		Email:        "not-an-email",
		CustomerType: "wholesale",
		Status:       enums.CustomerStatusActive,
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	typed := pkgerrors.As(err)
	details, _ := typed.Details().(string)
	for _, want := range []string{"name: required", "email: invalid address", "customer_type: invalid value"} {
		if !strings.Contains(details, want) {
			t.Errorf("expected %q in details, got %q", want, details)
		}
	}
}

func TestServiceRollupsPassThrough(t *testing.T) {
	svc := newTestService(t, &fakeSource{records: sampleCustomers()})

	created, err := svc.Create(context.Background(), models.Customer{
		Name:              "Funke Adeyemi",
		Email:             "funke@example.com",
		CustomerType:      enums.CustomerTypeBulk,
		Status:            enums.CustomerStatusActive,
		TotalOrders:       9,
		TotalSpent:        decimal.NewFromInt(2790000),
		AverageOrderValue: decimal.NewFromInt(310000),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.TotalOrders != 9 || !created.AverageOrderValue.Equal(decimal.NewFromInt(310000)) {
		t.Fatal("rollup fields must be stored as received")
	}
}
