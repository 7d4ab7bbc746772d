package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/LogoBenz/authenticfurniture-backend/pkg/db/models"
	pkgerrors "github.com/LogoBenz/authenticfurniture-backend/pkg/errors"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type fakeSource struct {
	records []models.Product
}

func (f *fakeSource) List(context.Context) ([]models.Product, error) {
	out := make([]models.Product, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeSource) Create(_ context.Context, p *models.Product) (*models.Product, error) {
	stored := *p
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	f.records = append(f.records, stored)
	return &stored, nil
}

func (f *fakeSource) Update(_ context.Context, p *models.Product) (*models.Product, error) {
	stored := *p
	return &stored, nil
}

func (f *fakeSource) Delete(context.Context, uuid.UUID) error {
	return nil
}

func sampleProducts() []models.Product {
	return []models.Product{
		{
			ID:         uuid.New(),
			Name:       "Milan Sofa",
			Slug:       "milan-sofa",
			Category:   "sofas",
			Price:      decimal.NewFromInt(485000),
			Images:     pq.StringArray{"a.jpg"},
			InStock:    true,
			IsFeatured: true,
		},
		{
			ID:       uuid.New(),
			Name:     "Iroko Table",
			Slug:     "iroko-table",
			Category: "tables",
			Price:    decimal.NewFromInt(320000),
			Images:   pq.StringArray{"b.jpg"},
			InStock:  true,
		},
		{
			ID:       uuid.New(),
			Name:     "Abuja Chair",
			Slug:     "abuja-chair",
			Category: "chairs",
			Price:    decimal.NewFromInt(145000),
			Images:   pq.StringArray{"c.jpg"},
			InStock:  false,
		},
	}
}

func newTestService(t *testing.T, source *fakeSource) Service {
	t.Helper()
	svc, err := NewService(source, 8, logger.New(logger.Options{ServiceName: "test"}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return svc
}

func TestServiceViewFilters(t *testing.T) {
	svc := newTestService(t, &fakeSource{records: sampleProducts()})

	t.Run("query matches name", func(t *testing.T) {
		view := svc.View("iroko", nil)
		if len(view) != 1 || view[0].Name != "Iroko Table" {
			t.Fatalf("unexpected view: %+v", view)
		}
	})

	t.Run("in_stock filter", func(t *testing.T) {
		view := svc.View("", map[string]string{FilterInStock: "true"})
		if len(view) != 2 {
			t.Fatalf("expected 2 in-stock products, got %d", len(view))
		}
	})

	t.Run("featured filter with all sentinel on category", func(t *testing.T) {
		view := svc.View("", map[string]string{FilterFeatured: "true", FilterCategory: "all"})
		if len(view) != 1 || view[0].Name != "Milan Sofa" {
			t.Fatalf("unexpected view: %+v", view)
		}
	})
}

func TestServiceStats(t *testing.T) {
	svc := newTestService(t, &fakeSource{records: sampleProducts()})

	stats := svc.Stats()
	if stats.Total != 3 {
		t.Fatalf("expected total 3, got %d", stats.Total)
	}
	if stats.InStock != 2 || stats.Featured != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.PerCategory["sofas"] != 1 || stats.PerCategory["tables"] != 1 || stats.PerCategory["chairs"] != 1 {
		t.Fatalf("unexpected per-category counts: %v", stats.PerCategory)
	}
	want := decimal.NewFromInt(485000 + 320000 + 145000).Div(decimal.NewFromInt(3))
	if !stats.AveragePrice.Equal(want) {
		t.Fatalf("expected average %s, got %s", want, stats.AveragePrice)
	}
	if stats.AveragePriceDisplay != "₦316,666.67" {
		t.Fatalf("unexpected display price: %s", stats.AveragePriceDisplay)
	}
}

func TestServiceStatsEmptyCatalog(t *testing.T) {
	svc := newTestService(t, &fakeSource{})

	stats := svc.Stats()
	if stats.Total != 0 {
		t.Fatalf("expected empty catalog, got %d", stats.Total)
	}
	if !stats.AveragePrice.Equal(decimal.Zero) {
		t.Fatalf("empty average must be zero, got %s", stats.AveragePrice)
	}
}

func TestServiceCreateValidation(t *testing.T) {
	svc := newTestService(t, &fakeSource{records: sampleProducts()})

	discount := 150.0
	bad := models.Product{
		Price:           decimal.NewFromInt(-5),
		DiscountPercent: &discount,
	}
	_, err := svc.Create(context.Background(), bad)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	typed := pkgerrors.As(err)
	details, _ := typed.Details().(string)
	for _, want := range []string{"name: required", "price: must not be negative", "discount_percent"} {
		if !strings.Contains(details, want) {
			t.Errorf("expected %q in aggregated details, got %q", want, details)
		}
	}
}

func TestServiceCreateRequiresImage(t *testing.T) {
	svc := newTestService(t, &fakeSource{records: sampleProducts()})

	_, err := svc.Create(context.Background(), models.Product{
		Name:     "Bare Frame",
		Slug:     "bare-frame",
		Category: "chairs",
		Price:    decimal.NewFromInt(45000),
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	typed := pkgerrors.As(err)
	details, _ := typed.Details().(string)
	if !strings.Contains(details, "images: at least one required") {
		t.Fatalf("expected image requirement in details, got %q", details)
	}
}

func TestServiceCreatePrepends(t *testing.T) {
	svc := newTestService(t, &fakeSource{records: sampleProducts()})

	created, err := svc.Create(context.Background(), models.Product{
		Name:     "Velvet Ottoman",
		Slug:     "velvet-ottoman",
		Category: "chairs",
		Price:    decimal.NewFromInt(60000),
		Images:   pq.StringArray{"o.jpg"},
		InStock:  true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	view := svc.View("", nil)
	if view[0].ID != created.ID {
		t.Fatal("new product must lead the collection")
	}
}
