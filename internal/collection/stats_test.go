package collection

import (
	"testing"

	"github.com/shopspring/decimal"
)

type priced struct {
	Category string
	Price    decimal.Decimal
}

func TestCountBy(t *testing.T) {
	items := []priced{
		{Category: "sofas"},
		{Category: "tables"},
		{Category: "sofas"},
	}
	counts := CountBy(items, func(p priced) string { return p.Category })
	if counts["sofas"] != 2 || counts["tables"] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func TestSumAndAverage(t *testing.T) {
	items := []priced{
		{Price: decimal.NewFromInt(100)},
		{Price: decimal.NewFromInt(250)},
		{Price: decimal.NewFromInt(400)},
	}
	price := func(p priced) decimal.Decimal { return p.Price }

	if got := Sum(items, price); !got.Equal(decimal.NewFromInt(750)) {
		t.Fatalf("unexpected sum %s", got)
	}
	if got := Average(items, price); !got.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("unexpected average %s", got)
	}
}

func TestAverageOfEmptyCollectionIsZero(t *testing.T) {
	price := func(p priced) decimal.Decimal { return p.Price }
	got := Average(nil, price)
	if !got.Equal(decimal.Zero) {
		t.Fatalf("empty average must be zero, got %s", got)
	}
}

func TestCountPredicate(t *testing.T) {
	items := []priced{
		{Price: decimal.NewFromInt(10)},
		{Price: decimal.NewFromInt(0)},
		{Price: decimal.NewFromInt(75)},
	}
	got := Count(items, func(p priced) bool { return p.Price.IsPositive() })
	if got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}
