package collection

import "github.com/shopspring/decimal"

// CountBy tallies items by the value the key function extracts.
func CountBy[T any](items []T, key func(T) string) map[string]int {
	counts := make(map[string]int)
	for _, item := range items {
		counts[key(item)]++
	}
	return counts
}

// Count returns how many items satisfy the predicate.
func Count[T any](items []T, pred func(T) bool) int {
	total := 0
	for _, item := range items {
		if pred(item) {
			total++
		}
	}
	return total
}

// Sum adds the extracted values across all items.
func Sum[T any](items []T, value func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(value(item))
	}
	return total
}

// Average returns the mean of the extracted values. An empty collection
// averages to zero.
func Average[T any](items []T, value func(T) decimal.Decimal) decimal.Decimal {
	if len(items) == 0 {
		return decimal.Zero
	}
	return Sum(items, value).Div(decimal.NewFromInt(int64(len(items))))
}
