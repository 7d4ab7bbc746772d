package collection

import (
	"github.com/google/uuid"
)

// FilterAll is the sentinel filter value that matches every item.
const FilterAll = "all"

// Descriptor teaches a Controller how to read, filter, and validate one
// entity type. Implementations live next to the entity packages.
type Descriptor[T any] interface {
	// ID returns the item's identifier; uuid.Nil means not yet persisted.
	ID(item T) uuid.UUID

	// SearchValues returns the text fields the free-text query matches
	// against. Matching is case-insensitive substring.
	SearchValues(item T) []string

	// FilterValue returns the item's value for a named filter field, or ""
	// when the field does not apply to this entity.
	FilterValue(item T, field string) string

	// Validate checks the item before any adapter call. Field failures are
	// aggregated so the caller sees every problem at once.
	Validate(item T) error
}
