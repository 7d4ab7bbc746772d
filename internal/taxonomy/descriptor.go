package taxonomy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LogoBenz/authenticfurniture-backend/pkg/db/models"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// FilterActive filters spaces by their active flag.
const FilterActive = "is_active"

// Descriptor adapts taxonomy spaces to the collection layer.
type Descriptor struct{}

func (Descriptor) ID(s models.Space) uuid.UUID {
	return s.ID
}

func (Descriptor) SearchValues(s models.Space) []string {
	values := []string{s.Name, s.Slug, s.ID.String()}
	for _, sub := range s.Subcategories {
		values = append(values, sub.Name, sub.Slug)
	}
	return values
}

func (Descriptor) FilterValue(s models.Space, field string) string {
	if field == FilterActive {
		if s.IsActive {
			return "true"
		}
		return "false"
	}
	return ""
}

// Validate aggregates every field failure, nested subcategories included.
func (Descriptor) Validate(s models.Space) error {
	var err error
	if strings.TrimSpace(s.Name) == "" {
		err = multierr.Append(err, errors.New("name: required"))
	}
	if strings.TrimSpace(s.Slug) == "" {
		err = multierr.Append(err, errors.New("slug: required"))
	}
	if s.SortOrder < 0 {
		err = multierr.Append(err, errors.New("sort_order: must not be negative"))
	}
	seen := make(map[string]bool, len(s.Subcategories))
	for i, sub := range s.Subcategories {
		if strings.TrimSpace(sub.Name) == "" {
			err = multierr.Append(err, fmt.Errorf("subcategories[%d].name: required", i))
		}
		if strings.TrimSpace(sub.Slug) == "" {
			err = multierr.Append(err, fmt.Errorf("subcategories[%d].slug: required", i))
		} else if seen[sub.Slug] {
			err = multierr.Append(err, fmt.Errorf("subcategories[%d].slug: duplicate %q", i, sub.Slug))
		}
		seen[sub.Slug] = true
		if sub.SortOrder < 0 {
			err = multierr.Append(err, fmt.Errorf("subcategories[%d].sort_order: must not be negative", i))
		}
	}
	return err
}
