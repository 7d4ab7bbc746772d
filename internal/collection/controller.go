package collection

import (
	"context"
	"fmt"
	"strings"
	"sync"

	pkgerrors "github.com/LogoBenz/authenticfurniture-backend/pkg/errors"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/logger"
	"github.com/google/uuid"
)

// Source is the data access surface a controller drives. The datasource
// adapter satisfies it.
type Source[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, record *T) (*T, error)
	Update(ctx context.Context, record *T) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Controller owns an in-memory working copy of one entity collection and
// derives filtered views from it. Instances are safe for concurrent use; a
// single mutex serializes state access.
type Controller[T any] struct {
	mu     sync.Mutex
	source Source[T]
	desc   Descriptor[T]
	logg   *logger.Logger

	items      []T
	query      string
	filters    map[string]string
	loading    bool
	generation uint64
	inflight   map[uuid.UUID]struct{}
}

// NewController builds a controller over the given source and descriptor.
func NewController[T any](source Source[T], desc Descriptor[T], logg *logger.Logger) (*Controller[T], error) {
	if source == nil {
		return nil, fmt.Errorf("source required")
	}
	if desc == nil {
		return nil, fmt.Errorf("descriptor required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Controller[T]{
		source:   source,
		desc:     desc,
		logg:     logg,
		filters:  make(map[string]string),
		inflight: make(map[uuid.UUID]struct{}),
	}, nil
}

// Load replaces the working copy with a fresh dataset. On failure the items
// are cleared rather than left stale. A load superseded by a newer one is
// discarded when it returns.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	records, err := c.source.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return nil
	}
	c.loading = false
	if err != nil {
		c.items = nil
		c.logg.Error(ctx, "collection load failed, working copy cleared", err)
		return err
	}
	c.items = records
	c.logg.Info(c.logg.WithField(ctx, "count", len(records)), "collection loaded")
	return nil
}

// Loading reports whether a load is in progress.
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// SetQuery updates the free-text query applied by View.
func (c *Controller[T]) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = query
}

// SetFilter sets one filter field. The value "all" disables the field.
func (c *Controller[T]) SetFilter(field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if value == "" || value == FilterAll {
		delete(c.filters, field)
		return
	}
	c.filters[field] = value
}

// ClearFilters resets the query and every filter field.
func (c *Controller[T]) ClearFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = ""
	c.filters = make(map[string]string)
}

// Items returns a copy of the authoritative working copy, unfiltered.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// View derives the filtered collection: items matching the query on any
// searchable field and every active filter exactly, in input order. The
// result is always a copy.
func (c *Controller[T]) View() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked(c.query, c.filters)
}

// ViewWith derives a view for the given criteria without touching the
// controller's stored query and filters.
func (c *Controller[T]) ViewWith(query string, filters map[string]string) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	active := make(map[string]string, len(filters))
	for field, value := range filters {
		if value == "" || value == FilterAll {
			continue
		}
		active[field] = value
	}
	return c.viewLocked(query, active)
}

// viewLocked must be called with c.mu held.
func (c *Controller[T]) viewLocked(query string, filters map[string]string) []T {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if query != "" && !c.matchesQuery(item, query) {
			continue
		}
		if !c.matchesFilters(item, filters) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Get returns the item with the given id from the working copy.
func (c *Controller[T]) Get(id uuid.UUID) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx := c.indexOf(id); idx >= 0 {
		return c.items[idx], nil
	}
	var zero T
	return zero, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("item %s not found", id))
}

// Create validates the item, persists it, and prepends the stored result to
// the working copy. On failure the working copy is untouched.
func (c *Controller[T]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	if err := c.validate(item); err != nil {
		return zero, err
	}

	id := c.desc.ID(item)
	if id != uuid.Nil {
		if err := c.beginMutation(id); err != nil {
			return zero, err
		}
		defer c.endMutation(id)
	}

	created, err := c.source.Create(ctx, &item)
	if err != nil {
		return zero, err
	}

	c.mu.Lock()
	c.items = append([]T{*created}, c.items...)
	c.mu.Unlock()
	return *created, nil
}

// Update validates the item, persists it, and replaces the matching entry in
// the working copy in place. The id must already be present.
func (c *Controller[T]) Update(ctx context.Context, item T) (T, error) {
	var zero T
	if err := c.validate(item); err != nil {
		return zero, err
	}

	id := c.desc.ID(item)
	if id == uuid.Nil {
		return zero, pkgerrors.New(pkgerrors.CodeValidation, "id is required for update")
	}

	c.mu.Lock()
	exists := c.indexOf(id) >= 0
	c.mu.Unlock()
	if !exists {
		return zero, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("item %s not found", id))
	}

	if err := c.beginMutation(id); err != nil {
		return zero, err
	}
	defer c.endMutation(id)

	updated, err := c.source.Update(ctx, &item)
	if err != nil {
		return zero, err
	}

	c.mu.Lock()
	if idx := c.indexOf(id); idx >= 0 {
		c.items[idx] = *updated
	}
	c.mu.Unlock()
	return *updated, nil
}

// Remove deletes the item and filters it out of the working copy. Callers
// are expected to have collected an explicit confirmation first.
func (c *Controller[T]) Remove(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	exists := c.indexOf(id) >= 0
	c.mu.Unlock()
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("item %s not found", id))
	}

	if err := c.beginMutation(id); err != nil {
		return err
	}
	defer c.endMutation(id)

	if err := c.source.Delete(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	if idx := c.indexOf(id); idx >= 0 {
		c.items = append(c.items[:idx], c.items[idx+1:]...)
	}
	c.mu.Unlock()
	return nil
}

func (c *Controller[T]) validate(item T) error {
	if err := c.desc.Validate(item); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed").WithDetails(err.Error())
	}
	return nil
}

func (c *Controller[T]) beginMutation(id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inflight[id]; busy {
		return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("a mutation is already in flight for %s", id))
	}
	c.inflight[id] = struct{}{}
	return nil
}

func (c *Controller[T]) endMutation(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, id)
}

// indexOf must be called with c.mu held.
func (c *Controller[T]) indexOf(id uuid.UUID) int {
	for i := range c.items {
		if c.desc.ID(c.items[i]) == id {
			return i
		}
	}
	return -1
}

func (c *Controller[T]) matchesQuery(item T, query string) bool {
	for _, value := range c.desc.SearchValues(item) {
		if strings.Contains(strings.ToLower(value), query) {
			return true
		}
	}
	return false
}

func (c *Controller[T]) matchesFilters(item T, filters map[string]string) bool {
	for field, want := range filters {
		if c.desc.FilterValue(item, field) != want {
			return false
		}
	}
	return true
}
