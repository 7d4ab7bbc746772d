package taxonomy

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

// Mover performs the transactional reassignment of a subcategory. The
// taxonomy repository implements it; fallback mode has none.
type Mover interface {
	MoveSubcategory(ctx context.Context, subcategoryID, targetSpaceID uuid.UUID) error
}

// snapshotInvalidator is implemented by the datasource adapter. Moves write
// through the repository, not the adapter, so the cached list snapshot has
// to be dropped by hand before the reload.
type snapshotInvalidator interface {
	InvalidateSnapshot(ctx context.Context)
}

// Stats summarizes the taxonomy tree.
type Stats struct {
	Spaces        int `json:"spaces"`
	ActiveSpaces  int `json:"active_spaces"`
	Subcategories int `json:"subcategories"`
}

// Service exposes taxonomy management over the collection controller.
type Service interface {
	Load(ctx context.Context) error
	View(query string, filters map[string]string) []models.Space
	Get(id uuid.UUID) (models.Space, error)
	Create(ctx context.Context, space models.Space) (models.Space, error)
	Update(ctx context.Context, space models.Space) (models.Space, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MoveSubcategory(ctx context.Context, subcategoryID, targetSpaceID uuid.UUID) error
	Stats() Stats
}

type service struct {
	ctrl       *collection.Controller[models.Space]
	mover      Mover
	invalidate snapshotInvalidator
}

// NewService wires the taxonomy controller. Mover may be nil when no remote
// data source is configured; moves then fail like any other write.
func NewService(source collection.Source[models.Space], mover Mover, logg *logger.Logger) (Service, error) {
	ctrl, err := collection.NewController[models.Space](source, Descriptor{}, logg)
	if err != nil {
		return nil, fmt.Errorf("building taxonomy controller: %w", err)
	}
	svc := &service{ctrl: ctrl, mover: mover}
	if invalidate, ok := source.(snapshotInvalidator); ok {
		svc.invalidate = invalidate
	}
	return svc, nil
}

func (s *service) Load(ctx context.Context) error {
	return s.ctrl.Load(ctx)
}

func (s *service) View(query string, filters map[string]string) []models.Space {
	return s.ctrl.ViewWith(query, filters)
}

func (s *service) Get(id uuid.UUID) (models.Space, error) {
	return s.ctrl.Get(id)
}

func (s *service) Create(ctx context.Context, space models.Space) (models.Space, error) {
	return s.ctrl.Create(ctx, space)
}

func (s *service) Update(ctx context.Context, space models.Space) (models.Space, error) {
	return s.ctrl.Update(ctx, space)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.ctrl.Remove(ctx, id)
}

// MoveSubcategory reassigns a subcategory and then replaces the working copy
// in a single load, so readers switch between the old and new tree in one
// step.
func (s *service) MoveSubcategory(ctx context.Context, subcategoryID, targetSpaceID uuid.UUID) error {
	if s.mover == nil {
		return pkgerrors.New(pkgerrors.CodeNotConfigured, "no remote data source configured for taxonomy")
	}
	if err := s.mover.MoveSubcategory(ctx, subcategoryID, targetSpaceID); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "subcategory or target space not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "moving subcategory")
	}
	if s.invalidate != nil {
		s.invalidate.InvalidateSnapshot(ctx)
	}
	return s.ctrl.Load(ctx)
}

func (s *service) Stats() Stats {
	items := s.ctrl.Items()
	stats := Stats{Spaces: len(items)}
	for _, space := range items {
		if space.IsActive {
			stats.ActiveSpaces++
		}
		stats.Subcategories += len(space.Subcategories)
	}
	return stats
}
