package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/LogoBenz/authenticfurniture-backend/api/responses"
	"github.com/LogoBenz/authenticfurniture-backend/api/validators"
	"github.com/LogoBenz/authenticfurniture-backend/internal/taxonomy"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/db/models"
	pkgerrors "github.com/LogoBenz/authenticfurniture-backend/pkg/errors"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/logger"
)

func SpaceList(svc taxonomy.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := validators.SanitizeString(r.URL.Query().Get("q"), 200)
		filters := validators.FilterParams(r, taxonomy.FilterActive)
		responses.WriteSuccess(w, svc.View(query, filters))
	}
}

func SpaceStats(svc taxonomy.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.Stats())
	}
}

func SpaceDetail(svc taxonomy.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "spaceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		space, err := svc.Get(id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, space)
	}
}

func SpaceCreate(svc taxonomy.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload spaceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.Create(r.Context(), payload.toModel(uuid.Nil))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func SpaceUpdate(svc taxonomy.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "spaceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload spaceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.Update(r.Context(), payload.toModel(id))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// SpaceDelete removes a space and all of its subcategories.
func SpaceDelete(svc taxonomy.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "spaceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := requireConfirmation(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"deleted": id.String()})
	}
}

func SpaceRefresh(svc taxonomy.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Load(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "reloaded"})
	}
}

// SubcategoryMove reparents a subcategory onto another space. The move is a
// single remote transaction followed by a full reload, so clients never see a
// tree where the node hangs under both parents.
func SubcategoryMove(svc taxonomy.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subcategoryID, err := pathID(r, "subcategoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload moveSubcategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		targetID, err := uuid.Parse(strings.TrimSpace(payload.TargetSpaceID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target space id"))
			return
		}
		if err := svc.MoveSubcategory(r.Context(), subcategoryID, targetID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{
			"subcategory_id":  subcategoryID.String(),
			"target_space_id": targetID.String(),
		})
	}
}

type spaceRequest struct {
	Name          string               `json:"name" validate:"required"`
	Slug          string               `json:"slug" validate:"required"`
	Description   *string              `json:"description,omitempty"`
	SortOrder     int                  `json:"sort_order" validate:"omitempty,min=0"`
	IsActive      *bool                `json:"is_active,omitempty"`
	Subcategories []subcategoryRequest `json:"subcategories,omitempty"`
}

type subcategoryRequest struct {
	Name      string `json:"name" validate:"required"`
	Slug      string `json:"slug" validate:"required"`
	SortOrder int    `json:"sort_order" validate:"omitempty,min=0"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

type moveSubcategoryRequest struct {
	TargetSpaceID string `json:"target_space_id" validate:"required"`
}

func (s spaceRequest) toModel(id uuid.UUID) models.Space {
	isActive := true
	if s.IsActive != nil {
		isActive = *s.IsActive
	}

	subcategories := make([]models.Subcategory, 0, len(s.Subcategories))
	for _, sub := range s.Subcategories {
		subActive := true
		if sub.IsActive != nil {
			subActive = *sub.IsActive
		}
		subcategories = append(subcategories, models.Subcategory{
			SpaceID:   id,
			Name:      strings.TrimSpace(sub.Name),
			Slug:      strings.TrimSpace(sub.Slug),
			SortOrder: sub.SortOrder,
			IsActive:  subActive,
		})
	}

	return models.Space{
		ID:            id,
		Name:          strings.TrimSpace(s.Name),
		Slug:          strings.TrimSpace(s.Slug),
		Description:   s.Description,
		SortOrder:     s.SortOrder,
		IsActive:      isActive,
		Subcategories: subcategories,
	}
}
