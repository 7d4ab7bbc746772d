package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/LogoBenz/authenticfurniture-backend/api/responses"
	"github.com/LogoBenz/authenticfurniture-backend/api/validators"
	"github.com/LogoBenz/authenticfurniture-backend/internal/catalog"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/db/models"
	pkgerrors "github.com/LogoBenz/authenticfurniture-backend/pkg/errors"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/logger"
)

// maxListLimit caps the limit query parameter on list endpoints.
const maxListLimit = 500

// ProductList serves the filtered working copy of the catalog. The q
// parameter narrows by substring match; category, in_stock and featured
// narrow by exact value; limit caps the page returned to the admin UI,
// defaulting to the configured page size.
func ProductList(svc catalog.Service, defaultPageSize int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", defaultPageSize, 1, maxListLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		query := validators.SanitizeString(r.URL.Query().Get("q"), 200)
		filters := validators.FilterParams(r, catalog.FilterCategory, catalog.FilterInStock, catalog.FilterFeatured)
		view := svc.View(query, filters)
		if limit > 0 && len(view) > limit {
			view = view[:limit]
		}
		responses.WriteSuccess(w, view)
	}
}

func ProductStats(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.Stats())
	}
}

func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Get(id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func ProductCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload productRequest
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

func ProductUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload productRequest
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

// ProductDelete removes a product. Deletion is destructive, so the caller
// must acknowledge it with confirm=true.
func ProductDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "productId")
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

// ProductRefresh reloads the working copy from the data source.
func ProductRefresh(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Load(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "reloaded"})
	}
}

type productRequest struct {
	Name            string            `json:"name" validate:"required"`
	Slug            string            `json:"slug" validate:"required"`
	Category        string            `json:"category" validate:"required"`
	Description     *string           `json:"description,omitempty"`
	Price           decimal.Decimal   `json:"price"`
	Images          []string          `json:"images"`
	InStock         *bool             `json:"in_stock,omitempty"`
	IsFeatured      *bool             `json:"is_featured,omitempty"`
	DiscountPercent *float64          `json:"discount_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	Badges          []string          `json:"badges,omitempty"`
	BulkTiers       []bulkTierRequest `json:"bulk_tiers,omitempty"`
}

type bulkTierRequest struct {
	MinQty    int             `json:"min_qty" validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func (p productRequest) toModel(id uuid.UUID) models.Product {
	inStock := true
	if p.InStock != nil {
		inStock = *p.InStock
	}
	isFeatured := false
	if p.IsFeatured != nil {
		isFeatured = *p.IsFeatured
	}

	tiers := make([]models.ProductBulkTier, 0, len(p.BulkTiers))
	for _, tier := range p.BulkTiers {
		tiers = append(tiers, models.ProductBulkTier{
			ProductID: id,
			MinQty:    tier.MinQty,
			UnitPrice: tier.UnitPrice,
		})
	}

	return models.Product{
		ID:              id,
		Name:            strings.TrimSpace(p.Name),
		Slug:            strings.TrimSpace(p.Slug),
		Category:        strings.TrimSpace(p.Category),
		Description:     p.Description,
		Price:           p.Price,
		Images:          pq.StringArray(p.Images),
		InStock:         inStock,
		IsFeatured:      isFeatured,
		DiscountPercent: p.DiscountPercent,
		Badges:          pq.StringArray(p.Badges),
		BulkTiers:       tiers,
	}
}

func pathID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id").WithDetails(map[string]any{"field": param})
	}
	return id, nil
}

func requireConfirmation(r *http.Request) error {
	confirm, err := validators.ParseQueryBool(r, "confirm", false)
	if err != nil {
		return err
	}
	if !confirm {
		return pkgerrors.New(pkgerrors.CodeValidation, "deletion requires confirm=true")
	}
	return nil
}
