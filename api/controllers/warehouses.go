package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/LogoBenz/authenticfurniture-backend/api/responses"
	"github.com/LogoBenz/authenticfurniture-backend/api/validators"
	"github.com/LogoBenz/authenticfurniture-backend/internal/warehouses"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/db/models"
	pkgerrors "github.com/LogoBenz/authenticfurniture-backend/pkg/errors"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/logger"
)

func WarehouseList(svc warehouses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := validators.SanitizeString(r.URL.Query().Get("q"), 200)
		filters := validators.FilterParams(r, warehouses.FilterActive, warehouses.FilterState)
		responses.WriteSuccess(w, svc.View(query, filters))
	}
}

func WarehouseStats(svc warehouses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.Stats())
	}
}

func WarehouseDetail(svc warehouses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "warehouseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		warehouse, err := svc.Get(id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, warehouse)
	}
}

func WarehouseCreate(svc warehouses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload warehouseRequest
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

func WarehouseUpdate(svc warehouses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "warehouseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload warehouseRequest
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

func WarehouseDelete(svc warehouses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "warehouseId")
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

func WarehouseRefresh(svc warehouses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Load(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "reloaded"})
	}
}

// WarehouseSetStock upserts the stock row for one product at one warehouse.
// Rows where reserved exceeds stock on hand are rejected outright.
func WarehouseSetStock(svc warehouses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		warehouseID, err := pathID(r, "warehouseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload stockRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := uuid.Parse(strings.TrimSpace(payload.ProductID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		stock, err := svc.SetStock(r.Context(), models.WarehouseStock{
			WarehouseID:      warehouseID,
			ProductID:        productID,
			StockQuantity:    payload.StockQuantity,
			ReservedQuantity: payload.ReservedQuantity,
			ReorderLevel:     payload.ReorderLevel,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stock)
	}
}

type warehouseRequest struct {
	Name        string `json:"name" validate:"required"`
	Address     string `json:"address" validate:"required"`
	City        string `json:"city" validate:"required"`
	State       string `json:"state" validate:"required"`
	Phone       string `json:"phone,omitempty"`
	ContactName string `json:"contact_name,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

type stockRequest struct {
	ProductID        string `json:"product_id" validate:"required"`
	StockQuantity    int    `json:"stock_quantity" validate:"omitempty,min=0"`
	ReservedQuantity int    `json:"reserved_quantity" validate:"omitempty,min=0"`
	ReorderLevel     int    `json:"reorder_level" validate:"omitempty,min=0"`
}

func (wr warehouseRequest) toModel(id uuid.UUID) models.Warehouse {
	isActive := true
	if wr.IsActive != nil {
		isActive = *wr.IsActive
	}
	return models.Warehouse{
		ID:          id,
		Name:        strings.TrimSpace(wr.Name),
		Address:     strings.TrimSpace(wr.Address),
		City:        strings.TrimSpace(wr.City),
		State:       strings.TrimSpace(wr.State),
		Phone:       strings.TrimSpace(wr.Phone),
		ContactName: strings.TrimSpace(wr.ContactName),
		IsActive:    isActive,
	}
}
