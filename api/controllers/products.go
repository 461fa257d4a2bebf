package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/podolskiy06021990-bit/orderdesk-backend/api/responses"
	"github.com/podolskiy06021990-bit/orderdesk-backend/api/validators"
	productsvc "github.com/podolskiy06021990-bit/orderdesk-backend/internal/products"
	pkgerrors "github.com/podolskiy06021990-bit/orderdesk-backend/pkg/errors"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/logger"
)

type createProductRequest struct {
	Name           string `json:"name" validate:"required"`
	Description    string `json:"description,omitempty"`
	SKU            string `json:"sku" validate:"required"`
	Category       string `json:"category" validate:"required"`
	Price          string `json:"price" validate:"required"`
	QuantityOnHand int    `json:"quantity_on_hand" validate:"gte=0"`
}

func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		price, err := decimal.NewFromString(payload.Price)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price"))
			return
		}

		product, err := svc.Create(r.Context(), productsvc.CreateProductInput{
			Name:           payload.Name,
			Description:    payload.Description,
			SKU:            payload.SKU,
			Category:       payload.Category,
			Price:          price,
			QuantityOnHand: payload.QuantityOnHand,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}
		product, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category := strings.TrimSpace(r.URL.Query().Get("category"))
		if category != "" {
			prods, err := svc.ListByCategory(r.Context(), category, params)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, prods)
			return
		}

		prods, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, prods)
	}
}

func ListLowStockProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		threshold, err := validators.ParseQueryInt(r, "threshold", 0, 0, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		prods, err := svc.ListLowStock(r.Context(), threshold, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, prods)
	}
}
