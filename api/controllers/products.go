package controllers

import (
	"net/http"

	"github.com/gestao-escolar/escolar-backend/api/responses"
	"github.com/gestao-escolar/escolar-backend/api/validators"
	"github.com/gestao-escolar/escolar-backend/internal/products"
	pkgerrors "github.com/gestao-escolar/escolar-backend/pkg/errors"
	"github.com/gestao-escolar/escolar-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type productCreateRequest struct {
	Nome       string          `json:"nome" validate:"required,min=1"`
	Descricao  *string         `json:"descricao,omitempty"`
	PrecoCusto decimal.Decimal `json:"preco_custo"`
	PrecoVenda decimal.Decimal `json:"preco_venda"`
}

// ProductsList returns the full catalog ordered by name.
func ProductsList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "database unavailable"))
			return
		}

		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// ProductsCreate registers a product with cost and sale prices.
func ProductsCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "database unavailable"))
			return
		}

		var payload productCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), products.CreateProductInput{
			Nome:       payload.Nome,
			Descricao:  payload.Descricao,
			PrecoCusto: payload.PrecoCusto,
			PrecoVenda: payload.PrecoVenda,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}
