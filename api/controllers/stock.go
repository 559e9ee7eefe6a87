package controllers

import (
	"net/http"

	"github.com/gestao-escolar/escolar-backend/api/responses"
	"github.com/gestao-escolar/escolar-backend/api/validators"
	"github.com/gestao-escolar/escolar-backend/internal/stock"
	pkgerrors "github.com/gestao-escolar/escolar-backend/pkg/errors"
	"github.com/gestao-escolar/escolar-backend/pkg/logger"
)

type stockSetRequest struct {
	EscolaID   int    `json:"escola_id" validate:"required,gt=0"`
	ProdutoID  int    `json:"produto_id" validate:"required,gt=0"`
	Tamanho    string `json:"tamanho" validate:"required"`
	Quantidade int    `json:"quantidade" validate:"gte=0"`
}

// StockList returns stock entries joined with product and school data,
// optionally filtered by ?escola_id.
func StockList(svc stock.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "database unavailable"))
			return
		}

		escolaID, err := validators.ParseOptionalQueryInt(r, "escola_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.List(r.Context(), escolaID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// StockSet replaces the quantity for one school/product/size counter.
func StockSet(svc stock.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "database unavailable"))
			return
		}

		var payload stockSetRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.SetStock(r.Context(), stock.SetStockInput{
			EscolaID:   payload.EscolaID,
			ProdutoID:  payload.ProdutoID,
			Tamanho:    payload.Tamanho,
			Quantidade: payload.Quantidade,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entry)
	}
}
