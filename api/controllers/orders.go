package controllers

import (
	"net/http"

	"github.com/gestao-escolar/escolar-backend/api/responses"
	"github.com/gestao-escolar/escolar-backend/api/validators"
	"github.com/gestao-escolar/escolar-backend/internal/orders"
	pkgerrors "github.com/gestao-escolar/escolar-backend/pkg/errors"
	"github.com/gestao-escolar/escolar-backend/pkg/logger"
	"github.com/gestao-escolar/escolar-backend/pkg/pagination"
	"github.com/shopspring/decimal"
)

type orderItemRequest struct {
	ProdutoID     int             `json:"produto_id" validate:"required,gt=0"`
	Tamanho       string          `json:"tamanho" validate:"required"`
	Quantidade    int             `json:"quantidade" validate:"required,gt=0"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
}

type orderCreateRequest struct {
	ClienteID int                `json:"cliente_id" validate:"required,gt=0"`
	EscolaID  int                `json:"escola_id" validate:"required,gt=0"`
	Items     []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	Desconto  decimal.Decimal    `json:"desconto"`
}

func (r orderCreateRequest) toInput() orders.PlaceOrderInput {
	items := make([]orders.OrderLineInput, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, orders.OrderLineInput{
			ProdutoID:     item.ProdutoID,
			Tamanho:       item.Tamanho,
			Quantidade:    item.Quantidade,
			PrecoUnitario: item.PrecoUnitario,
		})
	}
	return orders.PlaceOrderInput{
		ClienteID: r.ClienteID,
		EscolaID:  r.EscolaID,
		Items:     items,
		Desconto:  r.Desconto,
	}
}

// OrdersCreate places an order and deducts stock in the same transaction.
func OrdersCreate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "database unavailable"))
			return
		}

		var payload orderCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PlaceOrder(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// OrdersList returns orders newest first with cursor pagination.
func OrdersList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "database unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// OrdersGet returns one order with its line items.
func OrdersGet(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "database unavailable"))
			return
		}

		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// OrdersDelete removes an order and its items. Stock is not restored.
func OrdersDelete(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "database unavailable"))
			return
		}

		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int{"deleted": id})
	}
}
