package controllers

import (
	"net/http"

	"github.com/gestao-escolar/escolar-backend/api/responses"
	"github.com/gestao-escolar/escolar-backend/api/validators"
	"github.com/gestao-escolar/escolar-backend/internal/customers"
	pkgerrors "github.com/gestao-escolar/escolar-backend/pkg/errors"
	"github.com/gestao-escolar/escolar-backend/pkg/logger"
)

type customerCreateRequest struct {
	Nome     string  `json:"nome" validate:"required,min=1"`
	Telefone *string `json:"telefone,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	CPF      *string `json:"cpf,omitempty"`
	Endereco *string `json:"endereco,omitempty"`
	EscolaID *int    `json:"escola_id,omitempty" validate:"omitempty,gt=0"`
}

// CustomersList returns every customer with the linked school name.
func CustomersList(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
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

// CustomersCreate registers a customer, optionally linked to a school.
func CustomersCreate(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "database unavailable"))
			return
		}

		var payload customerCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Create(r.Context(), customers.CreateCustomerInput{
			Nome:     payload.Nome,
			Telefone: payload.Telefone,
			Email:    payload.Email,
			CPF:      payload.CPF,
			Endereco: payload.Endereco,
			EscolaID: payload.EscolaID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, customer)
	}
}

// CustomersDelete removes a customer unless orders reference them.
func CustomersDelete(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
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
