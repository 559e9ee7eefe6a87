package customers

import (
	"context"
	"fmt"
	"strings"

	schoolsvc "github.com/gestao-escolar/escolar-backend/internal/schools"
	"github.com/gestao-escolar/escolar-backend/pkg/db"
	"github.com/gestao-escolar/escolar-backend/pkg/db/models"
	pkgerrors "github.com/gestao-escolar/escolar-backend/pkg/errors"
)

// Service defines the behavior needed by the customers controller.
type Service interface {
	List(ctx context.Context) ([]CustomerWithSchool, error)
	Create(ctx context.Context, input CreateCustomerInput) (*models.Customer, error)
	Delete(ctx context.Context, id int) error
}

// CreateCustomerInput carries the registration form fields. Only the name
// is required; CPF and school are optional at registration time.
type CreateCustomerInput struct {
	Nome     string
	Telefone *string
	Email    *string
	CPF      *string
	Endereco *string
	EscolaID *int
}

type service struct {
	repo    *Repository
	schools *schoolsvc.Repository
}

// NewService constructs a customers service.
func NewService(repo *Repository, schools *schoolsvc.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	if schools == nil {
		return nil, fmt.Errorf("schools repository required")
	}
	return &service{repo: repo, schools: schools}, nil
}

func (s *service) List(ctx context.Context) ([]CustomerWithSchool, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}
	return rows, nil
}

func (s *service) Create(ctx context.Context, input CreateCustomerInput) (*models.Customer, error) {
	nome := strings.TrimSpace(input.Nome)
	if nome == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}

	if input.EscolaID != nil {
		exists, err := s.schools.Exists(ctx, *input.EscolaID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check school")
		}
		if !exists {
			return nil, pkgerrors.New(pkgerrors.CodeReference, "school not found")
		}
	}

	customer := &models.Customer{
		Nome:     nome,
		Telefone: input.Telefone,
		Email:    input.Email,
		CPF:      input.CPF,
		Endereco: input.Endereco,
		EscolaID: input.EscolaID,
	}
	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer")
	}
	return created, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "customer is still referenced by orders")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete customer")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
	}
	return nil
}
