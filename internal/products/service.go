package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/gestao-escolar/escolar-backend/pkg/db/models"
	pkgerrors "github.com/gestao-escolar/escolar-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Service defines the behavior needed by the products controller.
type Service interface {
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*models.Product, error)
}

// CreateProductInput carries the registration form fields. Prices are
// non-negative decimals with two fractional digits.
type CreateProductInput struct {
	Nome       string
	Descricao  *string
	PrecoCusto decimal.Decimal
	PrecoVenda decimal.Decimal
}

type service struct {
	repo *Repository
}

// NewService constructs a products service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return products, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	nome := strings.TrimSpace(input.Nome)
	if nome == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.PrecoCusto.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost price cannot be negative")
	}
	if input.PrecoVenda.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale price cannot be negative")
	}

	product := &models.Product{
		Nome:       nome,
		Descricao:  input.Descricao,
		PrecoCusto: input.PrecoCusto.Round(2),
		PrecoVenda: input.PrecoVenda.Round(2),
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return created, nil
}
