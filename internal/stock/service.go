package stock

import (
	"context"
	"fmt"

	productsvc "github.com/gestao-escolar/escolar-backend/internal/products"
	schoolsvc "github.com/gestao-escolar/escolar-backend/internal/schools"
	"github.com/gestao-escolar/escolar-backend/pkg/db/models"
	"github.com/gestao-escolar/escolar-backend/pkg/enums"
	pkgerrors "github.com/gestao-escolar/escolar-backend/pkg/errors"
)

// Service defines the behavior needed by the stock controller.
type Service interface {
	SetStock(ctx context.Context, input SetStockInput) (*models.StockEntry, error)
	List(ctx context.Context, escolaID *int) ([]StockRow, error)
}

// SetStockInput carries a manual stock correction: the quantity replaces
// whatever the counter holds.
type SetStockInput struct {
	EscolaID   int
	ProdutoID  int
	Tamanho    string
	Quantidade int
}

type service struct {
	repo     *Repository
	schools  *schoolsvc.Repository
	products *productsvc.Repository
}

// NewService constructs a stock service.
func NewService(repo *Repository, schools *schoolsvc.Repository, products *productsvc.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stock repository required")
	}
	if schools == nil {
		return nil, fmt.Errorf("schools repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: repo, schools: schools, products: products}, nil
}

func (s *service) SetStock(ctx context.Context, input SetStockInput) (*models.StockEntry, error) {
	size, err := enums.ParseSize(input.Tamanho)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid size")
	}
	if input.Quantidade < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}

	if exists, err := s.schools.Exists(ctx, input.EscolaID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check school")
	} else if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeReference, "school not found")
	}
	if exists, err := s.products.Exists(ctx, input.ProdutoID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check product")
	} else if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeReference, "product not found")
	}

	entry := &models.StockEntry{
		EscolaID:   input.EscolaID,
		ProdutoID:  input.ProdutoID,
		Tamanho:    size,
		Quantidade: input.Quantidade,
	}
	saved, err := s.repo.Upsert(ctx, entry)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert stock entry")
	}
	return saved, nil
}

func (s *service) List(ctx context.Context, escolaID *int) ([]StockRow, error) {
	rows, err := s.repo.List(ctx, escolaID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stock")
	}
	return rows, nil
}
