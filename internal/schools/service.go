package schools

import (
	"context"
	"fmt"
	"strings"

	"github.com/gestao-escolar/escolar-backend/pkg/db"
	"github.com/gestao-escolar/escolar-backend/pkg/db/models"
	pkgerrors "github.com/gestao-escolar/escolar-backend/pkg/errors"
)

// Service defines the behavior needed by the schools controller.
type Service interface {
	List(ctx context.Context) ([]models.School, error)
	Create(ctx context.Context, input CreateSchoolInput) (*models.School, error)
	Delete(ctx context.Context, id int) error
}

// CreateSchoolInput carries the registration form fields. Only the name
// is required.
type CreateSchoolInput struct {
	Nome     string
	Telefone *string
	Email    *string
	Endereco *string
}

type service struct {
	repo *Repository
}

// NewService constructs a schools service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("schools repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.School, error) {
	schools, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list schools")
	}
	return schools, nil
}

func (s *service) Create(ctx context.Context, input CreateSchoolInput) (*models.School, error) {
	nome := strings.TrimSpace(input.Nome)
	if nome == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "school name is required")
	}

	school := &models.School{
		Nome:     nome,
		Telefone: input.Telefone,
		Email:    input.Email,
		Endereco: input.Endereco,
	}
	created, err := s.repo.Create(ctx, school)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create school")
	}
	return created, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "school is still referenced by customers, stock or orders")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete school")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "school not found")
	}
	return nil
}
