package customers

import (
	"context"
	"time"

	"github.com/gestao-escolar/escolar-backend/pkg/db/models"
	"gorm.io/gorm"
)

// CustomerWithSchool is the list row joined with the school name, which may
// be absent when the customer has no school or the school was deleted.
type CustomerWithSchool struct {
	ID         int       `json:"id"`
	Nome       string    `json:"nome"`
	Telefone   *string   `json:"telefone,omitempty"`
	Email      *string   `json:"email,omitempty"`
	CPF        *string   `json:"cpf,omitempty"`
	Endereco   *string   `json:"endereco,omitempty"`
	EscolaID   *int      `json:"escola_id,omitempty"`
	EscolaNome *string   `json:"escola_nome,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Repository exposes customer persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a customers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all customers with their school names, ordered by name.
func (r *Repository) List(ctx context.Context) ([]CustomerWithSchool, error) {
	var rows []CustomerWithSchool
	err := r.db.WithContext(ctx).
		Table("clientes AS c").
		Select("c.id, c.nome, c.telefone, c.email, c.cpf, c.endereco, c.escola_id, e.nome AS escola_nome, c.created_at").
		Joins("LEFT JOIN escolas e ON c.escola_id = e.id").
		Order("c.nome ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a new customer.
func (r *Repository) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete removes the customer row.
func (r *Repository) Delete(ctx context.Context, id int) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Customer{}, id)
	return res.RowsAffected, res.Error
}

// Exists reports whether the customer id references a row.
func (r *Repository) Exists(ctx context.Context, id int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
