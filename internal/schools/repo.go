package schools

import (
	"context"

	"github.com/gestao-escolar/escolar-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes school persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a schools repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all schools ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.School, error) {
	var schools []models.School
	if err := r.db.WithContext(ctx).Order("nome ASC").Find(&schools).Error; err != nil {
		return nil, err
	}
	return schools, nil
}

// Create inserts a new school.
func (r *Repository) Create(ctx context.Context, school *models.School) (*models.School, error) {
	if err := r.db.WithContext(ctx).Create(school).Error; err != nil {
		return nil, err
	}
	return school, nil
}

// Delete removes the school row. The delete is unguarded: rows referencing
// the school make the database reject it via its foreign keys.
func (r *Repository) Delete(ctx context.Context, id int) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.School{}, id)
	return res.RowsAffected, res.Error
}

// Exists reports whether the school id references a row.
func (r *Repository) Exists(ctx context.Context, id int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.School{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
