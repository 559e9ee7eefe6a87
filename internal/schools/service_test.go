package schools

import (
	"context"
	"fmt"
	"strings"
	"testing"

	pkgerrors "github.com/gestao-escolar/escolar-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSchoolsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	escolas := `
CREATE TABLE IF NOT EXISTS escolas (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nome TEXT NOT NULL,
  telefone TEXT,
  email TEXT,
  endereco TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(escolas).Error)
	return db
}

func newSchoolsService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func TestCreateSchoolRequiresName(t *testing.T) {
	db := setupSchoolsTestDB(t)
	svc := newSchoolsService(t, db)

	_, err := svc.Create(context.Background(), CreateSchoolInput{Nome: "  "})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCreateSchoolTrimsName(t *testing.T) {
	db := setupSchoolsTestDB(t)
	svc := newSchoolsService(t, db)

	tel := "11 99999-0000"
	school, err := svc.Create(context.Background(), CreateSchoolInput{Nome: "  Colégio A  ", Telefone: &tel})
	require.NoError(t, err)
	assert.Equal(t, "Colégio A", school.Nome)
	require.NotNil(t, school.Telefone)
	assert.Equal(t, tel, *school.Telefone)
	assert.NotZero(t, school.ID)
}

func TestListSchoolsOrderedByName(t *testing.T) {
	db := setupSchoolsTestDB(t)
	svc := newSchoolsService(t, db)
	ctx := context.Background()

	for _, nome := range []string{"Colégio B", "Colégio A"} {
		_, err := svc.Create(ctx, CreateSchoolInput{Nome: nome})
		require.NoError(t, err)
	}

	schools, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, schools, 2)
	assert.Equal(t, "Colégio A", schools[0].Nome)
	assert.Equal(t, "Colégio B", schools[1].Nome)
}

func TestDeleteSchool(t *testing.T) {
	db := setupSchoolsTestDB(t)
	svc := newSchoolsService(t, db)
	ctx := context.Background()

	school, err := svc.Create(ctx, CreateSchoolInput{Nome: "Colégio A"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, school.ID))

	err = svc.Delete(ctx, school.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
