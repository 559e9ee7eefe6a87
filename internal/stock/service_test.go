package stock

import (
	"context"
	"testing"

	productsvc "github.com/gestao-escolar/escolar-backend/internal/products"
	schoolsvc "github.com/gestao-escolar/escolar-backend/internal/schools"
	pkgerrors "github.com/gestao-escolar/escolar-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetStockValidatesSizeAndReferences(t *testing.T) {
	db := setupStockTestDB(t)
	svc, err := NewService(NewRepository(db), schoolsvc.NewRepository(db), productsvc.NewRepository(db))
	require.NoError(t, err)
	ctx := context.Background()

	school := newSchool(t, db, "Colégio A")
	product := newProduct(t, db, "Camisa Polo", "45.00")

	_, err = svc.SetStock(ctx, SetStockInput{EscolaID: school.ID, ProdutoID: product.ID, Tamanho: "xxl", Quantidade: 1})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.SetStock(ctx, SetStockInput{EscolaID: school.ID, ProdutoID: product.ID, Tamanho: "m", Quantidade: -1})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.SetStock(ctx, SetStockInput{EscolaID: 999, ProdutoID: product.ID, Tamanho: "m", Quantidade: 1})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeReference, pkgerrors.As(err).Code())

	entry, err := svc.SetStock(ctx, SetStockInput{EscolaID: school.ID, ProdutoID: product.ID, Tamanho: "M", Quantidade: 12})
	require.NoError(t, err)
	assert.Equal(t, 12, entry.Quantidade)
	assert.Equal(t, "m", entry.Tamanho.String())
}
