package orders

import (
	"context"
	"fmt"
	"strings"
	"testing"

	customersvc "github.com/gestao-escolar/escolar-backend/internal/customers"
	productsvc "github.com/gestao-escolar/escolar-backend/internal/products"
	schoolsvc "github.com/gestao-escolar/escolar-backend/internal/schools"
	"github.com/gestao-escolar/escolar-backend/internal/stock"
	"github.com/gestao-escolar/escolar-backend/pkg/config"
	"github.com/gestao-escolar/escolar-backend/pkg/db"
	"github.com/gestao-escolar/escolar-backend/pkg/db/models"
	"github.com/gestao-escolar/escolar-backend/pkg/enums"
	pkgerrors "github.com/gestao-escolar/escolar-backend/pkg/errors"
	"github.com/gestao-escolar/escolar-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS escolas (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nome TEXT NOT NULL,
  telefone TEXT,
  email TEXT,
  endereco TEXT,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS clientes (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nome TEXT NOT NULL,
  telefone TEXT,
  email TEXT,
  cpf TEXT,
  endereco TEXT,
  escola_id INTEGER,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS produtos (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nome TEXT NOT NULL,
  descricao TEXT,
  preco_custo NUMERIC NOT NULL DEFAULT 0,
  preco_venda NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS estoque (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  escola_id INTEGER NOT NULL,
  produto_id INTEGER NOT NULL,
  tamanho TEXT NOT NULL,
  quantidade INTEGER NOT NULL DEFAULT 0,
  UNIQUE (escola_id, produto_id, tamanho)
);`,
		`CREATE TABLE IF NOT EXISTS pedidos (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  cliente_id INTEGER NOT NULL,
  escola_id INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'Pendente',
  total NUMERIC NOT NULL DEFAULT 0,
  desconto NUMERIC NOT NULL DEFAULT 0,
  data_pedido DATE,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS itens_pedido (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  pedido_id INTEGER NOT NULL,
  produto_id INTEGER NOT NULL,
  tamanho TEXT NOT NULL,
  quantidade INTEGER NOT NULL,
  preco_unitario NUMERIC NOT NULL
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

type ordersTestEnv struct {
	db      *gorm.DB
	svc     Service
	repo    *Repository
	stock   *stock.Repository
	school  *models.School
	client  *models.Customer
	product *models.Product
}

func newOrdersTestEnv(t *testing.T, stockCfg config.StockConfig) *ordersTestEnv {
	t.Helper()

	conn := setupOrdersTestDB(t)

	school := &models.School{Nome: "Colégio A"}
	require.NoError(t, conn.Create(school).Error)

	client := &models.Customer{Nome: "Maria Silva", EscolaID: &school.ID}
	require.NoError(t, conn.Create(client).Error)

	product := &models.Product{
		Nome:       "Camisa Polo",
		PrecoCusto: decimal.RequireFromString("20.00"),
		PrecoVenda: decimal.RequireFromString("45.00"),
	}
	require.NoError(t, conn.Create(product).Error)

	repo := NewRepository(conn)
	stockRepo := stock.NewRepository(conn)
	ledger := stock.NewLedger(stockRepo, stockCfg, nil)

	svc, err := NewService(
		repo,
		customersvc.NewRepository(conn),
		schoolsvc.NewRepository(conn),
		productsvc.NewRepository(conn),
		ledger,
		db.NewWithConn(conn),
		nil,
	)
	require.NoError(t, err)

	return &ordersTestEnv{
		db:      conn,
		svc:     svc,
		repo:    repo,
		stock:   stockRepo,
		school:  school,
		client:  client,
		product: product,
	}
}

func (e *ordersTestEnv) seedStock(t *testing.T, size enums.Size, qty int) {
	t.Helper()
	_, err := e.stock.Upsert(context.Background(), &models.StockEntry{
		EscolaID: e.school.ID, ProdutoID: e.product.ID, Tamanho: size, Quantidade: qty,
	})
	require.NoError(t, err)
}

func TestPlaceOrderCreatesRowsAndDeductsStock(t *testing.T) {
	env := newOrdersTestEnv(t, config.StockConfig{})
	ctx := context.Background()

	env.seedStock(t, enums.SizeM, 10)

	order, err := env.svc.PlaceOrder(ctx, PlaceOrderInput{
		ClienteID: env.client.ID,
		EscolaID:  env.school.ID,
		Desconto:  decimal.RequireFromString("5.00"),
		Items: []OrderLineInput{
			{ProdutoID: env.product.ID, Tamanho: "m", Quantidade: 3, PrecoUnitario: decimal.RequireFromString("45.00")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, order)

	// 3 x 45.00 - 5.00 discount
	assert.True(t, order.Total.Equal(decimal.RequireFromString("130.00")), "got total %s", order.Total)
	assert.Equal(t, string(enums.OrderStatusPendente), order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, order.ID, order.Items[0].PedidoID)

	entry, err := env.stock.Find(ctx, stock.Key{EscolaID: env.school.ID, ProdutoID: env.product.ID, Tamanho: enums.SizeM})
	require.NoError(t, err)
	assert.Equal(t, 7, entry.Quantidade)

	var itemCount int64
	require.NoError(t, env.db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Equal(t, int64(1), itemCount)
}

func TestPlaceOrderMultipleLinesPreserveOrder(t *testing.T) {
	env := newOrdersTestEnv(t, config.StockConfig{})
	ctx := context.Background()

	env.seedStock(t, enums.SizeM, 5)
	env.seedStock(t, enums.SizeG, 5)

	order, err := env.svc.PlaceOrder(ctx, PlaceOrderInput{
		ClienteID: env.client.ID,
		EscolaID:  env.school.ID,
		Items: []OrderLineInput{
			{ProdutoID: env.product.ID, Tamanho: "g", Quantidade: 2, PrecoUnitario: decimal.RequireFromString("45.00")},
			{ProdutoID: env.product.ID, Tamanho: "m", Quantidade: 1, PrecoUnitario: decimal.RequireFromString("40.00")},
		},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, enums.SizeG, order.Items[0].Tamanho)
	assert.Equal(t, enums.SizeM, order.Items[1].Tamanho)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("130.00")))
}

func TestPlaceOrderEmptyItemsWritesNothing(t *testing.T) {
	env := newOrdersTestEnv(t, config.StockConfig{})

	_, err := env.svc.PlaceOrder(context.Background(), PlaceOrderInput{
		ClienteID: env.client.ID,
		EscolaID:  env.school.ID,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	var count int64
	require.NoError(t, env.db.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestPlaceOrderUnknownCustomerRejected(t *testing.T) {
	env := newOrdersTestEnv(t, config.StockConfig{})

	_, err := env.svc.PlaceOrder(context.Background(), PlaceOrderInput{
		ClienteID: 999,
		EscolaID:  env.school.ID,
		Items: []OrderLineInput{
			{ProdutoID: env.product.ID, Tamanho: "m", Quantidade: 1, PrecoUnitario: decimal.RequireFromString("45.00")},
		},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeReference, pkgerrors.As(err).Code())
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	env := newOrdersTestEnv(t, config.StockConfig{EnforceNonNegative: true})
	ctx := context.Background()

	env.seedStock(t, enums.SizeM, 1)

	_, err := env.svc.PlaceOrder(ctx, PlaceOrderInput{
		ClienteID: env.client.ID,
		EscolaID:  env.school.ID,
		Items: []OrderLineInput{
			{ProdutoID: env.product.ID, Tamanho: "m", Quantidade: 5, PrecoUnitario: decimal.RequireFromString("45.00")},
		},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())

	// The transaction rolled back: no pedido, no itens, stock untouched.
	var orderCount, itemCount int64
	require.NoError(t, env.db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, env.db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Equal(t, int64(0), orderCount)
	assert.Equal(t, int64(0), itemCount)

	entry, err := env.stock.Find(ctx, stock.Key{EscolaID: env.school.ID, ProdutoID: env.product.ID, Tamanho: enums.SizeM})
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Quantidade)
}

func TestPlaceOrderNegativeTotalAllowed(t *testing.T) {
	env := newOrdersTestEnv(t, config.StockConfig{})

	order, err := env.svc.PlaceOrder(context.Background(), PlaceOrderInput{
		ClienteID: env.client.ID,
		EscolaID:  env.school.ID,
		Desconto:  decimal.RequireFromString("100.00"),
		Items: []OrderLineInput{
			{ProdutoID: env.product.ID, Tamanho: "m", Quantidade: 1, PrecoUnitario: decimal.RequireFromString("45.00")},
		},
	})
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("-55.00")))
}

func TestGetReturnsOrderWithItems(t *testing.T) {
	env := newOrdersTestEnv(t, config.StockConfig{})
	ctx := context.Background()

	order, err := env.svc.PlaceOrder(ctx, PlaceOrderInput{
		ClienteID: env.client.ID,
		EscolaID:  env.school.ID,
		Items: []OrderLineInput{
			{ProdutoID: env.product.ID, Tamanho: "m", Quantidade: 2, PrecoUnitario: decimal.RequireFromString("45.00")},
		},
	})
	require.NoError(t, err)

	detail, err := env.svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, detail.Order.ID)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, 2, detail.Items[0].Quantidade)

	_, err = env.svc.Get(ctx, 999)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDeleteRemovesOrderAndItemsButNotStock(t *testing.T) {
	env := newOrdersTestEnv(t, config.StockConfig{})
	ctx := context.Background()

	env.seedStock(t, enums.SizeM, 10)

	order, err := env.svc.PlaceOrder(ctx, PlaceOrderInput{
		ClienteID: env.client.ID,
		EscolaID:  env.school.ID,
		Items: []OrderLineInput{
			{ProdutoID: env.product.ID, Tamanho: "m", Quantidade: 4, PrecoUnitario: decimal.RequireFromString("45.00")},
		},
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.Delete(ctx, order.ID))

	var orderCount, itemCount int64
	require.NoError(t, env.db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, env.db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Equal(t, int64(0), orderCount)
	assert.Equal(t, int64(0), itemCount)

	// Deleting the sale does not restore deducted stock.
	entry, err := env.stock.Find(ctx, stock.Key{EscolaID: env.school.ID, ProdutoID: env.product.ID, Tamanho: enums.SizeM})
	require.NoError(t, err)
	assert.Equal(t, 6, entry.Quantidade)

	err = env.svc.Delete(ctx, order.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListReturnsNewestFirstWithCursor(t *testing.T) {
	env := newOrdersTestEnv(t, config.StockConfig{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := env.svc.PlaceOrder(ctx, PlaceOrderInput{
			ClienteID: env.client.ID,
			EscolaID:  env.school.ID,
			Items: []OrderLineInput{
				{ProdutoID: env.product.ID, Tamanho: "m", Quantidade: 1, PrecoUnitario: decimal.RequireFromString("45.00")},
			},
		})
		require.NoError(t, err)
	}

	first, err := env.svc.List(ctx, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Orders, 2)
	require.NotEmpty(t, first.NextCursor)
	assert.Equal(t, "Maria Silva", first.Orders[0].ClienteNome)
	assert.Equal(t, "Colégio A", first.Orders[0].EscolaNome)
	assert.Greater(t, first.Orders[0].ID, first.Orders[1].ID)

	second, err := env.svc.List(ctx, pagination.Params{Limit: 2, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Orders, 1)
	assert.Empty(t, second.NextCursor)
	assert.Less(t, second.Orders[0].ID, first.Orders[1].ID)
}

func TestListRejectsMalformedCursor(t *testing.T) {
	env := newOrdersTestEnv(t, config.StockConfig{})

	_, err := env.svc.List(context.Background(), pagination.Params{Limit: 2, Cursor: "not-a-cursor"})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
