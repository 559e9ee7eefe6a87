package reports

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gestao-escolar/escolar-backend/pkg/db/models"
	"github.com/gestao-escolar/escolar-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupReportsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS escolas (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nome TEXT NOT NULL,
  telefone TEXT, email TEXT, endereco TEXT,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS clientes (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nome TEXT NOT NULL,
  telefone TEXT, email TEXT, cpf TEXT, endereco TEXT,
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
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedReportsData(t *testing.T, db *gorm.DB) {
	t.Helper()

	school := &models.School{Nome: "Colégio A"}
	require.NoError(t, db.Create(school).Error)

	client := &models.Customer{Nome: "Maria Silva", EscolaID: &school.ID}
	require.NoError(t, db.Create(client).Error)

	shirt := &models.Product{Nome: "Camisa Polo", PrecoVenda: decimal.RequireFromString("45.00")}
	shorts := &models.Product{Nome: "Bermuda", PrecoVenda: decimal.RequireFromString("35.00")}
	require.NoError(t, db.Create(shirt).Error)
	require.NoError(t, db.Create(shorts).Error)

	require.NoError(t, db.Create(&models.StockEntry{
		EscolaID: school.ID, ProdutoID: shirt.ID, Tamanho: enums.SizeM, Quantidade: 10,
	}).Error)

	today := time.Now().UTC()
	order := &models.Order{
		ClienteID:  client.ID,
		EscolaID:   school.ID,
		Status:     string(enums.OrderStatusPendente),
		Total:      decimal.RequireFromString("125.00"),
		DataPedido: today,
	}
	require.NoError(t, db.Create(order).Error)

	items := []models.OrderItem{
		{PedidoID: order.ID, ProdutoID: shirt.ID, Tamanho: enums.SizeM, Quantidade: 2, PrecoUnitario: decimal.RequireFromString("45.00")},
		{PedidoID: order.ID, ProdutoID: shorts.ID, Tamanho: enums.SizeM, Quantidade: 1, PrecoUnitario: decimal.RequireFromString("35.00")},
	}
	require.NoError(t, db.Create(&items).Error)
}

func TestSummaryCountsAndRevenue(t *testing.T) {
	db := setupReportsTestDB(t)
	seedReportsData(t, db)
	repo := NewRepository(db)

	summary, err := repo.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), summary.Escolas)
	assert.Equal(t, int64(1), summary.Clientes)
	assert.Equal(t, int64(2), summary.Produtos)
	assert.Equal(t, int64(1), summary.Pedidos)
	assert.True(t, summary.ReceitaTotal.Equal(decimal.RequireFromString("125.00")))
	assert.True(t, summary.ReceitaHoje.Equal(decimal.RequireFromString("125.00")))
}

func TestOrdersByStatus(t *testing.T) {
	db := setupReportsTestDB(t)
	seedReportsData(t, db)
	repo := NewRepository(db)

	rows, err := repo.OrdersByStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Pendente", rows[0].Status)
	assert.Equal(t, int64(1), rows[0].Total)
}

func TestRevenueByMonthBucketsCurrentMonth(t *testing.T) {
	db := setupReportsTestDB(t)
	seedReportsData(t, db)
	repo := NewRepository(db)

	rows, err := repo.RevenueByMonth(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, time.Now().UTC().Format("2006-01"), rows[0].Mes)
	assert.True(t, rows[0].Receita.Equal(decimal.RequireFromString("125.00")))
	assert.Equal(t, int64(1), rows[0].Pedidos)
}

func TestStockBySchool(t *testing.T) {
	db := setupReportsTestDB(t)
	seedReportsData(t, db)
	repo := NewRepository(db)

	rows, err := repo.StockBySchool(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Colégio A", rows[0].EscolaNome)
	assert.Equal(t, int64(10), rows[0].Quantidade)
}

func TestTopProductsRanksByQuantity(t *testing.T) {
	db := setupReportsTestDB(t)
	seedReportsData(t, db)
	repo := NewRepository(db)

	rows, err := repo.TopProducts(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Camisa Polo", rows[0].ProdutoNome)
	assert.Equal(t, int64(2), rows[0].Quantidade)
	assert.True(t, rows[0].Receita.Equal(decimal.RequireFromString("90.00")))
}
