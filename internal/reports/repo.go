package reports

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardSummary is the headline counters block.
type DashboardSummary struct {
	Escolas      int64           `json:"escolas"`
	Clientes     int64           `json:"clientes"`
	Produtos     int64           `json:"produtos"`
	Pedidos      int64           `json:"pedidos"`
	ReceitaHoje  decimal.Decimal `json:"receita_hoje"`
	ReceitaTotal decimal.Decimal `json:"receita_total"`
}

// StatusCount is one row of the orders-by-status breakdown.
type StatusCount struct {
	Status string `json:"status"`
	Total  int64  `json:"total"`
}

// MonthlyRevenue is one row of the revenue-by-month series.
type MonthlyRevenue struct {
	Mes     string          `json:"mes"`
	Receita decimal.Decimal `json:"receita"`
	Pedidos int64           `json:"pedidos"`
}

// SchoolStock is one row of the stock-by-school aggregate.
type SchoolStock struct {
	EscolaID   int    `json:"escola_id"`
	EscolaNome string `json:"escola_nome"`
	Quantidade int64  `json:"quantidade"`
}

// TopProduct is one row of the best sellers ranking.
type TopProduct struct {
	ProdutoID   int             `json:"produto_id"`
	ProdutoNome string          `json:"produto_nome"`
	Quantidade  int64           `json:"quantidade"`
	Receita     decimal.Decimal `json:"receita"`
}

// Repository runs the read-only aggregate queries behind the dashboard.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a reports repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) sqlite() bool {
	return r.db.Dialector.Name() == "sqlite"
}

// Summary counts catalog rows and sums today's and all-time revenue.
func (r *Repository) Summary(ctx context.Context) (*DashboardSummary, error) {
	var out DashboardSummary
	db := r.db.WithContext(ctx)

	counts := []struct {
		table string
		dest  *int64
	}{
		{"escolas", &out.Escolas},
		{"clientes", &out.Clientes},
		{"produtos", &out.Produtos},
		{"pedidos", &out.Pedidos},
	}
	for _, c := range counts {
		if err := db.Table(c.table).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	today := "data_pedido = CURRENT_DATE"
	if r.sqlite() {
		today = "date(data_pedido) = date('now')"
	}

	var receitaHoje struct{ Total decimal.Decimal }
	err := db.Table("pedidos").
		Select("COALESCE(SUM(total), 0) AS total").
		Where(today).
		Scan(&receitaHoje).Error
	if err != nil {
		return nil, err
	}
	out.ReceitaHoje = receitaHoje.Total

	var receitaTotal struct{ Total decimal.Decimal }
	err = db.Table("pedidos").
		Select("COALESCE(SUM(total), 0) AS total").
		Scan(&receitaTotal).Error
	if err != nil {
		return nil, err
	}
	out.ReceitaTotal = receitaTotal.Total

	return &out, nil
}

// OrdersByStatus groups order counts per status label.
func (r *Repository) OrdersByStatus(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).
		Table("pedidos").
		Select("status, COUNT(*) AS total").
		Group("status").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// RevenueByMonth buckets revenue per calendar month, newest first.
func (r *Repository) RevenueByMonth(ctx context.Context, months int) ([]MonthlyRevenue, error) {
	if months <= 0 {
		months = 12
	}

	bucket := "TO_CHAR(DATE_TRUNC('month', data_pedido), 'YYYY-MM')"
	if r.sqlite() {
		bucket = "strftime('%Y-%m', data_pedido)"
	}

	var rows []MonthlyRevenue
	err := r.db.WithContext(ctx).
		Table("pedidos").
		Select(bucket + " AS mes, COALESCE(SUM(total), 0) AS receita, COUNT(*) AS pedidos").
		Group("mes").
		Order("mes DESC").
		Limit(months).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// StockBySchool sums remaining stock per school.
func (r *Repository) StockBySchool(ctx context.Context) ([]SchoolStock, error) {
	var rows []SchoolStock
	err := r.db.WithContext(ctx).
		Table("estoque AS e").
		Select("e.escola_id, esc.nome AS escola_nome, COALESCE(SUM(e.quantidade), 0) AS quantidade").
		Joins("JOIN escolas esc ON e.escola_id = esc.id").
		Group("e.escola_id, esc.nome").
		Order("esc.nome ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TopProducts ranks products by quantity sold across all orders.
func (r *Repository) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []TopProduct
	err := r.db.WithContext(ctx).
		Table("itens_pedido AS i").
		Select("i.produto_id, p.nome AS produto_nome, COALESCE(SUM(i.quantidade), 0) AS quantidade, COALESCE(SUM(i.quantidade * i.preco_unitario), 0) AS receita").
		Joins("JOIN produtos p ON i.produto_id = p.id").
		Group("i.produto_id, p.nome").
		Order("quantidade DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
