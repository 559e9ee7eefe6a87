package stock

import (
	"context"
	"errors"

	"github.com/gestao-escolar/escolar-backend/pkg/db/models"
	"github.com/gestao-escolar/escolar-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Key identifies one stock counter: a product in one size at one school.
type Key struct {
	EscolaID  int
	ProdutoID int
	Tamanho   enums.Size
}

// StockRow is the list shape: the raw entry joined with product name,
// current sale price and school name.
type StockRow struct {
	ID          int             `json:"id"`
	EscolaID    int             `json:"escola_id"`
	ProdutoID   int             `json:"produto_id"`
	Tamanho     enums.Size      `json:"tamanho"`
	Quantidade  int             `json:"quantidade"`
	ProdutoNome string          `json:"produto_nome"`
	PrecoVenda  decimal.Decimal `json:"preco_venda"`
	EscolaNome  string          `json:"escola_nome"`
}

// Repository exposes stock persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a stock repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to a transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Upsert replaces the quantity for the key outright, creating the entry
// when absent. Replacement (not addition) makes manual corrections
// idempotent.
func (r *Repository) Upsert(ctx context.Context, entry *models.StockEntry) (*models.StockEntry, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "escola_id"}, {Name: "produto_id"}, {Name: "tamanho"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantidade"}),
		}).
		Create(entry).Error
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Decrement subtracts amount from the key's quantity in a single UPDATE
// statement, so two concurrent calls can never lose an update. When
// guardNonNegative is set the statement only matches rows with enough
// quantity left. Returns the number of rows touched.
func (r *Repository) Decrement(ctx context.Context, key Key, amount int, guardNonNegative bool) (int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.StockEntry{}).
		Where("escola_id = ? AND produto_id = ? AND tamanho = ?", key.EscolaID, key.ProdutoID, key.Tamanho)
	if guardNonNegative {
		q = q.Where("quantidade >= ?", amount)
	}
	res := q.Update("quantidade", gorm.Expr("quantidade - ?", amount))
	return res.RowsAffected, res.Error
}

// Find loads the entry for the key, or nil when it does not exist.
func (r *Repository) Find(ctx context.Context, key Key) (*models.StockEntry, error) {
	var entry models.StockEntry
	err := r.db.WithContext(ctx).
		Where("escola_id = ? AND produto_id = ? AND tamanho = ?", key.EscolaID, key.ProdutoID, key.Tamanho).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// List returns stock rows joined with product and school data, optionally
// filtered by school, ordered by school name, product name, then size.
func (r *Repository) List(ctx context.Context, escolaID *int) ([]StockRow, error) {
	q := r.db.WithContext(ctx).
		Table("estoque AS e").
		Select("e.id, e.escola_id, e.produto_id, e.tamanho, e.quantidade, p.nome AS produto_nome, p.preco_venda, esc.nome AS escola_nome").
		Joins("JOIN produtos p ON e.produto_id = p.id").
		Joins("JOIN escolas esc ON e.escola_id = esc.id")
	if escolaID != nil {
		q = q.Where("e.escola_id = ?", *escolaID)
	}

	var rows []StockRow
	if err := q.Order("esc.nome ASC, p.nome ASC, e.tamanho ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
