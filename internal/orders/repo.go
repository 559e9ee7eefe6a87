package orders

import (
	"context"
	"errors"

	"github.com/gestao-escolar/escolar-backend/pkg/db/models"
	pkgerrors "github.com/gestao-escolar/escolar-backend/pkg/errors"
	"github.com/gestao-escolar/escolar-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository exposes order persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an orders repo bound to the provided GORM DB.
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

// CreateOrder inserts the pedido row.
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// CreateOrderItems inserts the itens_pedido rows in the given order.
func (r *Repository) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// FindOrder loads one pedido with its line items, or nil when absent.
func (r *Repository) FindOrder(ctx context.Context, id int) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// List returns orders joined with customer and school names, newest first,
// with cursor pagination.
func (r *Repository) List(ctx context.Context, params pagination.Params) (*OrderList, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	q := r.db.WithContext(ctx).
		Table("pedidos AS p").
		Select("p.id, p.cliente_id, c.nome AS cliente_nome, p.escola_id, e.nome AS escola_nome, p.status, p.total, p.desconto, p.data_pedido, p.created_at").
		Joins("JOIN clientes c ON p.cliente_id = c.id").
		Joins("JOIN escolas e ON p.escola_id = e.id")

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	if cursor != nil {
		q = q.Where("p.created_at < ? OR (p.created_at = ? AND p.id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []OrderSummary
	err = q.Order("p.created_at DESC, p.id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	list := &OrderList{Orders: rows}
	if len(rows) > limit {
		list.Orders = rows[:limit]
		last := list.Orders[limit-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return list, nil
}

// DeleteOrder removes the pedido and its itens in the given handle. The
// items go first so the pedido's foreign key cannot block the delete.
func (r *Repository) DeleteOrder(ctx context.Context, id int) (int64, error) {
	if err := r.db.WithContext(ctx).Where("pedido_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
		return 0, err
	}
	res := r.db.WithContext(ctx).Delete(&models.Order{}, id)
	return res.RowsAffected, res.Error
}
