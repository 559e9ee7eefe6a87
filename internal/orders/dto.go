package orders

import (
	"time"

	"github.com/gestao-escolar/escolar-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// OrderLineInput is one product/size/quantity line of an order request.
// The unit price is taken from the form as-is, so a sale can be priced
// independently of the product's current sale price.
type OrderLineInput struct {
	ProdutoID     int
	Tamanho       string
	Quantidade    int
	PrecoUnitario decimal.Decimal
}

// PlaceOrderInput is the full order request collected by the presentation
// layer.
type PlaceOrderInput struct {
	ClienteID int
	EscolaID  int
	Items     []OrderLineInput
	Desconto  decimal.Decimal
}

// OrderSummary is the list row joined with customer and school names.
type OrderSummary struct {
	ID          int             `json:"id"`
	ClienteID   int             `json:"cliente_id"`
	ClienteNome string          `json:"cliente_nome"`
	EscolaID    int             `json:"escola_id"`
	EscolaNome  string          `json:"escola_nome"`
	Status      string          `json:"status"`
	Total       decimal.Decimal `json:"total"`
	Desconto    decimal.Decimal `json:"desconto"`
	DataPedido  time.Time       `json:"data_pedido"`
	CreatedAt   time.Time       `json:"created_at"`
}

// OrderList wraps the paginated orders plus the next page cursor.
type OrderList struct {
	Orders     []OrderSummary `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// OrderDetail is one order with its line items.
type OrderDetail struct {
	Order models.Order       `json:"order"`
	Items []models.OrderItem `json:"items"`
}
