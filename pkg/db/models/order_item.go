package models

import (
	"github.com/gestao-escolar/escolar-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// OrderItem is one product/size/quantity row within an order. The unit
// price is captured at order time and is independent of the product's
// current sale price.
type OrderItem struct {
	ID            int             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PedidoID      int             `gorm:"column:pedido_id;not null" json:"pedido_id"`
	ProdutoID     int             `gorm:"column:produto_id;not null" json:"produto_id"`
	Tamanho       enums.Size      `gorm:"column:tamanho;type:varchar(5);not null" json:"tamanho"`
	Quantidade    int             `gorm:"column:quantidade;not null" json:"quantidade"`
	PrecoUnitario decimal.Decimal `gorm:"column:preco_unitario;type:numeric(10,2);not null" json:"preco_unitario"`
}

func (OrderItem) TableName() string {
	return "itens_pedido"
}
