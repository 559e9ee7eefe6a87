package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is one sale. Total is computed once at creation as the line sum
// minus the discount and never recomputed afterwards.
type Order struct {
	ID         int             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ClienteID  int             `gorm:"column:cliente_id;not null" json:"cliente_id"`
	EscolaID   int             `gorm:"column:escola_id;not null" json:"escola_id"`
	Status     string          `gorm:"column:status;default:'Pendente'" json:"status"`
	Total      decimal.Decimal `gorm:"column:total;type:numeric(10,2)" json:"total"`
	Desconto   decimal.Decimal `gorm:"column:desconto;type:numeric(10,2)" json:"desconto"`
	DataPedido time.Time       `gorm:"column:data_pedido;type:date" json:"data_pedido"`
	Items      []OrderItem     `gorm:"foreignKey:PedidoID" json:"items,omitempty"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Order) TableName() string {
	return "pedidos"
}
