package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. Prices are decimal(10,2): cost is what the
// product was acquired for, sale is what customers pay.
type Product struct {
	ID         int             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Nome       string          `gorm:"column:nome;not null" json:"nome"`
	Descricao  *string         `gorm:"column:descricao" json:"descricao,omitempty"`
	PrecoCusto decimal.Decimal `gorm:"column:preco_custo;type:numeric(10,2)" json:"preco_custo"`
	PrecoVenda decimal.Decimal `gorm:"column:preco_venda;type:numeric(10,2)" json:"preco_venda"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Product) TableName() string {
	return "produtos"
}
