package models

import "github.com/gestao-escolar/escolar-backend/pkg/enums"

// StockEntry is the quantity counter for one (school, product, size) key.
// The composite key is unique; quantity may be zero and, under the
// historical permissive semantics, may go negative.
type StockEntry struct {
	ID         int        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EscolaID   int        `gorm:"column:escola_id;not null;uniqueIndex:idx_estoque_key" json:"escola_id"`
	ProdutoID  int        `gorm:"column:produto_id;not null;uniqueIndex:idx_estoque_key" json:"produto_id"`
	Tamanho    enums.Size `gorm:"column:tamanho;type:varchar(5);not null;uniqueIndex:idx_estoque_key" json:"tamanho"`
	Quantidade int        `gorm:"column:quantidade;not null;default:0" json:"quantidade"`
}

func (StockEntry) TableName() string {
	return "estoque"
}
