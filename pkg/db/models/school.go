package models

import "time"

// School is a physical institution that holds its own stock and customers.
type School struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Nome      string    `gorm:"column:nome;not null" json:"nome"`
	Telefone  *string   `gorm:"column:telefone" json:"telefone,omitempty"`
	Email     *string   `gorm:"column:email" json:"email,omitempty"`
	Endereco  *string   `gorm:"column:endereco" json:"endereco,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (School) TableName() string {
	return "escolas"
}
