package models

import "time"

// Customer is a buyer attached to a school. CPF is optional.
type Customer struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Nome      string    `gorm:"column:nome;not null" json:"nome"`
	Telefone  *string   `gorm:"column:telefone" json:"telefone,omitempty"`
	Email     *string   `gorm:"column:email" json:"email,omitempty"`
	CPF       *string   `gorm:"column:cpf" json:"cpf,omitempty"`
	Endereco  *string   `gorm:"column:endereco" json:"endereco,omitempty"`
	EscolaID  *int      `gorm:"column:escola_id" json:"escola_id,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Customer) TableName() string {
	return "clientes"
}
