package models

import (
	"time"

	"github.com/gestao-escolar/escolar-backend/pkg/enums"
)

// User is a dashboard login. Password holds an Argon2id hash, never the
// plain text.
type User struct {
	ID        int         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username  string      `gorm:"column:username;uniqueIndex;not null" json:"username"`
	Password  string      `gorm:"column:password;not null" json:"-"`
	Nivel     enums.Nivel `gorm:"column:nivel;type:varchar(20);default:'Vendedor'" json:"nivel"`
	CreatedAt time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "usuarios"
}
