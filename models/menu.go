package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Menu struct {
	ID        uint            `gorm:"primaryKey" json:"id_menu"`
	IDKantin  uint            `gorm:"not null;index" json:"id_kantin"`
	Kantin    *Kantin         `gorm:"foreignKey:IDKantin;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"kantin,omitempty"`
	NamaMenu  string          `gorm:"type:varchar(255);not null" json:"nama_menu"`
	Harga     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"harga"`
	ImgMenu   *string         `gorm:"type:varchar(500)" json:"img_menu"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Menu) TableName() string {
	return "menu"
}
