package models

import "github.com/shopspring/decimal"

type DetailPesanan struct {
	ID         uint            `gorm:"primaryKey" json:"id_detail"`
	IDPesanan  uint            `gorm:"not null;index" json:"id_pesanan"`
	Pesanan    *Pesanan        `gorm:"foreignKey:IDPesanan;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	IDMenu     uint            `gorm:"not null;index" json:"id_menu"`
	Menu       *Menu           `gorm:"foreignKey:IDMenu;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"menu,omitempty"`
	Jumlah     int             `gorm:"not null" json:"jumlah"`
	HargaTotal decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"harga_total"`
}

func (DetailPesanan) TableName() string {
	return "detail_pesanan"
}
