package models

import "time"

const (
	StatusProses  = "proses"
	StatusSelesai = "selesai"
)

// ValidStatus reports whether s is one of the two pesanan states. There is
// no transition rule between them; either state may be set at any time.
func ValidStatus(s string) bool {
	return s == StatusProses || s == StatusSelesai
}

type Pesanan struct {
	ID          uint       `gorm:"primaryKey" json:"id_pesanan"`
	IDKantin    uint       `gorm:"not null;index" json:"id_kantin"`
	Kantin      *Kantin    `gorm:"foreignKey:IDKantin;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"kantin,omitempty"`
	IDMahasiswa uint       `gorm:"not null;index" json:"id_mahasiswa"`
	Mahasiswa   *Mahasiswa `gorm:"foreignKey:IDMahasiswa;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"mahasiswa,omitempty"`
	Tanggal     time.Time  `gorm:"autoCreateTime" json:"tanggal"`
	Status      string     `gorm:"type:varchar(20);not null;default:'proses'" json:"status"`

	DetailPesanan []DetailPesanan `gorm:"foreignKey:IDPesanan" json:"detail_pesanan,omitempty"`
}

func (Pesanan) TableName() string {
	return "pesanan"
}
