package models

import "time"

type Kantin struct {
	ID             uint      `gorm:"primaryKey" json:"id_kantin"`
	NamaKantin     string    `gorm:"type:varchar(255);not null" json:"nama_kantin"`
	Email          string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password       string    `gorm:"type:varchar(255);not null" json:"-"`
	NamaPemilik    *string   `gorm:"type:varchar(255)" json:"nama_pemilik"`
	NoHPPemilik    *string   `gorm:"type:varchar(20)" json:"no_hp_pemilik"`
	JamOperasional *string   `gorm:"type:varchar(100)" json:"jam_operasional"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Menu    []Menu    `gorm:"foreignKey:IDKantin" json:"menu,omitempty"`
	Pesanan []Pesanan `gorm:"foreignKey:IDKantin" json:"pesanan,omitempty"`
}

func (Kantin) TableName() string {
	return "kantin"
}

// ProfileComplete reports whether the business fields required before
// fulfilling orders are filled in.
func (k *Kantin) ProfileComplete() bool {
	return k.NamaPemilik != nil && k.NoHPPemilik != nil && k.JamOperasional != nil
}
