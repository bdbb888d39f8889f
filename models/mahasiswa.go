package models

import "time"

type Mahasiswa struct {
	ID        uint      `gorm:"primaryKey" json:"id_mahasiswa"`
	Nama      string    `gorm:"type:varchar(255);not null" json:"nama"`
	Email     string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	NIM       string    `gorm:"type:varchar(50);not null" json:"nim"`
	Alamat    *string   `gorm:"type:varchar(500)" json:"alamat"`
	NoHP      *string   `gorm:"type:varchar(20)" json:"no_hp"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Pesanan []Pesanan `gorm:"foreignKey:IDMahasiswa" json:"pesanan,omitempty"`
}

func (Mahasiswa) TableName() string {
	return "mahasiswa"
}

// ProfileComplete reports whether the delivery fields required before
// placing an order are filled in.
func (m *Mahasiswa) ProfileComplete() bool {
	return m.Alamat != nil && m.NoHP != nil
}
